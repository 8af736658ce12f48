package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/geprek-app/middlewares"
	"github.com/yeremiapane/geprek-app/services"
	"github.com/yeremiapane/geprek-app/utils"
)

// respondServiceError memetakan error service ke status HTTP.
// Error penyimpanan sudah dilog di service, klien hanya menerima pesan umum.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrEmailTaken):
		utils.RespondError(c, http.StatusConflict, err)
	case services.IsValidation(err):
		utils.RespondError(c, http.StatusBadRequest, err)
	case errors.Is(err, services.ErrNotFound):
		utils.RespondError(c, http.StatusNotFound, err)
	case errors.Is(err, services.ErrInvalidCredentials):
		utils.RespondError(c, http.StatusUnauthorized, err)
	case errors.Is(err, services.ErrRecapNotPending), errors.Is(err, services.ErrRecapNotApproved):
		utils.RespondError(c, http.StatusConflict, err)
	default:
		if !services.IsPersistence(err) {
			utils.ErrorLogger.Errorf("Unhandled error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		}
		utils.RespondError(c, http.StatusInternalServerError, errors.New(services.GenericPersistenceMessage))
	}
}

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid "+name))
		return 0, false
	}
	return uint(id), true
}

func currentUserID(c *gin.Context) uint {
	return c.GetUint(middlewares.ContextUserID)
}
