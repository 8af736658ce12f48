package controllers

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/geprek-app/services"
	"github.com/yeremiapane/geprek-app/utils"
)

const (
	mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	mimePDF  = "application/pdf"
)

type RecapController struct {
	Recaps   *services.RecapService
	Location *time.Location
}

func NewRecapController(recaps *services.RecapService, loc *time.Location) *RecapController {
	if loc == nil {
		loc = time.Local
	}
	return &RecapController{Recaps: recaps, Location: loc}
}

// RequestRecap -> admin meminta rekap periode, menunggu persetujuan manager
func (rc *RecapController) RequestRecap(c *gin.Context) {
	var req services.RecapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	recap, err := rc.Recaps.Request(c.Request.Context(), req, currentUserID(c), time.Now().In(rc.Location))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Permintaan rekap berhasil dikirim ke Manager", recap)
}

func (rc *RecapController) GetAllRecaps(c *gin.Context) {
	recaps, err := rc.Recaps.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of recaps", recaps)
}

// GetRecapDetail -> rekap beserta pesanan periode (query ulang, hanya tampilan)
func (rc *RecapController) GetRecapDetail(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	detail, err := rc.Recaps.Detail(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Recap detail", detail)
}

func (rc *RecapController) ApproveRecap(c *gin.Context) {
	rc.review(c, true)
}

func (rc *RecapController) RejectRecap(c *gin.Context) {
	rc.review(c, false)
}

func (rc *RecapController) review(c *gin.Context, approve bool) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req struct {
		Reason string `json:"reason"`
	}
	// body opsional
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.RespondError(c, http.StatusBadRequest, err)
			return
		}
	}

	recap, err := rc.Recaps.Review(c.Request.Context(), id, approve, req.Reason, currentUserID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	message := "Rekap berhasil ditolak"
	if approve {
		message = "Rekap berhasil disetujui"
	}
	utils.RespondJSON(c, http.StatusOK, message, recap)
}

func (rc *RecapController) DeleteRecap(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := rc.Recaps.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Rekap berhasil dihapus", nil)
}

// ExportRecap -> unduhan xlsx (default) atau pdf untuk rekap yang disetujui
func (rc *RecapController) ExportRecap(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	format := c.DefaultQuery("format", "xlsx")
	if format != "xlsx" && format != "pdf" {
		utils.RespondError(c, http.StatusBadRequest, errors.New("format harus xlsx atau pdf"))
		return
	}

	report, err := rc.Recaps.Export(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	var (
		data []byte
		mime string
	)
	if format == "pdf" {
		data, err = services.WritePDF(report)
		mime = mimePDF
	} else {
		data, err = services.WriteXLSX(report)
		mime = mimeXLSX
	}
	if err != nil {
		utils.ErrorLogger.Errorf("Failed to write %s for recap #%d: %v", format, id, err)
		respondServiceError(c, err)
		return
	}

	c.DataFromReader(http.StatusOK, int64(len(data)), mime, bytes.NewReader(data), map[string]string{
		"Content-Disposition": fmt.Sprintf(`attachment; filename="%s"`, report.FileName(format)),
	})
}
