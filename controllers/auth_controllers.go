package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/geprek-app/middlewares"
	"github.com/yeremiapane/geprek-app/services"
	"github.com/yeremiapane/geprek-app/utils"
)

type AuthController struct {
	Auth *services.AuthService
}

func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{Auth: auth}
}

// SignUp mendaftarkan admin / manager baru
func (ac *AuthController) SignUp(c *gin.Context) {
	var req services.SignUpInput
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	user, err := ac.Auth.SignUp(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Akun berhasil dibuat", gin.H{
		"user_id": user.ID,
		"role":    user.Role,
	})
}

// SignIn -> token JWT beserta halaman tujuan sesuai role
func (ac *AuthController) SignIn(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	session, err := ac.Auth.SignIn(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Login berhasil", session)
}

// SignOut mem-blacklist token yang sedang dipakai
func (ac *AuthController) SignOut(c *gin.Context) {
	token := c.GetString(middlewares.ContextToken)
	exp, ok := c.Get(middlewares.ContextTokenExp)
	expiresAt, isTime := exp.(time.Time)
	if token == "" || !ok || !isTime {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("token tidak ditemukan"))
		return
	}
	ac.Auth.SignOut(token, expiresAt)
	utils.RespondJSON(c, http.StatusOK, "Logout berhasil", nil)
}

// Profile -> user yang sedang login
func (ac *AuthController) Profile(c *gin.Context) {
	user, err := ac.Auth.CurrentUser(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Profile data retrieved successfully", gin.H{
		"id":        user.ID,
		"email":     user.Email,
		"full_name": user.FullName,
		"role":      user.Role,
		"redirect":  user.Role.HomePath(),
	})
}
