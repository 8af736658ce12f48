package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/yeremiapane/geprek-app/models"
	"github.com/yeremiapane/geprek-app/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const MinPasswordLength = 6

type SignUpInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	FullName string `json:"full_name" binding:"required"`
	Role     string `json:"role" binding:"required"`
}

// Session adalah hasil login: token beserta user dan role-nya
type Session struct {
	Token     string            `json:"token"`
	ExpiresAt time.Time         `json:"expires_at"`
	User      *models.AdminUser `json:"user"`
	Role      models.Role       `json:"role"`
	Redirect  string            `json:"redirect"`
}

type AuthService struct {
	db *gorm.DB
}

func NewAuthService(db *gorm.DB) *AuthService {
	return &AuthService{db: db}
}

func (s *AuthService) SignUp(ctx context.Context, in SignUpInput) (*models.AdminUser, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" {
		return nil, newValidationError("email", "email wajib diisi")
	}
	if len(in.Password) < MinPasswordLength {
		return nil, newValidationError("password", "password minimal 6 karakter")
	}
	role, ok := models.ParseRole(strings.ToLower(in.Role))
	if !ok {
		return nil, newValidationError("role", "role harus admin atau manager")
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.AdminUser{}).Where("email = ?", email).Count(&count).Error; err != nil {
		utils.ErrorLogger.Errorf("Failed to check email %s: %v", email, err)
		return nil, persistenceError("check email", err)
	}
	if count > 0 {
		return nil, validationFrom("email", ErrEmailTaken)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.AdminUser{
		Email:    email,
		Password: string(hashed),
		FullName: strings.TrimSpace(in.FullName),
		Role:     role,
	}
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		utils.ErrorLogger.Errorf("Failed to register %s: %v", email, err)
		return nil, persistenceError("create user", err)
	}

	utils.InfoLogger.Infof("New user registered: %s (role=%s)", user.Email, user.Role)
	return user, nil
}

// SignIn memverifikasi password lalu menerbitkan JWT berisi id dan role
func (s *AuthService) SignIn(ctx context.Context, email, password string) (*Session, error) {
	var user models.AdminUser
	err := s.db.WithContext(ctx).Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		utils.ErrorLogger.Errorf("Failed to load user %s: %v", email, err)
		return nil, persistenceError("load user", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, exp, err := utils.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return nil, err
	}

	utils.InfoLogger.Infof("Login successful for user: %s, role: %s", user.Email, user.Role)
	return &Session{
		Token:     token,
		ExpiresAt: exp,
		User:      &user,
		Role:      user.Role,
		Redirect:  user.Role.HomePath(),
	}, nil
}

func (s *AuthService) CurrentUser(ctx context.Context, id uint) (*models.AdminUser, error) {
	var user models.AdminUser
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		utils.ErrorLogger.Errorf("Failed to load user #%d: %v", id, err)
		return nil, persistenceError("load user", err)
	}
	return &user, nil
}

// SignOut mem-blacklist token sampai kedaluwarsa
func (s *AuthService) SignOut(token string, expiresAt time.Time) {
	utils.BlacklistToken(token, expiresAt)
}
