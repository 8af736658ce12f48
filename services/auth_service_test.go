package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/geprek-app/models"
	"github.com/yeremiapane/geprek-app/utils"
)

func TestSignUpAndSignIn(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db)
	ctx := context.Background()

	user, err := svc.SignUp(ctx, SignUpInput{Email: "Manager@Geprek.id", Password: "rahasia", FullName: "Bu Manager", Role: "manager"})
	require.NoError(t, err)
	assert.Equal(t, "manager@geprek.id", user.Email)
	assert.NotEqual(t, "rahasia", user.Password)

	session, err := svc.SignIn(ctx, "manager@geprek.id", "rahasia")
	require.NoError(t, err)
	assert.Equal(t, models.RoleManager, session.Role)
	assert.Equal(t, "/manager", session.Redirect)
	assert.True(t, session.ExpiresAt.After(time.Now()))

	claims, err := utils.ValidateToken(session.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "manager", claims.Role)

	current, err := svc.CurrentUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Bu Manager", current.FullName)

	svc.SignOut(session.Token, session.ExpiresAt)
	_, err = utils.ValidateToken(session.Token)
	assert.Error(t, err)
}

func TestSignUpRules(t *testing.T) {
	svc := NewAuthService(newTestDB(t))
	ctx := context.Background()

	_, err := svc.SignUp(ctx, SignUpInput{Email: "a@geprek.id", Password: "123", FullName: "A", Role: "admin"})
	assert.True(t, IsValidation(err))

	_, err = svc.SignUp(ctx, SignUpInput{Email: "a@geprek.id", Password: "123456", FullName: "A", Role: "kasir"})
	assert.True(t, IsValidation(err))

	_, err = svc.SignUp(ctx, SignUpInput{Email: "a@geprek.id", Password: "123456", FullName: "A", Role: "admin"})
	require.NoError(t, err)
	_, err = svc.SignUp(ctx, SignUpInput{Email: "a@geprek.id", Password: "654321", FullName: "B", Role: "admin"})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestSignInRejectsBadCredentials(t *testing.T) {
	svc := NewAuthService(newTestDB(t))
	ctx := context.Background()
	_, err := svc.SignUp(ctx, SignUpInput{Email: "admin@geprek.id", Password: "123456", FullName: "Admin", Role: "admin"})
	require.NoError(t, err)

	_, err = svc.SignIn(ctx, "admin@geprek.id", "salah")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.SignIn(ctx, "tidakada@geprek.id", "123456")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.CurrentUser(ctx, 404)
	assert.ErrorIs(t, err, ErrNotFound)
}
