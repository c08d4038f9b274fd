package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shelter_backend/internal/auth"
	"shelter_backend/internal/config"
	"shelter_backend/internal/models"
	"shelter_backend/pkg/apperrors"
)

func testConfig() {
	cfg := &config.Config{}
	cfg.JWT.Secret = "unit-test-secret"
	cfg.JWT.TTL = 5
	config.AppConfig = cfg
}

func TestLoginIssuesToken(t *testing.T) {
	testConfig()

	hash, err := auth.HashPassword("open sesame")
	require.NoError(t, err)

	repo := &fakeUserRepo{user: &models.User{
		ID: 5, Login: "anna", PasswordHash: hash, RoleID: models.RoleUser,
	}}
	svc := NewAuthService(repo)

	resp, err := svc.Login(context.Background(), "anna", "open sesame")
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)

	claims, err := auth.ParseToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, uint(5), claims.UserID)
}

func TestLoginRejectsBadPassword(t *testing.T) {
	testConfig()

	hash, _ := auth.HashPassword("open sesame")
	repo := &fakeUserRepo{user: &models.User{ID: 5, Login: "anna", PasswordHash: hash}}
	svc := NewAuthService(repo)

	_, err := svc.Login(context.Background(), "anna", "wrong")
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeInvalidCredentials, appErr.Code)
}

func TestLoginUnknownUserLooksLikeBadCredentials(t *testing.T) {
	testConfig()

	svc := NewAuthService(&fakeUserRepo{})

	_, err := svc.Login(context.Background(), "ghost", "whatever")
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeInvalidCredentials, appErr.Code)
}

func TestRegisterAssignsRegularRole(t *testing.T) {
	testConfig()

	repo := &fakeUserRepo{}
	svc := NewAuthService(repo)

	user, err := svc.Register(context.Background(), &RegisterRequest{
		Login:     "newcomer",
		Password:  "long enough password",
		FirstName: "New",
		LastName:  "Comer",
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, user.RoleID)
	assert.NotEqual(t, "long enough password", user.PasswordHash)
}

func TestRegisterRejectsWeakPassword(t *testing.T) {
	testConfig()

	svc := NewAuthService(&fakeUserRepo{})

	_, err := svc.Register(context.Background(), &RegisterRequest{
		Login: "x", Password: "short", FirstName: "A", LastName: "B",
	})
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeValidationFailed, appErr.Code)
}
