package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"sla-mart/internal/dto"
	"sla-mart/pkg/config"
	apperrors "sla-mart/pkg/errors"
	"sla-mart/pkg/service"
)

func newTestAuthService(t *testing.T, password string) AuthServiceInterface {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	jwtSvc := service.NewJWTService("test-secret-key", time.Hour, 24*time.Hour, zap.NewNop())
	cfg := config.AuthConfig{AdminLogin: "admin", AdminPasswordHash: string(hash)}
	return NewAuthService(jwtSvc, cfg, zap.NewNop())
}

func TestAuthService_Login_Success(t *testing.T) {
	svc := newTestAuthService(t, "секрет")

	tokens, err := svc.Login(context.Background(), dto.LoginDTO{Login: "admin", Password: "секрет"})
	require.NoError(t, err)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)
	assert.Equal(t, int64(3600), tokens.ExpiresIn)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc := newTestAuthService(t, "секрет")

	_, err := svc.Login(context.Background(), dto.LoginDTO{Login: "admin", Password: "не тот"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestAuthService_Login_WrongLogin(t *testing.T) {
	svc := newTestAuthService(t, "секрет")

	_, err := svc.Login(context.Background(), dto.LoginDTO{Login: "root", Password: "секрет"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestAuthService_Login_NoHashConfigured(t *testing.T) {
	jwtSvc := service.NewJWTService("test-secret-key", time.Hour, 24*time.Hour, zap.NewNop())
	svc := NewAuthService(jwtSvc, config.AuthConfig{AdminLogin: "admin"}, zap.NewNop())

	_, err := svc.Login(context.Background(), dto.LoginDTO{Login: "admin", Password: "любой"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}
