package services

import (
	"context"
	"crypto/subtle"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"sla-mart/internal/dto"
	"sla-mart/pkg/config"
	apperrors "sla-mart/pkg/errors"
	"sla-mart/pkg/service"
)

// Идентификатор единственной учетной записи администратора в claims токена.
const adminUserID = 1

type AuthServiceInterface interface {
	Login(ctx context.Context, payload dto.LoginDTO) (*dto.TokenPairDTO, error)
}

// authService - аутентификация единственного администратора витрины.
// Учетная запись задается конфигурацией (логин + bcrypt-хеш пароля),
// таблицы пользователей у сервиса нет.
type authService struct {
	jwtService service.JWTService
	cfg        config.AuthConfig
	logger     *zap.Logger
}

func NewAuthService(jwtService service.JWTService, cfg config.AuthConfig, logger *zap.Logger) AuthServiceInterface {
	return &authService{jwtService: jwtService, cfg: cfg, logger: logger}
}

func (s *authService) Login(ctx context.Context, payload dto.LoginDTO) (*dto.TokenPairDTO, error) {
	if s.cfg.AdminPasswordHash == "" {
		s.logger.Error("ADMIN_PASSWORD_HASH не задан, вход невозможен")
		return nil, apperrors.ErrInvalidCredentials
	}

	if subtle.ConstantTimeCompare([]byte(payload.Login), []byte(s.cfg.AdminLogin)) != 1 {
		return nil, apperrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(s.cfg.AdminPasswordHash), []byte(payload.Password)); err != nil {
		s.logger.Warn("Неудачная попытка входа", zap.String("login", payload.Login))
		return nil, apperrors.ErrInvalidCredentials
	}

	accessToken, refreshToken, err := s.jwtService.GenerateTokens(adminUserID)
	if err != nil {
		s.logger.Error("Ошибка генерации токенов", zap.Error(err))
		return nil, err
	}

	return &dto.TokenPairDTO{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(s.jwtService.GetAccessTokenTTL().Seconds()),
	}, nil
}
