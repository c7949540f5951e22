package service

import (
	"github.com/globalmart/auth-service/internal/config"
	"github.com/globalmart/auth-service/internal/logger"
	"github.com/globalmart/auth-service/internal/store"
	"github.com/globalmart/auth-service/internal/utils"
)

type Services struct {
	AuthService    AuthService
	SessionService SessionService
}

func NewServices(repositories *store.Repositories, cfg config.StructuredConfig, log *logger.Logger) (*Services, error) {
	passwordHasher := NewPasswordHasher(cfg.Auth, log)
	sessionService := NewSessionService(repositories.Sessions, repositories.Users, cfg.Auth, log)

	authService, err := NewAuthService(
		repositories.Users,
		passwordHasher,
		sessionService,
		utils.NewUUIDGenerator(),
		cfg.Auth,
		log,
	)
	if err != nil {
		return nil, err
	}

	return &Services{
		AuthService:    authService,
		SessionService: sessionService,
	}, nil
}
