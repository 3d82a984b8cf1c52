package service

import (
	"fmt"

	"github.com/MKhiriev/go-user-service/internal/adapter"
	"github.com/MKhiriev/go-user-service/internal/config"
	"github.com/MKhiriev/go-user-service/internal/logger"
	"github.com/MKhiriev/go-user-service/internal/store"
	"github.com/MKhiriev/go-user-service/models"
)

type Services struct {
	TokenService   TokenService
	AuthService    AuthService
	UserService    UserService
	AppInfoService AppInfoService
}

func NewServices(storages *store.Storages, adapters *adapter.Adapters, cfg config.StructuredConfig, buildInfo models.AppBuildInfo, logger *logger.Logger) (*Services, error) {
	appInfoService, err := NewAppInfoService(cfg.App, buildInfo, logger)
	if err != nil {
		return nil, fmt.Errorf("error creating app info service: %w", err)
	}

	tokenService := NewTokenService(storages.UserRepository, cfg.Auth, logger)

	return &Services{
		TokenService:   tokenService,
		AuthService:    NewAuthService(storages.UserRepository, tokenService, adapters.MediaUploader, adapters.EventPublisher, cfg.Auth, logger),
		UserService:    NewUserService(storages.UserRepository, adapters.MediaUploader, cfg.Auth, logger),
		AppInfoService: appInfoService,
	}, nil
}
