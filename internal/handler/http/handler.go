package http

import (
	"github.com/MKhiriev/go-user-service/internal/config"
	"github.com/MKhiriev/go-user-service/internal/logger"
	"github.com/MKhiriev/go-user-service/internal/service"
)

type Handler struct {
	services *service.Services

	auth    config.Auth
	uploads config.Uploads
	server  config.Server

	logger *logger.Logger
}

func NewHandler(services *service.Services, cfg config.StructuredConfig, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		auth:     cfg.Auth,
		uploads:  cfg.Storage.Uploads,
		server:   cfg.Server,
		logger:   logger,
	}
}
