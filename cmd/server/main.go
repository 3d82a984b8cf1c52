package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/MKhiriev/go-user-service/internal/adapter"
	"github.com/MKhiriev/go-user-service/internal/config"
	"github.com/MKhiriev/go-user-service/internal/handler"
	"github.com/MKhiriev/go-user-service/internal/logger"
	"github.com/MKhiriev/go-user-service/internal/server"
	"github.com/MKhiriev/go-user-service/internal/service"
	"github.com/MKhiriev/go-user-service/internal/store"
	"github.com/MKhiriev/go-user-service/internal/workers"
	"github.com/MKhiriev/go-user-service/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

// startupTimeout bounds connecting to the store and running migrations.
const startupTimeout = 30 * time.Second

func main() {
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	fmt.Print(buildInfo)

	log := logger.NewLogger("go-user-service")
	cfg, err := config.GetStructuredConfig(os.Args[1:])
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	if err = logger.SetLevel(cfg.App.LogLevel); err != nil {
		log.Fatal().Err(err).Msg("error setting log level")
	}

	startupCtx, cancelStartup := context.WithTimeout(context.Background(), startupTimeout)
	defer cancelStartup()

	storages, err := store.NewStorages(startupCtx, cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	if err = storages.Migrate(startupCtx); err != nil {
		log.Fatal().Err(err).Msg("error migrating storages")
	}

	adapters, err := adapter.NewAdapters(startupCtx, cfg.Adapter, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating adapters")
	}

	services, err := service.NewServices(storages, adapters, *cfg, buildInfo, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	handlers, err := handler.NewHandlers(services, *cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	workersCtx, stopWorkers := context.WithCancel(context.Background())
	bgWorkers := workers.NewWorkers(*cfg, log)
	bgWorkers.Run(workersCtx)

	// blocks until a stop signal
	srv.RunServer()

	stopWorkers()
	bgWorkers.Wait()

	if err = adapters.Close(); err != nil {
		log.Err(err).Msg("error closing adapters")
	}

	closeCtx, cancelClose := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelClose()
	if err = storages.Close(closeCtx); err != nil {
		log.Err(err).Msg("error closing storages")
	}

	log.Info().Msg("go-user-service stopped")
}
