package main

import (
	"context"
	"fmt"

	"github.com/MKhiriev/vitascope/internal/adapter"
	"github.com/MKhiriev/vitascope/internal/config"
	"github.com/MKhiriev/vitascope/internal/handler"
	"github.com/MKhiriev/vitascope/internal/logger"
	"github.com/MKhiriev/vitascope/internal/server"
	"github.com/MKhiriev/vitascope/internal/service"
	"github.com/MKhiriev/vitascope/internal/store"
	"github.com/MKhiriev/vitascope/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	fmt.Println(buildInfo)

	log := logger.NewLogger("vitascope-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	if err = logger.SetLevel(cfg.App.LogLevel); err != nil {
		log.Fatal().Err(err).Msg("error setting log level")
	}

	ctx := context.Background()

	storages, err := store.NewStorages(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer storages.Close()

	mailer := adapter.NewSMTPMailer(cfg.Mail, log)
	services := service.NewServices(storages, mailer, *cfg, buildInfo, log)

	handlers, err := handler.NewHandlers(services, storages.RateLimiter, *cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	if err = srv.RunServer(ctx); err != nil {
		log.Error().Err(err).Msg("server stopped with error")
	}
}
