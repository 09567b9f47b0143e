package service

import (
	"github.com/MKhiriev/vitascope/internal/adapter"
	"github.com/MKhiriev/vitascope/internal/config"
	"github.com/MKhiriev/vitascope/internal/logger"
	"github.com/MKhiriev/vitascope/internal/store"
	"github.com/MKhiriev/vitascope/models"
)

type Services struct {
	AuthService      AuthService
	SessionService   SessionService
	TelemetryService TelemetryService
	AppInfoService   AppInfoService
}

func NewServices(storages *store.Storages, mailer adapter.Mailer, cfg config.StructuredConfig, buildInfo models.AppBuildInfo, logger *logger.Logger) *Services {
	auth := NewAuthValidationService().Wrap(NewAuthService(storages.UserRepository, mailer, cfg.App, logger))

	return &Services{
		AuthService:      auth,
		SessionService:   NewSessionService(storages.SessionStore, cfg.App, logger),
		TelemetryService: NewTelemetryService(storages.MeasurementRepository, logger),
		AppInfoService:   NewAppInfoService(buildInfo, logger),
	}
}
