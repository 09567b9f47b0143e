package http

import (
	"net/netip"
	"time"

	"github.com/MKhiriev/vitascope/internal/config"
	"github.com/MKhiriev/vitascope/internal/logger"
	"github.com/MKhiriev/vitascope/internal/service"
	"github.com/MKhiriev/vitascope/internal/store"
)

type Handler struct {
	services *service.Services
	limiter  store.RateLimiter

	limits         config.Limits
	debug          bool
	corsOrigins    []string
	trustedProxies []netip.Prefix
	requestTimeout time.Duration

	logger *logger.Logger
}

func NewHandler(services *service.Services, limiter store.RateLimiter, cfg config.StructuredConfig, logger *logger.Logger) *Handler {
	trustedProxies, err := cfg.Server.TrustedProxyPrefixes()
	if err != nil {
		// validated at startup; without a usable list no proxy is trusted
		logger.Err(err).Str("func", "NewHandler").Msg("ignoring trusted proxies")
		trustedProxies = nil
	}

	logger.Info().Msg("http handler created")
	return &Handler{
		services:       services,
		limiter:        limiter,
		limits:         cfg.Limits,
		debug:          cfg.App.Debug,
		corsOrigins:    cfg.Server.CORSOrigins,
		trustedProxies: trustedProxies,
		requestTimeout: cfg.Server.RequestTimeout,
		logger:         logger,
	}
}
