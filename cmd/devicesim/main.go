package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/vitascope/internal/adapter"
	"github.com/MKhiriev/vitascope/internal/config"
	"github.com/MKhiriev/vitascope/internal/logger"
	"github.com/MKhiriev/vitascope/internal/workers"
)

func main() {
	log := logger.NewLogger("vitascope-devicesim")
	cfg, err := config.GetClientConfig(os.Args[1:])
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	api, err := adapter.NewHTTPVitaScopeAdapter(cfg.ServerURL, cfg.RequestTimeout, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server adapter")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	log.Info().
		Str("server", cfg.ServerURL).
		Str("device_id", cfg.DeviceID).
		Dur("interval", cfg.Interval).
		Int("count", cfg.Count).
		Msg("starting device simulator")

	sim := workers.NewDeviceSimulator(api, cfg.DeviceID, cfg.Interval, cfg.Count, log)
	if err = workers.NewWorkers(sim).Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("simulator stopped with error")
	}
}
