package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/vitascope/internal/adapter"
	"github.com/MKhiriev/vitascope/internal/config"
	"github.com/MKhiriev/vitascope/internal/logger"
	"github.com/MKhiriev/vitascope/internal/tui"
	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	cfg, err := config.GetClientConfig(os.Args[1:])
	if err != nil {
		logger.NewLogger("vitascope-monitor").Fatal().Err(err).Msg("error getting configs")
	}

	// stdout belongs to the terminal UI
	log := logger.NewFileLogger("vitascope-monitor", cfg.LogFile)

	api, err := adapter.NewHTTPVitaScopeAdapter(cfg.ServerURL, cfg.RequestTimeout, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server adapter")
	}

	ui, err := tui.New(api, cfg.Refresh, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating ui")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()

	if err = ui.Run(ctx); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		log.Fatal().Err(err).Msg("monitor run error")
	}
}
