// Package tui implements the read-only terminal monitor of VitaScope.
//
// The monitor polls a running server for the current reading and the recent
// measurement window and renders them with a heart-rate sparkline.
package tui

import (
	"context"
	"time"

	"github.com/MKhiriev/vitascope/internal/adapter"
	"github.com/MKhiriev/vitascope/internal/logger"
	tea "github.com/charmbracelet/bubbletea"
)

type TUI struct {
	api     adapter.VitaScopeAPI
	refresh time.Duration
	logger  *logger.Logger
}

func New(api adapter.VitaScopeAPI, refresh time.Duration, logger *logger.Logger) (*TUI, error) {
	if api == nil {
		return nil, ErrNoAPI
	}
	if refresh <= 0 {
		return nil, ErrInvalidRefresh
	}
	return &TUI{api: api, refresh: refresh, logger: logger}, nil
}

// Run blocks until the user quits or ctx is cancelled.
func (t *TUI) Run(ctx context.Context) error {
	model := newMonitorModel(ctx, t.api, t.refresh, t.logger)
	_, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}
