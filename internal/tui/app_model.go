package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/vitascope/internal/adapter"
	"github.com/MKhiriev/vitascope/internal/logger"
	"github.com/MKhiriev/vitascope/models"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

const sparklineWidth = 48

// monitorModel polls the server every refresh period. A manual refresh does
// not reset the schedule.
type monitorModel struct {
	ctx     context.Context
	api     adapter.VitaScopeAPI
	refresh time.Duration
	logger  *logger.Logger

	spinner spinner.Model
	help    help.Model

	loading    bool
	live       models.LiveReading
	window     models.MeasurementWindow
	lastUpdate time.Time

	version       models.VersionInfo
	showBuildInfo bool

	showError    bool
	errorOverlay errorOverlayModel
}

func newMonitorModel(ctx context.Context, api adapter.VitaScopeAPI, refresh time.Duration, logger *logger.Logger) monitorModel {
	s := spinner.New()
	s.Spinner = spinner.MiniDot

	return monitorModel{
		ctx:     ctx,
		api:     api,
		refresh: refresh,
		logger:  logger,
		spinner: s,
		help:    help.New(),
		loading: true,
		window:  models.MeasurementWindow{Status: models.StreamNoData},
	}
}

func (m monitorModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.fetchSnapshot(), m.fetchVersion(), m.scheduleTick())
}

func (m monitorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tickMsg:
		return m, tea.Batch(m.fetchSnapshot(), m.scheduleTick())

	case snapshotMsg:
		m.loading = false
		if msg.err != nil {
			m.logger.Err(msg.err).Str("func", "monitorModel.Update").Msg("error polling server")
			m.showError = true
			m.errorOverlay = errorOverlayModel{message: humanizeServerUnavailableError(msg.err)}
			return m, nil
		}
		m.showError = false
		m.live = msg.live
		m.window = msg.window
		m.lastUpdate = msg.at
		return m, nil

	case versionMsg:
		if msg.err != nil {
			m.logger.Warn().Err(msg.err).Str("func", "monitorModel.Update").Msg("error fetching server version")
			return m, nil
		}
		m.version = msg.info
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m monitorModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.quit):
		return m, tea.Quit
	case m.showBuildInfo && key.Matches(msg, keys.esc):
		m.showBuildInfo = false
	case m.showError && key.Matches(msg, keys.esc):
		m.showError = false
	case key.Matches(msg, keys.info):
		m.showBuildInfo = !m.showBuildInfo
	case key.Matches(msg, keys.refresh):
		m.loading = true
		return m, m.fetchSnapshot()
	}
	return m, nil
}

func (m monitorModel) View() string {
	if m.showBuildInfo {
		return appStyle.Render(renderBuildInfoWindow(m.version))
	}

	var b strings.Builder
	b.WriteString(renderPage("VITASCOPE MONITOR", m.renderReadings(), m.help.View(keys)))

	if m.showError {
		b.WriteString("\n\n")
		b.WriteString(errorStyle.Render(m.errorOverlay.View()))
	}
	return appStyle.Render(b.String())
}

func (m monitorModel) renderReadings() string {
	var b strings.Builder

	status := string(m.window.Status)
	style, ok := statusStyles[status]
	if !ok {
		style = helpStyle
	}
	fmt.Fprintf(&b, "Status:      %s", style.Render(status))
	if m.loading {
		b.WriteString(" " + m.spinner.View())
	}
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "Heart rate:  %s bpm\n", valueStyle.Render(m.live.HeartRate.String()))
	fmt.Fprintf(&b, "SpO2:        %s %%\n", valueStyle.Render(m.live.SpO2.String()))
	fmt.Fprintf(&b, "Resp. rate:  %s /min\n", valueStyle.Render(m.live.Resp.String()))
	fmt.Fprintf(&b, "Measured at: %s\n", valueOrDash(m.live.Timestamp))

	if spark := sparkline(m.window.HeartRate, sparklineWidth); spark != "" {
		b.WriteString("\nHeart rate trend\n")
		b.WriteString(sparkStyle.Render(spark))
		b.WriteString("\n")
	}

	if !m.lastUpdate.IsZero() {
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("updated " + m.lastUpdate.Format(time.TimeOnly)))
	}
	return b.String()
}

func (m monitorModel) scheduleTick() tea.Cmd {
	return tea.Tick(m.refresh, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// fetchSnapshot polls the live reading and the measurement window.
func (m monitorModel) fetchSnapshot() tea.Cmd {
	ctx, api := m.ctx, m.api
	return func() tea.Msg {
		live, err := api.LiveData(ctx)
		if err != nil {
			return snapshotMsg{err: err}
		}
		window, err := api.Measurements(ctx)
		if err != nil {
			return snapshotMsg{err: err}
		}
		return snapshotMsg{live: live, window: window, at: time.Now()}
	}
}

func (m monitorModel) fetchVersion() tea.Cmd {
	ctx, api := m.ctx, m.api
	return func() tea.Msg {
		info, err := api.Version(ctx)
		return versionMsg{info: info, err: err}
	}
}

func valueOrDash(v string) string {
	if v == "" {
		return "-"
	}
	return v
}
