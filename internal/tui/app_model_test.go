package tui

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/MKhiriev/vitascope/internal/adapter"
	"github.com/MKhiriev/vitascope/internal/logger"
	"github.com/MKhiriev/vitascope/internal/mock"
	"github.com/MKhiriev/vitascope/models"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// ─── helpers ────────────────────────────────────────────────────────────────

func newTestModel(t *testing.T) (monitorModel, *mock.MockVitaScopeAPI) {
	t.Helper()
	api := mock.NewMockVitaScopeAPI(gomock.NewController(t))
	return newMonitorModel(context.Background(), api, 10*time.Second, logger.Nop()), api
}

// update feeds msg into m and returns the concrete model.
func update(t *testing.T, m monitorModel, msg tea.Msg) (monitorModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	mm, ok := next.(monitorModel)
	require.True(t, ok)
	return mm, cmd
}

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var connectedWindow = models.MeasurementWindow{
	Status:    models.StreamConnected,
	Labels:    []string{"12:00:00", "12:00:01", "12:00:02"},
	HeartRate: []int{70, 75, 80},
	SpO2:      []int{97, 98, 97},
	Resp:      []int{16, 17, 16},
}

// ─── New ────────────────────────────────────────────────────────────────────

func TestNew_Validation(t *testing.T) {
	api := mock.NewMockVitaScopeAPI(gomock.NewController(t))

	_, err := New(nil, time.Second, logger.Nop())
	assert.ErrorIs(t, err, ErrNoAPI)

	_, err = New(api, 0, logger.Nop())
	assert.ErrorIs(t, err, ErrInvalidRefresh)

	ui, err := New(api, time.Second, logger.Nop())
	require.NoError(t, err)
	assert.NotNil(t, ui)
}

// ─── polling ────────────────────────────────────────────────────────────────

func TestFetchSnapshot_Success(t *testing.T) {
	m, api := newTestModel(t)

	live := models.LiveReading{Timestamp: "2026-03-01 12:00:02", HeartRate: models.NewMetric(80), SpO2: models.NewMetric(97), Resp: models.NewMetric(16)}
	api.EXPECT().LiveData(gomock.Any()).Return(live, nil)
	api.EXPECT().Measurements(gomock.Any()).Return(connectedWindow, nil)

	msg, ok := m.fetchSnapshot()().(snapshotMsg)
	require.True(t, ok)
	require.NoError(t, msg.err)
	assert.Equal(t, live, msg.live)
	assert.Equal(t, connectedWindow, msg.window)
	assert.False(t, msg.at.IsZero())
}

func TestFetchSnapshot_LiveError(t *testing.T) {
	m, api := newTestModel(t)

	api.EXPECT().LiveData(gomock.Any()).Return(models.LiveReading{}, adapter.ErrInternalServerError)

	msg := m.fetchSnapshot()().(snapshotMsg)
	assert.ErrorIs(t, msg.err, adapter.ErrInternalServerError)
}

func TestFetchVersion(t *testing.T) {
	m, api := newTestModel(t)
	api.EXPECT().Version(gomock.Any()).Return(models.VersionInfo{Version: "1.2.0"}, nil)

	msg := m.fetchVersion()().(versionMsg)
	require.NoError(t, msg.err)
	assert.Equal(t, "1.2.0", msg.info.Version)
}

// ─── Update ─────────────────────────────────────────────────────────────────

func TestUpdate_SnapshotRendersReadings(t *testing.T) {
	m, _ := newTestModel(t)

	m, cmd := update(t, m, snapshotMsg{
		live:   models.LiveReading{Timestamp: "2026-03-01 12:00:02", HeartRate: models.NewMetric(80), SpO2: models.NewMetric(97), Resp: models.NewMetric(16)},
		window: connectedWindow,
		at:     time.Date(2026, 3, 1, 12, 0, 3, 0, time.UTC),
	})
	assert.Nil(t, cmd)
	assert.False(t, m.loading)

	view := m.View()
	assert.Contains(t, view, "VITASCOPE MONITOR")
	assert.Contains(t, view, "connected")
	assert.Contains(t, view, "80")
	assert.Contains(t, view, "2026-03-01 12:00:02")
	assert.Contains(t, view, "Heart rate trend")
	assert.Contains(t, view, "updated 12:00:03")
}

func TestUpdate_NoCurrentReadingShowsPlaceholders(t *testing.T) {
	m, _ := newTestModel(t)

	m, _ = update(t, m, snapshotMsg{live: models.NoCurrentReading(), window: models.MeasurementWindow{Status: models.StreamNoData}, at: time.Now()})

	view := m.View()
	assert.Contains(t, view, "--")
	assert.Contains(t, view, "no_data")
	assert.NotContains(t, view, "Heart rate trend")
}

func TestUpdate_SnapshotErrorShowsOverlay(t *testing.T) {
	m, _ := newTestModel(t)

	m, _ = update(t, m, snapshotMsg{err: errors.New("dial tcp 127.0.0.1:5000: connection refused")})
	require.True(t, m.showError)
	assert.Contains(t, m.View(), "No network or server unavailable")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.showError)
}

func TestUpdate_TickSchedulesPoll(t *testing.T) {
	m, _ := newTestModel(t)

	_, cmd := update(t, m, tickMsg(time.Now()))
	assert.NotNil(t, cmd)
}

func TestUpdate_Keys(t *testing.T) {
	m, _ := newTestModel(t)
	m.loading = false

	m, cmd := update(t, m, keyMsg("r"))
	assert.True(t, m.loading)
	assert.NotNil(t, cmd)

	m, _ = update(t, m, versionMsg{info: models.VersionInfo{Version: "1.2.0", Commit: "abc123"}})
	m, _ = update(t, m, keyMsg("v"))
	require.True(t, m.showBuildInfo)
	assert.Contains(t, m.View(), "1.2.0")
	assert.Contains(t, m.View(), "abc123")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.showBuildInfo)

	_, cmd = update(t, m, keyMsg("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestUpdate_VersionErrorKeepsNA(t *testing.T) {
	m, _ := newTestModel(t)

	m, _ = update(t, m, versionMsg{err: adapter.ErrNotFound})
	m, _ = update(t, m, keyMsg("v"))
	assert.Contains(t, m.View(), "N/A")
}
