package tui

import (
	"time"

	"github.com/MKhiriev/vitascope/models"
)

// snapshotMsg carries the result of one poll of the server.
type snapshotMsg struct {
	live   models.LiveReading
	window models.MeasurementWindow
	at     time.Time
	err    error
}

type versionMsg struct {
	info models.VersionInfo
	err  error
}

type tickMsg time.Time
