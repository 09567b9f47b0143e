package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/MKhiriev/vitascope/internal/logger"
	"github.com/MKhiriev/vitascope/internal/store"
	"github.com/MKhiriev/vitascope/models"
)

const (
	// liveMaxAge is how old the newest reading may be to be shown as live.
	liveMaxAge = 30 * time.Second
	// streamMaxAge is how old the newest reading may be for the device to
	// count as still streaming.
	streamMaxAge = 15 * time.Second
	// windowSize is the number of readings in the chart window.
	windowSize = 100
)

// Plausible ranges of a live reading, bounds included.
var (
	heartRateRange = [2]int{30, 200}
	spo2Range      = [2]int{70, 100}
	respRange      = [2]int{5, 50}
)

type telemetryService struct {
	measurementRepository store.MeasurementRepository

	now    func() time.Time
	logger *logger.Logger
}

func NewTelemetryService(measurementRepository store.MeasurementRepository, logger *logger.Logger) TelemetryService {
	return &telemetryService{
		measurementRepository: measurementRepository,
		now:                   time.Now,
		logger:                logger,
	}
}

// Ingest coerces a posted reading and appends it.
//
// A missing or null timestamp defaults to the current local time and a
// missing or null device id to models.DefaultDeviceID. Missing or null
// metrics default to 0. Numbers are truncated to integers and numeric
// strings are parsed; anything else fails with ErrMalformedTelemetry.
func (s *telemetryService) Ingest(ctx context.Context, payload models.TelemetryPayload) (models.Measurement, error) {
	m, err := s.coerce(payload)
	if err != nil {
		logger.FromContext(ctx).Debug().Err(err).Str("func", "*telemetryService.Ingest").Msg("rejected reading")
		return models.Measurement{}, err
	}

	saved, err := s.measurementRepository.SaveMeasurement(ctx, m)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*telemetryService.Ingest").Msg("saving measurement failed")
		return models.Measurement{}, fmt.Errorf("saving measurement failed: %w", err)
	}
	return saved, nil
}

func (s *telemetryService) coerce(p models.TelemetryPayload) (models.Measurement, error) {
	var (
		m   models.Measurement
		err error
	)

	if m.Timestamp, err = textField(p.Timestamp, s.now().Format(models.TimestampLayout)); err != nil {
		return m, fmt.Errorf("%w: timestamp: %w", ErrMalformedTelemetry, err)
	}
	if m.DeviceID, err = textField(p.DeviceID, models.DefaultDeviceID); err != nil {
		return m, fmt.Errorf("%w: deviceId: %w", ErrMalformedTelemetry, err)
	}
	if m.HeartRate, err = intField(p.HeartRate); err != nil {
		return m, fmt.Errorf("%w: heartRate: %w", ErrMalformedTelemetry, err)
	}
	if m.SpO2, err = intField(p.SpO2); err != nil {
		return m, fmt.Errorf("%w: spo2: %w", ErrMalformedTelemetry, err)
	}
	if m.Resp, err = intField(p.Resp); err != nil {
		return m, fmt.Errorf("%w: resp: %w", ErrMalformedTelemetry, err)
	}

	return m, nil
}

func isAbsent(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) == 0 || bytes.Equal(raw, []byte("null"))
}

// textField accepts a string or a number, rendered as sent.
func textField(raw json.RawMessage, fallback string) (string, error) {
	if isAbsent(raw) {
		return fallback, nil
	}
	raw = bytes.TrimSpace(raw)

	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", err
		}
		return s, nil
	}

	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", fmt.Errorf("unexpected value %s", raw)
	}
	return n.String(), nil
}

func intField(raw json.RawMessage) (int, error) {
	if isAbsent(raw) {
		return 0, nil
	}
	raw = bytes.TrimSpace(raw)

	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, err
		}
		v, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return 0, err
		}
		return checkedInt(float64(v))
	}

	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return 0, fmt.Errorf("unexpected value %s", raw)
	}
	if i, err := n.Int64(); err == nil {
		return checkedInt(float64(i))
	}
	f, err := n.Float64()
	if err != nil {
		return 0, err
	}
	return checkedInt(math.Trunc(f))
}

func checkedInt(f float64) (int, error) {
	if f > math.MaxInt32 || f < math.MinInt32 {
		return 0, fmt.Errorf("value %v out of range", f)
	}
	return int(f), nil
}

// Live returns the newest reading, or the placeholder when there is none,
// when it is outside the plausible ranges or when it is older than 30
// seconds. A timestamp that can not be parsed skips the age check.
func (s *telemetryService) Live(ctx context.Context) (models.LiveReading, error) {
	m, err := s.measurementRepository.GetLatestMeasurement(ctx)
	if errors.Is(err, store.ErrNoMeasurementsFound) {
		return models.NoCurrentReading(), nil
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*telemetryService.Live").Msg("latest measurement lookup failed")
		return models.LiveReading{}, fmt.Errorf("latest measurement lookup failed: %w", err)
	}

	if !isPlausible(m) {
		return models.NoCurrentReading(), nil
	}

	now := s.now()
	if at, ok := parseTimestamp(m.Timestamp, now.Location()); ok && now.Sub(at) > liveMaxAge {
		return models.NoCurrentReading(), nil
	}

	return models.LiveReadingOf(m), nil
}

// Window returns the chart window: no_data without readings, disconnected
// when the newest reading is older than 15 seconds, otherwise the last 100
// readings in chronological order.
func (s *telemetryService) Window(ctx context.Context) (models.MeasurementWindow, error) {
	log := logger.FromContext(ctx)

	latest, err := s.measurementRepository.GetLatestMeasurement(ctx)
	if errors.Is(err, store.ErrNoMeasurementsFound) {
		return models.MeasurementWindow{Status: models.StreamNoData}, nil
	}
	if err != nil {
		log.Err(err).Str("func", "*telemetryService.Window").Msg("latest measurement lookup failed")
		return models.MeasurementWindow{}, fmt.Errorf("latest measurement lookup failed: %w", err)
	}

	now := s.now()
	if at, ok := parseTimestamp(latest.Timestamp, now.Location()); ok && now.Sub(at) > streamMaxAge {
		return models.MeasurementWindow{Status: models.StreamDisconnected}, nil
	}

	rows, err := s.measurementRepository.GetRecentMeasurements(ctx, windowSize)
	if err != nil {
		log.Err(err).Str("func", "*telemetryService.Window").Msg("recent measurements lookup failed")
		return models.MeasurementWindow{}, fmt.Errorf("recent measurements lookup failed: %w", err)
	}

	w := models.MeasurementWindow{
		Status:    models.StreamConnected,
		Labels:    make([]string, 0, len(rows)),
		HeartRate: make([]int, 0, len(rows)),
		SpO2:      make([]int, 0, len(rows)),
		Resp:      make([]int, 0, len(rows)),
	}
	for i := len(rows) - 1; i >= 0; i-- {
		w.Labels = append(w.Labels, rows[i].Timestamp)
		w.HeartRate = append(w.HeartRate, rows[i].HeartRate)
		w.SpO2 = append(w.SpO2, rows[i].SpO2)
		w.Resp = append(w.Resp, rows[i].Resp)
	}
	return w, nil
}

func isPlausible(m models.Measurement) bool {
	return within(m.HeartRate, heartRateRange) && within(m.SpO2, spo2Range) && within(m.Resp, respRange)
}

func within(v int, r [2]int) bool {
	return v >= r[0] && v <= r[1]
}

// isoLayouts are tried after the canonical layout, once 'T' is replaced by
// a space and a trailing 'Z' is dropped.
var isoLayouts = []string{
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04",
	"2006-01-02",
}

// parseTimestamp reads a stored timestamp as wall time in loc, unless it
// carries its own offset.
func parseTimestamp(ts string, loc *time.Location) (time.Time, bool) {
	if t, err := time.ParseInLocation(models.TimestampLayout, ts, loc); err == nil {
		return t, true
	}

	normalized := strings.TrimSuffix(strings.Replace(ts, "T", " ", 1), "Z")
	for _, layout := range isoLayouts {
		if t, err := time.ParseInLocation(layout, normalized, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
