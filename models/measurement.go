package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// TimestampLayout is the canonical timestamp format of stored measurements.
const TimestampLayout = "2006-01-02 15:04:05"

// DefaultDeviceID is stored when a reading arrives without a device id.
const DefaultDeviceID = "unknown"

// Measurement is a single device reading. Rows are append-only and ordered
// by ID.
type Measurement struct {
	ID        int64  `json:"id"`
	Timestamp string `json:"timestamp"`
	DeviceID  string `json:"deviceId"`
	HeartRate int    `json:"heartRate"`
	SpO2      int    `json:"spo2"`
	Resp      int    `json:"resp"`
}

// TableName returns the name of the database table
// associated with the Measurement model.
func (m Measurement) TableName() string {
	return "measurements"
}

// TelemetryPayload is the raw body of POST /api/data. Fields stay raw so
// that numbers, numeric strings and nulls can be coerced by the service.
type TelemetryPayload struct {
	Timestamp json.RawMessage `json:"timestamp,omitempty"`
	DeviceID  json.RawMessage `json:"deviceId,omitempty"`
	HeartRate json.RawMessage `json:"heartRate,omitempty"`
	SpO2      json.RawMessage `json:"spo2,omitempty"`
	Resp      json.RawMessage `json:"resp,omitempty"`
}

// placeholder is what a metric renders as when there is no current reading.
const placeholder = "--"

// Metric is a vital-sign value that renders as "--" when absent.
type Metric struct {
	Value int
	Valid bool
}

// NewMetric returns a present metric.
func NewMetric(v int) Metric {
	return Metric{Value: v, Valid: true}
}

func (m Metric) MarshalJSON() ([]byte, error) {
	if !m.Valid {
		return json.Marshal(placeholder)
	}
	return json.Marshal(m.Value)
}

func (m *Metric) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*m = Metric{}
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		if s != placeholder {
			return fmt.Errorf("unexpected metric value %q", s)
		}
		*m = Metric{}
		return nil
	}

	var v int
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*m = NewMetric(v)
	return nil
}

func (m Metric) String() string {
	if !m.Valid {
		return placeholder
	}
	return fmt.Sprintf("%d", m.Value)
}

// LiveReading is the body of GET /get_live_data.
type LiveReading struct {
	Timestamp string `json:"timestamp"`
	HeartRate Metric `json:"heartRate"`
	SpO2      Metric `json:"spo2"`
	Resp      Metric `json:"resp"`
}

// NoCurrentReading is served when the newest row is missing, implausible
// or stale.
func NoCurrentReading() LiveReading {
	return LiveReading{}
}

// LiveReadingOf renders m as-is.
func LiveReadingOf(m Measurement) LiveReading {
	return LiveReading{
		Timestamp: m.Timestamp,
		HeartRate: NewMetric(m.HeartRate),
		SpO2:      NewMetric(m.SpO2),
		Resp:      NewMetric(m.Resp),
	}
}

// StreamStatus describes whether a device is currently streaming.
type StreamStatus string

const (
	StreamNoData       StreamStatus = "no_data"
	StreamDisconnected StreamStatus = "disconnected"
	StreamConnected    StreamStatus = "connected"
)

// MeasurementWindow is the body of GET /api/measurements. The series are
// only present when Status is [StreamConnected] and are in chronological
// order.
type MeasurementWindow struct {
	Status    StreamStatus `json:"status"`
	Labels    []string     `json:"labels,omitempty"`
	HeartRate []int        `json:"heartRate,omitempty"`
	SpO2      []int        `json:"spo2,omitempty"`
	Resp      []int        `json:"resp,omitempty"`
}

// DeviceReading is what a bedside device posts to /api/data: vitals as
// decimal strings and a local ISO-8601 timestamp without zone.
type DeviceReading struct {
	DeviceID  string `json:"deviceId"`
	HeartRate string `json:"heartRate"`
	SpO2      string `json:"spo2"`
	Resp      string `json:"resp"`
	Timestamp string `json:"timestamp"`
}

// DeviceTimestampLayout is the timestamp format sent by devices.
const DeviceTimestampLayout = "2006-01-02T15:04:05"
