// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the outbound integrations of VitaScope.
//
// [Mailer] delivers activation links and login codes over SMTP. [VitaScopeAPI]
// is the REST client used by the device simulator and the terminal monitor.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic error
// handling (e.g. [ErrBadRequest] for 400, [ErrTooManyRequests] for 429).
package adapter

import (
	"context"

	"github.com/MKhiriev/vitascope/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/adapter_mock.go -package=mock

// Mailer sends a single plain-text email. Send blocks until the relay has
// accepted or rejected the message.
type Mailer interface {
	Send(ctx context.Context, msg models.MailMessage) error
}

// VitaScopeAPI talks to a running VitaScope server over HTTP.
type VitaScopeAPI interface {
	// PostReading submits one device reading to /api/data.
	PostReading(ctx context.Context, reading models.DeviceReading) error

	// LiveData fetches the current reading from /get_live_data.
	LiveData(ctx context.Context) (models.LiveReading, error)

	// Measurements fetches the chart window from /api/measurements.
	Measurements(ctx context.Context) (models.MeasurementWindow, error)

	// Version fetches the build information from /api/version.
	Version(ctx context.Context) (models.VersionInfo, error)
}
