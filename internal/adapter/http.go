package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/MKhiriev/vitascope/internal/logger"
	"github.com/MKhiriev/vitascope/internal/utils"
	"github.com/MKhiriev/vitascope/models"
)

type httpVitaScopeAdapter struct {
	client *utils.HTTPClient
	logger *logger.Logger
}

// NewHTTPVitaScopeAdapter constructs the REST implementation of
// [VitaScopeAPI]. serverURL may omit the scheme, in which case http is
// assumed.
//
// Returns an error if serverURL is empty or cannot be parsed as a valid URL.
func NewHTTPVitaScopeAdapter(serverURL string, timeout time.Duration, logger *logger.Logger) (VitaScopeAPI, error) {
	baseURL, err := normalizeBaseURL(serverURL)
	if err != nil {
		return nil, fmt.Errorf("invalid server address: %w", err)
	}

	return &httpVitaScopeAdapter{
		client: utils.NewHTTPClient(baseURL, timeout),
		logger: logger,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// PostReading implements [VitaScopeAPI].
func (h *httpVitaScopeAdapter) PostReading(ctx context.Context, reading models.DeviceReading) error {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(reading).
		Post("/api/data")
	if err != nil {
		h.logger.Err(err).Str("func", "*httpVitaScopeAdapter.PostReading").Msg("request failed")
		return fmt.Errorf("error posting reading: %w", err)
	}

	return mapHTTPError(resp)
}

// LiveData implements [VitaScopeAPI].
func (h *httpVitaScopeAdapter) LiveData(ctx context.Context) (models.LiveReading, error) {
	var reading models.LiveReading
	resp, err := h.client.R().
		SetContext(ctx).
		SetResult(&reading).
		Get("/get_live_data")
	if err != nil {
		h.logger.Err(err).Str("func", "*httpVitaScopeAdapter.LiveData").Msg("request failed")
		return models.LiveReading{}, fmt.Errorf("error fetching live data: %w", err)
	}
	if err := mapHTTPError(resp); err != nil {
		return models.LiveReading{}, err
	}

	return reading, nil
}

// Measurements implements [VitaScopeAPI].
func (h *httpVitaScopeAdapter) Measurements(ctx context.Context) (models.MeasurementWindow, error) {
	var window models.MeasurementWindow
	resp, err := h.client.R().
		SetContext(ctx).
		SetResult(&window).
		Get("/api/measurements")
	if err != nil {
		h.logger.Err(err).Str("func", "*httpVitaScopeAdapter.Measurements").Msg("request failed")
		return models.MeasurementWindow{}, fmt.Errorf("error fetching measurements: %w", err)
	}
	if err := mapHTTPError(resp); err != nil {
		return models.MeasurementWindow{}, err
	}

	return window, nil
}

// Version implements [VitaScopeAPI].
func (h *httpVitaScopeAdapter) Version(ctx context.Context) (models.VersionInfo, error) {
	var info models.VersionInfo
	resp, err := h.client.R().
		SetContext(ctx).
		SetResult(&info).
		Get("/api/version")
	if err != nil {
		return models.VersionInfo{}, fmt.Errorf("error fetching version: %w", err)
	}
	if err := mapHTTPError(resp); err != nil {
		return models.VersionInfo{}, err
	}

	return info, nil
}
