package http

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/MKhiriev/vitascope/internal/service"
	"github.com/MKhiriev/vitascope/internal/store"
	"github.com/MKhiriev/vitascope/internal/validators"
	"github.com/stretchr/testify/assert"
)

func TestStatusFromError(t *testing.T) {
	fieldErrors := validators.FieldErrors{}
	fieldErrors.Add(validators.FieldEmail, validators.MsgInvalidEmail)

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"field errors", fieldErrors, http.StatusBadRequest},
		{"invalid body", fmt.Errorf("%w: EOF", ErrInvalidBody), http.StatusBadRequest},
		{"unsupported content type", ErrUnsupportedContentType, http.StatusUnsupportedMediaType},
		{"duplicate username", store.ErrUsernameAlreadyExists, http.StatusBadRequest},
		{"invalid credentials", service.ErrInvalidCredentials, http.StatusUnauthorized},
		{"otp mismatch", service.ErrOTPMismatch, http.StatusUnauthorized},
		{"not activated", service.ErrAccountNotActivated, http.StatusForbidden},
		{"malformed telemetry", fmt.Errorf("%w: heartRate", service.ErrMalformedTelemetry), http.StatusBadRequest},
		{"wrapped query failure", fmt.Errorf("latest: %w", store.ErrExecutingQuery), http.StatusInternalServerError},
		{"redis down", store.ErrRedisUnavailable, http.StatusServiceUnavailable},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, statusFromError(tt.err))
		})
	}
}
