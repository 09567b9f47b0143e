package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/vitascope/internal/service"
	"github.com/MKhiriev/vitascope/internal/store"
	"github.com/MKhiriev/vitascope/internal/validators"
)

var errorStatusMap = map[error]int{
	ErrInvalidBody:            http.StatusBadRequest,
	ErrUnsupportedContentType: http.StatusUnsupportedMediaType,

	validators.ErrValidation: http.StatusBadRequest,

	// duplicates are reported as field errors of the registration form
	store.ErrUsernameAlreadyExists: http.StatusBadRequest,
	store.ErrEmailAlreadyExists:    http.StatusBadRequest,

	service.ErrInvalidCredentials:     http.StatusUnauthorized,
	service.ErrOTPMismatch:            http.StatusUnauthorized,
	service.ErrAccountNotActivated:    http.StatusForbidden,
	service.ErrOTPMissing:             http.StatusBadRequest,
	service.ErrActivationTokenInvalid: http.StatusBadRequest,
	service.ErrMalformedTelemetry:     http.StatusBadRequest,
	service.ErrUserNotFound:           http.StatusNotFound,
	service.ErrEmailDelivery:          http.StatusInternalServerError,

	store.ErrBuildingSQLQuery:   http.StatusInternalServerError,
	store.ErrExecutingQuery:     http.StatusInternalServerError,
	store.ErrExecutingStatement: http.StatusInternalServerError,
	store.ErrScanningRow:        http.StatusInternalServerError,
	store.ErrScanningRows:       http.StatusInternalServerError,
	store.ErrRedisUnavailable:   http.StatusServiceUnavailable,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}
