package store

import (
	"context"
	"time"

	"github.com/MKhiriev/vitascope/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// UserRepository persists accounts in the "users" table.
type UserRepository interface {
	// CreateUser inserts an unverified user and returns it with its id.
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByUsername(ctx context.Context, username string) (models.User, error)
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	FindUserByID(ctx context.Context, userID int64) (models.User, error)
	// MarkUserVerified flips is_verified for email. It reports false when
	// no unverified user with that email exists.
	MarkUserVerified(ctx context.Context, email string) (bool, error)
	ListUsers(ctx context.Context) ([]models.User, error)
}

// MeasurementRepository persists device readings in the "measurements" table.
type MeasurementRepository interface {
	SaveMeasurement(ctx context.Context, measurement models.Measurement) (models.Measurement, error)
	// GetLatestMeasurement returns the row with the highest id.
	GetLatestMeasurement(ctx context.Context) (models.Measurement, error)
	// GetRecentMeasurements returns up to limit rows, newest first.
	GetRecentMeasurements(ctx context.Context, limit uint64) ([]models.Measurement, error)
}

// SessionStore keeps server-side session state keyed by session id.
type SessionStore interface {
	Save(ctx context.Context, session models.Session) error
	// Get returns [ErrSessionNotFound] for unknown or expired sessions.
	Get(ctx context.Context, sessionID string) (models.Session, error)
	Delete(ctx context.Context, sessionID string) error
}

// RateLimiter counts hits per key in fixed windows.
type RateLimiter interface {
	// Allow registers a hit for key and reports whether it is within limit
	// hits per window. When it is not, RetryAfter tells when the window
	// resets.
	Allow(ctx context.Context, key string, limit int, window time.Duration) (models.RateDecision, error)
}

// ErrorClassificator sorts driver errors into retry classes.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
