package service

import (
	"context"

	"github.com/MKhiriev/vitascope/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// AuthService drives registration, activation and the two-phase login.
type AuthService interface {
	// Register creates an unverified account and mails an activation link
	// rooted at origin. A failed mail does not fail the registration.
	Register(ctx context.Context, form models.RegistrationForm, origin string) (models.User, error)

	// Activate verifies the account named by an activation token.
	Activate(ctx context.Context, token string) (models.ActivationResult, error)

	// Authenticate checks the password phase and mails a fresh login code.
	// The returned pending state must be kept in the caller's session.
	Authenticate(ctx context.Context, form models.LoginForm) (*models.PendingAuth, error)

	// VerifyOTP completes the login when form carries the pending code.
	VerifyOTP(ctx context.Context, pending *models.PendingAuth, form models.OTPForm) (models.User, error)

	// ResendOTP replaces the pending code and mails the new one.
	ResendOTP(ctx context.Context, pending *models.PendingAuth) error

	// PendingLive reports whether pending still carries a code within the
	// OTP lifetime.
	PendingLive(pending *models.PendingAuth) bool

	// Identify resolves the user bound to a session. A zero, unknown or
	// unverified id resolves to [models.Anonymous].
	Identify(ctx context.Context, userID int64) (models.Identity, error)

	ListUsers(ctx context.Context) ([]models.User, error)
}

// SessionService loads and persists server-side sessions and issues the
// signed cookie value that points at them.
type SessionService interface {
	// Load resolves the cookie value to a session. It always returns a usable
	// session; a missing, forged or expired cookie yields a fresh one.
	Load(ctx context.Context, cookie string) (*models.Session, error)

	// Save persists s and returns the cookie token for it. An expired
	// session is dropped and an empty token is returned.
	Save(ctx context.Context, s *models.Session) (models.Token, error)

	// Renew moves s to a new id and drops the old one.
	Renew(ctx context.Context, s *models.Session) error
}

// TelemetryService ingests device readings and serves the dashboard views.
type TelemetryService interface {
	Ingest(ctx context.Context, payload models.TelemetryPayload) (models.Measurement, error)
	Live(ctx context.Context) (models.LiveReading, error)
	Window(ctx context.Context) (models.MeasurementWindow, error)
}

type AppInfoService interface {
	GetVersionInfo(ctx context.Context) models.VersionInfo
}

// OTPGenerator produces six-digit login codes.
type OTPGenerator interface {
	Generate() (string, error)
}

// PasswordHasher hashes and checks account passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Matches(hash, password string) bool
}
