package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrMissingSecretKey indicates that no signing key was configured
	// (APP_SECRET_KEY or SECRET_KEY).
	ErrMissingSecretKey = errors.New("secret key is not configured")
	// ErrMissingMailCredentials indicates that the SMTP mailbox or password
	// is missing (MAIL_ADDRESS/MAIL_PASSWORD or EMAIL_ADDRESS/EMAIL_PASSWORD).
	ErrMissingMailCredentials = errors.New("mail credentials are not configured")
	// ErrInvalidMailConfigs indicates an empty SMTP host or a bad port.
	ErrInvalidMailConfigs = errors.New("invalid mail configuration")
	// ErrInvalidServerConfigs indicates a missing listen address.
	ErrInvalidServerConfigs = errors.New("invalid server configuration")
	// ErrInvalidStorageConfigs indicates a missing database DSN.
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidAppConfigs indicates a non-positive token or session lifetime.
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
	// ErrInvalidLimitConfigs indicates a non-positive rate limit or window.
	ErrInvalidLimitConfigs = errors.New("invalid rate limit configuration")
	// ErrInvalidClientConfigs indicates an unusable simulator or monitor setup.
	ErrInvalidClientConfigs = errors.New("invalid client configuration")
	// ErrReadingEnv indicates an environment variable that can not be
	// converted to its field type.
	ErrReadingEnv = errors.New("error getting env configs")
)
