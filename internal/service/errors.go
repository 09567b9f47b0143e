package service

import "errors"

var (
	ErrInvalidCredentials  = errors.New("invalid username or password")
	ErrAccountNotActivated = errors.New("account is not activated")
	ErrUserNotFound        = errors.New("user not found")

	ErrOTPMissing  = errors.New("no pending login code")
	ErrOTPMismatch = errors.New("login code does not match")

	ErrEmailDelivery = errors.New("email delivery failed")

	ErrActivationTokenInvalid = errors.New("activation token is invalid or expired")
	ErrTokenCreationFailed    = errors.New("token creation failed")

	ErrMalformedTelemetry = errors.New("malformed telemetry")
)
