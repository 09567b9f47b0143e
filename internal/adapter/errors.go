package adapter

import "errors"

// HTTP status errors returned by [VitaScopeAPI] implementations.
var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrTooManyRequests     = errors.New("too many requests")
	ErrInternalServerError = errors.New("internal server error")
	ErrServiceUnavailable  = errors.New("service unavailable")
)

// ErrSendingMail wraps every SMTP failure.
var ErrSendingMail = errors.New("error sending mail")
