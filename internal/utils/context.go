// Package utils provides general-purpose helper utilities
// used across different parts of the application.
// Includes tools for working with context, type-safe keys, HTTP response
// writing, HTTP client initialization, JWT token generation and validation,
// and identifier generation.
package utils

import (
	"context"

	"github.com/MKhiriev/vitascope/models"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// RequestStateCtxKey is the key under which the session middleware stores
// the resolved [models.RequestState].
var RequestStateCtxKey = contextKey("requestState")

// WithRequestState returns a copy of ctx carrying state.
func WithRequestState(ctx context.Context, state *models.RequestState) context.Context {
	return context.WithValue(ctx, RequestStateCtxKey, state)
}

// GetRequestStateFromContext retrieves the request state stored by
// [WithRequestState].
//
// Returns ok == false when the value is missing, nil or of another type.
func GetRequestStateFromContext(ctx context.Context) (*models.RequestState, bool) {
	state, ok := ctx.Value(RequestStateCtxKey).(*models.RequestState)
	if !ok || state == nil {
		return nil, false
	}
	return state, true
}
