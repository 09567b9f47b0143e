package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token wraps a signed JWT together with its registered claims.
//
// Session cookies carry the session id in the "jti" claim; activation links
// carry the account email in the "sub" claim.
type Token struct {
	// RegisteredClaims provides access to the standard JWT claim set
	// (sub, exp, iat, iss, jti) as defined by RFC 7519.
	jwt.RegisteredClaims

	// SignedString is the compact JWS representation of the token.
	SignedString string `json:"-"`
}

// String returns the compact JWS serialization of the token.
func (t Token) String() string {
	return t.SignedString
}

// Expiry returns the "exp" claim or the zero time when it is missing.
func (t Token) Expiry() time.Time {
	if t.ExpiresAt == nil {
		return time.Time{}
	}
	return t.ExpiresAt.Time
}
