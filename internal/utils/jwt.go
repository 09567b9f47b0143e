package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/vitascope/models"
	"github.com/golang-jwt/jwt/v5"
)

// TokenParams describes the claims of a token produced by [GenerateJWTToken].
type TokenParams struct {
	// Issuer (iss) identifies the issuing service. Required.
	Issuer string
	// Audience (aud) scopes the token to one purpose, e.g. "session".
	Audience string
	// Subject (sub) is the principal the token speaks for.
	Subject string
	// ID (jti) is the unique token identifier.
	ID string
	// TTL is how long the token stays valid. Required.
	TTL time.Duration
	// IssuedAt (iat) defaults to the current time.
	IssuedAt time.Time
}

// GenerateJWTToken creates a signed HMAC-SHA256 JWT token with the given
// claims.
//
// Returns an error if the issuer, the TTL or the sign key is empty, or if
// neither a subject nor an ID is given.
//
// Example usage:
//
//	token, err := utils.GenerateJWTToken(utils.TokenParams{
//	    Issuer: "vitascope", Audience: "session", ID: sessionID, TTL: 24 * time.Hour,
//	}, "secret")
func GenerateJWTToken(params TokenParams, signKey string) (models.Token, error) {
	if params.Issuer == "" || params.TTL <= 0 || signKey == "" {
		return models.Token{}, errors.New("invalid params for generating JWT Token")
	}
	if params.Subject == "" && params.ID == "" {
		return models.Token{}, errors.New("JWT Token needs a subject or an id")
	}

	issuedAt := params.IssuedAt
	if issuedAt.IsZero() {
		issuedAt = time.Now()
	}

	claims := jwt.RegisteredClaims{
		Issuer:    params.Issuer,
		Subject:   params.Subject,
		ID:        params.ID,
		ExpiresAt: jwt.NewNumericDate(issuedAt.Add(params.TTL)),
		IssuedAt:  jwt.NewNumericDate(issuedAt),
	}
	if params.Audience != "" {
		claims.Audience = jwt.ClaimStrings{params.Audience}
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(signKey))
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred during singing JWT token: %w", err)
	}

	return models.Token{RegisteredClaims: claims, SignedString: signed}, nil
}

// ValidateAndParseJWTToken validates the given JWT token string and extracts
// its claims.
//
// Validation includes the HS256 signature, the issuer, the audience (when
// non-empty) and the expiration. Extra parser options, such as
// jwt.WithTimeFunc, are passed through.
//
// Example usage:
//
//	token, err := utils.ValidateAndParseJWTToken(raw, "secret", "vitascope", "session")
//	if err != nil {
//	    // handle invalid or expired token
//	}
func ValidateAndParseJWTToken(tokenString, signKey, issuer, audience string, opts ...jwt.ParserOption) (models.Token, error) {
	opts = append(opts,
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if audience != "" {
		opts = append(opts, jwt.WithAudience(audience))
	}

	var parsed models.Token
	_, err := jwt.ParseWithClaims(tokenString, &parsed, func(*jwt.Token) (any, error) {
		return []byte(signKey), nil
	}, opts...)
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred validating and parsing token: %w", err)
	}

	parsed.SignedString = tokenString
	return parsed, nil
}
