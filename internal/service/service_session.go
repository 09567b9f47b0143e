package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/vitascope/internal/config"
	"github.com/MKhiriev/vitascope/internal/logger"
	"github.com/MKhiriev/vitascope/internal/store"
	"github.com/MKhiriev/vitascope/internal/utils"
	"github.com/MKhiriev/vitascope/models"
	"github.com/golang-jwt/jwt/v5"
)

const sessionAudience = "session"

type sessionService struct {
	store store.SessionStore
	ids   *utils.UUIDGenerator

	signKey string
	ttl     time.Duration

	now    func() time.Time
	logger *logger.Logger
}

// NewSessionService returns a SessionService keeping state in sessionStore.
// Cookie tokens are HS256 JWTs signed with cfg.SecretKey whose "jti" is the
// session id.
func NewSessionService(sessionStore store.SessionStore, cfg config.App, logger *logger.Logger) SessionService {
	return &sessionService{
		store:   sessionStore,
		ids:     utils.NewUUIDGenerator(),
		signKey: cfg.SecretKey,
		ttl:     cfg.SessionTTL,
		now:     time.Now,
		logger:  logger,
	}
}

func (s *sessionService) newSession() *models.Session {
	return &models.Session{
		ID:        s.ids.Generate(),
		ExpiresAt: s.now().Add(s.ttl),
	}
}

// Load implements [SessionService]. A store failure is returned together
// with a fresh session so the request can still be served.
func (s *sessionService) Load(ctx context.Context, cookie string) (*models.Session, error) {
	if cookie == "" {
		return s.newSession(), nil
	}

	token, err := utils.ValidateAndParseJWTToken(cookie, s.signKey, tokenIssuer, sessionAudience, jwt.WithTimeFunc(s.now))
	if err != nil || token.ID == "" {
		logger.FromContext(ctx).Debug().Err(err).Str("func", "*sessionService.Load").Msg("discarding session cookie")
		return s.newSession(), nil
	}

	session, err := s.store.Get(ctx, token.ID)
	if errors.Is(err, store.ErrSessionNotFound) {
		return s.newSession(), nil
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*sessionService.Load").Msg("session lookup failed")
		return s.newSession(), fmt.Errorf("session lookup failed: %w", err)
	}

	return &session, nil
}

// Save implements [SessionService].
func (s *sessionService) Save(ctx context.Context, session *models.Session) (models.Token, error) {
	ttl := session.ExpiresAt.Sub(s.now())
	if ttl <= 0 {
		if err := s.store.Delete(ctx, session.ID); err != nil {
			return models.Token{}, fmt.Errorf("session delete failed: %w", err)
		}
		return models.Token{}, nil
	}

	if err := s.store.Save(ctx, *session); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*sessionService.Save").Msg("session save failed")
		return models.Token{}, fmt.Errorf("session save failed: %w", err)
	}

	token, err := utils.GenerateJWTToken(utils.TokenParams{
		Issuer:   tokenIssuer,
		Audience: sessionAudience,
		ID:       session.ID,
		TTL:      ttl,
		IssuedAt: s.now(),
	}, s.signKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// Renew implements [SessionService]. The expiry is reset as well.
func (s *sessionService) Renew(ctx context.Context, session *models.Session) error {
	old := session.ID
	session.ID = s.ids.Generate()
	session.ExpiresAt = s.now().Add(s.ttl)

	if err := s.store.Delete(ctx, old); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*sessionService.Renew").Msg("old session delete failed")
		return fmt.Errorf("session delete failed: %w", err)
	}
	return nil
}
