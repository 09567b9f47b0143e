package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MKhiriev/vitascope/internal/logger"
	"github.com/MKhiriev/vitascope/models"
)

const sessionKeyPrefix = "vitascope:session:"

// redisSessionStore keeps sessions as JSON values that expire together with
// the session.
type redisSessionStore struct {
	client redis.UniversalClient
	now    func() time.Time
}

// NewRedisSessionStore returns a [SessionStore] shared by every server
// instance connected to client.
func NewRedisSessionStore(client redis.UniversalClient) SessionStore {
	return &redisSessionStore{client: client, now: time.Now}
}

func (s *redisSessionStore) Save(ctx context.Context, session models.Session) error {
	ttl := session.ExpiresAt.Sub(s.now())
	if ttl <= 0 {
		return s.Delete(ctx, session.ID)
	}

	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("error encoding session: %w", err)
	}

	if err := s.client.Set(ctx, sessionKeyPrefix+session.ID, payload, ttl).Err(); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*redisSessionStore.Save").Msg("failed to save session")
		return fmt.Errorf("%w: %w", ErrRedisUnavailable, err)
	}
	return nil
}

func (s *redisSessionStore) Get(ctx context.Context, sessionID string) (models.Session, error) {
	payload, err := s.client.Get(ctx, sessionKeyPrefix+sessionID).Bytes()
	if errors.Is(err, redis.Nil) {
		return models.Session{}, ErrSessionNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*redisSessionStore.Get").Msg("failed to load session")
		return models.Session{}, fmt.Errorf("%w: %w", ErrRedisUnavailable, err)
	}

	var session models.Session
	if err := json.Unmarshal(payload, &session); err != nil {
		return models.Session{}, fmt.Errorf("%w: %w", ErrDecodingSession, err)
	}
	return session, nil
}

func (s *redisSessionStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, sessionKeyPrefix+sessionID).Err(); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*redisSessionStore.Delete").Msg("failed to delete session")
		return fmt.Errorf("%w: %w", ErrRedisUnavailable, err)
	}
	return nil
}
