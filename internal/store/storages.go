package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/MKhiriev/vitascope/internal/config"
	"github.com/MKhiriev/vitascope/internal/logger"
)

// Storages groups every persistence component used by the service layer.
type Storages struct {
	UserRepository        UserRepository
	MeasurementRepository MeasurementRepository
	SessionStore          SessionStore
	RateLimiter           RateLimiter

	db    *DB
	redis *redis.Client
}

// NewStorages connects the database, applies migrations and, when
// cfg.RedisURL is set, moves sessions and rate limits to Redis. Without
// Redis both live in process memory.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	db, err := NewConnect(ctx, cfg.DB, log)
	if err != nil {
		return nil, fmt.Errorf("error connecting database: %w", err)
	}

	if err := db.Migrate(); err != nil {
		db.Close()
		return nil, err
	}

	storages := &Storages{
		UserRepository:        NewUserRepository(db, log),
		MeasurementRepository: NewMeasurementRepository(db, log),
		db:                    db,
	}

	if cfg.RedisURL == "" {
		log.Info().Str("func", "NewStorages").Msg("using in-memory sessions and rate limits")
		storages.SessionStore = NewMemorySessionStore()
		storages.RateLimiter = NewMemoryRateLimiter()
		return storages, nil
	}

	client, err := NewRedisClient(ctx, cfg.RedisURL, log)
	if err != nil {
		db.Close()
		return nil, err
	}
	storages.redis = client
	storages.SessionStore = NewRedisSessionStore(client)
	storages.RateLimiter = NewRedisRateLimiter(client)

	return storages, nil
}

// Close releases the database and Redis connections.
func (s *Storages) Close() error {
	var errs []error
	if s.redis != nil {
		errs = append(errs, s.redis.Close())
	}
	if s.db != nil {
		errs = append(errs, s.db.Close())
	}
	return errors.Join(errs...)
}
