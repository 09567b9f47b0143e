package store

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/MKhiriev/vitascope/internal/logger"
)

// NewRedisClient connects to the Redis server at url
// (e.g. "redis://localhost:6379/0") and pings it.
func NewRedisClient(ctx context.Context, url string, log *logger.Logger) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("error parsing redis url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		log.Err(err).Str("func", "NewRedisClient").Msg("error connecting redis (ping)")
		client.Close()
		return nil, fmt.Errorf("%w: %w", ErrRedisUnavailable, err)
	}
	log.Info().Str("func", "NewRedisClient").Msg("connected to redis successfully")

	return client, nil
}
