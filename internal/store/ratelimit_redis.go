package store

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MKhiriev/vitascope/internal/logger"
	"github.com/MKhiriev/vitascope/models"
)

const rateLimitKeyPrefix = "vitascope:ratelimit:"

// redisRateLimiter is a fixed-window counter shared through Redis.
type redisRateLimiter struct {
	client redis.UniversalClient
}

// NewRedisRateLimiter returns a [RateLimiter] shared by every server
// instance connected to client.
func NewRedisRateLimiter(client redis.UniversalClient) RateLimiter {
	return &redisRateLimiter{client: client}
}

func (l *redisRateLimiter) Allow(ctx context.Context, key string, limit int, period time.Duration) (models.RateDecision, error) {
	redisKey := rateLimitKeyPrefix + key

	pipe := l.client.TxPipeline()
	incr := pipe.Incr(ctx, redisKey)
	ttl := pipe.PTTL(ctx, redisKey)
	if _, err := pipe.Exec(ctx); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*redisRateLimiter.Allow").Str("key", key).Msg("failed to count hit")
		return models.RateDecision{}, fmt.Errorf("%w: %w", ErrRedisUnavailable, err)
	}

	untilReset := ttl.Val()
	// the first hit of a window has no expiry yet
	if untilReset < 0 {
		if err := l.client.PExpire(ctx, redisKey, period).Err(); err != nil {
			return models.RateDecision{}, fmt.Errorf("%w: %w", ErrRedisUnavailable, err)
		}
		untilReset = period
	}

	return decide(int(incr.Val()), limit, untilReset), nil
}
