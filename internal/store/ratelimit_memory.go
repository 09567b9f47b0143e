package store

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/vitascope/models"
)

type window struct {
	hits    int
	resetAt time.Time
}

// sweepInterval is how often expired windows are dropped.
const sweepInterval = time.Minute

// memoryRateLimiter is a fixed-window counter kept in process memory.
// Expired windows are dropped at most once per sweepInterval.
type memoryRateLimiter struct {
	mu        sync.Mutex
	windows   map[string]window
	nextSweep time.Time
	now       func() time.Time
}

// NewMemoryRateLimiter returns a [RateLimiter] for single-process
// deployments.
func NewMemoryRateLimiter() RateLimiter {
	return &memoryRateLimiter{
		windows: make(map[string]window),
		now:     time.Now,
	}
}

func (l *memoryRateLimiter) Allow(_ context.Context, key string, limit int, period time.Duration) (models.RateDecision, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if !now.Before(l.nextSweep) {
		l.sweep(now)
		l.nextSweep = now.Add(sweepInterval)
	}

	w, ok := l.windows[key]
	if !ok || !now.Before(w.resetAt) {
		w = window{resetAt: now.Add(period)}
	}
	w.hits++
	l.windows[key] = w

	return decide(w.hits, limit, w.resetAt.Sub(now)), nil
}

// sweep removes windows that have ended. Callers must hold the lock.
func (l *memoryRateLimiter) sweep(now time.Time) {
	for key, w := range l.windows {
		if !now.Before(w.resetAt) {
			delete(l.windows, key)
		}
	}
}

func decide(hits, limit int, untilReset time.Duration) models.RateDecision {
	if hits > limit {
		return models.RateDecision{Allowed: false, RetryAfter: untilReset}
	}
	return models.RateDecision{Allowed: true, Remaining: limit - hits}
}
