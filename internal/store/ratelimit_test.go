package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── memory ────────────────────────────────────────────────────────────────────

// TestMemoryRateLimiter_FixedWindow verifies that the limit+1-th hit is
// refused and that the window resets after its period.
func TestMemoryRateLimiter_FixedWindow(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	l := &memoryRateLimiter{windows: map[string]window{}, now: func() time.Time { return now }}
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		d, err := l.Allow(ctx, "login:1.2.3.4", 3, time.Minute)
		require.NoError(t, err)
		assert.True(t, d.Allowed)
		assert.Equal(t, 2-i, d.Remaining)
	}

	now = now.Add(20 * time.Second)
	d, err := l.Allow(ctx, "login:1.2.3.4", 3, time.Minute)
	require.NoError(t, err)
	assert.False(t, d.Allowed)
	assert.Equal(t, 40*time.Second, d.RetryAfter)

	other, err := l.Allow(ctx, "login:5.6.7.8", 3, time.Minute)
	require.NoError(t, err)
	assert.True(t, other.Allowed)

	now = now.Add(time.Minute)
	d, err = l.Allow(ctx, "login:1.2.3.4", 3, time.Minute)
	require.NoError(t, err)
	assert.True(t, d.Allowed)
}

// TestMemoryRateLimiter_SweepsExpiredWindows verifies that windows of
// clients that stopped calling do not accumulate.
func TestMemoryRateLimiter_SweepsExpiredWindows(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	l := &memoryRateLimiter{windows: map[string]window{}, now: func() time.Time { return now }}
	ctx := context.Background()

	for i := range 50 {
		_, err := l.Allow(ctx, fmt.Sprintf("login:10.0.0.%d", i), 10, time.Hour)
		require.NoError(t, err)
	}
	_, err := l.Allow(ctx, "verify-otp:10.0.1.1", 5, 2*time.Hour)
	require.NoError(t, err)
	require.Len(t, l.windows, 51)

	// live windows survive a sweep
	now = now.Add(30 * time.Minute)
	_, err = l.Allow(ctx, "login:10.0.0.1", 10, time.Hour)
	require.NoError(t, err)
	assert.Len(t, l.windows, 51)

	now = now.Add(time.Hour)
	_, err = l.Allow(ctx, "login:192.0.2.1", 10, time.Hour)
	require.NoError(t, err)

	assert.Len(t, l.windows, 2)
	assert.Contains(t, l.windows, "verify-otp:10.0.1.1")
	assert.Contains(t, l.windows, "login:192.0.2.1")
}

// ── redis ─────────────────────────────────────────────────────────────────────

func TestRedisRateLimiter_FixedWindow(t *testing.T) {
	mr, client := newMiniredis(t)
	l := NewRedisRateLimiter(client)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		d, err := l.Allow(ctx, "otp:1.2.3.4", 2, 5*time.Minute)
		require.NoError(t, err)
		assert.True(t, d.Allowed)
	}
	assert.Equal(t, 5*time.Minute, mr.TTL(rateLimitKeyPrefix+"otp:1.2.3.4"))

	d, err := l.Allow(ctx, "otp:1.2.3.4", 2, 5*time.Minute)
	require.NoError(t, err)
	assert.False(t, d.Allowed)
	assert.Greater(t, d.RetryAfter, time.Duration(0))
	assert.LessOrEqual(t, d.RetryAfter, 5*time.Minute)

	mr.FastForward(6 * time.Minute)

	d, err = l.Allow(ctx, "otp:1.2.3.4", 2, 5*time.Minute)
	require.NoError(t, err)
	assert.True(t, d.Allowed)
}

func TestRedisRateLimiter_Unavailable(t *testing.T) {
	mr, client := newMiniredis(t)
	l := NewRedisRateLimiter(client)
	mr.Close()

	_, err := l.Allow(context.Background(), "k", 1, time.Minute)
	assert.ErrorIs(t, err, ErrRedisUnavailable)
}
