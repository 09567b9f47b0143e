package http

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/MKhiriev/vitascope/internal/logger"
	"github.com/MKhiriev/vitascope/models"
)

// withRateLimit allows at most limit requests per window and client IP to
// the wrapped routes; name separates the counters of different routes.
// Rejected requests get 429 with a Retry-After header. A failing limiter
// lets the request through.
func (h *Handler) withRateLimit(name string, limit int, window time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if h.limiter == nil || limit <= 0 || window <= 0 {
				next.ServeHTTP(w, r)
				return
			}

			key := name + ":" + clientIP(r)
			decision, err := h.limiter.Allow(r.Context(), key, limit, window)
			if err != nil {
				logger.FromRequest(r).Err(err).Str("func", "*Handler.withRateLimit").Str("key", key).Msg("rate limiter failed")
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(decision.Remaining))

			if !decision.Allowed {
				logger.FromRequest(r).Warn().Str("key", key).Dur("retry_after", decision.RetryAfter).Msg("rate limit exceeded")
				w.Header().Set("Retry-After", strconv.Itoa(retryAfterSeconds(decision.RetryAfter)))
				h.writeJSON(w, r, models.ErrorMessage{Error: msgTooManyRequests}, http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// retryAfterSeconds rounds up and never returns less than one second.
func retryAfterSeconds(d time.Duration) int {
	seconds := int(math.Ceil(d.Seconds()))
	if seconds < 1 {
		return 1
	}
	return seconds
}
