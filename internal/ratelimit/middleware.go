package ratelimit

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/ybfstudio/booking-api/internal/metrics"
)

// Middleware gates the wrapped routes through the given Limiter.
// Denied requests receive 429 with a Retry-After header (whole seconds) and
// a JSON error body; nothing downstream runs, so no side effect occurs.
// A nil keyFn defaults to ClientKey.
func Middleware(limiter Limiter, keyFn KeyFunc) func(next http.Handler) http.Handler {
	if keyFn == nil {
		keyFn = ClientKey
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			dec := limiter.Allow(r.Context(), keyFn(r))
			if !dec.Allowed {
				metrics.RateLimited.Inc()
				w.Header().Set("Retry-After", strconv.Itoa(int(dec.RetryAfter.Seconds())))
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				_ = json.NewEncoder(w).Encode(map[string]string{
					"error": "too many requests, please try again later",
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
