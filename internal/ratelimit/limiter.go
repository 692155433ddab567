// Package ratelimit bounds booking submissions per client identifier over a
// sliding time window. The store behind the Limiter interface is injectable:
// MemoryStore for single-instance deployments, RedisStore when counters must
// be shared across instances.
package ratelimit

import (
	"context"
	"net"
	"net/http"
	"strings"
	"time"
)

// Decision is the outcome of a single rate-limit check.
// RetryAfter is the recommended client back-off when Allowed is false;
// it is always at least one second on denial.
type Decision struct {
	Allowed    bool
	RetryAfter time.Duration
}

// Limiter decides whether the action identified by key may proceed now.
// Implementations record the attempt as a side effect when allowing it.
type Limiter interface {
	Allow(ctx context.Context, key string) Decision
}

// KeyFunc derives the rate-limit identifier for a request.
type KeyFunc func(r *http.Request) string

// ClientKey returns the caller's network identity: the first entry of
// X-Forwarded-For when present, else the host part of RemoteAddr, else the
// "unknown" sentinel. Suitable behind a trusted proxy.
func ClientKey(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if ip := strings.TrimSpace(strings.Split(xff, ",")[0]); ip != "" {
			return ip
		}
	}

	host, _, err := net.SplitHostPort(strings.TrimSpace(r.RemoteAddr))
	if err == nil && host != "" {
		return host
	}
	if r.RemoteAddr != "" {
		return r.RemoteAddr
	}
	return "unknown"
}
