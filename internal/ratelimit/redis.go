package ratelimit

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore is a sliding-window Limiter backed by a Redis sorted set per
// key, for deployments where counters must be shared across instances.
// Member scores are request timestamps in unix milliseconds; each check
// prunes aged members, counts the rest, and conditionally records the
// current attempt.
//
// A Redis failure fails open: rate limiting is abuse mitigation, and an
// unreachable counter store must not take the intake endpoint down.
//
// The count and the record run as two separate round-trips, so concurrent
// checks for one key at count = max-1 can all admit before any of them
// records, briefly exceeding max. A Lua script doing prune+count+ZADD in one
// step would make the bound exact; the current bound is approximate.
type RedisStore struct {
	rdb    *redis.Client
	prefix string
	window time.Duration
	max    int
	log    *slog.Logger
}

// NewRedisStore returns a RedisStore allowing max requests per key within a
// sliding window. Keys are namespaced under "ratelimit:".
func NewRedisStore(rdb *redis.Client, window time.Duration, max int, log *slog.Logger) *RedisStore {
	if log == nil {
		log = slog.Default()
	}
	return &RedisStore{
		rdb:    rdb,
		prefix: "ratelimit:",
		window: window,
		max:    max,
		log:    log,
	}
}

// Allow implements Limiter.
func (s *RedisStore) Allow(ctx context.Context, key string) Decision {
	now := time.Now()
	cutoff := now.Add(-s.window).UnixMilli()
	rkey := s.prefix + key

	pipe := s.rdb.Pipeline()
	pipe.ZRemRangeByScore(ctx, rkey, "-inf", strconv.FormatInt(cutoff, 10))
	countCmd := pipe.ZCard(ctx, rkey)
	oldestCmd := pipe.ZRangeWithScores(ctx, rkey, 0, 0)
	if _, err := pipe.Exec(ctx); err != nil {
		s.log.Error("rate limit store unavailable, allowing request", "error", err)
		return Decision{Allowed: true}
	}

	if countCmd.Val() >= int64(s.max) {
		retry := time.Second
		if oldest := oldestCmd.Val(); len(oldest) > 0 {
			oldestAt := time.UnixMilli(int64(oldest[0].Score))
			if d := s.window - now.Sub(oldestAt); d > retry {
				retry = ((d + time.Second - 1) / time.Second) * time.Second
			}
		}
		return Decision{Allowed: false, RetryAfter: retry}
	}

	record := s.rdb.Pipeline()
	record.ZAdd(ctx, rkey, redis.Z{
		Score:  float64(now.UnixMilli()),
		Member: strconv.FormatInt(now.UnixNano(), 10),
	})
	record.PExpire(ctx, rkey, s.window)
	if _, err := record.Exec(ctx); err != nil {
		s.log.Error("rate limit store record failed", "error", err)
	}
	return Decision{Allowed: true}
}
