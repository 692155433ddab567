package ratelimit

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is an in-process sliding-window Limiter. Per key it keeps the
// timestamps of requests inside the window; older entries are pruned on every
// check. State is process-local and lost on restart, which is acceptable for
// abuse mitigation.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]*memoryEntry

	window  time.Duration
	max     int
	idleTTL time.Duration
	now     func() time.Time
}

type memoryEntry struct {
	stamps   []time.Time
	lastSeen time.Time
}

// MemoryOption customizes a MemoryStore.
type MemoryOption func(*MemoryStore)

// WithClock overrides the time source. Tests use this to step through the
// window without sleeping.
func WithClock(now func() time.Time) MemoryOption {
	return func(s *MemoryStore) { s.now = now }
}

// WithIdleTTL sets how long an unused key survives before the janitor drops it.
func WithIdleTTL(d time.Duration) MemoryOption {
	return func(s *MemoryStore) { s.idleTTL = d }
}

// NewMemoryStore returns a MemoryStore allowing max requests per key within
// a sliding window.
func NewMemoryStore(window time.Duration, max int, opts ...MemoryOption) *MemoryStore {
	s := &MemoryStore{
		entries: make(map[string]*memoryEntry),
		window:  window,
		max:     max,
		idleTTL: 15 * time.Minute,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Allow implements Limiter. When the key has reached max requests within the
// window, the decision is denied with RetryAfter set to the time until the
// oldest in-window request ages out, minimum one second. Otherwise the
// current attempt is recorded and allowed.
func (s *MemoryStore) Allow(_ context.Context, key string) Decision {
	now := s.now()
	cutoff := now.Add(-s.window)

	s.mu.Lock()
	defer s.mu.Unlock()

	ent, ok := s.entries[key]
	if !ok {
		ent = &memoryEntry{}
		s.entries[key] = ent
	}
	ent.lastSeen = now

	// Prune timestamps that have left the window.
	kept := ent.stamps[:0]
	for _, ts := range ent.stamps {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}
	ent.stamps = kept

	if len(ent.stamps) >= s.max {
		retry := s.window - now.Sub(ent.stamps[0])
		if retry < time.Second {
			retry = time.Second
		} else {
			// Round up to whole seconds for the Retry-After header.
			retry = ((retry + time.Second - 1) / time.Second) * time.Second
		}
		return Decision{Allowed: false, RetryAfter: retry}
	}

	ent.stamps = append(ent.stamps, now)
	return Decision{Allowed: true}
}

// Cleanup drops keys not seen within the idle TTL.
func (s *MemoryStore) Cleanup() {
	cutoff := s.now().Add(-s.idleTTL)

	s.mu.Lock()
	defer s.mu.Unlock()

	for k, ent := range s.entries {
		if ent.lastSeen.Before(cutoff) {
			delete(s.entries, k)
		}
	}
}

// StartJanitor runs Cleanup every interval until ctx is done.
func (s *MemoryStore) StartJanitor(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	t := time.NewTicker(interval)
	go func() {
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				s.Cleanup()
			}
		}
	}()
}
