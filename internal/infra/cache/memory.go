// Package cache provides the in-process response cache of the news proxy.
package cache

import (
	"sync"
	"sync/atomic"
	"time"

	"newsproxy/internal/observability/metrics"
)

// DefaultTTL is used when Config.TTL is not positive.
const DefaultTTL = 5 * time.Minute

// Stats is a snapshot of cache usage. Hits and misses are cumulative since the
// store was created; Flush does not reset them.
type Stats struct {
	Keys   int   `json:"keys"`
	Hits   int64 `json:"hits"`
	Misses int64 `json:"misses"`
}

// Config holds configuration for Store.
type Config struct {
	// Name labels the store's metrics. Default: "default"
	Name string

	// TTL applies uniformly to every entry.
	// Default: DefaultTTL
	TTL time.Duration

	// Clock provides time operations for testing.
	// Default: SystemClock
	Clock Clock
}

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

// Store is a thread-safe map from key to value in which every entry expires a fixed
// TTL after it was written. Expired entries are removed lazily by Get and in bulk
// by Sweep.
//
// The store is optimized for read-heavy workloads using sync.RWMutex. Concurrent
// writers to one key follow last-write-wins.
type Store[V any] struct {
	mu    sync.RWMutex
	items map[string]entry[V]

	ttl   time.Duration
	clock Clock
	name  string

	hits   atomic.Int64
	misses atomic.Int64
}

// New creates an empty store.
func New[V any](cfg Config) *Store[V] {
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTTL
	}
	if cfg.Clock == nil {
		cfg.Clock = SystemClock{}
	}
	if cfg.Name == "" {
		cfg.Name = "default"
	}

	metrics.UpdateCacheKeys(cfg.Name, 0)

	return &Store[V]{
		items: make(map[string]entry[V]),
		ttl:   cfg.TTL,
		clock: cfg.Clock,
		name:  cfg.Name,
	}
}

// TTL returns the lifetime of an entry.
func (s *Store[V]) TTL() time.Duration {
	return s.ttl
}

// Get returns the value stored under key. Every call counts as a hit or a miss;
// an entry found past its expiry counts as a miss and is deleted.
func (s *Store[V]) Get(key string) (V, bool) {
	now := s.clock.Now()

	s.mu.RLock()
	e, ok := s.items[key]
	s.mu.RUnlock()

	if ok && now.Before(e.expiresAt) {
		s.hits.Add(1)
		metrics.RecordCacheLookup(s.name, true)
		return e.value, true
	}

	if ok {
		s.mu.Lock()
		// The entry may have been refreshed since the read lock was released.
		if cur, still := s.items[key]; still && !now.Before(cur.expiresAt) {
			delete(s.items, key)
			metrics.RecordCacheEvictions(s.name, "expired", 1)
			metrics.UpdateCacheKeys(s.name, len(s.items))
		}
		s.mu.Unlock()
	}

	s.misses.Add(1)
	metrics.RecordCacheLookup(s.name, false)

	var zero V
	return zero, false
}

// Set stores value under key, replacing any previous entry and restarting its TTL.
func (s *Store[V]) Set(key string, value V) {
	expiresAt := s.clock.Now().Add(s.ttl)

	s.mu.Lock()
	s.items[key] = entry[V]{value: value, expiresAt: expiresAt}
	n := len(s.items)
	s.mu.Unlock()

	metrics.UpdateCacheKeys(s.name, n)
}

// Flush removes every entry at once. Hit and miss counters are kept.
func (s *Store[V]) Flush() {
	s.mu.Lock()
	n := len(s.items)
	s.items = make(map[string]entry[V])
	s.mu.Unlock()

	metrics.RecordCacheEvictions(s.name, "flush", n)
	metrics.UpdateCacheKeys(s.name, 0)
}

// Sweep deletes every expired entry and returns how many were removed.
func (s *Store[V]) Sweep() int {
	now := s.clock.Now()

	s.mu.Lock()
	removed := 0
	for key, e := range s.items {
		if !now.Before(e.expiresAt) {
			delete(s.items, key)
			removed++
		}
	}
	n := len(s.items)
	s.mu.Unlock()

	metrics.RecordCacheEvictions(s.name, "expired", removed)
	metrics.UpdateCacheKeys(s.name, n)
	return removed
}

// Len returns the number of stored entries, including expired ones that have not
// been removed yet.
func (s *Store[V]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Stats returns the number of live keys and the cumulative hit and miss counters.
func (s *Store[V]) Stats() Stats {
	now := s.clock.Now()

	s.mu.RLock()
	keys := 0
	for _, e := range s.items {
		if now.Before(e.expiresAt) {
			keys++
		}
	}
	s.mu.RUnlock()

	return Stats{
		Keys:   keys,
		Hits:   s.hits.Load(),
		Misses: s.misses.Load(),
	}
}
