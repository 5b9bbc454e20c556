package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsproxy/internal/observability/metrics"
)

// fakeClock is a manually advanced Clock.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestStore(t *testing.T, ttl time.Duration) (*Store[string], *fakeClock) {
	t.Helper()
	clock := newFakeClock()
	return New[string](Config{Name: t.Name(), TTL: ttl, Clock: clock}), clock
}

func TestNew_Defaults(t *testing.T) {
	s := New[int](Config{})

	assert.Equal(t, DefaultTTL, s.TTL())
	assert.Equal(t, 0, s.Len())
	assert.Equal(t, Stats{}, s.Stats())
}

func TestStore_GetSet(t *testing.T) {
	s, _ := newTestStore(t, time.Minute)

	_, ok := s.Get("missing")
	assert.False(t, ok)

	s.Set("key", "value")
	got, ok := s.Get("key")
	require.True(t, ok)
	assert.Equal(t, "value", got)

	s.Set("key", "newer")
	got, _ = s.Get("key")
	assert.Equal(t, "newer", got, "last write wins")

	assert.Equal(t, Stats{Keys: 1, Hits: 2, Misses: 1}, s.Stats())
}

func TestStore_Expiry(t *testing.T) {
	tests := []struct {
		name    string
		advance time.Duration
		wantHit bool
	}{
		{"just before expiry", 59 * time.Second, true},
		{"exactly at expiry", time.Minute, false},
		{"after expiry", 2 * time.Minute, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, clock := newTestStore(t, time.Minute)
			s.Set("key", "value")

			clock.Advance(tt.advance)
			_, ok := s.Get("key")

			assert.Equal(t, tt.wantHit, ok)
			if !tt.wantHit {
				assert.Equal(t, 0, s.Len(), "expired entry should be deleted on read")
				assert.Equal(t, int64(1), s.Stats().Misses)
			}
		})
	}
}

func TestStore_SetRestartsTTL(t *testing.T) {
	s, clock := newTestStore(t, time.Minute)

	s.Set("key", "v1")
	clock.Advance(50 * time.Second)
	s.Set("key", "v2")
	clock.Advance(50 * time.Second)

	got, ok := s.Get("key")
	require.True(t, ok)
	assert.Equal(t, "v2", got)
}

func TestStore_Flush(t *testing.T) {
	s, _ := newTestStore(t, time.Minute)
	s.Set("a", "1")
	s.Set("b", "2")
	_, _ = s.Get("a")
	_, _ = s.Get("c")

	before := testutil.ToFloat64(metrics.CacheEvictionsTotal.WithLabelValues(t.Name(), "flush"))
	s.Flush()

	assert.Equal(t, 0, s.Len())
	assert.Equal(t, Stats{Keys: 0, Hits: 1, Misses: 1}, s.Stats(), "flush keeps counters")
	assert.Equal(t, before+2, testutil.ToFloat64(metrics.CacheEvictionsTotal.WithLabelValues(t.Name(), "flush")))

	_, ok := s.Get("a")
	assert.False(t, ok)
}

func TestStore_Sweep(t *testing.T) {
	s, clock := newTestStore(t, time.Minute)
	s.Set("old-1", "x")
	s.Set("old-2", "x")
	clock.Advance(30 * time.Second)
	s.Set("fresh", "y")
	clock.Advance(45 * time.Second)

	assert.Equal(t, 3, s.Len())
	assert.Equal(t, 1, s.Stats().Keys, "stats count only live keys")

	removed := s.Sweep()

	assert.Equal(t, 2, removed)
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, Stats{Keys: 1}, s.Stats(), "sweep does not touch counters")
	assert.Equal(t, 0, s.Sweep())
}

func TestStore_Metrics(t *testing.T) {
	s, _ := newTestStore(t, time.Minute)
	name := t.Name()

	s.Set("a", "1")
	s.Set("b", "2")
	_, _ = s.Get("a")
	_, _ = s.Get("zzz")

	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.CacheKeys.WithLabelValues(name)))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.CacheLookupsTotal.WithLabelValues(name, "hit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.CacheLookupsTotal.WithLabelValues(name, "miss")))
}

func TestStore_ConcurrentAccess(t *testing.T) {
	s, clock := newTestStore(t, time.Minute)

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				key := fmt.Sprintf("key-%d", i%20)
				s.Set(key, fmt.Sprintf("g%d-%d", g, i))
				_, _ = s.Get(key)
				if i%50 == 0 {
					clock.Advance(time.Second)
					s.Sweep()
				}
			}
		}(g)
	}
	wg.Wait()

	stats := s.Stats()
	assert.Equal(t, int64(8*200), stats.Hits+stats.Misses)
	assert.LessOrEqual(t, s.Len(), 20)
}
