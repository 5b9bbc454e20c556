// Package slo tracks service level indicators over a rolling window of recent
// requests and exports them as Prometheus gauges.
package slo

import (
	"math"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"newsproxy/internal/handler/http/responsewriter"
)

// SLO targets. Served-from-cache responses dominate, so latency targets are tight.
const (
	// AvailabilitySLO is the target share of non-5xx responses, in percent.
	AvailabilitySLO = 99.9

	// LatencyP95SLO is the p95 latency target in seconds.
	LatencyP95SLO = 0.200

	// LatencyP99SLO is the p99 latency target in seconds.
	LatencyP99SLO = 0.500

	// ErrorRateSLO is the maximum 5xx ratio.
	ErrorRateSLO = 0.001
)

// DefaultWindow is the number of recent requests a Tracker evaluates.
const DefaultWindow = 1000

var (
	SLOAvailability = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "slo_availability_ratio",
			Help: "Availability ratio (0-1) over the recent request window, target: 0.999",
		},
	)

	SLOLatencyP95 = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "slo_latency_p95_seconds",
			Help: "p95 latency in seconds over the recent request window, target: 0.200",
		},
	)

	SLOLatencyP99 = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "slo_latency_p99_seconds",
			Help: "p99 latency in seconds over the recent request window, target: 0.500",
		},
	)

	SLOErrorRate = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "slo_error_rate_ratio",
			Help: "5xx ratio (0-1) over the recent request window, target: 0.001",
		},
	)
)

// Snapshot is a point-in-time view of the indicators.
type Snapshot struct {
	Requests     int     `json:"requests"`
	Availability float64 `json:"availability"`
	ErrorRate    float64 `json:"error_rate"`
	LatencyP95   float64 `json:"latency_p95_seconds"`
	LatencyP99   float64 `json:"latency_p99_seconds"`
}

// MeetsTargets reports whether every indicator is within its target.
func (s Snapshot) MeetsTargets() bool {
	if s.Requests == 0 {
		return true
	}
	return s.Availability*100 >= AvailabilitySLO &&
		s.ErrorRate <= ErrorRateSLO &&
		s.LatencyP95 <= LatencyP95SLO &&
		s.LatencyP99 <= LatencyP99SLO
}

type sample struct {
	failed  bool
	seconds float64
}

// Tracker keeps the last N request outcomes in a ring buffer.
// It is safe for concurrent use.
type Tracker struct {
	mu      sync.Mutex
	samples []sample
	next    int
	full    bool
}

// NewTracker creates a tracker over the last window requests.
// A non-positive window falls back to DefaultWindow.
func NewTracker(window int) *Tracker {
	if window <= 0 {
		window = DefaultWindow
	}
	return &Tracker{samples: make([]sample, window)}
}

// Observe records one request outcome. It does constant work under the lock;
// indicators are computed only by Snapshot and Publish.
func (t *Tracker) Observe(status int, d time.Duration) {
	t.mu.Lock()
	t.samples[t.next] = sample{failed: status >= http.StatusInternalServerError, seconds: d.Seconds()}
	t.next++
	if t.next == len(t.samples) {
		t.next = 0
		t.full = true
	}
	t.mu.Unlock()
}

// Publish computes a snapshot and copies it into the slo_* gauges.
func (t *Tracker) Publish() Snapshot {
	snap := t.Snapshot()
	SLOAvailability.Set(snap.Availability)
	SLOErrorRate.Set(snap.ErrorRate)
	SLOLatencyP95.Set(snap.LatencyP95)
	SLOLatencyP99.Set(snap.LatencyP99)
	return snap
}

// Snapshot computes the indicators over the current window.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.snapshotLocked()
}

func (t *Tracker) snapshotLocked() Snapshot {
	n := t.next
	if t.full {
		n = len(t.samples)
	}
	if n == 0 {
		return Snapshot{Availability: 1}
	}

	durations := make([]float64, n)
	failed := 0
	for i, s := range t.samples[:n] {
		if s.failed {
			failed++
		}
		durations[i] = s.seconds
	}

	errRate := float64(failed) / float64(n)
	return Snapshot{
		Requests:     n,
		Availability: 1 - errRate,
		ErrorRate:    errRate,
		LatencyP95:   percentile(durations, 0.95),
		LatencyP99:   percentile(durations, 0.99),
	}
}

// percentile uses the nearest-rank method. It reorders values.
func percentile(values []float64, p float64) float64 {
	rank := int(math.Ceil(p*float64(len(values)))) - 1
	if rank < 0 {
		rank = 0
	}
	slices.Sort(values)
	return values[rank]
}

// Middleware feeds every request outcome into t.
func Middleware(t *Tracker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rw := responsewriter.Wrap(w)
			start := time.Now()
			next.ServeHTTP(rw, r)
			t.Observe(rw.StatusCode(), time.Since(start))
		})
	}
}

// MetricsHandler publishes the current indicators before next serves a scrape.
func MetricsHandler(t *Tracker, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Publish()
		next.ServeHTTP(w, r)
	})
}
