package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Cache metrics track the in-memory response cache
var (
	// CacheLookupsTotal counts cache lookups by result (hit, miss)
	CacheLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "news_cache_lookups_total",
			Help: "Total number of response cache lookups",
		},
		[]string{"cache", "result"},
	)

	// CacheKeys tracks the number of live keys held by a cache
	CacheKeys = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "news_cache_keys",
			Help: "Number of keys currently held by the response cache",
		},
		[]string{"cache"},
	)

	// CacheEvictionsTotal counts entries removed by reason (expired, flush)
	CacheEvictionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "news_cache_evictions_total",
			Help: "Total number of cache entries removed",
		},
		[]string{"cache", "reason"},
	)
)

// Upstream metrics track calls to the GNews API
var (
	// UpstreamRequestsTotal counts upstream requests by endpoint and outcome
	UpstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gnews_requests_total",
			Help: "Total number of requests sent to the GNews API",
		},
		[]string{"endpoint", "outcome"},
	)

	// UpstreamRequestDuration measures upstream latency in seconds
	UpstreamRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gnews_request_duration_seconds",
			Help:    "GNews API request duration in seconds",
			Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"endpoint"},
	)

	// UpstreamCoalescedTotal counts callers that shared an in-flight upstream request
	UpstreamCoalescedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gnews_requests_coalesced_total",
			Help: "Total number of callers served by another caller's in-flight upstream request",
		},
		[]string{"endpoint"},
	)

	// CircuitBreakerState exposes breaker state (0 closed, 1 half-open, 2 open)
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state: 0 closed, 1 half-open, 2 open",
		},
		[]string{"name"},
	)
)

// Business metrics track the query operations
var (
	// ArticlesReturned measures how many articles each operation returned
	ArticlesReturned = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "news_articles_returned",
			Help:    "Number of articles returned per query operation",
			Buckets: []float64{0, 1, 5, 10, 25, 50, 100},
		},
		[]string{"operation"},
	)

	// ArticlesFilteredTotal counts articles dropped by local post-filters
	ArticlesFilteredTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "news_articles_filtered_total",
			Help: "Total number of upstream articles removed by local filtering",
		},
		[]string{"operation"},
	)
)
