package metrics

import (
	"time"
)

// Upstream request outcomes.
const (
	OutcomeSuccess  = "success"
	OutcomeError    = "error"
	OutcomeRejected = "rejected"
)

// RecordCacheLookup records a cache hit or miss.
func RecordCacheLookup(cache string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	CacheLookupsTotal.WithLabelValues(cache, result).Inc()
}

// RecordCacheEvictions records n removed entries. Zero is ignored.
func RecordCacheEvictions(cache, reason string, n int) {
	if n <= 0 {
		return
	}
	CacheEvictionsTotal.WithLabelValues(cache, reason).Add(float64(n))
}

// UpdateCacheKeys sets the current key count of a cache.
func UpdateCacheKeys(cache string, n int) {
	CacheKeys.WithLabelValues(cache).Set(float64(n))
}

// RecordUpstreamRequest records a single upstream call.
// Rejected calls (open circuit) are counted but carry no latency sample.
func RecordUpstreamRequest(endpoint, outcome string, duration time.Duration) {
	UpstreamRequestsTotal.WithLabelValues(endpoint, outcome).Inc()
	if outcome != OutcomeRejected {
		UpstreamRequestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
	}
}

// RecordUpstreamCoalesced records a caller that reused an in-flight request.
func RecordUpstreamCoalesced(endpoint string) {
	UpstreamCoalescedTotal.WithLabelValues(endpoint).Inc()
}

// UpdateCircuitBreakerState sets the state gauge of a named breaker.
func UpdateCircuitBreakerState(name string, state int) {
	CircuitBreakerState.WithLabelValues(name).Set(float64(state))
}

// RecordQueryResult records the outcome of a query operation: how many articles
// were returned and how many were removed by a local filter.
func RecordQueryResult(operation string, returned, filtered int) {
	ArticlesReturned.WithLabelValues(operation).Observe(float64(returned))
	if filtered > 0 {
		ArticlesFilteredTotal.WithLabelValues(operation).Add(float64(filtered))
	}
}
