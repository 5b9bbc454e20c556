package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
)

func TestRecordCacheLookup(t *testing.T) {
	hitsBefore := testutil.ToFloat64(CacheLookupsTotal.WithLabelValues("test-lookup", "hit"))
	missesBefore := testutil.ToFloat64(CacheLookupsTotal.WithLabelValues("test-lookup", "miss"))

	RecordCacheLookup("test-lookup", true)
	RecordCacheLookup("test-lookup", false)
	RecordCacheLookup("test-lookup", false)

	assert.Equal(t, hitsBefore+1, testutil.ToFloat64(CacheLookupsTotal.WithLabelValues("test-lookup", "hit")))
	assert.Equal(t, missesBefore+2, testutil.ToFloat64(CacheLookupsTotal.WithLabelValues("test-lookup", "miss")))
}

func TestRecordCacheEvictions(t *testing.T) {
	before := testutil.ToFloat64(CacheEvictionsTotal.WithLabelValues("test-evict", "expired"))

	RecordCacheEvictions("test-evict", "expired", 3)
	RecordCacheEvictions("test-evict", "expired", 0)

	assert.Equal(t, before+3, testutil.ToFloat64(CacheEvictionsTotal.WithLabelValues("test-evict", "expired")))
}

func TestUpdateCacheKeys(t *testing.T) {
	UpdateCacheKeys("test-keys", 7)
	assert.Equal(t, 7.0, testutil.ToFloat64(CacheKeys.WithLabelValues("test-keys")))

	UpdateCacheKeys("test-keys", 0)
	assert.Equal(t, 0.0, testutil.ToFloat64(CacheKeys.WithLabelValues("test-keys")))
}

func TestRecordUpstreamRequest(t *testing.T) {
	tests := []struct {
		name            string
		endpoint        string
		outcome         string
		wantObservation bool
	}{
		{"success", "test-success", OutcomeSuccess, true},
		{"error", "test-error", OutcomeError, true},
		{"rejected by breaker", "test-rejected", OutcomeRejected, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := testutil.ToFloat64(UpstreamRequestsTotal.WithLabelValues(tt.endpoint, tt.outcome))
			RecordUpstreamRequest(tt.endpoint, tt.outcome, 120*time.Millisecond)

			assert.Equal(t, before+1, testutil.ToFloat64(UpstreamRequestsTotal.WithLabelValues(tt.endpoint, tt.outcome)))
			wantSeries := 0
			if tt.wantObservation {
				wantSeries = 1
			}
			assert.Equal(t, wantSeries, countHistogramSeries(t, tt.endpoint))
		})
	}
}

func TestRecordQueryResult(t *testing.T) {
	before := testutil.ToFloat64(ArticlesFilteredTotal.WithLabelValues("test-query"))

	assert.NotPanics(t, func() {
		RecordQueryResult("test-query", 4, 6)
		RecordQueryResult("test-query", 10, 0)
	})

	assert.Equal(t, before+6, testutil.ToFloat64(ArticlesFilteredTotal.WithLabelValues("test-query")))
}

func TestUpdateCircuitBreakerState(t *testing.T) {
	UpdateCircuitBreakerState("test-breaker", 2)
	assert.Equal(t, 2.0, testutil.ToFloat64(CircuitBreakerState.WithLabelValues("test-breaker")))
}

// countHistogramSeries reports how many duration series exist for endpoint.
func countHistogramSeries(t *testing.T, endpoint string) int {
	t.Helper()
	ch := make(chan prometheus.Metric, 64)
	UpstreamRequestDuration.Collect(ch)
	close(ch)

	n := 0
	for m := range ch {
		var pb dto.Metric
		if err := m.Write(&pb); err != nil {
			t.Fatalf("write metric: %v", err)
		}
		for _, lp := range pb.GetLabel() {
			if lp.GetName() == "endpoint" && lp.GetValue() == endpoint {
				n++
			}
		}
	}
	return n
}
