package slo

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	io_prometheus_client "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gaugeValue(t *testing.T, g prometheus.Gauge) float64 {
	t.Helper()
	metric := &io_prometheus_client.Metric{}
	require.NoError(t, g.Write(metric))
	return metric.GetGauge().GetValue()
}

func TestTracker_Empty(t *testing.T) {
	snap := NewTracker(10).Snapshot()

	assert.Equal(t, 0, snap.Requests)
	assert.Equal(t, float64(1), snap.Availability)
	assert.True(t, snap.MeetsTargets())
}

func TestTracker_ErrorRate(t *testing.T) {
	tr := NewTracker(10)
	statuses := []int{200, 200, 400, 404, 500, 200, 503, 200, 200, 200}
	for _, s := range statuses {
		tr.Observe(s, 10*time.Millisecond)
	}

	snap := tr.Publish()
	assert.Equal(t, 10, snap.Requests)
	assert.InDelta(t, 0.2, snap.ErrorRate, 1e-9)
	assert.InDelta(t, 0.8, snap.Availability, 1e-9)
	assert.False(t, snap.MeetsTargets())

	assert.InDelta(t, 0.8, gaugeValue(t, SLOAvailability), 1e-9)
	assert.InDelta(t, 0.2, gaugeValue(t, SLOErrorRate), 1e-9)
}

func TestTracker_Percentiles(t *testing.T) {
	tr := NewTracker(100)
	for i := 1; i <= 100; i++ {
		tr.Observe(http.StatusOK, time.Duration(i)*time.Millisecond)
	}

	snap := tr.Publish()
	assert.InDelta(t, 0.095, snap.LatencyP95, 1e-9)
	assert.InDelta(t, 0.099, snap.LatencyP99, 1e-9)
	assert.InDelta(t, 0.095, gaugeValue(t, SLOLatencyP95), 1e-9)
	assert.InDelta(t, 0.099, gaugeValue(t, SLOLatencyP99), 1e-9)
}

func TestTracker_WindowRollsOver(t *testing.T) {
	tr := NewTracker(4)
	for i := 0; i < 4; i++ {
		tr.Observe(http.StatusInternalServerError, time.Millisecond)
	}
	for i := 0; i < 4; i++ {
		tr.Observe(http.StatusOK, time.Millisecond)
	}

	snap := tr.Snapshot()
	assert.Equal(t, 4, snap.Requests)
	assert.Equal(t, float64(0), snap.ErrorRate)
	assert.True(t, snap.MeetsTargets())
}

func TestNewTracker_DefaultWindow(t *testing.T) {
	tr := NewTracker(0)
	assert.Len(t, tr.samples, DefaultWindow)
}

func TestTracker_Concurrent(t *testing.T) {
	tr := NewTracker(50)
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				tr.Observe(http.StatusOK, time.Millisecond)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, tr.Snapshot().Requests)
}

func TestMiddleware(t *testing.T) {
	tr := NewTracker(10)
	handler := Middleware(tr)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/fail" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte("ok"))
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/news/headlines", nil))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/fail", nil))

	snap := tr.Snapshot()
	assert.Equal(t, 2, snap.Requests)
	assert.InDelta(t, 0.5, snap.ErrorRate, 1e-9)
}

func TestTracker_PercentilesUnordered(t *testing.T) {
	tr := NewTracker(20)
	for i := 20; i >= 1; i-- {
		tr.Observe(http.StatusOK, time.Duration(i)*10*time.Millisecond)
	}

	first := tr.Snapshot()
	assert.InDelta(t, 0.19, first.LatencyP95, 1e-9)
	assert.InDelta(t, 0.2, first.LatencyP99, 1e-9)
	assert.Equal(t, first, tr.Snapshot(), "snapshots do not disturb the window")
}

func TestMetricsHandler_PublishesOnScrape(t *testing.T) {
	tr := NewTracker(4)
	tr.Observe(http.StatusOK, time.Millisecond)
	tr.Observe(http.StatusBadGateway, time.Millisecond)

	var atScrape float64
	handler := MetricsHandler(tr, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atScrape = gaugeValue(t, SLOErrorRate)
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.InDelta(t, 0.5, atScrape, 1e-9)
}
