// Package http provides the HTTP shell of the news proxy: health and index
// endpoints, the 404 fallback, metrics collection and the middleware chain.
package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"newsproxy/internal/infra/cache"
	"newsproxy/internal/observability/slo"
)

// Overall health states.
const (
	StatusOK       = "OK"
	StatusDegraded = "DEGRADED"
)

// HealthResponse represents the JSON response of the health endpoint.
type HealthResponse struct {
	Status    string                 `json:"status"`    // "OK" or "DEGRADED"
	Timestamp string                 `json:"timestamp"` // ISO 8601 format
	Uptime    float64                `json:"uptime"`    // Seconds since start
	Version   string                 `json:"version"`
	Checks    map[string]CheckStatus `json:"checks"`
}

// CheckStatus represents the status of a single health check.
type CheckStatus struct {
	Status  string                 `json:"status"`            // "healthy" or "unhealthy"
	Message string                 `json:"message,omitempty"` // Optional status message
	Details map[string]interface{} `json:"details,omitempty"` // Optional additional details
}

// UpstreamProbe reports the state of the circuit breaker guarding the GNews API.
type UpstreamProbe interface {
	BreakerState() string
}

// CacheProbe reports response cache statistics.
type CacheProbe interface {
	CacheStats() cache.Stats
}

// SLOProbe reports service level indicators over recent requests.
type SLOProbe interface {
	Snapshot() slo.Snapshot
}

// HealthHandler handles health check endpoint requests.
// The proxy keeps serving cached responses while the upstream circuit is open,
// so an open circuit degrades the status without failing the request.
type HealthHandler struct {
	Version   string
	StartedAt time.Time
	Upstream  UpstreamProbe
	Cache     CacheProbe
	SLO       SLOProbe

	// now is overridden in tests.
	now func() time.Time
}

// ServeHTTP returns the application health status.
// @Summary      Health check
// @Tags         health
// @Produce      json
// @Success      200 {object} HealthResponse
// @Router       /health [get]
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	now := time.Now
	if h.now != nil {
		now = h.now
	}
	current := now()

	checks := make(map[string]CheckStatus)
	status := StatusOK

	if h.Upstream != nil {
		check := checkUpstream(h.Upstream)
		checks["upstream"] = check
		if check.Status != "healthy" {
			status = StatusDegraded
		}
	}

	if h.Cache != nil {
		stats := h.Cache.CacheStats()
		checks["cache"] = CheckStatus{
			Status: "healthy",
			Details: map[string]interface{}{
				"keys":   stats.Keys,
				"hits":   stats.Hits,
				"misses": stats.Misses,
			},
		}
	}

	// informational only, a missed target does not degrade the status
	if h.SLO != nil {
		snap := h.SLO.Snapshot()
		check := CheckStatus{
			Status: "healthy",
			Details: map[string]interface{}{
				"requests":            snap.Requests,
				"availability":        snap.Availability,
				"error_rate":          snap.ErrorRate,
				"latency_p95_seconds": snap.LatencyP95,
				"latency_p99_seconds": snap.LatencyP99,
			},
		}
		if !snap.MeetsTargets() {
			check.Status = "unhealthy"
			check.Message = "SLO targets missed over the recent request window"
		}
		checks["slo"] = check
	}

	response := HealthResponse{
		Status:    status,
		Timestamp: current.UTC().Format(time.RFC3339Nano),
		Uptime:    current.Sub(h.StartedAt).Seconds(),
		Version:   h.Version,
		Checks:    checks,
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		slog.Default().Error("health: failed to encode response", slog.Any("error", err))
	}
}

func checkUpstream(p UpstreamProbe) CheckStatus {
	state := p.BreakerState()
	check := CheckStatus{
		Status:  "healthy",
		Details: map[string]interface{}{"circuit_breaker": state},
	}
	if state == "open" {
		check.Status = "unhealthy"
		check.Message = "GNews API circuit is open; serving cached responses only"
	}
	return check
}

// ReadyHandler handles readiness probe requests.
// It reports not ready while the upstream circuit breaker is open.
type ReadyHandler struct {
	Upstream UpstreamProbe
}

// ServeHTTP returns 200 OK if ready, or 503 Service Unavailable while the
// upstream circuit is open.
func (h *ReadyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.Upstream != nil && h.Upstream.BreakerState() == "open" {
		http.Error(w, "upstream circuit open", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("ready")); err != nil {
		slog.Default().Error("ready: failed to write response", slog.Any("error", err))
	}
}

// LiveHandler handles liveness probe requests.
type LiveHandler struct{}

// ServeHTTP always returns 200 OK while the process is able to respond.
func (h *LiveHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("alive")); err != nil {
		slog.Default().Error("alive: failed to write response", slog.Any("error", err))
	}
}
