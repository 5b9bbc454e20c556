// Package observability groups the logging, metrics, tracing and SLO packages
// used by the news proxy.
//
// Subpackages:
//   - logging: slog construction, request-scoped loggers and secret masking
//   - metrics: Prometheus collectors for the cache, the GNews client and query results
//   - tracing: OpenTelemetry provider, HTTP middleware and span helpers
//   - slo: rolling-window service level indicators
//
// Example usage:
//
//	import (
//	    "newsproxy/internal/observability/logging"
//	    "newsproxy/internal/observability/metrics"
//	)
//
//	func main() {
//	    logger := logging.New(os.Stdout, "info", "json")
//	    logger.Info("application started")
//
//	    metrics.RecordCacheLookup("gnews", true)
//	}
package observability
