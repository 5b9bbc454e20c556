// Package metrics provides the Prometheus collectors for the news proxy's domain:
// the response cache, the GNews upstream client, circuit breakers and the query
// operations. HTTP request metrics live next to the middleware in the http handler
// package.
//
// All collectors are registered with the Prometheus default registry and exposed via
// the /metrics endpoint.
//
// Example usage:
//
//	import "newsproxy/internal/observability/metrics"
//
//	start := time.Now()
//	resp, err := doRequest()
//	outcome := metrics.OutcomeSuccess
//	if err != nil {
//	    outcome = metrics.OutcomeError
//	}
//	metrics.RecordUpstreamRequest("search", outcome, time.Since(start))
package metrics
