// Package resilience groups the fault tolerance patterns used for external calls.
//
// The circuitbreaker subpackage wraps sony/gobreaker. The GNews client runs every
// network call through a "gnews-api" breaker so that an unavailable upstream fails
// fast instead of tying up request goroutines until the HTTP timeout. Requests are
// never retried.
//
// Usage Example:
//
//	cb := circuitbreaker.New(circuitbreaker.GNewsAPIConfig())
//	result, err := cb.Execute(func() (interface{}, error) {
//	    return callUpstream()
//	})
package resilience
