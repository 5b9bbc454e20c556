// Package tracing provides OpenTelemetry tracing integration.
//
// InitProvider installs the SDK tracer provider; Middleware opens a server span per
// HTTP request and the upstream client opens a child span per GNews call. Trace IDs
// are returned in the X-Trace-Id header and attached to request log lines.
//
// Example usage:
//
//	shutdown := tracing.InitProvider("newsproxy", version)
//	defer shutdown(context.Background())
//
//	handler := tracing.Middleware(mux)
package tracing
