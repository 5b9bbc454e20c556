package tracing

import (
	"net/http"

	"newsproxy/internal/handler/http/pathutil"
	"newsproxy/internal/handler/http/responsewriter"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

// TraceIDHeader carries the trace ID back to the client.
const TraceIDHeader = "X-Trace-Id"

// Middleware opens one server span per request, continuing any W3C trace context
// the client sent. Spans are named "METHOD route" with the normalized route.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		parent := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))

		route := pathutil.NormalizePath(r.URL.Path)
		ctx, span := Tracer().Start(parent, r.Method+" "+route,
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				attribute.String("http.method", r.Method),
				attribute.String("http.path", r.URL.Path),
				attribute.String("http.route", route),
			),
		)
		defer span.End()

		if id := TraceIDFromContext(ctx); id != "" {
			w.Header().Set(TraceIDHeader, id)
		}

		rw := responsewriter.Wrap(w)
		next.ServeHTTP(rw, r.WithContext(ctx))
		setStatus(span, rw.StatusCode())
	})
}

// setStatus marks server errors only; 4xx answers are the client's fault.
func setStatus(span trace.Span, status int) {
	span.SetAttributes(attribute.Int("http.status_code", status))
	if status < http.StatusInternalServerError {
		return
	}
	span.SetAttributes(attribute.Bool("error", true))
	span.SetStatus(codes.Error, http.StatusText(status))
}
