package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"newsproxy/internal/handler/http/respond"
)

// Timeout returns middleware that bounds the time a handler may take.
// On expiry the client gets a 504 envelope and the request context is canceled;
// anything the handler writes afterwards is discarded.
//
// The handler writes into its own header map, which is copied to the real
// response only when it sends the status line, so the two goroutines never
// touch the same map.
func Timeout(duration time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), duration)
			defer cancel()
			r = r.WithContext(ctx)

			tw := &timeoutResponseWriter{w: w, header: make(http.Header)}
			done := make(chan struct{})
			panicked := make(chan any, 1)

			go func() {
				defer func() {
					if p := recover(); p != nil {
						panicked <- p
					}
				}()
				next.ServeHTTP(tw, r)
				close(done)
			}()

			select {
			case p := <-panicked:
				// re-raised so the Recover middleware sees it
				panic(p)
			case <-done:
				return
			case <-ctx.Done():
				tw.mu.Lock()
				defer tw.mu.Unlock()
				tw.timedOut = true
				if !tw.written {
					respond.Error(w, http.StatusGatewayTimeout, respond.MsgRequestTimeout)
				}
			}
		})
	}
}

// timeoutResponseWriter stops forwarding writes once the deadline has passed.
type timeoutResponseWriter struct {
	w      http.ResponseWriter
	header http.Header

	mu       sync.Mutex
	timedOut bool
	written  bool
}

func (tw *timeoutResponseWriter) Header() http.Header {
	return tw.header
}

// WriteHeader sends the status line and the handler's headers unless the
// request already timed out.
func (tw *timeoutResponseWriter) WriteHeader(statusCode int) {
	tw.mu.Lock()
	defer tw.mu.Unlock()
	tw.writeHeaderLocked(statusCode)
}

func (tw *timeoutResponseWriter) writeHeaderLocked(statusCode int) {
	if tw.timedOut || tw.written {
		return
	}
	tw.written = true
	dst := tw.w.Header()
	for k, vv := range tw.header {
		dst[k] = vv
	}
	tw.w.WriteHeader(statusCode)
}

// Write forwards data, or fails with http.ErrHandlerTimeout after the deadline.
func (tw *timeoutResponseWriter) Write(data []byte) (int, error) {
	tw.mu.Lock()
	defer tw.mu.Unlock()

	if tw.timedOut {
		return 0, http.ErrHandlerTimeout
	}
	tw.writeHeaderLocked(http.StatusOK)
	return tw.w.Write(data)
}
