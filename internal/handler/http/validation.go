package http

import (
	"net/http"

	"newsproxy/internal/handler/http/respond"
)

// Input limits enforced by InputValidation.
const (
	MaxPathLength  = 2048
	MaxQueryLength = 4096
)

// InputValidation returns middleware that rejects oversized request URIs with
// 414 before they reach a handler or the upstream request builder.
func InputValidation() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if len(r.URL.Path) > MaxPathLength {
				respond.Error(w, http.StatusRequestURITooLong, "URI too long")
				return
			}
			if len(r.URL.RawQuery) > MaxQueryLength {
				respond.Error(w, http.StatusRequestURITooLong, "Query string too long")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
