// Package middleware holds cross-cutting HTTP middleware that is configured
// independently of the handlers, such as CORS.
package middleware

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"
)

// CORSConfig holds the configuration for CORS middleware.
type CORSConfig struct {
	// Validator decides which origins are allowed.
	Validator OriginValidator

	// AllowedMethods are advertised on preflight responses.
	// Default: ["GET", "POST", "OPTIONS"]
	AllowedMethods []string

	// AllowedHeaders are advertised on preflight responses.
	// Default: ["Content-Type", "X-Request-ID"]
	AllowedHeaders []string

	// MaxAge is how long (seconds) browsers may cache a preflight result.
	// Default: 86400
	MaxAge int

	// Logger receives rejected-origin warnings. Optional.
	Logger *slog.Logger
}

// DefaultCORSConfig returns a configuration allowing origins.
// Passing "*" allows every origin.
func DefaultCORSConfig(origins []string) CORSConfig {
	return CORSConfig{
		Validator:      NewOriginValidator(origins),
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "X-Request-ID"},
		MaxAge:         86400,
	}
}

// CORS returns middleware that sets CORS headers for allowed origins.
//
// Behavior:
//   - No Origin header: passed through untouched
//   - Origin not allowed: passed through without CORS headers (the browser blocks it)
//   - Preflight (OPTIONS with Access-Control-Request-Method): answered with 204
//   - Otherwise: CORS headers set, request passed on
func CORS(config CORSConfig) func(http.Handler) http.Handler {
	methods := strings.Join(config.AllowedMethods, ", ")
	headers := strings.Join(config.AllowedHeaders, ", ")
	maxAge := strconv.Itoa(config.MaxAge)
	_, wildcard := config.Validator.(AnyOrigin)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin == "" {
				next.ServeHTTP(w, r)
				return
			}

			if !config.Validator.IsAllowed(origin) {
				if config.Logger != nil {
					config.Logger.Warn("CORS: origin not allowed",
						slog.String("origin", origin),
						slog.String("path", r.URL.Path),
						slog.String("method", r.Method))
				}
				next.ServeHTTP(w, r)
				return
			}

			if wildcard {
				w.Header().Set("Access-Control-Allow-Origin", "*")
			} else {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Add("Vary", "Origin")
			}

			if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
				w.Header().Set("Access-Control-Allow-Methods", methods)
				w.Header().Set("Access-Control-Allow-Headers", headers)
				w.Header().Set("Access-Control-Max-Age", maxAge)
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
