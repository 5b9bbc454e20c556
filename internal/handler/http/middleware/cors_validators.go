package middleware

import (
	"strings"
)

// OriginValidator decides whether a cross-origin request is allowed.
type OriginValidator interface {
	IsAllowed(origin string) bool
}

// AnyOrigin allows every origin. Responses carry "Access-Control-Allow-Origin: *".
type AnyOrigin struct{}

// IsAllowed reports true for any non-empty origin.
func (AnyOrigin) IsAllowed(origin string) bool {
	return origin != ""
}

// WhitelistValidator allows only the configured origins.
// Comparison ignores case and a trailing slash.
type WhitelistValidator struct {
	allowedOrigins []string
}

// NewWhitelistValidator creates a WhitelistValidator. Blank entries are dropped.
func NewWhitelistValidator(origins []string) *WhitelistValidator {
	normalized := make([]string, 0, len(origins))
	for _, origin := range origins {
		if origin = normalizeOrigin(origin); origin != "" {
			normalized = append(normalized, origin)
		}
	}
	return &WhitelistValidator{allowedOrigins: normalized}
}

// IsAllowed reports whether origin is in the whitelist.
func (v *WhitelistValidator) IsAllowed(origin string) bool {
	origin = normalizeOrigin(origin)
	if origin == "" {
		return false
	}
	for _, allowed := range v.allowedOrigins {
		if origin == allowed {
			return true
		}
	}
	return false
}

// NewOriginValidator returns AnyOrigin when origins contains "*", and a
// WhitelistValidator otherwise.
func NewOriginValidator(origins []string) OriginValidator {
	for _, o := range origins {
		if strings.TrimSpace(o) == "*" {
			return AnyOrigin{}
		}
	}
	return NewWhitelistValidator(origins)
}

func normalizeOrigin(origin string) string {
	origin = strings.ToLower(strings.TrimSpace(origin))
	return strings.TrimSuffix(origin, "/")
}
