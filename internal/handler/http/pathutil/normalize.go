// Package pathutil maps request paths onto a bounded set of route labels for
// metrics and span names.
package pathutil

import (
	"strings"
)

// Unmatched is the label used for every path that is not a known route.
const Unmatched = "unmatched"

// knownRoutes lists every path the server answers. Paths outside this set are
// collapsed into Unmatched so that 404 probes cannot explode label cardinality.
var knownRoutes = map[string]struct{}{
	"/":                     {},
	"/health":               {},
	"/live":                 {},
	"/ready":                {},
	"/metrics":              {},
	"/api/news/headlines":   {},
	"/api/news/search":      {},
	"/api/news/title":       {},
	"/api/news/author":      {},
	"/api/news/keywords":    {},
	"/api/news/cache/clear": {},
	"/api/news/cache/stats": {},
}

// swaggerPrefix serves many static assets; they share one label.
const swaggerPrefix = "/swagger/"

// NormalizePath returns the route label for path.
//
// Examples:
//
//	NormalizePath("/api/news/search?q=go")   // "/api/news/search"
//	NormalizePath("/api/news/headlines/")    // "/api/news/headlines"
//	NormalizePath("/swagger/index.html")     // "/swagger/*"
//	NormalizePath("/wp-admin.php")           // "unmatched"
func NormalizePath(path string) string {
	if idx := strings.IndexByte(path, '?'); idx != -1 {
		path = path[:idx]
	}

	if strings.HasPrefix(path, swaggerPrefix) {
		return swaggerPrefix + "*"
	}

	if len(path) > 1 && path[len(path)-1] == '/' {
		path = path[:len(path)-1]
	}

	if _, ok := knownRoutes[path]; ok {
		return path
	}
	return Unmatched
}

// GetExpectedCardinality returns the number of distinct labels NormalizePath can
// produce: every known route, the swagger label and Unmatched.
func GetExpectedCardinality() int {
	return len(knownRoutes) + 2
}
