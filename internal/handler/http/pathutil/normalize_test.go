package pathutil

import (
	"testing"
)

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		expected string
	}{
		{
			name:     "headlines",
			path:     "/api/news/headlines",
			expected: "/api/news/headlines",
		},
		{
			name:     "search with query params",
			path:     "/api/news/search?q=golang&max=5",
			expected: "/api/news/search",
		},
		{
			name:     "trailing slash",
			path:     "/api/news/keywords/",
			expected: "/api/news/keywords",
		},
		{
			name:     "cache stats",
			path:     "/api/news/cache/stats",
			expected: "/api/news/cache/stats",
		},
		{
			name:     "root",
			path:     "/",
			expected: "/",
		},
		{
			name:     "health",
			path:     "/health",
			expected: "/health",
		},
		{
			name:     "swagger index",
			path:     "/swagger/index.html",
			expected: "/swagger/*",
		},
		{
			name:     "swagger asset",
			path:     "/swagger/swagger-ui-bundle.js",
			expected: "/swagger/*",
		},
		{
			name:     "unknown path",
			path:     "/wp-admin.php",
			expected: Unmatched,
		},
		{
			name:     "unknown path under api",
			path:     "/api/news/123",
			expected: Unmatched,
		},
		{
			name:     "empty path",
			path:     "",
			expected: Unmatched,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := NormalizePath(tt.path)
			if result != tt.expected {
				t.Errorf("NormalizePath(%q) = %q, want %q", tt.path, result, tt.expected)
			}
		})
	}
}

func TestGetExpectedCardinality(t *testing.T) {
	if got := GetExpectedCardinality(); got != 14 {
		t.Errorf("GetExpectedCardinality() = %d, want 14", got)
	}
}
