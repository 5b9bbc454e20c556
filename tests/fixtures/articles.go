// Package fixtures provides reusable GNews test data for handler and integration tests.
package fixtures

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"newsproxy/internal/domain/entity"
)

// RawArticles returns a small set of upstream articles covering the title and
// source-name filters: two titles mention "Go" and one source name contains "Go".
func RawArticles() []entity.RawArticle {
	return []entity.RawArticle{
		{
			Title:       "Go 1.25 Released",
			Description: "The Go team announces a new release.",
			Content:     "Go 1.25 brings container-aware GOMAXPROCS...",
			URL:         "https://go.dev/blog/go1.25",
			Image:       "https://go.dev/images/go1.25.png",
			PublishedAt: "2025-08-12T00:00:00Z",
			Source:      entity.Source{Name: "The Go Blog", URL: "https://go.dev/blog"},
		},
		{
			Title:       "Why Teams Pick Go for Services",
			Description: "A survey of backend stacks.",
			Content:     "Most respondents cited simple deployment...",
			URL:         "https://example.com/go-services",
			PublishedAt: "2025-08-10T09:30:00Z",
			Source:      entity.Source{Name: "TechCrunch", URL: "https://techcrunch.com"},
		},
		{
			Title:       "Python 3.14 Beta Lands",
			Description: "Free-threaded builds graduate.",
			URL:         "https://example.com/python",
			PublishedAt: "2025-08-09T12:00:00Z",
			Source:      entity.Source{Name: "Golem", URL: "https://golem.de"},
		},
	}
}

// Response wraps RawArticles in the GNews response envelope.
func Response() *entity.UpstreamResponse {
	articles := RawArticles()
	return &entity.UpstreamResponse{TotalArticles: len(articles), Articles: articles}
}

// GNewsServer starts a fake GNews API that answers every request with resp.
// The returned counter holds the number of requests served.
func GNewsServer(t testing.TB, resp *entity.UpstreamResponse) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

// FailingGNewsServer starts a fake GNews API that answers every request with status.
func FailingGNewsServer(t testing.TB, status int) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"errors":["forbidden"]}`, status)
	}))
	t.Cleanup(srv.Close)
	return srv
}
