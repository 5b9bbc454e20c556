package news

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsproxy/internal/domain/entity"
	"newsproxy/internal/handler/http/requestid"
	"newsproxy/internal/infra/cache"
	"newsproxy/internal/infra/gnews"
)

type fetchCall struct {
	endpoint string
	params   map[string]string
}

// stubUpstream records Fetch calls and replies with a fixed response.
type stubUpstream struct {
	resp    *entity.UpstreamResponse
	err     error
	calls   []fetchCall
	flushed int
	stats   cache.Stats
}

func (s *stubUpstream) Fetch(_ context.Context, endpoint string, params map[string]string) (*entity.UpstreamResponse, error) {
	s.calls = append(s.calls, fetchCall{endpoint: endpoint, params: params})
	if s.err != nil {
		return nil, s.err
	}
	return s.resp, nil
}

func (s *stubUpstream) ClearCache()             { s.flushed++ }
func (s *stubUpstream) CacheStats() cache.Stats { return s.stats }

func fixtureResponse() *entity.UpstreamResponse {
	return &entity.UpstreamResponse{
		TotalArticles: 3,
		Articles: []entity.RawArticle{
			{Title: "Go Generics Explained", PublishedAt: "2024-01-01T00:00:00Z", Source: entity.Source{Name: "The Go Blog"}},
			{Title: "Rust vs Go", PublishedAt: "2024-01-02T00:00:00Z", Source: entity.Source{Name: "TechCrunch"}},
			{Title: "Python 3.13 released", PublishedAt: "2024-01-03T00:00:00Z", Source: entity.Source{Name: "Go Daily"}},
		},
	}
}

func titles(articles []entity.Article) []string {
	out := make([]string, 0, len(articles))
	for _, a := range articles {
		out = append(out, a.Title)
	}
	return out
}

func TestService_TopHeadlines(t *testing.T) {
	// Arrange
	up := &stubUpstream{resp: fixtureResponse()}
	svc := &Service{Upstream: up}

	// Act
	articles, err := svc.TopHeadlines(context.Background(), HeadlinesParams{Lang: "en", Max: 5})

	// Assert
	require.NoError(t, err)
	assert.Len(t, articles, 3)
	require.Len(t, up.calls, 1)
	assert.Equal(t, EndpointTopHeadlines, up.calls[0].endpoint)
	assert.Equal(t, map[string]string{"lang": "en", "country": "", "max": "5"}, up.calls[0].params)
}

func TestService_TopHeadlines_DefaultMax(t *testing.T) {
	up := &stubUpstream{resp: fixtureResponse()}
	svc := &Service{Upstream: up}

	_, err := svc.TopHeadlines(context.Background(), HeadlinesParams{})

	require.NoError(t, err)
	assert.Equal(t, "10", up.calls[0].params["max"])
}

func TestService_Search(t *testing.T) {
	up := &stubUpstream{resp: fixtureResponse()}
	svc := &Service{Upstream: up}

	articles, err := svc.Search(context.Background(), entity.SearchParams{
		Query:  "golang",
		Lang:   "en",
		Max:    3,
		From:   "2024-01-01T00:00:00Z",
		SortBy: entity.SortByPublishedAt,
	})

	require.NoError(t, err)
	assert.Len(t, articles, 3)
	require.Len(t, up.calls, 1)
	assert.Equal(t, EndpointSearch, up.calls[0].endpoint)
	assert.Equal(t, map[string]string{
		"q": "golang", "lang": "en", "country": "", "max": "3",
		"from": "2024-01-01T00:00:00Z", "to": "", "sortby": "publishedAt",
	}, up.calls[0].params)
}

func TestService_ValidationHappensBeforeNetwork(t *testing.T) {
	tests := []struct {
		name    string
		call    func(*Service) error
		wantErr error
	}{
		{
			name: "search without query",
			call: func(s *Service) error {
				_, err := s.Search(context.Background(), entity.SearchParams{Query: "  "})
				return err
			},
			wantErr: ErrQueryRequired,
		},
		{
			name: "search with unknown sortby",
			call: func(s *Service) error {
				_, err := s.Search(context.Background(), entity.SearchParams{Query: "go", SortBy: "newest"})
				return err
			},
			wantErr: ErrInvalidSortBy,
		},
		{
			name: "empty title",
			call: func(s *Service) error {
				_, err := s.ByTitle(context.Background(), "", 10)
				return err
			},
			wantErr: ErrTitleRequired,
		},
		{
			name: "empty author",
			call: func(s *Service) error {
				_, err := s.ByAuthor(context.Background(), " ", 10)
				return err
			},
			wantErr: ErrAuthorRequired,
		},
		{
			name: "only blank keywords",
			call: func(s *Service) error {
				_, err := s.ByKeywords(context.Background(), []string{"", "  "}, 10)
				return err
			},
			wantErr: ErrKeywordsRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			up := &stubUpstream{resp: fixtureResponse()}

			err := tt.call(&Service{Upstream: up})

			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, entity.ErrValidationFailed)
			var ve *entity.ValidationError
			assert.True(t, errors.As(err, &ve))
			assert.Empty(t, up.calls, "no upstream call on validation failure")
		})
	}
}

func TestService_ByTitle(t *testing.T) {
	up := &stubUpstream{resp: fixtureResponse()}
	svc := &Service{Upstream: up}

	articles, err := svc.ByTitle(context.Background(), "GO", 20)

	require.NoError(t, err)
	assert.Equal(t, []string{"Go Generics Explained", "Rust vs Go"}, titles(articles))
	assert.Equal(t, map[string]string{"q": "GO", "max": "20", "sortby": "relevance"}, up.calls[0].params)
}

func TestService_ByTitle_FilterSubset(t *testing.T) {
	up := &stubUpstream{resp: fixtureResponse()}
	svc := &Service{Upstream: up}

	articles, err := svc.ByTitle(context.Background(), "python", 10)

	require.NoError(t, err)
	assert.LessOrEqual(t, len(articles), len(up.resp.Articles))
	for _, a := range articles {
		assert.Contains(t, a.Title, "Python")
	}
}

func TestService_ByAuthor(t *testing.T) {
	up := &stubUpstream{resp: fixtureResponse()}
	svc := &Service{Upstream: up}

	articles, err := svc.ByAuthor(context.Background(), "go", 0)

	require.NoError(t, err)
	assert.Equal(t, []string{"Go Generics Explained", "Python 3.13 released"}, titles(articles))
	for _, a := range articles {
		assert.Equal(t, a.Source.Name, a.Author)
	}
	assert.Equal(t, map[string]string{"q": "go", "max": "10", "sortby": "relevance"}, up.calls[0].params)
}

func TestService_ByKeywords(t *testing.T) {
	up := &stubUpstream{resp: fixtureResponse()}
	svc := &Service{Upstream: up}

	articles, err := svc.ByKeywords(context.Background(), []string{"ai", " climate ", "", "space"}, 5)

	require.NoError(t, err)
	assert.Len(t, articles, 3, "keywords are not post-filtered")
	assert.Equal(t, map[string]string{"q": "ai OR climate OR space", "max": "5", "sortby": "relevance"}, up.calls[0].params)
}

func TestService_UpstreamFailurePropagates(t *testing.T) {
	up := &stubUpstream{err: gnews.ErrFetchFailed}
	svc := &Service{Upstream: up}
	ctx := context.Background()

	_, err := svc.TopHeadlines(ctx, HeadlinesParams{})
	assert.ErrorIs(t, err, gnews.ErrFetchFailed)

	_, err = svc.Search(ctx, entity.SearchParams{Query: "go"})
	assert.ErrorIs(t, err, gnews.ErrFetchFailed)

	articles, err := svc.ByTitle(ctx, "go", 10)
	assert.ErrorIs(t, err, gnews.ErrFetchFailed)
	assert.Nil(t, articles, "no partial results")

	_, err = svc.ByAuthor(ctx, "go", 10)
	assert.ErrorIs(t, err, gnews.ErrFetchFailed)

	_, err = svc.ByKeywords(ctx, []string{"go"}, 10)
	assert.ErrorIs(t, err, gnews.ErrFetchFailed)
	assert.False(t, errors.Is(err, entity.ErrValidationFailed))
}

func TestService_CacheManagement(t *testing.T) {
	up := &stubUpstream{stats: cache.Stats{Keys: 2, Hits: 5, Misses: 3}}
	svc := &Service{Upstream: up}

	assert.Equal(t, cache.Stats{Keys: 2, Hits: 5, Misses: 3}, svc.CacheStats(context.Background()))

	svc.ClearCache(context.Background())
	assert.Equal(t, 1, up.flushed)
}

func TestService_ClearCache_LogsToInjectedLogger(t *testing.T) {
	var logs bytes.Buffer
	up := &stubUpstream{}
	svc := &Service{Upstream: up, Logger: slog.New(slog.NewJSONHandler(&logs, nil))}
	ctx := requestid.WithRequestID(context.Background(), "req-clear-1")

	svc.ClearCache(ctx)

	var line map[string]any
	require.NoError(t, json.Unmarshal(logs.Bytes(), &line))
	assert.Equal(t, "cache cleared", line["msg"])
	assert.Equal(t, "req-clear-1", line["request_id"])
	assert.Equal(t, 1, up.flushed)
}

// TestService_WithCachingClient exercises the real client: identical queries hit
// the upstream once, and stats reflect the hit and the miss.
func TestService_WithCachingClient(t *testing.T) {
	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		_ = json.NewEncoder(w).Encode(fixtureResponse())
	}))
	defer server.Close()

	cfg := gnews.DefaultConfig()
	cfg.BaseURL = server.URL
	cfg.APIKey = "test"
	cfg.Timeout = 2 * time.Second
	store := cache.New[*entity.UpstreamResponse](cache.Config{Name: t.Name(), TTL: time.Minute})
	svc := &Service{Upstream: gnews.NewClient(cfg, store, nil, nil)}
	ctx := context.Background()

	first, err := svc.ByTitle(ctx, "go", 10)
	require.NoError(t, err)
	second, err := svc.ByTitle(ctx, "go", 10)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), requests.Load())
	assert.Equal(t, cache.Stats{Keys: 1, Hits: 1, Misses: 1}, svc.CacheStats(ctx))

	svc.ClearCache(ctx)
	assert.Equal(t, cache.Stats{Keys: 0, Hits: 1, Misses: 1}, svc.CacheStats(ctx))
}
