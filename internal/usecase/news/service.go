package news

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"newsproxy/internal/domain/entity"
	"newsproxy/internal/infra/cache"
	"newsproxy/internal/observability/logging"
	"newsproxy/internal/observability/metrics"
)

// Upstream endpoints.
const (
	EndpointTopHeadlines = "top-headlines"
	EndpointSearch       = "search"
)

// Upstream is the caching GNews client the service reads from.
type Upstream interface {
	Fetch(ctx context.Context, endpoint string, params map[string]string) (*entity.UpstreamResponse, error)
	ClearCache()
	CacheStats() cache.Stats
}

// HeadlinesParams holds the optional parameters of TopHeadlines.
type HeadlinesParams struct {
	Lang    string
	Country string
	Max     int
}

// Service provides the news query use cases.
// Upstream failures are returned unchanged so that callers can match the upstream
// client's sentinel error; validation failures are *entity.ValidationError.
type Service struct {
	Upstream Upstream

	// Logger receives cache management events. Nil discards them.
	Logger *slog.Logger
}

// TopHeadlines returns the current top headlines.
func (s *Service) TopHeadlines(ctx context.Context, p HeadlinesParams) ([]entity.Article, error) {
	resp, err := s.Upstream.Fetch(ctx, EndpointTopHeadlines, map[string]string{
		"lang":    p.Lang,
		"country": p.Country,
		"max":     maxParam(p.Max),
	})
	if err != nil {
		return nil, fmt.Errorf("top headlines: %w", err)
	}

	articles := TransformAll(resp.Articles)
	metrics.RecordQueryResult("headlines", len(articles), 0)
	return articles, nil
}

// Search runs a free-text search. Query is required and SortBy, when set, must be
// a supported mode; both are checked before any upstream call.
func (s *Service) Search(ctx context.Context, p entity.SearchParams) ([]entity.Article, error) {
	if strings.TrimSpace(p.Query) == "" {
		return nil, ErrQueryRequired
	}
	if !p.SortBy.Valid() {
		return nil, ErrInvalidSortBy
	}

	resp, err := s.Upstream.Fetch(ctx, EndpointSearch, map[string]string{
		"q":       p.Query,
		"lang":    p.Lang,
		"country": p.Country,
		"max":     maxParam(p.Max),
		"from":    p.From,
		"to":      p.To,
		"sortby":  string(p.SortBy),
	})
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	articles := TransformAll(resp.Articles)
	metrics.RecordQueryResult("search", len(articles), 0)
	return articles, nil
}

// ByTitle searches for title and keeps the articles whose title contains it,
// ignoring case.
func (s *Service) ByTitle(ctx context.Context, title string, maxResults int) ([]entity.Article, error) {
	if strings.TrimSpace(title) == "" {
		return nil, ErrTitleRequired
	}

	raws, err := s.relevanceSearch(ctx, title, maxResults)
	if err != nil {
		return nil, fmt.Errorf("by title: %w", err)
	}

	articles := filter(raws, title, func(a entity.RawArticle) string { return a.Title })
	metrics.RecordQueryResult("title", len(articles), len(raws)-len(articles))
	return articles, nil
}

// ByAuthor searches for author and keeps the articles whose source name contains
// it, ignoring case.
func (s *Service) ByAuthor(ctx context.Context, author string, maxResults int) ([]entity.Article, error) {
	if strings.TrimSpace(author) == "" {
		return nil, ErrAuthorRequired
	}

	raws, err := s.relevanceSearch(ctx, author, maxResults)
	if err != nil {
		return nil, fmt.Errorf("by author: %w", err)
	}

	articles := filter(raws, author, func(a entity.RawArticle) string { return a.Source.Name })
	metrics.RecordQueryResult("author", len(articles), len(raws)-len(articles))
	return articles, nil
}

// ByKeywords searches for articles matching any of keywords.
func (s *Service) ByKeywords(ctx context.Context, keywords []string, maxResults int) ([]entity.Article, error) {
	terms := make([]string, 0, len(keywords))
	for _, k := range keywords {
		if k = strings.TrimSpace(k); k != "" {
			terms = append(terms, k)
		}
	}
	if len(terms) == 0 {
		return nil, ErrKeywordsRequired
	}

	raws, err := s.relevanceSearch(ctx, strings.Join(terms, " OR "), maxResults)
	if err != nil {
		return nil, fmt.Errorf("by keywords: %w", err)
	}

	articles := TransformAll(raws)
	metrics.RecordQueryResult("keywords", len(articles), 0)
	return articles, nil
}

// ClearCache drops every cached upstream response.
func (s *Service) ClearCache(ctx context.Context) {
	s.Upstream.ClearCache()
	logging.WithRequestID(ctx, s.logger()).Info("cache cleared")
}

// CacheStats returns the cache key count and cumulative hit and miss counters.
func (s *Service) CacheStats(_ context.Context) cache.Stats {
	return s.Upstream.CacheStats()
}

func (s *Service) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return s.Logger
}

func (s *Service) relevanceSearch(ctx context.Context, q string, maxResults int) ([]entity.RawArticle, error) {
	resp, err := s.Upstream.Fetch(ctx, EndpointSearch, map[string]string{
		"q":      q,
		"max":    maxParam(maxResults),
		"sortby": string(entity.SortByRelevance),
	})
	if err != nil {
		return nil, err
	}
	return resp.Articles, nil
}

// filter keeps the articles whose field contains needle, ignoring case.
func filter(raws []entity.RawArticle, needle string, field func(entity.RawArticle) string) []entity.Article {
	needle = strings.ToLower(needle)
	out := make([]entity.Article, 0, len(raws))
	for _, raw := range raws {
		if strings.Contains(strings.ToLower(field(raw)), needle) {
			out = append(out, Transform(raw))
		}
	}
	return out
}

// maxParam renders the result cap, substituting the default for non-positive values.
func maxParam(n int) string {
	if n <= 0 {
		n = entity.DefaultMax
	}
	return strconv.Itoa(n)
}
