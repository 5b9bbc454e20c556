// Package gnews implements the caching client for the GNews REST API.
package gnews

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"newsproxy/internal/domain/entity"
	"newsproxy/internal/infra/cache"
	"newsproxy/internal/observability/logging"
	"newsproxy/internal/observability/metrics"
	"newsproxy/internal/observability/tracing"
	"newsproxy/internal/resilience/circuitbreaker"
)

// ResponseCache stores upstream responses by cache key.
type ResponseCache interface {
	Get(key string) (*entity.UpstreamResponse, bool)
	Set(key string, value *entity.UpstreamResponse)
	Flush()
	Stats() cache.Stats
}

// Client fetches GNews responses through a TTL cache.
//
// A cache miss goes to the network through a circuit breaker, exactly once: there
// are no retries. Concurrent misses on the same key share a single upstream request.
// Every failure is reported to the caller as ErrFetchFailed.
//
// Thread safety: Client is safe for concurrent use.
type Client struct {
	cfg        Config
	httpClient *http.Client
	cache      ResponseCache
	breaker    *circuitbreaker.CircuitBreaker
	group      singleflight.Group
	logger     *slog.Logger
}

// NewClient creates a client. A nil logger falls back to slog.Default() and a nil
// breaker gets BreakerConfig(logger).
func NewClient(cfg Config, store ResponseCache, breaker *circuitbreaker.CircuitBreaker, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if breaker == nil {
		breaker = circuitbreaker.New(BreakerConfig(logger))
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		cache:   store,
		breaker: breaker,
		logger:  logger,
	}
}

// Fetch returns the response of endpoint for params, from the cache when a live
// entry exists and from the network otherwise. Successful network responses are
// cached under CacheKey(endpoint, params).
func (c *Client) Fetch(ctx context.Context, endpoint string, params map[string]string) (*entity.UpstreamResponse, error) {
	key := CacheKey(endpoint, params)
	logger := logging.WithRequestID(ctx, c.logger)

	if resp, ok := c.cache.Get(key); ok {
		logger.Debug("cache hit", slog.String("key", key))
		return resp, nil
	}
	logger.Debug("cache miss", slog.String("key", key))

	// The shared call must not be cancelled by whichever caller happened to start
	// it; the HTTP client timeout bounds it instead.
	sharedCtx := context.WithoutCancel(ctx)
	v, err, shared := c.group.Do(key, func() (interface{}, error) {
		resp, err := c.fetchThroughBreaker(sharedCtx, endpoint, params)
		if err != nil {
			return nil, err
		}
		c.cache.Set(key, resp)
		return resp, nil
	})
	if shared {
		metrics.RecordUpstreamCoalesced(endpoint)
	}
	if err != nil {
		return nil, ErrFetchFailed
	}

	return v.(*entity.UpstreamResponse), nil
}

// ClearCache removes every cached response.
func (c *Client) ClearCache() {
	c.cache.Flush()
}

// CacheStats returns the cache key count and cumulative hit and miss counters.
func (c *Client) CacheStats() cache.Stats {
	return c.cache.Stats()
}

// BreakerState returns the state of the upstream circuit breaker
// ("closed", "half-open" or "open").
func (c *Client) BreakerState() string {
	return c.breaker.State()
}

func (c *Client) fetchThroughBreaker(ctx context.Context, endpoint string, params map[string]string) (*entity.UpstreamResponse, error) {
	ctx, span := tracing.Tracer().Start(ctx, "gnews.fetch")
	defer span.End()
	span.SetAttributes(attribute.String("gnews.endpoint", endpoint))

	start := time.Now()
	result, err := c.breaker.Execute(func() (interface{}, error) {
		return c.do(ctx, endpoint, params)
	})
	duration := time.Since(start)

	outcome := metrics.OutcomeSuccess
	switch {
	case circuitbreaker.IsRejection(err):
		outcome = metrics.OutcomeRejected
	case err != nil:
		outcome = metrics.OutcomeError
	}
	metrics.RecordUpstreamRequest(endpoint, outcome, duration)

	if err != nil {
		msg := logging.SanitizeError(err)
		span.SetStatus(codes.Error, msg)
		span.SetAttributes(attribute.String("gnews.outcome", outcome))
		logging.WithRequestID(ctx, c.logger).Error("gnews request failed",
			slog.String("endpoint", endpoint),
			slog.String("outcome", outcome),
			slog.Duration("duration", duration),
			slog.String("error", msg))
		return nil, fmt.Errorf("%w: %s", ErrFetchFailed, msg)
	}

	resp := result.(*entity.UpstreamResponse)
	span.SetAttributes(
		attribute.String("gnews.outcome", outcome),
		attribute.Int("gnews.articles", len(resp.Articles)),
	)
	return resp, nil
}

// do performs the HTTP request and decodes the response.
// This is called by fetchThroughBreaker through the circuit breaker.
func (c *Client) do(ctx context.Context, endpoint string, params map[string]string) (*entity.UpstreamResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.requestURL(endpoint, params), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.cfg.UserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, &statusError{code: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.cfg.MaxBodySize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if int64(len(body)) > c.cfg.MaxBodySize {
		return nil, fmt.Errorf("%w: exceeds limit %d bytes", errBodyTooLarge, c.cfg.MaxBodySize)
	}

	var out entity.UpstreamResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if out.Articles == nil {
		out.Articles = []entity.RawArticle{}
	}

	return &out, nil
}

func (c *Client) requestURL(endpoint string, params map[string]string) string {
	q := url.Values{}
	for name, value := range params {
		if value != "" {
			q.Set(name, value)
		}
	}
	q.Set("token", c.cfg.APIKey)
	return c.cfg.BaseURL + "/" + strings.TrimLeft(endpoint, "/") + "?" + q.Encode()
}
