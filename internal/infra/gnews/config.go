package gnews

import (
	"fmt"
	"log/slog"
	"time"

	"newsproxy/internal/resilience/circuitbreaker"
)

// Config holds the configuration of the GNews client.
type Config struct {
	// BaseURL is the API root without a trailing slash.
	// Default: "https://gnews.io/api/v4"
	BaseURL string

	// APIKey is sent as the "token" query parameter on every request.
	APIKey string

	// Timeout is the maximum duration for a single HTTP request.
	// Default: 10s
	Timeout time.Duration

	// MaxBodySize is the maximum HTTP response body size in bytes.
	// This is enforced while reading, not based on Content-Length.
	// Default: 5242880 (5MB)
	MaxBodySize int64

	// UserAgent identifies the proxy to the upstream.
	// Default: "newsproxy/1.0"
	UserAgent string
}

// DefaultConfig returns the default client configuration without an API key.
func DefaultConfig() Config {
	return Config{
		BaseURL:     "https://gnews.io/api/v4",
		Timeout:     10 * time.Second,
		MaxBodySize: 5 * 1024 * 1024,
		UserAgent:   "newsproxy/1.0",
	}
}

// Validate checks if the configuration values are usable.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("base url is required")
	}
	if c.APIKey == "" {
		return fmt.Errorf("api key is required")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %v", c.Timeout)
	}
	if c.MaxBodySize <= 0 {
		return fmt.Errorf("max body size must be positive, got %d", c.MaxBodySize)
	}
	return nil
}

// BreakerConfig returns the gnews-api breaker settings with the upstream's own
// success classification.
func BreakerConfig(logger *slog.Logger) circuitbreaker.Config {
	cfg := circuitbreaker.GNewsAPIConfig()
	cfg.IsSuccessful = breakerSuccess
	cfg.Logger = logger
	return cfg
}
