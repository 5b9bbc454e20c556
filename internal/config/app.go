// Package config assembles the runtime configuration of the news proxy.
//
// Values are resolved in three layers: built-in defaults, an optional YAML file and
// finally environment variables. Later layers override earlier ones.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	pkgconfig "newsproxy/pkg/config"
)

// ErrMissingAPIKey is returned by Validate when no GNews API key is configured.
var ErrMissingAPIKey = errors.New("GNEWS_API_KEY is required")

// Config holds the complete application configuration.
type Config struct {
	// Port the HTTP server listens on. Default: "3000"
	Port string
	// Version reported by the health endpoint. Default: "1.0.0"
	Version string

	GNews  GNewsConfig
	Cache  CacheConfig
	Server ServerConfig
	Log    LogConfig
}

// GNewsConfig configures the upstream client.
type GNewsConfig struct {
	APIKey  string
	BaseURL string
	// Timeout bounds a single upstream request. Default: 10s
	Timeout time.Duration
	// MaxBodyBytes caps the upstream response size. Default: 5 MiB
	MaxBodyBytes int64
}

// CacheConfig configures the response cache.
type CacheConfig struct {
	// TTL applies uniformly to every entry. Default: 5m
	TTL time.Duration
	// SweepSchedule is the cron schedule of the expiry sweep. Default: "@every 10m"
	SweepSchedule string
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	RequestTimeout     time.Duration
	ShutdownTimeout    time.Duration
	CORSAllowedOrigins []string
}

// LogConfig configures the process logger.
type LogConfig struct {
	Level  string
	Format string
}

// Default returns the configuration used when nothing is overridden.
func Default() *Config {
	return &Config{
		Port:    "3000",
		Version: "1.0.0",
		GNews: GNewsConfig{
			BaseURL:      "https://gnews.io/api/v4",
			Timeout:      10 * time.Second,
			MaxBodyBytes: 5 << 20,
		},
		Cache: CacheConfig{
			TTL:           5 * time.Minute,
			SweepSchedule: "@every 10m",
		},
		Server: ServerConfig{
			RequestTimeout:     15 * time.Second,
			ShutdownTimeout:    10 * time.Second,
			CORSAllowedOrigins: []string{"*"},
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// fileConfig mirrors the YAML layout. Durations are kept as strings so that the
// bare-seconds TTL form is accepted in files as well as in the environment.
type fileConfig struct {
	Port    string `yaml:"port"`
	Version string `yaml:"version"`
	GNews   struct {
		APIKey       string `yaml:"api_key"`
		BaseURL      string `yaml:"base_url"`
		Timeout      string `yaml:"timeout"`
		MaxBodyBytes int64  `yaml:"max_body_bytes"`
	} `yaml:"gnews"`
	Cache struct {
		TTL           string `yaml:"ttl"`
		SweepSchedule string `yaml:"sweep_schedule"`
	} `yaml:"cache"`
	Server struct {
		RequestTimeout     string   `yaml:"request_timeout"`
		ShutdownTimeout    string   `yaml:"shutdown_timeout"`
		CORSAllowedOrigins []string `yaml:"cors_allowed_origins"`
	} `yaml:"server"`
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
}

// Load builds the configuration from defaults, the YAML file at path (skipped when
// path is empty) and the environment, then validates the result.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := cfg.applyFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (c *Config) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	setString(&c.Port, fc.Port)
	setString(&c.Version, fc.Version)
	setString(&c.GNews.APIKey, fc.GNews.APIKey)
	setString(&c.GNews.BaseURL, fc.GNews.BaseURL)
	if fc.GNews.MaxBodyBytes != 0 {
		c.GNews.MaxBodyBytes = fc.GNews.MaxBodyBytes
	}
	setString(&c.Cache.SweepSchedule, fc.Cache.SweepSchedule)
	if len(fc.Server.CORSAllowedOrigins) > 0 {
		c.Server.CORSAllowedOrigins = fc.Server.CORSAllowedOrigins
	}
	setString(&c.Log.Level, fc.Log.Level)
	setString(&c.Log.Format, fc.Log.Format)

	durations := []struct {
		field string
		raw   string
		dst   *time.Duration
		parse func(string) (time.Duration, error)
	}{
		{"gnews.timeout", fc.GNews.Timeout, &c.GNews.Timeout, time.ParseDuration},
		{"cache.ttl", fc.Cache.TTL, &c.Cache.TTL, ParseTTL},
		{"server.request_timeout", fc.Server.RequestTimeout, &c.Server.RequestTimeout, time.ParseDuration},
		{"server.shutdown_timeout", fc.Server.ShutdownTimeout, &c.Server.ShutdownTimeout, time.ParseDuration},
	}
	for _, d := range durations {
		if d.raw == "" {
			continue
		}
		v, err := d.parse(d.raw)
		if err != nil {
			return fmt.Errorf("parse config file %s: %s: %w", path, d.field, err)
		}
		*d.dst = v
	}

	return nil
}

func (c *Config) applyEnv() error {
	c.Port = pkgconfig.GetEnvString("PORT", c.Port)
	c.Version = pkgconfig.GetEnvString("VERSION", c.Version)

	c.GNews.APIKey = pkgconfig.GetEnvString("GNEWS_API_KEY", c.GNews.APIKey)
	c.GNews.BaseURL = strings.TrimRight(pkgconfig.GetEnvString("GNEWS_BASE_URL", c.GNews.BaseURL), "/")
	c.GNews.Timeout = pkgconfig.GetEnvDuration("UPSTREAM_TIMEOUT", c.GNews.Timeout)
	c.GNews.MaxBodyBytes = int64(pkgconfig.GetEnvInt("UPSTREAM_MAX_BODY_BYTES", int(c.GNews.MaxBodyBytes)))

	if raw := strings.TrimSpace(os.Getenv("CACHE_TTL")); raw != "" {
		ttl, err := ParseTTL(raw)
		if err != nil {
			return fmt.Errorf("CACHE_TTL: %w", err)
		}
		c.Cache.TTL = ttl
	}
	c.Cache.SweepSchedule = pkgconfig.GetEnvString("CACHE_SWEEP_SCHEDULE", c.Cache.SweepSchedule)

	c.Server.RequestTimeout = pkgconfig.GetEnvDuration("REQUEST_TIMEOUT", c.Server.RequestTimeout)
	c.Server.ShutdownTimeout = pkgconfig.GetEnvDuration("SHUTDOWN_TIMEOUT", c.Server.ShutdownTimeout)
	c.Server.CORSAllowedOrigins = pkgconfig.GetEnvStringList("CORS_ALLOWED_ORIGINS", c.Server.CORSAllowedOrigins)

	c.Log.Level = strings.ToLower(pkgconfig.GetEnvString("LOG_LEVEL", c.Log.Level))
	c.Log.Format = strings.ToLower(pkgconfig.GetEnvString("LOG_FORMAT", c.Log.Format))

	return nil
}

// Validate checks configuration correctness.
func (c *Config) Validate() error {
	if c.GNews.APIKey == "" {
		return ErrMissingAPIKey
	}
	if _, err := strconv.Atoi(c.Port); err != nil {
		return fmt.Errorf("port must be numeric, got %q", c.Port)
	}
	if err := pkgconfig.ValidateHTTPURL(c.GNews.BaseURL); err != nil {
		return fmt.Errorf("gnews base url: %w", err)
	}
	if c.GNews.MaxBodyBytes <= 0 {
		return fmt.Errorf("upstream max body bytes must be positive, got %d", c.GNews.MaxBodyBytes)
	}

	durations := map[string]time.Duration{
		"upstream timeout": c.GNews.Timeout,
		"cache ttl":        c.Cache.TTL,
		"request timeout":  c.Server.RequestTimeout,
		"shutdown timeout": c.Server.ShutdownTimeout,
	}
	for name, d := range durations {
		if err := pkgconfig.ValidatePositiveDuration(d); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}

	if err := pkgconfig.ValidateCronSchedule(c.Cache.SweepSchedule); err != nil {
		return fmt.Errorf("cache sweep schedule: %w", err)
	}

	switch c.Log.Format {
	case "json", "text":
	default:
		return fmt.Errorf("log format must be json or text, got %q", c.Log.Format)
	}

	return nil
}

// ParseTTL parses a cache TTL. A bare integer is a number of seconds, anything else
// must be a Go duration string such as "5m" or "300s".
func ParseTTL(raw string) (time.Duration, error) {
	raw = strings.TrimSpace(raw)
	if secs, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return time.Duration(secs) * time.Second, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid ttl %q: %w", raw, err)
	}
	return d, nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
