// Package config provides small helpers for reading typed configuration values from
// environment variables and validating them. Invalid values never abort loading: the
// helpers fall back to the default and log a warning so that a typo in one variable
// does not take the whole service down.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// GetEnvString returns the trimmed value of key, or defaultValue when it is unset
// or blank.
//
//	baseURL := GetEnvString("GNEWS_BASE_URL", "https://gnews.io/api/v4")
func GetEnvString(key, defaultValue string) string {
	if value, ok := lookup(key); ok {
		return value
	}
	return defaultValue
}

// GetEnvInt reads key as a base-10 integer.
//
//	maxBody := GetEnvInt("UPSTREAM_MAX_BODY_BYTES", 5<<20)
func GetEnvInt(key string, defaultValue int) int {
	return parseEnv(key, defaultValue, strconv.Atoi)
}

// GetEnvDuration reads key with time.ParseDuration ("30s", "1h30m").
//
//	timeout := GetEnvDuration("UPSTREAM_TIMEOUT", 10*time.Second)
func GetEnvDuration(key string, defaultValue time.Duration) time.Duration {
	return parseEnv(key, defaultValue, time.ParseDuration)
}

// GetEnvStringList reads key as a comma-separated list. See SplitList.
//
//	// CORS_ALLOWED_ORIGINS="http://localhost:3000, https://news.example.com"
//	origins := GetEnvStringList("CORS_ALLOWED_ORIGINS", []string{"*"})
func GetEnvStringList(key string, defaultValue []string) []string {
	if result := SplitList(os.Getenv(key)); len(result) > 0 {
		return result
	}
	return defaultValue
}

// SplitList splits s on commas, trims every element and drops empty ones.
func SplitList(s string) []string {
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func lookup(key string) (string, bool) {
	value := strings.TrimSpace(os.Getenv(key))
	return value, value != ""
}

// parseEnv returns defaultValue for unset keys and, with a warning, for values
// parse rejects.
func parseEnv[T any](key string, defaultValue T, parse func(string) (T, error)) T {
	raw, ok := lookup(key)
	if !ok {
		return defaultValue
	}

	value, err := parse(raw)
	if err != nil {
		slog.Warn("invalid environment variable, using default",
			slog.String("key", key),
			slog.String("value", raw),
			slog.String("default", fmt.Sprint(defaultValue)),
			slog.String("error", err.Error()))
		return defaultValue
	}
	return value
}
