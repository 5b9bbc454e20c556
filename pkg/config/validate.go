package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/robfig/cron/v3"
)

// scheduleParser accepts standard five-field expressions and descriptors such as
// "@every 10m" or "@hourly".
var scheduleParser = cron.NewParser(
	cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// ValidatePositiveDuration validates that a duration is positive (greater than zero).
//
// Example:
//
//	if err := ValidatePositiveDuration(ttl); err != nil {
//	    return fmt.Errorf("invalid cache ttl: %w", err)
//	}
func ValidatePositiveDuration(d time.Duration) error {
	if d <= 0 {
		return fmt.Errorf("duration must be positive, got %v", d)
	}
	return nil
}

// ValidateCronSchedule validates a cron expression using the robfig/cron/v3 parser.
//
// Both the five-field format ("*/10 * * * *") and descriptors ("@every 10m") are accepted.
func ValidateCronSchedule(schedule string) error {
	if schedule == "" {
		return fmt.Errorf("invalid cron schedule: cannot be empty")
	}

	if _, err := scheduleParser.Parse(schedule); err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", schedule, err)
	}

	return nil
}

// ParseSchedule parses a schedule accepted by ValidateCronSchedule.
func ParseSchedule(schedule string) (cron.Schedule, error) {
	return scheduleParser.Parse(schedule)
}

// ValidateHTTPURL validates that raw is an absolute http or https URL with a host.
func ValidateHTTPURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid URL '%s': %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("URL must use http or https scheme: %s", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("URL must include a host: %s", raw)
	}
	return nil
}
