package scheduler

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"
)

// Config holds scheduler client configuration.
type Config struct {
	// BaseURL is the scheduler origin; requests go to BaseURL + "/next".
	// Default: "http://localhost:8000".
	BaseURL string

	// Timeout bounds a single request attempt. Default: 30s.
	Timeout time.Duration

	Retry RetryConfig
}

// RetryConfig configures retries of unavailable-scheduler failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig returns a Config with sensible defaults. Requests are not
// retried by default because a lost response may still have been recorded
// by the scheduler.
func DefaultConfig() Config {
	return Config{
		BaseURL: "http://localhost:8000",
		Timeout: 30 * time.Second,
		Retry: RetryConfig{
			MaxAttempts: 1,
			InitialWait: 500 * time.Millisecond,
			MaxWait:     5 * time.Second,
			Multiplier:  2.0,
		},
	}
}

// ConfigFromEnv builds a Config from environment variables, falling back
// to defaults for unset values.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	if u := os.Getenv("DRILL_SERVER"); u != "" {
		cfg.BaseURL = u
	}
	if t := os.Getenv("DRILL_TIMEOUT"); t != "" {
		if d, err := time.ParseDuration(t); err == nil {
			cfg.Timeout = d
		}
	}
	if a := os.Getenv("DRILL_RETRY_ATTEMPTS"); a != "" {
		if n, err := strconv.Atoi(a); err == nil {
			cfg.Retry.MaxAttempts = n
		}
	}

	return cfg
}

// Validate checks that the base URL is usable.
func (c Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid scheduler URL %q: %w", c.BaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("scheduler URL %q must be http or https", c.BaseURL)
	}
	if u.Host == "" {
		return fmt.Errorf("scheduler URL %q has no host", c.BaseURL)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative, got %s", c.Timeout)
	}
	if c.Retry.MaxAttempts < 1 {
		return fmt.Errorf("retry attempts must be at least 1, got %d", c.Retry.MaxAttempts)
	}
	return nil
}
