// Package config loads Lux API configuration from the process environment.
//
// Configuration is constructed explicitly with FromEnv and passed down to the
// components that need it. There is no package-level singleton: tests and
// callers that need distinct settings build their own Config values.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Defaults for the hosted Lux API.
const (
	DefaultBaseURL    = "https://api.agiopen.org"
	DefaultTimeout    = 30 * time.Second
	DefaultMaxRetries = 3
)

// ErrMissingAPIKey is returned when OAGI_API_KEY is not set.
var ErrMissingAPIKey = errors.New(
	"OAGI_API_KEY environment variable is required. " +
		"Get your API key from https://developer.agiopen.org")

// Config holds Lux API and automation settings.
type Config struct {
	// APIKey authenticates against the Lux API. Required.
	APIKey string
	// BaseURL is the Lux API endpoint.
	BaseURL string
	// Timeout bounds a single API request.
	Timeout time.Duration
	// MaxRetries is the retry budget for transient API failures.
	MaxRetries int
	// Verbose enables debug logging.
	Verbose bool
}

// FromEnv builds a Config from environment variables.
//
// A .env file in the working directory is loaded first if present; real
// environment variables take precedence over it. The following variables are
// recognized:
//
//   - OAGI_API_KEY (required)
//   - OAGI_BASE_URL
//   - OAGI_TIMEOUT (seconds)
//   - OAGI_MAX_RETRIES
//   - OAGI_VERBOSE ("true" / "false")
func FromEnv() (*Config, error) {
	// Ignore the error: a missing .env file is the common case.
	_ = godotenv.Load()

	apiKey := strings.TrimSpace(os.Getenv("OAGI_API_KEY"))
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	cfg := &Config{
		APIKey:     apiKey,
		BaseURL:    DefaultBaseURL,
		Timeout:    DefaultTimeout,
		MaxRetries: DefaultMaxRetries,
	}

	if v := strings.TrimSpace(os.Getenv("OAGI_BASE_URL")); v != "" {
		cfg.BaseURL = strings.TrimRight(v, "/")
	}
	if v := strings.TrimSpace(os.Getenv("OAGI_TIMEOUT")); v != "" {
		secs, err := strconv.Atoi(v)
		if err != nil || secs <= 0 {
			return nil, fmt.Errorf("invalid OAGI_TIMEOUT %q: want a positive number of seconds", v)
		}
		cfg.Timeout = time.Duration(secs) * time.Second
	}
	if v := strings.TrimSpace(os.Getenv("OAGI_MAX_RETRIES")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("invalid OAGI_MAX_RETRIES %q: want a non-negative integer", v)
		}
		cfg.MaxRetries = n
	}
	cfg.Verbose = strings.EqualFold(strings.TrimSpace(os.Getenv("OAGI_VERBOSE")), "true")

	return cfg, nil
}

// Validate checks that the config is usable.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.APIKey) == "" {
		return ErrMissingAPIKey
	}
	if strings.TrimSpace(c.BaseURL) == "" {
		return errors.New("base URL is required")
	}
	if c.Timeout <= 0 {
		return errors.New("timeout must be positive")
	}
	return nil
}
