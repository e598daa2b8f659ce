// Package twelvedata provides a client for the Twelve Data stock market API.
package twelvedata

import (
	"os"
	"time"
)

const (
	defaultBaseURL = "https://api.twelvedata.com"
	defaultTimeout = 10 * time.Second
)

// Config holds the Twelve Data credentials and endpoint.
type Config struct {
	APIKey  string
	BaseURL string

	// Timeout caps one HTTP request. TWELVE_DATA_TIMEOUT overrides it.
	Timeout time.Duration
}

// LoadConfig reads TWELVE_DATA_API_KEY, TWELVE_DATA_BASE_URL and
// TWELVE_DATA_TIMEOUT. Unparsable or non-positive timeouts keep the default.
func LoadConfig() Config {
	cfg := Config{
		APIKey:  os.Getenv("TWELVE_DATA_API_KEY"),
		BaseURL: os.Getenv("TWELVE_DATA_BASE_URL"),
		Timeout: defaultTimeout,
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if d, err := time.ParseDuration(os.Getenv("TWELVE_DATA_TIMEOUT")); err == nil && d > 0 {
		cfg.Timeout = d
	}
	return cfg
}
