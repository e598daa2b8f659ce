// Package alphavantage provides a client for the Alpha Vantage market data API.
package alphavantage

import (
	"os"
	"time"
)

const defaultBaseURL = "https://www.alphavantage.co/query"

// Config holds configuration for the Alpha Vantage API client.
type Config struct {
	APIKey  string        // API key for authentication
	BaseURL string        // Query endpoint (e.g., "https://www.alphavantage.co/query")
	Timeout time.Duration // HTTP request timeout
}

// LoadConfig loads Alpha Vantage configuration from environment variables.
func LoadConfig() Config {
	base := os.Getenv("ALPHA_VANTAGE_BASE_URL")
	if base == "" {
		base = defaultBaseURL
	}
	return Config{
		APIKey:  os.Getenv("ALPHA_VANTAGE_API_KEY"),
		BaseURL: base,
		Timeout: 5 * time.Second,
	}
}
