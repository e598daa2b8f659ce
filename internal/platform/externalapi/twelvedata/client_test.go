package twelvedata

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestLoadConfig_DefaultBaseURL(t *testing.T) {
	t.Setenv("TWELVE_DATA_API_KEY", "k")
	t.Setenv("TWELVE_DATA_BASE_URL", "")

	cfg := LoadConfig()

	if cfg.BaseURL != defaultBaseURL {
		t.Errorf("expected base URL %q, got %q", defaultBaseURL, cfg.BaseURL)
	}
	if cfg.APIKey != "k" {
		t.Errorf("expected API key k, got %q", cfg.APIKey)
	}
	if cfg.Timeout != defaultTimeout {
		t.Errorf("expected timeout %s, got %s", defaultTimeout, cfg.Timeout)
	}
}

func TestLoadConfig_TimeoutOverride(t *testing.T) {
	t.Setenv("TWELVE_DATA_TIMEOUT", "3s")
	if got := LoadConfig().Timeout; got != 3*time.Second {
		t.Errorf("expected 3s, got %s", got)
	}

	t.Setenv("TWELVE_DATA_TIMEOUT", "soon")
	if got := LoadConfig().Timeout; got != defaultTimeout {
		t.Errorf("expected default timeout for bad value, got %s", got)
	}
}

func TestClient_DailyCloses_Success(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Verify request parameters
		if r.URL.Path != "/time_series" {
			t.Errorf("expected path /time_series, got %s", r.URL.Path)
		}
		if r.URL.Query().Get("symbol") != "AAPL" {
			t.Errorf("expected symbol AAPL, got %s", r.URL.Query().Get("symbol"))
		}
		if r.URL.Query().Get("interval") != "1day" {
			t.Errorf("expected interval 1day, got %s", r.URL.Query().Get("interval"))
		}
		if r.URL.Query().Get("outputsize") != "30" {
			t.Errorf("expected outputsize 30, got %s", r.URL.Query().Get("outputsize"))
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{
			"meta": {"symbol": "AAPL", "interval": "1day", "currency": "USD"},
			"status": "ok",
			"values": [
				{"datetime": "2025-01-15", "open": "150.00", "high": "155.00", "low": "149.00", "close": "154.50", "volume": "1000000"},
				{"datetime": "2025-01-14 00:00:00", "open": "148.00", "high": "151.00", "low": "147.50", "close": "150.00"}
			]
		}`))
	}))
	defer server.Close()

	c := NewClient(Config{APIKey: "test-key", BaseURL: server.URL}, server.Client())

	pts, err := c.DailyCloses(context.Background(), "AAPL", 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pts) != 2 {
		t.Fatalf("expected 2 points, got %d", len(pts))
	}

	// oldest first
	if !pts[0].Date.Equal(time.Date(2025, 1, 14, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("expected first date 2025-01-14, got %v", pts[0].Date)
	}
	if pts[0].Price != 150.00 {
		t.Errorf("expected close 150.00, got %f", pts[0].Price)
	}
	if pts[1].Price != 154.50 {
		t.Errorf("expected close 154.50, got %f", pts[1].Price)
	}
}

func TestClient_DailyCloses_HTTPError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		statusCode int
	}{
		{"bad request", http.StatusBadRequest},
		{"unauthorized", http.StatusUnauthorized},
		{"too many requests", http.StatusTooManyRequests},
		{"internal server error", http.StatusInternalServerError},
		{"service unavailable", http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.statusCode)
			}))
			defer server.Close()

			c := NewClient(Config{APIKey: "test-key", BaseURL: server.URL}, server.Client())

			_, err := c.DailyCloses(context.Background(), "AAPL", 30)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), "twelvedata http") {
				t.Errorf("expected HTTP error message, got %v", err)
			}
		})
	}
}

func TestClient_DailyCloses_APIError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"code": 401, "status": "error", "message": "Invalid API key"}`))
	}))
	defer server.Close()

	c := NewClient(Config{APIKey: "invalid-key", BaseURL: server.URL}, server.Client())

	_, err := c.DailyCloses(context.Background(), "AAPL", 30)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "Invalid API key") {
		t.Errorf("expected API error message, got %v", err)
	}
}

func TestClient_DailyCloses_BadPayloads(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		response string
		errField string
	}{
		{name: "invalid json", response: `{invalid json`, errField: "invalid character"},
		{name: "invalid datetime", response: `{"status": "ok", "values": [{"datetime": "invalid-date", "close": "154.50"}]}`, errField: "parse time"},
		{name: "invalid close", response: `{"status": "ok", "values": [{"datetime": "2025-01-15", "close": "bad"}]}`, errField: "parse close"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tt.response))
			}))
			defer server.Close()

			c := NewClient(Config{APIKey: "test-key", BaseURL: server.URL}, server.Client())

			_, err := c.DailyCloses(context.Background(), "AAPL", 30)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.errField) {
				t.Errorf("expected %q error, got %v", tt.errField, err)
			}
		})
	}
}

func TestClient_DailyCloses_MissingKey(t *testing.T) {
	t.Parallel()

	c := NewClient(Config{BaseURL: "http://127.0.0.1:1"}, http.DefaultClient)

	_, err := c.DailyCloses(context.Background(), "AAPL", 30)
	if !errors.Is(err, ErrMissingAPIKey) {
		t.Errorf("expected ErrMissingAPIKey, got %v", err)
	}
}

func TestClient_DailyCloses_EmptyValues(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status": "ok", "values": []}`))
	}))
	defer server.Close()

	c := NewClient(Config{APIKey: "test-key", BaseURL: server.URL}, server.Client())

	pts, err := c.DailyCloses(context.Background(), "AAPL", 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pts) != 0 {
		t.Errorf("expected no points, got %d", len(pts))
	}
}
