package twelvedata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"time"

	"stock_portfolio/internal/feature/pricehistory/domain/entity"
	"stock_portfolio/internal/feature/pricehistory/usecase"
	"stock_portfolio/internal/platform/externalapi/twelvedata/dto"
)

// ErrMissingAPIKey is returned without a request when no key is configured.
var ErrMissingAPIKey = errors.New("twelvedata: api key not configured")

// Client fetches daily closes from Twelve Data.
type Client struct {
	cfg    Config
	client *http.Client
}

var _ usecase.Source = (*Client)(nil)

// NewClient creates a Client using the given HTTP client.
func NewClient(cfg Config, client *http.Client) *Client {
	return &Client{cfg: cfg, client: client}
}

// DailyCloses requests days 1day candles and returns their closes, oldest first.
func (t *Client) DailyCloses(ctx context.Context, symbol string, days int) ([]entity.PricePoint, error) {
	if t.cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	q := url.Values{}
	q.Set("symbol", symbol)
	q.Set("interval", "1day")
	q.Set("outputsize", strconv.Itoa(days))
	q.Set("apikey", t.cfg.APIKey)

	u := fmt.Sprintf("%s/time_series?%s", t.cfg.BaseURL, q.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	res, err := t.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, fmt.Errorf("twelvedata http %d", res.StatusCode)
	}

	var body dto.TimeSeriesResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, err
	}
	if body.Status == "error" {
		return nil, fmt.Errorf("twelvedata: %s", body.Message)
	}

	pts := make([]entity.PricePoint, 0, len(body.Values))
	for _, v := range body.Values {
		tm, err := time.Parse(time.DateTime, v.Datetime)
		if err != nil {
			tm, err = time.Parse(time.DateOnly, v.Datetime)
			if err != nil {
				return nil, fmt.Errorf("parse time %q: %w", v.Datetime, err)
			}
		}
		c, err := strconv.ParseFloat(v.Close, 64)
		if err != nil {
			return nil, fmt.Errorf("parse close %q: %w", v.Close, err)
		}
		pts = append(pts, entity.PricePoint{Date: tm, Price: c})
	}
	slices.SortFunc(pts, func(a, b entity.PricePoint) int { return a.Date.Compare(b.Date) })
	return pts, nil
}
