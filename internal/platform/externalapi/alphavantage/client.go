package alphavantage

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
	"stock_portfolio/internal/platform/externalapi/alphavantage/dto"
)

var (
	// ErrMissingAPIKey is returned without a request when no key is configured.
	ErrMissingAPIKey = errors.New("alphavantage: api key not configured")

	// ErrEmptySeries is returned when the response carries no daily series.
	ErrEmptySeries = errors.New("alphavantage: empty time series")
)

// Client fetches daily closes from Alpha Vantage.
type Client struct {
	cfg    Config
	client *http.Client
}

var _ usecase.Source = (*Client)(nil)

// NewClient creates a Client using the given HTTP client.
func NewClient(cfg Config, client *http.Client) *Client {
	return &Client{cfg: cfg, client: client}
}

// DailyCloses calls TIME_SERIES_DAILY (compact output, about 100 days) and
// returns the newest days closes, oldest first.
func (c *Client) DailyCloses(ctx context.Context, symbol string, days int) ([]entity.PricePoint, error) {
	if c.cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	q := url.Values{}
	q.Set("function", "TIME_SERIES_DAILY")
	q.Set("symbol", symbol)
	q.Set("outputsize", "compact")
	q.Set("apikey", c.cfg.APIKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	res, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, fmt.Errorf("alphavantage http %d", res.StatusCode)
	}

	var body dto.DailyResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("alphavantage: decode: %w", err)
	}
	switch {
	case body.ErrorMessage != "":
		return nil, fmt.Errorf("alphavantage: %s", body.ErrorMessage)
	case body.Note != "":
		return nil, fmt.Errorf("alphavantage note: %s", body.Note)
	case body.Information != "":
		return nil, fmt.Errorf("alphavantage information: %s", body.Information)
	case len(body.TimeSeries) == 0:
		return nil, ErrEmptySeries
	}

	pts := make([]entity.PricePoint, 0, len(body.TimeSeries))
	for date, bar := range body.TimeSeries {
		d, err := time.Parse(time.DateOnly, date)
		if err != nil {
			return nil, fmt.Errorf("parse date %q: %w", date, err)
		}
		cl, err := strconv.ParseFloat(bar.Close, 64)
		if err != nil {
			return nil, fmt.Errorf("parse close %q: %w", bar.Close, err)
		}
		pts = append(pts, entity.PricePoint{Date: d, Price: cl})
	}
	return newest(pts, days), nil
}

// newest sorts oldest first and keeps the last n points.
func newest(pts []entity.PricePoint, n int) []entity.PricePoint {
	slices.SortFunc(pts, func(a, b entity.PricePoint) int { return a.Date.Compare(b.Date) })
	if n > 0 && len(pts) > n {
		pts = pts[len(pts)-n:]
	}
	return pts
}
