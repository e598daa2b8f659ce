// Package usecase serves daily price history, falling back to a synthetic
// series whenever the live source cannot answer.
package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"stock_portfolio/internal/feature/pricehistory/domain/entity"
	"stock_portfolio/internal/shared/apperr"
)

// HistoryDays bounds the history window in calendar days and in points.
const HistoryDays = 30

// ErrNoPriceData is returned by LatestClose when no usable close exists.
var ErrNoPriceData = errors.New("no price data")

// Source fetches daily closes from a market data API.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type Source interface {
	// DailyCloses returns up to days recent closes in any order.
	DailyCloses(ctx context.Context, symbol string, days int) ([]entity.PricePoint, error)
}

// Provider is the price history service.
type Provider struct {
	source  Source
	timeout time.Duration
	now     func() time.Time
}

// NewProvider creates a Provider. A nil source serves synthetic data only.
func NewProvider(source Source, timeout time.Duration) *Provider {
	return &Provider{source: source, timeout: timeout, now: time.Now}
}

// GetHistoricalPrices returns at most HistoryDays closes, oldest first.
// It never fails: live errors, timeouts and empty answers fall back to the
// synthetic series.
func (p *Provider) GetHistoricalPrices(ctx context.Context, symbol string) []entity.PricePoint {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))

	if p.source != nil {
		pts, err := p.fetch(ctx, symbol)
		if err == nil {
			return pts
		}
		slog.Warn("live price history unavailable, using synthetic series", "symbol", symbol, "error", err)
	}
	return Synthesize(symbol, p.now())
}

// LatestClose returns the most recent close from the live source. Without a
// live source the last synthetic close is used.
func (p *Provider) LatestClose(ctx context.Context, symbol string) (decimal.Decimal, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))

	var pts []entity.PricePoint
	if p.source == nil {
		pts = Synthesize(symbol, p.now())
	} else {
		var err error
		if pts, err = p.fetch(ctx, symbol); err != nil {
			return decimal.Zero, err
		}
	}
	if len(pts) == 0 {
		return decimal.Zero, ErrNoPriceData
	}
	return decimal.NewFromFloat(pts[len(pts)-1].Price), nil
}

func (p *Provider) fetch(ctx context.Context, symbol string) ([]entity.PricePoint, error) {
	ctx, cancel := apperr.WithTimeout(ctx, p.timeout)
	defer cancel()

	raw, err := p.source.DailyCloses(ctx, symbol, HistoryDays)
	if err != nil {
		return nil, err
	}
	pts := normalize(raw)
	if len(pts) == 0 {
		return nil, fmt.Errorf("%w for %s", ErrNoPriceData, symbol)
	}
	return pts, nil
}

// normalize drops non-positive prices and repeated dates, sorts oldest
// first and keeps the newest HistoryDays points.
func normalize(raw []entity.PricePoint) []entity.PricePoint {
	out := make([]entity.PricePoint, 0, len(raw))
	for _, pt := range raw {
		if pt.Price > 0 && !pt.Date.IsZero() {
			out = append(out, pt)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })

	dedup := out[:0]
	for i, pt := range out {
		if i > 0 && pt.Date.Equal(out[i-1].Date) {
			continue
		}
		dedup = append(dedup, pt)
	}
	if len(dedup) > HistoryDays {
		dedup = dedup[len(dedup)-HistoryDays:]
	}
	return dedup
}
