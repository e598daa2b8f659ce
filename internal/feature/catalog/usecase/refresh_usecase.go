package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"stock_portfolio/internal/feature/catalog/domain/entity"
	"stock_portfolio/internal/shared/apperr"
	"stock_portfolio/internal/shared/ratelimiter"
)

// LatestPriceSource returns the most recent close for a symbol from a live feed.
type LatestPriceSource interface {
	LatestClose(ctx context.Context, symbol string) (decimal.Decimal, error)
}

// RefreshResult summarises a refresh run.
type RefreshResult struct {
	Updated int
	Failed  []string
}

// RefreshUsecase pulls the latest close for every listed instrument and
// stores it as the current price.
type RefreshUsecase struct {
	source      LatestPriceSource
	repo        InstrumentRepository
	rateLimiter ratelimiter.Limiter
	timeout     time.Duration
	now         func() time.Time
}

// NewRefreshUsecase creates a new RefreshUsecase. Each catalog read and
// price write is bounded by timeout; feed calls keep the caller's deadline.
func NewRefreshUsecase(source LatestPriceSource, repo InstrumentRepository, rateLimiter ratelimiter.Limiter, timeout time.Duration) *RefreshUsecase {
	return &RefreshUsecase{source: source, repo: repo, rateLimiter: rateLimiter, timeout: timeout, now: time.Now}
}

func (ru *RefreshUsecase) refreshOne(ctx context.Context, id uint, symbol string) error {
	price, err := ru.source.LatestClose(ctx, symbol)
	if err != nil {
		return err
	}
	if !price.IsPositive() {
		return ErrNonPositivePrice
	}

	ctx, cancel := apperr.WithTimeout(ctx, ru.timeout)
	defer cancel()
	return ru.repo.UpdatePrice(ctx, id, price, ru.now().UTC())
}

func (ru *RefreshUsecase) list(ctx context.Context) ([]entity.Instrument, error) {
	ctx, cancel := apperr.WithTimeout(ctx, ru.timeout)
	defer cancel()
	return ru.repo.List(ctx)
}

// RefreshPrices walks the catalog in symbol order. A failure for one symbol
// is logged and the run continues with the next one. Only a failure to read
// the catalog, or cancellation of ctx, aborts the run.
func (ru *RefreshUsecase) RefreshPrices(ctx context.Context) (*RefreshResult, error) {
	instruments, err := ru.list(ctx)
	if err != nil {
		slog.Error("failed to list instruments for refresh", "error", err)
		return nil, apperr.OperationFailed(err)
	}

	res := &RefreshResult{}
	for _, in := range instruments {
		if err := ru.rateLimiter.Wait(ctx); err != nil {
			return res, err
		}
		if err := ru.refreshOne(ctx, in.ID, in.Symbol); err != nil {
			slog.Error("failed to refresh price", "symbol", in.Symbol, "error", err)
			res.Failed = append(res.Failed, in.Symbol)
			continue
		}
		res.Updated++
	}
	slog.Info("price refresh finished", "updated", res.Updated, "failed", len(res.Failed))
	return res, nil
}
