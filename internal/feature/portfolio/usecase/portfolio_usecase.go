// Package usecase aggregates holdings into portfolio views.
package usecase

import (
	"context"
	"log/slog"
	"time"

	"stock_portfolio/internal/feature/portfolio/domain/entity"
	"stock_portfolio/internal/shared/apperr"
)

// HoldingReader reads holdings joined with instruments.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type HoldingReader interface {
	// ListByAccount is ordered by FirstAcquiredAt DESC, then holding ID DESC.
	ListByAccount(ctx context.Context, accountID uint) ([]entity.HoldingView, error)
	// ListAll covers every account, ordered by username then symbol.
	ListAll(ctx context.Context) ([]entity.HoldingView, error)
}

// Aggregator computes holdings views and statistics. Nothing is cached;
// every call reflects the current prices.
type Aggregator struct {
	reader  HoldingReader
	timeout time.Duration
}

// NewAggregator creates an Aggregator.
func NewAggregator(reader HoldingReader, timeout time.Duration) *Aggregator {
	return &Aggregator{reader: reader, timeout: timeout}
}

// GetHoldings returns the account's holdings, newest position first.
func (a *Aggregator) GetHoldings(ctx context.Context, accountID uint) ([]entity.HoldingView, error) {
	ctx, cancel := apperr.WithTimeout(ctx, a.timeout)
	defer cancel()

	views, err := a.reader.ListByAccount(ctx, accountID)
	if err != nil {
		slog.Error("failed to load holdings", "account_id", accountID, "error", err)
		return nil, apperr.OperationFailed(err)
	}
	return views, nil
}

// GetStats summarises the account's holdings at current prices.
func (a *Aggregator) GetStats(ctx context.Context, accountID uint) (entity.Stats, error) {
	views, err := a.GetHoldings(ctx, accountID)
	if err != nil {
		return entity.Stats{}, err
	}
	return entity.ComputeStats(views), nil
}

// GetAllHoldings returns every account's holdings.
func (a *Aggregator) GetAllHoldings(ctx context.Context) ([]entity.HoldingView, error) {
	ctx, cancel := apperr.WithTimeout(ctx, a.timeout)
	defer cancel()

	views, err := a.reader.ListAll(ctx)
	if err != nil {
		slog.Error("failed to load all holdings", "error", err)
		return nil, apperr.OperationFailed(err)
	}
	return views, nil
}
