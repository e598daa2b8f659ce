package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/shopspring/decimal"

	"stock_portfolio/internal/feature/ledger/domain/entity"
	"stock_portfolio/internal/platform/id"
	"stock_portfolio/internal/shared/apperr"
)

// Store is the ledger's persistence boundary.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type Store interface {
	// WithinTx runs fn in one transaction. Any error returned by fn rolls
	// back every write made through tx.
	WithinTx(ctx context.Context, fn func(tx TxStore) error) error

	// ListEntries returns entries of an account, most recent first.
	// limit <= 0 means no limit.
	ListEntries(ctx context.Context, accountID uint, limit int) ([]entity.LedgerEntry, error)
}

// TxStore is the set of writes available inside a settlement transaction.
type TxStore interface {
	InstrumentExists(ctx context.Context, instrumentID uint) (bool, error)
	// FindHolding returns ErrNoSuchPosition when the account holds nothing.
	// Where the store supports it the row stays locked until commit.
	FindHolding(ctx context.Context, accountID, instrumentID uint) (*entity.Holding, error)
	CreateHolding(ctx context.Context, h *entity.Holding) error
	UpdateHolding(ctx context.Context, h *entity.Holding) error
	DeleteHolding(ctx context.Context, id uint) error
	AppendEntry(ctx context.Context, e *entity.LedgerEntry) error
}

// Engine settles buy and sell orders. It is the only writer of holdings and
// ledger entries.
type Engine struct {
	store   Store
	locks   *keyedMutex
	timeout time.Duration
	now     func() time.Time
	newRef  func(time.Time) string
}

// NewEngine creates an Engine. Each settlement, including the wait for the
// store, is bounded by timeout.
func NewEngine(store Store, timeout time.Duration) *Engine {
	return &Engine{
		store:   store,
		locks:   newKeyedMutex(),
		timeout: timeout,
		now:     time.Now,
		newRef:  id.New,
	}
}

func validateOrder(quantity int64, price decimal.Decimal) error {
	if quantity <= 0 {
		return invalidOrder("quantity", "must be greater than zero")
	}
	if !price.IsPositive() {
		return invalidOrder("price", "must be greater than zero")
	}
	return nil
}

func (e *Engine) newEntry(accountID, instrumentID uint, side entity.Side, quantity int64, price decimal.Decimal) *entity.LedgerEntry {
	at := e.now().UTC()
	return &entity.LedgerEntry{
		OrderRef:     e.newRef(at),
		AccountID:    accountID,
		InstrumentID: instrumentID,
		Side:         side,
		Quantity:     quantity,
		PricePerUnit: price,
		TotalAmount:  price.Mul(decimal.NewFromInt(quantity)),
		ExecutedAt:   at,
	}
}

// Buy records a BUY and opens or grows the position. A grown position's
// average cost becomes (q0·c0 + q·p) / (q0 + q).
func (e *Engine) Buy(ctx context.Context, accountID, instrumentID uint, quantity int64, price decimal.Decimal) (*entity.LedgerEntry, error) {
	if err := validateOrder(quantity, price); err != nil {
		slog.Debug("buy rejected", "account_id", accountID, "instrument_id", instrumentID, "error", err)
		return nil, err
	}

	unlock := e.locks.Lock(positionKey{accountID: accountID, instrumentID: instrumentID})
	defer unlock()

	ctx, cancel := apperr.WithTimeout(ctx, e.timeout)
	defer cancel()

	entry := e.newEntry(accountID, instrumentID, entity.SideBuy, quantity, price)
	err := e.store.WithinTx(ctx, func(tx TxStore) error {
		ok, err := tx.InstrumentExists(ctx, instrumentID)
		if err != nil {
			return err
		}
		if !ok {
			return ErrInstrumentNotFound
		}

		if err := tx.AppendEntry(ctx, entry); err != nil {
			return err
		}

		h, err := tx.FindHolding(ctx, accountID, instrumentID)
		if errors.Is(err, ErrNoSuchPosition) {
			return tx.CreateHolding(ctx, &entity.Holding{
				AccountID:       accountID,
				InstrumentID:    instrumentID,
				Quantity:        quantity,
				AverageCost:     price,
				FirstAcquiredAt: entry.ExecutedAt,
			})
		}
		if err != nil {
			return err
		}

		if h.Quantity > math.MaxInt64-quantity {
			return invalidOrder("quantity", "position would overflow")
		}
		total := h.Quantity + quantity
		h.AverageCost = h.CostBasis().Add(entry.TotalAmount).Div(decimal.NewFromInt(total))
		h.Quantity = total
		return tx.UpdateHolding(ctx, h)
	})
	if err != nil {
		return nil, e.fail("buy", accountID, instrumentID, err)
	}

	slog.Info("buy settled",
		"order_ref", entry.OrderRef,
		"account_id", accountID,
		"instrument_id", instrumentID,
		"quantity", quantity,
		"price", price.String(),
	)
	return entry, nil
}

// Sell records a SELL and shrinks the position, deleting it at zero.
// The average cost of what remains is unchanged.
func (e *Engine) Sell(ctx context.Context, accountID, instrumentID uint, quantity int64, price decimal.Decimal) (*entity.SellResult, error) {
	if err := validateOrder(quantity, price); err != nil {
		slog.Debug("sell rejected", "account_id", accountID, "instrument_id", instrumentID, "error", err)
		return nil, err
	}

	unlock := e.locks.Lock(positionKey{accountID: accountID, instrumentID: instrumentID})
	defer unlock()

	ctx, cancel := apperr.WithTimeout(ctx, e.timeout)
	defer cancel()

	entry := e.newEntry(accountID, instrumentID, entity.SideSell, quantity, price)
	res := &entity.SellResult{}
	err := e.store.WithinTx(ctx, func(tx TxStore) error {
		h, err := tx.FindHolding(ctx, accountID, instrumentID)
		if err != nil {
			return err
		}
		if quantity > h.Quantity {
			return fmt.Errorf("%w: holding %d, selling %d", ErrInsufficientShares, h.Quantity, quantity)
		}

		if err := tx.AppendEntry(ctx, entry); err != nil {
			return err
		}

		res.RealizedPL = price.Sub(h.AverageCost).Mul(decimal.NewFromInt(quantity))
		h.Quantity -= quantity
		if h.Quantity == 0 {
			return tx.DeleteHolding(ctx, h.ID)
		}
		if err := tx.UpdateHolding(ctx, h); err != nil {
			return err
		}
		res.Remaining = h
		return nil
	})
	if err != nil {
		return nil, e.fail("sell", accountID, instrumentID, err)
	}

	res.Entry = *entry
	slog.Info("sell settled",
		"order_ref", entry.OrderRef,
		"account_id", accountID,
		"instrument_id", instrumentID,
		"quantity", quantity,
		"price", price.String(),
		"closed", res.Remaining == nil,
	)
	return res, nil
}

// ListEntries returns the account's ledger, most recent first.
func (e *Engine) ListEntries(ctx context.Context, accountID uint, limit int) ([]entity.LedgerEntry, error) {
	ctx, cancel := apperr.WithTimeout(ctx, e.timeout)
	defer cancel()

	entries, err := e.store.ListEntries(ctx, accountID, limit)
	if err != nil {
		slog.Error("failed to list ledger entries", "account_id", accountID, "error", err)
		return nil, apperr.OperationFailed(err)
	}
	return entries, nil
}

// fail passes expected outcomes through untouched and wraps store failures.
func (e *Engine) fail(op string, accountID, instrumentID uint, err error) error {
	switch {
	case errors.Is(err, ErrInvalidOrder),
		errors.Is(err, ErrNoSuchPosition),
		errors.Is(err, ErrInsufficientShares),
		errors.Is(err, ErrInstrumentNotFound):
		slog.Debug(op+" rejected", "account_id", accountID, "instrument_id", instrumentID, "error", err)
		return err
	}
	slog.Error(op+" failed, rolled back", "account_id", accountID, "instrument_id", instrumentID, "error", err)
	return apperr.OperationFailed(err)
}
