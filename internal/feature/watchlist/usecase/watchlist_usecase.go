// Package usecase manages per-account watchlists.
package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"stock_portfolio/internal/feature/watchlist/domain/entity"
	"stock_portfolio/internal/shared/apperr"
)

// WatchlistRepository persists watchlist entries.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type WatchlistRepository interface {
	// Create returns ErrAlreadyWatched for a duplicate pair and
	// ErrInstrumentNotFound when the instrument does not exist.
	Create(ctx context.Context, e *entity.WatchlistEntry) error
	// Delete reports whether a row was removed. accountID 0 matches any owner.
	Delete(ctx context.Context, entryID, accountID uint) (bool, error)
	ListByAccount(ctx context.Context, accountID uint) ([]entity.WatchedInstrument, error)
	Exists(ctx context.Context, accountID, instrumentID uint) (bool, error)
}

// WatchlistUsecase is the watchlist service.
type WatchlistUsecase struct {
	repo    WatchlistRepository
	timeout time.Duration
	now     func() time.Time
}

// NewWatchlistUsecase creates a WatchlistUsecase.
func NewWatchlistUsecase(repo WatchlistRepository, timeout time.Duration) *WatchlistUsecase {
	return &WatchlistUsecase{repo: repo, timeout: timeout, now: time.Now}
}

// Add puts an instrument on the account's watchlist.
func (u *WatchlistUsecase) Add(ctx context.Context, accountID, instrumentID uint) (*entity.WatchlistEntry, error) {
	ctx, cancel := apperr.WithTimeout(ctx, u.timeout)
	defer cancel()

	e := &entity.WatchlistEntry{AccountID: accountID, InstrumentID: instrumentID, AddedAt: u.now().UTC()}
	if err := u.repo.Create(ctx, e); err != nil {
		return nil, u.fail("add", accountID, err)
	}
	slog.Info("instrument watched", "account_id", accountID, "instrument_id", instrumentID, "entry_id", e.ID)
	return e, nil
}

// Remove deletes an entry by id regardless of owner. Removing an entry
// that does not exist reports false and no error.
func (u *WatchlistUsecase) Remove(ctx context.Context, entryID uint) (bool, error) {
	return u.remove(ctx, entryID, 0)
}

// RemoveForAccount deletes an entry only if it belongs to accountID.
func (u *WatchlistUsecase) RemoveForAccount(ctx context.Context, accountID, entryID uint) (bool, error) {
	return u.remove(ctx, entryID, accountID)
}

func (u *WatchlistUsecase) remove(ctx context.Context, entryID, accountID uint) (bool, error) {
	ctx, cancel := apperr.WithTimeout(ctx, u.timeout)
	defer cancel()

	removed, err := u.repo.Delete(ctx, entryID, accountID)
	if err != nil {
		return false, u.fail("remove", accountID, err)
	}
	return removed, nil
}

// List returns the account's watchlist, newest first.
func (u *WatchlistUsecase) List(ctx context.Context, accountID uint) ([]entity.WatchedInstrument, error) {
	ctx, cancel := apperr.WithTimeout(ctx, u.timeout)
	defer cancel()

	list, err := u.repo.ListByAccount(ctx, accountID)
	if err != nil {
		return nil, u.fail("list", accountID, err)
	}
	return list, nil
}

// IsWatched reports whether the account watches the instrument.
func (u *WatchlistUsecase) IsWatched(ctx context.Context, accountID, instrumentID uint) (bool, error) {
	ctx, cancel := apperr.WithTimeout(ctx, u.timeout)
	defer cancel()

	ok, err := u.repo.Exists(ctx, accountID, instrumentID)
	if err != nil {
		return false, u.fail("check", accountID, err)
	}
	return ok, nil
}

func (u *WatchlistUsecase) fail(op string, accountID uint, err error) error {
	if errors.Is(err, ErrAlreadyWatched) || errors.Is(err, ErrInstrumentNotFound) {
		return err
	}
	slog.Error("watchlist "+op+" failed", "account_id", accountID, "error", err)
	return apperr.OperationFailed(err)
}
