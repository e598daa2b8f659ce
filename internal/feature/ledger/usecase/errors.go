// Package usecase implements order settlement against the portfolio ledger.
package usecase

import (
	"errors"
	"fmt"

	"stock_portfolio/internal/shared/apperr"
)

var (
	// ErrInvalidOrder is returned for a non-positive quantity or price.
	// It always wraps an *apperr.ValidationError.
	ErrInvalidOrder = errors.New("invalid order")

	// ErrNoSuchPosition is returned when selling an instrument the account does not hold.
	ErrNoSuchPosition = errors.New("no position in this instrument")

	// ErrInsufficientShares is returned when selling more shares than held.
	// The sell is rejected, never clamped.
	ErrInsufficientShares = errors.New("insufficient shares")

	// ErrInstrumentNotFound is returned when the instrument is not in the catalog.
	ErrInstrumentNotFound = errors.New("instrument not found")

	// ErrOperationFailed is returned, wrapping the cause, when the store fails.
	// Nothing was persisted.
	ErrOperationFailed = apperr.ErrOperationFailed
)

func invalidOrder(field, message string) error {
	return fmt.Errorf("%w: %w", ErrInvalidOrder, apperr.NewValidation(field, message))
}
