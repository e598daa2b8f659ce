// Package usecase implements the business logic for the instrument catalog.
package usecase

import "errors"

var (
	// ErrInstrumentNotFound is returned when no instrument matches the id or symbol.
	ErrInstrumentNotFound = errors.New("instrument not found")

	// ErrDuplicateSymbol is returned when adding a symbol that is already listed.
	ErrDuplicateSymbol = errors.New("symbol already exists")
)

// ErrNonPositivePrice is returned when a live feed reports a zero or negative close.
var ErrNonPositivePrice = errors.New("price feed returned a non-positive price")
