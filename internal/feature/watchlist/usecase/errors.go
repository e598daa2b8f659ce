package usecase

import "errors"

var (
	// ErrAlreadyWatched is returned when the instrument is already on the account's watchlist.
	ErrAlreadyWatched = errors.New("instrument already on watchlist")

	// ErrInstrumentNotFound is returned when the instrument is not in the catalog.
	ErrInstrumentNotFound = errors.New("instrument not found")
)
