// Package entity defines watchlist entries.
package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// WatchlistEntry marks an instrument an account follows.
// An (AccountID, InstrumentID) pair appears at most once.
type WatchlistEntry struct {
	ID           uint
	AccountID    uint
	InstrumentID uint
	AddedAt      time.Time
}

// WatchedInstrument is an entry joined with its instrument for display.
type WatchedInstrument struct {
	WatchlistEntry
	Symbol        string
	CompanyName   string
	Sector        string
	CurrentPrice  decimal.Decimal
	LastUpdatedAt time.Time
}
