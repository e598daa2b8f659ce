// Package entity defines the ledger's positions and settlement records.
package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Side is the direction of a settled order.
type Side string

const (
	SideBuy  Side = "BUY"
	SideSell Side = "SELL"
)

// Holding is an open position of one account in one instrument.
// Quantity and AverageCost are always positive; a position that reaches
// zero shares is removed rather than stored empty.
type Holding struct {
	ID              uint
	AccountID       uint
	InstrumentID    uint
	Quantity        int64
	AverageCost     decimal.Decimal
	FirstAcquiredAt time.Time
}

// CostBasis is Quantity × AverageCost.
func (h Holding) CostBasis() decimal.Decimal {
	return h.AverageCost.Mul(decimal.NewFromInt(h.Quantity))
}

// LedgerEntry is an immutable record of a settled order.
type LedgerEntry struct {
	ID uint

	// OrderRef is a time-sortable external reference (ULID).
	OrderRef string

	AccountID    uint
	InstrumentID uint

	// Symbol is filled when entries are read back; settlement leaves it empty.
	Symbol string

	Side         Side
	Quantity     int64
	PricePerUnit decimal.Decimal

	// TotalAmount is Quantity × PricePerUnit.
	TotalAmount decimal.Decimal

	ExecutedAt time.Time
}

// SellResult describes a settled sell.
type SellResult struct {
	Entry LedgerEntry

	// RealizedPL is quantity × (price − average cost). Derived, not stored.
	RealizedPL decimal.Decimal

	// Remaining is the position after the sell; nil when it was closed.
	Remaining *Holding
}
