// Package adapters persists the ledger through GORM.
package adapters

import (
	"time"

	authentity "stock_portfolio/internal/feature/auth/domain/entity"
	catalogentity "stock_portfolio/internal/feature/catalog/domain/entity"
	"stock_portfolio/internal/feature/ledger/domain/entity"
	"stock_portfolio/internal/shared/currency"
)

// HoldingModel is the GORM row for entity.Holding.
// The associations exist only to emit ON DELETE CASCADE foreign keys.
type HoldingModel struct {
	ID              uint                      `gorm:"primaryKey"`
	AccountID       uint                      `gorm:"not null;uniqueIndex:idx_holdings_account_instrument"`
	InstrumentID    uint                      `gorm:"not null;uniqueIndex:idx_holdings_account_instrument;index"`
	Quantity        int64                     `gorm:"not null"`
	AverageCost     currency.Amount           `gorm:"not null"`
	FirstAcquiredAt time.Time                 `gorm:"not null"`
	Account         *authentity.Account       `gorm:"constraint:OnDelete:CASCADE"`
	Instrument      *catalogentity.Instrument `gorm:"constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM.
func (HoldingModel) TableName() string { return "holdings" }

// LedgerEntryModel is the GORM row for entity.LedgerEntry.
type LedgerEntryModel struct {
	ID           uint                      `gorm:"primaryKey"`
	OrderRef     string                    `gorm:"size:26;not null;uniqueIndex"`
	AccountID    uint                      `gorm:"not null;index:idx_ledger_account_executed"`
	InstrumentID uint                      `gorm:"not null;index"`
	Side         string                    `gorm:"size:4;not null"`
	Quantity     int64                     `gorm:"not null"`
	PricePerUnit currency.Amount           `gorm:"not null"`
	TotalAmount  currency.Amount           `gorm:"not null"`
	ExecutedAt   time.Time                 `gorm:"not null;index:idx_ledger_account_executed"`
	Account      *authentity.Account       `gorm:"constraint:OnDelete:CASCADE"`
	Instrument   *catalogentity.Instrument `gorm:"constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM.
func (LedgerEntryModel) TableName() string { return "ledger_entries" }

func toHoldingModel(h *entity.Holding) *HoldingModel {
	return &HoldingModel{
		ID:              h.ID,
		AccountID:       h.AccountID,
		InstrumentID:    h.InstrumentID,
		Quantity:        h.Quantity,
		AverageCost:     currency.NewAmount(h.AverageCost),
		FirstAcquiredAt: h.FirstAcquiredAt,
	}
}

func (m *HoldingModel) toEntity() *entity.Holding {
	return &entity.Holding{
		ID:              m.ID,
		AccountID:       m.AccountID,
		InstrumentID:    m.InstrumentID,
		Quantity:        m.Quantity,
		AverageCost:     m.AverageCost.Decimal,
		FirstAcquiredAt: m.FirstAcquiredAt,
	}
}

func toEntryModel(e *entity.LedgerEntry) *LedgerEntryModel {
	return &LedgerEntryModel{
		ID:           e.ID,
		OrderRef:     e.OrderRef,
		AccountID:    e.AccountID,
		InstrumentID: e.InstrumentID,
		Side:         string(e.Side),
		Quantity:     e.Quantity,
		PricePerUnit: currency.NewAmount(e.PricePerUnit),
		TotalAmount:  currency.NewAmount(e.TotalAmount),
		ExecutedAt:   e.ExecutedAt,
	}
}

func (m *LedgerEntryModel) toEntity() entity.LedgerEntry {
	e := entity.LedgerEntry{
		ID:           m.ID,
		OrderRef:     m.OrderRef,
		AccountID:    m.AccountID,
		InstrumentID: m.InstrumentID,
		Side:         entity.Side(m.Side),
		Quantity:     m.Quantity,
		PricePerUnit: m.PricePerUnit.Decimal,
		TotalAmount:  m.TotalAmount.Decimal,
		ExecutedAt:   m.ExecutedAt,
	}
	if m.Instrument != nil {
		e.Symbol = m.Instrument.Symbol
	}
	return e
}
