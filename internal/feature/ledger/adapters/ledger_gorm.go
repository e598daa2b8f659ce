package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	catalogentity "stock_portfolio/internal/feature/catalog/domain/entity"
	"stock_portfolio/internal/feature/ledger/domain/entity"
	"stock_portfolio/internal/feature/ledger/usecase"
	"stock_portfolio/internal/platform/db"
	"stock_portfolio/internal/shared/currency"
)

// ledgerGorm is the GORM implementation of usecase.Store.
type ledgerGorm struct {
	db *gorm.DB
}

var (
	_ usecase.Store   = (*ledgerGorm)(nil)
	_ usecase.TxStore = (*txStore)(nil)
)

// NewLedgerStore creates a ledger store backed by gdb.
func NewLedgerStore(gdb *gorm.DB) *ledgerGorm {
	return &ledgerGorm{db: gdb}
}

// WithinTx runs fn inside a database transaction.
func (s *ledgerGorm) WithinTx(ctx context.Context, fn func(tx usecase.TxStore) error) error {
	lockRows := db.IsPostgres(s.db)
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&txStore{db: tx, lockRows: lockRows})
	})
}

// ListEntries returns entries newest first with their instrument symbol.
// Entries sharing a timestamp are ordered by id so the result is stable.
func (s *ledgerGorm) ListEntries(ctx context.Context, accountID uint, limit int) ([]entity.LedgerEntry, error) {
	q := s.db.WithContext(ctx).
		Preload("Instrument").
		Where("account_id = ?", accountID).
		Order("executed_at DESC").
		Order("id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var rows []LedgerEntryModel
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]entity.LedgerEntry, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toEntity())
	}
	return out, nil
}

// txStore carries one open transaction.
type txStore struct {
	db       *gorm.DB
	lockRows bool
}

func (t *txStore) InstrumentExists(ctx context.Context, instrumentID uint) (bool, error) {
	var n int64
	if err := t.db.WithContext(ctx).Model(&catalogentity.Instrument{}).Where("id = ?", instrumentID).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

// FindHolding reads the position row, locking it FOR UPDATE on postgres.
// SQLite serialises writers on its own.
func (t *txStore) FindHolding(ctx context.Context, accountID, instrumentID uint) (*entity.Holding, error) {
	q := t.db.WithContext(ctx)
	if t.lockRows {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var m HoldingModel
	err := q.Where("account_id = ? AND instrument_id = ?", accountID, instrumentID).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, usecase.ErrNoSuchPosition
	}
	if err != nil {
		return nil, err
	}
	return m.toEntity(), nil
}

func (t *txStore) CreateHolding(ctx context.Context, h *entity.Holding) error {
	m := toHoldingModel(h)
	if err := t.db.WithContext(ctx).Omit(clause.Associations).Create(m).Error; err != nil {
		return err
	}
	h.ID = m.ID
	return nil
}

func (t *txStore) UpdateHolding(ctx context.Context, h *entity.Holding) error {
	res := t.db.WithContext(ctx).
		Model(&HoldingModel{}).
		Where("id = ?", h.ID).
		Updates(map[string]any{"quantity": h.Quantity, "average_cost": currency.NewAmount(h.AverageCost)})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrNoSuchPosition
	}
	return nil
}

func (t *txStore) DeleteHolding(ctx context.Context, id uint) error {
	return t.db.WithContext(ctx).Delete(&HoldingModel{}, id).Error
}

func (t *txStore) AppendEntry(ctx context.Context, e *entity.LedgerEntry) error {
	m := toEntryModel(e)
	if err := t.db.WithContext(ctx).Omit(clause.Associations).Create(m).Error; err != nil {
		return err
	}
	e.ID = m.ID
	return nil
}
