// Package adapters persists watchlists through GORM.
package adapters

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	authentity "stock_portfolio/internal/feature/auth/domain/entity"
	catalogentity "stock_portfolio/internal/feature/catalog/domain/entity"
	"stock_portfolio/internal/feature/watchlist/domain/entity"
	"stock_portfolio/internal/feature/watchlist/usecase"
)

// WatchlistEntryModel is the GORM row for entity.WatchlistEntry.
type WatchlistEntryModel struct {
	ID           uint                      `gorm:"primaryKey"`
	AccountID    uint                      `gorm:"not null;uniqueIndex:idx_watchlist_account_instrument"`
	InstrumentID uint                      `gorm:"not null;uniqueIndex:idx_watchlist_account_instrument;index"`
	AddedAt      time.Time                 `gorm:"not null"`
	Account      *authentity.Account       `gorm:"constraint:OnDelete:CASCADE"`
	Instrument   *catalogentity.Instrument `gorm:"constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM.
func (WatchlistEntryModel) TableName() string { return "watchlist_entries" }

type watchlistGorm struct {
	db *gorm.DB
}

var _ usecase.WatchlistRepository = (*watchlistGorm)(nil)

// NewWatchlistRepository creates a WatchlistRepository backed by db.
func NewWatchlistRepository(db *gorm.DB) *watchlistGorm {
	return &watchlistGorm{db: db}
}

// Create inserts an entry after confirming the instrument exists.
func (r *watchlistGorm) Create(ctx context.Context, e *entity.WatchlistEntry) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&catalogentity.Instrument{}).Where("id = ?", e.InstrumentID).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return usecase.ErrInstrumentNotFound
		}

		m := &WatchlistEntryModel{AccountID: e.AccountID, InstrumentID: e.InstrumentID, AddedAt: e.AddedAt}
		if err := tx.Omit(clause.Associations).Create(m).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return usecase.ErrAlreadyWatched
			}
			return err
		}
		e.ID = m.ID
		return nil
	})
}

// Delete removes an entry, scoped to accountID unless it is 0.
func (r *watchlistGorm) Delete(ctx context.Context, entryID, accountID uint) (bool, error) {
	q := r.db.WithContext(ctx).Where("id = ?", entryID)
	if accountID != 0 {
		q = q.Where("account_id = ?", accountID)
	}
	res := q.Delete(&WatchlistEntryModel{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// watchedRow is the scan target of the watchlist join.
type watchedRow struct {
	ID            uint
	AccountID     uint
	InstrumentID  uint
	AddedAt       time.Time
	Symbol        string
	CompanyName   string
	Sector        string
	CurrentPrice  decimal.Decimal
	LastUpdatedAt time.Time
}

// ListByAccount returns the entries newest first with instrument details.
func (r *watchlistGorm) ListByAccount(ctx context.Context, accountID uint) ([]entity.WatchedInstrument, error) {
	var rows []watchedRow
	err := r.db.WithContext(ctx).
		Table("watchlist_entries AS w").
		Select("w.id, w.account_id, w.instrument_id, w.added_at, i.symbol, i.company_name, i.sector, i.current_price, i.last_updated_at").
		Joins("JOIN instruments AS i ON i.id = w.instrument_id").
		Where("w.account_id = ?", accountID).
		Order("w.added_at DESC").
		Order("w.id DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]entity.WatchedInstrument, 0, len(rows))
	for _, row := range rows {
		out = append(out, entity.WatchedInstrument{
			WatchlistEntry: entity.WatchlistEntry{
				ID:           row.ID,
				AccountID:    row.AccountID,
				InstrumentID: row.InstrumentID,
				AddedAt:      row.AddedAt,
			},
			Symbol:        row.Symbol,
			CompanyName:   row.CompanyName,
			Sector:        row.Sector,
			CurrentPrice:  row.CurrentPrice,
			LastUpdatedAt: row.LastUpdatedAt,
		})
	}
	return out, nil
}

// Exists reports whether the pair is on the watchlist.
func (r *watchlistGorm) Exists(ctx context.Context, accountID, instrumentID uint) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&WatchlistEntryModel{}).
		Where("account_id = ? AND instrument_id = ?", accountID, instrumentID).
		Count(&n).Error
	return n > 0, err
}
