// Package adapters reads portfolio views through GORM.
package adapters

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"stock_portfolio/internal/feature/portfolio/domain/entity"
	"stock_portfolio/internal/feature/portfolio/usecase"
)

const holdingViewColumns = `h.id AS holding_id, h.account_id, a.username, h.instrument_id,
	i.symbol, i.company_name, i.sector, h.quantity, h.average_cost,
	i.current_price, h.first_acquired_at`

// holdingRow is the scan target of the holdings join.
type holdingRow struct {
	HoldingID       uint
	AccountID       uint
	Username        string
	InstrumentID    uint
	Symbol          string
	CompanyName     string
	Sector          string
	Quantity        int64
	AverageCost     decimal.Decimal
	CurrentPrice    decimal.Decimal
	FirstAcquiredAt time.Time
}

func (r holdingRow) toEntity() entity.HoldingView {
	return entity.HoldingView{
		HoldingID:       r.HoldingID,
		AccountID:       r.AccountID,
		Username:        r.Username,
		InstrumentID:    r.InstrumentID,
		Symbol:          r.Symbol,
		CompanyName:     r.CompanyName,
		Sector:          r.Sector,
		Quantity:        r.Quantity,
		AverageCost:     r.AverageCost,
		CurrentPrice:    r.CurrentPrice,
		FirstAcquiredAt: r.FirstAcquiredAt,
	}
}

type holdingReaderGorm struct {
	db *gorm.DB
}

var _ usecase.HoldingReader = (*holdingReaderGorm)(nil)

// NewHoldingReader creates a HoldingReader backed by db.
func NewHoldingReader(db *gorm.DB) *holdingReaderGorm {
	return &holdingReaderGorm{db: db}
}

func (r *holdingReaderGorm) base(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("holdings AS h").
		Select(holdingViewColumns).
		Joins("JOIN instruments AS i ON i.id = h.instrument_id").
		Joins("JOIN accounts AS a ON a.id = h.account_id")
}

// ListByAccount returns one account's holdings, newest position first.
func (r *holdingReaderGorm) ListByAccount(ctx context.Context, accountID uint) ([]entity.HoldingView, error) {
	var rows []holdingRow
	err := r.base(ctx).
		Where("h.account_id = ?", accountID).
		Order("h.first_acquired_at DESC").
		Order("h.id DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return toViews(rows), nil
}

// ListAll returns every holding ordered by username, then symbol.
func (r *holdingReaderGorm) ListAll(ctx context.Context) ([]entity.HoldingView, error) {
	var rows []holdingRow
	err := r.base(ctx).
		Order("a.username").
		Order("i.symbol").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return toViews(rows), nil
}

func toViews(rows []holdingRow) []entity.HoldingView {
	out := make([]entity.HoldingView, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toEntity())
	}
	return out
}
