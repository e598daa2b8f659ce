// Package adapters provides the GORM repository for the catalog feature.
package adapters

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"stock_portfolio/internal/feature/catalog/domain/entity"
	"stock_portfolio/internal/feature/catalog/usecase"
	"stock_portfolio/internal/shared/currency"
)

// instrumentGorm is the GORM implementation of InstrumentRepository.
type instrumentGorm struct {
	db *gorm.DB
}

var _ usecase.InstrumentRepository = (*instrumentGorm)(nil)

// NewInstrumentRepository creates an instrument repository backed by db.
func NewInstrumentRepository(db *gorm.DB) *instrumentGorm {
	return &instrumentGorm{db: db}
}

// List returns every instrument ordered by symbol.
func (r *instrumentGorm) List(ctx context.Context) ([]entity.Instrument, error) {
	var list []entity.Instrument
	if err := r.db.WithContext(ctx).Order("symbol ASC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// FindByID returns usecase.ErrInstrumentNotFound when absent.
func (r *instrumentGorm) FindByID(ctx context.Context, id uint) (*entity.Instrument, error) {
	return r.first(ctx, "id = ?", id)
}

// FindBySymbol returns usecase.ErrInstrumentNotFound when absent.
func (r *instrumentGorm) FindBySymbol(ctx context.Context, symbol string) (*entity.Instrument, error) {
	return r.first(ctx, "symbol = ?", symbol)
}

func (r *instrumentGorm) first(ctx context.Context, query string, arg any) (*entity.Instrument, error) {
	var in entity.Instrument
	if err := r.db.WithContext(ctx).Where(query, arg).First(&in).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrInstrumentNotFound
		}
		return nil, err
	}
	return &in, nil
}

// Search matches term as a substring of symbol or company name.
// LOWER on both sides keeps the match case-insensitive on postgres too.
func (r *instrumentGorm) Search(ctx context.Context, term string) ([]entity.Instrument, error) {
	pattern := "%" + escapeLike(strings.ToLower(term)) + "%"
	var list []entity.Instrument
	if err := r.db.WithContext(ctx).
		Where(`LOWER(symbol) LIKE ? ESCAPE '\' OR LOWER(company_name) LIKE ? ESCAPE '\'`, pattern, pattern).
		Order("symbol ASC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// Create returns usecase.ErrDuplicateSymbol on a unique violation.
func (r *instrumentGorm) Create(ctx context.Context, in *entity.Instrument) error {
	if err := r.db.WithContext(ctx).Create(in).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return usecase.ErrDuplicateSymbol
		}
		return err
	}
	return nil
}

// UpdatePrice sets current_price and last_updated_at.
func (r *instrumentGorm) UpdatePrice(ctx context.Context, id uint, price decimal.Decimal, at time.Time) error {
	res := r.db.WithContext(ctx).
		Model(&entity.Instrument{}).
		Where("id = ?", id).
		Updates(map[string]any{"current_price": currency.NewAmount(price), "last_updated_at": at})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrInstrumentNotFound
	}
	return nil
}

// Delete removes the row. Dependent rows go with it through ON DELETE CASCADE.
func (r *instrumentGorm) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&entity.Instrument{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrInstrumentNotFound
	}
	return nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
