// Package dto defines data transfer objects for the catalog HTTP API.
package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"stock_portfolio/internal/feature/catalog/domain/entity"
)

// InstrumentItem is one catalog row. Prices are rounded to cents for display.
type InstrumentItem struct {
	ID            uint      `json:"id"`
	Symbol        string    `json:"symbol"`
	CompanyName   string    `json:"company_name"`
	Sector        string    `json:"sector"`
	CurrentPrice  string    `json:"current_price"`
	LastUpdatedAt time.Time `json:"last_updated_at"`
}

// NewInstrumentItem maps an instrument to its response form.
func NewInstrumentItem(in entity.Instrument) InstrumentItem {
	return InstrumentItem{
		ID:            in.ID,
		Symbol:        in.Symbol,
		CompanyName:   in.CompanyName,
		Sector:        in.Sector,
		CurrentPrice:  in.CurrentPrice.StringFixed(2),
		LastUpdatedAt: in.LastUpdatedAt,
	}
}

// NewInstrumentList maps a slice, never returning nil.
func NewInstrumentList(list []entity.Instrument) []InstrumentItem {
	out := make([]InstrumentItem, 0, len(list))
	for _, in := range list {
		out = append(out, NewInstrumentItem(in))
	}
	return out
}

// AddInstrumentReq is the body of POST /admin/instruments.
// Price accepts a JSON number or string.
type AddInstrumentReq struct {
	Symbol      string          `json:"symbol" binding:"required"`
	CompanyName string          `json:"company_name" binding:"required"`
	Sector      string          `json:"sector"`
	Price       decimal.Decimal `json:"price"`
}

// SetPriceReq is the body of PUT /admin/instruments/:id/price.
type SetPriceReq struct {
	Price decimal.Decimal `json:"price"`
}

// RefreshResponse reports a price refresh run.
type RefreshResponse struct {
	Updated int      `json:"updated"`
	Failed  []string `json:"failed"`
}
