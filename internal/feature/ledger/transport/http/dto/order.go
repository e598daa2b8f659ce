// Package dto defines data transfer objects for the order HTTP API.
package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"stock_portfolio/internal/feature/ledger/domain/entity"
)

// OrderReq is the body of POST /orders/buy and POST /orders/sell.
// When Price is omitted the instrument's current price is used.
type OrderReq struct {
	Symbol   string           `json:"symbol" binding:"required"`
	Quantity int64            `json:"quantity" binding:"required"`
	Price    *decimal.Decimal `json:"price"`
}

// EntryItem is one ledger entry. Amounts are rounded to cents for display.
type EntryItem struct {
	OrderRef     string    `json:"order_ref"`
	Symbol       string    `json:"symbol"`
	InstrumentID uint      `json:"instrument_id"`
	Side         string    `json:"side"`
	Quantity     int64     `json:"quantity"`
	PricePerUnit string    `json:"price_per_unit"`
	TotalAmount  string    `json:"total_amount"`
	ExecutedAt   time.Time `json:"executed_at"`
}

// NewEntryItem maps a ledger entry to its response form.
func NewEntryItem(e entity.LedgerEntry) EntryItem {
	return EntryItem{
		OrderRef:     e.OrderRef,
		Symbol:       e.Symbol,
		InstrumentID: e.InstrumentID,
		Side:         string(e.Side),
		Quantity:     e.Quantity,
		PricePerUnit: e.PricePerUnit.StringFixed(2),
		TotalAmount:  e.TotalAmount.StringFixed(2),
		ExecutedAt:   e.ExecutedAt,
	}
}

// NewEntryList maps a slice, never returning nil.
func NewEntryList(list []entity.LedgerEntry) []EntryItem {
	out := make([]EntryItem, 0, len(list))
	for _, e := range list {
		out = append(out, NewEntryItem(e))
	}
	return out
}

// SellResponse reports a settled sell.
type SellResponse struct {
	Entry             EntryItem `json:"entry"`
	RealizedPL        string    `json:"realized_pl"`
	RemainingQuantity int64     `json:"remaining_quantity"`
	Closed            bool      `json:"closed"`
}

// NewSellResponse maps a sell result, labelling the entry with symbol.
func NewSellResponse(res *entity.SellResult, symbol string) SellResponse {
	entry := NewEntryItem(res.Entry)
	entry.Symbol = symbol
	out := SellResponse{
		Entry:      entry,
		RealizedPL: res.RealizedPL.StringFixed(2),
		Closed:     res.Remaining == nil,
	}
	if res.Remaining != nil {
		out.RemainingQuantity = res.Remaining.Quantity
	}
	return out
}
