// Package dto defines data transfer objects for the watchlist HTTP API.
package dto

import (
	"time"

	"stock_portfolio/internal/feature/watchlist/domain/entity"
)

// AddWatchReq is the body of POST /watchlist.
type AddWatchReq struct {
	Symbol string `json:"symbol" binding:"required"`
}

// WatchItem is one watched instrument.
type WatchItem struct {
	ID           uint      `json:"id"`
	InstrumentID uint      `json:"instrument_id"`
	Symbol       string    `json:"symbol"`
	CompanyName  string    `json:"company_name,omitempty"`
	Sector       string    `json:"sector,omitempty"`
	CurrentPrice string    `json:"current_price,omitempty"`
	AddedAt      time.Time `json:"added_at"`
}

// NewWatchList maps watched instruments, never returning nil.
func NewWatchList(list []entity.WatchedInstrument) []WatchItem {
	out := make([]WatchItem, 0, len(list))
	for _, w := range list {
		out = append(out, WatchItem{
			ID:           w.ID,
			InstrumentID: w.InstrumentID,
			Symbol:       w.Symbol,
			CompanyName:  w.CompanyName,
			Sector:       w.Sector,
			CurrentPrice: w.CurrentPrice.StringFixed(2),
			AddedAt:      w.AddedAt,
		})
	}
	return out
}
