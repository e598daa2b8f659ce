// Package dto defines data transfer objects for the price history HTTP API.
package dto

import (
	"time"

	"stock_portfolio/internal/feature/pricehistory/domain/entity"
)

// PointItem is one close. Date is YYYY-MM-DD.
type PointItem struct {
	Date  string  `json:"date"`
	Price float64 `json:"price"`
}

// HistoryResponse is the body of GET /instruments/:symbol/history.
type HistoryResponse struct {
	Symbol string      `json:"symbol"`
	Points []PointItem `json:"points"`
}

// NewHistoryResponse maps points, oldest first.
func NewHistoryResponse(symbol string, pts []entity.PricePoint) HistoryResponse {
	out := HistoryResponse{Symbol: symbol, Points: make([]PointItem, 0, len(pts))}
	for _, p := range pts {
		out.Points = append(out.Points, PointItem{Date: p.Date.Format(time.DateOnly), Price: p.Price})
	}
	return out
}
