// Package dto defines data transfer objects for the portfolio HTTP API.
package dto

import (
	"time"

	"stock_portfolio/internal/feature/portfolio/domain/entity"
)

// HoldingItem is one position with its derived values, rounded to cents.
type HoldingItem struct {
	HoldingID         uint      `json:"holding_id"`
	Username          string    `json:"username,omitempty"`
	Symbol            string    `json:"symbol"`
	CompanyName       string    `json:"company_name"`
	Sector            string    `json:"sector"`
	Quantity          int64     `json:"quantity"`
	AverageCost       string    `json:"average_cost"`
	CurrentPrice      string    `json:"current_price"`
	TotalInvestment   string    `json:"total_investment"`
	CurrentValue      string    `json:"current_value"`
	ProfitLoss        string    `json:"profit_loss"`
	ProfitLossPercent string    `json:"profit_loss_percent"`
	FirstAcquiredAt   time.Time `json:"first_acquired_at"`
}

// NewHoldingList maps views, never returning nil. withOwner keeps the username.
func NewHoldingList(views []entity.HoldingView, withOwner bool) []HoldingItem {
	out := make([]HoldingItem, 0, len(views))
	for _, v := range views {
		item := HoldingItem{
			HoldingID:         v.HoldingID,
			Symbol:            v.Symbol,
			CompanyName:       v.CompanyName,
			Sector:            v.Sector,
			Quantity:          v.Quantity,
			AverageCost:       v.AverageCost.StringFixed(2),
			CurrentPrice:      v.CurrentPrice.StringFixed(2),
			TotalInvestment:   v.TotalInvestment().StringFixed(2),
			CurrentValue:      v.CurrentValue().StringFixed(2),
			ProfitLoss:        v.ProfitLoss().StringFixed(2),
			ProfitLossPercent: v.ProfitLossPercent().StringFixed(2),
			FirstAcquiredAt:   v.FirstAcquiredAt,
		}
		if withOwner {
			item.Username = v.Username
		}
		out = append(out, item)
	}
	return out
}

// StatsResponse is the body of GET /portfolio/stats.
type StatsResponse struct {
	Positions         int    `json:"positions"`
	TotalValue        string `json:"total_value"`
	TotalInvestment   string `json:"total_investment"`
	ProfitLoss        string `json:"profit_loss"`
	ProfitLossPercent string `json:"profit_loss_percent"`
}

// NewStatsResponse maps portfolio statistics.
func NewStatsResponse(s entity.Stats) StatsResponse {
	return StatsResponse{
		Positions:         s.Positions,
		TotalValue:        s.TotalValue.StringFixed(2),
		TotalInvestment:   s.TotalInvestment.StringFixed(2),
		ProfitLoss:        s.ProfitLoss.StringFixed(2),
		ProfitLossPercent: s.ProfitLossPercent.StringFixed(2),
	}
}
