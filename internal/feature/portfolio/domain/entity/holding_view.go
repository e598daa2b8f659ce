// Package entity defines the read-side views of a portfolio.
package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// HoldingView is a holding joined with its instrument and owner.
type HoldingView struct {
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

// TotalInvestment is Quantity × AverageCost.
func (v HoldingView) TotalInvestment() decimal.Decimal {
	return v.AverageCost.Mul(decimal.NewFromInt(v.Quantity))
}

// CurrentValue is Quantity × CurrentPrice.
func (v HoldingView) CurrentValue() decimal.Decimal {
	return v.CurrentPrice.Mul(decimal.NewFromInt(v.Quantity))
}

// ProfitLoss is CurrentValue − TotalInvestment.
func (v HoldingView) ProfitLoss() decimal.Decimal {
	return v.CurrentValue().Sub(v.TotalInvestment())
}

// ProfitLossPercent is ProfitLoss as a percentage of TotalInvestment.
func (v HoldingView) ProfitLossPercent() decimal.Decimal {
	return percent(v.ProfitLoss(), v.TotalInvestment())
}

// Stats summarises a set of holdings.
type Stats struct {
	Positions         int
	TotalValue        decimal.Decimal
	TotalInvestment   decimal.Decimal
	ProfitLoss        decimal.Decimal
	ProfitLossPercent decimal.Decimal
}

// ComputeStats sums the holdings. An empty set yields all zeros.
func ComputeStats(views []HoldingView) Stats {
	s := Stats{
		Positions:       len(views),
		TotalValue:      decimal.Zero,
		TotalInvestment: decimal.Zero,
	}
	for _, v := range views {
		s.TotalValue = s.TotalValue.Add(v.CurrentValue())
		s.TotalInvestment = s.TotalInvestment.Add(v.TotalInvestment())
	}
	s.ProfitLoss = s.TotalValue.Sub(s.TotalInvestment)
	s.ProfitLossPercent = percent(s.ProfitLoss, s.TotalInvestment)
	return s
}

// percent is 0 when base is 0.
func percent(part, base decimal.Decimal) decimal.Decimal {
	if base.IsZero() {
		return decimal.Zero
	}
	return part.Div(base).Mul(hundred)
}
