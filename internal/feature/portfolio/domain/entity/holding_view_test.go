package entity

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestHoldingView_Derived(t *testing.T) {
	v := HoldingView{Quantity: 15, AverageCost: d("160"), CurrentPrice: d("175.50")}

	assert.True(t, v.TotalInvestment().Equal(d("2400")))
	assert.True(t, v.CurrentValue().Equal(d("2632.5")))
	assert.True(t, v.ProfitLoss().Equal(d("232.5")))
	assert.Equal(t, "9.69", v.ProfitLossPercent().StringFixed(2))
}

func TestHoldingView_Loss(t *testing.T) {
	v := HoldingView{Quantity: 10, AverageCost: d("200"), CurrentPrice: d("150")}

	assert.True(t, v.ProfitLoss().Equal(d("-500")))
	assert.True(t, v.ProfitLossPercent().Equal(d("-25")))
}

func TestComputeStats(t *testing.T) {
	tests := []struct {
		name     string
		views    []HoldingView
		value    string
		invested string
		pl       string
		pct      string
	}{
		{name: "empty", value: "0", invested: "0", pl: "0", pct: "0"},
		{
			name: "mixed",
			views: []HoldingView{
				{Quantity: 10, AverageCost: d("100"), CurrentPrice: d("110")},
				{Quantity: 5, AverageCost: d("200"), CurrentPrice: d("180")},
			},
			value: "2000", invested: "2000", pl: "0", pct: "0",
		},
		{
			name:  "gain",
			views: []HoldingView{{Quantity: 4, AverageCost: d("50"), CurrentPrice: d("75")}},
			value: "300", invested: "200", pl: "100", pct: "50",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := ComputeStats(tt.views)

			assert.Equal(t, len(tt.views), s.Positions)
			assert.True(t, s.TotalValue.Equal(d(tt.value)), "value %s", s.TotalValue)
			assert.True(t, s.TotalInvestment.Equal(d(tt.invested)), "invested %s", s.TotalInvestment)
			assert.True(t, s.ProfitLoss.Equal(d(tt.pl)), "pl %s", s.ProfitLoss)
			assert.True(t, s.ProfitLossPercent.Equal(d(tt.pct)), "pct %s", s.ProfitLossPercent)
		})
	}
}
