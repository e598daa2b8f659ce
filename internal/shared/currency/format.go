// Package currency persists monetary values and renders them for presentation.
// Stored values keep ten fractional digits; rounding to cents happens only here.
package currency

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Code is the single currency the portfolio is denominated in.
const Code = money.USD

// Format renders d as a currency amount, e.g. "$1,234.56" or "-$3.10".
func Format(d decimal.Decimal) string {
	minor := d.Shift(2).Round(0).IntPart()
	return money.New(minor, Code).Display()
}

// FormatSigned is Format with an explicit "+" for positive amounts.
func FormatSigned(d decimal.Decimal) string {
	s := Format(d)
	if d.Round(2).IsPositive() {
		return "+" + s
	}
	return s
}

// FormatPercent renders a percentage with two fractional digits, e.g. "12.50%".
func FormatPercent(d decimal.Decimal) string {
	return d.StringFixed(2) + "%"
}
