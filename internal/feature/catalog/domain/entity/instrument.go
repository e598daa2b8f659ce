// Package entity defines the domain models for the catalog feature.
package entity

import (
	"strings"
	"time"

	"stock_portfolio/internal/shared/currency"
)

// Instrument is a tradable stock in the catalog.
type Instrument struct {
	ID uint `gorm:"primaryKey"`

	// Symbol is the upper-case ticker, unique across the catalog.
	Symbol string `gorm:"size:20;not null;uniqueIndex"`

	CompanyName string `gorm:"size:255;not null"`
	Sector      string `gorm:"size:100"`

	// CurrentPrice is always positive.
	CurrentPrice currency.Amount `gorm:"not null"`

	LastUpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM.
func (Instrument) TableName() string {
	return "instruments"
}

// NormalizeSymbol trims and upper-cases a ticker.
func NormalizeSymbol(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
