// Package entity defines price history data.
package entity

import "time"

// PricePoint is the closing price of one trading day.
type PricePoint struct {
	Date  time.Time `json:"date"`
	Price float64   `json:"price"`
}
