package usecase

import (
	"hash/fnv"
	"math"
	"math/rand/v2"
	"strings"
	"time"

	"stock_portfolio/internal/feature/pricehistory/domain/entity"
)

const (
	defaultBasePrice = 100.0
	maxDailyTrend    = 0.0015
	maxDailyMove     = 0.02
	floorRatio       = 0.7
)

var basePrices = map[string]float64{
	"AAPL":  175.50,
	"GOOGL": 140.30,
	"MSFT":  380.75,
	"AMZN":  145.20,
	"TSLA":  235.60,
	"META":  330.40,
	"NVDA":  495.80,
	"NFLX":  445.90,
	"AMD":   115.30,
	"INTC":  42.50,
}

// BasePrice is the anchor of the synthetic series for symbol.
func BasePrice(symbol string) float64 {
	if p, ok := basePrices[strings.ToUpper(symbol)]; ok {
		return p
	}
	return defaultBasePrice
}

// Synthesize builds a random walk over the HistoryDays calendar days ending
// on end's date, weekends skipped. One trend is drawn for the whole series
// and each day moves by it plus up to ±2%. Prices never fall below 70% of
// the base. The same symbol and end date always give the same series.
func Synthesize(symbol string, end time.Time) []entity.PricePoint {
	symbol = strings.ToUpper(symbol)
	endDay := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)

	h := fnv.New64a()
	_, _ = h.Write([]byte(symbol))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(endDay.Format(time.DateOnly)))
	seed := h.Sum64()
	rng := rand.New(rand.NewPCG(seed, seed>>1|1))

	base := BasePrice(symbol)
	floor := base * floorRatio
	trend := (rng.Float64()*2 - 1) * maxDailyTrend
	price := base

	out := make([]entity.PricePoint, 0, HistoryDays)
	for day := endDay.AddDate(0, 0, -(HistoryDays - 1)); !day.After(endDay); day = day.AddDate(0, 0, 1) {
		if wd := day.Weekday(); wd == time.Saturday || wd == time.Sunday {
			continue
		}
		move := (rng.Float64()*2 - 1) * maxDailyMove
		price = math.Max(price*(1+trend+move), floor)
		out = append(out, entity.PricePoint{Date: day, Price: math.Round(price*100) / 100})
	}
	return out
}
