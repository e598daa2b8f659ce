// Package di wires repositories, usecases and handlers together.
package di

import (
	"time"

	"github.com/redis/go-redis/v9"

	"stock_portfolio/internal/feature/pricehistory/usecase"
	"stock_portfolio/internal/platform/cache"
	"stock_portfolio/internal/platform/externalapi/alphavantage"
	"stock_portfolio/internal/platform/externalapi/twelvedata"
	infrahttp "stock_portfolio/internal/platform/http"
	"stock_portfolio/internal/shared/ratelimiter"
)

// Price source names accepted by PRICE_SOURCE.
const (
	SourceAlphaVantage = "alphavantage"
	SourceTwelveData   = "twelvedata"
	SourceSynthetic    = "synthetic"
)

// NewPriceSource returns the live source for name wrapped in the Redis cache.
// It returns nil for the synthetic source.
func NewPriceSource(name string, rdb *redis.Client) usecase.Source {
	var live usecase.Source
	switch name {
	case SourceAlphaVantage:
		cfg := alphavantage.LoadConfig()
		live = alphavantage.NewClient(cfg, infrahttp.NewHTTPClient(cfg.Timeout))
	case SourceTwelveData:
		cfg := twelvedata.LoadConfig()
		live = twelvedata.NewClient(cfg, infrahttp.NewHTTPClient(cfg.Timeout))
	default:
		return nil
	}
	return cache.NewCachingPriceSource(rdb, nil, live, "prices")
}

// NewRefreshLimiter throttles catalog refreshes to the free tier of each feed.
func NewRefreshLimiter(name string) *ratelimiter.RateLimiter {
	switch name {
	case SourceAlphaVantage:
		return ratelimiter.NewRateLimiter(5, time.Minute)
	case SourceTwelveData:
		return ratelimiter.NewRateLimiter(8, time.Minute)
	default:
		return ratelimiter.NewRateLimiter(0, 0)
	}
}
