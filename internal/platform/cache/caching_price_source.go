// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"stock_portfolio/internal/feature/pricehistory/domain/entity"
	"stock_portfolio/internal/feature/pricehistory/usecase"
)

// CachingPriceSource decorates a price Source with Redis caching.
// Entries live until the next daily refresh. Redis failures never fail a
// request; they only cost a call to the inner source.
type CachingPriceSource struct {
	inner     usecase.Source
	rdb       *redis.Client
	ttl       func() time.Duration
	namespace string
}

var _ usecase.Source = (*CachingPriceSource)(nil)

// NewCachingPriceSource wraps inner. A nil rdb disables caching. A nil ttl
// expires entries at the next refresh time; an empty namespace uses "prices".
func NewCachingPriceSource(rdb *redis.Client, ttl func() time.Duration, inner usecase.Source, namespace string) *CachingPriceSource {
	if ttl == nil {
		ttl = func() time.Duration { return TimeUntilNextRefresh(time.Now()) }
	}
	if namespace == "" {
		namespace = "prices"
	}
	return &CachingPriceSource{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// DailyCloses checks the cache first and falls back to the inner source.
// Failed or empty answers are not cached.
func (c *CachingPriceSource) DailyCloses(ctx context.Context, symbol string, days int) ([]entity.PricePoint, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return c.inner.DailyCloses(ctx, symbol, days)
	}

	key := c.cacheKey(symbol, days)

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []entity.PricePoint
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	} else if err != nil && err != redis.Nil {
		slog.Warn("price cache read failed", "key", key, "error", err)
	}

	// 2) Fallback to the live source
	out, err := c.inner.DailyCloses(ctx, symbol, days)
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return out, nil
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(out); err == nil {
		if err := c.rdb.Set(ctx, key, b, c.ttl()).Err(); err != nil {
			slog.Warn("price cache write failed", "key", key, "error", err)
		}
	}
	return out, nil
}

// cacheKey generates a cache key for a specific query.
func (c *CachingPriceSource) cacheKey(symbol string, days int) string {
	return fmt.Sprintf("%s:%s:%d", c.namespace, safe(strings.ToUpper(symbol)), days)
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	s = strings.ReplaceAll(s, "*", "_")
	return s
}
