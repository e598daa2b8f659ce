package di

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authentity "stock_portfolio/internal/feature/auth/domain/entity"
	"stock_portfolio/internal/platform/cache"
	"stock_portfolio/internal/platform/config"
	"stock_portfolio/internal/platform/db"
	"stock_portfolio/internal/platform/db/migrate"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:     "test-secret",
		JWTExpiration: time.Hour,
		PriceSource:   SourceSynthetic,
		OpTimeout:     5 * time.Second,
		BcryptCost:    4,
	}
}

func TestNewPriceSource(t *testing.T) {
	assert.Nil(t, NewPriceSource(SourceSynthetic, nil))

	src := NewPriceSource(SourceAlphaVantage, nil)
	_, ok := src.(*cache.CachingPriceSource)
	assert.True(t, ok)

	src = NewPriceSource(SourceTwelveData, nil)
	_, ok = src.(*cache.CachingPriceSource)
	assert.True(t, ok)
}

func TestServices_EndToEnd(t *testing.T) {
	gdb, err := db.OpenSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close(gdb) })
	require.NoError(t, migrate.Migrate(gdb))

	cfg := testConfig()
	svc := NewServices(cfg, gdb, nil)
	ctx := context.Background()
	require.NoError(t, migrate.Seed(ctx, gdb, svc.Credentials))

	account, err := svc.Sessions.Login(ctx, "demo", "demo123")
	require.NoError(t, err)
	assert.Equal(t, authentity.RoleTrader, account.Role)

	aapl, err := svc.Catalog.GetBySymbol(ctx, "aapl")
	require.NoError(t, err)

	_, err = svc.Ledger.Buy(ctx, account.ID, aapl.ID, 10, decimal.RequireFromString("150"))
	require.NoError(t, err)

	stats, err := svc.Portfolio.GetStats(ctx, account.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Positions)
	assert.Equal(t, "1500.00", stats.TotalInvestment.StringFixed(2))
	assert.Equal(t, "1755.00", stats.TotalValue.StringFixed(2))

	_, err = svc.Watchlist.Add(ctx, account.ID, aapl.ID)
	require.NoError(t, err)

	points := svc.History.GetHistoricalPrices(ctx, "AAPL")
	assert.GreaterOrEqual(t, len(points), 20)
	assert.LessOrEqual(t, len(points), 22)

	res, err := svc.Refresh.RefreshPrices(ctx)
	require.NoError(t, err)
	assert.Equal(t, 10, res.Updated)

	h := NewHandlers(cfg, svc)
	assert.NotNil(t, h.Auth)
	assert.NotNil(t, h.Orders)
}
