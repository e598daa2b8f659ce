package currency

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stock_portfolio/internal/platform/db"
)

type pricedRow struct {
	ID    uint `gorm:"primaryKey"`
	Price Amount
}

func TestAmount_RoundTripsExactlyOnSQLite(t *testing.T) {
	t.Parallel()

	gdb, err := db.OpenSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close(gdb) })
	require.NoError(t, gdb.AutoMigrate(&pricedRow{}))

	third := decimal.RequireFromString("300.02").Div(decimal.NewFromInt(3))
	require.NoError(t, gdb.Create(&pricedRow{Price: NewAmount(third)}).Error)

	var got pricedRow
	require.NoError(t, gdb.First(&got).Error)
	assert.Equal(t, "100.0066666667", got.Price.String())
	assert.True(t, got.Price.Equal(third.Round(Scale)))

	var storage string
	require.NoError(t, gdb.Raw("SELECT typeof(price) FROM priced_rows").Scan(&storage).Error)
	assert.Equal(t, "text", storage)
}

func TestAmount_ScanAcceptsFloatsAndBytes(t *testing.T) {
	t.Parallel()

	var a Amount
	require.NoError(t, a.Scan([]byte("12.5")))
	assert.True(t, a.Equal(decimal.RequireFromString("12.5")))

	require.NoError(t, a.Scan(float64(3.25)))
	assert.True(t, a.Equal(decimal.RequireFromString("3.25")))

	v, err := NewAmount(decimal.RequireFromString("1.123456789012")).Value()
	require.NoError(t, err)
	assert.Equal(t, "1.123456789", v)
}
