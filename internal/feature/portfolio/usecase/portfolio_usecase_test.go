package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stock_portfolio/internal/feature/portfolio/domain/entity"
	"stock_portfolio/internal/shared/apperr"
)

type mockHoldingReader struct {
	ListByAccountFunc func(ctx context.Context, accountID uint) ([]entity.HoldingView, error)
	ListAllFunc       func(ctx context.Context) ([]entity.HoldingView, error)
}

func (m *mockHoldingReader) ListByAccount(ctx context.Context, accountID uint) ([]entity.HoldingView, error) {
	if m.ListByAccountFunc != nil {
		return m.ListByAccountFunc(ctx, accountID)
	}
	return nil, nil
}

func (m *mockHoldingReader) ListAll(ctx context.Context) ([]entity.HoldingView, error) {
	if m.ListAllFunc != nil {
		return m.ListAllFunc(ctx)
	}
	return nil, nil
}

func TestAggregator_GetStats(t *testing.T) {
	calls := 0
	price := decimal.NewFromInt(110)
	reader := &mockHoldingReader{
		ListByAccountFunc: func(ctx context.Context, accountID uint) ([]entity.HoldingView, error) {
			calls++
			_, hasDeadline := ctx.Deadline()
			assert.True(t, hasDeadline)
			return []entity.HoldingView{{AccountID: accountID, Quantity: 10, AverageCost: decimal.NewFromInt(100), CurrentPrice: price}}, nil
		},
	}
	a := NewAggregator(reader, time.Second)

	s, err := a.GetStats(context.Background(), 3)
	require.NoError(t, err)
	assert.True(t, s.ProfitLoss.Equal(decimal.NewFromInt(100)))

	// prices move; stats follow without caching
	price = decimal.NewFromInt(90)
	s, err = a.GetStats(context.Background(), 3)
	require.NoError(t, err)
	assert.True(t, s.ProfitLoss.Equal(decimal.NewFromInt(-100)))
	assert.Equal(t, 2, calls)
}

func TestAggregator_Failures(t *testing.T) {
	cause := errors.New("database is locked")
	reader := &mockHoldingReader{
		ListByAccountFunc: func(ctx context.Context, accountID uint) ([]entity.HoldingView, error) { return nil, cause },
		ListAllFunc:       func(ctx context.Context) ([]entity.HoldingView, error) { return nil, cause },
	}
	a := NewAggregator(reader, 0)

	_, err := a.GetHoldings(context.Background(), 1)
	assert.ErrorIs(t, err, apperr.ErrOperationFailed)
	assert.ErrorIs(t, err, cause)

	_, err = a.GetStats(context.Background(), 1)
	assert.ErrorIs(t, err, apperr.ErrOperationFailed)

	_, err = a.GetAllHoldings(context.Background())
	assert.ErrorIs(t, err, apperr.ErrOperationFailed)
}

func TestAggregator_GetAllHoldings(t *testing.T) {
	reader := &mockHoldingReader{
		ListAllFunc: func(ctx context.Context) ([]entity.HoldingView, error) {
			return []entity.HoldingView{{Username: "admin"}, {Username: "demo"}}, nil
		},
	}

	views, err := NewAggregator(reader, time.Second).GetAllHoldings(context.Background())

	require.NoError(t, err)
	assert.Len(t, views, 2)
}
