package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalogentity "stock_portfolio/internal/feature/catalog/domain/entity"
	catalogusecase "stock_portfolio/internal/feature/catalog/usecase"
	"stock_portfolio/internal/feature/watchlist/domain/entity"
	"stock_portfolio/internal/feature/watchlist/transport/http/dto"
	"stock_portfolio/internal/feature/watchlist/usecase"
	jwtmw "stock_portfolio/internal/platform/jwt"
	"stock_portfolio/internal/shared/currency"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type mockWatchlist struct {
	AddFunc              func(ctx context.Context, accountID, instrumentID uint) (*entity.WatchlistEntry, error)
	RemoveForAccountFunc func(ctx context.Context, accountID, entryID uint) (bool, error)
	ListFunc             func(ctx context.Context, accountID uint) ([]entity.WatchedInstrument, error)
}

func (m *mockWatchlist) Add(ctx context.Context, accountID, instrumentID uint) (*entity.WatchlistEntry, error) {
	if m.AddFunc != nil {
		return m.AddFunc(ctx, accountID, instrumentID)
	}
	return &entity.WatchlistEntry{ID: 1, AccountID: accountID, InstrumentID: instrumentID}, nil
}

func (m *mockWatchlist) RemoveForAccount(ctx context.Context, accountID, entryID uint) (bool, error) {
	if m.RemoveForAccountFunc != nil {
		return m.RemoveForAccountFunc(ctx, accountID, entryID)
	}
	return false, nil
}

func (m *mockWatchlist) List(ctx context.Context, accountID uint) ([]entity.WatchedInstrument, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, accountID)
	}
	return nil, nil
}

type mockLookup struct{}

func (mockLookup) GetBySymbol(ctx context.Context, symbol string) (*catalogentity.Instrument, error) {
	if symbol == "NVDA" {
		return &catalogentity.Instrument{ID: 7, Symbol: "NVDA", CompanyName: "NVIDIA Corporation", CurrentPrice: currency.NewAmount(decimal.RequireFromString("495.2"))}, nil
	}
	return nil, catalogusecase.ErrInstrumentNotFound
}

func newRouter(uc Watchlist, accountID uint) *gin.Engine {
	h := NewWatchlistHandler(uc, mockLookup{})
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if accountID > 0 {
			c.Set(jwtmw.ContextUserID, accountID)
		}
		c.Next()
	})
	r.GET("/watchlist", h.List)
	r.POST("/watchlist", h.Add)
	r.DELETE("/watchlist/:id", h.Remove)
	return r
}

func do(r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestWatchlistHandler_Add(t *testing.T) {
	tests := []struct {
		name           string
		body           any
		addErr         error
		expectedStatus int
	}{
		{name: "added", body: gin.H{"symbol": "NVDA"}, expectedStatus: http.StatusCreated},
		{name: "missing symbol", body: gin.H{}, expectedStatus: http.StatusBadRequest},
		{name: "unknown symbol", body: gin.H{"symbol": "ZZZ"}, expectedStatus: http.StatusNotFound},
		{name: "duplicate", body: gin.H{"symbol": "NVDA"}, addErr: usecase.ErrAlreadyWatched, expectedStatus: http.StatusConflict},
		{name: "store failure", body: gin.H{"symbol": "NVDA"}, addErr: errors.New("operation failed, try again: locked"), expectedStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotInstrument uint
			uc := &mockWatchlist{
				AddFunc: func(ctx context.Context, accountID, instrumentID uint) (*entity.WatchlistEntry, error) {
					if tt.addErr != nil {
						return nil, tt.addErr
					}
					gotInstrument = instrumentID
					return &entity.WatchlistEntry{ID: 3, AccountID: accountID, InstrumentID: instrumentID, AddedAt: time.Now()}, nil
				},
			}

			w := do(newRouter(uc, 2), http.MethodPost, "/watchlist", tt.body)

			require.Equal(t, tt.expectedStatus, w.Code, w.Body.String())
			if tt.expectedStatus == http.StatusCreated {
				assert.Equal(t, uint(7), gotInstrument)
				var item dto.WatchItem
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &item))
				assert.Equal(t, "NVDA", item.Symbol)
				assert.Equal(t, "495.20", item.CurrentPrice)
			}
		})
	}
}

func TestWatchlistHandler_ListAndRemove(t *testing.T) {
	uc := &mockWatchlist{
		ListFunc: func(ctx context.Context, accountID uint) ([]entity.WatchedInstrument, error) {
			return []entity.WatchedInstrument{{WatchlistEntry: entity.WatchlistEntry{ID: 3, AccountID: accountID}, Symbol: "NVDA", CurrentPrice: decimal.NewFromInt(1)}}, nil
		},
		RemoveForAccountFunc: func(ctx context.Context, accountID, entryID uint) (bool, error) {
			return accountID == 2 && entryID == 3, nil
		},
	}
	r := newRouter(uc, 2)

	w := do(r, http.MethodGet, "/watchlist", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var items []dto.WatchItem
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
	require.Len(t, items, 1)

	w = do(r, http.MethodDelete, "/watchlist/3", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"removed":true}`, w.Body.String())

	w = do(r, http.MethodDelete, "/watchlist/4", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"removed":false}`, w.Body.String())

	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodDelete, "/watchlist/x", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, do(newRouter(uc, 0), http.MethodGet, "/watchlist", nil).Code)
}
