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

	"stock_portfolio/internal/feature/catalog/domain/entity"
	"stock_portfolio/internal/feature/catalog/transport/http/dto"
	"stock_portfolio/internal/feature/catalog/usecase"
	"stock_portfolio/internal/shared/apperr"
	"stock_portfolio/internal/shared/currency"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type mockCatalogUsecase struct {
	ListFunc        func(ctx context.Context) ([]entity.Instrument, error)
	GetBySymbolFunc func(ctx context.Context, symbol string) (*entity.Instrument, error)
	SearchFunc      func(ctx context.Context, term string) ([]entity.Instrument, error)
	AddFunc         func(ctx context.Context, symbol, companyName, sector string, price decimal.Decimal) (*entity.Instrument, error)
	SetPriceFunc    func(ctx context.Context, id uint, price decimal.Decimal) error
	DeleteFunc      func(ctx context.Context, id uint) error
}

func (m *mockCatalogUsecase) List(ctx context.Context) ([]entity.Instrument, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}

func (m *mockCatalogUsecase) GetBySymbol(ctx context.Context, symbol string) (*entity.Instrument, error) {
	if m.GetBySymbolFunc != nil {
		return m.GetBySymbolFunc(ctx, symbol)
	}
	return nil, usecase.ErrInstrumentNotFound
}

func (m *mockCatalogUsecase) Search(ctx context.Context, term string) ([]entity.Instrument, error) {
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, term)
	}
	return nil, nil
}

func (m *mockCatalogUsecase) Add(ctx context.Context, symbol, companyName, sector string, price decimal.Decimal) (*entity.Instrument, error) {
	if m.AddFunc != nil {
		return m.AddFunc(ctx, symbol, companyName, sector, price)
	}
	return nil, errors.New("not implemented")
}

func (m *mockCatalogUsecase) SetPrice(ctx context.Context, id uint, price decimal.Decimal) error {
	if m.SetPriceFunc != nil {
		return m.SetPriceFunc(ctx, id, price)
	}
	return nil
}

func (m *mockCatalogUsecase) Delete(ctx context.Context, id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

type mockRefresher struct {
	RefreshPricesFunc func(ctx context.Context) (*usecase.RefreshResult, error)
}

func (m *mockRefresher) RefreshPrices(ctx context.Context) (*usecase.RefreshResult, error) {
	if m.RefreshPricesFunc != nil {
		return m.RefreshPricesFunc(ctx)
	}
	return &usecase.RefreshResult{}, nil
}

var aapl = entity.Instrument{
	ID:            1,
	Symbol:        "AAPL",
	CompanyName:   "Apple Inc.",
	Sector:        "Technology",
	CurrentPrice:  currency.NewAmount(decimal.RequireFromString("175.5")),
	LastUpdatedAt: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
}

func newRouter(uc CatalogUsecase, refresh PriceRefresher) *gin.Engine {
	h := NewInstrumentHandler(uc, refresh)
	r := gin.New()
	r.GET("/instruments", h.List)
	r.GET("/instruments/search", h.Search)
	r.GET("/instruments/:symbol", h.Show)
	r.POST("/admin/instruments", h.Add)
	r.PUT("/admin/instruments/:id/price", h.SetPrice)
	r.DELETE("/admin/instruments/:id", h.Delete)
	r.POST("/admin/instruments/refresh", h.Refresh)
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

func TestInstrumentHandler_List(t *testing.T) {
	tests := []struct {
		name           string
		listFunc       func(ctx context.Context) ([]entity.Instrument, error)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "success: returns rounded prices",
			listFunc:       func(ctx context.Context) ([]entity.Instrument, error) { return []entity.Instrument{aapl}, nil },
			expectedStatus: http.StatusOK,
			expectedBody:   `[{"id":1,"symbol":"AAPL","company_name":"Apple Inc.","sector":"Technology","current_price":"175.50","last_updated_at":"2024-01-02T00:00:00Z"}]`,
		},
		{
			name:           "success: empty catalog is an empty array",
			listFunc:       func(ctx context.Context) ([]entity.Instrument, error) { return nil, nil },
			expectedStatus: http.StatusOK,
			expectedBody:   `[]`,
		},
		{
			name: "failure: storage error is hidden",
			listFunc: func(ctx context.Context) ([]entity.Instrument, error) {
				return nil, apperr.OperationFailed(errors.New("database is locked"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error":"operation failed, try again"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRouter(&mockCatalogUsecase{ListFunc: tt.listFunc}, &mockRefresher{})

			w := do(r, http.MethodGet, "/instruments", nil)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
		})
	}
}

func TestInstrumentHandler_Search(t *testing.T) {
	var term string
	r := newRouter(&mockCatalogUsecase{
		SearchFunc: func(ctx context.Context, q string) ([]entity.Instrument, error) {
			term = q
			return []entity.Instrument{aapl}, nil
		},
	}, &mockRefresher{})

	w := do(r, http.MethodGet, "/instruments/search?q=apple", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "apple", term)
}

func TestInstrumentHandler_Show(t *testing.T) {
	r := newRouter(&mockCatalogUsecase{
		GetBySymbolFunc: func(ctx context.Context, symbol string) (*entity.Instrument, error) {
			if symbol == "aapl" {
				in := aapl
				return &in, nil
			}
			return nil, usecase.ErrInstrumentNotFound
		},
	}, &mockRefresher{})

	w := do(r, http.MethodGet, "/instruments/aapl", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var item dto.InstrumentItem
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &item))
	assert.Equal(t, "AAPL", item.Symbol)

	w = do(r, http.MethodGet, "/instruments/ZZZ", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestInstrumentHandler_Add(t *testing.T) {
	tests := []struct {
		name           string
		body           any
		addFunc        func(ctx context.Context, symbol, companyName, sector string, price decimal.Decimal) (*entity.Instrument, error)
		expectedStatus int
	}{
		{
			name: "created with string price",
			body: gin.H{"symbol": "nflx", "company_name": "Netflix Inc.", "sector": "Communication", "price": "445.90"},
			addFunc: func(ctx context.Context, symbol, companyName, sector string, price decimal.Decimal) (*entity.Instrument, error) {
				if !price.Equal(decimal.RequireFromString("445.90")) {
					return nil, errors.New("price not decoded")
				}
				return &entity.Instrument{ID: 11, Symbol: "NFLX", CompanyName: companyName, CurrentPrice: currency.NewAmount(price)}, nil
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "created with number price",
			body: gin.H{"symbol": "amd", "company_name": "AMD", "price": 115.3},
			addFunc: func(ctx context.Context, symbol, companyName, sector string, price decimal.Decimal) (*entity.Instrument, error) {
				return &entity.Instrument{ID: 12, Symbol: "AMD", CurrentPrice: currency.NewAmount(price)}, nil
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "missing company name",
			body:           gin.H{"symbol": "X", "price": "1"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "duplicate symbol",
			body: gin.H{"symbol": "AAPL", "company_name": "Apple", "price": "1"},
			addFunc: func(ctx context.Context, symbol, companyName, sector string, price decimal.Decimal) (*entity.Instrument, error) {
				return nil, usecase.ErrDuplicateSymbol
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name: "non-positive price",
			body: gin.H{"symbol": "X", "company_name": "X"},
			addFunc: func(ctx context.Context, symbol, companyName, sector string, price decimal.Decimal) (*entity.Instrument, error) {
				return nil, apperr.NewValidation("price", "must be greater than zero")
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRouter(&mockCatalogUsecase{AddFunc: tt.addFunc}, &mockRefresher{})

			w := do(r, http.MethodPost, "/admin/instruments", tt.body)

			assert.Equal(t, tt.expectedStatus, w.Code, w.Body.String())
		})
	}
}

func TestInstrumentHandler_SetPriceAndDelete(t *testing.T) {
	uc := &mockCatalogUsecase{
		SetPriceFunc: func(ctx context.Context, id uint, price decimal.Decimal) error {
			if id == 404 {
				return usecase.ErrInstrumentNotFound
			}
			return nil
		},
		DeleteFunc: func(ctx context.Context, id uint) error {
			if id == 404 {
				return usecase.ErrInstrumentNotFound
			}
			return nil
		},
	}
	r := newRouter(uc, &mockRefresher{})

	assert.Equal(t, http.StatusNoContent, do(r, http.MethodPut, "/admin/instruments/1/price", gin.H{"price": "199.99"}).Code)
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodPut, "/admin/instruments/404/price", gin.H{"price": "1"}).Code)
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodPut, "/admin/instruments/abc/price", gin.H{"price": "1"}).Code)
	assert.Equal(t, http.StatusNoContent, do(r, http.MethodDelete, "/admin/instruments/1", nil).Code)
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodDelete, "/admin/instruments/404", nil).Code)
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodDelete, "/admin/instruments/0", nil).Code)
}

func TestInstrumentHandler_Refresh(t *testing.T) {
	r := newRouter(&mockCatalogUsecase{}, &mockRefresher{
		RefreshPricesFunc: func(ctx context.Context) (*usecase.RefreshResult, error) {
			return &usecase.RefreshResult{Updated: 9, Failed: []string{"WMT"}}, nil
		},
	})

	w := do(r, http.MethodPost, "/admin/instruments/refresh", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"updated":9,"failed":["WMT"]}`, w.Body.String())

	r = newRouter(&mockCatalogUsecase{}, &mockRefresher{
		RefreshPricesFunc: func(ctx context.Context) (*usecase.RefreshResult, error) {
			return nil, errors.New("no such table")
		},
	})
	w = do(r, http.MethodPost, "/admin/instruments/refresh", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
