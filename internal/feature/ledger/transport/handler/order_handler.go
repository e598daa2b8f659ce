// Package handler serves order settlement and the ledger over HTTP.
package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	catalogentity "stock_portfolio/internal/feature/catalog/domain/entity"
	catalogusecase "stock_portfolio/internal/feature/catalog/usecase"
	"stock_portfolio/internal/feature/ledger/domain/entity"
	"stock_portfolio/internal/feature/ledger/transport/http/dto"
	"stock_portfolio/internal/feature/ledger/usecase"
	jwtmw "stock_portfolio/internal/platform/jwt"
	"stock_portfolio/internal/shared/apperr"
)

// maxListLimit caps ?limit= on the transactions endpoint.
const maxListLimit = 500

// Settler settles orders and lists the ledger.
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type Settler interface {
	Buy(ctx context.Context, accountID, instrumentID uint, quantity int64, price decimal.Decimal) (*entity.LedgerEntry, error)
	Sell(ctx context.Context, accountID, instrumentID uint, quantity int64, price decimal.Decimal) (*entity.SellResult, error)
	ListEntries(ctx context.Context, accountID uint, limit int) ([]entity.LedgerEntry, error)
}

// InstrumentLookup resolves the symbol of an order.
type InstrumentLookup interface {
	GetBySymbol(ctx context.Context, symbol string) (*catalogentity.Instrument, error)
}

// OrderHandler handles order and transaction requests.
type OrderHandler struct {
	settler     Settler
	instruments InstrumentLookup
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(settler Settler, instruments InstrumentLookup) *OrderHandler {
	return &OrderHandler{settler: settler, instruments: instruments}
}

// Buy settles a buy order for the authenticated account.
func (h *OrderHandler) Buy(c *gin.Context) {
	accountID, in, req, ok := h.prepare(c)
	if !ok {
		return
	}
	entry, err := h.settler.Buy(c.Request.Context(), accountID, in.ID, req.Quantity, orderPrice(req, in))
	if err != nil {
		writeError(c, err)
		return
	}
	item := dto.NewEntryItem(*entry)
	item.Symbol = in.Symbol
	c.JSON(http.StatusCreated, item)
}

// Sell settles a sell order for the authenticated account.
func (h *OrderHandler) Sell(c *gin.Context) {
	accountID, in, req, ok := h.prepare(c)
	if !ok {
		return
	}
	res, err := h.settler.Sell(c.Request.Context(), accountID, in.ID, req.Quantity, orderPrice(req, in))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewSellResponse(res, in.Symbol))
}

// Transactions returns the account's ledger, newest first. ?limit= bounds it.
func (h *OrderHandler) Transactions(c *gin.Context) {
	accountID, ok := jwtmw.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a non-negative integer"})
			return
		}
		limit = min(n, maxListLimit)
	}

	list, err := h.settler.ListEntries(c.Request.Context(), accountID, limit)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewEntryList(list))
}

func (h *OrderHandler) prepare(c *gin.Context) (uint, *catalogentity.Instrument, dto.OrderReq, bool) {
	var req dto.OrderReq
	accountID, ok := jwtmw.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return 0, nil, req, false
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return 0, nil, req, false
	}
	in, err := h.instruments.GetBySymbol(c.Request.Context(), req.Symbol)
	if err != nil {
		writeError(c, err)
		return 0, nil, req, false
	}
	return accountID, in, req, true
}

func orderPrice(req dto.OrderReq, in *catalogentity.Instrument) decimal.Decimal {
	if req.Price != nil {
		return *req.Price
	}
	return in.CurrentPrice.Decimal
}

func writeError(c *gin.Context, err error) {
	switch {
	case apperr.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, usecase.ErrInstrumentNotFound), errors.Is(err, catalogusecase.ErrInstrumentNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, usecase.ErrNoSuchPosition):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, usecase.ErrInsufficientShares):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "operation failed, try again"})
	}
}
