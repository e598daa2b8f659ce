// Package handler serves the catalog over HTTP.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"stock_portfolio/internal/feature/catalog/domain/entity"
	"stock_portfolio/internal/feature/catalog/transport/http/dto"
	"stock_portfolio/internal/feature/catalog/usecase"
	"stock_portfolio/internal/shared/apperr"
)

// CatalogUsecase is the read and admin surface of the catalog.
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type CatalogUsecase interface {
	List(ctx context.Context) ([]entity.Instrument, error)
	GetBySymbol(ctx context.Context, symbol string) (*entity.Instrument, error)
	Search(ctx context.Context, term string) ([]entity.Instrument, error)
	Add(ctx context.Context, symbol, companyName, sector string, price decimal.Decimal) (*entity.Instrument, error)
	SetPrice(ctx context.Context, id uint, price decimal.Decimal) error
	Delete(ctx context.Context, id uint) error
}

// PriceRefresher updates current prices from the live feed.
type PriceRefresher interface {
	RefreshPrices(ctx context.Context) (*usecase.RefreshResult, error)
}

// InstrumentHandler handles catalog requests.
type InstrumentHandler struct {
	uc      CatalogUsecase
	refresh PriceRefresher
}

// NewInstrumentHandler creates a new InstrumentHandler.
func NewInstrumentHandler(uc CatalogUsecase, refresh PriceRefresher) *InstrumentHandler {
	return &InstrumentHandler{uc: uc, refresh: refresh}
}

// List returns the catalog ordered by symbol.
func (h *InstrumentHandler) List(c *gin.Context) {
	list, err := h.uc.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewInstrumentList(list))
}

// Search matches ?q= against symbol and company name.
func (h *InstrumentHandler) Search(c *gin.Context) {
	list, err := h.uc.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewInstrumentList(list))
}

// Show returns a single instrument by symbol.
func (h *InstrumentHandler) Show(c *gin.Context) {
	in, err := h.uc.GetBySymbol(c.Request.Context(), c.Param("symbol"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewInstrumentItem(*in))
}

// Add lists a new instrument. Admin only.
func (h *InstrumentHandler) Add(c *gin.Context) {
	var req dto.AddInstrumentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	in, err := h.uc.Add(c.Request.Context(), req.Symbol, req.CompanyName, req.Sector, req.Price)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewInstrumentItem(*in))
}

// SetPrice overwrites the current price. Admin only.
func (h *InstrumentHandler) SetPrice(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.SetPriceReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.uc.SetPrice(c.Request.Context(), id, req.Price); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Delete removes an instrument and everything referencing it. Admin only.
func (h *InstrumentHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.uc.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Refresh pulls the latest close for every instrument. Admin only.
func (h *InstrumentHandler) Refresh(c *gin.Context) {
	res, err := h.refresh.RefreshPrices(c.Request.Context())
	if err != nil {
		slog.Error("price refresh aborted", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "operation failed, try again"})
		return
	}
	failed := res.Failed
	if failed == nil {
		failed = []string{}
	}
	c.JSON(http.StatusOK, dto.RefreshResponse{Updated: res.Updated, Failed: failed})
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return uint(id), true
}

func writeError(c *gin.Context, err error) {
	switch {
	case apperr.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, usecase.ErrInstrumentNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, usecase.ErrDuplicateSymbol):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "operation failed, try again"})
	}
}
