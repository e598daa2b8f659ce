// Package handler serves the watchlist over HTTP.
package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	catalogentity "stock_portfolio/internal/feature/catalog/domain/entity"
	catalogusecase "stock_portfolio/internal/feature/catalog/usecase"
	"stock_portfolio/internal/feature/watchlist/domain/entity"
	"stock_portfolio/internal/feature/watchlist/transport/http/dto"
	"stock_portfolio/internal/feature/watchlist/usecase"
	jwtmw "stock_portfolio/internal/platform/jwt"
	"stock_portfolio/internal/shared/apperr"
)

// Watchlist is the watchlist service as seen by HTTP.
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type Watchlist interface {
	Add(ctx context.Context, accountID, instrumentID uint) (*entity.WatchlistEntry, error)
	RemoveForAccount(ctx context.Context, accountID, entryID uint) (bool, error)
	List(ctx context.Context, accountID uint) ([]entity.WatchedInstrument, error)
}

// InstrumentLookup resolves symbols.
type InstrumentLookup interface {
	GetBySymbol(ctx context.Context, symbol string) (*catalogentity.Instrument, error)
}

// WatchlistHandler handles watchlist requests.
type WatchlistHandler struct {
	uc          Watchlist
	instruments InstrumentLookup
}

// NewWatchlistHandler creates a new WatchlistHandler.
func NewWatchlistHandler(uc Watchlist, instruments InstrumentLookup) *WatchlistHandler {
	return &WatchlistHandler{uc: uc, instruments: instruments}
}

// List returns the account's watchlist, newest first.
func (h *WatchlistHandler) List(c *gin.Context) {
	accountID, ok := jwtmw.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	list, err := h.uc.List(c.Request.Context(), accountID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewWatchList(list))
}

// Add watches the instrument named by symbol.
func (h *WatchlistHandler) Add(c *gin.Context) {
	accountID, ok := jwtmw.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	var req dto.AddWatchReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	in, err := h.instruments.GetBySymbol(c.Request.Context(), req.Symbol)
	if err != nil {
		writeError(c, err)
		return
	}
	e, err := h.uc.Add(c.Request.Context(), accountID, in.ID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.WatchItem{
		ID:           e.ID,
		InstrumentID: in.ID,
		Symbol:       in.Symbol,
		CompanyName:  in.CompanyName,
		Sector:       in.Sector,
		CurrentPrice: in.CurrentPrice.StringFixed(2),
		AddedAt:      e.AddedAt,
	})
}

// Remove deletes one of the account's entries. Unknown ids are a no-op.
func (h *WatchlistHandler) Remove(c *gin.Context) {
	accountID, ok := jwtmw.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	removed, err := h.uc.RemoveForAccount(c.Request.Context(), accountID, uint(id))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"removed": removed})
}

func writeError(c *gin.Context, err error) {
	switch {
	case apperr.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, usecase.ErrInstrumentNotFound), errors.Is(err, catalogusecase.ErrInstrumentNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, usecase.ErrAlreadyWatched):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "operation failed, try again"})
	}
}
