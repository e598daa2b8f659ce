// Package handler serves price history over HTTP.
package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"stock_portfolio/internal/feature/pricehistory/domain/entity"
	"stock_portfolio/internal/feature/pricehistory/transport/http/dto"
)

// HistoryProvider returns daily closes. It never fails.
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type HistoryProvider interface {
	GetHistoricalPrices(ctx context.Context, symbol string) []entity.PricePoint
}

// HistoryHandler handles price history requests.
type HistoryHandler struct {
	provider HistoryProvider
}

// NewHistoryHandler creates a new HistoryHandler.
func NewHistoryHandler(provider HistoryProvider) *HistoryHandler {
	return &HistoryHandler{provider: provider}
}

// History returns up to 30 daily closes of :symbol, oldest first.
func (h *HistoryHandler) History(c *gin.Context) {
	symbol := strings.ToUpper(strings.TrimSpace(c.Param("symbol")))
	if symbol == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "symbol is required"})
		return
	}
	pts := h.provider.GetHistoricalPrices(c.Request.Context(), symbol)
	c.JSON(http.StatusOK, dto.NewHistoryResponse(symbol, pts))
}
