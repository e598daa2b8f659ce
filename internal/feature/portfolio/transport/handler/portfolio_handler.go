// Package handler serves portfolio views over HTTP.
package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"stock_portfolio/internal/feature/portfolio/domain/entity"
	"stock_portfolio/internal/feature/portfolio/transport/http/dto"
	jwtmw "stock_portfolio/internal/platform/jwt"
)

// PortfolioUsecase reads holdings and statistics.
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type PortfolioUsecase interface {
	GetHoldings(ctx context.Context, accountID uint) ([]entity.HoldingView, error)
	GetStats(ctx context.Context, accountID uint) (entity.Stats, error)
	GetAllHoldings(ctx context.Context) ([]entity.HoldingView, error)
}

// PortfolioHandler handles portfolio requests.
type PortfolioHandler struct {
	uc PortfolioUsecase
}

// NewPortfolioHandler creates a new PortfolioHandler.
func NewPortfolioHandler(uc PortfolioUsecase) *PortfolioHandler {
	return &PortfolioHandler{uc: uc}
}

// Holdings returns the authenticated account's holdings.
func (h *PortfolioHandler) Holdings(c *gin.Context) {
	accountID, ok := jwtmw.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	views, err := h.uc.GetHoldings(c.Request.Context(), accountID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "operation failed, try again"})
		return
	}
	c.JSON(http.StatusOK, dto.NewHoldingList(views, false))
}

// Stats returns the authenticated account's totals.
func (h *PortfolioHandler) Stats(c *gin.Context) {
	accountID, ok := jwtmw.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	s, err := h.uc.GetStats(c.Request.Context(), accountID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "operation failed, try again"})
		return
	}
	c.JSON(http.StatusOK, dto.NewStatsResponse(s))
}

// AllHoldings returns every account's holdings. Admin only.
func (h *PortfolioHandler) AllHoldings(c *gin.Context) {
	views, err := h.uc.GetAllHoldings(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "operation failed, try again"})
		return
	}
	c.JSON(http.StatusOK, dto.NewHoldingList(views, true))
}
