// Package router maps the HTTP API onto the feature handlers.
package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"stock_portfolio/internal/app/di"
	authentity "stock_portfolio/internal/feature/auth/domain/entity"
	jwtmw "stock_portfolio/internal/platform/jwt"
)

func canManageCatalog(role string) bool {
	return authentity.CanManageCatalog(authentity.Role(role))
}

func canViewAllPortfolios(role string) bool {
	return authentity.CanViewAllPortfolios(authentity.Role(role))
}

// NewRouter builds the gin engine. allowedOrigins feeds the CORS policy of
// the local front end.
func NewRouter(h *di.Handlers, allowedOrigins []string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	// public
	r.GET("/healthz", h.Health.Health)
	r.HEAD("/healthz", h.Health.Health)
	r.POST("/signup", h.Auth.Signup)
	r.POST("/login", h.Auth.Login)

	auth := r.Group("/")
	auth.Use(jwtmw.AuthRequired())
	{
		auth.GET("/me", h.Auth.Me)
		auth.POST("/logout", h.Auth.Logout)

		auth.GET("/instruments", h.Catalog.List)
		auth.GET("/instruments/search", h.Catalog.Search)
		auth.GET("/instruments/:symbol", h.Catalog.Show)
		auth.GET("/instruments/:symbol/history", h.History.History)

		auth.POST("/orders/buy", h.Orders.Buy)
		auth.POST("/orders/sell", h.Orders.Sell)
		auth.GET("/transactions", h.Orders.Transactions)

		auth.GET("/portfolio/holdings", h.Portfolio.Holdings)
		auth.GET("/portfolio/stats", h.Portfolio.Stats)

		auth.GET("/watchlist", h.Watchlist.List)
		auth.POST("/watchlist", h.Watchlist.Add)
		auth.DELETE("/watchlist/:id", h.Watchlist.Remove)
	}

	admin := auth.Group("/admin")
	{
		catalog := admin.Group("/instruments", jwtmw.RequireCapability(canManageCatalog))
		catalog.POST("", h.Catalog.Add)
		catalog.PUT("/:id/price", h.Catalog.SetPrice)
		catalog.DELETE("/:id", h.Catalog.Delete)
		catalog.POST("/refresh", h.Catalog.Refresh)

		admin.GET("/holdings", jwtmw.RequireCapability(canViewAllPortfolios), h.Portfolio.AllHoldings)
	}

	return r
}
