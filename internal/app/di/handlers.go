package di

import (
	authhandler "stock_portfolio/internal/feature/auth/transport/handler"
	cataloghandler "stock_portfolio/internal/feature/catalog/transport/handler"
	ledgerhandler "stock_portfolio/internal/feature/ledger/transport/handler"
	portfoliohandler "stock_portfolio/internal/feature/portfolio/transport/handler"
	pricehistoryhandler "stock_portfolio/internal/feature/pricehistory/transport/handler"
	watchlisthandler "stock_portfolio/internal/feature/watchlist/transport/handler"
	"stock_portfolio/internal/platform/config"
	platformhandler "stock_portfolio/internal/platform/http/handler"
	jwtmw "stock_portfolio/internal/platform/jwt"
)

// Handlers groups the HTTP handlers registered by the router.
type Handlers struct {
	Auth      *authhandler.AuthHandler
	Catalog   *cataloghandler.InstrumentHandler
	Orders    *ledgerhandler.OrderHandler
	Portfolio *portfoliohandler.PortfolioHandler
	Watchlist *watchlisthandler.WatchlistHandler
	History   *pricehistoryhandler.HistoryHandler
	Health    *platformhandler.HealthHandler
}

// NewHandlers builds the handlers on top of svc.
func NewHandlers(cfg *config.Config, svc *Services) *Handlers {
	return &Handlers{
		Auth:      authhandler.NewAuthHandler(svc.Credentials, svc.Sessions, svc.Accounts, jwtmw.NewGenerator(cfg.JWTSecret, cfg.JWTExpiration)),
		Catalog:   cataloghandler.NewInstrumentHandler(svc.Catalog, svc.Refresh),
		Orders:    ledgerhandler.NewOrderHandler(svc.Ledger, svc.Catalog),
		Portfolio: portfoliohandler.NewPortfolioHandler(svc.Portfolio),
		Watchlist: watchlisthandler.NewWatchlistHandler(svc.Watchlist, svc.Catalog),
		History:   pricehistoryhandler.NewHistoryHandler(svc.History),
		Health:    platformhandler.NewHealthHandler(svc.DBHealth),
	}
}
