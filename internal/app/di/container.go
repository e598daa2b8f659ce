package di

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	authadapters "stock_portfolio/internal/feature/auth/adapters"
	authentity "stock_portfolio/internal/feature/auth/domain/entity"
	authusecase "stock_portfolio/internal/feature/auth/usecase"
	catalogadapters "stock_portfolio/internal/feature/catalog/adapters"
	catalogusecase "stock_portfolio/internal/feature/catalog/usecase"
	ledgeradapters "stock_portfolio/internal/feature/ledger/adapters"
	ledgerusecase "stock_portfolio/internal/feature/ledger/usecase"
	portfolioadapters "stock_portfolio/internal/feature/portfolio/adapters"
	portfoliousecase "stock_portfolio/internal/feature/portfolio/usecase"
	pricehistoryusecase "stock_portfolio/internal/feature/pricehistory/usecase"
	watchlistadapters "stock_portfolio/internal/feature/watchlist/adapters"
	watchlistusecase "stock_portfolio/internal/feature/watchlist/usecase"
	"stock_portfolio/internal/platform/config"
	"stock_portfolio/internal/platform/db"
	"stock_portfolio/internal/platform/db/migrate"
	infraredis "stock_portfolio/internal/platform/redis"
)

// priceFetchTimeout bounds one history lookup including the HTTP call.
const priceFetchTimeout = 8 * time.Second

// CredentialStore registers and verifies accounts.
type CredentialStore interface {
	Register(ctx context.Context, username, password, email, displayName string, role authentity.Role) (uint, error)
	Verify(ctx context.Context, username, password string) (*authentity.Account, error)
}

// SessionService holds the principal of this process.
type SessionService interface {
	Login(ctx context.Context, username, password string) (*authentity.Account, error)
	Logout()
	Current() (*authentity.Account, bool)
}

// AccountStore reads accounts.
type AccountStore interface {
	FindByID(ctx context.Context, id uint) (*authentity.Account, error)
}

// Services is the set of usecases shared by the HTTP server and the CLI.
type Services struct {
	Accounts    AccountStore
	Credentials CredentialStore
	Sessions    SessionService
	Catalog     *catalogusecase.CatalogUsecase
	Refresh     *catalogusecase.RefreshUsecase
	Ledger      *ledgerusecase.Engine
	Portfolio   *portfoliousecase.Aggregator
	Watchlist   *watchlistusecase.WatchlistUsecase
	History     *pricehistoryusecase.Provider
	DBHealth    *db.Pinger
}

// NewServices builds every usecase on top of gdb. rdb may be nil.
func NewServices(cfg *config.Config, gdb *gorm.DB, rdb *redis.Client) *Services {
	accounts := authadapters.NewAccountGorm(gdb)
	credentials := authusecase.NewCredentialStore(accounts, cfg.BcryptCost)
	instruments := catalogadapters.NewInstrumentRepository(gdb)
	history := pricehistoryusecase.NewProvider(NewPriceSource(cfg.PriceSource, rdb), priceFetchTimeout)

	return &Services{
		Accounts:    accounts,
		Credentials: credentials,
		Sessions:    authusecase.NewSessionService(credentials, accounts),
		Catalog:     catalogusecase.NewCatalogUsecase(instruments, cfg.OpTimeout),
		Refresh:     catalogusecase.NewRefreshUsecase(history, instruments, NewRefreshLimiter(cfg.PriceSource), cfg.OpTimeout),
		Ledger:      ledgerusecase.NewEngine(ledgeradapters.NewLedgerStore(gdb), cfg.OpTimeout),
		Portfolio:   portfoliousecase.NewAggregator(portfolioadapters.NewHoldingReader(gdb), cfg.OpTimeout),
		Watchlist:   watchlistusecase.NewWatchlistUsecase(watchlistadapters.NewWatchlistRepository(gdb), cfg.OpTimeout),
		History:     history,
		DBHealth:    db.NewPinger(gdb),
	}
}

// App owns the connections behind Services.
type App struct {
	*Services
	DB    *gorm.DB
	Redis *redis.Client
}

// Open connects the database and Redis, migrates the schema and seeds
// default data when cfg.Seed is set.
func Open(ctx context.Context, cfg *config.Config) (*App, error) {
	gdb, err := db.Open(db.LoadConfigFromEnv())
	if err != nil {
		return nil, err
	}
	if err := migrate.Migrate(gdb); err != nil {
		_ = db.Close(gdb)
		return nil, err
	}

	rdb, err := infraredis.NewRedisClient(ctx, infraredis.LoadConfig())
	if err != nil {
		slog.Warn("Redis unavailable, running without price cache", "error", err)
		rdb = nil
	}

	app := &App{Services: NewServices(cfg, gdb, rdb), DB: gdb, Redis: rdb}
	if cfg.Seed {
		if err := migrate.Seed(ctx, gdb, app.Credentials); err != nil {
			_ = app.Close()
			return nil, fmt.Errorf("seed: %w", err)
		}
	}
	return app, nil
}

// Close releases Redis and the database pool.
func (a *App) Close() error {
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			slog.Error("failed to close Redis client", "error", err)
		}
	}
	return db.Close(a.DB)
}
