// Package migrate creates the schema and seeds the default data.
package migrate

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	authentity "stock_portfolio/internal/feature/auth/domain/entity"
	catalogentity "stock_portfolio/internal/feature/catalog/domain/entity"
	ledgeradapters "stock_portfolio/internal/feature/ledger/adapters"
	watchlistadapters "stock_portfolio/internal/feature/watchlist/adapters"
	"stock_portfolio/internal/shared/currency"
)

// Models lists every persisted model in dependency order.
func Models() []any {
	return []any{
		&authentity.Account{},
		&catalogentity.Instrument{},
		&ledgeradapters.HoldingModel{},
		&ledgeradapters.LedgerEntryModel{},
		&watchlistadapters.WatchlistEntryModel{},
	}
}

// Migrate creates or updates all tables, indexes and foreign keys.
// It is safe to run on every start.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

// Registrar creates accounts with hashed passwords.
type Registrar interface {
	Register(ctx context.Context, username, password, email, displayName string, role authentity.Role) (uint, error)
}

type seedAccount struct {
	username, password, email, displayName string
	role                                   authentity.Role
}

var defaultAccounts = []seedAccount{
	{"admin", "admin123", "admin@stockvisualiser.com", "System Administrator", authentity.RoleAdmin},
	{"demo", "demo123", "demo@stockvisualiser.com", "Demo Trader", authentity.RoleTrader},
}

var defaultInstruments = []struct {
	symbol, company, sector, price string
}{
	{"AAPL", "Apple Inc.", "Technology", "175.50"},
	{"GOOGL", "Alphabet Inc.", "Technology", "140.25"},
	{"MSFT", "Microsoft Corporation", "Technology", "380.75"},
	{"AMZN", "Amazon.com Inc.", "Consumer Cyclical", "145.30"},
	{"TSLA", "Tesla Inc.", "Automotive", "242.80"},
	{"META", "Meta Platforms Inc.", "Technology", "330.45"},
	{"NVDA", "NVIDIA Corporation", "Technology", "495.20"},
	{"JPM", "JPMorgan Chase & Co.", "Financial", "155.60"},
	{"V", "Visa Inc.", "Financial", "245.90"},
	{"WMT", "Walmart Inc.", "Consumer Defensive", "165.30"},
}

// Seed inserts the default accounts when no account exists and the
// default instruments when the catalog is empty.
func Seed(ctx context.Context, db *gorm.DB, registrar Registrar) error {
	var n int64
	if err := db.WithContext(ctx).Model(&authentity.Account{}).Count(&n).Error; err != nil {
		return fmt.Errorf("count accounts: %w", err)
	}
	if n == 0 {
		for _, a := range defaultAccounts {
			if _, err := registrar.Register(ctx, a.username, a.password, a.email, a.displayName, a.role); err != nil {
				return fmt.Errorf("seed account %s: %w", a.username, err)
			}
		}
		slog.Info("seeded default accounts", "count", len(defaultAccounts))
	}

	if err := db.WithContext(ctx).Model(&catalogentity.Instrument{}).Count(&n).Error; err != nil {
		return fmt.Errorf("count instruments: %w", err)
	}
	if n == 0 {
		now := time.Now().UTC()
		rows := make([]catalogentity.Instrument, 0, len(defaultInstruments))
		for _, in := range defaultInstruments {
			rows = append(rows, catalogentity.Instrument{
				Symbol:        in.symbol,
				CompanyName:   in.company,
				Sector:        in.sector,
				CurrentPrice:  currency.NewAmount(decimal.RequireFromString(in.price)),
				LastUpdatedAt: now,
			})
		}
		if err := db.WithContext(ctx).Create(&rows).Error; err != nil {
			return fmt.Errorf("seed instruments: %w", err)
		}
		slog.Info("seeded default instruments", "count", len(rows))
	}
	return nil
}
