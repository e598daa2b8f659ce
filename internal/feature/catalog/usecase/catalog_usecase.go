package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"stock_portfolio/internal/feature/catalog/domain/entity"
	"stock_portfolio/internal/shared/apperr"
	"stock_portfolio/internal/shared/currency"
)

const maxSymbolLength = 20

// InstrumentRepository abstracts the persistence layer for instruments.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type InstrumentRepository interface {
	// List returns every instrument ordered by symbol.
	List(ctx context.Context) ([]entity.Instrument, error)
	// FindByID returns ErrInstrumentNotFound when absent.
	FindByID(ctx context.Context, id uint) (*entity.Instrument, error)
	// FindBySymbol matches the exact, already-normalised symbol.
	FindBySymbol(ctx context.Context, symbol string) (*entity.Instrument, error)
	// Search matches term against symbol or company name, case-insensitively.
	Search(ctx context.Context, term string) ([]entity.Instrument, error)
	// Create returns ErrDuplicateSymbol when the symbol is taken.
	Create(ctx context.Context, in *entity.Instrument) error
	// UpdatePrice returns ErrInstrumentNotFound when absent.
	UpdatePrice(ctx context.Context, id uint, price decimal.Decimal, at time.Time) error
	// Delete removes the instrument and, through cascades, every holding,
	// ledger entry and watchlist entry referencing it.
	Delete(ctx context.Context, id uint) error
}

// CatalogUsecase provides read access to the catalog and the admin mutations.
// Capability checks happen at the transport layer.
type CatalogUsecase struct {
	repo    InstrumentRepository
	timeout time.Duration
	now     func() time.Time
}

// NewCatalogUsecase creates a new CatalogUsecase. Every repository call is
// bounded by timeout.
func NewCatalogUsecase(r InstrumentRepository, timeout time.Duration) *CatalogUsecase {
	return &CatalogUsecase{repo: r, timeout: timeout, now: time.Now}
}

// List returns all instruments ordered by symbol.
func (u *CatalogUsecase) List(ctx context.Context) ([]entity.Instrument, error) {
	ctx, cancel := apperr.WithTimeout(ctx, u.timeout)
	defer cancel()

	list, err := u.repo.List(ctx)
	if err != nil {
		return nil, u.fail("list instruments", err)
	}
	return list, nil
}

// Get returns the instrument with the given id.
func (u *CatalogUsecase) Get(ctx context.Context, id uint) (*entity.Instrument, error) {
	ctx, cancel := apperr.WithTimeout(ctx, u.timeout)
	defer cancel()

	in, err := u.repo.FindByID(ctx, id)
	if err != nil {
		return nil, u.fail("get instrument", err)
	}
	return in, nil
}

// GetBySymbol looks an instrument up by ticker, ignoring case.
func (u *CatalogUsecase) GetBySymbol(ctx context.Context, symbol string) (*entity.Instrument, error) {
	symbol = entity.NormalizeSymbol(symbol)
	if symbol == "" {
		return nil, apperr.NewValidation("symbol", "must not be empty")
	}

	ctx, cancel := apperr.WithTimeout(ctx, u.timeout)
	defer cancel()

	in, err := u.repo.FindBySymbol(ctx, symbol)
	if err != nil {
		return nil, u.fail("get instrument by symbol", err)
	}
	return in, nil
}

// Search returns instruments whose symbol or company name contains term.
// An empty term lists the whole catalog.
func (u *CatalogUsecase) Search(ctx context.Context, term string) ([]entity.Instrument, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return u.List(ctx)
	}

	ctx, cancel := apperr.WithTimeout(ctx, u.timeout)
	defer cancel()

	list, err := u.repo.Search(ctx, term)
	if err != nil {
		return nil, u.fail("search instruments", err)
	}
	return list, nil
}

// Add lists a new instrument.
func (u *CatalogUsecase) Add(ctx context.Context, symbol, companyName, sector string, price decimal.Decimal) (*entity.Instrument, error) {
	symbol = entity.NormalizeSymbol(symbol)
	companyName = strings.TrimSpace(companyName)
	switch {
	case symbol == "":
		return nil, apperr.NewValidation("symbol", "must not be empty")
	case len(symbol) > maxSymbolLength:
		return nil, apperr.NewValidation("symbol", "must be at most 20 characters")
	case companyName == "":
		return nil, apperr.NewValidation("company_name", "must not be empty")
	case !price.IsPositive():
		return nil, apperr.NewValidation("price", "must be greater than zero")
	}

	in := &entity.Instrument{
		Symbol:        symbol,
		CompanyName:   companyName,
		Sector:        strings.TrimSpace(sector),
		CurrentPrice:  currency.NewAmount(price),
		LastUpdatedAt: u.now().UTC(),
	}

	ctx, cancel := apperr.WithTimeout(ctx, u.timeout)
	defer cancel()

	if err := u.repo.Create(ctx, in); err != nil {
		return nil, u.fail("add instrument", err)
	}
	slog.Info("instrument added", "instrument_id", in.ID, "symbol", in.Symbol, "price", in.CurrentPrice.String())
	return in, nil
}

// SetPrice overwrites the current price and stamps LastUpdatedAt.
func (u *CatalogUsecase) SetPrice(ctx context.Context, id uint, price decimal.Decimal) error {
	if !price.IsPositive() {
		return apperr.NewValidation("price", "must be greater than zero")
	}

	ctx, cancel := apperr.WithTimeout(ctx, u.timeout)
	defer cancel()

	if err := u.repo.UpdatePrice(ctx, id, price, u.now().UTC()); err != nil {
		return u.fail("set price", err)
	}
	slog.Info("instrument repriced", "instrument_id", id, "price", price.String())
	return nil
}

// Delete removes an instrument together with everything that references it.
func (u *CatalogUsecase) Delete(ctx context.Context, id uint) error {
	ctx, cancel := apperr.WithTimeout(ctx, u.timeout)
	defer cancel()

	if err := u.repo.Delete(ctx, id); err != nil {
		return u.fail("delete instrument", err)
	}
	slog.Info("instrument deleted", "instrument_id", id)
	return nil
}

// fail passes expected outcomes through and wraps everything else.
func (u *CatalogUsecase) fail(op string, err error) error {
	if errors.Is(err, ErrInstrumentNotFound) || errors.Is(err, ErrDuplicateSymbol) {
		return err
	}
	slog.Error("catalog operation failed", "op", op, "error", err)
	return apperr.OperationFailed(err)
}
