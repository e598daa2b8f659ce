// Package cmd implements the portfolio command line client.
package cmd

import (
	"context"
	"errors"
	"os"

	"github.com/spf13/cobra"

	"stock_portfolio/internal/app/di"
	authentity "stock_portfolio/internal/feature/auth/domain/entity"
	authusecase "stock_portfolio/internal/feature/auth/usecase"
	"stock_portfolio/internal/platform/config"
	"stock_portfolio/internal/platform/logger"
	"stock_portfolio/internal/shared/apperr"
)

// Environment variables consulted when --user or --password is omitted.
const (
	EnvUser     = "PORTFOLIO_USER"
	EnvPassword = "PORTFOLIO_PASSWORD"
)

var (
	errMissingCredentials = errors.New("credentials required: pass --user and --password or set " + EnvUser + " and " + EnvPassword)
	errLoginFailed        = errors.New("invalid username or password")
	errForbidden          = errors.New("permission denied")
)

// Opener builds the services and returns a function releasing them.
type Opener func(ctx context.Context) (*di.Services, func() error, error)

// DefaultOpener loads the configuration, migrates and seeds the database.
func DefaultOpener(ctx context.Context) (*di.Services, func() error, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	logger.Setup(os.Stderr, cfg.LogLevel, cfg.LogFormat)

	app, err := di.Open(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	return app.Services, app.Close, nil
}

type rootOptions struct {
	open     Opener
	user     string
	password string
}

// NewRootCmd builds the command tree on top of open.
func NewRootCmd(open Opener) *cobra.Command {
	o := &rootOptions{open: open}

	root := &cobra.Command{
		Use:   "portfolio",
		Short: "Track a simulated stock portfolio",
		Long: `portfolio is the local client of the stock portfolio tracker.

Every command except signup runs as the account given by --user/--password
or PORTFOLIO_USER/PORTFOLIO_PASSWORD.

Examples:
  portfolio stocks list
  portfolio buy AAPL 10
  portfolio sell AAPL 5 --price 180
  portfolio holdings`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&o.user, "user", "u", "", "username (default $"+EnvUser+")")
	root.PersistentFlags().StringVarP(&o.password, "password", "p", "", "password (default $"+EnvPassword+")")

	root.AddCommand(
		newSignupCmd(o),
		newStocksCmd(o),
		newBuyCmd(o),
		newSellCmd(o),
		newHoldingsCmd(o),
		newStatsCmd(o),
		newTransactionsCmd(o),
		newHistoryCmd(o),
		newWatchCmd(o),
		newAdminCmd(o),
	)
	return root
}

// Execute runs the CLI against the configured database.
func Execute() error {
	return NewRootCmd(DefaultOpener).Execute()
}

// Message renders err for the terminal. Storage failures hide their cause.
func Message(err error) string {
	if errors.Is(err, apperr.ErrOperationFailed) {
		return apperr.ErrOperationFailed.Error()
	}
	return err.Error()
}

func (o *rootOptions) credentials() (string, string) {
	user, password := o.user, o.password
	if user == "" {
		user = os.Getenv(EnvUser)
	}
	if password == "" {
		password = os.Getenv(EnvPassword)
	}
	return user, password
}

func (o *rootOptions) withServices(cmd *cobra.Command, fn func(ctx context.Context, svc *di.Services) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	svc, closeFn, err := o.open(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = closeFn() }()
	return fn(ctx, svc)
}

// withLogin runs fn as the logged-in account and logs out afterwards.
func (o *rootOptions) withLogin(cmd *cobra.Command, fn func(ctx context.Context, svc *di.Services, account *authentity.Account) error) error {
	user, password := o.credentials()
	if user == "" || password == "" {
		return errMissingCredentials
	}
	return o.withServices(cmd, func(ctx context.Context, svc *di.Services) error {
		account, err := svc.Sessions.Login(ctx, user, password)
		if errors.Is(err, authusecase.ErrInvalidCredentials) {
			return errLoginFailed
		}
		if err != nil {
			return apperr.OperationFailed(err)
		}
		defer svc.Sessions.Logout()
		return fn(ctx, svc, account)
	})
}

// withCapability is withLogin restricted to accounts for which allowed holds.
func (o *rootOptions) withCapability(cmd *cobra.Command, allowed func(authentity.Role) bool, fn func(ctx context.Context, svc *di.Services, account *authentity.Account) error) error {
	return o.withLogin(cmd, func(ctx context.Context, svc *di.Services, account *authentity.Account) error {
		if !allowed(account.Role) {
			return errForbidden
		}
		return fn(ctx, svc, account)
	})
}
