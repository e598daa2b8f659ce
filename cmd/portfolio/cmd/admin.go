package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"stock_portfolio/internal/app/di"
	authentity "stock_portfolio/internal/feature/auth/domain/entity"
	"stock_portfolio/internal/shared/currency"
)

func newAdminCmd(o *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Catalog management and cross-account reports (admins only)",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "add-stock <symbol> <company> <sector> <price>",
			Short: "List a new stock",
			Args:  cobra.ExactArgs(4),
			RunE: func(cmd *cobra.Command, args []string) error {
				price, err := parsePrice(args[3])
				if err != nil {
					return err
				}
				return o.withCapability(cmd, authentity.CanManageCatalog, func(ctx context.Context, svc *di.Services, _ *authentity.Account) error {
					in, err := svc.Catalog.Add(ctx, args[0], args[1], args[2], price)
					if err != nil {
						return err
					}
					_, err = fmt.Fprintf(cmd.OutOrStdout(), "Added %s (id %d) at %s\n", in.Symbol, in.ID, currency.Format(in.CurrentPrice.Decimal))
					return err
				})
			},
		},
		&cobra.Command{
			Use:   "set-price <symbol> <price>",
			Short: "Set the current price of a stock",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				price, err := parsePrice(args[1])
				if err != nil {
					return err
				}
				return o.withCapability(cmd, authentity.CanManageCatalog, func(ctx context.Context, svc *di.Services, _ *authentity.Account) error {
					in, err := svc.Catalog.GetBySymbol(ctx, args[0])
					if err != nil {
						return err
					}
					if err := svc.Catalog.SetPrice(ctx, in.ID, price); err != nil {
						return err
					}
					_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s now %s\n", in.Symbol, currency.Format(price))
					return err
				})
			},
		},
		&cobra.Command{
			Use:   "delete-stock <symbol>",
			Short: "Delete a stock with its holdings, transactions and watchlist entries",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return o.withCapability(cmd, authentity.CanManageCatalog, func(ctx context.Context, svc *di.Services, _ *authentity.Account) error {
					in, err := svc.Catalog.GetBySymbol(ctx, args[0])
					if err != nil {
						return err
					}
					if err := svc.Catalog.Delete(ctx, in.ID); err != nil {
						return err
					}
					_, err = fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", in.Symbol)
					return err
				})
			},
		},
		&cobra.Command{
			Use:   "refresh-prices",
			Short: "Update current prices from the price feed",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return o.withCapability(cmd, authentity.CanManageCatalog, func(ctx context.Context, svc *di.Services, _ *authentity.Account) error {
					res, err := svc.Refresh.RefreshPrices(ctx)
					if err != nil {
						return err
					}
					w := cmd.OutOrStdout()
					fmt.Fprintf(w, "Updated %d stocks\n", res.Updated)
					if len(res.Failed) > 0 {
						fmt.Fprintf(w, "Failed: %s\n", strings.Join(res.Failed, ", "))
					}
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "holdings",
			Short: "Show the holdings of every account",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return o.withCapability(cmd, authentity.CanViewAllPortfolios, func(ctx context.Context, svc *di.Services, _ *authentity.Account) error {
					views, err := svc.Portfolio.GetAllHoldings(ctx)
					if err != nil {
						return err
					}
					return printHoldings(cmd.OutOrStdout(), views, true)
				})
			},
		},
	)
	return cmd
}
