package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"stock_portfolio/internal/app/di"
	authentity "stock_portfolio/internal/feature/auth/domain/entity"
	catalogentity "stock_portfolio/internal/feature/catalog/domain/entity"
	"stock_portfolio/internal/shared/currency"
)

func newStocksCmd(o *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stocks",
		Short: "Browse the stock catalog",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List every stock ordered by symbol",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return o.withLogin(cmd, func(ctx context.Context, svc *di.Services, _ *authentity.Account) error {
					list, err := svc.Catalog.List(ctx)
					if err != nil {
						return err
					}
					return printInstruments(cmd.OutOrStdout(), list)
				})
			},
		},
		&cobra.Command{
			Use:   "search <term>",
			Short: "Search stocks by symbol or company name",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return o.withLogin(cmd, func(ctx context.Context, svc *di.Services, _ *authentity.Account) error {
					list, err := svc.Catalog.Search(ctx, args[0])
					if err != nil {
						return err
					}
					return printInstruments(cmd.OutOrStdout(), list)
				})
			},
		},
		&cobra.Command{
			Use:   "show <symbol>",
			Short: "Show one stock and whether it is on your watchlist",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return o.withLogin(cmd, func(ctx context.Context, svc *di.Services, account *authentity.Account) error {
					in, err := svc.Catalog.GetBySymbol(ctx, args[0])
					if err != nil {
						return err
					}
					watched, err := svc.Watchlist.IsWatched(ctx, account.ID, in.ID)
					if err != nil {
						return err
					}
					w := cmd.OutOrStdout()
					fmt.Fprintf(w, "%s  %s\n", in.Symbol, in.CompanyName)
					fmt.Fprintf(w, "Sector:   %s\n", in.Sector)
					fmt.Fprintf(w, "Price:    %s\n", currency.Format(in.CurrentPrice.Decimal))
					fmt.Fprintf(w, "Updated:  %s\n", in.LastUpdatedAt.Local().Format(time.DateTime))
					_, err = fmt.Fprintf(w, "Watched:  %t\n", watched)
					return err
				})
			},
		},
	)
	return cmd
}

func printInstruments(w io.Writer, list []catalogentity.Instrument) error {
	if len(list) == 0 {
		_, err := fmt.Fprintln(w, "No stocks found.")
		return err
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "SYMBOL\tCOMPANY\tSECTOR\tPRICE")
	for _, in := range list {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", in.Symbol, in.CompanyName, in.Sector, currency.Format(in.CurrentPrice.Decimal))
	}
	return tw.Flush()
}
