package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"stock_portfolio/internal/app/di"
	authentity "stock_portfolio/internal/feature/auth/domain/entity"
	"stock_portfolio/internal/shared/currency"
)

func newHoldingsCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "holdings",
		Short: "Show your open positions, most recently opened first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.withLogin(cmd, func(ctx context.Context, svc *di.Services, account *authentity.Account) error {
				views, err := svc.Portfolio.GetHoldings(ctx, account.ID)
				if err != nil {
					return err
				}
				return printHoldings(cmd.OutOrStdout(), views, false)
			})
		},
	}
}

func newStatsCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show portfolio totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.withLogin(cmd, func(ctx context.Context, svc *di.Services, account *authentity.Account) error {
				s, err := svc.Portfolio.GetStats(ctx, account.ID)
				if err != nil {
					return err
				}
				w := cmd.OutOrStdout()
				fmt.Fprintf(w, "Positions:         %d\n", s.Positions)
				fmt.Fprintf(w, "Total value:       %s\n", currency.Format(s.TotalValue))
				fmt.Fprintf(w, "Total investment:  %s\n", currency.Format(s.TotalInvestment))
				_, err = fmt.Fprintf(w, "Profit/loss:       %s (%s)\n", currency.FormatSigned(s.ProfitLoss), currency.FormatPercent(s.ProfitLossPercent))
				return err
			})
		},
	}
}

func newHistoryCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "history <symbol>",
		Short: "Show up to 30 daily closes, oldest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.withLogin(cmd, func(ctx context.Context, svc *di.Services, _ *authentity.Account) error {
				in, err := svc.Catalog.GetBySymbol(ctx, args[0])
				if err != nil {
					return err
				}
				tw := newTable(cmd.OutOrStdout())
				fmt.Fprintf(tw, "DATE\t%s\n", in.Symbol)
				for _, p := range svc.History.GetHistoricalPrices(ctx, in.Symbol) {
					fmt.Fprintf(tw, "%s\t%.2f\n", p.Date.Format("2006-01-02"), p.Price)
				}
				return tw.Flush()
			})
		},
	}
}
