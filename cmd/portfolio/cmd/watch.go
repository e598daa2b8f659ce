package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"stock_portfolio/internal/app/di"
	authentity "stock_portfolio/internal/feature/auth/domain/entity"
	"stock_portfolio/internal/shared/currency"
)

func newWatchCmd(o *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Manage your watchlist",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "add <symbol>",
			Short: "Add a stock to your watchlist",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return o.withLogin(cmd, func(ctx context.Context, svc *di.Services, account *authentity.Account) error {
					in, err := svc.Catalog.GetBySymbol(ctx, args[0])
					if err != nil {
						return err
					}
					e, err := svc.Watchlist.Add(ctx, account.ID, in.ID)
					if err != nil {
						return err
					}
					_, err = fmt.Fprintf(cmd.OutOrStdout(), "Watching %s (entry %d)\n", in.Symbol, e.ID)
					return err
				})
			},
		},
		&cobra.Command{
			Use:   "remove <entry-id>",
			Short: "Remove an entry from your watchlist",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseID(args[0])
				if err != nil {
					return err
				}
				return o.withLogin(cmd, func(ctx context.Context, svc *di.Services, account *authentity.Account) error {
					removed, err := svc.Watchlist.RemoveForAccount(ctx, account.ID, id)
					if err != nil {
						return err
					}
					msg := "Removed entry %d\n"
					if !removed {
						msg = "No watchlist entry %d\n"
					}
					_, err = fmt.Fprintf(cmd.OutOrStdout(), msg, id)
					return err
				})
			},
		},
		&cobra.Command{
			Use:   "list",
			Short: "List your watchlist, newest first",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return o.withLogin(cmd, func(ctx context.Context, svc *di.Services, account *authentity.Account) error {
					list, err := svc.Watchlist.List(ctx, account.ID)
					if err != nil {
						return err
					}
					w := cmd.OutOrStdout()
					if len(list) == 0 {
						_, err := fmt.Fprintln(w, "Watchlist is empty.")
						return err
					}
					tw := newTable(w)
					fmt.Fprintln(tw, "ENTRY\tSYMBOL\tCOMPANY\tPRICE\tADDED")
					for _, e := range list {
						fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", e.ID, e.Symbol, e.CompanyName,
							currency.Format(e.CurrentPrice), e.AddedAt.Local().Format(time.DateTime))
					}
					return tw.Flush()
				})
			},
		},
	)
	return cmd
}
