package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"stock_portfolio/internal/app/di"
	authentity "stock_portfolio/internal/feature/auth/domain/entity"
	"stock_portfolio/internal/shared/currency"
)

const defaultTransactionLimit = 50

type order struct {
	instrumentID uint
	symbol       string
	quantity     int64
	price        decimal.Decimal
}

// resolveOrder reads "<symbol> <quantity>". The price defaults to the
// current catalog price.
func resolveOrder(ctx context.Context, svc *di.Services, args []string, price string) (order, error) {
	in, err := svc.Catalog.GetBySymbol(ctx, args[0])
	if err != nil {
		return order{}, err
	}
	qty, err := parseQuantity(args[1])
	if err != nil {
		return order{}, err
	}
	p := in.CurrentPrice.Decimal
	if price != "" {
		if p, err = parsePrice(price); err != nil {
			return order{}, err
		}
	}
	return order{instrumentID: in.ID, symbol: in.Symbol, quantity: qty, price: p}, nil
}

func newBuyCmd(o *rootOptions) *cobra.Command {
	var price string
	cmd := &cobra.Command{
		Use:   "buy <symbol> <quantity>",
		Short: "Buy shares at the current price or --price",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.withLogin(cmd, func(ctx context.Context, svc *di.Services, account *authentity.Account) error {
				ord, err := resolveOrder(ctx, svc, args, price)
				if err != nil {
					return err
				}
				entry, err := svc.Ledger.Buy(ctx, account.ID, ord.instrumentID, ord.quantity, ord.price)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "Bought %d %s @ %s, total %s (ref %s)\n",
					entry.Quantity, ord.symbol, currency.Format(entry.PricePerUnit), currency.Format(entry.TotalAmount), entry.OrderRef)
				return err
			})
		},
	}
	cmd.Flags().StringVar(&price, "price", "", "price per share (default current price)")
	return cmd
}

func newSellCmd(o *rootOptions) *cobra.Command {
	var price string
	cmd := &cobra.Command{
		Use:   "sell <symbol> <quantity>",
		Short: "Sell shares at the current price or --price",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.withLogin(cmd, func(ctx context.Context, svc *di.Services, account *authentity.Account) error {
				ord, err := resolveOrder(ctx, svc, args, price)
				if err != nil {
					return err
				}
				res, err := svc.Ledger.Sell(ctx, account.ID, ord.instrumentID, ord.quantity, ord.price)
				if err != nil {
					return err
				}
				w := cmd.OutOrStdout()
				fmt.Fprintf(w, "Sold %d %s @ %s, total %s, realized %s (ref %s)\n",
					res.Entry.Quantity, ord.symbol, currency.Format(res.Entry.PricePerUnit), currency.Format(res.Entry.TotalAmount),
					currency.FormatSigned(res.RealizedPL), res.Entry.OrderRef)
				if res.Remaining == nil {
					_, err = fmt.Fprintf(w, "Position in %s closed\n", ord.symbol)
				} else {
					_, err = fmt.Fprintf(w, "%d shares of %s remain\n", res.Remaining.Quantity, ord.symbol)
				}
				return err
			})
		},
	}
	cmd.Flags().StringVar(&price, "price", "", "price per share (default current price)")
	return cmd
}

func newTransactionsCmd(o *rootOptions) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "transactions",
		Short: "List your settled orders, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.withLogin(cmd, func(ctx context.Context, svc *di.Services, account *authentity.Account) error {
				entries, err := svc.Ledger.ListEntries(ctx, account.ID, limit)
				if err != nil {
					return err
				}
				w := cmd.OutOrStdout()
				if len(entries) == 0 {
					_, err := fmt.Fprintln(w, "No transactions.")
					return err
				}
				tw := newTable(w)
				fmt.Fprintln(tw, "EXECUTED\tSIDE\tSYMBOL\tQTY\tPRICE\tTOTAL\tREF")
				for _, e := range entries {
					fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\t%s\t%s\n",
						e.ExecutedAt.Local().Format(time.DateTime), e.Side, e.Symbol, e.Quantity,
						currency.Format(e.PricePerUnit), currency.Format(e.TotalAmount), e.OrderRef)
				}
				return tw.Flush()
			})
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", defaultTransactionLimit, "maximum number of entries")
	return cmd
}
