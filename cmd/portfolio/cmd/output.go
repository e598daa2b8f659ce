package cmd

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/shopspring/decimal"

	portfolioentity "stock_portfolio/internal/feature/portfolio/domain/entity"
	"stock_portfolio/internal/shared/currency"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func parseQuantity(s string) (int64, error) {
	q, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("quantity must be a whole number, got %q", s)
	}
	return q, nil
}

func parsePrice(s string) (decimal.Decimal, error) {
	p, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("price must be a number, got %q", s)
	}
	return p, nil
}

func parseID(s string) (uint, error) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return uint(id), nil
}

func printHoldings(w io.Writer, views []portfolioentity.HoldingView, withOwner bool) error {
	if len(views) == 0 {
		_, err := fmt.Fprintln(w, "No holdings.")
		return err
	}
	tw := newTable(w)
	if withOwner {
		fmt.Fprint(tw, "OWNER\t")
	}
	fmt.Fprintln(tw, "SYMBOL\tCOMPANY\tQTY\tAVG COST\tPRICE\tVALUE\tP/L\tP/L %")
	for _, v := range views {
		if withOwner {
			fmt.Fprintf(tw, "%s\t", v.Username)
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\t%s\t%s\t%s\n",
			v.Symbol, v.CompanyName, v.Quantity,
			currency.Format(v.AverageCost), currency.Format(v.CurrentPrice),
			currency.Format(v.CurrentValue()), currency.FormatSigned(v.ProfitLoss()),
			currency.FormatPercent(v.ProfitLossPercent()))
	}
	return tw.Flush()
}
