package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"stock_portfolio/internal/app/di"
	authentity "stock_portfolio/internal/feature/auth/domain/entity"
)

func newSignupCmd(o *rootOptions) *cobra.Command {
	var email, displayName string
	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Register a trader account",
		Long: `Register a trader account with the username and password given by
--user/--password (or PORTFOLIO_USER/PORTFOLIO_PASSWORD).

Example:
  portfolio signup --user bob --password longpass --email bob@example.com --name "Bob"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			user, password := o.credentials()
			if user == "" || password == "" {
				return errMissingCredentials
			}
			if email == "" || displayName == "" {
				return errors.New("--email and --name are required")
			}
			return o.withServices(cmd, func(ctx context.Context, svc *di.Services) error {
				id, err := svc.Credentials.Register(ctx, user, password, email, displayName, authentity.RoleTrader)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "Registered %s (id %d)\n", user, id)
				return err
			})
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&displayName, "name", "", "display name")
	return cmd
}
