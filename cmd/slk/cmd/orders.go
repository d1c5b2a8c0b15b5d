package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	apiclient "github.com/donaldgifford/sellerlink/internal/api/client"
)

func ordersCmd() *cobra.Command {
	var params apiclient.OrdersParams

	cmd := &cobra.Command{
		Use:   "orders <account-id>",
		Short: "List an account's recent orders",
		Example: `  slk orders acct-1
  slk orders acct-1 --days 7 --limit 20
  slk orders acct-1 --output json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := newClient().Orders(cmd.Context(), args[0], &params)
			if err != nil {
				return withReconnectHint(err, args[0])
			}
			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), res)
			}
			return printOrders(cmd.OutOrStdout(), res)
		},
	}

	cmd.Flags().IntVar(&params.WindowDays, "days", 0, "days back from now (server default when 0)")
	cmd.Flags().IntVar(&params.PageSize, "page-size", 0, "orders per upstream page")
	cmd.Flags().IntVar(&params.Limit, "limit", 0, "maximum orders returned")

	return cmd
}

func countCmd() *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:     "count <account-id>",
		Short:   "Count an account's recent orders",
		Example: `  slk count acct-1 --days 14`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := newClient().CountOrders(cmd.Context(), args[0], days)
			if err != nil {
				return withReconnectHint(err, args[0])
			}
			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), n)
			}
			suffix := ""
			if n.Synthetic {
				suffix = " (demo data)"
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%d%s\n", n.Count, suffix)
			return err
		},
	}

	cmd.Flags().IntVar(&days, "days", 0, "days back from now (server default when 0)")

	return cmd
}

func withReconnectHint(err error, accountID string) error {
	var apiErr *apiclient.Error
	if errors.As(err, &apiErr) && apiErr.ReconnectRequired() {
		return fmt.Errorf("%w\nrun `slk connect %s` to link the account again", err, accountID)
	}
	return err
}
