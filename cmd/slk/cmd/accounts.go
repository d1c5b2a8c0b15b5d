package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func connectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "connect <account-id>",
		Short: "Start linking an account",
		Long: "Prints the consent page the seller must open. After consent the marketplace\n" +
			"redirects to the server's callback, which stores the credential.",
		Example: `  slk connect acct-1`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newClient().Connect(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), a)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Open this URL to authorize %s:\n\n  %s\n",
				args[0], a.AuthorizationURL)
			return err
		},
	}
}

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status <account-id>",
		Short: "Show an account's connection status",
		Example: `  slk status acct-1
  slk status acct-1 --output json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := newClient().Connection(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), st)
			}
			return printConnection(cmd.OutOrStdout(), st)
		},
	}
}

func disconnectCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "disconnect <account-id>",
		Short:   "Remove an account's stored credential",
		Example: `  slk disconnect acct-1`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := newClient().Disconnect(cmd.Context(), args[0]); err != nil {
				return err
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "Disconnected %s.\n", args[0])
			return err
		},
	}
}
