// Package cmd implements the CLI commands for the sellerlink server.
package cmd

import (
	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "sellerlink",
	Short: "Link marketplace seller accounts and read their orders",
	Long: "An API service that links local accounts to marketplace seller accounts through " +
		"the OAuth consent flow, keeps their credentials fresh, and serves their recent orders.",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config.yaml", "config file path")
	rootCmd.AddCommand(versionCommand())
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
