package main

import (
	"os"

	"github.com/spf13/cobra"

	"keymint/internal/interfaces/cli/migrate"
	"keymint/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "keymint",
		Short: "Keymint - multi-brand license issuance and entitlement service",
		Long:  `Keymint issues license keys for multiple product brands and validates entitlements for installed product instances.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
