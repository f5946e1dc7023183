package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/templui/folio/cmd/folio/cmd"
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "folio",
		Short:        "Admin tools for the folio portfolio generator",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(cmd.MigrateCmd())
	rootCmd.AddCommand(cmd.TemplatesCmd())
	rootCmd.AddCommand(cmd.GenerateCmd())
	rootCmd.AddCommand(cmd.SanitizeCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
