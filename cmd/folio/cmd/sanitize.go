package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/templui/folio/internal/sitegen"
)

func SanitizeCmd() *cobra.Command {
	var fallback string

	sanitizeCmd := &cobra.Command{
		Use:   "sanitize <value>",
		Short: "Print the path segment a value maps to",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), sitegen.SafeSegment(args[0], fallback))
			return nil
		},
	}
	sanitizeCmd.Flags().StringVar(&fallback, "fallback", "user", "value printed when nothing survives")

	return sanitizeCmd
}
