package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func GenerateCmd() *cobra.Command {
	var userID int64

	generateCmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a user's portfolio site",
		RunE: func(cmd *cobra.Command, args []string) error {
			if userID <= 0 {
				return errors.New("--user must be a positive user id")
			}

			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			result, err := a.GeneratorService.Generate(cmd.Context(), userID)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), result.URL)
			return nil
		},
	}
	generateCmd.Flags().Int64Var(&userID, "user", 0, "id of the user whose site to generate")
	_ = generateCmd.MarkFlagRequired("user")

	return generateCmd
}
