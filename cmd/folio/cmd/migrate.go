package cmd

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/templui/folio/internal/config"
	"github.com/templui/folio/internal/db"
	"github.com/templui/folio/internal/logger"
)

func MigrateCmd() *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back database migrations",
	}

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrate(cmd, db.RunMigrations)
		},
	})
	migrateCmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Roll back the most recent migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrate(cmd, db.MigrateDown)
		},
	})

	return migrateCmd
}

type migrateFunc func(ctx context.Context, db *sql.DB, driver string) error

func runMigrate(cmd *cobra.Command, migrate migrateFunc) error {
	cfg := config.Load()
	logger.Init(cfg.IsDevelopment(), "", cfg.AppEnv)

	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return err
	}
	defer database.Close()

	err = migrate(cmd.Context(), database.DB, cfg.DBDriver)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "migrate %s: done\n", cmd.Name())
	return nil
}
