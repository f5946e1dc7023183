package cmd

import (
	"github.com/spf13/cobra"
	"github.com/templui/folio/internal/app"
	"github.com/templui/folio/internal/config"
	"github.com/templui/folio/internal/logger"
)

// openApp loads the environment and builds the same app the server runs.
func openApp(cmd *cobra.Command) (*app.App, error) {
	cfg := config.Load()
	logger.Init(cfg.IsDevelopment(), cfg.SentryDSN, cfg.AppEnv)

	return app.New(cmd.Context(), cfg)
}
