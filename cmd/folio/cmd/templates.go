package cmd

import (
	"fmt"
	"io/fs"

	"github.com/spf13/cobra"
	"github.com/templui/folio"
	"github.com/templui/folio/internal/config"
	"github.com/templui/folio/internal/logger"
	"github.com/templui/folio/internal/sitegen"
)

func TemplatesCmd() *cobra.Command {
	templatesCmd := &cobra.Command{
		Use:   "templates",
		Short: "Manage template bundles",
	}

	templatesCmd.AddCommand(&cobra.Command{
		Use:   "sync",
		Short: "Register template folders from TEMPLATES_DIR in the database",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			result, err := a.TemplateService.Sync(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "synced %d templates, deactivated %d\n", result.Synced, result.Deactivated)
			return nil
		},
	})

	var dir string
	installCmd := &cobra.Command{
		Use:   "install",
		Short: "Copy the built-in template bundles into a directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			if dir == "" {
				cfg := config.Load()
				logger.Init(cfg.IsDevelopment(), "", cfg.AppEnv)
				dir = cfg.TemplatesDir
			}
			return runInstall(cmd, dir)
		},
	}
	installCmd.Flags().StringVar(&dir, "dir", "", "target directory (default: TEMPLATES_DIR)")
	templatesCmd.AddCommand(installCmd)

	return templatesCmd
}

func runInstall(cmd *cobra.Command, dir string) error {
	bundles, err := fs.Sub(folio.TemplatesFS, "templates")
	if err != nil {
		return err
	}

	installed, err := sitegen.InstallBundles(bundles, dir)
	if err != nil {
		return err
	}

	if len(installed) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "all built-in templates already present in", dir)
		return nil
	}
	for _, name := range installed {
		fmt.Fprintln(cmd.OutOrStdout(), "installed", name)
	}
	return nil
}
