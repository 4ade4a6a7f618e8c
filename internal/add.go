package internal

import (
	"github.com/lodehq/lode/internal/config"
	"github.com/lodehq/lode/internal/errs"
	"github.com/lodehq/lode/internal/logger"
	"github.com/lodehq/lode/internal/manifest"
	"github.com/lodehq/lode/internal/middleware"
	"github.com/lodehq/lode/internal/models"

	"github.com/spf13/cobra"
)

func NewAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <ids...>",
		Short: "Track mods in the manifest",
		Long: `Track one or more registry projects in mods.yml.

Examples:
  lode add fabric-api sodium
  lode add lithium --optional`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return middleware.FlagComboError(errs.ProvideModIDs, "add")
			}

			cfg, err := middleware.Get[config.Config](cmd, middleware.CtxKeyConfig)
			if err != nil {
				return err
			}
			m, err := middleware.Get[*models.Manifest](cmd, middleware.CtxKeyManifest)
			if err != nil {
				return err
			}

			optional, _ := cmd.Flags().GetBool("optional")

			modified, err := manifest.AddMods(m, args, optional)
			if err != nil {
				return err
			}
			if !modified {
				logger.Info("All given mods are already tracked")
				return nil
			}

			if err := manifest.Save(cfg.ModsFile, m); err != nil {
				return err
			}

			logger.Success("Now tracking %d mods", len(m.Mods))
			return nil
		},
	}

	cmd.Flags().Bool("optional", false, "Mark the mods as optional")

	return cmd
}
