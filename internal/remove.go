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

func NewRemoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove <ids...>",
		Short: "Stop tracking mods",
		Long: `Remove mods from mods.yml. Installed archives are left on disk.

Examples:
  lode remove sodium
  lode remove --all --force`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := middleware.Get[config.Config](cmd, middleware.CtxKeyConfig)
			if err != nil {
				return err
			}
			m, err := middleware.Get[*models.Manifest](cmd, middleware.CtxKeyManifest)
			if err != nil {
				return err
			}

			all, _ := cmd.Flags().GetBool("all")
			force, _ := cmd.Flags().GetBool("force")

			switch {
			case all && !force:
				return middleware.FlagComboError(errs.RemoveAllNeedsForce)
			case all:
				m.Mods = nil
			default:
				if len(args) == 0 {
					return middleware.FlagComboError(errs.ProvideModIDs, "remove")
				}
				removed, err := manifest.RemoveMods(m, args)
				if err != nil {
					return err
				}
				if !removed {
					logger.Info("None of the given mods were tracked")
					return nil
				}
			}

			if err := manifest.Save(cfg.ModsFile, m); err != nil {
				return err
			}

			logger.Success("Manifest updated, %d mods tracked", len(m.Mods))
			return nil
		},
	}

	cmd.Flags().Bool("all", false, "Stop tracking every mod")
	cmd.Flags().Bool("force", false, "Acknowledge emptying the manifest")

	return cmd
}
