package internal

import (
	"fmt"

	"github.com/lodehq/lode/internal/acquire"
	"github.com/lodehq/lode/internal/config"
	"github.com/lodehq/lode/internal/lifecycle"
	"github.com/lodehq/lode/internal/middleware"
	"github.com/lodehq/lode/internal/models"
	"github.com/lodehq/lode/internal/sync"

	"github.com/spf13/cobra"
)

func NewSyncCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Synchronize mods and loader with the registry",
		Long: `Sync resolves the latest compatible version of every tracked mod,
backs up the mods directory once, evicts stale archives, downloads and
verifies new files, and prints a report.

Examples:
  lode sync                 # full run
  lode sync --no-backup     # skip the snapshot
  lode sync --no-loader     # leave the loader binary alone`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := middleware.Get[config.Config](cmd, middleware.CtxKeyConfig)
			if err != nil {
				return err
			}
			m, err := middleware.Get[*models.Manifest](cmd, middleware.CtxKeyManifest)
			if err != nil {
				return err
			}

			if noBackup, _ := cmd.Flags().GetBool("no-backup"); noBackup {
				cfg.BackupEnabled = false
			}

			deps := sync.Deps{}
			if noLoader, _ := cmd.Flags().GetBool("no-loader"); !noLoader {
				deps.Acquirer = acquire.New(nil, cfg.LoaderMetaURL, cfg.InstallDir)
			}
			if noRestart, _ := cmd.Flags().GetBool("no-restart"); !noRestart && cfg.ServiceUnit != "" {
				deps.Gate = lifecycle.NewSystemdGate(cfg.ServiceUnit, nil)
			}

			engine, err := sync.New(cfg, deps)
			if err != nil {
				return err
			}

			ids := make([]string, 0, len(m.Mods))
			for _, mod := range m.Mods {
				ids = append(ids, mod.ID)
			}

			rep := engine.Run(cmd.Context(), ids)
			rep.Print()

			if n := len(rep.Failures); n > 0 {
				return fmt.Errorf("%d mods failed to update", n)
			}
			return nil
		},
	}

	cmd.Flags().Bool("no-backup", false, "Skip the pre-run snapshot of the mods directory")
	cmd.Flags().Bool("no-loader", false, "Do not refresh the loader binary")
	cmd.Flags().Bool("no-restart", false, "Do not stop/start the host service")

	return cmd
}
