package internal

import (
	"github.com/lodehq/lode/internal/check"
	"github.com/lodehq/lode/internal/config"
	"github.com/lodehq/lode/internal/middleware"
	"github.com/lodehq/lode/internal/models"

	"github.com/spf13/cobra"
)

func NewCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Show tracked mods against the registry",
		Long: `Check prints a status table of every tracked mod: the installed archive,
the latest compatible registry version, and whether an update is pending.
Nothing is downloaded or deleted.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := middleware.Get[config.Config](cmd, middleware.CtxKeyConfig)
			if err != nil {
				return err
			}
			m, err := middleware.Get[*models.Manifest](cmd, middleware.CtxKeyManifest)
			if err != nil {
				return err
			}

			checker, err := check.New(cfg, m, nil)
			if err != nil {
				return err
			}
			return checker.Execute(cmd.Context())
		},
	}
}
