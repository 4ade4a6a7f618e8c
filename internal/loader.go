package internal

import (
	"context"

	"github.com/lodehq/lode/internal/acquire"
	"github.com/lodehq/lode/internal/config"
	"github.com/lodehq/lode/internal/middleware"

	"github.com/spf13/cobra"
)

func NewLoaderCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "loader",
		Short: "Fetch or refresh the loader binary",
		Long: `Download the server launcher for the configured game version and
loader version ("latest" resolves against the loader's meta API). The
previous launcher is kept next to the new one with a .old suffix.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := middleware.Get[config.Config](cmd, middleware.CtxKeyConfig)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), cfg.RequestTimeout)
			defer cancel()

			acquirer := acquire.New(nil, cfg.LoaderMetaURL, cfg.InstallDir)
			_, err = acquirer.Fetch(ctx, cfg.GameVersion, cfg.LoaderVersion)
			return err
		},
	}
}
