package middleware

import (
	"context"

	"github.com/lodehq/lode/internal/config"
	"github.com/lodehq/lode/internal/manifest"
	"github.com/spf13/cobra"
)

// LoadModList reads the tracked-mod manifest named by the config and puts
// it in the command context. Requires RequireConfig earlier in the chain.
func LoadModList(cmd *cobra.Command, args []string, next func(cmd *cobra.Command, args []string) error) error {
	cfg, err := Get[config.Config](cmd, CtxKeyConfig)
	if err != nil {
		return err
	}

	m, err := manifest.Load(cfg.ModsFile)
	if err != nil {
		return err
	}

	ctx := context.WithValue(cmd.Context(), CtxKeyManifest, m)
	cmd.SetContext(ctx)

	return next(cmd, args)
}
