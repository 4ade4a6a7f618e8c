package middleware

import (
	"context"
	"fmt"

	"github.com/lodehq/lode/internal/config"
	"github.com/spf13/cobra"
)

// RequireConfig loads the deployment settings and stashes them in the
// command context for later middlewares and the command itself.
func RequireConfig(cmd *cobra.Command, args []string, next func(cmd *cobra.Command, args []string) error) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("missing or invalid config: %w", err)
	}

	ctx := context.WithValue(cmd.Context(), CtxKeyConfig, cfg)
	cmd.SetContext(ctx)

	return next(cmd, args)
}
