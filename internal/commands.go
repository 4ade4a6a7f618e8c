package internal

import (
	"github.com/lodehq/lode/internal/middleware"
	"github.com/spf13/cobra"
)

var defaultCommands = []middleware.CommandFactory{
	NewInitCmd,
	middleware.UseMiddlewareChain(middleware.RequireConfig, middleware.LoadModList)(NewAddCmd),
	middleware.UseMiddlewareChain(middleware.RequireConfig, middleware.LoadModList)(NewRemoveCmd),
	middleware.UseMiddlewareChain(middleware.RequireConfig, middleware.LoadModList)(NewCheckCmd),
	middleware.UseMiddlewareChain(middleware.RequireConfig, middleware.LoadModList)(NewSyncCmd),
	middleware.UseMiddlewareChain(middleware.RequireConfig)(NewLoaderCmd),
}

func RegisterSubCommands(cmd *cobra.Command) {
	for _, factory := range defaultCommands {
		cmd.AddCommand(factory())
	}
}
