package internal

import (
	"fmt"

	"github.com/lodehq/lode/internal/logger"
	"github.com/spf13/cobra"
)

// Version is stamped by the release build.
var Version = "dev"

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lode",
		Short: "Keep a modded game server in sync with its registry",
		Long: `Lode keeps a locally installed modular game server (loader binary plus a
directory of mod archives) synchronized with the latest compatible versions
published on the registry.`,
		Example: `lode sync`,
		Run: func(cmd *cobra.Command, _ []string) {
			if v, _ := cmd.Flags().GetBool("version"); v {
				fmt.Printf("Version: %s\n", Version)
				return
			}
			_ = cmd.Help()
		},
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			logger.FlagQuiet, _ = cmd.Flags().GetBool("quiet")
			logger.FlagVerboseCount, _ = cmd.Flags().GetCount("verbose")
			logger.ConfigureLoggerFromFlags()
		},
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	cmd.Flags().BoolP("version", "v", false, "Print version information")
	cmd.PersistentFlags().BoolP("quiet", "q", false, "Only print errors")
	cmd.PersistentFlags().CountP("verbose", "V", "Increase log verbosity")

	RegisterSubCommands(cmd)

	return cmd
}

func Execute() error {
	return NewRootCmd().Execute()
}
