package internal

import (
	"github.com/lodehq/lode/internal/initiator"
	"github.com/lodehq/lode/internal/logger"

	"github.com/spf13/cobra"
)

func NewInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize lode configuration in current directory",
		Long: `Initialize lode configuration.
This command will:
- Create lode.yaml in the current directory
- Create an empty mods.yml manifest`,
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := initiator.New().Execute(); err != nil {
				return err
			}

			logger.Success("Initialized lode in current directory")
			return nil
		},
	}
}
