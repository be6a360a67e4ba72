package cli

import (
	"github.com/spf13/cobra"

	"Quiznator-Backend/src/config"
)

// Execute runs the CLI.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	var cfg config.Config

	cmd := &cobra.Command{
		Use:          "quiznator",
		Short:        "Quiz authoring backend: HTTP API, clone worker and maintenance commands",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cfg = config.Load()
		},
	}

	cmd.AddCommand(newServeCmd(&cfg))
	cmd.AddCommand(newWorkerCmd(&cfg))
	cmd.AddCommand(newCloneCmd(&cfg))
	cmd.AddCommand(newResumeClonesCmd(&cfg))
	cmd.AddCommand(newTokenCmd(&cfg))
	return cmd
}
