package cli

import (
	"log"

	"github.com/spf13/cobra"

	"Quiznator-Backend/src/config"
)

func newResumeClonesCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "resume-clones [batch-id]",
		Short: "Re-run the reference rewrite of unfinished clone batches",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := bootstrap(cmd.Context(), *cfg)
			if err != nil {
				return err
			}
			defer a.close()

			if len(args) == 1 {
				return a.quizzes.ResumeBatch(cmd.Context(), args[0])
			}
			n, err := a.quizzes.ResumePendingBatches(cmd.Context())
			log.Printf("✅ %d clone batch(es) resumed", n)
			return err
		},
	}
}
