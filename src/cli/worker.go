package cli

import (
	"errors"
	"log"

	"github.com/hibiken/asynq"
	"github.com/spf13/cobra"

	"Quiznator-Backend/src/config"
	"Quiznator-Backend/src/jobs"
)

func newWorkerCmd(cfg *config.Config) *cobra.Command {
	var concurrency int
	cmd := &cobra.Command{
		Use:   "worker",
		Short: "Run the asynq worker for clone and resume tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.RedisURI == "" {
				return errors.New("REDIS_URI is required for the worker")
			}
			a, err := bootstrap(cmd.Context(), *cfg)
			if err != nil {
				return err
			}
			defer a.close()

			srv := asynq.NewServer(
				asynq.RedisClientOpt{Addr: cfg.RedisURI},
				asynq.Config{Concurrency: concurrency},
			)
			mux := asynq.NewServeMux()
			jobs.RegisterCloneHandlers(mux, a.quizzes)

			log.Printf("✅ Worker started (concurrency=%d)", concurrency)
			// Run blocks until SIGINT/SIGTERM
			return srv.Run(mux)
		},
	}
	cmd.Flags().IntVar(&concurrency, "concurrency", 5, "tasks processed in parallel")
	return cmd
}
