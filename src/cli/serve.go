package cli

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/spf13/cobra"

	_ "Quiznator-Backend/docs"
	"Quiznator-Backend/src/config"
	"Quiznator-Backend/src/controllers"
	"Quiznator-Backend/src/routes"
	"Quiznator-Backend/src/utils"
)

func newServeCmd(cfg *config.Config) *cobra.Command {
	var port string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			if port != "" {
				cfg.AppURI = port
			}
			return runServer(cmd.Context(), *cfg)
		},
	}
	cmd.Flags().StringVar(&port, "port", "", "port to listen on (overrides APP_URI)")
	return cmd
}

func runServer(parent context.Context, cfg config.Config) error {
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := bootstrap(ctx, cfg)
	if err != nil {
		return fmt.Errorf("error connecting to the database: %w", err)
	}
	defer a.close()

	srv := fiber.New()

	// ✅ เปิดใช้งาน CORS Middleware
	srv.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: false, // ❌ ต้องเป็น false ถ้าใช้ "*"
	}))

	routes.InitRoutes(srv, routes.Deps{
		Quizzes:     controllers.NewQuizController(a.quizzes, a.enqueuer()),
		QuizAnswers: controllers.NewQuizAnswerController(a.answers),
		JWTSecret:   cfg.JWTSecret,
		Revoked:     utils.NewRevokedTokens(a.redis),
	})

	errCh := make(chan error, 1)
	go func() {
		log.Println("Server is running on port " + cfg.AppURI)
		errCh <- srv.Listen(fmt.Sprintf(":%s", url.PathEscape(cfg.AppURI)))
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		log.Println("shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.ShutdownWithContext(shutdownCtx)
}
