package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"Quiznator-Backend/src/config"
	"Quiznator-Backend/src/database"
	"Quiznator-Backend/src/utils"
)

// newTokenCmd signs and revokes API tokens for operators and local development.
func newTokenCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Sign or revoke API tokens",
	}

	var userID, email, role string
	sign := &cobra.Command{
		Use:   "sign",
		Short: "Print a signed token for a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := utils.GenerateJWT(cfg.JWTSecret, userID, email, role)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	sign.Flags().StringVar(&userID, "user", "", "user id")
	sign.Flags().StringVar(&email, "email", "", "user email")
	sign.Flags().StringVar(&role, "role", "teacher", "user role")
	_ = sign.MarkFlagRequired("user")

	var ttl time.Duration
	revoke := &cobra.Command{
		Use:   "revoke <token>",
		Short: "Blacklist a token until it expires",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
			defer cancel()

			client := database.InitRedis(ctx, cfg.RedisURI)
			if client == nil {
				return fmt.Errorf("redis is required to revoke tokens")
			}
			defer client.Close()
			return utils.NewRevokedTokens(client).Revoke(ctx, args[0], ttl)
		},
	}
	revoke.Flags().DurationVar(&ttl, "ttl", utils.TokenTTL, "how long the token stays revoked")

	cmd.AddCommand(sign, revoke)
	return cmd
}
