package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"Quiznator-Backend/src/config"
	"Quiznator-Backend/src/services/quizzes"
)

func newCloneCmd(cfg *config.Config) *cobra.Command {
	var (
		ids   []string
		tags  []string
		owner string
	)
	cmd := &cobra.Command{
		Use:   "clone",
		Short: "Clone quizzes by id or tag and print the id mapping as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			ownerID, err := primitive.ObjectIDFromHex(owner)
			if err != nil {
				return fmt.Errorf("invalid --owner %q", owner)
			}
			query, err := quizzes.BuildCloneQuery(ids, tags)
			if err != nil {
				return err
			}

			a, err := bootstrap(cmd.Context(), *cfg)
			if err != nil {
				return err
			}
			defer a.close()

			result, cloneErr := a.quizzes.Clone(cmd.Context(), query, bson.M{"userId": ownerID})
			if result != nil {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				if err := enc.Encode(result); err != nil {
					return err
				}
			}
			return cloneErr
		},
	}
	cmd.Flags().StringSliceVar(&ids, "ids", nil, "quiz ids to clone")
	cmd.Flags().StringSliceVar(&tags, "tags", nil, "clone every quiz carrying one of these tags")
	cmd.Flags().StringVar(&owner, "owner", "", "user id that owns the copies")
	_ = cmd.MarkFlagRequired("owner")
	return cmd
}
