package quizzes

import (
	"context"
	"fmt"
	"log"

	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/sync/errgroup"

	"Quiznator-Backend/src/models"
)

// RewriteReferences points data.quizId of every clone in pending at the clone of the
// quiz it referenced, when that quiz is part of mapping. References leaving the batch
// are left alone.
//
// Every rewrite is attempted; a failure does not stop its siblings. The first failure
// is returned once all rewrites have settled.
func (s *Service) RewriteReferences(ctx context.Context, mapping map[string]string, pending map[string]interface{}) error {
	var g errgroup.Group
	g.SetLimit(s.fanOut)

	for cloneID, ref := range pending {
		cloneID, ref := cloneID, ref
		target, ok := mapping[idString(ref)]
		if !ok {
			continue
		}

		g.Go(func() error {
			patch := bson.M{"$set": bson.M{referenceField: resolvedReference(ref, target)}}
			if err := s.quizzes.Update(ctx, idSelector(cloneID), patch); err != nil {
				log.Printf("❌ rewrite %s of clone %s -> %s failed: %v", referenceField, cloneID, target, err)
				return fmt.Errorf("rewrite clone %s: %w", cloneID, err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return models.StoreFailure("rewrite references", err)
	}
	return nil
}
