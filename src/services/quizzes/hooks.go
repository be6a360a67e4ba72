package quizzes

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/sync/errgroup"

	"Quiznator-Backend/src/models"
)

// removeDependents deletes the answers and peer reviews of quizzes about to be removed. A
// peer review depends on a quiz through either quizId or sourceQuizId.
// Both removals always run; the first failure is returned.
func (s *Service) removeDependents(ctx context.Context, quizIDs []interface{}) error {
	var g errgroup.Group
	g.Go(func() error {
		return s.answers.Remove(ctx, bson.M{"quizId": bson.M{"$in": quizIDs}})
	})
	g.Go(func() error {
		return s.peerReviews.Remove(ctx, bson.M{"$or": primitive.A{
			bson.M{"quizId": bson.M{"$in": quizIDs}},
			bson.M{"sourceQuizId": bson.M{"$in": quizIDs}},
		}})
	})
	err := g.Wait()

	var oids []primitive.ObjectID
	for _, id := range quizIDs {
		if oid, ok := id.(primitive.ObjectID); ok {
			oids = append(oids, oid)
		}
	}
	s.cache.Invalidate(ctx, oids...)

	return models.StoreFailure("remove dependents", err)
}
