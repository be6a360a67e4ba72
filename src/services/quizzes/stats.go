package quizzes

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/sync/errgroup"

	"Quiznator-Backend/src/models"
	"Quiznator-Backend/src/store"
)

// countStrategy says where the submissions of a quiz type live and who submitted them.
type countStrategy struct {
	collection    func(s *Service) store.Collection
	quizField     string
	answererField string
}

var answerCountStrategy = countStrategy{
	collection:    func(s *Service) store.Collection { return s.answers },
	quizField:     "quizId",
	answererField: "answererId",
}

var countStrategies = map[models.QuizType]countStrategy{
	models.PeerReview: {
		collection:    func(s *Service) store.Collection { return s.peerReviews },
		quizField:     "sourceQuizId",
		answererField: "giverAnswererId",
	},
}

func countStrategyFor(t models.QuizType) countStrategy {
	if st, ok := countStrategies[t]; ok {
		return st
	}
	return answerCountStrategy
}

// distributionStrategy: unwind counts each element of an array answer on its own.
type distributionStrategy struct {
	unwind bool
}

// Only choice-style quizzes have a distribution.
var distributionStrategies = map[models.QuizType]distributionStrategy{
	models.Checkbox:       {unwind: true},
	models.MultipleChoice: {unwind: false},
}

func countPipeline(st countStrategy, quizID primitive.ObjectID, unique bool) []bson.M {
	pipeline := []bson.M{{"$match": bson.M{st.quizField: quizID}}}
	if unique {
		pipeline = append(pipeline, bson.M{"$group": bson.M{"_id": "$" + st.answererField}})
	}
	return append(pipeline, bson.M{"$group": bson.M{"_id": nil, "count": bson.M{"$sum": 1}}})
}

func distributionPipeline(st distributionStrategy, quizID primitive.ObjectID) []bson.M {
	pipeline := []bson.M{{"$match": bson.M{"quizId": quizID}}}
	if st.unwind {
		pipeline = append(pipeline, bson.M{"$unwind": "$data"})
	}
	return append(pipeline, bson.M{"$group": bson.M{"_id": "$data", "count": bson.M{"$sum": 1}}})
}

// GetAnswerCounts counts all submissions of quiz and the distinct submitters.
func (s *Service) GetAnswerCounts(ctx context.Context, quiz *models.Quiz) (models.AnswerCounts, error) {
	st := countStrategyFor(quiz.Type)
	coll := st.collection(s)

	var counts models.AnswerCounts
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := aggregateCount(gctx, coll, countPipeline(st, quiz.ID, false))
		counts.All = n
		return err
	})
	g.Go(func() error {
		n, err := aggregateCount(gctx, coll, countPipeline(st, quiz.ID, true))
		counts.Unique = n
		return err
	})
	if err := g.Wait(); err != nil {
		return models.AnswerCounts{}, models.StoreFailure("count answers", err)
	}
	return counts, nil
}

func aggregateCount(ctx context.Context, coll store.Collection, pipeline []bson.M) (int64, error) {
	results, err := coll.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, err
	}
	if len(results) == 0 {
		return 0, nil
	}
	return toInt64(results[0]["count"]), nil
}

// GetAnswerDistribution counts how often each item of a choice-style quiz was picked.
// Other quiz types have an empty distribution.
func (s *Service) GetAnswerDistribution(ctx context.Context, quiz *models.Quiz) ([]models.DistributionEntry, error) {
	st, ok := distributionStrategies[quiz.Type]
	if !ok {
		return []models.DistributionEntry{}, nil
	}

	results, err := s.answers.Aggregate(ctx, distributionPipeline(st, quiz.ID))
	if err != nil {
		return nil, models.StoreFailure("answer distribution", err)
	}

	items := quiz.Items()
	out := make([]models.DistributionEntry, 0, len(results))
	for _, r := range results {
		out = append(out, models.DistributionEntry{
			Value: resolveItem(items, r["_id"]),
			Count: toInt64(r["count"]),
		})
	}
	return out, nil
}

// resolveItem returns the item whose id is value. Answers may name items that were
// since removed from the quiz; those keep their raw value.
func resolveItem(items []bson.M, value interface{}) interface{} {
	for _, item := range items {
		if sameID(item["id"], value) {
			return item
		}
	}
	return value
}

// sameID compares item ids the way the stored values compare: strings and ObjectIDs by
// their hex form, numbers by value whatever their bson width.
func sameID(a, b interface{}) bool {
	if x, ok := numeric(a); ok {
		y, ok := numeric(b)
		return ok && x == y
	}
	switch a.(type) {
	case string, primitive.ObjectID:
	default:
		return false
	}
	switch b.(type) {
	case string, primitive.ObjectID:
	default:
		return false
	}
	return idString(a) == idString(b)
}

func numeric(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case int:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

// GetStats computes answer counts and distribution together, served from the stats
// cache when possible.
func (s *Service) GetStats(ctx context.Context, quiz *models.Quiz) (*models.QuizStats, error) {
	if cached, ok := s.cache.Get(ctx, quiz.ID); ok {
		return cached, nil
	}

	var stats models.QuizStats
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		counts, err := s.GetAnswerCounts(gctx, quiz)
		stats.AnswerCounts = counts
		return err
	})
	g.Go(func() error {
		dist, err := s.GetAnswerDistribution(gctx, quiz)
		stats.AnswerDistribution = dist
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.cache.Set(ctx, quiz.ID, &stats)
	return &stats, nil
}

func toInt64(v interface{}) int64 {
	switch n := v.(type) {
	case int32:
		return int64(n)
	case int64:
		return n
	case int:
		return int64(n)
	case float64:
		return int64(n)
	}
	return 0
}
