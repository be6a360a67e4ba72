// Package answers lists quiz answers for the quiz owners and records their confirmation.
package answers

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"Quiznator-Backend/src/models"
	"Quiznator-Backend/src/store"
)

// QuizFinder resolves the quizzes an answer query refers to.
type QuizFinder interface {
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Quiz, error)
	FindByTags(ctx context.Context, tags []string) ([]models.Quiz, error)
}

type Service struct {
	answers store.Collection
	quizzes QuizFinder
}

func NewService(answers store.Collection, quizzes QuizFinder) *Service {
	return &Service{answers: answers, quizzes: quizzes}
}

// ListAnswers returns the answers matching q. Every quiz named by id must be
// inspectable by user; quizzes found through tags are narrowed to the inspectable ones.
func (s *Service) ListAnswers(ctx context.Context, user models.User, q models.AnswerQuery) ([]models.QuizAnswer, error) {
	if q.Empty() {
		return nil, fmt.Errorf("%w: one of quizzes, tags or answerers is required", models.ErrInvalidRequest)
	}

	filter := bson.M{}
	if len(q.Quizzes) > 0 || len(q.Tags) > 0 {
		quizIDs, err := s.inspectableQuizIDs(ctx, user, q)
		if err != nil {
			return nil, err
		}
		filter["quizId"] = bson.M{"$in": quizIDs}
	}
	if len(q.Answerers) > 0 {
		filter["answererId"] = bson.M{"$in": q.Answerers}
	}

	answers := []models.QuizAnswer{}
	if err := store.FindAll(ctx, s.answers, filter, &answers); err != nil {
		return nil, models.StoreFailure("list answers", err)
	}
	return answers, nil
}

func (s *Service) inspectableQuizIDs(ctx context.Context, user models.User, q models.AnswerQuery) ([]primitive.ObjectID, error) {
	ids := []primitive.ObjectID{}
	seen := map[primitive.ObjectID]struct{}{}
	add := func(id primitive.ObjectID) {
		if _, dup := seen[id]; !dup {
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}

	if len(q.Quizzes) > 0 {
		requested := make([]primitive.ObjectID, 0, len(q.Quizzes))
		for _, raw := range q.Quizzes {
			oid, err := primitive.ObjectIDFromHex(raw)
			if err != nil {
				return nil, fmt.Errorf("%w: invalid quiz id %q", models.ErrInvalidRequest, raw)
			}
			requested = append(requested, oid)
		}
		found, err := s.quizzes.FindByIDs(ctx, requested)
		if err != nil {
			return nil, err
		}
		for i := range found {
			if !found[i].CanInspectAnswers(user) {
				return nil, fmt.Errorf("quiz %s: %w", found[i].ID.Hex(), models.ErrForbidden)
			}
		}
		for _, id := range requested {
			add(id)
		}
	}

	if len(q.Tags) > 0 {
		tagged, err := s.quizzes.FindByTags(ctx, q.Tags)
		if err != nil {
			return nil, err
		}
		for i := range tagged {
			if tagged[i].CanInspectAnswers(user) {
				add(tagged[i].ID)
			}
		}
	}
	return ids, nil
}

// UpdateConfirmation sets the confirmed flag of an answer. Only the owner of the
// answered quiz may confirm.
func (s *Service) UpdateConfirmation(ctx context.Context, user models.User, answerID string, confirmed bool) (*models.QuizAnswer, error) {
	oid, err := primitive.ObjectIDFromHex(answerID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid answer id %q", models.ErrInvalidRequest, answerID)
	}

	answer, err := s.getAnswer(ctx, oid)
	if err != nil {
		return nil, err
	}

	quizzes, err := s.quizzes.FindByIDs(ctx, []primitive.ObjectID{answer.QuizID})
	if err != nil {
		return nil, err
	}
	if len(quizzes) == 0 || !quizzes[0].CanInspectAnswers(user) {
		return nil, fmt.Errorf("answer %s: %w", answerID, models.ErrForbidden)
	}

	if err := s.answers.Update(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"confirmed": confirmed}}); err != nil {
		return nil, models.StoreFailure("confirm answer", err)
	}
	return s.getAnswer(ctx, oid)
}

func (s *Service) getAnswer(ctx context.Context, id primitive.ObjectID) (*models.QuizAnswer, error) {
	var answer models.QuizAnswer
	found, err := store.FindOne(ctx, s.answers, bson.M{"_id": id}, &answer)
	if err != nil {
		return nil, models.StoreFailure("get answer", err)
	}
	if !found {
		return nil, fmt.Errorf("answer %s: %w", id.Hex(), models.ErrNotFound)
	}
	return &answer, nil
}
