package quizzes

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"Quiznator-Backend/src/models"
	"Quiznator-Backend/src/store"
)

func (s *Service) CreateQuiz(ctx context.Context, owner primitive.ObjectID, in models.QuizInput) (*models.Quiz, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrInvalidRequest, err)
	}

	doc := bson.M{
		"type":   in.Type,
		"title":  in.Title,
		"data":   in.Data,
		"userId": owner,
	}
	if in.Tags != nil {
		doc["tags"] = in.Tags
	}

	created, err := s.quizzes.Create(ctx, doc)
	if err != nil {
		return nil, models.StoreFailure("create quiz", err)
	}
	return decodeQuiz(created)
}

func (s *Service) GetQuiz(ctx context.Context, id primitive.ObjectID) (*models.Quiz, error) {
	var quiz models.Quiz
	found, err := store.FindOne(ctx, s.quizzes, bson.M{"_id": id}, &quiz)
	if err != nil {
		return nil, models.StoreFailure("get quiz", err)
	}
	if !found {
		return nil, fmt.Errorf("quiz %s: %w", id.Hex(), models.ErrNotFound)
	}
	return &quiz, nil
}

func (s *Service) UpdateQuiz(ctx context.Context, id primitive.ObjectID, in models.QuizInput) (*models.Quiz, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrInvalidRequest, err)
	}
	if _, err := s.GetQuiz(ctx, id); err != nil {
		return nil, err
	}

	set := bson.M{"type": in.Type, "title": in.Title, "data": in.Data}
	if in.Tags != nil {
		set["tags"] = in.Tags
	}
	if err := s.quizzes.Update(ctx, bson.M{"_id": id}, bson.M{"$set": set}); err != nil {
		return nil, models.StoreFailure("update quiz", err)
	}
	s.cache.Invalidate(ctx, id)
	return s.GetQuiz(ctx, id)
}

// RemoveQuiz removes the quiz with its answers and peer reviews.
func (s *Service) RemoveQuiz(ctx context.Context, id primitive.ObjectID) error {
	if _, err := s.GetQuiz(ctx, id); err != nil {
		return err
	}
	if err := s.quizzes.Remove(ctx, bson.M{"_id": id}); err != nil {
		return models.StoreFailure("remove quiz", err)
	}
	return nil
}

// FindAnswerable lists quizzes of the answerable types matching query. Keys of query
// take precedence over the type restriction.
func (s *Service) FindAnswerable(ctx context.Context, query bson.M) ([]models.Quiz, error) {
	filter := bson.M{"type": bson.M{"$in": models.AnswerableTypes}}
	for k, v := range query {
		filter[k] = v
	}
	return s.find(ctx, filter)
}

func (s *Service) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Quiz, error) {
	return s.find(ctx, bson.M{"_id": bson.M{"$in": ids}})
}

func (s *Service) FindByTags(ctx context.Context, tags []string) ([]models.Quiz, error) {
	return s.find(ctx, WhereTags(tags))
}

func (s *Service) find(ctx context.Context, filter bson.M) ([]models.Quiz, error) {
	quizzes := []models.Quiz{}
	if err := store.FindAll(ctx, s.quizzes, filter, &quizzes); err != nil {
		return nil, models.StoreFailure("find quizzes", err)
	}
	return quizzes, nil
}

func decodeQuiz(doc bson.M) (*models.Quiz, error) {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return nil, err
	}
	var quiz models.Quiz
	if err := bson.Unmarshal(raw, &quiz); err != nil {
		return nil, err
	}
	return &quiz, nil
}
