package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type QuizType string

const (
	MultipleChoice      QuizType = "MULTIPLE_CHOICE"
	Checkbox            QuizType = "CHECKBOX"
	Essay               QuizType = "ESSAY"
	Open                QuizType = "OPEN"
	PeerReview          QuizType = "PEER_REVIEW"
	PeerReviewsReceived QuizType = "PEER_REVIEWS_RECEIVED"
	Scale               QuizType = "SCALE"
	MultipleOpen        QuizType = "MULTIPLE_OPEN"
	RadioMatrix         QuizType = "RADIO_MATRIX"
	PrivacyAgreement    QuizType = "PRIVACY_AGREEMENT"
)

// QuizTypes lists every accepted quiz type.
var QuizTypes = []QuizType{
	MultipleChoice, Checkbox, Essay, Open, PeerReview,
	PeerReviewsReceived, Scale, MultipleOpen, RadioMatrix, PrivacyAgreement,
}

// AnswerableTypes are the quiz types a learner answers directly.
var AnswerableTypes = []QuizType{MultipleChoice, Checkbox, Essay, Open}

func (t QuizType) Valid() bool {
	for _, known := range QuizTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Quiz ผูกกับ collection "quizzes"
type Quiz struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Type      QuizType           `bson:"type" json:"type" validate:"required,quiztype"`
	Title     string             `bson:"title" json:"title" validate:"required,min=3,max=100"`
	Data      bson.M             `bson:"data" json:"data" validate:"required"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	Tags      []string           `bson:"tags,omitempty" json:"tags"`
	CreatedAt time.Time          `bson:"createdAt,omitempty" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt,omitempty" json:"updatedAt"`
}

// Items returns the selectable items of a choice-style quiz.
func (q *Quiz) Items() []bson.M {
	raw, ok := q.Data["items"]
	if !ok {
		return nil
	}
	var list []interface{}
	switch v := raw.(type) {
	case primitive.A:
		list = v
	case []interface{}:
		list = v
	case []bson.M:
		return v
	default:
		return nil
	}
	items := make([]bson.M, 0, len(list))
	for _, it := range list {
		switch m := it.(type) {
		case bson.M:
			items = append(items, m)
		case map[string]interface{}:
			items = append(items, bson.M(m))
		case bson.D:
			items = append(items, m.Map())
		}
	}
	return items
}

// CanInspectAnswers reports whether user may read the answers of q.
func (q *Quiz) CanInspectAnswers(user User) bool {
	return !q.ID.IsZero() && q.UserID.Hex() == user.ID
}

// QuizInput is the writable part of a quiz accepted from clients.
type QuizInput struct {
	Type  QuizType `json:"type" validate:"required,quiztype"`
	Title string   `json:"title" validate:"required,min=3,max=100"`
	Data  bson.M   `json:"data" validate:"required"`
	Tags  []string `json:"tags"`
}
