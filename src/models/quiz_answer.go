package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type QuizAnswer struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	QuizID     primitive.ObjectID `bson:"quizId" json:"quizId"`
	AnswererID string             `bson:"answererId" json:"answererId"`
	Data       interface{}        `bson:"data" json:"data"`
	Confirmed  bool               `bson:"confirmed" json:"confirmed"`
	CreatedAt  time.Time          `bson:"createdAt,omitempty" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt,omitempty" json:"updatedAt"`
}

// AnswerQuery holds the comma separated filters of the answer listing.
type AnswerQuery struct {
	Quizzes   []string
	Tags      []string
	Answerers []string
}

func (q AnswerQuery) Empty() bool {
	return len(q.Quizzes) == 0 && len(q.Tags) == 0 && len(q.Answerers) == 0
}
