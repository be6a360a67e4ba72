package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PeerReviewDoc ผูกกับ collection "peerreviews"
type PeerReviewDoc struct {
	ID                   primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	QuizID               primitive.ObjectID `bson:"quizId" json:"quizId"`
	SourceQuizID         primitive.ObjectID `bson:"sourceQuizId" json:"sourceQuizId"`
	ChosenQuizAnswerID   primitive.ObjectID `bson:"chosenQuizAnswerId,omitempty" json:"chosenQuizAnswerId"`
	RejectedQuizAnswerID primitive.ObjectID `bson:"rejectedQuizAnswerId,omitempty" json:"rejectedQuizAnswerId"`
	GiverAnswererID      string             `bson:"giverAnswererId" json:"giverAnswererId"`
	TargetAnswererID     string             `bson:"targetAnswererId" json:"targetAnswererId"`
	Review               string             `bson:"review" json:"review"`
	CreatedAt            time.Time          `bson:"createdAt,omitempty" json:"createdAt"`
	UpdatedAt            time.Time          `bson:"updatedAt,omitempty" json:"updatedAt"`
}
