package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Clone batch states
const (
	BatchRewriting     = "rewriting"
	BatchCompleted     = "completed"
	BatchRewriteFailed = "rewrite_failed"
)

// CloneResult is the outcome of one clone operation.
// Mapping: source id (hex) -> clone id (hex)
// PendingReferences: clone id (hex) -> data.quizId as originally cloned
type CloneResult struct {
	BatchID           string                 `json:"batchId"`
	Mapping           map[string]string      `json:"mapping"`
	PendingReferences map[string]interface{} `json:"pendingReferences"`
}

// CloneBatch is the journal of a clone kept between the create and rewrite phases.
type CloneBatch struct {
	ID                primitive.ObjectID     `bson:"_id,omitempty" json:"id"`
	BatchID           string                 `bson:"batchId" json:"batchId"`
	Mapping           map[string]string      `bson:"mapping" json:"mapping"`
	PendingReferences map[string]interface{} `bson:"pendingReferences" json:"pendingReferences"`
	State             string                 `bson:"state" json:"state"`
	LastError         string                 `bson:"lastError,omitempty" json:"lastError,omitempty"`
	CreatedAt         time.Time              `bson:"createdAt,omitempty" json:"createdAt"`
	UpdatedAt         time.Time              `bson:"updatedAt,omitempty" json:"updatedAt"`
}

func (b *CloneBatch) Result() *CloneResult {
	return &CloneResult{
		BatchID:           b.BatchID,
		Mapping:           b.Mapping,
		PendingReferences: b.PendingReferences,
	}
}

// CloneRequest ข้อมูลที่ใช้ clone quiz จาก client
type CloneRequest struct {
	IDs   []string `json:"ids" validate:"required_without=Tags,dive,mongodb"`
	Tags  []string `json:"tags" validate:"required_without=IDs"`
	Async bool     `json:"async"`
}
