package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	TypeCloneQuizzes = "quiz:clone"
	TypeResumeClone  = "quiz:clone-resume"
)

// CloneQuizzesPayload selects quizzes by id or tag and names the owner of the copies.
type CloneQuizzesPayload struct {
	IDs     []string `json:"ids,omitempty"`
	Tags    []string `json:"tags,omitempty"`
	OwnerID string   `json:"owner_id"`
}

type ResumeClonePayload struct {
	BatchID string `json:"batch_id"`
}

// NewCloneQuizzesTask never retries: a retried clone would copy the quizzes twice.
func NewCloneQuizzesTask(p CloneQuizzesPayload) (*asynq.Task, error) {
	payload, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeCloneQuizzes, payload, asynq.MaxRetry(0)), nil
}

func NewResumeCloneTask(batchID string) (*asynq.Task, error) {
	payload, err := json.Marshal(ResumeClonePayload{BatchID: batchID})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeResumeClone, payload, asynq.MaxRetry(5)), nil
}

// ResumeTaskID keeps at most one pending resume per batch.
func ResumeTaskID(batchID string) string {
	return "clone-resume-" + batchID
}
