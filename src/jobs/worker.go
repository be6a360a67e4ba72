package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/hibiken/asynq"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"Quiznator-Backend/src/models"
	"Quiznator-Backend/src/services/quizzes"
)

// Cloner is the part of the quizzes service the clone jobs drive.
type Cloner interface {
	Clone(ctx context.Context, query, newAttributes bson.M) (*models.CloneResult, error)
	ResumeBatch(ctx context.Context, batchID string) error
}

// Enqueuer is satisfied by *asynq.Client.
type Enqueuer interface {
	Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// RegisterCloneHandlers ลงทะเบียน handler ของงาน clone ทั้งหมด
func RegisterCloneHandlers(mux *asynq.ServeMux, cloner Cloner) {
	mux.HandleFunc(TypeCloneQuizzes, HandleCloneQuizzes(cloner))
	mux.HandleFunc(TypeResumeClone, HandleResumeClone(cloner))
}

func HandleCloneQuizzes(cloner Cloner) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var p CloneQuizzesPayload
		if err := json.Unmarshal(t.Payload(), &p); err != nil {
			log.Println("❌ clone payload decode error:", err)
			return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
		}

		owner, err := primitive.ObjectIDFromHex(p.OwnerID)
		if err != nil {
			return fmt.Errorf("invalid owner %q: %w", p.OwnerID, asynq.SkipRetry)
		}
		query, err := quizzes.BuildCloneQuery(p.IDs, p.Tags)
		if err != nil {
			return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
		}

		result, err := cloner.Clone(ctx, query, bson.M{"userId": owner})
		if err != nil {
			if result != nil {
				// copies exist; the rewrite is resumed through its own task
				log.Printf("⚠️ clone batch %s kept with unresolved references: %v", result.BatchID, err)
				return nil
			}
			return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
		}

		log.Printf("✅ clone task done: %d quiz(zes) for owner %s, batch=%s", len(result.Mapping), p.OwnerID, result.BatchID)
		return nil
	}
}

func HandleResumeClone(cloner Cloner) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var p ResumeClonePayload
		if err := json.Unmarshal(t.Payload(), &p); err != nil {
			return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
		}

		err := cloner.ResumeBatch(ctx, p.BatchID)
		if errors.Is(err, models.ErrNotFound) {
			log.Println("⚠️ clone batch not found. Skipping task:", p.BatchID)
			return nil
		}
		return err
	}
}

// ScheduleResume returns a rewrite failure handler that enqueues a resume of the failed
// batch after delay.
func ScheduleResume(client Enqueuer, delay time.Duration) func(batchID string) {
	return func(batchID string) {
		if client == nil {
			log.Printf("⚠️ asynq client not initialized, clone batch %s waits for resume-clones", batchID)
			return
		}
		task, err := NewResumeCloneTask(batchID)
		if err != nil {
			log.Printf("❌ Failed to create resume task for batch %s: %v", batchID, err)
			return
		}
		_, err = client.Enqueue(task, asynq.ProcessIn(delay), asynq.TaskID(ResumeTaskID(batchID)))
		if err != nil && !errors.Is(err, asynq.ErrTaskIDConflict) {
			log.Printf("❌ Failed to enqueue resume of batch %s: %v", batchID, err)
			return
		}
		log.Printf("✅ Resume of clone batch %s scheduled in %s", batchID, delay)
	}
}
