package quizzes

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"Quiznator-Backend/src/models"
	"Quiznator-Backend/src/store"
)

var errNoJournal = errors.New("clone batch journal is not configured")

// beginJournal stores the mapping table before any reference is rewritten. Batches
// without references have nothing to resume and are not journaled.
func (s *Service) beginJournal(ctx context.Context, result *models.CloneResult) bool {
	if s.batches == nil || len(result.PendingReferences) == 0 {
		return false
	}
	_, err := s.batches.Create(ctx, bson.M{
		"batchId":           result.BatchID,
		"mapping":           result.Mapping,
		"pendingReferences": result.PendingReferences,
		"state":             models.BatchRewriting,
	})
	if err != nil {
		log.Printf("⚠️ clone batch %s not journaled, its rewrite cannot be resumed: %v", result.BatchID, err)
		return false
	}
	return true
}

func (s *Service) finishJournal(ctx context.Context, batchID string, rewriteErr error) {
	if s.batches == nil {
		return
	}
	set := bson.M{"state": models.BatchCompleted, "lastError": ""}
	if rewriteErr != nil {
		set = bson.M{"state": models.BatchRewriteFailed, "lastError": rewriteErr.Error()}
	}

	jctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	defer cancel()
	if err := s.batches.Update(jctx, bson.M{"batchId": batchID}, bson.M{"$set": set}); err != nil {
		log.Printf("⚠️ failed to mark clone batch %s as %v: %v", batchID, set["state"], err)
	}
}

// ResumeBatch re-runs the rewrite phase of a journaled clone batch.
func (s *Service) ResumeBatch(ctx context.Context, batchID string) error {
	if s.batches == nil {
		return errNoJournal
	}

	var batch models.CloneBatch
	found, err := store.FindOne(ctx, s.batches, bson.M{"batchId": batchID}, &batch)
	if err != nil {
		return models.StoreFailure("load clone batch", err)
	}
	if !found {
		return fmt.Errorf("clone batch %s: %w", batchID, models.ErrNotFound)
	}
	if batch.State == models.BatchCompleted {
		return nil
	}

	err = s.RewriteReferences(ctx, batch.Mapping, batch.PendingReferences)
	s.finishJournal(ctx, batchID, err)
	if err != nil {
		return err
	}
	log.Printf("✅ clone batch %s resumed", batchID)
	return nil
}

// ResumePendingBatches resumes every journaled batch that did not complete. It returns
// how many batches completed and the first failure.
func (s *Service) ResumePendingBatches(ctx context.Context) (int, error) {
	if s.batches == nil {
		return 0, errNoJournal
	}

	var batches []models.CloneBatch
	filter := bson.M{"state": bson.M{"$in": []string{models.BatchRewriting, models.BatchRewriteFailed}}}
	if err := store.FindAll(ctx, s.batches, filter, &batches); err != nil {
		return 0, models.StoreFailure("list clone batches", err)
	}

	resumed := 0
	var firstErr error
	for _, b := range batches {
		if err := s.ResumeBatch(ctx, b.BatchID); err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		resumed++
	}
	return resumed, firstErr
}
