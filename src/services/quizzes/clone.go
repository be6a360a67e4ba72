package quizzes

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/sync/errgroup"

	"Quiznator-Backend/src/models"
)

// identityFields are assigned by the store and never copied onto a clone.
var identityFields = []string{"_id", "createdAt", "updatedAt"}

// BuildCloneQuery selects the quizzes with the given ids or any of the given tags.
func BuildCloneQuery(ids, tags []string) (bson.M, error) {
	var clauses []bson.M
	if len(ids) > 0 {
		oids := make([]primitive.ObjectID, 0, len(ids))
		for _, id := range ids {
			oid, err := primitive.ObjectIDFromHex(id)
			if err != nil {
				return nil, fmt.Errorf("%w: invalid quiz id %q", models.ErrInvalidRequest, id)
			}
			oids = append(oids, oid)
		}
		clauses = append(clauses, bson.M{"_id": bson.M{"$in": oids}})
	}
	if len(tags) > 0 {
		clauses = append(clauses, WhereTags(tags))
	}

	switch len(clauses) {
	case 0:
		return nil, fmt.Errorf("%w: no quiz ids or tags to clone", models.ErrInvalidRequest)
	case 1:
		return clauses[0], nil
	}
	return bson.M{"$or": clauses}, nil
}

// Clone copies every quiz matched by query, applying newAttributes to each copy, and then
// points data.quizId of the copies at the copied quizzes where the original pointed
// inside the same batch.
//
// When the rewrite phase fails the clones are kept: the result is returned together with
// the error and the batch can be resumed with ResumeBatch.
func (s *Service) Clone(ctx context.Context, query, newAttributes bson.M) (*models.CloneResult, error) {
	result, err := s.CloneShallow(ctx, query, newAttributes)
	if err != nil {
		return nil, err
	}

	journaled := s.beginJournal(ctx, result)
	rewriteErr := s.RewriteReferences(ctx, result.Mapping, result.PendingReferences)
	if journaled {
		s.finishJournal(ctx, result.BatchID, rewriteErr)
	}
	if rewriteErr != nil {
		if journaled && s.onRewriteFailed != nil {
			s.onRewriteFailed(result.BatchID)
		}
		return result, rewriteErr
	}
	return result, nil
}

// CloneShallow streams the quizzes matched by query and creates a copy of each with at
// most fanOut creates in flight. It returns the source->clone id mapping and the
// data.quizId of every copy that has one.
//
// The first failed create stops the batch: in-flight creates settle, the copies made so
// far are removed again and the error is returned without a result.
func (s *Service) CloneShallow(ctx context.Context, query, newAttributes bson.M) (*models.CloneResult, error) {
	cur, err := s.quizzes.Find(ctx, query)
	if err != nil {
		return nil, models.StoreFailure("find clone sources", err)
	}
	defer cur.Close(ctx)

	batch := newCloneBatch()
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.fanOut)

	var decodeErr error
	for cur.Next(gctx) {
		var source bson.M
		if err := cur.Decode(&source); err != nil {
			decodeErr = err
			break
		}
		sourceID := source["_id"]
		doc := cloneDocument(source, newAttributes)

		g.Go(func() error {
			created, err := s.quizzes.Create(gctx, doc)
			if err != nil {
				return fmt.Errorf("clone quiz %s: %w", idString(sourceID), err)
			}
			batch.record(sourceID, created)
			return nil
		})
	}

	err = g.Wait()
	if err == nil {
		err = decodeErr
	}
	if err == nil {
		err = cur.Err()
	}
	if err != nil {
		log.Printf("❌ clone failed after %d copies: %v", batch.size(), err)
		s.discardClones(ctx, batch.createdIDs())
		return nil, models.StoreFailure("clone quizzes", err)
	}

	result := batch.result()
	log.Printf("✅ cloned %d quiz(zes), batch=%s pendingRefs=%d",
		len(result.Mapping), result.BatchID, len(result.PendingReferences))
	return result, nil
}

func cloneDocument(source, newAttributes bson.M) bson.M {
	clone := make(bson.M, len(source)+len(newAttributes))
	for k, v := range source {
		clone[k] = v
	}
	for k, v := range newAttributes {
		clone[k] = v
	}
	for _, f := range identityFields {
		delete(clone, f)
	}
	return clone
}

func (s *Service) discardClones(ctx context.Context, ids []interface{}) {
	if len(ids) == 0 {
		return
	}
	cctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 30*time.Second)
	defer cancel()

	if err := s.quizzes.Remove(cctx, bson.M{"_id": bson.M{"$in": ids}}); err != nil {
		log.Printf("❌ failed to discard %d partial clone(s): %v", len(ids), err)
		return
	}
	log.Printf("⚠️ discarded %d partial clone(s)", len(ids))
}

// cloneBatch collects what the concurrent creates of one clone produce.
type cloneBatch struct {
	mu      sync.Mutex
	id      string
	mapping map[string]string
	pending map[string]interface{}
	created []interface{}
}

func newCloneBatch() *cloneBatch {
	return &cloneBatch{
		id:      uuid.NewString(),
		mapping: map[string]string{},
		pending: map[string]interface{}{},
	}
}

func (b *cloneBatch) record(sourceID interface{}, clone bson.M) {
	cloneID := clone["_id"]
	ref, hasRef := quizReference(clone)

	b.mu.Lock()
	defer b.mu.Unlock()

	b.mapping[idString(sourceID)] = idString(cloneID)
	b.created = append(b.created, cloneID)
	if hasRef {
		b.pending[idString(cloneID)] = ref
	}
}

func (b *cloneBatch) size() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.created)
}

func (b *cloneBatch) createdIDs() []interface{} {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]interface{}(nil), b.created...)
}

func (b *cloneBatch) result() *models.CloneResult {
	b.mu.Lock()
	defer b.mu.Unlock()

	mapping := make(map[string]string, len(b.mapping))
	for k, v := range b.mapping {
		mapping[k] = v
	}
	pending := make(map[string]interface{}, len(b.pending))
	for k, v := range b.pending {
		pending[k] = v
	}
	return &models.CloneResult{BatchID: b.id, Mapping: mapping, PendingReferences: pending}
}
