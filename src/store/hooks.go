package store

import (
	"context"
	"errors"
	"log"

	"go.mongodb.org/mongo-driver/bson"
)

// Hooks run around the writes of a HookedCollection.
type Hooks struct {
	// BeforeSave may rewrite a document before it is created.
	BeforeSave func(doc bson.M)
	// BeforeUpdate may rewrite an update patch before it is applied.
	BeforeUpdate func(patch bson.M)
	// BeforeRemove receives the ids of the documents about to be removed.
	BeforeRemove func(ctx context.Context, ids []interface{}) error
}

// HookedCollection applies Hooks on every write path of the wrapped collection.
type HookedCollection struct {
	Collection
	hooks Hooks
}

func WithHooks(c Collection, hooks Hooks) *HookedCollection {
	return &HookedCollection{Collection: c, hooks: hooks}
}

func (h *HookedCollection) Create(ctx context.Context, doc bson.M) (bson.M, error) {
	if h.hooks.BeforeSave != nil {
		h.hooks.BeforeSave(doc)
	}
	return h.Collection.Create(ctx, doc)
}

func (h *HookedCollection) Update(ctx context.Context, selector, patch bson.M) error {
	if h.hooks.BeforeUpdate != nil {
		h.hooks.BeforeUpdate(patch)
	}
	return h.Collection.Update(ctx, selector, patch)
}

// Remove runs BeforeRemove for the matched ids and then removes the documents even when
// the hook failed. The hook error is returned after the removal attempt.
func (h *HookedCollection) Remove(ctx context.Context, selector bson.M) error {
	if h.hooks.BeforeRemove == nil {
		return h.Collection.Remove(ctx, selector)
	}

	ids, err := matchedIDs(ctx, h.Collection, selector)
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		return nil
	}

	hookErr := h.hooks.BeforeRemove(ctx, ids)
	if hookErr != nil {
		log.Printf("⚠️ pre-remove hook failed for %d document(s): %v", len(ids), hookErr)
	}

	removeErr := h.Collection.Remove(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if removeErr != nil {
		return removeErr
	}
	return hookErr
}

func matchedIDs(ctx context.Context, c Collection, selector bson.M) ([]interface{}, error) {
	cur, err := c.Find(ctx, selector)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var ids []interface{}
	for cur.Next(ctx) {
		var doc bson.M
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		id, ok := doc["_id"]
		if !ok {
			return nil, errors.New("matched document has no _id")
		}
		ids = append(ids, id)
	}
	return ids, cur.Err()
}
