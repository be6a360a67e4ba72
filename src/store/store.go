// Package store is the document store contract the quiz services depend on.
package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
)

// Cursor streams documents one at a time. *mongo.Cursor satisfies it.
type Cursor interface {
	Next(ctx context.Context) bool
	Decode(val interface{}) error
	Err() error
	Close(ctx context.Context) error
}

// Collection is one document collection.
//
// Create returns the stored document, including the "_id", "createdAt" and "updatedAt"
// fields assigned by the store. Update and Remove apply to every document matched by
// selector.
type Collection interface {
	Find(ctx context.Context, filter bson.M) (Cursor, error)
	Create(ctx context.Context, doc bson.M) (bson.M, error)
	Update(ctx context.Context, selector, patch bson.M) error
	Remove(ctx context.Context, selector bson.M) error
	Aggregate(ctx context.Context, pipeline []bson.M) ([]bson.M, error)
}

// FindAll drains a Find cursor into out (a pointer to a slice).
func FindAll(ctx context.Context, c Collection, filter bson.M, out interface{}) error {
	cur, err := c.Find(ctx, filter)
	if err != nil {
		return err
	}
	defer cur.Close(ctx)
	return decodeAll(ctx, cur, out)
}

// FindOne decodes the first document matched by filter into out.
// It reports false when nothing matched.
func FindOne(ctx context.Context, c Collection, filter bson.M, out interface{}) (bool, error) {
	cur, err := c.Find(ctx, filter)
	if err != nil {
		return false, err
	}
	defer cur.Close(ctx)
	if !cur.Next(ctx) {
		return false, cur.Err()
	}
	return true, cur.Decode(out)
}

// TouchPatch adds updatedAt to the $set of patch, creating it when missing.
func TouchPatch(patch bson.M, now interface{}) bson.M {
	out := bson.M{}
	for k, v := range patch {
		out[k] = v
	}
	set := bson.M{}
	if existing, ok := out["$set"].(bson.M); ok {
		for k, v := range existing {
			set[k] = v
		}
	}
	set["updatedAt"] = now
	out["$set"] = set
	return out
}
