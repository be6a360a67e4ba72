package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoCollection implements Collection on a MongoDB collection.
type MongoCollection struct {
	coll      *mongo.Collection
	batchSize int32
	now       func() time.Time
}

func NewMongoCollection(coll *mongo.Collection) *MongoCollection {
	return &MongoCollection{coll: coll, batchSize: 100, now: time.Now}
}

func (m *MongoCollection) Name() string {
	return m.coll.Name()
}

func (m *MongoCollection) Find(ctx context.Context, filter bson.M) (Cursor, error) {
	opts := options.Find().SetBatchSize(m.batchSize)
	cur, err := m.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	return cur, nil
}

func (m *MongoCollection) Create(ctx context.Context, doc bson.M) (bson.M, error) {
	now := m.now()
	created := bson.M{}
	for k, v := range doc {
		created[k] = v
	}
	created["createdAt"] = now
	created["updatedAt"] = now

	res, err := m.coll.InsertOne(ctx, created)
	if err != nil {
		return nil, err
	}
	created["_id"] = res.InsertedID
	return created, nil
}

func (m *MongoCollection) Update(ctx context.Context, selector, patch bson.M) error {
	_, err := m.coll.UpdateMany(ctx, selector, TouchPatch(patch, m.now()))
	return err
}

func (m *MongoCollection) Remove(ctx context.Context, selector bson.M) error {
	_, err := m.coll.DeleteMany(ctx, selector)
	return err
}

func (m *MongoCollection) Aggregate(ctx context.Context, pipeline []bson.M) ([]bson.M, error) {
	cur, err := m.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []bson.M{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
