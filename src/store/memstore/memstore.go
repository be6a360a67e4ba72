// Package memstore is an in-memory store.Collection evaluating the subset of MongoDB
// query, update and aggregation syntax used by the quiz services.
package memstore

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"Quiznator-Backend/src/store"
)

type Collection struct {
	mu   sync.RWMutex
	docs []bson.M
	now  func() time.Time

	// CreateDelay holds every Create open for a while so concurrency can be observed.
	CreateDelay time.Duration
	// Fail* inject errors; a nil func or a nil result lets the call through.
	FailCreate    func(doc bson.M) error
	FailUpdate    func(selector, patch bson.M) error
	FailRemove    func(selector bson.M) error
	FailAggregate func(pipeline []bson.M) error

	inflight int64
	peak     int64
}

var _ store.Collection = (*Collection)(nil)

func New() *Collection {
	return &Collection{now: time.Now}
}

// Insert seeds documents as-is, assigning an ObjectID when "_id" is missing.
func (c *Collection) Insert(docs ...bson.M) []interface{} {
	c.mu.Lock()
	defer c.mu.Unlock()

	ids := make([]interface{}, 0, len(docs))
	for _, d := range docs {
		doc := mustCopy(d)
		if _, ok := doc["_id"]; !ok {
			doc["_id"] = primitive.NewObjectID()
		}
		c.docs = append(c.docs, doc)
		ids = append(ids, doc["_id"])
	}
	return ids
}

// Docs returns a copy of every stored document in insertion order.
func (c *Collection) Docs() []bson.M {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]bson.M, 0, len(c.docs))
	for _, d := range c.docs {
		out = append(out, mustCopy(d))
	}
	return out
}

func (c *Collection) Get(id interface{}) (bson.M, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, d := range c.docs {
		if valuesEqual(d["_id"], id) {
			return mustCopy(d), true
		}
	}
	return nil, false
}

func (c *Collection) Count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.docs)
}

// PeakCreates is the highest number of Create calls observed in flight at once.
func (c *Collection) PeakCreates() int64 {
	return atomic.LoadInt64(&c.peak)
}

func (c *Collection) Find(ctx context.Context, filter bson.M) (store.Cursor, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := normalize(filter)
	if err != nil {
		return nil, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	var matched []bson.M
	for _, d := range c.docs {
		ok, err := matches(d, f)
		if err != nil {
			return nil, err
		}
		if ok {
			matched = append(matched, mustCopy(d))
		}
	}
	return &cursor{docs: matched, pos: -1}, nil
}

func (c *Collection) Create(ctx context.Context, doc bson.M) (bson.M, error) {
	n := atomic.AddInt64(&c.inflight, 1)
	defer atomic.AddInt64(&c.inflight, -1)
	for {
		p := atomic.LoadInt64(&c.peak)
		if n <= p || atomic.CompareAndSwapInt64(&c.peak, p, n) {
			break
		}
	}

	if c.CreateDelay > 0 {
		select {
		case <-time.After(c.CreateDelay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if c.FailCreate != nil {
		if err := c.FailCreate(doc); err != nil {
			return nil, err
		}
	}

	stored, err := normalize(doc)
	if err != nil {
		return nil, err
	}
	if _, ok := stored["_id"]; !ok {
		stored["_id"] = primitive.NewObjectID()
	}
	now := primitive.NewDateTimeFromTime(c.now())
	stored["createdAt"] = now
	stored["updatedAt"] = now

	c.mu.Lock()
	c.docs = append(c.docs, stored)
	c.mu.Unlock()

	return mustCopy(stored), nil
}

func (c *Collection) Update(ctx context.Context, selector, patch bson.M) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if c.FailUpdate != nil {
		if err := c.FailUpdate(selector, patch); err != nil {
			return err
		}
	}
	sel, err := normalize(selector)
	if err != nil {
		return err
	}
	p, err := normalize(store.TouchPatch(patch, c.now()))
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for _, d := range c.docs {
		ok, err := matches(d, sel)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		if err := applyPatch(d, p); err != nil {
			return err
		}
	}
	return nil
}

func (c *Collection) Remove(ctx context.Context, selector bson.M) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if c.FailRemove != nil {
		if err := c.FailRemove(selector); err != nil {
			return err
		}
	}
	sel, err := normalize(selector)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	kept := c.docs[:0]
	for _, d := range c.docs {
		ok, err := matches(d, sel)
		if err != nil {
			return err
		}
		if !ok {
			kept = append(kept, d)
		}
	}
	c.docs = kept
	return nil
}

func (c *Collection) Aggregate(ctx context.Context, pipeline []bson.M) ([]bson.M, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if c.FailAggregate != nil {
		if err := c.FailAggregate(pipeline); err != nil {
			return nil, err
		}
	}

	stages := make([]bson.M, 0, len(pipeline))
	for _, s := range pipeline {
		n, err := normalize(s)
		if err != nil {
			return nil, err
		}
		stages = append(stages, n)
	}

	c.mu.RLock()
	docs := make([]bson.M, 0, len(c.docs))
	for _, d := range c.docs {
		docs = append(docs, mustCopy(d))
	}
	c.mu.RUnlock()

	return runPipeline(docs, stages)
}

type cursor struct {
	docs []bson.M
	pos  int
	err  error
}

func (c *cursor) Next(ctx context.Context) bool {
	if c.err != nil {
		return false
	}
	if err := ctx.Err(); err != nil {
		c.err = err
		return false
	}
	c.pos++
	return c.pos < len(c.docs)
}

func (c *cursor) Decode(val interface{}) error {
	if c.pos < 0 || c.pos >= len(c.docs) {
		return fmt.Errorf("memstore: decode outside of cursor range")
	}
	raw, err := bson.Marshal(c.docs[c.pos])
	if err != nil {
		return err
	}
	return bson.Unmarshal(raw, val)
}

func (c *cursor) Err() error { return c.err }

func (c *cursor) Close(context.Context) error { return nil }

// normalize round-trips v through BSON so every value has its driver-decoded type.
func normalize(v bson.M) (bson.M, error) {
	if v == nil {
		return bson.M{}, nil
	}
	raw, err := bson.Marshal(v)
	if err != nil {
		return nil, err
	}
	out := bson.M{}
	if err := bson.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func mustCopy(v bson.M) bson.M {
	out, err := normalize(v)
	if err != nil {
		panic(fmt.Sprintf("memstore: copy document: %v", err))
	}
	return out
}
