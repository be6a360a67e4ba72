package quizzes

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"Quiznator-Backend/src/store/memstore"
)

type fixture struct {
	quizzes     *memstore.Collection
	answers     *memstore.Collection
	peerReviews *memstore.Collection
	batches     *memstore.Collection
	svc         *Service
}

func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()
	f := &fixture{
		quizzes:     memstore.New(),
		answers:     memstore.New(),
		peerReviews: memstore.New(),
		batches:     memstore.New(),
	}
	opts = append([]Option{WithBatchJournal(f.batches)}, opts...)
	f.svc = NewService(f.quizzes, f.answers, f.peerReviews, opts...)
	return f
}

func (f *fixture) seedQuiz(t *testing.T, doc bson.M) primitive.ObjectID {
	t.Helper()
	ids := f.quizzes.Insert(doc)
	id, ok := ids[0].(primitive.ObjectID)
	require.True(t, ok)
	return id
}

func (f *fixture) quiz(t *testing.T, id interface{}) bson.M {
	t.Helper()
	if hex, ok := id.(string); ok {
		oid, err := primitive.ObjectIDFromHex(hex)
		require.NoError(t, err)
		id = oid
	}
	doc, ok := f.quizzes.Get(id)
	require.True(t, ok, "quiz %v not stored", id)
	return doc
}

func dataOf(t *testing.T, doc bson.M) bson.M {
	t.Helper()
	data, ok := asMap(doc["data"])
	require.True(t, ok, "document has no data payload")
	return data
}

func withoutIdentity(doc bson.M) bson.M {
	out := bson.M{}
	for k, v := range doc {
		out[k] = v
	}
	for _, f := range identityFields {
		delete(out, f)
	}
	return out
}
