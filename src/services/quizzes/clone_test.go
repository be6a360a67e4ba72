package quizzes

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"Quiznator-Backend/src/models"
)

func TestCloneCopiesEveryMatchedQuiz(t *testing.T) {
	f := newFixture(t)
	ownerA := primitive.NewObjectID()
	ownerB := primitive.NewObjectID()

	var sources []primitive.ObjectID
	for i := 0; i < 5; i++ {
		sources = append(sources, f.seedQuiz(t, bson.M{
			"type":      string(models.Essay),
			"title":     fmt.Sprintf("essay %d", i),
			"data":      bson.M{"description": "write", "minWords": i * 10},
			"userId":    ownerA,
			"tags":      []string{"week1", "essays"},
			"createdAt": time.Now().Add(-time.Hour),
			"updatedAt": time.Now().Add(-time.Hour),
		}))
	}
	f.seedQuiz(t, bson.M{"type": string(models.Open), "title": "other", "data": bson.M{}, "userId": ownerA, "tags": []string{"week2"}})

	query, err := BuildCloneQuery(nil, []string{"Week1"})
	require.NoError(t, err)

	result, err := f.svc.Clone(context.Background(), query, bson.M{"userId": ownerB})
	require.NoError(t, err)

	assert.Len(t, result.Mapping, len(sources))
	assert.Empty(t, result.PendingReferences)
	assert.NotEmpty(t, result.BatchID)
	assert.Equal(t, 6+len(sources), f.quizzes.Count())

	for _, src := range sources {
		cloneHex, ok := result.Mapping[src.Hex()]
		require.True(t, ok, "source %s not cloned", src.Hex())
		assert.NotEqual(t, src.Hex(), cloneHex)

		source := f.quiz(t, src)
		clone := f.quiz(t, cloneHex)

		want := withoutIdentity(source)
		want["userId"] = ownerB
		assert.Equal(t, want, withoutIdentity(clone))
		assert.NotEqual(t, source["createdAt"], clone["createdAt"])
	}
}

func TestCloneRewritesSameBatchReferencesOnly(t *testing.T) {
	f := newFixture(t)
	owner := primitive.NewObjectID()

	quiz1 := f.seedQuiz(t, bson.M{"type": string(models.Essay), "title": "source essay", "data": bson.M{}, "userId": owner})
	quiz2 := f.seedQuiz(t, bson.M{"type": string(models.PeerReview), "title": "review essay", "data": bson.M{"quizId": quiz1.Hex()}, "userId": owner})
	quiz3 := f.seedQuiz(t, bson.M{"type": string(models.PeerReview), "title": "review external", "data": bson.M{"quizId": "99"}, "userId": owner})

	query, err := BuildCloneQuery([]string{quiz1.Hex(), quiz2.Hex(), quiz3.Hex()}, nil)
	require.NoError(t, err)

	result, err := f.svc.Clone(context.Background(), query, nil)
	require.NoError(t, err)

	require.Len(t, result.Mapping, 3)
	assert.Len(t, result.PendingReferences, 2)

	clone1 := result.Mapping[quiz1.Hex()]
	clone2 := f.quiz(t, result.Mapping[quiz2.Hex()])
	clone3 := f.quiz(t, result.Mapping[quiz3.Hex()])

	assert.Equal(t, clone1, dataOf(t, clone2)["quizId"])
	assert.Equal(t, "99", dataOf(t, clone3)["quizId"])

	// the sources are untouched
	assert.Equal(t, quiz1.Hex(), dataOf(t, f.quiz(t, quiz2))["quizId"])

	var batch models.CloneBatch
	docs := f.batches.Docs()
	require.Len(t, docs, 1)
	raw, err := bson.Marshal(docs[0])
	require.NoError(t, err)
	require.NoError(t, bson.Unmarshal(raw, &batch))
	assert.Equal(t, result.BatchID, batch.BatchID)
	assert.Equal(t, models.BatchCompleted, batch.State)
}

func TestCloneKeepsObjectIDReferenceType(t *testing.T) {
	f := newFixture(t)

	target := f.seedQuiz(t, bson.M{"type": string(models.Essay), "title": "target", "data": bson.M{}})
	referer := f.seedQuiz(t, bson.M{"type": string(models.PeerReview), "title": "referer", "data": bson.M{"quizId": target}})

	query, err := BuildCloneQuery([]string{target.Hex(), referer.Hex()}, nil)
	require.NoError(t, err)

	result, err := f.svc.Clone(context.Background(), query, nil)
	require.NoError(t, err)

	ref := dataOf(t, f.quiz(t, result.Mapping[referer.Hex()]))["quizId"]
	oid, ok := ref.(primitive.ObjectID)
	require.True(t, ok, "reference should stay an ObjectID, got %T", ref)
	assert.Equal(t, result.Mapping[target.Hex()], oid.Hex())
}

func TestCloneBoundsConcurrentCreates(t *testing.T) {
	cases := []struct {
		name   string
		opts   []Option
		expect int64
	}{
		{name: "default fan-out", expect: DefaultFanOut},
		{name: "custom fan-out", opts: []Option{WithFanOut(3)}, expect: 3},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t, tc.opts...)
			f.quizzes.CreateDelay = 5 * time.Millisecond
			for i := 0; i < 60; i++ {
				f.seedQuiz(t, bson.M{"type": string(models.Open), "title": fmt.Sprintf("open %d", i), "data": bson.M{}, "tags": []string{"bulk"}})
			}

			result, err := f.svc.Clone(context.Background(), WhereTags([]string{"bulk"}), nil)
			require.NoError(t, err)

			assert.Len(t, result.Mapping, 60)
			assert.LessOrEqual(t, f.quizzes.PeakCreates(), tc.expect)
			assert.Greater(t, f.quizzes.PeakCreates(), int64(1))
		})
	}
}

func TestCloneFailsFastAndDiscardsPartialClones(t *testing.T) {
	f := newFixture(t)
	for i := 0; i < 30; i++ {
		f.seedQuiz(t, bson.M{"type": string(models.Open), "title": fmt.Sprintf("quiz %d", i), "data": bson.M{}, "tags": []string{"bulk"}})
	}
	boom := errors.New("disk full")
	f.quizzes.FailCreate = func(doc bson.M) error {
		if doc["title"] == "quiz 7" {
			return boom
		}
		return nil
	}

	result, err := f.svc.Clone(context.Background(), WhereTags([]string{"bulk"}), bson.M{"userId": primitive.NewObjectID()})

	require.Error(t, err)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, models.ErrStoreFailure)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 30, f.quizzes.Count(), "partial clones must be removed")
	assert.Zero(t, f.batches.Count())
}

func TestCloneEmptySelection(t *testing.T) {
	f := newFixture(t)
	f.seedQuiz(t, bson.M{"type": string(models.Open), "title": "kept", "data": bson.M{}, "tags": []string{"a"}})

	result, err := f.svc.Clone(context.Background(), WhereTags([]string{"missing"}), nil)

	require.NoError(t, err)
	assert.Empty(t, result.Mapping)
	assert.Empty(t, result.PendingReferences)
	assert.Equal(t, 1, f.quizzes.Count())
}

func TestCloneHonorsCancellation(t *testing.T) {
	f := newFixture(t)
	f.seedQuiz(t, bson.M{"type": string(models.Open), "title": "quiz", "data": bson.M{}})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.svc.Clone(ctx, bson.M{}, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, f.quizzes.Count())
}

func TestCloneDocumentStripsIdentity(t *testing.T) {
	id := primitive.NewObjectID()
	source := bson.M{
		"_id":       id,
		"createdAt": time.Now(),
		"updatedAt": time.Now(),
		"title":     "keep me",
		"userId":    "old-owner",
	}

	clone := cloneDocument(source, bson.M{"userId": "new-owner", "_id": primitive.NewObjectID()})

	assert.Equal(t, bson.M{"title": "keep me", "userId": "new-owner"}, clone)
	assert.Equal(t, id, source["_id"], "source must not be modified")
}

func TestBuildCloneQuery(t *testing.T) {
	id := primitive.NewObjectID()

	_, err := BuildCloneQuery(nil, nil)
	assert.ErrorIs(t, err, models.ErrInvalidRequest)

	_, err = BuildCloneQuery([]string{"not-an-id"}, nil)
	assert.ErrorIs(t, err, models.ErrInvalidRequest)

	q, err := BuildCloneQuery([]string{id.Hex()}, nil)
	require.NoError(t, err)
	assert.Equal(t, bson.M{"_id": bson.M{"$in": []primitive.ObjectID{id}}}, q)

	q, err = BuildCloneQuery([]string{id.Hex()}, []string{"Week1"})
	require.NoError(t, err)
	assert.Equal(t, bson.M{"$or": []bson.M{
		{"_id": bson.M{"$in": []primitive.ObjectID{id}}},
		{"tags": bson.M{"$in": []string{"week1"}}},
	}}, q)
}
