package quizzes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestNormalizeTags(t *testing.T) {
	cases := []struct {
		in   []string
		want []string
	}{
		{in: nil, want: []string{}},
		{in: []string{"Go"}, want: []string{"go"}},
		{in: []string{"A", "a", "B", "A"}, want: []string{"a", "b"}},
		{in: []string{"week1", "Week1", "WEEK1"}, want: []string{"week1"}},
		{in: []string{"ÄÖ", "äö"}, want: []string{"äö"}},
	}
	for _, tc := range cases {
		got := NormalizeTags(tc.in)
		assert.Equal(t, tc.want, got, "input %v", tc.in)
		assert.Equal(t, got, NormalizeTags(got), "normalizing twice changes %v", tc.in)
	}
}

func TestNormalizeDocAndPatchTags(t *testing.T) {
	doc := bson.M{"tags": primitive.A{"X", "x", 3, "Y"}}
	normalizeDocTags(doc)
	assert.Equal(t, []string{"x", "y"}, doc["tags"])

	untagged := bson.M{"title": "t"}
	normalizeDocTags(untagged)
	assert.NotContains(t, untagged, "tags")

	patch := bson.M{"$set": bson.M{"tags": []interface{}{"Q", "q"}}}
	normalizePatchTags(patch)
	assert.Equal(t, bson.M{"$set": bson.M{"tags": []string{"q"}}}, patch)
}

func TestNormalizePatchTagsOnEveryWriteOperator(t *testing.T) {
	plainSet := bson.M{"$set": map[string]interface{}{"tags": []string{"Week1", "week1"}}}
	normalizePatchTags(plainSet)
	assert.Equal(t, []string{"week1"}, plainSet["$set"].(bson.M)["tags"])

	docSet := bson.M{"$set": bson.D{{Key: "tags", Value: primitive.A{"B", "A"}}}}
	normalizePatchTags(docSet)
	assert.Equal(t, bson.M{"$set": bson.M{"tags": []string{"b", "a"}}}, docSet)

	single := bson.M{"$addToSet": bson.M{"tags": "Hard"}}
	normalizePatchTags(single)
	assert.Equal(t, bson.M{"$addToSet": bson.M{"tags": bson.M{"$each": []string{"hard"}}}}, single)

	pushed := bson.M{
		"$push":     bson.M{"tags": bson.M{"$each": primitive.A{"X", "x", "Y"}}, "log": "edited"},
		"$addToSet": bson.M{"tags": "Z"},
	}
	normalizePatchTags(pushed)
	assert.Equal(t, bson.M{
		"$push":     bson.M{"log": "edited"},
		"$addToSet": bson.M{"tags": bson.M{"$each": []string{"z", "x", "y"}}},
	}, pushed)

	untouched := bson.M{"$inc": bson.M{"version": 1}}
	normalizePatchTags(untouched)
	assert.Equal(t, bson.M{"$inc": bson.M{"version": 1}}, untouched)
}
