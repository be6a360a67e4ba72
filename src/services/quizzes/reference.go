package quizzes

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const referenceField = "data.quizId"

// quizReference returns the quiz a document points at through data.quizId.
func quizReference(doc bson.M) (interface{}, bool) {
	data, ok := asMap(doc["data"])
	if !ok {
		return nil, false
	}
	switch ref := data["quizId"].(type) {
	case nil:
		return nil, false
	case string:
		return ref, ref != ""
	case primitive.ObjectID:
		return ref, !ref.IsZero()
	default:
		return ref, true
	}
}

// idString is the key form of an id in the mapping table.
func idString(v interface{}) string {
	switch id := v.(type) {
	case primitive.ObjectID:
		return id.Hex()
	case string:
		return id
	case fmt.Stringer:
		return id.String()
	}
	return fmt.Sprint(v)
}

// resolvedReference renders target the way original was stored.
func resolvedReference(original interface{}, target string) interface{} {
	if _, ok := original.(primitive.ObjectID); ok {
		if oid, err := primitive.ObjectIDFromHex(target); err == nil {
			return oid
		}
	}
	return target
}

func idSelector(id string) bson.M {
	if oid, err := primitive.ObjectIDFromHex(id); err == nil {
		return bson.M{"_id": oid}
	}
	return bson.M{"_id": id}
}

func asMap(v interface{}) (bson.M, bool) {
	switch m := v.(type) {
	case bson.M:
		return m, true
	case map[string]interface{}:
		return bson.M(m), true
	case bson.D:
		return m.Map(), true
	}
	return nil, false
}
