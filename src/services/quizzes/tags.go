package quizzes

import (
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NormalizeTags lower-cases tags and drops repeats, keeping the first occurrence.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		lower := strings.ToLower(tag)
		if _, dup := seen[lower]; dup {
			continue
		}
		seen[lower] = struct{}{}
		out = append(out, lower)
	}
	return out
}

// WhereTags matches quizzes carrying any of tags.
func WhereTags(tags []string) bson.M {
	return bson.M{"tags": bson.M{"$in": NormalizeTags(tags)}}
}

func normalizeDocTags(doc bson.M) {
	if raw, ok := doc["tags"]; ok {
		doc["tags"] = NormalizeTags(toStrings(raw))
	}
}

func normalizePatchTags(patch bson.M) {
	if set, ok := asMap(patch["$set"]); ok {
		if raw, ok := set["tags"]; ok {
			set["tags"] = NormalizeTags(toStrings(raw))
			patch["$set"] = set
		}
	}

	// tags added one by one always go through $addToSet, $push could store a duplicate
	var added []string
	touched := false
	for _, op := range []string{"$addToSet", "$push"} {
		fields, ok := asMap(patch[op])
		if !ok {
			continue
		}
		raw, ok := fields["tags"]
		if !ok {
			continue
		}
		touched = true
		added = append(added, addedTags(raw)...)
		delete(fields, "tags")
		if len(fields) == 0 {
			delete(patch, op)
		} else {
			patch[op] = fields
		}
	}
	if !touched {
		return
	}
	addToSet, ok := asMap(patch["$addToSet"])
	if !ok {
		addToSet = bson.M{}
	}
	addToSet["tags"] = bson.M{"$each": NormalizeTags(added)}
	patch["$addToSet"] = addToSet
}

func addedTags(raw interface{}) []string {
	if s, ok := raw.(string); ok {
		return []string{s}
	}
	if m, ok := asMap(raw); ok {
		return toStrings(m["$each"])
	}
	return nil
}

func toStrings(raw interface{}) []string {
	var list []interface{}
	switch v := raw.(type) {
	case []string:
		return v
	case primitive.A:
		list = v
	case []interface{}:
		list = v
	default:
		return nil
	}
	out := make([]string, 0, len(list))
	for _, el := range list {
		if s, ok := el.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
