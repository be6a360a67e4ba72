package memstore

import (
	"fmt"
	"reflect"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func matches(doc, filter bson.M) (bool, error) {
	for key, cond := range filter {
		switch key {
		case "$and", "$or":
			clauses, ok := cond.(primitive.A)
			if !ok {
				return false, fmt.Errorf("memstore: %s wants an array", key)
			}
			hit := false
			for _, c := range clauses {
				sub, ok := c.(bson.M)
				if !ok {
					return false, fmt.Errorf("memstore: %s clause must be a document", key)
				}
				ok, err := matches(doc, sub)
				if err != nil {
					return false, err
				}
				if key == "$and" && !ok {
					return false, nil
				}
				hit = hit || ok
			}
			if key == "$or" && !hit {
				return false, nil
			}
			continue
		}

		val, found := lookup(doc, key)
		ok, err := matchCond(val, found, cond)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

func matchCond(val interface{}, found bool, cond interface{}) (bool, error) {
	ops, isOps := cond.(bson.M)
	if isOps && len(ops) > 0 && allOperators(ops) {
		for op, arg := range ops {
			ok, err := matchOp(val, found, op, arg)
			if err != nil || !ok {
				return false, err
			}
		}
		return true, nil
	}
	return found && equalOrContains(val, cond), nil
}

func matchOp(val interface{}, found bool, op string, arg interface{}) (bool, error) {
	switch op {
	case "$eq":
		return found && equalOrContains(val, arg), nil
	case "$ne":
		return !found || !equalOrContains(val, arg), nil
	case "$exists":
		want, _ := arg.(bool)
		return found == want, nil
	case "$in", "$nin":
		list, ok := arg.(primitive.A)
		if !ok {
			return false, fmt.Errorf("memstore: %s wants an array", op)
		}
		in := false
		if found {
			for _, candidate := range list {
				if equalOrContains(val, candidate) {
					in = true
					break
				}
			}
		}
		if op == "$in" {
			return in, nil
		}
		return !in, nil
	}
	return false, fmt.Errorf("memstore: unsupported query operator %s", op)
}

func allOperators(m bson.M) bool {
	for k := range m {
		if !strings.HasPrefix(k, "$") {
			return false
		}
	}
	return true
}

// equalOrContains follows MongoDB: an array field matches a scalar it contains.
func equalOrContains(val, want interface{}) bool {
	if valuesEqual(val, want) {
		return true
	}
	if arr, ok := val.(primitive.A); ok {
		for _, el := range arr {
			if valuesEqual(el, want) {
				return true
			}
		}
	}
	return false
}

func valuesEqual(a, b interface{}) bool {
	if fa, ok := toFloat(a); ok {
		fb, ok := toFloat(b)
		return ok && fa == fb
	}
	switch av := a.(type) {
	case primitive.ObjectID:
		bv, ok := b.(primitive.ObjectID)
		return ok && av == bv
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case nil:
		return b == nil
	}
	return reflect.DeepEqual(a, b)
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

func lookup(doc bson.M, path string) (interface{}, bool) {
	var cur interface{} = doc
	for _, part := range strings.Split(path, ".") {
		m, ok := asMap(cur)
		if !ok {
			return nil, false
		}
		cur, ok = m[part]
		if !ok {
			return nil, false
		}
	}
	return cur, true
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

func applyPatch(doc, patch bson.M) error {
	for op, arg := range patch {
		fields, ok := arg.(bson.M)
		if !ok {
			return fmt.Errorf("memstore: %s wants a document", op)
		}
		switch op {
		case "$set":
			for path, v := range fields {
				setPath(doc, path, v)
			}
		case "$unset":
			for path := range fields {
				unsetPath(doc, path)
			}
		default:
			return fmt.Errorf("memstore: unsupported update operator %s", op)
		}
	}
	return nil
}

func setPath(doc bson.M, path string, v interface{}) {
	parts := strings.Split(path, ".")
	cur := doc
	for _, part := range parts[:len(parts)-1] {
		next, ok := asMap(cur[part])
		if !ok {
			next = bson.M{}
		}
		cur[part] = next
		cur = next
	}
	cur[parts[len(parts)-1]] = v
}

func unsetPath(doc bson.M, path string) {
	parts := strings.Split(path, ".")
	cur := doc
	for _, part := range parts[:len(parts)-1] {
		next, ok := asMap(cur[part])
		if !ok {
			return
		}
		cur = next
	}
	delete(cur, parts[len(parts)-1])
}
