package memstore

import (
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func runPipeline(docs []bson.M, stages []bson.M) ([]bson.M, error) {
	var err error
	for _, stage := range stages {
		if len(stage) != 1 {
			return nil, fmt.Errorf("memstore: a stage holds exactly one operator, got %d", len(stage))
		}
		for op, arg := range stage {
			switch op {
			case "$match":
				docs, err = matchStage(docs, arg)
			case "$unwind":
				docs, err = unwindStage(docs, arg)
			case "$group":
				docs, err = groupStage(docs, arg)
			case "$limit":
				docs, err = limitStage(docs, arg)
			default:
				err = fmt.Errorf("memstore: unsupported stage %s", op)
			}
		}
		if err != nil {
			return nil, err
		}
	}
	if docs == nil {
		docs = []bson.M{}
	}
	return docs, nil
}

func matchStage(docs []bson.M, arg interface{}) ([]bson.M, error) {
	filter, ok := arg.(bson.M)
	if !ok {
		return nil, fmt.Errorf("memstore: $match wants a document")
	}
	var out []bson.M
	for _, d := range docs {
		ok, err := matches(d, filter)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, d)
		}
	}
	return out, nil
}

func unwindStage(docs []bson.M, arg interface{}) ([]bson.M, error) {
	path, ok := arg.(string)
	if !ok {
		def, isDoc := arg.(bson.M)
		if !isDoc {
			return nil, fmt.Errorf("memstore: $unwind wants a field path")
		}
		path, _ = def["path"].(string)
	}
	field, ok := fieldRef(path)
	if !ok {
		return nil, fmt.Errorf("memstore: $unwind path must start with $")
	}

	var out []bson.M
	for _, d := range docs {
		val, found := lookup(d, field)
		if !found || val == nil {
			continue
		}
		arr, isArr := val.(primitive.A)
		if !isArr {
			out = append(out, d)
			continue
		}
		for _, el := range arr {
			cp := mustCopy(d)
			setPath(cp, field, el)
			out = append(out, cp)
		}
	}
	return out, nil
}

type group struct {
	id   interface{}
	accs bson.M
}

func groupStage(docs []bson.M, arg interface{}) ([]bson.M, error) {
	def, ok := arg.(bson.M)
	if !ok {
		return nil, fmt.Errorf("memstore: $group wants a document")
	}
	idExpr, ok := def["_id"]
	if !ok {
		return nil, fmt.Errorf("memstore: $group requires _id")
	}

	var order []string
	groups := map[string]*group{}
	for _, d := range docs {
		id := evalExpr(d, idExpr)
		key := groupKey(id)
		g, seen := groups[key]
		if !seen {
			g = &group{id: id, accs: bson.M{}}
			groups[key] = g
			order = append(order, key)
		}
		for name, acc := range def {
			if name == "_id" {
				continue
			}
			if err := accumulate(g, name, acc, d); err != nil {
				return nil, err
			}
		}
	}

	out := make([]bson.M, 0, len(order))
	for _, key := range order {
		g := groups[key]
		doc := bson.M{"_id": g.id}
		for k, v := range g.accs {
			doc[k] = v
		}
		out = append(out, doc)
	}
	return out, nil
}

func accumulate(g *group, name string, acc interface{}, d bson.M) error {
	def, ok := acc.(bson.M)
	if !ok || len(def) != 1 {
		return fmt.Errorf("memstore: accumulator %s must hold one operator", name)
	}
	for op, expr := range def {
		switch op {
		case "$sum":
			n, _ := toFloat(evalExpr(d, expr))
			prev, _ := g.accs[name].(int32)
			g.accs[name] = prev + int32(n)
		case "$first":
			if _, set := g.accs[name]; !set {
				g.accs[name] = evalExpr(d, expr)
			}
		case "$push":
			prev, _ := g.accs[name].(primitive.A)
			g.accs[name] = append(prev, evalExpr(d, expr))
		default:
			return fmt.Errorf("memstore: unsupported accumulator %s", op)
		}
	}
	return nil
}

func limitStage(docs []bson.M, arg interface{}) ([]bson.M, error) {
	n, ok := toFloat(arg)
	if !ok {
		return nil, fmt.Errorf("memstore: $limit wants a number")
	}
	if int(n) < len(docs) {
		docs = docs[:int(n)]
	}
	return docs, nil
}

func evalExpr(d bson.M, expr interface{}) interface{} {
	switch e := expr.(type) {
	case string:
		if field, ok := fieldRef(e); ok {
			v, _ := lookup(d, field)
			return v
		}
		return e
	case bson.M:
		out := bson.M{}
		for k, v := range e {
			out[k] = evalExpr(d, v)
		}
		return out
	}
	return expr
}

func fieldRef(s string) (string, bool) {
	if !strings.HasPrefix(s, "$") || len(s) < 2 {
		return "", false
	}
	return s[1:], true
}

func groupKey(v interface{}) string {
	switch id := v.(type) {
	case primitive.ObjectID:
		return "oid:" + id.Hex()
	case nil:
		return "null"
	}
	if f, ok := toFloat(v); ok {
		return fmt.Sprintf("num:%v", f)
	}
	return fmt.Sprintf("%T:%v", v, v)
}
