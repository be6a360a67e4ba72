package store

import (
	"context"
	"fmt"
	"reflect"
)

type allDecoder interface {
	All(ctx context.Context, results interface{}) error
}

func decodeAll(ctx context.Context, cur Cursor, out interface{}) error {
	if all, ok := cur.(allDecoder); ok {
		return all.All(ctx, out)
	}

	rv := reflect.ValueOf(out)
	if rv.Kind() != reflect.Ptr || rv.Elem().Kind() != reflect.Slice {
		return fmt.Errorf("decode all: want pointer to slice, got %T", out)
	}
	slice := rv.Elem()
	slice.Set(slice.Slice(0, 0))
	for cur.Next(ctx) {
		elem := reflect.New(slice.Type().Elem())
		if err := cur.Decode(elem.Interface()); err != nil {
			return err
		}
		slice.Set(reflect.Append(slice, elem.Elem()))
	}
	return cur.Err()
}
