package obscured

import (
	"context"
	"log/slog"
	"math/big"
	"reflect"
	"time"
)

type ctxKeyDepth struct{}

const (
	// DefaultTagKey is the struct tag key read by WithTag.
	DefaultTagKey = "obscured"

	maxDepth = 32
)

var (
	// ignoreTypes are struct types that are never walked into. Censors still apply to the value as a whole.
	ignoreTypes = map[reflect.Type]struct{}{
		reflect.TypeOf(time.Time{}):     {},
		reflect.TypeOf(time.Location{}): {},
		reflect.TypeOf(big.Int{}):       {},
		reflect.TypeOf(big.Float{}):     {},
		reflect.TypeOf(big.Rat{}):       {},
	}
)

type obscurer struct {
	censors      Censors
	tagCensors   tagCensors
	allowedTypes map[reflect.Type]struct{}
	tagKey       string
}

type Option func(x *obscurer)

func newObscurer(options ...Option) *obscurer {
	x := &obscurer{
		allowedTypes: map[reflect.Type]struct{}{},
		tagKey:       DefaultTagKey,
	}

	for _, opt := range options {
		opt(x)
	}

	return x
}

// New returns a function for slog.HandlerOptions.ReplaceAttr. Attribute values matched by the given options are wrapped in containers, so handlers print the placeholder instead of the value. Maps with string keys, structs, pointers to structs and slices are walked; when something inside them matches, they are replaced by a map[string]any (or []any) view in which only the matched entries are obscured. Values that already are containers are left as they are.
//
// The view of a struct holds its exported fields and only those unexported fields that were obscured. Other unexported fields are left out, as they are when a handler encodes the struct itself.
func New(options ...Option) func(groups []string, a slog.Attr) slog.Attr {
	x := newObscurer(options...)

	return func(groups []string, attr slog.Attr) slog.Attr {
		return slog.Any(attr.Key, x.obscure(attr.Key, attr.Value.Any()))
	}
}

func (x *obscurer) obscure(fieldName string, v any) any {
	if v == nil {
		return nil
	}
	walked, _ := x.walk(context.Background(), fieldName, reflect.ValueOf(v), "")
	return walked
}

func (x *obscurer) shouldObscure(fieldName string, v any, tag reflect.StructTag) bool {
	return x.censors.ShouldObscure(fieldName, v, tag.Get(x.tagKey)) || x.tagCensors.match(tag)
}

// walk returns either v itself and false, or a replacement for v and true.
func (x *obscurer) walk(ctx context.Context, fieldName string, src reflect.Value, tag reflect.StructTag) (any, bool) {
	for src.Kind() == reflect.Interface && !src.IsNil() {
		src = src.Elem()
	}
	if !src.IsValid() || (src.Kind() == reflect.Interface && src.IsNil()) {
		return nil, false
	}

	v := src.Interface()
	if _, ok := v.(container); ok {
		return v, false
	}
	if _, ok := x.allowedTypes[src.Type()]; ok {
		return v, false
	}

	depth, _ := ctx.Value(ctxKeyDepth{}).(int)
	if depth >= maxDepth {
		// too deep to inspect; hide the whole subtree
		return register(v), true
	}
	ctx = context.WithValue(ctx, ctxKeyDepth{}, depth+1)

	if x.shouldObscure(fieldName, v, tag) {
		return register(v), true
	}

	if _, ok := ignoreTypes[src.Type()]; ok {
		return v, false
	}

	switch src.Kind() {
	case reflect.Pointer:
		if src.IsNil() || src.Elem().Kind() != reflect.Struct {
			return v, false
		}
		if walked, changed := x.walk(ctx, fieldName, src.Elem(), tag); changed {
			return walked, true
		}
		return v, false

	case reflect.Map:
		if src.Type().Key().Kind() != reflect.String {
			return v, false
		}
		dst := make(map[string]any, src.Len())
		changed := false
		iter := src.MapRange()
		for iter.Next() {
			k := iter.Key().String()
			walked, ok := x.walk(ctx, k, iter.Value(), "")
			dst[k] = walked
			changed = changed || ok
		}
		if !changed {
			return v, false
		}
		return dst, true

	case reflect.Struct:
		return x.walkStruct(ctx, src)

	case reflect.Slice, reflect.Array:
		switch src.Type().Elem().Kind() {
		case reflect.Struct, reflect.Map, reflect.Pointer, reflect.Interface, reflect.Slice, reflect.Array:
		default:
			return v, false
		}
		dst := make([]any, src.Len())
		changed := false
		for i := range src.Len() {
			walked, ok := x.walk(ctx, fieldName, src.Index(i), "")
			dst[i] = walked
			changed = changed || ok
		}
		if !changed {
			return v, false
		}
		return dst, true
	}

	return v, false
}

func (x *obscurer) walkStruct(ctx context.Context, src reflect.Value) (any, bool) {
	t := src.Type()

	// unexported fields can only be read from an addressable copy
	addressable := reflect.New(t).Elem()
	addressable.Set(src)

	dst := make(map[string]any, t.NumField())
	changed := false
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		fieldValue := addressable.Field(i)

		if !f.IsExported() {
			extracted, ok := extractValue(fieldValue)
			if !ok {
				extracted = nil
			}
			if x.shouldObscure(f.Name, extracted, f.Tag) {
				dst[f.Name] = register(extracted)
				changed = true
			}
			continue
		}

		walked, ok := x.walk(ctx, f.Name, fieldValue, f.Tag)
		dst[f.Name] = walked
		changed = changed || ok
	}

	if !changed {
		return src.Interface(), false
	}
	return dst, true
}
