package obscured

import (
	"errors"
	"fmt"
	"reflect"
)

// ErrInvalidRecord is returned by ObscureFields when the record is neither a struct nor a map with string keys.
var ErrInvalidRecord = errors.New("record must be a struct or a map with string keys")

// ObscureKeys returns a shallow copy of record in which the value of every listed key is wrapped in a new container. Keys that are not in record are ignored, values of any kind are accepted, and record itself is never modified. A nil record yields an empty map.
func ObscureKeys[V any](record map[string]V, keys ...string) map[string]any {
	wanted := keySet(keys)

	dst := make(map[string]any, len(record))
	for k, v := range record {
		if _, ok := wanted[k]; ok {
			dst[k] = register(v)
			continue
		}
		dst[k] = v
	}
	return dst
}

// ObscureFields works like ObscureKeys for a struct, a pointer to a struct, or a map with string keys of any value type. A struct is copied into a map keyed by its exported field names; unexported fields are left out. Any other input fails with ErrInvalidRecord.
func ObscureFields(record any, fields ...string) (map[string]any, error) {
	wanted := keySet(fields)

	src := reflect.ValueOf(record)
	if src.Kind() == reflect.Pointer && !src.IsNil() {
		src = src.Elem()
	}

	switch src.Kind() {
	case reflect.Map:
		if src.Type().Key().Kind() != reflect.String {
			return nil, fmt.Errorf("%w (key type %s)", ErrInvalidRecord, src.Type().Key())
		}
		dst := make(map[string]any, src.Len())
		iter := src.MapRange()
		for iter.Next() {
			k := iter.Key().String()
			dst[k] = pickField(wanted, k, iter.Value())
		}
		return dst, nil

	case reflect.Struct:
		t := src.Type()
		dst := make(map[string]any, t.NumField())
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if !f.IsExported() {
				continue
			}
			dst[f.Name] = pickField(wanted, f.Name, src.Field(i))
		}
		return dst, nil
	}

	return nil, fmt.Errorf("%w (got %s)", ErrInvalidRecord, src.Kind())
}

func pickField(wanted map[string]struct{}, name string, v reflect.Value) any {
	if _, ok := wanted[name]; ok {
		return register(v.Interface())
	}
	return v.Interface()
}

func keySet(keys []string) map[string]struct{} {
	set := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		set[k] = struct{}{}
	}
	return set
}
