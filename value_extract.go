package obscured

import (
	"reflect"
	"unsafe"
)

// extractValue returns the value held by v, including values reached through unexported struct fields. Unexported fields can be read only if v is addressable.
func extractValue(v reflect.Value) (any, bool) {
	if !v.IsValid() {
		return nil, false
	}

	if v.CanInterface() {
		return v.Interface(), true
	}

	if !v.CanAddr() {
		return nil, false
	}

	exposed := reflect.NewAt(v.Type(), unsafe.Pointer(v.UnsafeAddr())).Elem()
	if !exposed.CanInterface() {
		return nil, false
	}
	return exposed.Interface(), true
}
