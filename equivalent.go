package obscured

import (
	"math/big"
	"reflect"
	"runtime"
)

// IsEquivalent reports whether a and b hold the same payload without exposing either one. It returns false if either container is not registered. Payloads are compared strictly: the dynamic types must match, *big.Int values compare by value, maps and slices must share the same backing storage, and other values use ==. Values that are not comparable at run time are never equivalent. IsEquivalent never panics.
func IsEquivalent[A, B any](a *Obscured[A], b *Obscured[B]) bool {
	va, okA := registry.lookup(a.key())
	vb, okB := registry.lookup(b.key())
	runtime.KeepAlive(a)
	runtime.KeepAlive(b)
	if !okA || !okB {
		return false
	}
	return strictEqual(va, vb)
}

func strictEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	ra, rb := reflect.ValueOf(a), reflect.ValueOf(b)
	if ra.Type() != rb.Type() {
		return false
	}

	if x, ok := a.(*big.Int); ok {
		y := b.(*big.Int)
		if x == nil || y == nil {
			return x == y
		}
		return x.Cmp(y) == 0
	}

	switch ra.Kind() {
	case reflect.Map:
		return ra.Pointer() == rb.Pointer()
	case reflect.Slice:
		return ra.Pointer() == rb.Pointer() && ra.Len() == rb.Len() && ra.Cap() == rb.Cap()
	case reflect.Func:
		return ra.IsNil() && rb.IsNil()
	}

	if !ra.Comparable() || !rb.Comparable() {
		return false
	}
	return a == b
}
