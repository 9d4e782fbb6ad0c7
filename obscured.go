// Package obscured provides an opaque container for sensitive values such as credentials and tokens. A container renders as a fixed placeholder through fmt, encoding/json, encoding/text and log/slog, and the wrapped value can be retrieved only by calling Value or ValueOf.
//
// The container does not hold its payload. Payloads live in a process-wide registry keyed by the container's identity, and an entry is released once its container is garbage collected or passed to Dispose. A payload that references its own container keeps that container reachable and is never released unless disposed.
//
// This is a guard against accidental exposure in logs and serialized output. It is not encryption and does not stop code that holds a container from reading the value.
package obscured

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/big"
	"reflect"
	"runtime"
	"sync"
	"weak"

	"golang.org/x/exp/constraints"
)

const (
	// Placeholder is the only text a container ever renders as.
	Placeholder = "[OBSCURED]"
)

var (
	// ErrInvalidPayloadKind is returned by Make when the payload is not a primitive value. Use ObscureKeys or ObscureFields to obscure structured values.
	ErrInvalidPayloadKind = errors.New("cannot obscure non-primitive values; use ObscureKeys")

	placeholderJSON = []byte(`"` + Placeholder + `"`)

	bigIntPtrType = reflect.TypeOf((*big.Int)(nil))
)

// Obscured is an opaque handle for a value of type T. It has no field through which the value can be seen; the value is stored in the registry under the handle's identity. Obtain one with Make, MustMake, Of, ObscureKeys or ObscureFields. A handle built any other way is not registered and is treated as foreign by every function in this package.
type Obscured[T any] struct {
	// keeps every handle a distinct allocation with a stable identity
	_ *T
	// handles must not be copied by value
	_ [0]sync.Mutex
}

// Primitive is the set of types accepted by Of.
type Primitive interface {
	constraints.Integer | constraints.Float | constraints.Complex | ~string | ~bool
}

// container is implemented by every *Obscured[T].
type container interface {
	key() any
}

func (x *Obscured[T]) key() any {
	return weak.Make(x)
}

// Make wraps v in a new container. v must be a boolean, number, string (including named types over those), nil, or *big.Int. Any other payload fails with ErrInvalidPayloadKind.
func Make[T any](v T) (*Obscured[T], error) {
	if kind, ok := primitiveKind(v); !ok {
		registry.rejected.Add(1)
		return nil, fmt.Errorf("%w (got %s)", ErrInvalidPayloadKind, kind)
	}
	return register(v), nil
}

// MustMake is like Make but panics if v is not a primitive value.
func MustMake[T any](v T) *Obscured[T] {
	c, err := Make(v)
	if err != nil {
		panic("obscured: " + err.Error())
	}
	return c
}

// Of wraps a primitive value. The payload kind is checked at compile time, so Of never fails.
func Of[T Primitive](v T) *Obscured[T] {
	return register(v)
}

// Value returns the payload of v if v is a registered container. For any other input, including nil, foreign or disposed containers, it returns nil and false. It never panics.
func Value(v any) (any, bool) {
	c, ok := v.(container)
	if !ok {
		return nil, false
	}
	p, ok := registry.lookup(c.key())
	// the key is weak; v must outlive the lookup or its cleanup may remove the entry first
	runtime.KeepAlive(v)
	return p, ok
}

// ValueOf is the typed form of Value.
func ValueOf[T any](c *Obscured[T]) (T, bool) {
	var zero T
	v, ok := registry.lookup(c.key())
	runtime.KeepAlive(c)
	if !ok {
		return zero, false
	}
	if v == nil {
		return zero, true
	}
	t, ok := v.(T)
	return t, ok
}

// IsObscured reports whether v is a registered container. A plain struct, a zero Obscured value made outside this package, or a disposed container are all reported as false.
func IsObscured(v any) bool {
	c, ok := v.(container)
	if !ok {
		return false
	}
	_, ok = registry.lookup(c.key())
	runtime.KeepAlive(v)
	return ok
}

// Dispose removes the payload of c from the registry. After Dispose, c is treated as a foreign container. Calling it again or with nil is a no-op.
func Dispose[T any](c *Obscured[T]) {
	registry.dispose(c.key())
	runtime.KeepAlive(c)
}

// String implements fmt.Stringer.
func (x *Obscured[T]) String() string {
	return Placeholder
}

// GoString implements fmt.GoStringer.
func (x *Obscured[T]) GoString() string {
	return Placeholder
}

// Format implements fmt.Formatter so that every verb and flag, including %#v, %x and %d, prints the placeholder.
func (x *Obscured[T]) Format(s fmt.State, verb rune) {
	_, _ = io.WriteString(s, Placeholder)
}

// MarshalJSON implements json.Marshaler.
func (x *Obscured[T]) MarshalJSON() ([]byte, error) {
	return append([]byte(nil), placeholderJSON...), nil
}

// MarshalText implements encoding.TextMarshaler. It also makes a container usable as a JSON map key.
func (x *Obscured[T]) MarshalText() ([]byte, error) {
	return []byte(Placeholder), nil
}

// LogValue implements slog.LogValuer.
func (x *Obscured[T]) LogValue() slog.Value {
	return slog.StringValue(Placeholder)
}

var (
	_ fmt.Stringer   = (*Obscured[string])(nil)
	_ fmt.GoStringer = (*Obscured[string])(nil)
	_ fmt.Formatter  = (*Obscured[string])(nil)
	_ json.Marshaler = (*Obscured[string])(nil)
	_ slog.LogValuer = (*Obscured[string])(nil)
)

func primitiveKind(v any) (reflect.Kind, bool) {
	if v == nil {
		return reflect.Invalid, true
	}

	t := reflect.TypeOf(v)
	switch t.Kind() {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64,
		reflect.Complex64, reflect.Complex128:
		return t.Kind(), true
	}
	if t == bigIntPtrType {
		return t.Kind(), true
	}

	return t.Kind(), false
}
