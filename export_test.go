package obscured

// Obscurer is exported for testing
type Obscurer = obscurer

// NewObscurer creates a new obscurer instance for testing
func NewObscurer(options ...Option) *Obscurer {
	return newObscurer(options...)
}

// Obscure is exported for testing
func (x *Obscurer) Obscure(fieldName string, v any) any {
	return x.obscure(fieldName, v)
}

// StrictEqual is exported for testing
var StrictEqual = strictEqual
