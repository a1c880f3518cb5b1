package volume

// Parameter wraps an authored value together with its override flag.
//
// Override stacking across profiles happens outside this package; consumers only
// ever read the resolved Value. The flag is kept so authoring tools and tests can
// tell an explicitly set value from a default.
type Parameter[T any] struct {
	value      T
	overridden bool
}

// NewParameter creates a Parameter holding value.
//
// Parameters:
//   - value: the initial value
//   - overridden: whether the value is an explicit override
//
// Returns:
//   - Parameter[T]: the new parameter
func NewParameter[T any](value T, overridden bool) Parameter[T] {
	return Parameter[T]{value: value, overridden: overridden}
}

// Value returns the resolved value.
func (p Parameter[T]) Value() T {
	return p.value
}

// Overridden reports whether the value was explicitly overridden.
func (p Parameter[T]) Overridden() bool {
	return p.overridden
}

// Override sets the value and marks the parameter as overridden.
func (p *Parameter[T]) Override(value T) {
	p.value = value
	p.overridden = true
}

// Reset restores the value to def and clears the override flag.
func (p *Parameter[T]) Reset(def T) {
	p.value = def
	p.overridden = false
}
