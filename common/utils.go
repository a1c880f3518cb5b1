package common

// Named is implemented by anything that carries a display name (volumes, profiles, materials).
type Named interface {
	Name() string
}

// Coalesce returns the first non-zero value from the provided values, or the zero value if all are zero.
//
// Parameters:
//   - values: a variadic list of values to check for non-zero status
//
// Returns:
//   - T: the first non-zero value from the input, or the zero value if all are zero
func Coalesce[T comparable](values ...T) T {
	var zero T
	for _, v := range values {
		if v != zero {
			return v
		}
	}
	return zero
}

// NameOr returns the name of n, or fallback when n is nil or unnamed.
// Typed nil pointers stored in the interface are treated as absent by the caller passing nil explicitly.
//
// Parameters:
//   - n: the named object, may be nil
//   - fallback: the placeholder used for absent references
//
// Returns:
//   - string: the display name
func NameOr(n Named, fallback string) string {
	if n == nil {
		return fallback
	}
	return Coalesce(n.Name(), fallback)
}
