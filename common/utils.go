// Package common holds the small value types and helpers shared across the engine packages:
// input codes and generic utilities.
package common

// Coalesce returns the first non-zero value from the provided values, or the zero value if all are
// zero. It is used to fill config fields left empty by a partial config file.
//
// Parameters:
//   - values: a variadic list of candidates, in priority order
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
