package utils

// Ptr returns a pointer to the provided value v.
// Useful for pointing at literals or temporary values.
func Ptr[T any](v T) *T {
	return &v
}
