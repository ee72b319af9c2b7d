package internal

// Pointer converts a literal to a pointer, which the `&` operator can't do
// directly. Handy for optional string arguments.
func Pointer[T any](v T) *T {
	return &v
}

// Dereference safely dereferences a pointer, returning the zero value when nil.
func Dereference[T any](p *T) T {
	if p == nil {
		return *new(T)
	}
	return *p
}
