package chunkz

// Result represents either a successful value or an error flowing
// through a stream. Sources feed a Chunker with Result[T]; the Chunker
// emits Result[[]T]. Using one carrier for both cases keeps a stream
// on a single channel instead of a dual-channel pattern.
type Result[T any] struct {
	value T
	err   error
}

// NewSuccess creates a Result containing a successful value.
func NewSuccess[T any](value T) Result[T] {
	return Result[T]{value: value}
}

// NewError creates a Result containing an error.
func NewError[T any](err error) Result[T] {
	return Result[T]{err: err}
}

// IsError returns true if this Result contains an error.
func (r Result[T]) IsError() bool {
	return r.err != nil
}

// IsSuccess returns true if this Result contains a successful value.
func (r Result[T]) IsSuccess() bool {
	return r.err == nil
}

// Value returns the successful value.
// Panics if called on a Result containing an error - always check IsSuccess() first.
func (r Result[T]) Value() T {
	if r.err != nil {
		panic("called Value() on Result containing an error")
	}
	return r.value
}

// Error returns the error, or nil if this Result contains a successful value.
func (r Result[T]) Error() error {
	return r.err
}

// ValueOr returns the successful value if present, otherwise returns the fallback.
func (r Result[T]) ValueOr(fallback T) T {
	if r.err != nil {
		return fallback
	}
	return r.value
}
