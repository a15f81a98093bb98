package chunkz

import (
	"errors"
	"fmt"
)

// Kind discriminates the origin of a Chunker failure.
type Kind int

const (
	// KindSource marks a failure produced by the wrapped source.
	KindSource Kind = iota

	// KindTimer marks a failure of the deadline timer mechanism.
	KindTimer
)

// String returns the kind's name for error messages and logs.
func (k Kind) String() string {
	switch k {
	case KindSource:
		return "source"
	case KindTimer:
		return "timer"
	default:
		return "unknown"
	}
}

// ChunkError is a terminal Chunker failure tagged with its origin, so
// callers can tell a failing source from a failing deadline timer.
// When a failure interrupts a non-empty batch, the batch is delivered
// first and the ChunkError follows on the next advance.
type ChunkError struct {
	// Err is the underlying failure.
	Err error

	// Kind identifies which collaborator failed.
	Kind Kind
}

// Error implements the error interface.
func (e *ChunkError) Error() string {
	return fmt.Sprintf("chunkz: %s error: %v", e.Kind, e.Err)
}

// Unwrap returns the underlying error, enabling error wrapping chains.
func (e *ChunkError) Unwrap() error {
	return e.Err
}

// IsSourceError reports whether err is a Chunker failure caused by the
// wrapped source.
func IsSourceError(err error) bool {
	var ce *ChunkError
	return errors.As(err, &ce) && ce.Kind == KindSource
}

// IsTimerError reports whether err is a Chunker failure caused by the
// deadline timer mechanism.
func IsTimerError(err error) bool {
	var ce *ChunkError
	return errors.As(err, &ce) && ce.Kind == KindTimer
}
