// Package chunkz groups the values of an asynchronous sequence into
// bounded batches, emitting a batch when it reaches a configured
// capacity or when a configured wait elapses since the first value of
// the current batch arrived, whichever comes first.
//
// The core abstraction is the Chunker, a state machine wrapped around
// a Result channel. It can be consumed as a pull stream via Next or
// driven as a channel pipeline via Process. Either way it guarantees
// that batches preserve arrival order, that a batch is never split
// across calls, and that data buffered before a failure is delivered
// before the failure itself.
//
// Basic usage:
//
//	ctx := context.Background()
//	source := make(chan chunkz.Result[Event])
//
//	chunker := chunkz.NewChunker(source, chunkz.Config{
//		Capacity: 100,
//		MaxWait:  250 * time.Millisecond,
//	}, chunkz.RealClock)
//
//	for result := range chunker.Process(ctx) {
//		if result.IsError() {
//			log.Printf("stream failed: %v", result.Error())
//			continue
//		}
//		bulkInsert(result.Value())
//	}
//
// Failures are tagged: a ChunkError distinguishes a failing source
// from a failing deadline timer, so callers can tell whether the data
// path or the time path broke.
package chunkz

import "time"

// Config configures a Chunker. Both fields are fixed for the lifetime
// of the Chunker they construct.
type Config struct {
	// MaxWait is the longest a batch may wait before being emitted,
	// measured from the arrival of the batch's first item. The
	// deadline is not refreshed by later items. A MaxWait of zero or
	// less disables the deadline entirely; batches are then emitted
	// only on capacity or end of sequence.
	MaxWait time.Duration

	// Capacity is the batch size that triggers an immediate flush. It
	// is also the reserved capacity of every buffer the Chunker
	// allocates. Must be positive; NewChunker panics otherwise.
	Capacity int
}
