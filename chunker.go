package chunkz

import (
	"context"
	"errors"
	"io"
	"time"
)

// Chunker buffers values from a Result channel and releases them as
// batches, either when a batch reaches the configured capacity or when
// the configured wait elapses after the batch's first value arrived,
// whichever comes first. This is useful for optimizing downstream
// operations that work more efficiently with groups of items, such as
// bulk inserts or batched API calls, without unbounded latency when
// the source is slow or bursty.
//
// A Chunker is single-consumer: it performs no internal locking and
// must be advanced by one goroutine at a time. Concurrent calls to
// Next (or consuming Process output while also calling Next) are
// undefined behavior.
//
//nolint:govet // fieldalignment: struct layout optimized for readability
type Chunker[T any] struct {
	source   <-chan Result[T]
	clock    Clock
	name     string
	capacity int
	maxWait  time.Duration

	items    []T
	timer    deadlineTimer
	deferred *ChunkError
	done     bool
	consumed bool

	// newDeadline arms a fresh deadline timer. Overridable so tests
	// can observe arming and inject failing timers.
	newDeadline func(d time.Duration) deadlineTimer
}

// NewChunker creates a Chunker that groups values from source into
// batches of up to cfg.Capacity items, never holding a partial batch
// longer than cfg.MaxWait after its first item arrived.
//
// The source follows the usual Result channel contract: successful
// values and failures share the channel, and closing the channel ends
// the sequence. The Chunker fuses the source internally - after the
// channel closes or delivers its first error, it is never received
// from again.
//
// When to use:
//   - Optimizing database writes with bulk operations
//   - Reducing API calls by batching requests
//   - Micro-batching events for periodic processing
//   - Cost optimization through batch operations
//
// Example:
//
//	// Batch up to 1000 events or 5 seconds, whichever comes first
//	chunker := chunkz.NewChunker(events, chunkz.Config{
//		Capacity: 1000,
//		MaxWait:  5 * time.Second,
//	}, chunkz.RealClock)
//
//	for {
//		batch, err := chunker.Next(ctx)
//		if err == io.EOF {
//			break
//		}
//		if err != nil {
//			return err
//		}
//		bulkInsert(batch)
//	}
//
// Parameters:
//   - source: channel of values and failures to batch
//   - cfg: capacity and deadline configuration
//   - clock: Clock interface for time operations
//
// Returns a new Chunker. Panics if cfg.Capacity is not positive; a
// zero capacity is a programming error, not a runtime fault.
func NewChunker[T any](source <-chan Result[T], cfg Config, clock Clock) *Chunker[T] {
	if cfg.Capacity <= 0 {
		panic("chunkz: Config.Capacity must be positive")
	}

	c := &Chunker[T]{
		source:   source,
		clock:    clock,
		name:     "chunker",
		capacity: cfg.Capacity,
		maxWait:  cfg.MaxWait,
		items:    make([]T, 0, cfg.Capacity),
	}
	c.newDeadline = func(d time.Duration) deadlineTimer {
		return clockDeadline{timer: c.clock.NewTimer(d)}
	}
	return c
}

// Next advances the Chunker and blocks until it produces its next
// signal. Each call returns exactly one of:
//
//   - (batch, nil): a completed batch, in arrival order. Emitted when
//     the buffer reaches capacity, the deadline elapses, the source
//     ends with items pending, or a failure interrupts a non-empty
//     batch (the failure itself follows on the next call).
//   - (nil, io.EOF): end of sequence. Repeats on further calls.
//   - (nil, *ChunkError): the source or the deadline timer failed.
//     Failures are terminal; afterwards Next reports io.EOF.
//   - (nil, ctx.Err()): the caller canceled the wait. Buffered items
//     are retained and still reachable via a later Next or Flush.
//
// Next never splits or reorders a batch, and it drains every value the
// source already has ready before waiting, so a burst of available
// values is batched without intermediate sleeps.
func (c *Chunker[T]) Next(ctx context.Context) ([]T, error) {
	if c.consumed {
		panic("chunkz: Next called on a Chunker released by IntoSource")
	}

	if c.deferred != nil {
		err := c.deferred
		c.deferred = nil
		return nil, err
	}

	for {
		if c.done {
			if len(c.items) > 0 {
				return c.flush(), nil
			}
			return nil, io.EOF
		}

		// Drain values the source already has ready before looking at
		// the deadline or suspending.
		select {
		case res, ok := <-c.source:
			if batch, err, emitted := c.collect(res, ok); emitted {
				return batch, err
			}
			continue
		default:
		}

		if c.timer != nil {
			select {
			case <-c.timer.C():
				return c.flush(), nil
			case err := <-c.timer.Failed():
				return c.fail(&ChunkError{Kind: KindTimer, Err: err})
			default:
			}
		} else if len(c.items) != 0 && c.maxWait > 0 {
			panic("chunkz: no deadline timer armed but items are buffered")
		}

		// Suspend until the source produces, the deadline resolves, or
		// the caller cancels, whichever happens first.
		var (
			elapsed <-chan time.Time
			failed  <-chan error
		)
		if c.timer != nil {
			elapsed = c.timer.C()
			failed = c.timer.Failed()
		}

		select {
		case res, ok := <-c.source:
			if batch, err, emitted := c.collect(res, ok); emitted {
				return batch, err
			}
		case <-elapsed:
			return c.flush(), nil
		case err := <-failed:
			return c.fail(&ChunkError{Kind: KindTimer, Err: err})
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

// collect folds one source signal into the buffer. It reports whether
// Next must return now, along with the batch or error to return.
func (c *Chunker[T]) collect(res Result[T], ok bool) ([]T, error, bool) {
	if !ok {
		// Source exhausted: return what is buffered, if anything. The
		// done flag fuses the source so it is never received from again.
		c.done = true
		if len(c.items) > 0 {
			return c.flush(), nil, true
		}
		return nil, io.EOF, true
	}

	if res.IsError() {
		batch, err := c.fail(&ChunkError{Kind: KindSource, Err: res.Error()})
		return batch, err, true
	}

	// The deadline is anchored to the first item of the batch, not
	// refreshed per item.
	if len(c.items) == 0 {
		c.arm()
	}
	c.items = append(c.items, res.Value())
	if len(c.items) >= c.capacity {
		return c.flush(), nil, true
	}
	return nil, nil, false
}

// fail ends the productive path. Buffered items take priority over
// reporting the failure: a non-empty batch is returned now and the
// error deferred to the following call; an empty buffer reports the
// failure immediately.
func (c *Chunker[T]) fail(err *ChunkError) ([]T, error) {
	c.done = true
	if len(c.items) == 0 {
		c.disarm()
		return nil, err
	}
	c.deferred = err
	return c.flush(), nil
}

// flush disarms the deadline and hands off the current buffer,
// replacing it with a fresh one of the same reserved capacity.
func (c *Chunker[T]) flush() []T {
	c.disarm()
	batch := c.items
	c.items = make([]T, 0, c.capacity)
	return batch
}

func (c *Chunker[T]) arm() {
	if c.maxWait <= 0 {
		return
	}
	c.timer = c.newDeadline(c.maxWait)
}

func (c *Chunker[T]) disarm() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

// Flush hands back whatever is currently buffered without waiting for
// capacity or the deadline, or nil when nothing is buffered. It is the
// safe way to drain a Chunker before abandoning it, since abandonment
// alone discards buffered items silently.
func (c *Chunker[T]) Flush() []T {
	if len(c.items) == 0 {
		return nil
	}
	return c.flush()
}

// Source returns the channel the Chunker is draining. Receiving from
// it directly steals values the Chunker would otherwise batch; use it
// for inspection only.
func (c *Chunker[T]) Source() <-chan Result[T] {
	return c.source
}

// IntoSource retires the Chunker and returns the underlying source.
// Any buffered items that have not been flushed are discarded - call
// Flush first when the remaining items matter. After IntoSource the
// Chunker is dead: Next panics.
func (c *Chunker[T]) IntoSource() <-chan Result[T] {
	c.consumed = true
	c.disarm()
	c.items = nil
	c.deferred = nil
	return c.source
}

// Process drives the Chunker from its own goroutine and exposes it as
// a Result stream, which is how it composes into channel pipelines.
// Batches arrive as successful Result[[]T] values and failures as
// error Results carrying a *ChunkError. The output channel closes
// after end of sequence, after a terminal failure has been delivered,
// or when ctx is canceled - in the cancellation case buffered items
// are discarded, matching the drop semantics of abandoning the
// Chunker.
//
// Example:
//
//	for result := range chunker.Process(ctx) {
//		if result.IsError() {
//			if chunkz.IsTimerError(result.Error()) {
//				log.Printf("deadline timer broke: %v", result.Error())
//			}
//			continue
//		}
//		handleBatch(result.Value())
//	}
//
// Process claims the Chunker: do not call Next while the returned
// channel is open.
func (c *Chunker[T]) Process(ctx context.Context) <-chan Result[[]T] {
	out := make(chan Result[[]T])

	go func() {
		defer close(out)

		for {
			batch, err := c.Next(ctx)
			if err != nil {
				if errors.Is(err, io.EOF) {
					return
				}
				var ce *ChunkError
				if !errors.As(err, &ce) {
					// Caller cancellation.
					return
				}
				select {
				case out <- NewError[[]T](err):
				case <-ctx.Done():
					return
				}
				continue
			}

			select {
			case out <- NewSuccess(batch):
			case <-ctx.Done():
				return
			}
		}
	}()

	return out
}

// Name returns the processor name for debugging and monitoring.
func (c *Chunker[T]) Name() string {
	return c.name
}
