package chunkz

import "time"

// deadlineTimer is the single-shot wait primitive backing a batch
// deadline. An armed timer either elapses on C or reports a mechanism
// failure on Failed; at most one of the two fires.
type deadlineTimer interface {
	// C receives once when the deadline elapses.
	C() <-chan time.Time

	// Failed receives once if the timer mechanism itself fails.
	Failed() <-chan error

	// Stop disarms the timer. It reports whether the timer was still
	// pending, matching time.Timer.Stop.
	Stop() bool
}

// clockDeadline adapts a Clock timer to the deadlineTimer contract.
// Clock timers have no failure mode, so Failed returns a nil channel
// that blocks forever.
type clockDeadline struct {
	timer Timer
}

func (d clockDeadline) C() <-chan time.Time {
	return d.timer.C()
}

func (clockDeadline) Failed() <-chan error {
	return nil
}

func (d clockDeadline) Stop() bool {
	return d.timer.Stop()
}
