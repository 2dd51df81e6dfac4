package html2pdf

import (
	"fmt"
	"time"
)

// withDeadline races op against a timer. If the timer fires first, the call
// fails with ErrTimeout wrapped around failureMessage; op is not cancelled —
// it keeps running in its goroutine and its result is discarded. The timer
// is released on both paths. Guards compose: each call owns its own timer,
// so stages can stack independent deadlines.
func withDeadline[T any](op func() (T, error), d time.Duration, failureMessage string) (T, error) {
	type outcome struct {
		val T
		err error
	}

	// Buffered so the abandoned operation can settle without a receiver.
	done := make(chan outcome, 1)
	go func() {
		val, err := op()
		done <- outcome{val: val, err: err}
	}()

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case out := <-done:
		return out.val, out.err
	case <-timer.C:
		var zero T
		return zero, fmt.Errorf("%w: %s", ErrTimeout, failureMessage)
	}
}
