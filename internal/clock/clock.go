// Package clock lets time-dependent code run against the wall clock in
// production and against a manually advanced clock in tests.
//
// Structs that schedule work keep a Clock field; production wiring passes
// Real(), tests pass Fake(...) and call Advance to fire timers.
package clock

import "time"

// Clock is the subset of the time package used by the kiosk.
type Clock interface {
	Now() time.Time

	// AfterFunc calls f in its own goroutine (real) or synchronously from
	// Advance (fake) once d has elapsed.
	AfterFunc(d time.Duration, f func()) *Timer

	// NewTicker panics if d <= 0, like time.NewTicker.
	NewTicker(d time.Duration) *Ticker
}

// Timer is a pending AfterFunc call.
type Timer struct {
	stop func() bool
}

// Stop cancels the pending call. It reports false if the call already ran
// or was stopped before.
func (t *Timer) Stop() bool { return t.stop() }

// Ticker delivers ticks on C until stopped. C has capacity 1; late ticks are
// dropped.
type Ticker struct {
	C    <-chan time.Time
	stop func()
}

func (t *Ticker) Stop() { t.stop() }

// Real returns a Clock backed by the time package.
func Real() Clock { return realClock{} }

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

func (realClock) AfterFunc(d time.Duration, f func()) *Timer {
	t := time.AfterFunc(d, f)
	return &Timer{stop: t.Stop}
}

func (realClock) NewTicker(d time.Duration) *Ticker {
	t := time.NewTicker(d)
	return &Ticker{C: t.C, stop: t.Stop}
}
