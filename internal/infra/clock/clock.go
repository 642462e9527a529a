// Package clock abstracts wall time and one-shot timers so the widget's
// delayed actions can be cancelled on teardown and driven by hand in tests.
package clock

import "time"

type Timer interface {
	// Stop prevents the timer from firing. It reports whether the call stopped it.
	Stop() bool
}

type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

type systemClock struct{}

// System returns the clock backed by the time package.
func System() Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now()
}

func (systemClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
