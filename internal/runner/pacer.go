package runner

import "time"

// Pacer is the only suspension point of an algorithm body. Pause waits for d
// (or less, if tok is stopped meanwhile) and reports whether the body may go on.
type Pacer interface {
	Pause(tok *Token, d time.Duration) bool
}

// PacerFunc adapts a function to Pacer
type PacerFunc func(tok *Token, d time.Duration) bool

// Pause calls f
func (f PacerFunc) Pause(tok *Token, d time.Duration) bool {
	return f(tok, d)
}

type realTime struct{}

// RealTime sleeps for the requested duration and wakes early on stop
func RealTime() Pacer {
	return realTime{}
}

func (realTime) Pause(tok *Token, d time.Duration) bool {
	if d <= 0 {
		return !tok.Stopped()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
	case <-tok.Done():
	}
	return !tok.Stopped()
}

type instant struct{}

// Instant never sleeps. Used for headless runs and comparisons.
func Instant() Pacer {
	return instant{}
}

func (instant) Pause(tok *Token, _ time.Duration) bool {
	return !tok.Stopped()
}
