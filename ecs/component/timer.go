package component

import "time"

// Timer counts elapsed simulation time towards Duration. Repeating timers
// wrap and report completion once per wrap; one-shot timers stay finished.
type Timer struct {
	Duration  time.Duration
	Elapsed   time.Duration
	Repeating bool

	justFinished bool
}

func NewRepeatingTimer(d time.Duration) Timer {
	return Timer{Duration: d, Repeating: true}
}

func NewOnceTimer(d time.Duration) Timer {
	return Timer{Duration: d}
}

// Tick advances the timer and reports whether it completed during this tick.
func (t *Timer) Tick(dt time.Duration) bool {
	t.justFinished = false
	if dt < 0 {
		dt = 0
	}
	if !t.Repeating && t.Finished() {
		return false
	}
	t.Elapsed += dt
	if t.Elapsed < t.Duration {
		return false
	}
	t.justFinished = true
	if !t.Repeating {
		t.Elapsed = t.Duration
		return true
	}
	if t.Duration > 0 {
		t.Elapsed %= t.Duration
	} else {
		t.Elapsed = 0
	}
	return true
}

// JustFinished reports whether the last Tick completed the timer.
func (t Timer) JustFinished() bool {
	return t.justFinished
}

// Finished reports completion: for repeating timers only on the completing
// tick, for one-shot timers from then on.
func (t Timer) Finished() bool {
	if t.Repeating {
		return t.justFinished
	}
	return t.Elapsed >= t.Duration
}

// Reset rewinds the timer to zero elapsed time.
func (t *Timer) Reset() {
	t.Elapsed = 0
	t.justFinished = false
}
