package component

import "time"

// Clock is the fixed simulation step. The host advances it once per tick.
type Clock struct {
	Dt      time.Duration
	Elapsed time.Duration
	Tick    uint64
}

// Advance moves the clock one step at tps ticks per second. Dt is taken
// from the cumulative tick count, so n steps always sum to n/tps seconds
// even when a second does not divide evenly into nanosecond steps.
func (c *Clock) Advance(tps int) {
	if tps <= 0 {
		return
	}
	next := time.Duration(c.Tick+1) * time.Second / time.Duration(tps)
	c.Dt = next - c.Elapsed
	c.Elapsed = next
	c.Tick++
}

var ClockComponent = NewComponent[Clock]()
