package component

import (
	"testing"
	"time"
)

func TestClockAdvanceSumsExactly(t *testing.T) {
	tests := []struct {
		tps   int
		steps int
		want  time.Duration
	}{
		{tps: 60, steps: 30, want: 500 * time.Millisecond},
		{tps: 60, steps: 60, want: time.Second},
		{tps: 60, steps: 3600, want: time.Minute},
		{tps: 10, steps: 5, want: 500 * time.Millisecond},
	}
	for _, tt := range tests {
		var clock Clock
		var sum time.Duration
		for i := 0; i < tt.steps; i++ {
			clock.Advance(tt.tps)
			sum += clock.Dt
		}
		if sum != tt.want || clock.Elapsed != tt.want {
			t.Fatalf("%d steps at %d tps: sum %v elapsed %v, want %v", tt.steps, tt.tps, sum, clock.Elapsed, tt.want)
		}
		if clock.Tick != uint64(tt.steps) {
			t.Fatalf("tick = %d, want %d", clock.Tick, tt.steps)
		}
	}
}

func TestClockAdvanceStepSizes(t *testing.T) {
	var clock Clock
	for i := 0; i < 6; i++ {
		clock.Advance(60)
		if clock.Dt != 16666666 && clock.Dt != 16666667 {
			t.Fatalf("step %d: dt %d outside one nanosecond of a sixtieth", i, clock.Dt)
		}
	}
}

func TestTimerFiresOnTimeAtSixtyTPS(t *testing.T) {
	var clock Clock
	timer := NewOnceTimer(500 * time.Millisecond)
	for i := 1; i <= 30; i++ {
		clock.Advance(60)
		if fired := timer.Tick(clock.Dt); fired != (i == 30) {
			t.Fatalf("tick %d: fired = %v", i, fired)
		}
	}
}
