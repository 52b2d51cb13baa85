package system

import (
	"math"
	"testing"
	"time"

	"github.com/milk9111/nocturne/ecs"
	"github.com/milk9111/nocturne/ecs/component"
	"github.com/milk9111/nocturne/prefabs"
)

func TestDayPhase(t *testing.T) {
	tuning := prefabs.DefaultTuning().DayCycle
	tests := []struct {
		at          time.Duration
		night       bool
		translating bool
		daylight    float64
	}{
		{at: 0, night: true, daylight: 0},
		{at: 10 * time.Second, night: true, daylight: 0},
		{at: 15200 * time.Millisecond, night: true, translating: true, daylight: 0.2},
		{at: 15700 * time.Millisecond, night: false, translating: true, daylight: 0.7},
		{at: 20 * time.Second, night: false, daylight: 1},
		{at: 31200 * time.Millisecond, night: false, translating: true, daylight: 0.8},
		{at: 31700 * time.Millisecond, night: true, translating: true, daylight: 0.3},
		{at: 32500 * time.Millisecond, night: true, daylight: 0},
	}
	for _, tt := range tests {
		t.Run(tt.at.String(), func(t *testing.T) {
			got := DayPhase(tt.at, tuning)
			if got.IsNight != tt.night || got.IsTranslating != tt.translating {
				t.Fatalf("night=%v translating=%v, want %v %v", got.IsNight, got.IsTranslating, tt.night, tt.translating)
			}
			if math.Abs(got.Daylight-tt.daylight) > 1e-6 {
				t.Fatalf("daylight = %v, want %v", got.Daylight, tt.daylight)
			}
		})
	}
}

func TestDayCycleSystemArmsPlayerAtDawn(t *testing.T) {
	w := newTestWorld(t, true)
	player := addPlayer(t, w, playerSpot)
	sys := NewDayCycleSystem(prefabs.DefaultTuning())

	for i := 0; i < 155; i++ {
		sys.Update(w)
	}
	cycle, _ := ecs.Single(w, component.DayCycleComponent.Kind())
	anim, _ := ecs.Get(w, player, component.AnimatorComponent.Kind())
	if !cycle.IsNight || anim.Armed {
		t.Fatalf("at 15.5s night=%v armed=%v", cycle.IsNight, anim.Armed)
	}

	sys.Update(w)
	if cycle.IsNight || !anim.Armed {
		t.Fatalf("at 15.6s night=%v armed=%v", cycle.IsNight, anim.Armed)
	}
}
