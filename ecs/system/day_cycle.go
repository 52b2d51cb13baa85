package system

import (
	"math"
	"time"

	"github.com/milk9111/nocturne/ecs"
	"github.com/milk9111/nocturne/ecs/component"
	"github.com/milk9111/nocturne/logger"
	"github.com/milk9111/nocturne/prefabs"
)

// DayCycleSystem advances the world clock's day/night phase. The game opens
// at dusk: night first, then a transition, then day, then a transition.
type DayCycleSystem struct {
	tuning *prefabs.TuningSpec
}

func NewDayCycleSystem(tuning *prefabs.TuningSpec) *DayCycleSystem {
	if tuning == nil {
		tuning = prefabs.DefaultTuning()
	}
	return &DayCycleSystem{tuning: tuning}
}

func (s *DayCycleSystem) SetTuning(t *prefabs.TuningSpec) {
	if t != nil {
		s.tuning = t
	}
}

func (s *DayCycleSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	cycle, ok := ecs.Single(w, component.DayCycleComponent.Kind())
	if !ok {
		return
	}
	dt := defaultDt
	if clock, ok := ecs.Single(w, component.ClockComponent.Kind()); ok && clock.Dt > 0 {
		dt = clock.Dt
	}

	wasNight := cycle.IsNight
	elapsed := cycle.Elapsed + dt
	*cycle = DayPhase(elapsed, s.tuning.DayCycle)
	if cycle.IsNight != wasNight {
		logger.For("day_cycle").WithField("night", cycle.IsNight).Info("phase changed")
	}

	if playerEnt, ok := ecs.First(w, component.PlayerComponent.Kind()); ok {
		if anim, ok := ecs.Get(w, playerEnt, component.AnimatorComponent.Kind()); ok {
			if cycle.IsNight && anim.Armed {
				anim.Apply(component.AnimDisarm)
			} else if !cycle.IsNight && !anim.Armed {
				anim.Apply(component.AnimArm)
			}
		}
	}
}

// DayPhase computes the phase at elapsed. One cycle is night, transition,
// day, transition; the phase flag flips halfway through each transition.
func DayPhase(elapsed time.Duration, t prefabs.DayCycleTuning) component.DayCycle {
	day := t.Day.Seconds()
	trans := t.Transition.Seconds()
	half := day + trans
	cycleTime := math.Mod(elapsed.Seconds(), 2*half)

	nightRaw := cycleTime < half
	local := math.Mod(cycleTime, half)

	out := component.DayCycle{IsNight: nightRaw, Elapsed: elapsed}
	if nightRaw {
		out.Daylight = 0
	} else {
		out.Daylight = 1
	}
	if local > day && trans > 0 {
		progress := (local - day) / trans
		out.IsTranslating = true
		if nightRaw {
			out.Daylight = progress
		} else {
			out.Daylight = 1 - progress
		}
		if progress > 0.5 {
			out.IsNight = !out.IsNight
		}
	}
	return out
}
