package system

import (
	"math/rand"
	"time"

	"github.com/milk9111/nocturne/ecs"
	"github.com/milk9111/nocturne/ecs/component"
	"github.com/milk9111/nocturne/ecs/entity"
	"github.com/milk9111/nocturne/logger"
	"github.com/milk9111/nocturne/prefabs"
)

// SpawnSystem rolls every spawner once per period. Civilians appear by day
// and hunters by night, up to a per-kind cap.
type SpawnSystem struct {
	tuning *prefabs.TuningSpec
	rand   *rand.Rand
}

func NewSpawnSystem(tuning *prefabs.TuningSpec, rng *rand.Rand) *SpawnSystem {
	if tuning == nil {
		tuning = prefabs.DefaultTuning()
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &SpawnSystem{tuning: tuning, rand: rng}
}

func (s *SpawnSystem) SetTuning(t *prefabs.TuningSpec) {
	if t != nil {
		s.tuning = t
	}
}

func (s *SpawnSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}

	night := false
	if cycle, ok := ecs.Single(w, component.DayCycleComponent.Kind()); ok {
		night = cycle.IsNight
	}
	dt := defaultDt
	if clock, ok := ecs.Single(w, component.ClockComponent.Kind()); ok && clock.Dt > 0 {
		dt = clock.Dt
	}

	live := map[component.NPCKind]int{}
	ecs.ForEach(w, component.NPCComponent.Kind(), func(_ ecs.Entity, npc *component.NPC) {
		live[npc.Kind]++
	})

	ecs.ForEach2(w, component.SpawnerComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, sp *component.Spawner, t *component.Transform) {
		if sp.Timer.Duration != s.tuning.Spawner.Period {
			sp.Timer.Duration = s.tuning.Spawner.Period
		}
		if !sp.Timer.Tick(dt) {
			return
		}
		if s.rand.Float64() >= s.tuning.Spawner.Chance {
			return
		}
		if live[sp.Kind] >= s.tuning.Spawner.Cap {
			return
		}
		if (sp.Kind == component.Civilian) == night {
			return
		}
		if _, err := entity.NewNPC(w, sp.Kind, t.Vec(), s.tuning); err != nil {
			logger.For("spawn").WithError(err).Warn("spawn npc")
			return
		}
		live[sp.Kind]++
		logger.For("spawn").WithField("kind", sp.Kind).Debug("spawned")
	})
}
