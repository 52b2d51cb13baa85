package system

import (
	"github.com/milk9111/nocturne/ecs"
	"github.com/milk9111/nocturne/ecs/component"
)

// TTLSystem advances lifetime timers and destroys entities whose lifetime
// ran out. Projectiles, remains and emotes all expire through it.
type TTLSystem struct{}

func NewTTLSystem() *TTLSystem {
	return &TTLSystem{}
}

func (s *TTLSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := defaultDt
	if clock, ok := ecs.Single(w, component.ClockComponent.Kind()); ok && clock.Dt > 0 {
		dt = clock.Dt
	}

	ecs.ForEach(w, component.TTLComponent.Kind(), func(e ecs.Entity, ttl *component.TTL) {
		if ttl == nil {
			return
		}
		if ttl.Timer.Tick(dt) || ttl.Timer.Finished() {
			ecs.DestroyEntity(w, e)
		}
	})
}
