package system

import (
	"github.com/sirupsen/logrus"

	"github.com/milk9111/nocturne/ecs"
	"github.com/milk9111/nocturne/ecs/component"
	"github.com/milk9111/nocturne/logger"
	"github.com/milk9111/nocturne/prefabs"
)

// KillRule decides whether the player's touch kills an NPC.
type KillRule interface {
	Kills(kind component.NPCKind, night bool, state component.NPCState) (bool, error)
}

// TuningKillRule applies the day/night phases named in the tuning prefab.
type TuningKillRule struct {
	Kill prefabs.KillTuning
}

func (r TuningKillRule) Kills(kind component.NPCKind, night bool, state component.NPCState) (bool, error) {
	if state == component.Dead {
		return false, nil
	}
	return r.Kill.KillsAtNight(kind == component.Hunter) == night, nil
}

// CollisionSystem turns physics contact starts into gameplay: projectile
// hits, kills, hunter strikes, rose pickups and the end of a dash.
type CollisionSystem struct {
	tuning *prefabs.TuningSpec
	rule   KillRule
}

// NewCollisionSystem uses rule for player/NPC contacts, or the tuning's
// phases when rule is nil.
func NewCollisionSystem(tuning *prefabs.TuningSpec, rule KillRule) *CollisionSystem {
	if tuning == nil {
		tuning = prefabs.DefaultTuning()
	}
	return &CollisionSystem{tuning: tuning, rule: rule}
}

func (s *CollisionSystem) SetTuning(t *prefabs.TuningSpec) {
	if t != nil {
		s.tuning = t
	}
}

func (s *CollisionSystem) SetRule(r KillRule) {
	s.rule = r
}

func (s *CollisionSystem) killRule() KillRule {
	if s.rule != nil {
		return s.rule
	}
	return TuningKillRule{Kill: s.tuning.Kill}
}

func (s *CollisionSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	playerEnt, ok := ecs.First(w, component.PlayerComponent.Kind())
	if !ok {
		return
	}
	player, _ := ecs.Get(w, playerEnt, component.PlayerComponent.Kind())

	night := false
	if cycle, ok := ecs.Single(w, component.DayCycleComponent.Kind()); ok {
		night = cycle.IsNight
	}

	for _, evt := range w.Events().Of(component.EventCollision) {
		col, ok := evt.Data.(CollisionEvent)
		if !ok {
			continue
		}
		a, b := col.A, col.B
		if !w.IsAlive(a) || !w.IsAlive(b) {
			continue
		}

		if ecs.Has(w, b, component.ProjectileComponent.Kind()) {
			a, b = b, a
		}
		if ecs.Has(w, a, component.ProjectileComponent.Kind()) {
			if b == playerEnt {
				s.hitPlayer(w, component.DamageProjectile)
			}
			ecs.DestroyEntity(w, a)
			continue
		}

		var other ecs.Entity
		switch playerEnt {
		case a:
			other = b
		case b:
			other = a
		default:
			continue
		}
		s.touch(w, playerEnt, player, other, night)
	}
}

func (s *CollisionSystem) touch(w *ecs.World, playerEnt ecs.Entity, player *component.Player, other ecs.Entity, night bool) {
	switch {
	case ecs.Has(w, other, component.NPCComponent.Kind()):
		npc, _ := ecs.Get(w, other, component.NPCComponent.Kind())
		mind, ok := ecs.Get(w, other, component.NPCMindComponent.Kind())
		if !ok || mind.State == component.Dead {
			return
		}
		kill, err := s.killRule().Kills(npc.Kind, night, mind.State)
		if err != nil {
			logger.For("collision").WithError(err).Warn("kill rule failed")
			kill = false
		}
		if kill {
			mind.Kill()
			w.Events().Push(ecs.Event{Type: component.EventKillNPC, Data: component.KillNPCEvent{Kind: npc.Kind}})
			w.Events().Push(ecs.Event{Type: component.EventSound, Data: component.SoundEvent{Sound: component.SoundKill}})
			logger.For("collision").WithFields(logrus.Fields{"entity": other, "kind": npc.Kind}).Debug("npc killed")
			return
		}
		if npc.Kind == component.Hunter {
			s.hitPlayer(w, component.DamageHunter)
		}
	case ecs.Has(w, other, component.StructureComponent.Kind()):
		player.Ghost = false
	case ecs.Has(w, other, component.CollectibleComponent.Kind()):
		if player.Dead {
			return
		}
		ecs.DestroyEntity(w, other)
		tally, ok := ecs.Single(w, component.RoseTallyComponent.Kind())
		if !ok {
			return
		}
		tally.Collected++
		if tally.Total > 0 && tally.Collected == tally.Total {
			w.Events().Push(ecs.Event{Type: component.EventWin, Data: component.WinEvent{}})
		}
	}
}

func (s *CollisionSystem) hitPlayer(w *ecs.World, dmg component.DamageType) {
	w.Events().Push(ecs.Event{Type: component.EventHitPlayer, Data: component.HitPlayerEvent{Type: dmg}})
}
