package system

import (
	"math/rand"
	"time"

	"github.com/jakecoffman/cp"
	"github.com/sirupsen/logrus"

	"github.com/milk9111/nocturne/ecs"
	"github.com/milk9111/nocturne/ecs/component"
	"github.com/milk9111/nocturne/ecs/entity"
	"github.com/milk9111/nocturne/logger"
	"github.com/milk9111/nocturne/prefabs"
)

const defaultDt = time.Second / 60

// NPCSystem senses the world for every civilian and hunter near the player,
// runs their state machines and applies the resulting commands.
type NPCSystem struct {
	tuning *prefabs.TuningSpec
	rand   *rand.Rand
	ray    Raycaster
	active []ecs.Entity
}

// NewNPCSystem wires the state machines to a line-of-sight service. A nil
// raycaster treats every line of sight as clear.
func NewNPCSystem(tuning *prefabs.TuningSpec, rng *rand.Rand, ray Raycaster) *NPCSystem {
	if tuning == nil {
		tuning = prefabs.DefaultTuning()
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &NPCSystem{tuning: tuning, rand: rng, ray: ray}
}

func (s *NPCSystem) SetTuning(t *prefabs.TuningSpec) {
	if t != nil {
		s.tuning = t
	}
}

// Active lists the NPCs evaluated during the last Update.
func (s *NPCSystem) Active() []ecs.Entity {
	return s.active
}

func (s *NPCSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	s.active = s.active[:0]

	playerEnt, ok := ecs.First(w, component.PlayerComponent.Kind())
	if !ok {
		return
	}
	player, _ := ecs.Get(w, playerEnt, component.PlayerComponent.Kind())
	playerT, ok := ecs.Get(w, playerEnt, component.TransformComponent.Kind())
	if !ok || player.Dead {
		return
	}

	grid, ok := ecs.Single(w, component.GridTransformComponent.Kind())
	if !ok || !grid.Ready() {
		return
	}
	occ, _ := ecs.Single(w, component.OccupancyComponent.Kind())

	night := false
	if cycle, ok := ecs.Single(w, component.DayCycleComponent.Kind()); ok {
		night = cycle.IsNight
	}
	dt := defaultDt
	if clock, ok := ecs.Single(w, component.ClockComponent.Kind()); ok && clock.Dt > 0 {
		dt = clock.Dt
	}

	env := BrainEnv{Paths: NewPathfinder(grid, occ), Rand: s.rand, Tuning: s.tuning}
	playerPos := playerT.Vec()
	playerCell := grid.WorldToCell(playerPos)

	for _, e := range w.Query(component.NPCComponent.Kind().ID(), component.NPCMindComponent.Kind().ID(), component.TransformComponent.Kind().ID()) {
		npc, _ := ecs.Get(w, e, component.NPCComponent.Kind())
		mind, _ := ecs.Get(w, e, component.NPCMindComponent.Kind())
		t, _ := ecs.Get(w, e, component.TransformComponent.Kind())
		body, _ := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())

		pos := t.Vec()
		dist := pos.Distance(playerPos)
		if dist > s.tuning.CullRadius {
			if npc.Kind == component.Hunter && body != nil {
				body.Velocity = cp.Vector{}
			}
			continue
		}
		s.active = append(s.active, e)

		tune := s.tuning.Civilian
		if npc.Kind == component.Hunter {
			tune = s.tuning.Hunter
		}
		senses := Senses{
			Kind:       npc.Kind,
			Pos:        pos,
			Cell:       grid.WorldToCell(pos),
			PlayerPos:  playerPos,
			PlayerCell: playerCell,
			PlayerVel:  player.Velocity,
			InSight:    dist < tune.SpotRadius && s.canSee(pos, playerPos, playerEnt),
			Night:      night,
			Dt:         dt,
		}

		next, cmds := Think(*mind, senses, env)
		*mind = next
		s.apply(w, e, npc.Kind, pos, body, cmds)
	}
}

func (s *NPCSystem) canSee(from, to cp.Vector, player ecs.Entity) bool {
	if s.ray == nil {
		return true
	}
	hit, ok := s.ray.FirstHit(from, to, sightMask)
	return ok && hit == player
}

func (s *NPCSystem) apply(w *ecs.World, e ecs.Entity, kind component.NPCKind, pos cp.Vector, body *component.PhysicsBody, cmds []Command) {
	anim, _ := ecs.Get(w, e, component.AnimatorComponent.Kind())
	if anim != nil {
		anim.Frame = anim.Frame[:0]
	}
	log := logger.For("npc")

	for _, cmd := range cmds {
		switch cmd.Kind {
		case CmdSetVelocity:
			if body != nil {
				body.Velocity = cmd.Velocity
			}
		case CmdAnimate, CmdTurn:
			if anim != nil {
				anim.Apply(cmd.Anim)
			}
		case CmdEmote:
			if _, err := entity.NewEmote(w, cmd.Emote, pos, s.tuning); err != nil {
				log.WithError(err).Warn("emote")
			}
		case CmdSound:
			w.Events().Push(ecs.Event{Type: component.EventSound, Data: component.SoundEvent{Sound: cmd.Sound}})
		case CmdHitPlayer:
			w.Events().Push(ecs.Event{Type: component.EventHitPlayer, Data: component.HitPlayerEvent{Type: cmd.Damage}})
		case CmdThrow:
			if _, err := entity.NewProjectile(w, pos, cmd.Velocity, cmd.Variant, s.tuning); err != nil {
				log.WithError(err).Warn("throw")
			}
		case CmdDisableCollider:
			if body != nil {
				body.Disabled = true
				body.Velocity = cp.Vector{}
			}
		case CmdSpawnRemains:
			if _, err := entity.NewRemains(w, kind, pos, s.tuning); err != nil {
				log.WithError(err).Warn("remains")
			}
		case CmdDespawn:
			ecs.DestroyEntity(w, e)
			return
		case CmdStateChanged:
			log.WithFields(logrus.Fields{
				"entity": e,
				"kind":   kind,
				"from":   cmd.From,
				"to":     cmd.To,
			}).Debug("state changed")
		}
	}
}
