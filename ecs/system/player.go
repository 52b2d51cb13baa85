package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/sirupsen/logrus"

	"github.com/milk9111/nocturne/ecs"
	"github.com/milk9111/nocturne/ecs/component"
	"github.com/milk9111/nocturne/logger"
	"github.com/milk9111/nocturne/prefabs"
)

// PlayerSystem moves the vampire from input and settles the tick's vitals:
// hunger, hits, kills and the win.
type PlayerSystem struct {
	tuning *prefabs.TuningSpec
}

func NewPlayerSystem(tuning *prefabs.TuningSpec) *PlayerSystem {
	if tuning == nil {
		tuning = prefabs.DefaultTuning()
	}
	return &PlayerSystem{tuning: tuning}
}

func (s *PlayerSystem) SetTuning(t *prefabs.TuningSpec) {
	if t != nil {
		s.tuning = t
	}
}

func (s *PlayerSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	playerEnt, ok := ecs.First(w, component.PlayerComponent.Kind())
	if !ok {
		return
	}
	player, _ := ecs.Get(w, playerEnt, component.PlayerComponent.Kind())
	if player.Dead || player.Won {
		if body, ok := ecs.Get(w, playerEnt, component.PhysicsBodyComponent.Kind()); ok {
			body.Velocity = cp.Vector{}
		}
		player.Velocity = cp.Vector{}
		return
	}

	dt := defaultDt
	if clock, ok := ecs.Single(w, component.ClockComponent.Kind()); ok && clock.Dt > 0 {
		dt = clock.Dt
	}
	secs := dt.Seconds()

	if input, ok := ecs.Get(w, playerEnt, component.PlayerInputComponent.Kind()); ok {
		target := normalizeOrZero(input.Move).Mult(player.MaxSpeed)
		player.Velocity = moveTowards(player.Velocity, target, secs*player.Accel)
		if input.Dash {
			player.Ghost = true
		}
	}
	if body, ok := ecs.Get(w, playerEnt, component.PhysicsBodyComponent.Kind()); ok {
		body.Velocity = player.Velocity
		body.Sensor = player.Ghost
	}
	if anim, ok := ecs.Get(w, playerEnt, component.AnimatorComponent.Kind()); ok {
		anim.Frame = anim.Frame[:0]
		if player.Velocity.Length() > 0.1 {
			anim.Apply(component.AnimWalk)
		} else {
			anim.Apply(component.AnimIdle)
		}
	}

	player.HP -= secs * player.HungerRate

	for _, evt := range w.Events().Of(component.EventHitPlayer) {
		if hit, ok := evt.Data.(component.HitPlayerEvent); ok {
			player.HP -= Damage(player, hit.Type, s.tuning.Player)
		}
	}
	for _, evt := range w.Events().Of(component.EventKillNPC) {
		kill, ok := evt.Data.(component.KillNPCEvent)
		if !ok {
			continue
		}
		player.HP = math.Min(math.Max(player.HP+player.HPGain, 0), player.MaxHP)
		if kill.Kind == component.Hunter {
			player.Score += s.tuning.Player.HunterScore
		} else {
			player.Score += s.tuning.Player.CivilianScore
		}
	}
	if len(w.Events().Of(component.EventWin)) > 0 {
		player.Won = true
		logger.For("player").WithField("score", player.Score).Info("all roses collected")
	}

	if player.HP < 0 {
		player.Dead = true
		logger.For("player").WithFields(logrus.Fields{"score": player.Score}).Info("player died")
	}
}

// Damage is the HP a hit of type dmg costs p, after armour.
func Damage(p *component.Player, dmg component.DamageType, t prefabs.PlayerTuning) float64 {
	armour := 1 - p.PhysRes
	switch dmg {
	case component.DamageProjectile:
		return p.MaxHP * t.ProjectileDamage * armour
	case component.DamageCivilian:
		return p.MaxHP * t.CivilianDamage * armour
	case component.DamageHunter:
		return t.HunterDamage * armour
	default:
		return 0
	}
}
