package system

import (
	"math"
	"math/rand"
	"time"

	"github.com/jakecoffman/cp"

	"github.com/milk9111/nocturne/ecs/component"
	"github.com/milk9111/nocturne/prefabs"
)

// Senses is what one NPC perceives this tick.
type Senses struct {
	Kind       component.NPCKind
	Pos        cp.Vector
	Cell       component.Cell
	PlayerPos  cp.Vector
	PlayerCell component.Cell
	PlayerVel  cp.Vector
	InSight    bool
	Night      bool
	Dt         time.Duration
}

func (s Senses) Distance() float64 {
	return s.Pos.Distance(s.PlayerPos)
}

// PathQuerier is the slice of the pathfinder the state machine needs.
type PathQuerier interface {
	FindPath(start, goal component.Cell, kind component.NPCKind, state component.NPCState) ([]component.Cell, bool)
	IsTrespassable(c component.Cell) bool
	CellCenter(c component.Cell) cp.Vector
}

type BrainEnv struct {
	Paths  PathQuerier
	Rand   *rand.Rand
	Tuning *prefabs.TuningSpec
}

type CommandKind int

const (
	CmdSetVelocity CommandKind = iota
	CmdAnimate
	CmdTurn
	CmdEmote
	CmdSound
	CmdHitPlayer
	CmdThrow
	CmdDisableCollider
	CmdSpawnRemains
	CmdDespawn
	CmdStateChanged
)

func (k CommandKind) String() string {
	switch k {
	case CmdSetVelocity:
		return "set_velocity"
	case CmdAnimate:
		return "animate"
	case CmdTurn:
		return "turn"
	case CmdEmote:
		return "emote"
	case CmdSound:
		return "sound"
	case CmdHitPlayer:
		return "hit_player"
	case CmdThrow:
		return "throw"
	case CmdDisableCollider:
		return "disable_collider"
	case CmdSpawnRemains:
		return "spawn_remains"
	case CmdDespawn:
		return "despawn"
	case CmdStateChanged:
		return "state_changed"
	default:
		return "unknown"
	}
}

// Command is a side effect requested by Think. Only the fields relevant to
// Kind are set.
type Command struct {
	Kind     CommandKind
	Velocity cp.Vector
	Anim     component.AnimTrigger
	Emote    component.EmoteKind
	Sound    component.Sound
	Damage   component.DamageType
	Variant  int
	From     component.NPCState
	To       component.NPCState
}

// Think advances one NPC's state machine by one tick. It never touches the
// world; every effect is returned as a command for the caller to apply.
func Think(m component.NPCMind, s Senses, env BrainEnv) (component.NPCMind, []Command) {
	if env.Tuning == nil {
		env.Tuning = prefabs.DefaultTuning()
	}
	b := brain{mind: m, senses: s, env: env}
	if s.Kind == component.Hunter {
		b.tune = env.Tuning.Hunter
		b.hunter()
	} else {
		b.tune = env.Tuning.Civilian
		b.civilian()
	}
	if b.mind.State != m.State {
		b.emit(Command{Kind: CmdStateChanged, From: m.State, To: b.mind.State})
	}
	return b.mind, b.cmds
}

type brain struct {
	mind   component.NPCMind
	senses Senses
	env    BrainEnv
	tune   prefabs.NPCTuning
	cmds   []Command
}

func (b *brain) emit(c Command) {
	b.cmds = append(b.cmds, c)
}

func (b *brain) animate(t component.AnimTrigger) {
	b.emit(Command{Kind: CmdAnimate, Anim: t})
}

func (b *brain) turn(t component.AnimTrigger) {
	b.emit(Command{Kind: CmdTurn, Anim: t})
}

func (b *brain) emote(k component.EmoteKind) {
	b.emit(Command{Kind: CmdEmote, Emote: k})
}

func (b *brain) setVelocity(v cp.Vector) {
	b.emit(Command{Kind: CmdSetVelocity, Velocity: v})
}

// requestPath replaces the committed route with a fresh one towards goal,
// planned for the current state.
func (b *brain) requestPath(goal component.Cell) bool {
	if b.env.Paths == nil {
		b.mind.Path = component.NPCPath{}
		return false
	}
	path, ok := b.env.Paths.FindPath(b.senses.Cell, goal, b.senses.Kind, b.mind.State)
	b.mind.Path = component.NPCPath{Waypoints: path}
	return ok
}

// wander picks a random nearby cell once per chill period while idle.
func (b *brain) wander() {
	if b.mind.Path.Active() {
		return
	}
	if !b.mind.ChillTimer.Tick(b.senses.Dt) {
		return
	}
	if b.env.Paths == nil || b.env.Rand == nil {
		return
	}
	target := b.senses.Cell.Add(component.Cell{
		X: b.env.Rand.Intn(4) - 2,
		Y: b.env.Rand.Intn(4) - 2,
	})
	if !b.env.Paths.IsTrespassable(target) {
		return
	}
	b.requestPath(target)
}

func (b *brain) setState(s component.NPCState) {
	b.mind.State = s
}

func (b *brain) civilian() {
	s := b.senses
	switch b.mind.State {
	case component.Look:
		return
	case component.Dead:
		b.die()
		return
	case component.Attack:
		b.civilianAttack()
		return
	}

	stop := false
	switch b.mind.State {
	case component.Chill:
		b.animate(component.AnimDisarm)
		b.animate(component.AnimIdle)
		b.wander()
		if s.InSight {
			b.emote(component.EmoteWarn)
			if s.Night {
				b.setState(component.Escape)
			} else {
				b.setState(component.Chase)
			}
		}
	case component.Escape:
		b.animate(component.AnimDisarm)
		b.requestPath(s.PlayerCell)
		if !s.Night {
			if s.InSight {
				b.setState(component.Chase)
			} else {
				b.setState(component.Chill)
			}
		}
	case component.Chase:
		if b.mind.EmoteTimer.Tick(s.Dt) {
			b.emote(component.EmoteAngry)
		}
		b.animate(component.AnimArm)
		b.requestPath(s.PlayerCell)
		if s.InSight {
			if s.Night {
				b.setState(component.Escape)
			}
		} else {
			b.emote(component.EmoteQuestion)
			b.setState(component.Chill)
			b.mind.Path = component.NPCPath{}
		}
		if s.Distance() < b.tune.AttackRange {
			b.setState(component.Attack)
			stop = true
		}
	}

	if stop {
		b.mind.VelAccum = cp.Vector{}
		b.setVelocity(cp.Vector{})
		b.animate(component.AnimIdle)
		return
	}

	if b.follow() {
		return
	}
	b.setVelocity(cp.Vector{})
	switch {
	case s.Distance() > b.tune.Threshold:
		b.setState(component.Chill)
	case s.InSight && s.Night:
		b.setState(component.Escape)
	case s.InSight:
		b.setState(component.Chase)
	default:
		b.setState(component.Chill)
	}
}

func (b *brain) civilianAttack() {
	s := b.senses
	if b.mind.EmoteTimer.Tick(s.Dt) {
		b.emote(component.EmoteAngry)
	}
	if b.mind.AttackTimer.Elapsed == 0 {
		b.emit(Command{Kind: CmdSound, Sound: component.SoundHit})
		b.animate(component.AnimCivilianAttack)
	}
	if !b.mind.AttackTimer.Tick(s.Dt) {
		return
	}
	if s.Distance() < b.tune.AttackRange {
		b.emit(Command{Kind: CmdHitPlayer, Damage: component.DamageCivilian})
	}
	b.setState(component.Chase)
	b.mind.AttackTimer.Reset()
}

func (b *brain) hunter() {
	s := b.senses
	b.setVelocity(cp.Vector{})

	switch b.mind.State {
	case component.Dead:
		b.die()
		return
	case component.Attack:
		b.hunterAttack()
		return
	case component.Chill:
		b.animate(component.AnimIdle)
		if s.InSight {
			b.setState(component.Chase)
			b.emote(component.EmoteWarn)
		} else {
			b.wander()
		}
	case component.Look:
		if s.InSight {
			b.setState(component.Chase)
			b.emote(component.EmoteWarn)
		} else if !b.requestPath(b.mind.LastPlayerCell) {
			b.emote(component.EmoteQuestion)
			b.setState(component.Chill)
		}
	case component.Chase, component.Escape:
		if s.InSight {
			if !b.requestPath(s.PlayerCell) {
				b.setState(component.Attack)
			}
		} else {
			b.setState(component.Look)
			b.mind.LastPlayerCell = s.PlayerCell
		}
	}

	b.follow()
}

func (b *brain) hunterAttack() {
	s := b.senses
	ready := b.mind.AttackTimer.Tick(s.Dt)

	dir := s.PlayerPos.Sub(s.Pos)
	if math.Abs(dir.X) > math.Abs(dir.Y) {
		if dir.X > 0 {
			b.turn(component.AnimTurnRight)
		} else {
			b.turn(component.AnimTurnLeft)
		}
	} else {
		if dir.Y > 0 {
			b.turn(component.AnimTurnUp)
		} else {
			b.turn(component.AnimTurnDown)
		}
	}

	if !s.InSight {
		b.setState(component.Look)
		b.mind.LastPlayerCell = s.PlayerCell
		return
	}

	if ready {
		b.animate(component.AnimHunterThrow)
		b.emit(Command{Kind: CmdSound, Sound: component.SoundThrow})
		speed := b.env.Tuning.Projectile.Speed
		if aim, _, ok := Intercept(s.Pos, s.PlayerPos, s.PlayerVel, speed); ok {
			variant := 0
			if b.env.Rand != nil && b.env.Tuning.Projectile.Variants > 0 {
				variant = b.env.Rand.Intn(b.env.Tuning.Projectile.Variants)
			}
			b.emit(Command{
				Kind:     CmdThrow,
				Velocity: normalizeOrZero(aim.Sub(s.Pos)).Mult(speed),
				Variant:  variant,
			})
		}
	}

	dist := s.Distance()
	if dist < b.tune.Threshold {
		b.setState(component.Escape)
	} else if dist < b.tune.UpperThreshold {
		b.setState(component.Chase)
	}
}

func (b *brain) die() {
	b.animate(component.AnimHurt)
	if !b.mind.Stripped {
		b.mind.Stripped = true
		b.mind.VelAccum = cp.Vector{}
		b.setVelocity(cp.Vector{})
		b.emit(Command{Kind: CmdDisableCollider})
	}
	if b.mind.DeathTimer.Tick(b.senses.Dt) {
		b.emit(Command{Kind: CmdSpawnRemains})
		b.emit(Command{Kind: CmdDespawn})
	}
}

// follow consumes the committed route and steers towards its next waypoint.
// It reports false when there is nothing left to follow.
func (b *brain) follow() bool {
	s := b.senses
	waypoints := b.mind.Path.Waypoints
	if len(waypoints) > 0 && waypoints[0] == s.Cell {
		waypoints = waypoints[1:]
	}
	if len(waypoints) == 0 || b.env.Paths == nil {
		b.mind.Path = component.NPCPath{}
		return false
	}
	b.mind.Path.Waypoints = waypoints

	dir := b.env.Paths.CellCenter(waypoints[0]).Sub(s.Pos)
	if math.Abs(dir.X) < 0.1 {
		if dir.Y > 0.1 {
			b.turn(component.AnimTurnUp)
		} else if dir.Y < -0.1 {
			b.turn(component.AnimTurnDown)
		}
	} else if dir.X > 0 {
		b.turn(component.AnimTurnRight)
	} else {
		b.turn(component.AnimTurnLeft)
	}

	if b.mind.VelAccum.Length() > 0.1 {
		b.animate(component.AnimWalk)
	} else {
		b.animate(component.AnimIdle)
	}

	dt := s.Dt.Seconds()
	v := moveTowards(b.mind.VelAccum, normalizeOrZero(dir).Mult(b.tune.MaxSpeed), dt*b.tune.Accel)
	if v.Length() > b.tune.MaxSpeed {
		v = normalizeOrZero(v).Mult(b.tune.MaxSpeed)
	}
	b.mind.VelAccum = v
	b.setVelocity(v)
	return true
}

func moveTowards(from, to cp.Vector, maxDelta float64) cp.Vector {
	delta := to.Sub(from)
	dist := delta.Length()
	if dist <= maxDelta || dist == 0 {
		return to
	}
	return from.Add(delta.Mult(maxDelta / dist))
}

func normalizeOrZero(v cp.Vector) cp.Vector {
	l := v.Length()
	if l == 0 {
		return cp.Vector{}
	}
	return v.Mult(1 / l)
}
