package component

import (
	"time"

	"github.com/jakecoffman/cp"
)

type NPCKind int

const (
	Civilian NPCKind = iota
	Hunter
)

func (k NPCKind) String() string {
	switch k {
	case Civilian:
		return "civilian"
	case Hunter:
		return "hunter"
	default:
		return "unknown"
	}
}

type NPCState int

const (
	Chill NPCState = iota
	Look
	Chase
	Escape
	Attack
	Dead
)

func (s NPCState) String() string {
	switch s {
	case Chill:
		return "chill"
	case Look:
		return "look"
	case Chase:
		return "chase"
	case Escape:
		return "escape"
	case Attack:
		return "attack"
	case Dead:
		return "dead"
	default:
		return "unknown"
	}
}

// NPC tags civilians and hunters.
type NPC struct {
	Kind NPCKind
}

// NPCPath is the committed route. Waypoints never contain the cell the NPC
// stood on when the route was planned; nil means a new route is needed.
type NPCPath struct {
	Waypoints []Cell
}

func (p NPCPath) Active() bool {
	return len(p.Waypoints) > 0
}

// NPCMind is everything one NPC's state machine owns.
type NPCMind struct {
	State NPCState
	Path  NPCPath
	// VelAccum is the acceleration-limited velocity carried between ticks.
	VelAccum cp.Vector
	// ChillTimer paces wander requests while idle.
	ChillTimer Timer
	// AttackTimer is the melee (civilian) or throw (hunter) cooldown.
	AttackTimer Timer
	// EmoteTimer paces angry emotes while a civilian is aggressive.
	EmoteTimer Timer
	// DeathTimer starts when State becomes Dead.
	DeathTimer Timer
	// LastPlayerCell is where a hunter last saw the player.
	LastPlayerCell Cell
	// Stripped is set once the collider was disabled after death.
	Stripped bool
}

var NPCComponent = NewComponent[NPC]()
var NPCMindComponent = NewComponent[NPCMind]()

// NewNPCMind returns the idle mind a freshly spawned NPC starts with.
func NewNPCMind(chill, attack, emote, death time.Duration) NPCMind {
	return NPCMind{
		State:       Chill,
		ChillTimer:  NewRepeatingTimer(chill),
		AttackTimer: NewRepeatingTimer(attack),
		EmoteTimer:  NewRepeatingTimer(emote),
		DeathTimer:  NewOnceTimer(death),
	}
}

// Kill moves the mind into Dead and starts the death timer from zero.
func (m *NPCMind) Kill() {
	m.State = Dead
	m.Path = NPCPath{}
	m.DeathTimer.Reset()
}
