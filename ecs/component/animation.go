package component

// AnimTrigger names a call into the external animation controller.
type AnimTrigger string

const (
	AnimWalk           AnimTrigger = "play_walk"
	AnimIdle           AnimTrigger = "play_idle"
	AnimHurt           AnimTrigger = "play_hurt"
	AnimTurnLeft       AnimTrigger = "turn_left"
	AnimTurnRight      AnimTrigger = "turn_right"
	AnimTurnUp         AnimTrigger = "turn_up"
	AnimTurnDown       AnimTrigger = "turn_down"
	AnimArm            AnimTrigger = "arm"
	AnimDisarm         AnimTrigger = "disarm"
	AnimCivilianAttack AnimTrigger = "civilian_attack"
	AnimHunterThrow    AnimTrigger = "hunter_throw"
)

type Facing int

const (
	FacingDown Facing = iota
	FacingUp
	FacingLeft
	FacingRight
)

// Animator mirrors the state of the external animation controller. Frame
// holds the triggers issued during the last tick, in order.
type Animator struct {
	Current AnimTrigger
	Facing  Facing
	Armed   bool
	Frame   []AnimTrigger
}

// Apply records a trigger and updates the mirrored state.
func (a *Animator) Apply(t AnimTrigger) {
	a.Frame = append(a.Frame, t)
	switch t {
	case AnimTurnLeft:
		a.Facing = FacingLeft
	case AnimTurnRight:
		a.Facing = FacingRight
	case AnimTurnUp:
		a.Facing = FacingUp
	case AnimTurnDown:
		a.Facing = FacingDown
	case AnimArm:
		a.Armed = true
	case AnimDisarm:
		a.Armed = false
	default:
		a.Current = t
	}
}

var AnimatorComponent = NewComponent[Animator]()
