package component

import "github.com/jakecoffman/cp"

// Player holds the vampire's vitals. Velocity is the smoothed movement
// velocity hunters lead their throws against.
type Player struct {
	HP         float64
	MaxHP      float64
	Score      float64
	PhysRes    float64
	HPGain     float64
	HungerRate float64
	MaxSpeed   float64
	Accel      float64
	Velocity   cp.Vector
	Dead       bool
	Won        bool
	// Ghost is set while dashing through NPCs; touching a structure clears it.
	Ghost bool
}

func DefaultPlayer() *Player {
	return &Player{
		HP:         80,
		MaxHP:      80,
		PhysRes:    0.2,
		HPGain:     5,
		HungerRate: 2,
		MaxSpeed:   60,
		Accel:      500,
	}
}

// PlayerInput is the desired movement direction written by the host.
type PlayerInput struct {
	Move cp.Vector
	Dash bool
}

var PlayerComponent = NewComponent[Player]()
var PlayerInputComponent = NewComponent[PlayerInput]()
