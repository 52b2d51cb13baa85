package component

import "github.com/jakecoffman/cp"

// Transform is the world-space position of an entity. Physics owns it for
// entities with a body; the NPC core only reads it.
type Transform struct {
	X float64
	Y float64
}

func (t Transform) Vec() cp.Vector {
	return cp.Vector{X: t.X, Y: t.Y}
}

func (t *Transform) Set(v cp.Vector) {
	t.X = v.X
	t.Y = v.Y
}

var TransformComponent = NewComponent[Transform]()
