package component

import (
	"math"

	"github.com/jakecoffman/cp"
)

// Cell is an integer grid coordinate. Row 0 is the top of the level.
type Cell struct {
	X int
	Y int
}

func (c Cell) Add(o Cell) Cell {
	return Cell{X: c.X + o.X, Y: c.Y + o.Y}
}

// DistanceSq is the squared Euclidean distance in cells.
func (c Cell) DistanceSq(o Cell) int {
	dx := c.X - o.X
	dy := c.Y - o.Y
	return dx*dx + dy*dy
}

// GridTransform converts between world space and level cells. The zero
// value is not ready; it becomes ready once the level's dimensions are known.
type GridTransform struct {
	Origin   cp.Vector
	CellSize float64
	Width    int
	Height   int

	ready bool
}

func NewGridTransform(origin cp.Vector, cellSize float64, width, height int) *GridTransform {
	return &GridTransform{
		Origin:   origin,
		CellSize: cellSize,
		Width:    width,
		Height:   height,
		ready:    cellSize > 0 && width > 0 && height > 0,
	}
}

func (g *GridTransform) Ready() bool {
	return g != nil && g.ready
}

// top is the world Y of the level's upper edge; cell rows grow downward from it.
func (g *GridTransform) top() float64 {
	return g.Origin.Y + float64(g.Height)*g.CellSize
}

// WorldToCell returns the cell enclosing p.
func (g *GridTransform) WorldToCell(p cp.Vector) Cell {
	return Cell{
		X: int(math.Floor((p.X - g.Origin.X) / g.CellSize)),
		Y: int(math.Floor((g.top() - p.Y) / g.CellSize)),
	}
}

// CellToWorld returns the centre of c.
func (g *GridTransform) CellToWorld(c Cell) cp.Vector {
	return cp.Vector{
		X: g.Origin.X + (float64(c.X)+0.5)*g.CellSize,
		Y: g.top() - (float64(c.Y)+0.5)*g.CellSize,
	}
}

func (g *GridTransform) InBounds(c Cell) bool {
	return c.X >= 0 && c.Y >= 0 && c.X < g.Width && c.Y < g.Height
}

var GridTransformComponent = NewComponent[GridTransform]()
