package component

import (
	"errors"
	"fmt"
)

var (
	ErrOccupancyReady = errors.New("occupancy: walkable cells already set")
	ErrGridShape      = errors.New("occupancy: malformed walkable matrix")
)

// Occupancy combines the static walkability of the level with the cells
// taken by moving units this tick. The static part is written once per
// level; the unit set is rebuilt every tick before any path query.
type Occupancy struct {
	walkable [][]bool // [x][y]
	units    map[Cell]struct{}
	ready    bool
}

func NewOccupancy() *Occupancy {
	return &Occupancy{units: make(map[Cell]struct{})}
}

// SetWalkable stores a copy of cells, indexed [x][y], and marks the grid ready.
func (o *Occupancy) SetWalkable(cells [][]bool) error {
	if o.ready {
		return ErrOccupancyReady
	}
	if len(cells) == 0 {
		return fmt.Errorf("%w: empty", ErrGridShape)
	}
	height := len(cells[0])
	walkable := make([][]bool, len(cells))
	for x, column := range cells {
		if len(column) != height {
			return fmt.Errorf("%w: column %d has %d cells, want %d", ErrGridShape, x, len(column), height)
		}
		walkable[x] = append([]bool(nil), column...)
	}
	o.walkable = walkable
	o.ready = true
	return nil
}

// Reset drops everything so a new level can be loaded.
func (o *Occupancy) Reset() {
	o.walkable = nil
	o.units = make(map[Cell]struct{})
	o.ready = false
}

func (o *Occupancy) Ready() bool {
	return o != nil && o.ready
}

func (o *Occupancy) Width() int {
	return len(o.walkable)
}

func (o *Occupancy) Height() int {
	if len(o.walkable) == 0 {
		return 0
	}
	return len(o.walkable[0])
}

// IsTrespassable reports whether c is inside the level and walkable.
// Anything outside is closed.
func (o *Occupancy) IsTrespassable(c Cell) bool {
	if o == nil || c.X < 0 || c.X >= len(o.walkable) {
		return false
	}
	column := o.walkable[c.X]
	if c.Y < 0 || c.Y >= len(column) {
		return false
	}
	return column[c.Y]
}

func (o *Occupancy) IsOccupied(c Cell) bool {
	if o == nil {
		return false
	}
	_, ok := o.units[c]
	return ok
}

func (o *Occupancy) ClearUnits() {
	clear(o.units)
}

func (o *Occupancy) MarkUnit(c Cell) {
	if o.units == nil {
		o.units = make(map[Cell]struct{})
	}
	o.units[c] = struct{}{}
}

func (o *Occupancy) UnitCount() int {
	return len(o.units)
}

// Units returns the occupied cells in no particular order.
func (o *Occupancy) Units() []Cell {
	out := make([]Cell, 0, len(o.units))
	for c := range o.units {
		out = append(out, c)
	}
	return out
}

var OccupancyComponent = NewComponent[Occupancy]()
