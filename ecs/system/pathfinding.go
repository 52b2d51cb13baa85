package system

import (
	"container/heap"

	"github.com/jakecoffman/cp"

	"github.com/milk9111/nocturne/ecs/component"
)

const (
	straightCost     = 10
	diagonalCost     = 14
	occupiedPenalty  = 100
	escapeHeuristic  = 9999
	hunterChaseStop  = 10  // stop once d² to the goal drops below this
	hunterEscapeStop = 25  // stop once d² to the goal exceeds this
	civEscapeStop    = 100 // stop once d² to the goal exceeds this
	hunterChaseTrim  = 4
	hunterChaseMin   = 5
)

var cardinalMoves = [4]component.Cell{{X: 1, Y: 0}, {X: 0, Y: 1}, {X: -1, Y: 0}, {X: 0, Y: -1}}

// PathPolicy pairs a heuristic with a goal predicate.
type PathPolicy int

const (
	PolicyNone PathPolicy = iota
	PolicyGoto
	PolicyHunterChase
	PolicyHunterEscape
	PolicyCivilianEscape
)

func (p PathPolicy) String() string {
	switch p {
	case PolicyGoto:
		return "goto"
	case PolicyHunterChase:
		return "hunter-chase"
	case PolicyHunterEscape:
		return "hunter-escape"
	case PolicyCivilianEscape:
		return "civilian-escape"
	default:
		return "none"
	}
}

// PolicyFor selects the search policy for an NPC of kind in state.
// Attack and Dead never path.
func PolicyFor(kind component.NPCKind, state component.NPCState) PathPolicy {
	switch state {
	case component.Chill, component.Look:
		return PolicyGoto
	case component.Chase:
		if kind == component.Hunter {
			return PolicyHunterChase
		}
		return PolicyGoto
	case component.Escape:
		if kind == component.Hunter {
			return PolicyHunterEscape
		}
		return PolicyCivilianEscape
	default:
		return PolicyNone
	}
}

func (p PathPolicy) heuristic(c, goal component.Cell) int {
	switch p {
	case PolicyHunterEscape, PolicyCivilianEscape:
		return escapeHeuristic - c.DistanceSq(goal)
	default:
		return absInt(c.X-goal.X) + absInt(c.Y-goal.Y)*10
	}
}

func (p PathPolicy) done(c, goal component.Cell) bool {
	switch p {
	case PolicyGoto:
		return c == goal
	case PolicyHunterChase:
		return c.DistanceSq(goal) < hunterChaseStop
	case PolicyHunterEscape:
		return c.DistanceSq(goal) > hunterEscapeStop
	case PolicyCivilianEscape:
		return c.DistanceSq(goal) > civEscapeStop
	default:
		return false
	}
}

// Pathfinder runs grid searches against the level's occupancy. It reads the
// occupancy only; the unit set must be rebuilt before any query in a tick.
type Pathfinder struct {
	Grid  *component.GridTransform
	Cells *component.Occupancy
}

func NewPathfinder(grid *component.GridTransform, cells *component.Occupancy) *Pathfinder {
	return &Pathfinder{Grid: grid, Cells: cells}
}

func (p *Pathfinder) Ready() bool {
	return p != nil && p.Grid.Ready() && p.Cells.Ready()
}

func (p *Pathfinder) IsTrespassable(c component.Cell) bool {
	return p.Ready() && p.Cells.IsTrespassable(c)
}

func (p *Pathfinder) CellCenter(c component.Cell) cp.Vector {
	return p.Grid.CellToWorld(c)
}

// FindPath returns the waypoints an NPC of kind in state should walk from
// start towards goal. The start cell is not included. ok is false when the
// grid is not ready, nothing satisfies the policy, or the route collapses
// after trimming; callers retry on a later tick.
func (p *Pathfinder) FindPath(start, goal component.Cell, kind component.NPCKind, state component.NPCState) ([]component.Cell, bool) {
	policy := PolicyFor(kind, state)
	if policy == PolicyNone {
		return nil, false
	}
	raw, _, ok := p.Route(start, goal, policy)
	if !ok {
		return nil, false
	}

	if policy == PolicyHunterChase {
		if len(raw) <= hunterChaseMin {
			return nil, false
		}
		raw = raw[:len(raw)-hunterChaseTrim]
	}
	if len(raw) <= 1 {
		return nil, false
	}

	out := make([]component.Cell, len(raw)-1)
	copy(out, raw[1:])
	return out, true
}

// Route runs the raw search. The returned path starts at start and ends at
// the first cell satisfying the policy; cost is the summed move cost.
func (p *Pathfinder) Route(start, goal component.Cell, policy PathPolicy) ([]component.Cell, int, bool) {
	if !p.Ready() || policy == PolicyNone {
		return nil, 0, false
	}

	open := &openSet{}
	heap.Init(open)

	gScore := map[component.Cell]int{start: 0}
	cameFrom := make(map[component.Cell]component.Cell)
	heap.Push(open, &openItem{pos: start, g: 0, f: policy.heuristic(start, goal)})

	var buf []pathStep
	for open.Len() > 0 {
		current := heap.Pop(open).(*openItem)
		cur := current.pos

		if policy.done(cur, goal) {
			return reconstructPath(cameFrom, start, cur), current.g, true
		}
		if current.g > gScore[cur] {
			continue
		}

		buf = p.successors(cur, buf[:0])
		for _, step := range buf {
			tentativeG := current.g + step.cost
			if best, seen := gScore[step.pos]; seen && best <= tentativeG {
				continue
			}
			gScore[step.pos] = tentativeG
			cameFrom[step.pos] = cur
			heap.Push(open, &openItem{
				pos: step.pos,
				g:   tentativeG,
				f:   tentativeG + policy.heuristic(step.pos, goal),
			})
		}
	}

	return nil, 0, false
}

type pathStep struct {
	pos  component.Cell
	cost int
}

// successors lists the trespassable cardinal neighbours of c, then every
// diagonal whose two cardinal legs and target are all trespassable.
func (p *Pathfinder) successors(c component.Cell, out []pathStep) []pathStep {
	var open [4]bool
	for i, mv := range cardinalMoves {
		next := c.Add(mv)
		if !p.Cells.IsTrespassable(next) {
			continue
		}
		open[i] = true
		out = append(out, pathStep{pos: next, cost: p.moveCost(next, straightCost)})
	}
	for i := range cardinalMoves {
		j := (i + 1) % len(cardinalMoves)
		if !open[i] || !open[j] {
			continue
		}
		next := c.Add(cardinalMoves[i]).Add(cardinalMoves[j])
		if !p.Cells.IsTrespassable(next) {
			continue
		}
		out = append(out, pathStep{pos: next, cost: p.moveCost(next, diagonalCost)})
	}
	return out
}

func (p *Pathfinder) moveCost(dest component.Cell, base int) int {
	if p.Cells.IsOccupied(dest) {
		return base + occupiedPenalty
	}
	return base
}

func reconstructPath(cameFrom map[component.Cell]component.Cell, start, end component.Cell) []component.Cell {
	path := []component.Cell{end}
	for cur := end; cur != start; {
		cur = cameFrom[cur]
		path = append(path, cur)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

type openItem struct {
	pos   component.Cell
	f     int
	g     int
	index int
}

type openSet []*openItem

func (o openSet) Len() int { return len(o) }

// Less orders by f, preferring the deeper node on ties.
func (o openSet) Less(i, j int) bool {
	if o[i].f != o[j].f {
		return o[i].f < o[j].f
	}
	return o[i].g > o[j].g
}

func (o openSet) Swap(i, j int) {
	o[i], o[j] = o[j], o[i]
	o[i].index = i
	o[j].index = j
}

func (o *openSet) Push(x any) {
	item := x.(*openItem)
	item.index = len(*o)
	*o = append(*o, item)
}

func (o *openSet) Pop() any {
	old := *o
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*o = old[:n-1]
	return item
}
