package system

import (
	"testing"

	"github.com/jakecoffman/cp"

	"github.com/milk9111/nocturne/ecs"
	"github.com/milk9111/nocturne/ecs/component"
	"github.com/milk9111/nocturne/ecs/entity"
)

func TestOccupancySystemTracksMovers(t *testing.T) {
	w := newTestWorld(t, true)
	addPlayer(t, w, playerSpot)
	npc := addNPC(t, w, component.Civilian, cp.Vector{X: 24, Y: 312})

	sys := NewOccupancySystem()
	sys.Update(w)

	occ, _ := ecs.Single(w, component.OccupancyComponent.Kind())
	if got := occ.Units(); len(got) != 1 || got[0] != (component.Cell{X: 1, Y: 0}) {
		t.Fatalf("units = %v, want [{1 0}]", got)
	}
	if occ.IsOccupied(component.Cell{X: 7, Y: 5}) {
		t.Fatalf("player cell should not count as a unit")
	}

	tr, _ := ecs.Get(w, npc, component.TransformComponent.Kind())
	tr.Set(cp.Vector{X: 40, Y: 312})
	sys.Update(w)
	if occ.IsOccupied(component.Cell{X: 1, Y: 0}) || !occ.IsOccupied(component.Cell{X: 2, Y: 0}) {
		t.Fatalf("units not rebuilt after a move: %v", occ.Units())
	}
}

func TestOccupancySystemWaitsForGrid(t *testing.T) {
	w := ecs.NewWorld()
	if _, err := entity.NewWorldState(w); err != nil {
		t.Fatalf("world state: %v", err)
	}
	addNPC(t, w, component.Hunter, cp.Vector{X: 24, Y: 24})

	NewOccupancySystem().Update(w)

	occ, _ := ecs.Single(w, component.OccupancyComponent.Kind())
	if occ.UnitCount() != 0 {
		t.Fatalf("marked %d units before the grid was ready", occ.UnitCount())
	}
}
