package system

import (
	"testing"

	"github.com/jakecoffman/cp"

	"github.com/milk9111/nocturne/ecs"
	"github.com/milk9111/nocturne/ecs/component"
)

func addBox(t *testing.T, w *ecs.World, center cp.Vector, width, height float64, layer component.CollisionLayer) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.StructureComponent.Kind(), &component.Structure{}); err != nil {
		t.Fatalf("structure: %v", err)
	}
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: center.X, Y: center.Y}); err != nil {
		t.Fatalf("transform: %v", err)
	}
	if err := ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Width: width, Height: height, Static: true}); err != nil {
		t.Fatalf("body: %v", err)
	}
	if err := ecs.Add(w, e, component.CollisionLayerComponent.Kind(), &layer); err != nil {
		t.Fatalf("layer: %v", err)
	}
	return e
}

func TestPhysicsLineOfSight(t *testing.T) {
	wallLayer := component.CollisionLayer{Category: component.CategoryStructure}
	hedgeLayer := component.CollisionLayer{Category: component.CategoryRaycastHelp, Mask: component.CategoryRaycastHelp}

	tests := []struct {
		name      string
		layer     *component.CollisionLayer
		wantClear bool
	}{
		{name: "open", wantClear: true},
		{name: "wall", layer: &wallLayer},
		{name: "hedge", layer: &hedgeLayer},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newTestWorld(t, false)
			player := addPlayer(t, w, cp.Vector{X: 200, Y: 100})
			npcPos := cp.Vector{X: 40, Y: 100}
			addNPC(t, w, component.Civilian, npcPos)
			addNPC(t, w, component.Civilian, cp.Vector{X: 80, Y: 100})
			var blocker ecs.Entity
			if tt.layer != nil {
				blocker = addBox(t, w, cp.Vector{X: 120, Y: 100}, 16, 64, *tt.layer)
			}

			ps := NewPhysicsSystem()
			ps.Update(w)

			hit, ok := ps.FirstHit(npcPos, cp.Vector{X: 200, Y: 100}, sightMask)
			if !ok {
				t.Fatalf("ray hit nothing")
			}
			if tt.wantClear && hit != player {
				t.Fatalf("hit %v, want player %v", hit, player)
			}
			if !tt.wantClear && hit != blocker {
				t.Fatalf("hit %v, want blocker %v", hit, blocker)
			}
		})
	}
}

func TestPhysicsReportsPlayerContacts(t *testing.T) {
	w := newTestWorld(t, false)
	player := addPlayer(t, w, cp.Vector{X: 100, Y: 100})
	wall := addBox(t, w, cp.Vector{X: 110, Y: 100}, 16, 16, component.CollisionLayer{Category: component.CategoryStructure})

	NewPhysicsSystem().Update(w)

	found := false
	for _, evt := range w.Events().Of(component.EventCollision) {
		col := evt.Data.(CollisionEvent)
		if (col.A == player && col.B == wall) || (col.A == wall && col.B == player) {
			found = true
		}
	}
	if !found {
		t.Fatalf("no player/wall contact reported")
	}
}

func TestPhysicsDisabledBodiesLeaveTheSpace(t *testing.T) {
	w := newTestWorld(t, false)
	player := addPlayer(t, w, cp.Vector{X: 200, Y: 100})
	npc := addNPC(t, w, component.Hunter, cp.Vector{X: 120, Y: 100})
	ps := NewPhysicsSystem()
	ps.Update(w)

	body, _ := ecs.Get(w, npc, component.PhysicsBodyComponent.Kind())
	body.Disabled = true
	ps.Update(w)
	ecs.DestroyEntity(w, npc)
	ps.Update(w)

	hit, ok := ps.FirstHit(cp.Vector{X: 40, Y: 100}, cp.Vector{X: 200, Y: 100}, sightMask)
	if !ok || hit != player {
		t.Fatalf("hit %v ok=%v, want player", hit, ok)
	}
}
