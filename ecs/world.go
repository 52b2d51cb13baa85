package ecs

import (
	"github.com/milk9111/nocturne/ecs/component"
)

// System updates a world each tick.
type System interface {
	Update(w *World)
}

// World owns entities, component stores, system order and the per-tick
// event queue.
type World struct {
	entities entityStore
	stores   map[component.ComponentID]*SparseSet
	systems  []System
	events   EventQueue
}

// NewWorld creates an empty ECS world.
func NewWorld() *World {
	return &World{stores: make(map[component.ComponentID]*SparseSet)}
}

// CreateEntity allocates a new entity.
func (w *World) CreateEntity() Entity {
	return w.entities.create()
}

// DestroyEntity removes every component of e and invalidates the handle.
func (w *World) DestroyEntity(e Entity) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	for _, s := range w.stores {
		s.Remove(e)
	}
	return w.entities.destroy(e)
}

// IsAlive reports whether an entity handle is valid.
func (w *World) IsAlive(e Entity) bool {
	if w == nil {
		return false
	}
	return w.entities.isAlive(e)
}

// EntityCount returns the number of live entities.
func (w *World) EntityCount() int {
	if w == nil {
		return 0
	}
	return w.entities.count
}

// AddSystem appends a system to the update order.
func (w *World) AddSystem(s System) {
	if w == nil || s == nil {
		return
	}
	w.systems = append(w.systems, s)
}

// Systems returns a copy of the update order.
func (w *World) Systems() []System {
	if w == nil {
		return nil
	}
	return append([]System(nil), w.systems...)
}

// Update runs all systems once, then drops the tick's events.
func (w *World) Update() {
	if w == nil {
		return
	}
	for _, s := range w.systems {
		if s != nil {
			s.Update(w)
		}
	}
	w.events.flush()
}

// Events returns the world event queue.
func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}

func (w *World) store(id component.ComponentID, create bool) *SparseSet {
	if w.stores == nil {
		w.stores = make(map[component.ComponentID]*SparseSet)
	}
	s, ok := w.stores[id]
	if !ok && create {
		s = newSparseSet()
		w.stores[id] = s
	}
	return s
}

// AddComponent stores value for e under the given component id.
func (w *World) AddComponent(e Entity, id component.ComponentID, value any) error {
	if w == nil || !w.entities.isAlive(e) {
		return component.ErrEntityNotAlive
	}
	if id == 0 {
		return component.ErrInvalidComponentKind
	}
	if value == nil {
		return component.ErrNilComponent
	}
	w.store(id, true).Set(e, value)
	return nil
}

// GetComponent returns the raw component value for e.
func (w *World) GetComponent(e Entity, id component.ComponentID) (any, bool) {
	if w == nil || !w.entities.isAlive(e) {
		return nil, false
	}
	s := w.store(id, false)
	if s == nil || !s.Has(e) {
		return nil, false
	}
	return s.Get(e), true
}

// HasComponent reports whether e carries the component id.
func (w *World) HasComponent(e Entity, id component.ComponentID) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	return w.store(id, false).Has(e)
}

// RemoveComponent deletes a component from e.
func (w *World) RemoveComponent(e Entity, id component.ComponentID) bool {
	if w == nil {
		return false
	}
	return w.store(id, false).Remove(e)
}

// Query returns every live entity carrying all of the given component ids.
func (w *World) Query(ids ...component.ComponentID) []Entity {
	if w == nil || len(ids) == 0 {
		return nil
	}
	sets := make([]*SparseSet, 0, len(ids))
	for _, id := range ids {
		s := w.store(id, false)
		if s == nil || s.Len() == 0 {
			return nil
		}
		sets = append(sets, s)
	}
	smallest := sets[0]
	for _, s := range sets[1:] {
		if s.Len() < smallest.Len() {
			smallest = s
		}
	}
	out := make([]Entity, 0, smallest.Len())
	for _, e := range smallest.denseEntities {
		match := true
		for _, s := range sets {
			if s != smallest && !s.Has(e) {
				match = false
				break
			}
		}
		if match {
			out = append(out, e)
		}
	}
	return out
}

// First returns the first entity carrying the component id.
func (w *World) First(id component.ComponentID) (Entity, bool) {
	if w == nil {
		return 0, false
	}
	s := w.store(id, false)
	if s.Len() == 0 {
		return 0, false
	}
	return s.denseEntities[0], true
}

// Count returns how many entities carry the component id.
func (w *World) Count(id component.ComponentID) int {
	if w == nil {
		return 0
	}
	return w.store(id, false).Len()
}
