package ecs

import "github.com/milk9111/nocturne/ecs/component"

// CreateEntity allocates a new entity in w.
func CreateEntity(w *World) Entity {
	return w.CreateEntity()
}

// DestroyEntity destroys e in w.
func DestroyEntity(w *World, e Entity) bool {
	return w.DestroyEntity(e)
}

// IsAlive reports whether e is alive in w.
func IsAlive(w *World, e Entity) bool {
	return w.IsAlive(e)
}

// Entities returns every live entity in slot order.
func Entities(w *World) []Entity {
	if w == nil {
		return nil
	}
	out := make([]Entity, 0, w.entities.count)
	w.entities.each(func(e Entity) { out = append(out, e) })
	return out
}

// Add stores a pointer component. Systems mutate components in place
// through the pointer returned by Get.
func Add[T any](w *World, e Entity, kind component.ComponentKind[T], value *T) error {
	if value == nil {
		return component.ErrNilComponent
	}
	return w.AddComponent(e, kind.ID(), value)
}

func Remove[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	return w.RemoveComponent(e, kind.ID())
}

func Has[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	return w.HasComponent(e, kind.ID())
}

func Get[T any](w *World, e Entity, kind component.ComponentKind[T]) (*T, bool) {
	value, ok := w.GetComponent(e, kind.ID())
	if !ok {
		return nil, false
	}
	cast, ok := value.(*T)
	return cast, ok
}

// First returns the first entity carrying kind.
func First[T any](w *World, kind component.ComponentKind[T]) (Entity, bool) {
	return w.First(kind.ID())
}

// Single returns the component of the first entity carrying kind. It is how
// systems read world-wide resources such as the grid transform.
func Single[T any](w *World, kind component.ComponentKind[T]) (*T, bool) {
	e, ok := w.First(kind.ID())
	if !ok {
		return nil, false
	}
	return Get(w, e, kind)
}

// ForEach visits every entity carrying kind. The entity list is snapshotted,
// so fn may destroy entities.
func ForEach[T any](w *World, kind component.ComponentKind[T], fn func(Entity, *T)) {
	if w == nil || fn == nil {
		return
	}
	for _, e := range w.store(kind.ID(), false).Entities() {
		if v, ok := Get(w, e, kind); ok {
			fn(e, v)
		}
	}
}

func ForEach2[A, B any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], fn func(Entity, *A, *B)) {
	if w == nil || fn == nil {
		return
	}
	for _, e := range w.Query(ka.ID(), kb.ID()) {
		a, okA := Get(w, e, ka)
		b, okB := Get(w, e, kb)
		if okA && okB {
			fn(e, a, b)
		}
	}
}

func ForEach3[A, B, C any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], kc component.ComponentKind[C], fn func(Entity, *A, *B, *C)) {
	if w == nil || fn == nil {
		return
	}
	for _, e := range w.Query(ka.ID(), kb.ID(), kc.ID()) {
		a, okA := Get(w, e, ka)
		b, okB := Get(w, e, kb)
		c, okC := Get(w, e, kc)
		if okA && okB && okC {
			fn(e, a, b, c)
		}
	}
}
