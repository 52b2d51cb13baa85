package system

import (
	"github.com/jakecoffman/cp"

	"github.com/milk9111/nocturne/ecs"
	"github.com/milk9111/nocturne/ecs/component"
)

const (
	collisionTypePlayer cp.CollisionType = iota + 1
	collisionTypeNPC
	collisionTypeSolid
	collisionTypeProjectile
	collisionTypeCollectible
)

// sightMask is what blocks or completes a line-of-sight ray.
const sightMask = component.CategoryPlayer | component.CategoryStructure | component.CategoryRaycastHelp

// CollisionEvent is pushed on the world queue when two shapes start touching.
type CollisionEvent struct {
	A ecs.Entity
	B ecs.Entity
}

// Raycaster answers line-of-sight queries.
type Raycaster interface {
	// FirstHit returns the entity owning the first shape the segment from
	// a to b touches among shapes in mask.
	FirstHit(a, b cp.Vector, mask uint) (ecs.Entity, bool)
}

// PhysicsSystem owns the Chipmunk space. It mirrors every entity with a
// PhysicsBody and Transform into the space, feeds gameplay velocities in,
// steps, copies positions back and reports collision starts as events.
type PhysicsSystem struct {
	space         *cp.Space
	handlersReady bool

	entities map[ecs.Entity]*bodyInfo
	shapes   map[*cp.Shape]ecs.Entity
	pending  []CollisionEvent
}

type bodyInfo struct {
	body     *cp.Body
	shape    *cp.Shape
	static   bool
	disabled bool
}

func NewPhysicsSystem() *PhysicsSystem {
	return &PhysicsSystem{
		space:    newSpace(),
		entities: make(map[ecs.Entity]*bodyInfo),
		shapes:   make(map[*cp.Shape]ecs.Entity),
	}
}

func newSpace() *cp.Space {
	space := cp.NewSpace()
	space.Iterations = 10
	space.SetGravity(cp.Vector{})
	return space
}

func (ps *PhysicsSystem) Space() *cp.Space {
	if ps == nil {
		return nil
	}
	return ps.space
}

// Reset drops every body so a new level starts from an empty space.
func (ps *PhysicsSystem) Reset() {
	ps.space = newSpace()
	ps.handlersReady = false
	ps.entities = make(map[ecs.Entity]*bodyInfo)
	ps.shapes = make(map[*cp.Shape]ecs.Entity)
	ps.pending = nil
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}
	if ps.space == nil {
		ps.Reset()
	}

	ps.ensureHandlers()
	ps.syncEntities(w)
	ps.syncVelocities(w)

	dt := 1.0 / 60.0
	if clock, ok := ecs.Single(w, component.ClockComponent.Kind()); ok && clock.Dt > 0 {
		dt = clock.Dt.Seconds()
	}
	ps.space.Step(dt)

	ps.syncTransforms(w)
	for _, evt := range ps.pending {
		w.Events().Push(ecs.Event{Type: component.EventCollision, Data: evt})
	}
	ps.pending = ps.pending[:0]
}

// FirstHit implements Raycaster on the current space.
func (ps *PhysicsSystem) FirstHit(a, b cp.Vector, mask uint) (ecs.Entity, bool) {
	if ps == nil || ps.space == nil {
		return 0, false
	}
	// Rays travel in the raycast category so shapes that only block sight
	// (mask = raycast) still answer them.
	filter := cp.NewShapeFilter(cp.NO_GROUP, component.CategoryRaycastHelp, mask)
	info := ps.space.SegmentQueryFirst(a, b, 0, filter)
	if info.Shape == nil {
		return 0, false
	}
	e, ok := ps.shapes[info.Shape]
	return e, ok
}

func (ps *PhysicsSystem) ensureHandlers() {
	if ps.handlersReady || ps.space == nil {
		return
	}
	begin := func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		sys, ok := userData.(*PhysicsSystem)
		if !ok || sys == nil {
			return true
		}
		shapeA, shapeB := arb.Shapes()
		a, okA := sys.shapes[shapeA]
		b, okB := sys.shapes[shapeB]
		if okA && okB {
			sys.pending = append(sys.pending, CollisionEvent{A: a, B: b})
		}
		return true
	}

	playerHandler := ps.space.NewWildcardCollisionHandler(collisionTypePlayer)
	playerHandler.UserData = ps
	playerHandler.BeginFunc = begin

	projectileHandler := ps.space.NewCollisionHandler(collisionTypeProjectile, collisionTypeSolid)
	projectileHandler.UserData = ps
	projectileHandler.BeginFunc = begin

	ps.handlersReady = true
}

func (ps *PhysicsSystem) syncEntities(w *ecs.World) {
	ps.cleanupEntities(w)

	for _, e := range w.Query(component.PhysicsBodyComponent.Kind().ID(), component.TransformComponent.Kind().ID()) {
		bodyComp, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
		if !ok {
			continue
		}
		transform, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			continue
		}

		info := ps.entities[e]
		if info == nil {
			info = ps.createBodyInfo(w, e, *transform, *bodyComp)
			if info == nil {
				continue
			}
			ps.entities[e] = info
			bodyComp.Body = info.body
			bodyComp.Shape = info.shape
		}

		if bodyComp.Disabled && !info.disabled {
			ps.space.RemoveShape(info.shape)
			delete(ps.shapes, info.shape)
			info.disabled = true
		}
		if !info.disabled && info.shape.Sensor() != bodyComp.Sensor {
			info.shape.SetSensor(bodyComp.Sensor)
		}
	}
}

func (ps *PhysicsSystem) createBodyInfo(w *ecs.World, e ecs.Entity, transform component.Transform, bodyComp component.PhysicsBody) *bodyInfo {
	if ps.space == nil {
		return nil
	}
	center := transform.Vec()
	layer := collisionLayerFor(w, e)

	width, height, radius := bodyComp.Width, bodyComp.Height, bodyComp.Radius
	if radius <= 0 && (width <= 0 || height <= 0) {
		radius = 4.5
	}

	info := &bodyInfo{static: bodyComp.Static}
	if bodyComp.Static {
		var shape *cp.Shape
		if radius > 0 {
			shape = cp.NewCircle(ps.space.StaticBody, radius, center)
		} else {
			bb := cp.BB{L: center.X - width/2, B: center.Y - height/2, R: center.X + width/2, T: center.Y + height/2}
			shape = cp.NewBox2(ps.space.StaticBody, bb, 0)
		}
		ps.configureShape(w, e, shape, layer, bodyComp.Sensor)
		ps.space.AddShape(shape)
		info.body = ps.space.StaticBody
		info.shape = shape
		return info
	}

	body := cp.NewBody(1, cp.INFINITY)
	body.SetPosition(center)

	var shape *cp.Shape
	if radius > 0 {
		shape = cp.NewCircle(body, radius, cp.Vector{})
	} else {
		shape = cp.NewBox(body, width, height, 0)
	}
	ps.configureShape(w, e, shape, layer, bodyComp.Sensor)

	ps.space.AddBody(body)
	ps.space.AddShape(shape)
	info.body = body
	info.shape = shape
	return info
}

func (ps *PhysicsSystem) configureShape(w *ecs.World, e ecs.Entity, shape *cp.Shape, layer component.CollisionLayer, sensor bool) {
	shape.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, layer.Category, layer.Mask))
	shape.SetCollisionType(collisionTypeFor(w, e))
	shape.SetSensor(sensor)
	ps.shapes[shape] = e
}

func collisionLayerFor(w *ecs.World, e ecs.Entity) component.CollisionLayer {
	if layer, ok := ecs.Get(w, e, component.CollisionLayerComponent.Kind()); ok {
		out := *layer
		if out.Mask == 0 {
			out.Mask = cp.ALL_CATEGORIES
		}
		return out
	}
	return component.CollisionLayer{Category: component.CategoryStructure, Mask: cp.ALL_CATEGORIES}
}

func collisionTypeFor(w *ecs.World, e ecs.Entity) cp.CollisionType {
	switch {
	case ecs.Has(w, e, component.PlayerComponent.Kind()):
		return collisionTypePlayer
	case ecs.Has(w, e, component.NPCComponent.Kind()):
		return collisionTypeNPC
	case ecs.Has(w, e, component.ProjectileComponent.Kind()):
		return collisionTypeProjectile
	case ecs.Has(w, e, component.CollectibleComponent.Kind()):
		return collisionTypeCollectible
	default:
		return collisionTypeSolid
	}
}

func (ps *PhysicsSystem) syncVelocities(w *ecs.World) {
	ecs.ForEach(w, component.PhysicsBodyComponent.Kind(), func(e ecs.Entity, bodyComp *component.PhysicsBody) {
		info := ps.entities[e]
		if info == nil || info.static {
			return
		}
		info.body.SetVelocityVector(bodyComp.Velocity)
	})
}

func (ps *PhysicsSystem) syncTransforms(w *ecs.World) {
	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, bodyComp *component.PhysicsBody, transform *component.Transform) {
		info := ps.entities[e]
		if info == nil || info.static {
			return
		}
		transform.Set(info.body.Position())
	})
}

func (ps *PhysicsSystem) cleanupEntities(w *ecs.World) {
	for e, info := range ps.entities {
		if w.IsAlive(e) && ecs.Has(w, e, component.PhysicsBodyComponent.Kind()) {
			continue
		}
		if !info.disabled {
			ps.space.RemoveShape(info.shape)
		}
		delete(ps.shapes, info.shape)
		if !info.static {
			ps.space.RemoveBody(info.body)
		}
		delete(ps.entities, e)
	}
}
