package entity

import (
	"fmt"

	"github.com/jakecoffman/cp"

	"github.com/milk9111/nocturne/ecs"
	"github.com/milk9111/nocturne/ecs/component"
	"github.com/milk9111/nocturne/prefabs"
)

func NewPlayerAt(w *ecs.World, pos cp.Vector, tuning *prefabs.TuningSpec) (ecs.Entity, error) {
	pt := tuning.Player
	entity := ecs.CreateEntity(w)
	if err := ecs.Add(w, entity, component.PlayerComponent.Kind(), &component.Player{
		HP:         pt.MaxHP,
		MaxHP:      pt.MaxHP,
		PhysRes:    pt.PhysRes,
		HPGain:     pt.HPGain,
		HungerRate: pt.HungerRate,
		MaxSpeed:   pt.MaxSpeed,
		Accel:      pt.Accel,
	}); err != nil {
		return 0, fmt.Errorf("player: add player: %w", err)
	}
	if err := ecs.Add(w, entity, component.PlayerInputComponent.Kind(), &component.PlayerInput{}); err != nil {
		return 0, fmt.Errorf("player: add input: %w", err)
	}
	if err := ecs.Add(w, entity, component.TransformComponent.Kind(), &component.Transform{X: pos.X, Y: pos.Y}); err != nil {
		return 0, fmt.Errorf("player: add transform: %w", err)
	}
	if err := ecs.Add(w, entity, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Radius: pt.Radius}); err != nil {
		return 0, fmt.Errorf("player: add physics body: %w", err)
	}
	if err := ecs.Add(w, entity, component.CollisionLayerComponent.Kind(), &component.CollisionLayer{
		Category: component.CategoryPlayer,
		Mask:     cp.ALL_CATEGORIES,
	}); err != nil {
		return 0, fmt.Errorf("player: add collision layer: %w", err)
	}
	if err := ecs.Add(w, entity, component.AnimatorComponent.Kind(), &component.Animator{Current: component.AnimIdle}); err != nil {
		return 0, fmt.Errorf("player: add animator: %w", err)
	}
	return entity, nil
}
