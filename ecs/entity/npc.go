package entity

import (
	"fmt"

	"github.com/jakecoffman/cp"

	"github.com/milk9111/nocturne/ecs"
	"github.com/milk9111/nocturne/ecs/component"
	"github.com/milk9111/nocturne/prefabs"
)

// NewNPC creates a civilian or hunter at pos in Chill with no route.
func NewNPC(w *ecs.World, kind component.NPCKind, pos cp.Vector, tuning *prefabs.TuningSpec) (ecs.Entity, error) {
	tune := tuning.Civilian
	if kind == component.Hunter {
		tune = tuning.Hunter
	}

	entity := ecs.CreateEntity(w)
	if err := ecs.Add(w, entity, component.NPCComponent.Kind(), &component.NPC{Kind: kind}); err != nil {
		return 0, fmt.Errorf("npc: add npc tag: %w", err)
	}
	mind := component.NewNPCMind(tune.ChillPeriod, tune.AttackCooldown, tune.EmotePeriod, tune.DeathDuration)
	if err := ecs.Add(w, entity, component.NPCMindComponent.Kind(), &mind); err != nil {
		return 0, fmt.Errorf("npc: add mind: %w", err)
	}
	if err := ecs.Add(w, entity, component.TransformComponent.Kind(), &component.Transform{X: pos.X, Y: pos.Y}); err != nil {
		return 0, fmt.Errorf("npc: add transform: %w", err)
	}
	if err := ecs.Add(w, entity, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Radius: tune.Radius}); err != nil {
		return 0, fmt.Errorf("npc: add physics body: %w", err)
	}
	if err := ecs.Add(w, entity, component.CollisionLayerComponent.Kind(), &component.CollisionLayer{
		Category: component.CategoryNPC,
		Mask:     component.CategoryPlayer | component.CategoryStructure,
	}); err != nil {
		return 0, fmt.Errorf("npc: add collision layer: %w", err)
	}
	if err := ecs.Add(w, entity, component.AnimatorComponent.Kind(), &component.Animator{Current: component.AnimIdle}); err != nil {
		return 0, fmt.Errorf("npc: add animator: %w", err)
	}
	if err := ecs.Add(w, entity, component.MoverComponent.Kind(), &component.Mover{}); err != nil {
		return 0, fmt.Errorf("npc: add mover: %w", err)
	}
	return entity, nil
}

// NewProjectile creates a thrown weapon moving at vel. It despawns after the
// configured lifetime or on its first hit.
func NewProjectile(w *ecs.World, pos, vel cp.Vector, variant int, tuning *prefabs.TuningSpec) (ecs.Entity, error) {
	entity := ecs.CreateEntity(w)
	if err := ecs.Add(w, entity, component.ProjectileComponent.Kind(), &component.Projectile{Variant: variant}); err != nil {
		return 0, fmt.Errorf("projectile: add tag: %w", err)
	}
	if err := ecs.Add(w, entity, component.TransformComponent.Kind(), &component.Transform{X: pos.X, Y: pos.Y}); err != nil {
		return 0, fmt.Errorf("projectile: add transform: %w", err)
	}
	size := tuning.Projectile.HalfSize * 2
	if err := ecs.Add(w, entity, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Width:    size,
		Height:   size,
		Velocity: vel,
		Sensor:   true,
	}); err != nil {
		return 0, fmt.Errorf("projectile: add physics body: %w", err)
	}
	if err := ecs.Add(w, entity, component.CollisionLayerComponent.Kind(), &component.CollisionLayer{
		Category: component.CategoryProjectile,
		Mask:     component.CategoryPlayer | component.CategoryStructure,
	}); err != nil {
		return 0, fmt.Errorf("projectile: add collision layer: %w", err)
	}
	if err := ecs.Add(w, entity, component.TTLComponent.Kind(), component.NewTTL(tuning.Projectile.Lifetime)); err != nil {
		return 0, fmt.Errorf("projectile: add ttl: %w", err)
	}
	if err := ecs.Add(w, entity, component.MoverComponent.Kind(), &component.Mover{}); err != nil {
		return 0, fmt.Errorf("projectile: add mover: %w", err)
	}
	return entity, nil
}

// NewRemains leaves a body where an NPC died.
func NewRemains(w *ecs.World, kind component.NPCKind, pos cp.Vector, tuning *prefabs.TuningSpec) (ecs.Entity, error) {
	entity := ecs.CreateEntity(w)
	if err := ecs.Add(w, entity, component.RemainsComponent.Kind(), &component.Remains{Kind: kind}); err != nil {
		return 0, fmt.Errorf("remains: add tag: %w", err)
	}
	if err := ecs.Add(w, entity, component.TransformComponent.Kind(), &component.Transform{X: pos.X, Y: pos.Y}); err != nil {
		return 0, fmt.Errorf("remains: add transform: %w", err)
	}
	if err := ecs.Add(w, entity, component.TTLComponent.Kind(), component.NewTTL(tuning.Remains.Lifetime)); err != nil {
		return 0, fmt.Errorf("remains: add ttl: %w", err)
	}
	return entity, nil
}

const emoteOffset = 10

// NewEmote pops a reaction bubble above pos for one emote period.
func NewEmote(w *ecs.World, kind component.EmoteKind, pos cp.Vector, tuning *prefabs.TuningSpec) (ecs.Entity, error) {
	entity := ecs.CreateEntity(w)
	if err := ecs.Add(w, entity, component.EmoteComponent.Kind(), &component.Emote{Kind: kind}); err != nil {
		return 0, fmt.Errorf("emote: add tag: %w", err)
	}
	if err := ecs.Add(w, entity, component.TransformComponent.Kind(), &component.Transform{X: pos.X, Y: pos.Y + emoteOffset}); err != nil {
		return 0, fmt.Errorf("emote: add transform: %w", err)
	}
	if err := ecs.Add(w, entity, component.TTLComponent.Kind(), component.NewTTL(tuning.Civilian.EmotePeriod)); err != nil {
		return 0, fmt.Errorf("emote: add ttl: %w", err)
	}
	return entity, nil
}
