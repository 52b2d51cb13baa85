package entity

import (
	"fmt"
	"strings"

	"github.com/jakecoffman/cp"
	"github.com/sirupsen/logrus"

	"github.com/milk9111/nocturne/ecs"
	"github.com/milk9111/nocturne/ecs/component"
	"github.com/milk9111/nocturne/levels"
	"github.com/milk9111/nocturne/logger"
	"github.com/milk9111/nocturne/prefabs"
)

// NewWorldState creates the singleton entity holding world-wide resources:
// clock, day cycle, grid transform, occupancy and the rose tally.
func NewWorldState(w *ecs.World) (ecs.Entity, error) {
	if e, ok := ecs.First(w, component.OccupancyComponent.Kind()); ok {
		return e, nil
	}
	entity := ecs.CreateEntity(w)
	if err := ecs.Add(w, entity, component.ClockComponent.Kind(), &component.Clock{}); err != nil {
		return 0, fmt.Errorf("world state: add clock: %w", err)
	}
	if err := ecs.Add(w, entity, component.DayCycleComponent.Kind(), &component.DayCycle{IsNight: true}); err != nil {
		return 0, fmt.Errorf("world state: add day cycle: %w", err)
	}
	if err := ecs.Add(w, entity, component.GridTransformComponent.Kind(), &component.GridTransform{}); err != nil {
		return 0, fmt.Errorf("world state: add grid transform: %w", err)
	}
	if err := ecs.Add(w, entity, component.OccupancyComponent.Kind(), component.NewOccupancy()); err != nil {
		return 0, fmt.Errorf("world state: add occupancy: %w", err)
	}
	if err := ecs.Add(w, entity, component.RoseTallyComponent.Kind(), &component.RoseTally{}); err != nil {
		return 0, fmt.Errorf("world state: add rose tally: %w", err)
	}
	return entity, nil
}

// LoadLevelToWorld builds the grid, walkability, colliders, spawners, roses
// and the player from lvl.
func LoadLevelToWorld(w *ecs.World, lvl *levels.Level, tuning *prefabs.TuningSpec) error {
	state, err := NewWorldState(w)
	if err != nil {
		return err
	}
	grid, _ := ecs.Get(w, state, component.GridTransformComponent.Kind())
	*grid = *component.NewGridTransform(cp.Vector{}, lvl.CellSize(), lvl.Width, lvl.Height)

	occ, _ := ecs.Get(w, state, component.OccupancyComponent.Kind())
	occ.Reset()
	if err := occ.SetWalkable(lvl.Walkable()); err != nil {
		return fmt.Errorf("level: walkable: %w", err)
	}

	physics, raycast := lvl.SolidLayers()
	solid := mergeMasks(physics, lvl.Width*lvl.Height)
	if err := addMergedTileColliders(w, grid, solid, lvl.Width, lvl.Height, component.CollisionLayer{
		Category: component.CategoryStructure,
		Mask:     cp.ALL_CATEGORIES,
	}); err != nil {
		return err
	}
	if err := addMergedTileColliders(w, grid, mergeMasks(raycast, lvl.Width*lvl.Height), lvl.Width, lvl.Height, component.CollisionLayer{
		Category: component.CategoryRaycastHelp,
		Mask:     component.CategoryRaycastHelp,
	}); err != nil {
		return err
	}

	tally, _ := ecs.Get(w, state, component.RoseTallyComponent.Kind())
	*tally = component.RoseTally{}

	for _, ent := range lvl.Entities {
		pos := grid.CellToWorld(component.Cell{X: ent.X, Y: ent.Y})
		switch strings.ToLower(ent.Type) {
		case "player":
			if _, err := NewPlayerAt(w, pos, tuning); err != nil {
				return err
			}
		case "civilian_spawner":
			if _, err := NewSpawner(w, component.Civilian, pos, tuning); err != nil {
				return err
			}
		case "hunter_spawner":
			if _, err := NewSpawner(w, component.Hunter, pos, tuning); err != nil {
				return err
			}
		case "rose":
			if _, err := NewRose(w, pos); err != nil {
				return err
			}
			tally.Total++
		default:
			logger.For("level").WithField("type", ent.Type).Warn("unknown entity type")
		}
	}

	logger.For("level").WithFields(logrus.Fields{
		"width":  lvl.Width,
		"height": lvl.Height,
		"roses":  tally.Total,
	}).Info("level loaded")
	return nil
}

func NewSpawner(w *ecs.World, kind component.NPCKind, pos cp.Vector, tuning *prefabs.TuningSpec) (ecs.Entity, error) {
	entity := ecs.CreateEntity(w)
	if err := ecs.Add(w, entity, component.SpawnerComponent.Kind(), &component.Spawner{
		Kind:  kind,
		Timer: component.NewRepeatingTimer(tuning.Spawner.Period),
	}); err != nil {
		return 0, fmt.Errorf("spawner: add spawner: %w", err)
	}
	if err := ecs.Add(w, entity, component.TransformComponent.Kind(), &component.Transform{X: pos.X, Y: pos.Y}); err != nil {
		return 0, fmt.Errorf("spawner: add transform: %w", err)
	}
	return entity, nil
}

const roseRadius = 4

func NewRose(w *ecs.World, pos cp.Vector) (ecs.Entity, error) {
	entity := ecs.CreateEntity(w)
	if err := ecs.Add(w, entity, component.CollectibleComponent.Kind(), &component.Collectible{}); err != nil {
		return 0, fmt.Errorf("rose: add collectible: %w", err)
	}
	if err := ecs.Add(w, entity, component.TransformComponent.Kind(), &component.Transform{X: pos.X, Y: pos.Y}); err != nil {
		return 0, fmt.Errorf("rose: add transform: %w", err)
	}
	if err := ecs.Add(w, entity, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Radius: roseRadius,
		Static: true,
		Sensor: true,
	}); err != nil {
		return 0, fmt.Errorf("rose: add physics body: %w", err)
	}
	if err := ecs.Add(w, entity, component.CollisionLayerComponent.Kind(), &component.CollisionLayer{
		Category: component.CategoryCollectible,
		Mask:     component.CategoryPlayer,
	}); err != nil {
		return 0, fmt.Errorf("rose: add collision layer: %w", err)
	}
	return entity, nil
}

func mergeMasks(layers [][]int, size int) []int {
	out := make([]int, size)
	for _, layer := range layers {
		for i, v := range layer {
			if i < size && v > 0 {
				out[i] = 1
			}
		}
	}
	return out
}

// addMergedTileColliders covers solid tiles with as few static boxes as a
// greedy row-then-column sweep allows.
func addMergedTileColliders(w *ecs.World, grid *component.GridTransform, layer []int, width, height int, collision component.CollisionLayer) error {
	if width <= 0 || height <= 0 {
		return nil
	}
	visited := make([]bool, width*height)
	index := func(x, y int) int { return y*width + x }
	open := func(x, y int) bool {
		idx := index(x, y)
		return idx < len(layer) && !visited[idx] && layer[idx] > 0
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if !open(x, y) {
				continue
			}

			maxW := 0
			for x2 := x; x2 < width && open(x2, y); x2++ {
				maxW++
			}

			maxH := 1
			for y2 := y + 1; y2 < height; y2++ {
				rowOK := true
				for x2 := x; x2 < x+maxW; x2++ {
					if !open(x2, y2) {
						rowOK = false
						break
					}
				}
				if !rowOK {
					break
				}
				maxH++
			}

			for yy := y; yy < y+maxH; yy++ {
				for xx := x; xx < x+maxW; xx++ {
					visited[index(xx, yy)] = true
				}
			}

			// Cell rows grow downward, so the box spans from the top edge of
			// row y to the bottom edge of row y+maxH-1.
			topLeft := grid.CellToWorld(component.Cell{X: x, Y: y})
			half := grid.CellSize / 2
			left := topLeft.X - half
			top := topLeft.Y + half
			boxW := float64(maxW) * grid.CellSize
			boxH := float64(maxH) * grid.CellSize

			e := ecs.CreateEntity(w)
			if err := ecs.Add(w, e, component.StructureComponent.Kind(), &component.Structure{}); err != nil {
				return fmt.Errorf("level: add structure: %w", err)
			}
			if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: left + boxW/2, Y: top - boxH/2}); err != nil {
				return fmt.Errorf("level: add transform: %w", err)
			}
			if err := ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
				Width:  boxW,
				Height: boxH,
				Static: true,
			}); err != nil {
				return fmt.Errorf("level: add physics body: %w", err)
			}
			layerCopy := collision
			if err := ecs.Add(w, e, component.CollisionLayerComponent.Kind(), &layerCopy); err != nil {
				return fmt.Errorf("level: add collision layer: %w", err)
			}
		}
	}
	return nil
}
