package system

import (
	"github.com/milk9111/nocturne/ecs"
	"github.com/milk9111/nocturne/ecs/component"
	"github.com/milk9111/nocturne/logger"
)

// OccupancySystem rebuilds the per-tick unit set from every Mover. It must
// run before anything queries paths in the same tick.
type OccupancySystem struct {
	wasReady bool
}

func NewOccupancySystem() *OccupancySystem {
	return &OccupancySystem{}
}

func (s *OccupancySystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	grid, ok := ecs.Single(w, component.GridTransformComponent.Kind())
	if !ok || !grid.Ready() {
		return
	}
	occ, ok := ecs.Single(w, component.OccupancyComponent.Kind())
	if !ok || !occ.Ready() {
		s.wasReady = false
		return
	}
	if !s.wasReady {
		s.wasReady = true
		logger.For("occupancy").WithField("width", occ.Width()).WithField("height", occ.Height()).Info("grid ready")
	}

	occ.ClearUnits()
	ecs.ForEach2(w, component.MoverComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, _ *component.Mover, t *component.Transform) {
		if ecs.Has(w, e, component.PlayerComponent.Kind()) {
			return
		}
		occ.MarkUnit(grid.WorldToCell(t.Vec()))
	})
}
