package render

import (
	"github.com/jakecoffman/cp"

	"github.com/milk9111/nocturne/ecs"
	"github.com/milk9111/nocturne/ecs/component"
)

// View maps world space (Y up) onto the screen (Y down).
type View struct {
	Left float64
	Top  float64
	Zoom float64
}

// ViewFor frames the whole level at zoom.
func ViewFor(w *ecs.World, zoom float64) View {
	v := View{Zoom: zoom}
	if grid, ok := ecs.Single(w, component.GridTransformComponent.Kind()); ok && grid.Ready() {
		v.Left = grid.Origin.X
		v.Top = grid.Origin.Y + float64(grid.Height)*grid.CellSize
	}
	if v.Zoom <= 0 {
		v.Zoom = 1
	}
	return v
}

func (v View) ToScreen(p cp.Vector) (float32, float32) {
	return float32((p.X - v.Left) * v.Zoom), float32((v.Top - p.Y) * v.Zoom)
}

func (v View) Scale(d float64) float32 {
	return float32(d * v.Zoom)
}
