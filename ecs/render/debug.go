package render

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"golang.org/x/image/colornames"

	"github.com/milk9111/nocturne/ecs"
	"github.com/milk9111/nocturne/ecs/component"
)

const (
	debugCircleSegments = 24
	debugDotSize        = 4
)

// DrawPhysicsDebug outlines every shape in space.
func DrawPhysicsDebug(space *cp.Space, screen *ebiten.Image, v View) {
	if space == nil || screen == nil {
		return
	}
	cp.DrawSpace(space, &physicsDebugDrawer{screen: screen, view: v})
}

// DrawNavDebug overlays blocked and occupied cells, committed routes and
// each NPC's state.
func DrawNavDebug(screen *ebiten.Image, w *ecs.World, v View) {
	if screen == nil || w == nil {
		return
	}
	grid, ok := ecs.Single(w, component.GridTransformComponent.Kind())
	if !ok || !grid.Ready() {
		return
	}
	occ, ok := ecs.Single(w, component.OccupancyComponent.Kind())
	if !ok || !occ.Ready() {
		return
	}

	size := v.Scale(grid.CellSize)
	cellRect := func(c component.Cell, clr color.Color) {
		x, y := v.ToScreen(grid.CellToWorld(c))
		vector.StrokeRect(screen, x-size/2, y-size/2, size, size, 1, clr, false)
	}
	for x := 0; x < occ.Width(); x++ {
		for y := 0; y < occ.Height(); y++ {
			c := component.Cell{X: x, Y: y}
			if !occ.IsTrespassable(c) {
				cellRect(c, colornames.Firebrick)
			}
		}
	}
	for _, c := range occ.Units() {
		cellRect(c, colornames.Gold)
	}

	ecs.ForEach3(w, component.NPCComponent.Kind(), component.NPCMindComponent.Kind(), component.TransformComponent.Kind(),
		func(_ ecs.Entity, npc *component.NPC, mind *component.NPCMind, t *component.Transform) {
			x0, y0 := v.ToScreen(t.Vec())
			for _, c := range mind.Path.Waypoints {
				x1, y1 := v.ToScreen(grid.CellToWorld(c))
				vector.StrokeLine(screen, x0, y0, x1, y1, 1, colornames.Deepskyblue, false)
				x0, y0 = x1, y1
			}
			x, y := v.ToScreen(t.Vec())
			ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%c:%s", npc.Kind.String()[0], mind.State), int(x)+6, int(y)-6)
		})
}

type physicsDebugDrawer struct {
	screen *ebiten.Image
	view   View
}

func (d *physicsDebugDrawer) DrawCircle(pos cp.Vector, angle, radius float64, outline, fill cp.FColor, data interface{}) {
	if radius <= 0 {
		return
	}
	d.drawCircle(pos, radius, outline)
	end := cp.Vector{X: pos.X + math.Cos(angle)*radius, Y: pos.Y + math.Sin(angle)*radius}
	d.drawLine(pos, end, outline)
}

func (d *physicsDebugDrawer) DrawSegment(a, b cp.Vector, fill cp.FColor, data interface{}) {
	d.drawLine(a, b, fill)
}

func (d *physicsDebugDrawer) DrawFatSegment(a, b cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	d.drawLine(a, b, outline)
	if radius > 0 {
		d.drawCircle(a, radius, outline)
		d.drawCircle(b, radius, outline)
	}
}

func (d *physicsDebugDrawer) DrawPolygon(count int, verts []cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	if count <= 0 {
		return
	}
	d.drawPolygon(verts[:count], outline)
}

func (d *physicsDebugDrawer) DrawDot(size float64, pos cp.Vector, fill cp.FColor, data interface{}) {
	if size <= 0 {
		size = debugDotSize
	}
	half := size / 2
	d.drawLine(cp.Vector{X: pos.X - half, Y: pos.Y}, cp.Vector{X: pos.X + half, Y: pos.Y}, fill)
	d.drawLine(cp.Vector{X: pos.X, Y: pos.Y - half}, cp.Vector{X: pos.X, Y: pos.Y + half}, fill)
}

func (d *physicsDebugDrawer) Flags() uint {
	return cp.DRAW_SHAPES
}

func (d *physicsDebugDrawer) OutlineColor() cp.FColor {
	return cp.FColor{R: 0.2, G: 1, B: 0.2, A: 0.9}
}

func (d *physicsDebugDrawer) ShapeColor(shape *cp.Shape, data interface{}) cp.FColor {
	if shape.Sensor() {
		return cp.FColor{R: 0.9, G: 0.9, B: 0.1, A: 0.6}
	}
	return cp.FColor{R: 0.1, G: 0.6, B: 0.1, A: 0.5}
}

func (d *physicsDebugDrawer) ConstraintColor() cp.FColor {
	return cp.FColor{R: 1, G: 0.5, B: 0.1, A: 0.9}
}

func (d *physicsDebugDrawer) CollisionPointColor() cp.FColor {
	return cp.FColor{R: 1, G: 0.2, B: 0.2, A: 0.9}
}

func (d *physicsDebugDrawer) Data() interface{} {
	return nil
}

func (d *physicsDebugDrawer) drawLine(a, b cp.Vector, clr cp.FColor) {
	x1, y1 := d.view.ToScreen(a)
	x2, y2 := d.view.ToScreen(b)
	vector.StrokeLine(d.screen, x1, y1, x2, y2, 1, toNRGBA(clr), false)
}

func (d *physicsDebugDrawer) drawPolygon(verts []cp.Vector, clr cp.FColor) {
	for i := range verts {
		d.drawLine(verts[i], verts[(i+1)%len(verts)], clr)
	}
}

func (d *physicsDebugDrawer) drawCircle(center cp.Vector, radius float64, clr cp.FColor) {
	points := make([]cp.Vector, 0, debugCircleSegments)
	for i := 0; i < debugCircleSegments; i++ {
		t := (2 * math.Pi) * (float64(i) / float64(debugCircleSegments))
		points = append(points, cp.Vector{X: center.X + math.Cos(t)*radius, Y: center.Y + math.Sin(t)*radius})
	}
	d.drawPolygon(points, clr)
}

func toNRGBA(c cp.FColor) color.NRGBA {
	return color.NRGBA{
		R: uint8(clamp01(c.R) * 255),
		G: uint8(clamp01(c.G) * 255),
		B: uint8(clamp01(c.B) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
