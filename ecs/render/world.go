package render

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"

	"github.com/milk9111/nocturne/ecs"
	"github.com/milk9111/nocturne/ecs/component"
)

var (
	dayColor   = colornames.Darkseagreen
	nightColor = colornames.Midnightblue
)

// DrawWorld paints the level and every actor as flat shapes.
func DrawWorld(screen *ebiten.Image, w *ecs.World, v View) {
	if screen == nil || w == nil {
		return
	}

	daylight := 1.0
	if cycle, ok := ecs.Single(w, component.DayCycleComponent.Kind()); ok {
		daylight = cycle.Daylight
	}
	screen.Fill(lerpColor(nightColor, dayColor, daylight))

	ecs.ForEach3(w, component.StructureComponent.Kind(), component.TransformComponent.Kind(), component.PhysicsBodyComponent.Kind(),
		func(e ecs.Entity, _ *component.Structure, t *component.Transform, body *component.PhysicsBody) {
			clr := color.Color(colornames.Dimgray)
			if layer, ok := ecs.Get(w, e, component.CollisionLayerComponent.Kind()); ok && layer.Category == component.CategoryRaycastHelp {
				clr = colornames.Darkgreen
			}
			x, y := v.ToScreen(t.Vec())
			hw, hh := v.Scale(body.Width/2), v.Scale(body.Height/2)
			vector.DrawFilledRect(screen, x-hw, y-hh, hw*2, hh*2, clr, false)
		})

	ecs.ForEach2(w, component.RemainsComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, _ *component.Remains, t *component.Transform) {
		drawSwatch(screen, v, t, 6, colornames.Darkred)
	})
	ecs.ForEach2(w, component.CollectibleComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, _ *component.Collectible, t *component.Transform) {
		x, y := v.ToScreen(t.Vec())
		vector.DrawFilledCircle(screen, x, y, v.Scale(4), colornames.Hotpink, true)
	})
	ecs.ForEach2(w, component.NPCComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, npc *component.NPC, t *component.Transform) {
		clr := color.Color(colornames.Wheat)
		if npc.Kind == component.Hunter {
			clr = colornames.Saddlebrown
		}
		if mind, ok := ecs.Get(w, e, component.NPCMindComponent.Kind()); ok && mind.State == component.Dead {
			clr = colornames.Gray
		}
		x, y := v.ToScreen(t.Vec())
		vector.DrawFilledCircle(screen, x, y, v.Scale(4.5), clr, true)
		if anim, ok := ecs.Get(w, e, component.AnimatorComponent.Kind()); ok && anim.Armed {
			vector.StrokeCircle(screen, x, y, v.Scale(5.5), 1, colornames.Orangered, true)
		}
	})
	ecs.ForEach2(w, component.ProjectileComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, _ *component.Projectile, t *component.Transform) {
		drawSwatch(screen, v, t, 4, colornames.Silver)
	})
	ecs.ForEach2(w, component.PlayerComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, p *component.Player, t *component.Transform) {
		clr := color.Color(colornames.Crimson)
		if p.Ghost {
			clr = colornames.Plum
		}
		x, y := v.ToScreen(t.Vec())
		vector.DrawFilledCircle(screen, x, y, v.Scale(4.5), clr, true)
	})
	ecs.ForEach2(w, component.EmoteComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, em *component.Emote, t *component.Transform) {
		x, y := v.ToScreen(t.Vec())
		ebitenutil.DebugPrintAt(screen, emoteGlyph(em.Kind), int(x)-3, int(y)-16)
	})
}

// DrawHUD prints the player's vitals and the phase.
func DrawHUD(screen *ebiten.Image, w *ecs.World) {
	player, ok := ecs.Single(w, component.PlayerComponent.Kind())
	if !ok {
		return
	}
	phase := "day"
	if cycle, ok := ecs.Single(w, component.DayCycleComponent.Kind()); ok && cycle.IsNight {
		phase = "night"
	}
	roses := ""
	if tally, ok := ecs.Single(w, component.RoseTallyComponent.Kind()); ok {
		roses = fmt.Sprintf("  roses %d/%d", tally.Collected, tally.Total)
	}
	msg := fmt.Sprintf("HP %.0f/%.0f  score %.0f  %s%s", player.HP, player.MaxHP, player.Score, phase, roses)
	switch {
	case player.Won:
		msg += "\nall roses collected - press R"
	case player.Dead:
		msg += "\nyou starved - press R"
	}
	ebitenutil.DebugPrint(screen, msg)
}

func drawSwatch(screen *ebiten.Image, v View, t *component.Transform, size int, clr color.Color) {
	img := Swatch(size, clr)
	x, y := v.ToScreen(t.Vec())
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-float64(size)/2, -float64(size)/2)
	op.GeoM.Scale(v.Zoom, v.Zoom)
	op.GeoM.Translate(float64(x), float64(y))
	screen.DrawImage(img, op)
}

func emoteGlyph(k component.EmoteKind) string {
	switch k {
	case component.EmoteWarn:
		return "!"
	case component.EmoteQuestion:
		return "?"
	default:
		return "#"
	}
}

func lerpColor(a, b color.RGBA, t float64) color.RGBA {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	mix := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*t)
	}
	return color.RGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: 255}
}
