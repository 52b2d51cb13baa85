package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/jakecoffman/cp"

	"github.com/milk9111/nocturne/ecs"
	"github.com/milk9111/nocturne/ecs/component"
)

// readInput writes the keyboard state into the player's input component.
// World Y points up, so W and Up move towards positive Y.
func readInput(w *ecs.World) {
	ecs.ForEach(w, component.PlayerInputComponent.Kind(), func(_ ecs.Entity, in *component.PlayerInput) {
		var move cp.Vector
		if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
			move.X--
		}
		if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
			move.X++
		}
		if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
			move.Y++
		}
		if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
			move.Y--
		}
		in.Move = move
		in.Dash = inpututil.IsKeyJustPressed(ebiten.KeySpace)
	})
}
