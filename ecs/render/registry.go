package render

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

var images = map[string]*ebiten.Image{}

// Swatch returns a cached size x size image filled with clr.
func Swatch(size int, clr color.Color) *ebiten.Image {
	if size <= 0 {
		size = 1
	}
	r, g, b, a := clr.RGBA()
	key := fmt.Sprintf("%d/%d/%d/%d/%d", size, r, g, b, a)
	if img, ok := images[key]; ok {
		return img
	}
	img := ebiten.NewImage(size, size)
	img.Fill(clr)
	images[key] = img
	return img
}
