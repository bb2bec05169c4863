// Package renderer draws the board, bodies and merge effects with raylib.
package renderer

import rl "github.com/gen2brain/raylib-go/raylib"

// Color converts a 0xRRGGBB value to an opaque raylib color.
func Color(rgb uint32) rl.Color {
	return rl.Color{
		R: uint8(rgb >> 16),
		G: uint8(rgb >> 8),
		B: uint8(rgb),
		A: 255,
	}
}

// shade scales a color's brightness by f in [0, 1].
func shade(c rl.Color, f float32) rl.Color {
	return rl.Color{
		R: uint8(float32(c.R) * f),
		G: uint8(float32(c.G) * f),
		B: uint8(float32(c.B) * f),
		A: c.A,
	}
}

var (
	boardBg    = rl.Color{R: 250, G: 240, B: 215, A: 255}
	wallColor  = rl.Color{R: 160, G: 110, B: 70, A: 255}
	dangerIdle = rl.Color{R: 220, G: 60, B: 60, A: 90}
	dangerHot  = rl.Color{R: 230, G: 30, B: 30, A: 255}
	guideColor = rl.Color{R: 120, G: 120, B: 120, A: 80}
)
