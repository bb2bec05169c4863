package renderer

import (
	"math"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/fruitmerge/config"
	"github.com/pthm-cable/fruitmerge/game"
	"github.com/pthm-cable/fruitmerge/tiers"
)

// Board draws the container and its contents at a fixed screen offset.
type Board struct {
	board  config.BoardConfig
	tiers  *tiers.Table
	origin rl.Vector2
}

// NewBoard creates a board renderer with its top-left corner at origin.
func NewBoard(cfg *config.Config, table *tiers.Table, origin rl.Vector2) *Board {
	return &Board{board: cfg.Board, tiers: table, origin: origin}
}

// Origin returns the screen position of the board's top-left corner.
func (b *Board) Origin() rl.Vector2 {
	return b.origin
}

// ToBoardX converts a screen x coordinate to board space.
func (b *Board) ToBoardX(screenX float32) float64 {
	return float64(screenX - b.origin.X)
}

// Contains reports whether a screen point lies over the board.
func (b *Board) Contains(p rl.Vector2) bool {
	return p.X >= b.origin.X && p.X <= b.origin.X+float32(b.board.Width) &&
		p.Y >= b.origin.Y && p.Y <= b.origin.Y+float32(b.board.Height)
}

// Draw renders one frame of the board. aimX is the board-space x where the
// next fruit would drop; now drives the danger line blink.
func (b *Board) Draw(snap game.Snapshot, aimX float64, now time.Duration) {
	ox, oy := b.origin.X, b.origin.Y
	w, h := float32(b.board.Width), float32(b.board.Height)
	wall := float32(b.board.WallThickness)

	rl.DrawRectangle(int32(ox), int32(oy), int32(w), int32(h), boardBg)
	rl.DrawRectangle(int32(ox), int32(oy), int32(wall), int32(h), wallColor)
	rl.DrawRectangle(int32(ox+w-wall), int32(oy), int32(wall), int32(h), wallColor)
	rl.DrawRectangle(int32(ox), int32(oy+h-wall), int32(w), int32(wall), wallColor)

	b.drawDangerLine(snap, now)

	if !snap.IsGameOver {
		b.drawAim(snap, aimX)
	}

	for _, body := range snap.Bodies {
		b.drawFruit(body.Position.X, body.Position.Y, body.Radius, Color(body.Color), body.Locked)
	}
}

func (b *Board) drawDangerLine(snap game.Snapshot, now time.Duration) {
	y := b.origin.Y + float32(b.board.DangerLineY)
	wall := float32(b.board.WallThickness)
	start := rl.Vector2{X: b.origin.X + wall, Y: y}
	end := rl.Vector2{X: b.origin.X + float32(b.board.Width) - wall, Y: y}

	col := dangerIdle
	for _, body := range snap.Bodies {
		if body.InDanger {
			// Blink at 4 Hz while anything is at risk.
			if (now/(125*time.Millisecond))%2 == 0 {
				col = dangerHot
			}
			break
		}
	}
	rl.DrawLineEx(start, end, 2, col)
}

func (b *Board) drawAim(snap game.Snapshot, aimX float64) {
	r := b.tiers.Radius(snap.CurrentTier)
	minX := b.board.WallThickness + r
	maxX := b.board.Width - b.board.WallThickness - r
	x := math.Max(minX, math.Min(aimX, maxX))

	top := rl.Vector2{X: b.origin.X + float32(x), Y: b.origin.Y + float32(b.board.DropLineY)}
	bottom := rl.Vector2{X: top.X, Y: b.origin.Y + float32(b.board.Height-b.board.WallThickness)}
	rl.DrawLineEx(top, bottom, 1, guideColor)

	tier, _ := b.tiers.Get(snap.CurrentTier)
	col := Color(tier.Color)
	if snap.IsDropping {
		col = rl.Fade(col, 0.4)
	}
	b.drawFruit(x, b.board.DropLineY, r, col, false)
}

// drawFruit draws a shaded circle in board space.
func (b *Board) drawFruit(x, y, r float64, col rl.Color, locked bool) {
	cx := int32(b.origin.X + float32(x))
	cy := int32(b.origin.Y + float32(y))
	radius := float32(r)

	rl.DrawCircle(cx, cy, radius, shade(col, 0.75))
	rl.DrawCircle(cx, cy, radius*0.9, col)
	// Highlight
	rl.DrawCircle(cx-int32(radius*0.3), cy-int32(radius*0.3), radius*0.25, rl.Fade(rl.White, 0.35))
	if locked {
		rl.DrawCircleLines(cx, cy, radius, rl.White)
	}
}

// DrawTier draws a tier's fruit centered at a screen position, scaled to fit
// maxRadius. Used for the next-fruit preview.
func DrawTier(table *tiers.Table, tierIndex int, center rl.Vector2, maxRadius float32) {
	tier, ok := table.Get(tierIndex)
	if !ok {
		return
	}
	r := float32(tier.Radius)
	if r > maxRadius {
		r = maxRadius
	}
	col := Color(tier.Color)
	rl.DrawCircle(int32(center.X), int32(center.Y), r, shade(col, 0.75))
	rl.DrawCircle(int32(center.X), int32(center.Y), r*0.9, col)
}
