package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/fruitmerge/game"
	"github.com/pthm-cable/fruitmerge/renderer"
	"github.com/pthm-cable/fruitmerge/tiers"
)

// HUD is the side panel: score, best, next fruit and power-up buttons.
type HUD struct {
	theme  Theme
	tiers  *tiers.Table
	x, y   int32
	width  int32
	height int32
}

// NewHUD creates a HUD panel at the given screen rectangle.
func NewHUD(table *tiers.Table, x, y, width, height int32) *HUD {
	return &HUD{theme: DefaultTheme(), tiers: table, x: x, y: y, width: width, height: height}
}

// Draw renders the panel and returns the power-up the player clicked, if any.
func (h *HUD) Draw(snap game.Snapshot) Action {
	th := h.theme
	rl.DrawRectangle(h.x, h.y, h.width, h.height, th.PanelBg)
	rl.DrawRectangleLines(h.x, h.y, h.width, h.height, th.PanelBorder)

	x := h.x + th.Padding
	y := h.y + th.Padding

	rl.DrawText("SCORE", x, y, th.HeaderFontSize, th.SectionHeader)
	y += th.LineHeight
	rl.DrawText(fmt.Sprintf("%d", snap.Score), x, y, th.ScoreFontSize, th.ValueColor)
	y += th.ScoreFontSize + 6
	if snap.Multiplier > 1 {
		rl.DrawText(fmt.Sprintf("x%d score", snap.Multiplier), x, y, th.FontSize, th.SectionHeader)
		y += th.LineHeight
	}
	rl.DrawText(fmt.Sprintf("Best: %d", snap.BestScore), x, y, th.FontSize, th.LabelColor)
	y += th.LineHeight * 2

	rl.DrawText("NEXT", x, y, th.HeaderFontSize, th.SectionHeader)
	y += th.LineHeight
	const previewRadius = 28
	renderer.DrawTier(h.tiers, snap.NextTier, rl.Vector2{
		X: float32(h.x + h.width/2),
		Y: float32(y + previewRadius),
	}, previewRadius)
	if tier, ok := h.tiers.Get(snap.NextTier); ok {
		rl.DrawText(tier.Name, x, y+2*previewRadius+4, th.FontSize, th.LabelColor)
	}
	y += 2*previewRadius + th.LineHeight*2

	rl.DrawText("POWER-UPS", x, y, th.HeaderFontSize, th.SectionHeader)
	y += th.LineHeight

	action := Action{}
	bw := float32(h.width - 2*th.Padding)
	for _, kind := range game.PowerupKinds {
		if kind == game.PowerupRevive {
			continue
		}
		label := fmt.Sprintf("%s (%d)", powerupLabels[kind], snap.Inventory[kind])
		rect := rl.Rectangle{X: float32(x), Y: float32(y), Width: bw, Height: th.ButtonHeight}
		if gui.Button(rect, label) && !snap.IsGameOver && snap.Inventory[kind] > 0 {
			action = Action{Kind: ActionPowerup, Powerup: kind}
		}
		y += int32(th.ButtonHeight) + 8
	}
	return action
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-20, 14, rl.Gray)
}
