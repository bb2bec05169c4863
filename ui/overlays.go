package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/fruitmerge/game"
)

// GameOverOverlay is the modal shown when a session ends.
type GameOverOverlay struct {
	theme Theme
	area  rl.Rectangle
}

// NewGameOverOverlay centers the overlay over area.
func NewGameOverOverlay(area rl.Rectangle) *GameOverOverlay {
	return &GameOverOverlay{theme: DefaultTheme(), area: area}
}

// Draw renders the overlay and returns the chosen action.
func (o *GameOverOverlay) Draw(snap game.Snapshot) Action {
	th := o.theme
	rl.DrawRectangleRec(o.area, rl.Fade(rl.Black, 0.55))

	const w, h = 260, 200
	px := o.area.X + (o.area.Width-w)/2
	py := o.area.Y + (o.area.Height-h)/2
	rl.DrawRectangle(int32(px), int32(py), w, h, th.PanelBg)
	rl.DrawRectangleLines(int32(px), int32(py), w, h, th.PanelBorder)

	title := "GAME OVER"
	rl.DrawText(title, int32(px)+(w-rl.MeasureText(title, 28))/2, int32(py)+16, 28, th.SectionHeader)

	score := fmt.Sprintf("Score: %d", snap.Score)
	rl.DrawText(score, int32(px)+(w-rl.MeasureText(score, th.HeaderFontSize))/2, int32(py)+56, th.HeaderFontSize, th.ValueColor)
	if snap.Score >= snap.BestScore && snap.Score > 0 {
		best := "New best!"
		rl.DrawText(best, int32(px)+(w-rl.MeasureText(best, th.FontSize))/2, int32(py)+80, th.FontSize, th.SectionHeader)
	}

	bx := px + 30
	bw := float32(w - 60)
	action := Action{}

	reviveLabel := fmt.Sprintf("Revive (%d)", snap.Inventory[game.PowerupRevive])
	if !snap.CanRevive {
		gui.Disable()
	}
	if gui.Button(rl.Rectangle{X: bx, Y: py + 110, Width: bw, Height: th.ButtonHeight}, reviveLabel) && snap.CanRevive {
		action = Action{Kind: ActionRevive}
	}
	gui.Enable()

	if gui.Button(rl.Rectangle{X: bx, Y: py + 150, Width: bw, Height: th.ButtonHeight}, "Restart") {
		action = Action{Kind: ActionRestart}
	}
	return action
}
