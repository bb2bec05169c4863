package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/fruitmerge/game"
	"github.com/pthm-cable/fruitmerge/renderer"
)

// Input maps mouse and keyboard state to actions.
type Input struct {
	board *renderer.Board
	aimX  float64
}

// NewInput creates an input handler for the given board.
func NewInput(board *renderer.Board, startX float64) *Input {
	return &Input{board: board, aimX: startX}
}

// AimX returns the board-space x the player is aiming at.
func (in *Input) AimX() float64 {
	return in.aimX
}

// Poll reads this frame's input. Keyboard shortcuts: R restarts, V revives,
// 1-3 use power-ups.
func (in *Input) Poll(snap game.Snapshot) Action {
	mouse := rl.GetMousePosition()
	if in.board.Contains(mouse) {
		in.aimX = in.board.ToBoardX(mouse.X)
	}

	switch {
	case rl.IsKeyPressed(rl.KeyR):
		return Action{Kind: ActionRestart}
	case rl.IsKeyPressed(rl.KeyV) && snap.CanRevive:
		return Action{Kind: ActionRevive}
	case rl.IsKeyPressed(rl.KeyOne):
		return Action{Kind: ActionPowerup, Powerup: game.PowerupClearSmall}
	case rl.IsKeyPressed(rl.KeyTwo):
		return Action{Kind: ActionPowerup, Powerup: game.PowerupShake}
	case rl.IsKeyPressed(rl.KeyThree):
		return Action{Kind: ActionPowerup, Powerup: game.PowerupUpgrade}
	}

	if snap.IsGameOver {
		return Action{}
	}
	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) && in.board.Contains(mouse) {
		return Action{Kind: ActionDrop, X: in.aimX}
	}
	if rl.IsKeyPressed(rl.KeySpace) {
		return Action{Kind: ActionDrop, X: in.aimX}
	}
	return Action{}
}
