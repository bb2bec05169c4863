// Package ui draws the HUD and menus with raygui and turns player input into
// game actions.
package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/fruitmerge/game"
)

// ActionKind identifies what the player asked for this frame.
type ActionKind int

const (
	ActionNone ActionKind = iota
	ActionDrop
	ActionPowerup
	ActionRestart
	ActionRevive
)

// Action is one player request. X is the board-space drop position for
// ActionDrop; Powerup is set for ActionPowerup.
type Action struct {
	Kind    ActionKind
	X       float64
	Powerup game.PowerupKind
}

// Theme holds UI styling constants.
type Theme struct {
	PanelBg        rl.Color
	PanelBorder    rl.Color
	SectionHeader  rl.Color
	LabelColor     rl.Color
	ValueColor     rl.Color
	Padding        int32
	LineHeight     int32
	ButtonHeight   float32
	FontSize       int32
	HeaderFontSize int32
	ScoreFontSize  int32
}

// DefaultTheme returns the default UI theme.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:        rl.Color{R: 40, G: 32, B: 28, A: 240},
		PanelBorder:    rl.Color{R: 110, G: 85, B: 60, A: 255},
		SectionHeader:  rl.Color{R: 250, G: 200, B: 90, A: 255},
		LabelColor:     rl.LightGray,
		ValueColor:     rl.White,
		Padding:        12,
		LineHeight:     22,
		ButtonHeight:   30,
		FontSize:       16,
		HeaderFontSize: 18,
		ScoreFontSize:  32,
	}
}

// powerupLabels are the button captions for each power-up.
var powerupLabels = map[game.PowerupKind]string{
	game.PowerupClearSmall: "Clear small",
	game.PowerupShake:      "Shake",
	game.PowerupUpgrade:    "Upgrade",
	game.PowerupRevive:     "Revive",
}
