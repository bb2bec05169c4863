package game

import (
	"math/rand"
)

// Autoplay drives a Game without a player. It aims each drop at the highest
// body of the same tier, falling back to a random column, and revives or
// restarts when the session ends.
type Autoplay struct {
	rng *rand.Rand
}

// NewAutoplay creates a bot with its own random source.
func NewAutoplay(seed int64) *Autoplay {
	return &Autoplay{rng: rand.New(rand.NewSource(seed))}
}

// Act performs at most one action on g. It reports whether a session ended
// for good and was restarted.
func (a *Autoplay) Act(g *Game) bool {
	snap := g.Snapshot()
	if snap.IsGameOver {
		if snap.CanRevive && g.Revive() {
			return false
		}
		g.Restart()
		return true
	}
	if snap.IsDropping {
		return false
	}
	g.DropAt(a.Target(g, snap))
	return false
}

// Target picks the drop x for the current tier.
func (a *Autoplay) Target(g *Game, snap Snapshot) float64 {
	best := -1
	for i, b := range snap.Bodies {
		if b.Tier != snap.CurrentTier {
			continue
		}
		if best < 0 || b.Position.Y < snap.Bodies[best].Position.Y {
			best = i
		}
	}
	if best >= 0 {
		return snap.Bodies[best].Position.X
	}

	board := g.cfg.Board
	inner := board.Width - 2*board.WallThickness
	return board.WallThickness + a.rng.Float64()*inner
}
