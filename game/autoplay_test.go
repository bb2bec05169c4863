package game

import (
	"testing"
	"time"
)

func TestAutoplayTargetsMatchingTier(t *testing.T) {
	g := newTestGame(t, "")
	tier := g.spawner.Current()
	g.registry.Spawn(tier, 300, 400)
	g.registry.Spawn(tier, 120, 350)

	a := NewAutoplay(1)
	if got := a.Target(g, g.Snapshot()); got != 120 {
		t.Errorf("target = %v, want 120 (the highest matching body)", got)
	}
}

func TestAutoplaySoak(t *testing.T) {
	if testing.Short() {
		t.Skip("soak test")
	}
	g := newTestGame(t, "")
	a := NewAutoplay(3)
	step := g.cfg.Derived.PhysicsStep
	board := g.cfg.Board

	restarts := 0
	for i := 0; i < 20000; i++ {
		if a.Act(g) {
			restarts++
		}
		g.Update(step)

		if i%250 != 0 {
			continue
		}
		for _, b := range g.Snapshot().Bodies {
			if !g.tiers.Valid(b.Tier) {
				t.Fatalf("step %d: invalid tier %d", i, b.Tier)
			}
			// Fresh merges can overhang a wall until the next step; centers never leave.
			if b.Position.X < board.WallThickness || b.Position.X > board.Width-board.WallThickness {
				t.Fatalf("step %d: body %d outside walls at x=%v", i, b.ID, b.Position.X)
			}
		}
		if g.Score() < 0 {
			t.Fatalf("step %d: negative score", i)
		}
	}
	if g.Now() < 10*time.Second {
		t.Errorf("clock = %v, autoplay barely ran", g.Now())
	}
	t.Logf("autoplay: %d restarts, %d sessions recorded", restarts, g.SessionsFinished())
}
