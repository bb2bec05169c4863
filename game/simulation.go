package game

import (
	"math"
	"time"
)

// Update advances the session clock by dt. Physics runs in fixed steps; after
// each step the merge and danger cadences fire as they come due. A finished
// session is frozen until Revive or Restart.
func (g *Game) Update(dt time.Duration) {
	if g.session.over || dt <= 0 {
		return
	}

	steps := g.physicsClock.advance(dt)
	if steps > maxStepsPerUpdate {
		steps = maxStepsPerUpdate
		g.physicsClock.reset()
	}

	step := g.cfg.Derived.PhysicsStep
	for i := 0; i < steps; i++ {
		g.engine.Step(step.Seconds())
		g.now += step
		g.registry.Sync()

		for n := g.mergeClock.advance(step); n > 0; n-- {
			g.tickMerges()
		}
		if g.dangerClock.advance(step) > 0 && g.danger.Check(g.now) {
			g.endGame()
			return
		}
	}
}

func (g *Game) tickMerges() {
	for _, res := range g.scheduler.Tick(&g.session) {
		g.session.merges++
		g.collector.RecordMerge(res.Tier)
		for _, fn := range g.mergeListeners {
			fn(res)
		}
		g.logger.Debug("merge", "tier", res.Tier, "points", res.Points, "score", g.session.score)
	}
}

// DropAt releases the current fruit at horizontal position x, clamped inside
// the walls. It returns false during the drop cooldown, after game over, or
// for a non-finite x.
func (g *Game) DropAt(x float64) bool {
	if g.session.over || math.IsNaN(x) || math.IsInf(x, 0) {
		return false
	}
	tier, ok := g.spawner.TryDrop(g.now)
	if !ok {
		return false
	}

	board := g.cfg.Board
	r := g.tiers.Radius(tier)
	x = math.Max(board.WallThickness+r, math.Min(x, board.Width-board.WallThickness-r))

	if _, err := g.registry.Spawn(tier, x, board.DropLineY); err != nil {
		g.logger.Error("failed to drop fruit", "tier", tier, "error", err)
		return false
	}
	g.session.drops++
	g.collector.RecordDrop(tier)
	return true
}

// Restart abandons the current session and starts a fresh one.
func (g *Game) Restart() {
	g.finishSession()
	g.scheduler.Flush()
	g.registry.Clear()
	g.danger.Reset()
	g.spawner.Reset()
	g.startSession()
	g.logger.Info("restarted", "best", g.profile.BestScore())
}

func (g *Game) startSession() {
	mult := g.cfg.Scoring.BaseMultiplier
	if g.profile.DoubleScore() {
		mult = g.cfg.Scoring.DoubleScoreMultiplier
	}
	g.session = session{multiplier: mult, started: g.now}
	g.resetClocks()
	g.collector.Start(g.now)
	g.logger.Info("session started", "multiplier", mult, "best", g.profile.BestScore())
}

func (g *Game) resetClocks() {
	g.physicsClock.reset()
	g.mergeClock.reset()
	g.dangerClock.reset()
}

func (g *Game) endGame() {
	g.session.over = true
	best := g.profile.SubmitScore(g.session.score)
	g.logger.Info("game over",
		"score", g.session.score,
		"merges", g.session.merges,
		"bodies", g.registry.Len(),
		"duration", g.now-g.session.started,
		"new_best", best,
	)
}

// finishSession records the session in the profile and telemetry. Sessions
// without a single drop are not recorded.
func (g *Game) finishSession() {
	if g.session.drops == 0 {
		return
	}
	g.profile.SubmitScore(g.session.score)
	g.profile.RecordGame(g.session.score, g.session.merges)

	stats := g.collector.Finish(g.now, g.session.score, g.registry.Len())
	g.finished++
	if err := g.output.WriteSession(stats); err != nil {
		g.logger.Error("failed to write session", "error", err)
	}
	g.logger.Info("session", "stats", stats)

	if sum, ok := g.history.Add(stats); ok {
		g.logger.Info("session summary", "summary", sum)
	}
	g.session.drops = 0
}
