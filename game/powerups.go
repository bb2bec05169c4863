package game

// PowerupKind names an inventory item.
type PowerupKind string

const (
	PowerupRevive     PowerupKind = "revive"
	PowerupClearSmall PowerupKind = "clear_small"
	PowerupShake      PowerupKind = "shake"
	PowerupUpgrade    PowerupKind = "upgrade"
)

// PowerupKinds lists every kind in display order.
var PowerupKinds = []PowerupKind{PowerupClearSmall, PowerupShake, PowerupUpgrade, PowerupRevive}

// UsePowerup applies a power-up from the inventory. The item is consumed only
// when the effect did something. Revive is only usable once the game is over.
func (g *Game) UsePowerup(kind PowerupKind) bool {
	if kind == PowerupRevive {
		return g.Revive()
	}
	if g.session.over || g.profile.Count(string(kind)) <= 0 {
		return false
	}

	var ok bool
	switch kind {
	case PowerupClearSmall:
		ok = g.effectors.ClearSmallest(g.cfg.Powerups.ClearCount)
	case PowerupShake:
		ok = g.effectors.Shake()
	case PowerupUpgrade:
		_, ok = g.effectors.UpgradeRandom()
	default:
		return false
	}
	if !ok {
		return false
	}

	g.profile.Consume(string(kind))
	g.collector.RecordPowerup()
	g.logger.Info("powerup used", "kind", kind, "left", g.profile.Count(string(kind)))
	return true
}

// Revive continues a finished session once: it costs one revive, clears the
// bodies crossing the danger line and keeps the score.
func (g *Game) Revive() bool {
	if !g.canRevive() {
		return false
	}
	g.profile.Consume(string(PowerupRevive))

	g.scheduler.Flush()
	cleared := g.effectors.ClearAbove(g.cfg.Board.DangerLineY)
	requeued := g.classifier.Rescan()
	g.danger.Reset()
	g.resetClocks()

	g.session.over = false
	g.session.revived = true
	g.collector.RecordRevive()

	g.logger.Info("revived", "score", g.session.score, "cleared", cleared, "requeued", requeued)
	return true
}

func (g *Game) canRevive() bool {
	return g.session.over && !g.session.revived && g.profile.Count(string(PowerupRevive)) > 0
}
