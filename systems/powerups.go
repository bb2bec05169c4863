package systems

import (
	"math/rand"
	"sort"

	"gonum.org/v1/gonum/spatial/r2"
)

// Effectors apply power-ups as bulk registry mutations. Bodies claimed by a
// pending merge are never removed here; only the scheduler consumes them.
// Inventory is the caller's concern.
type Effectors struct {
	registry     *Registry
	rng          *rand.Rand
	shakeImpulse float64
}

// NewEffectors creates power-up effectors.
func NewEffectors(registry *Registry, rng *rand.Rand, shakeImpulse float64) *Effectors {
	return &Effectors{registry: registry, rng: rng, shakeImpulse: shakeImpulse}
}

// ClearSmallest removes the n lowest-tier bodies. Ties go to the older body.
func (e *Effectors) ClearSmallest(n int) bool {
	if n <= 0 {
		return false
	}
	candidates := e.unlocked()
	if len(candidates) == 0 {
		return false
	}
	// Bodies() is id ordered, so a stable sort keeps creation order within a tier.
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Tier < candidates[j].Tier
	})
	if n > len(candidates) {
		n = len(candidates)
	}
	for _, b := range candidates[:n] {
		e.registry.Remove(b.ID)
	}
	return true
}

// Shake applies a random impulse to every body.
func (e *Effectors) Shake() bool {
	bodies := e.registry.Bodies()
	if len(bodies) == 0 {
		return false
	}
	for _, b := range bodies {
		impulse := r2.Vec{
			X: (e.rng.Float64()*2 - 1) * e.shakeImpulse,
			Y: -e.rng.Float64() * e.shakeImpulse,
		}
		if err := e.registry.ApplyImpulse(b.ID, impulse); err != nil {
			e.registry.logger.Debug("shake impulse failed", "body", b.ID, "error", err)
		}
	}
	return true
}

// UpgradeRandom replaces one random non-terminal body with the next tier at
// the same position.
func (e *Effectors) UpgradeRandom() (Body, bool) {
	table := e.registry.Tiers()
	var candidates []Body
	for _, b := range e.unlocked() {
		if !table.IsTerminal(b.Tier) {
			candidates = append(candidates, b)
		}
	}
	if len(candidates) == 0 {
		return Body{}, false
	}

	pick := candidates[e.rng.Intn(len(candidates))]
	e.registry.Remove(pick.ID)
	upgraded, err := e.registry.Spawn(pick.Tier+1, pick.Position.X, pick.Position.Y)
	if err != nil {
		e.registry.logger.Error("failed to spawn upgraded body", "tier", pick.Tier+1, "error", err)
		return Body{}, false
	}
	return upgraded, true
}

// ClearAbove removes unlocked bodies whose top edge is above lineY and
// returns how many were removed.
func (e *Effectors) ClearAbove(lineY float64) int {
	table := e.registry.Tiers()
	removed := 0
	for _, b := range e.unlocked() {
		if b.Position.Y-table.Radius(b.Tier) < lineY {
			e.registry.Remove(b.ID)
			removed++
		}
	}
	return removed
}

// unlocked returns an id-ordered snapshot of bodies not claimed by a merge.
func (e *Effectors) unlocked() []Body {
	all := e.registry.Bodies()
	out := all[:0]
	for _, b := range all {
		if !b.MergeLocked {
			out = append(out, b)
		}
	}
	return out
}
