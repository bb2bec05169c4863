package systems

import (
	"testing"
)

func TestClearSmallest(t *testing.T) {
	h := newHarness(t)
	e := NewEffectors(h.registry, newRand(), h.cfg.Powerups.ShakeImpulse)

	big := h.spawn(t, 5, 0, 0)
	small1 := h.spawn(t, 0, 0, 0)
	mid := h.spawn(t, 2, 0, 0)
	small2 := h.spawn(t, 0, 0, 0)
	mid2 := h.spawn(t, 2, 0, 0)

	if !e.ClearSmallest(3) {
		t.Fatal("ClearSmallest should report success")
	}

	for _, id := range []BodyID{small1.ID, small2.ID, mid.ID} {
		if _, ok := h.registry.Find(id); ok {
			t.Errorf("body %d should have been cleared", id)
		}
	}
	for _, id := range []BodyID{big.ID, mid2.ID} {
		if _, ok := h.registry.Find(id); !ok {
			t.Errorf("body %d should survive", id)
		}
	}
}

func TestClearSmallestFewerThanN(t *testing.T) {
	h := newHarness(t)
	e := NewEffectors(h.registry, newRand(), 0)
	h.spawn(t, 1, 0, 0)

	if !e.ClearSmallest(3) {
		t.Error("ClearSmallest should succeed with fewer bodies than n")
	}
	if h.registry.Len() != 0 {
		t.Errorf("Len = %d, want 0", h.registry.Len())
	}

	if e.ClearSmallest(3) {
		t.Error("ClearSmallest on an empty board should report failure")
	}
}

func TestClearSmallestSkipsLocked(t *testing.T) {
	h := newHarness(t)
	e := NewEffectors(h.registry, newRand(), 0)
	a := h.spawn(t, 0, 100, 100)
	b := h.spawn(t, 0, 110, 100)
	c := h.spawn(t, 3, 200, 100)
	h.classifier.Classify(a.ID, b.ID)

	e.ClearSmallest(1)

	if _, ok := h.registry.Find(c.ID); ok {
		t.Error("unlocked body should be cleared")
	}
	if h.registry.Len() != 2 {
		t.Errorf("Len = %d, want 2 locked bodies left", h.registry.Len())
	}
	if len(h.scheduler.Tick(h.score)) != 1 {
		t.Error("pending merge should still complete")
	}
}

func TestShake(t *testing.T) {
	h := newHarness(t)
	s := h.cfg.Powerups.ShakeImpulse
	e := NewEffectors(h.registry, newRand(), s)

	if e.Shake() {
		t.Error("Shake on an empty board should report failure")
	}

	bodies := []Body{h.spawn(t, 0, 100, 100), h.spawn(t, 1, 200, 100)}
	if !e.Shake() {
		t.Fatal("Shake should report success")
	}
	for _, b := range bodies {
		imp, ok := h.physics.impulses[b.handle]
		if !ok {
			t.Errorf("body %d got no impulse", b.ID)
			continue
		}
		if imp.X < -s || imp.X > s || imp.Y > 0 || imp.Y < -s {
			t.Errorf("impulse %v outside bounds for strength %v", imp, s)
		}
	}
}

func TestUpgradeRandom(t *testing.T) {
	h := newHarness(t)
	e := NewEffectors(h.registry, newRand(), 0)
	b := h.spawn(t, 3, 120, 300)

	up, ok := e.UpgradeRandom()
	if !ok {
		t.Fatal("UpgradeRandom should succeed")
	}
	if up.Tier != 4 || up.Position != b.Position {
		t.Errorf("upgraded = tier %d at %v, want tier 4 at %v", up.Tier, up.Position, b.Position)
	}
	if _, ok := h.registry.Find(b.ID); ok {
		t.Error("original body should be replaced")
	}
	if h.registry.Len() != 1 {
		t.Errorf("Len = %d, want 1", h.registry.Len())
	}
}

func TestUpgradeRandomSkipsTerminal(t *testing.T) {
	h := newHarness(t)
	e := NewEffectors(h.registry, newRand(), 0)
	h.spawn(t, h.tiers.Terminal(), 100, 100)

	if _, ok := e.UpgradeRandom(); ok {
		t.Error("terminal bodies cannot be upgraded")
	}
}

func TestClearAbove(t *testing.T) {
	h := newHarness(t)
	e := NewEffectors(h.registry, newRand(), 0)
	line := h.cfg.Board.DangerLineY

	high := h.spawn(t, 0, 100, line)
	low := h.spawn(t, 0, 200, 400)

	if n := e.ClearAbove(line); n != 1 {
		t.Errorf("ClearAbove removed %d, want 1", n)
	}
	if _, ok := h.registry.Find(high.ID); ok {
		t.Error("body crossing the line should be removed")
	}
	if _, ok := h.registry.Find(low.ID); !ok {
		t.Error("body below the line should survive")
	}
}
