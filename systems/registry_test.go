package systems

import (
	"errors"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

func TestSpawnAndFind(t *testing.T) {
	h := newHarness(t)

	b := h.spawn(t, 2, 100, 200)
	if h.physics.created != 1 {
		t.Errorf("physics creates = %d, want 1", h.physics.created)
	}

	got, ok := h.registry.Find(b.ID)
	if !ok {
		t.Fatal("spawned body not found")
	}
	if got.Tier != 2 || got.Position != (r2.Vec{X: 100, Y: 200}) {
		t.Errorf("Find = tier %d at %v, want tier 2 at (100,200)", got.Tier, got.Position)
	}
	if got.MergeLocked || got.InDanger {
		t.Error("new body should not be locked or in danger")
	}
}

func TestSpawnInvalidTier(t *testing.T) {
	h := newHarness(t)

	for _, tier := range []int{-1, h.tiers.Len()} {
		_, err := h.registry.Spawn(tier, 0, 0)
		if !errors.Is(err, ErrInvalidTier) {
			t.Errorf("Spawn(%d) error = %v, want ErrInvalidTier", tier, err)
		}
	}
	if h.physics.created != 0 || h.registry.Len() != 0 {
		t.Error("invalid spawn must not touch physics or the registry")
	}
}

func TestRemoveIsIdempotent(t *testing.T) {
	h := newHarness(t)
	b := h.spawn(t, 0, 50, 50)

	if !h.registry.Remove(b.ID) {
		t.Fatal("first Remove should report a live body")
	}
	if h.registry.Remove(b.ID) {
		t.Error("second Remove should be a no-op")
	}
	if h.physics.removed != 1 {
		t.Errorf("physics removals = %d, want 1", h.physics.removed)
	}
	if _, ok := h.registry.Find(b.ID); ok {
		t.Error("removed body still found")
	}
	if _, ok := h.registry.Lookup(b.handle); ok {
		t.Error("removed handle still resolves")
	}
}

func TestRemoveIgnoresPhysicsFailure(t *testing.T) {
	h := newHarness(t)
	h.physics.failRemove = true
	b := h.spawn(t, 0, 50, 50)

	if !h.registry.Remove(b.ID) {
		t.Fatal("Remove should succeed despite physics failure")
	}
	if h.registry.Len() != 0 {
		t.Errorf("Len = %d, want 0", h.registry.Len())
	}
}

func TestIDsAreNeverReused(t *testing.T) {
	h := newHarness(t)
	a := h.spawn(t, 0, 0, 0)
	h.registry.Remove(a.ID)
	b := h.spawn(t, 0, 0, 0)

	if b.ID == a.ID {
		t.Errorf("id %d reused after removal", a.ID)
	}
}

func TestSyncReadsBackPhysics(t *testing.T) {
	h := newHarness(t)
	b := h.spawn(t, 1, 10, 10)

	h.place(b, r2.Vec{X: 40, Y: 60}, r2.Vec{X: 1, Y: -2})

	got, _ := h.registry.Find(b.ID)
	if got.Position != (r2.Vec{X: 40, Y: 60}) || got.Velocity != (r2.Vec{X: 1, Y: -2}) {
		t.Errorf("after Sync: pos %v vel %v", got.Position, got.Velocity)
	}
}

func TestForEachWritesBackFlags(t *testing.T) {
	h := newHarness(t)
	a := h.spawn(t, 0, 0, 0)
	b := h.spawn(t, 0, 0, 0)

	h.registry.ForEach(func(body *Body) bool {
		if body.ID == a.ID {
			body.MergeLocked = true
			body.InDanger = true
			body.DangerSince = ms(300)
		}
		return true
	})

	gotA, _ := h.registry.Find(a.ID)
	if !gotA.MergeLocked || !gotA.InDanger || gotA.DangerSince != ms(300) {
		t.Errorf("flags not stored: %+v", gotA)
	}
	gotB, _ := h.registry.Find(b.ID)
	if gotB.MergeLocked || gotB.InDanger {
		t.Errorf("untouched body changed: %+v", gotB)
	}
}

func TestForEachStopsEarly(t *testing.T) {
	h := newHarness(t)
	for i := 0; i < 5; i++ {
		h.spawn(t, 0, 0, 0)
	}

	visited := 0
	h.registry.ForEach(func(*Body) bool {
		visited++
		return visited < 2
	})
	if visited != 2 {
		t.Errorf("visited = %d, want 2", visited)
	}

	// The world must be usable again after an early stop.
	h.spawn(t, 0, 0, 0)
	if h.registry.Len() != 6 {
		t.Errorf("Len = %d, want 6", h.registry.Len())
	}
}

func TestBodiesOrderedByID(t *testing.T) {
	h := newHarness(t)
	var ids []BodyID
	for i := 0; i < 4; i++ {
		ids = append(ids, h.spawn(t, i, 0, 0).ID)
	}
	h.registry.Remove(ids[1])
	ids = append(ids[:1], ids[2:]...)

	got := h.registry.Bodies()
	if len(got) != len(ids) {
		t.Fatalf("Bodies() len = %d, want %d", len(got), len(ids))
	}
	for i, b := range got {
		if b.ID != ids[i] {
			t.Errorf("Bodies()[%d].ID = %d, want %d", i, b.ID, ids[i])
		}
	}
}

func TestClear(t *testing.T) {
	h := newHarness(t)
	for i := 0; i < 3; i++ {
		h.spawn(t, 0, 0, 0)
	}
	h.registry.Clear()

	if h.registry.Len() != 0 {
		t.Errorf("Len = %d, want 0", h.registry.Len())
	}
	if h.physics.removed != 3 {
		t.Errorf("physics removals = %d, want 3", h.physics.removed)
	}
}
