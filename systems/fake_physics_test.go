package systems

import (
	"errors"
	"io"
	"log/slog"
	"math/rand"
	"testing"
	"time"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/fruitmerge/config"
	"github.com/pthm-cable/fruitmerge/physics"
	"github.com/pthm-cable/fruitmerge/tiers"
)

// fakePhysics records every boundary call and lets tests place bodies.
type fakePhysics struct {
	next       physics.Handle
	pos        map[physics.Handle]r2.Vec
	vel        map[physics.Handle]r2.Vec
	impulses   map[physics.Handle]r2.Vec
	contacts   map[physics.Handle][]physics.Handle
	created    int
	removed    int
	failRemove bool
}

func newFakePhysics() *fakePhysics {
	return &fakePhysics{
		next:     1,
		pos:      make(map[physics.Handle]r2.Vec),
		vel:      make(map[physics.Handle]r2.Vec),
		impulses: make(map[physics.Handle]r2.Vec),
		contacts: make(map[physics.Handle][]physics.Handle),
	}
}

func (f *fakePhysics) CreateCircle(pos r2.Vec, radius float64) (physics.Handle, error) {
	h := f.next
	f.next++
	f.pos[h] = pos
	f.vel[h] = r2.Vec{}
	f.created++
	return h, nil
}

func (f *fakePhysics) RemoveBody(h physics.Handle) error {
	f.removed++
	if f.failRemove {
		return errors.New("engine refused removal")
	}
	if _, ok := f.pos[h]; !ok {
		return physics.ErrUnknownHandle
	}
	delete(f.pos, h)
	delete(f.vel, h)
	return nil
}

func (f *fakePhysics) ApplyImpulse(h physics.Handle, impulse r2.Vec) error {
	if _, ok := f.pos[h]; !ok {
		return physics.ErrUnknownHandle
	}
	f.impulses[h] = r2.Add(f.impulses[h], impulse)
	return nil
}

func (f *fakePhysics) Position(h physics.Handle) (r2.Vec, bool) {
	p, ok := f.pos[h]
	return p, ok
}

func (f *fakePhysics) Velocity(h physics.Handle) (r2.Vec, bool) {
	v, ok := f.vel[h]
	return v, ok
}

func (f *fakePhysics) Touching(h physics.Handle) []physics.Handle {
	return f.contacts[h]
}

// touch records a lasting contact between two bodies.
func (f *fakePhysics) touch(a, b physics.Handle) {
	f.contacts[a] = append(f.contacts[a], b)
	f.contacts[b] = append(f.contacts[b], a)
}

// score is a ScoreKeeper for tests.
type score struct {
	total      int
	multiplier int
}

func (s *score) Multiplier() int     { return s.multiplier }
func (s *score) AddScore(points int) { s.total += points }

// harness wires the core against fake physics and the default tier table.
type harness struct {
	cfg        *config.Config
	tiers      *tiers.Table
	physics    *fakePhysics
	registry   *Registry
	scheduler  *MergeScheduler
	classifier *Classifier
	score      *score
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("config.Load error: %v", err)
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	table := tiers.New(cfg.Tiers)
	fp := newFakePhysics()
	reg := NewRegistry(table, fp, logger)
	sched := NewMergeScheduler(reg, 0, cfg.Merge.PopImpulse, logger)
	return &harness{
		cfg:        cfg,
		tiers:      table,
		physics:    fp,
		registry:   reg,
		scheduler:  sched,
		classifier: NewClassifier(reg, sched),
		score:      &score{multiplier: 1},
	}
}

func (h *harness) spawn(t *testing.T, tier int, x, y float64) Body {
	t.Helper()
	b, err := h.registry.Spawn(tier, x, y)
	if err != nil {
		t.Fatalf("Spawn(%d, %v, %v) error: %v", tier, x, y, err)
	}
	return b
}

// place moves a body in the fake engine and syncs the registry.
func (h *harness) place(b Body, pos, vel r2.Vec) {
	h.physics.pos[b.handle] = pos
	h.physics.vel[b.handle] = vel
	h.registry.Sync()
}

func newRand() *rand.Rand {
	return rand.New(rand.NewSource(1))
}

func ms(v int) time.Duration {
	return time.Duration(v) * time.Millisecond
}
