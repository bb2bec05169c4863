// Package physics adapts a Chipmunk2D space to the merge core: circle bodies
// in an open-topped container, impulses, position readback and contact-start
// events keyed by opaque handles.
package physics

import (
	"errors"
	"math"
	"sort"

	"github.com/jakecoffman/cp"
	"gonum.org/v1/gonum/spatial/r2"
)

// Handle identifies a body inside a World. Zero is never issued.
type Handle uint32

var (
	ErrUnknownHandle = errors.New("physics: unknown body handle")
	ErrWorldLocked   = errors.New("physics: world is locked during step")
)

// fruitType tags circle shapes so walls never raise contact events.
const fruitType cp.CollisionType = 1

// wallRadius is the thickness of the container segments. It must exceed the
// distance a fast body travels in one step or bodies tunnel through.
const wallRadius = 50

// Params configures a World.
type Params struct {
	Gravity     float64 // px/s^2 along +Y
	Restitution float64
	Friction    float64
	AirFriction float64 // fraction of velocity removed per step
	Density     float64 // mass per unit area
	Iterations  int     // solver iterations per step
	Bounds      Bounds
}

// Bounds is the container: two side walls and a floor. The top is open.
type Bounds struct {
	Left   float64
	Right  float64
	Bottom float64
}

// ContactFunc receives a pair of bodies that started touching this step.
type ContactFunc func(a, b Handle)

type entry struct {
	body  *cp.Body
	shape *cp.Shape
}

type pairKey struct {
	a, b Handle // a < b
}

func makePair(a, b Handle) pairKey {
	if a > b {
		a, b = b, a
	}
	return pairKey{a, b}
}

// World wraps a cp.Space. It is not safe for concurrent use.
type World struct {
	params     Params
	space      *cp.Space
	entries    map[Handle]entry
	nextHandle Handle
	listeners  []ContactFunc
	stepping   bool

	began []pairKey
}

// NewWorld creates an empty world with its container walls.
func NewWorld(params Params) *World {
	if params.Iterations < 1 {
		params.Iterations = 1
	}
	if params.Density <= 0 {
		params.Density = 0.001
	}

	space := cp.NewSpace()
	space.Iterations = uint(params.Iterations)
	space.SetGravity(cp.Vector{X: 0, Y: params.Gravity})

	w := &World{
		params:     params,
		space:      space,
		entries:    make(map[Handle]entry),
		nextHandle: 1,
	}
	w.addWalls()

	handler := space.NewCollisionHandler(fruitType, fruitType)
	handler.BeginFunc = w.onBegin
	return w
}

// addWalls builds the container from thick static segments whose inner
// surfaces sit exactly on the bounds.
func (w *World) addWalls() {
	b := w.params.Bounds
	const top = -10000
	left := b.Left - wallRadius
	right := b.Right + wallRadius
	floor := b.Bottom + wallRadius

	segments := [][2]cp.Vector{
		{{X: left, Y: top}, {X: left, Y: floor}},
		{{X: right, Y: top}, {X: right, Y: floor}},
		{{X: left, Y: floor}, {X: right, Y: floor}},
	}
	for _, s := range segments {
		shape := w.space.AddShape(cp.NewSegment(w.space.StaticBody, s[0], s[1], wallRadius))
		// cp multiplies the coefficients of both shapes; walls defer to the fruit.
		shape.SetElasticity(1)
		shape.SetFriction(1)
	}
}

func (w *World) onBegin(arb *cp.Arbiter, _ *cp.Space, _ interface{}) bool {
	a, b := arb.Bodies()
	ha, okA := a.UserData.(Handle)
	hb, okB := b.UserData.(Handle)
	if okA && okB {
		w.began = append(w.began, makePair(ha, hb))
	}
	return true
}

// OnContactStart registers a listener for contact-start events. Listeners run
// inside Step; the world rejects body creation and removal until Step returns.
func (w *World) OnContactStart(fn ContactFunc) {
	w.listeners = append(w.listeners, fn)
}

// CreateCircle adds a dynamic circle at pos.
func (w *World) CreateCircle(pos r2.Vec, radius float64) (Handle, error) {
	if w.stepping {
		return 0, ErrWorldLocked
	}
	h := w.nextHandle
	w.nextHandle++

	mass := w.params.Density * math.Pi * radius * radius
	body := w.space.AddBody(cp.NewBody(mass, cp.MomentForCircle(mass, 0, radius, cp.Vector{})))
	body.SetPosition(cp.Vector{X: pos.X, Y: pos.Y})
	body.UserData = h

	shape := w.space.AddShape(cp.NewCircle(body, radius, cp.Vector{}))
	shape.SetElasticity(w.params.Restitution)
	shape.SetFriction(w.params.Friction)
	shape.SetCollisionType(fruitType)

	w.entries[h] = entry{body: body, shape: shape}
	return h, nil
}

// RemoveBody deletes a body from the space.
func (w *World) RemoveBody(h Handle) error {
	if w.stepping {
		return ErrWorldLocked
	}
	e, ok := w.entries[h]
	if !ok {
		return ErrUnknownHandle
	}
	w.space.RemoveShape(e.shape)
	w.space.RemoveBody(e.body)
	delete(w.entries, h)
	return nil
}

// ApplyImpulse changes the body's velocity by impulse/mass.
func (w *World) ApplyImpulse(h Handle, impulse r2.Vec) error {
	e, ok := w.entries[h]
	if !ok {
		return ErrUnknownHandle
	}
	e.body.ApplyImpulseAtWorldPoint(cp.Vector{X: impulse.X, Y: impulse.Y}, e.body.Position())
	return nil
}

// Position returns the body's center.
func (w *World) Position(h Handle) (r2.Vec, bool) {
	e, ok := w.entries[h]
	if !ok {
		return r2.Vec{}, false
	}
	p := e.body.Position()
	return r2.Vec{X: p.X, Y: p.Y}, true
}

// Velocity returns the body's velocity in px/s.
func (w *World) Velocity(h Handle) (r2.Vec, bool) {
	e, ok := w.entries[h]
	if !ok {
		return r2.Vec{}, false
	}
	v := e.body.Velocity()
	return r2.Vec{X: v.X, Y: v.Y}, true
}

// Touching returns the bodies currently in contact with h, ordered by handle.
// Walls are not reported.
func (w *World) Touching(h Handle) []Handle {
	e, ok := w.entries[h]
	if !ok {
		return nil
	}
	var out []Handle
	e.body.EachArbiter(func(arb *cp.Arbiter) {
		if arb.Count() == 0 {
			return
		}
		a, b := arb.Bodies()
		other := a
		if a == e.body {
			other = b
		}
		if oh, ok := other.UserData.(Handle); ok && oh != h {
			out = append(out, oh)
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Len returns the number of live bodies.
func (w *World) Len() int {
	return len(w.entries)
}

// Step advances the simulation by dt seconds and then delivers contact-start
// events collected during the step, ordered by handle pair.
func (w *World) Step(dt float64) {
	if dt <= 0 {
		return
	}
	w.stepping = true
	defer func() { w.stepping = false }()

	// cp damping is the fraction of velocity kept per second.
	w.space.SetDamping(math.Pow(1-w.params.AirFriction, 1/dt))

	w.began = w.began[:0]
	w.space.Step(dt)

	sort.Slice(w.began, func(i, j int) bool {
		if w.began[i].a != w.began[j].a {
			return w.began[i].a < w.began[j].a
		}
		return w.began[i].b < w.began[j].b
	})
	for i, pk := range w.began {
		if i > 0 && pk == w.began[i-1] {
			continue
		}
		for _, fn := range w.listeners {
			fn(pk.a, pk.b)
		}
	}
}
