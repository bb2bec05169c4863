// Package systems contains the merge-game core: body registry, collision
// classification, merge scheduling, spawning, game-over detection and
// power-up effectors.
package systems

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/fruitmerge/components"
	"github.com/pthm-cable/fruitmerge/physics"
	"github.com/pthm-cable/fruitmerge/tiers"
)

// ErrInvalidTier is returned by Spawn for an out-of-range tier index.
var ErrInvalidTier = errors.New("systems: invalid tier")

// Physics is the rigid-body capability the registry drives. Bodies are
// referenced by handle only.
type Physics interface {
	CreateCircle(pos r2.Vec, radius float64) (physics.Handle, error)
	RemoveBody(h physics.Handle) error
	ApplyImpulse(h physics.Handle, impulse r2.Vec) error
	Position(h physics.Handle) (r2.Vec, bool)
	Velocity(h physics.Handle) (r2.Vec, bool)
	Touching(h physics.Handle) []physics.Handle
}

// BodyID identifies a live body. IDs increase with creation order.
type BodyID uint32

// Body is a typed view of one registry entry.
type Body struct {
	ID          BodyID
	Tier        int
	Position    r2.Vec
	Velocity    r2.Vec
	MergeLocked bool
	InDanger    bool
	DangerSince time.Duration

	handle physics.Handle
}

// Registry owns every live merge-able body. Each spawn and removal is
// mirrored into the physics collaborator.
type Registry struct {
	world  *ecs.World
	mapper *ecs.Map5[
		components.Fruit,
		components.Position,
		components.Velocity,
		components.MergeState,
		components.Danger,
	]
	filter *ecs.Filter5[
		components.Fruit,
		components.Position,
		components.Velocity,
		components.MergeState,
		components.Danger,
	]

	tiers   *tiers.Table
	physics Physics
	logger  *slog.Logger

	nextID   uint32
	entities map[BodyID]ecs.Entity
	byHandle map[physics.Handle]BodyID
}

// NewRegistry creates an empty registry backed by its own ECS world.
func NewRegistry(table *tiers.Table, engine Physics, logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	world := ecs.NewWorld()
	return &Registry{
		world: world,
		mapper: ecs.NewMap5[
			components.Fruit,
			components.Position,
			components.Velocity,
			components.MergeState,
			components.Danger,
		](world),
		filter: ecs.NewFilter5[
			components.Fruit,
			components.Position,
			components.Velocity,
			components.MergeState,
			components.Danger,
		](world),
		tiers:    table,
		physics:  engine,
		logger:   logger,
		nextID:   1,
		entities: make(map[BodyID]ecs.Entity),
		byHandle: make(map[physics.Handle]BodyID),
	}
}

// Tiers returns the tier table bodies are sized from.
func (r *Registry) Tiers() *tiers.Table {
	return r.tiers
}

// Spawn creates a body of the given tier centered at (x, y).
func (r *Registry) Spawn(tier int, x, y float64) (Body, error) {
	if !r.tiers.Valid(tier) {
		return Body{}, fmt.Errorf("spawn tier %d: %w", tier, ErrInvalidTier)
	}

	pos := r2.Vec{X: x, Y: y}
	h, err := r.physics.CreateCircle(pos, r.tiers.Radius(tier))
	if err != nil {
		return Body{}, fmt.Errorf("creating physics body: %w", err)
	}

	id := BodyID(r.nextID)
	r.nextID++

	fruit := components.Fruit{ID: uint32(id), Tier: tier, Handle: h}
	p := components.Position{X: x, Y: y}
	vel := components.Velocity{}
	ms := components.MergeState{}
	dg := components.Danger{}

	r.entities[id] = r.mapper.NewEntity(&fruit, &p, &vel, &ms, &dg)
	r.byHandle[h] = id

	return Body{ID: id, Tier: tier, Position: pos, handle: h}, nil
}

// Remove deletes a body. Removing an unknown id is a no-op. A physics failure
// is logged and ignored; the registry's bookkeeping wins.
// Must not be called from inside ForEach.
func (r *Registry) Remove(id BodyID) bool {
	e, ok := r.entities[id]
	if !ok {
		return false
	}
	fruit, _, _, _, _ := r.mapper.Get(e)
	h := fruit.Handle

	r.world.RemoveEntity(e)
	delete(r.entities, id)
	delete(r.byHandle, h)

	if err := r.physics.RemoveBody(h); err != nil {
		r.logger.Debug("physics removal failed", "body", id, "handle", h, "error", err)
	}
	return true
}

// Find returns the body with the given id.
func (r *Registry) Find(id BodyID) (Body, bool) {
	e, ok := r.entities[id]
	if !ok || !r.world.Alive(e) {
		return Body{}, false
	}
	return bodyFrom(r.mapper.Get(e)), true
}

// Touching returns the live bodies physics reports in contact with id.
func (r *Registry) Touching(id BodyID) []BodyID {
	e, ok := r.entities[id]
	if !ok {
		return nil
	}
	fruit, _, _, _, _ := r.mapper.Get(e)
	var out []BodyID
	for _, h := range r.physics.Touching(fruit.Handle) {
		if other, ok := r.byHandle[h]; ok {
			out = append(out, other)
		}
	}
	return out
}

// Lookup resolves a physics handle to a live body id.
func (r *Registry) Lookup(h physics.Handle) (BodyID, bool) {
	id, ok := r.byHandle[h]
	return id, ok
}

// ForEach calls fn for every live body in unspecified order. Changes fn makes
// to MergeLocked and the danger fields are stored; position and velocity
// belong to physics and are not. Returning false stops iteration.
// fn must not spawn or remove bodies.
func (r *Registry) ForEach(fn func(b *Body) bool) {
	query := r.filter.Query()
	for query.Next() {
		fruit, pos, vel, ms, dg := query.Get()
		b := bodyFrom(fruit, pos, vel, ms, dg)

		cont := fn(&b)

		ms.Locked = b.MergeLocked
		dg.Active = b.InDanger
		dg.Since = b.DangerSince

		if !cont {
			query.Close()
			return
		}
	}
}

// Bodies returns a snapshot of every live body ordered by id.
func (r *Registry) Bodies() []Body {
	out := make([]Body, 0, len(r.entities))
	r.ForEach(func(b *Body) bool {
		out = append(out, *b)
		return true
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Len returns the number of live bodies.
func (r *Registry) Len() int {
	return len(r.entities)
}

// Lock marks a body as claimed by a pending merge.
func (r *Registry) Lock(id BodyID) bool {
	return r.setLocked(id, true)
}

// Unlock releases a merge claim.
func (r *Registry) Unlock(id BodyID) bool {
	return r.setLocked(id, false)
}

func (r *Registry) setLocked(id BodyID, locked bool) bool {
	e, ok := r.entities[id]
	if !ok {
		return false
	}
	_, _, _, ms, _ := r.mapper.Get(e)
	ms.Locked = locked
	return true
}

// ApplyImpulse forwards an impulse to the body's physics handle.
func (r *Registry) ApplyImpulse(id BodyID, impulse r2.Vec) error {
	e, ok := r.entities[id]
	if !ok {
		return fmt.Errorf("impulse on body %d: %w", id, physics.ErrUnknownHandle)
	}
	fruit, _, _, _, _ := r.mapper.Get(e)
	return r.physics.ApplyImpulse(fruit.Handle, impulse)
}

// Sync reads position and velocity back from physics for every body.
func (r *Registry) Sync() {
	query := r.filter.Query()
	for query.Next() {
		fruit, pos, vel, _, _ := query.Get()
		if p, ok := r.physics.Position(fruit.Handle); ok {
			pos.X, pos.Y = p.X, p.Y
		}
		if v, ok := r.physics.Velocity(fruit.Handle); ok {
			vel.X, vel.Y = v.X, v.Y
		}
	}
}

// ResetDanger clears every danger timestamp.
func (r *Registry) ResetDanger() {
	query := r.filter.Query()
	for query.Next() {
		_, _, _, _, dg := query.Get()
		*dg = components.Danger{}
	}
}

// Clear removes every body.
func (r *Registry) Clear() {
	ids := make([]BodyID, 0, len(r.entities))
	for id := range r.entities {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		r.Remove(id)
	}
}

func bodyFrom(fruit *components.Fruit, pos *components.Position, vel *components.Velocity,
	ms *components.MergeState, dg *components.Danger) Body {
	return Body{
		ID:          BodyID(fruit.ID),
		Tier:        fruit.Tier,
		Position:    r2.Vec{X: pos.X, Y: pos.Y},
		Velocity:    r2.Vec{X: vel.X, Y: vel.Y},
		MergeLocked: ms.Locked,
		InDanger:    dg.Active,
		DangerSince: dg.Since,
		handle:      fruit.Handle,
	}
}
