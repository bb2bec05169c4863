// Package game wires the merge core, physics, persistence and telemetry into
// one playable session controller. It has no rendering dependency; frontends
// read Snapshot and call the action methods.
package game

import (
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/fruitmerge/config"
	"github.com/pthm-cable/fruitmerge/physics"
	"github.com/pthm-cable/fruitmerge/storage"
	"github.com/pthm-cable/fruitmerge/systems"
	"github.com/pthm-cable/fruitmerge/telemetry"
	"github.com/pthm-cable/fruitmerge/tiers"
)

// maxStepsPerUpdate bounds catch-up physics after a long frame.
const maxStepsPerUpdate = 8

// Options configures a new game.
type Options struct {
	Config    *config.Config // nil = embedded defaults
	Seed      int64
	Store     storage.Store // nil = profile kept in memory only
	OutputDir string        // empty = no CSV output
	Logger    *slog.Logger
}

// Game is one player's board and session state. It is not safe for
// concurrent use.
type Game struct {
	cfg    *config.Config
	logger *slog.Logger
	rng    *rand.Rand

	tiers      *tiers.Table
	engine     *physics.World
	registry   *systems.Registry
	classifier *systems.Classifier
	scheduler  *systems.MergeScheduler
	spawner    *systems.Spawner
	danger     *systems.DangerMonitor
	effectors  *systems.Effectors

	profile   *storage.ProfileManager
	collector *telemetry.Collector
	history   *telemetry.History
	output    *telemetry.OutputManager

	physicsClock cadence
	mergeClock   cadence
	dangerClock  cadence

	now      time.Duration
	session  session
	finished int

	mergeListeners []func(systems.MergeResult)
}

// NewGame creates a game and starts its first session.
func NewGame(opts Options) (*Game, error) {
	cfg := opts.Config
	if cfg == nil {
		var err error
		if cfg, err = config.Load(""); err != nil {
			return nil, err
		}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	profile, err := storage.NewProfileManager(opts.Store, cfg.Profile.StarterInventory, logger)
	if err != nil {
		return nil, fmt.Errorf("loading profile: %w", err)
	}

	output, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, err
	}
	if err := output.WriteConfig(cfg); err != nil {
		output.Close()
		return nil, fmt.Errorf("writing config snapshot: %w", err)
	}

	rng := rand.New(rand.NewSource(opts.Seed))
	board := cfg.Board
	engine := physics.NewWorld(physics.Params{
		Gravity:     cfg.Physics.Gravity,
		Restitution: cfg.Physics.Restitution,
		Friction:    cfg.Physics.Friction,
		AirFriction: cfg.Physics.AirFriction,
		Density:     cfg.Physics.Density,
		Iterations:  cfg.Physics.Iterations,
		Bounds: physics.Bounds{
			Left:   board.WallThickness,
			Right:  board.Width - board.WallThickness,
			Bottom: board.Height - board.WallThickness,
		},
	})

	table := tiers.New(cfg.Tiers)
	registry := systems.NewRegistry(table, engine, logger)
	scheduler := systems.NewMergeScheduler(registry, cfg.Merge.MaxPerTick, cfg.Merge.PopImpulse, logger)
	classifier := systems.NewClassifier(registry, scheduler)
	engine.OnContactStart(func(a, b physics.Handle) {
		classifier.OnContact(a, b)
	})

	danger := systems.NewDangerMonitor(registry, board.DangerLineY, cfg.Danger.Stillness, cfg.Derived.DangerTime)

	g := &Game{
		cfg:        cfg,
		logger:     logger,
		rng:        rng,
		tiers:      table,
		engine:     engine,
		registry:   registry,
		classifier: classifier,
		scheduler:  scheduler,
		spawner:    systems.NewSpawner(rng, cfg.Spawn.MaxLevel, cfg.Derived.DropCooldown),
		danger:     danger,
		effectors:  systems.NewEffectors(registry, rng, cfg.Powerups.ShakeImpulse),

		profile:   profile,
		collector: telemetry.NewCollector(),
		history:   telemetry.NewHistory(cfg.Telemetry.SummaryEvery),
		output:    output,

		physicsClock: newCadence(cfg.Derived.PhysicsStep),
		mergeClock:   newCadence(cfg.Derived.MergeInterval),
		dangerClock:  newCadence(cfg.Derived.DangerCheck),
	}
	g.startSession()
	return g, nil
}

// Config returns the game's configuration.
func (g *Game) Config() *config.Config {
	return g.cfg
}

// Tiers returns the tier table.
func (g *Game) Tiers() *tiers.Table {
	return g.tiers
}

// Now returns the session clock.
func (g *Game) Now() time.Duration {
	return g.now
}

// Score returns the current session score.
func (g *Game) Score() int {
	return g.session.score
}

// IsGameOver reports whether the session has ended.
func (g *Game) IsGameOver() bool {
	return g.session.over
}

// SessionsFinished returns how many sessions have been recorded.
func (g *Game) SessionsFinished() int {
	return g.finished
}

// Summary summarizes every session recorded by this game.
func (g *Game) Summary() telemetry.Summary {
	return g.history.Summary()
}

// Profile returns the persistent profile manager.
func (g *Game) Profile() *storage.ProfileManager {
	return g.profile
}

// OnMerge registers a listener for completed merges. Listeners run on the
// Update goroutine after the merge is applied.
func (g *Game) OnMerge(fn func(systems.MergeResult)) {
	g.mergeListeners = append(g.mergeListeners, fn)
}

// BodyView is a render-ready body.
type BodyView struct {
	ID       systems.BodyID
	Tier     int
	Position r2.Vec
	Radius   float64
	Color    uint32
	InDanger bool
	Locked   bool
}

// Snapshot is everything a frontend needs to draw one frame.
type Snapshot struct {
	Score       int
	BestScore   int
	CurrentTier int
	NextTier    int
	IsGameOver  bool
	IsDropping  bool
	CanRevive   bool
	Multiplier  int
	Bodies      []BodyView
	Inventory   map[PowerupKind]int
}

// Snapshot returns the observable state at the current instant.
func (g *Game) Snapshot() Snapshot {
	bodies := g.registry.Bodies()
	views := make([]BodyView, len(bodies))
	for i, b := range bodies {
		tier, _ := g.tiers.Get(b.Tier)
		views[i] = BodyView{
			ID:       b.ID,
			Tier:     b.Tier,
			Position: b.Position,
			Radius:   tier.Radius,
			Color:    tier.Color,
			InDanger: b.InDanger,
			Locked:   b.MergeLocked,
		}
	}

	inv := make(map[PowerupKind]int, len(PowerupKinds))
	for _, kind := range PowerupKinds {
		inv[kind] = g.profile.Count(string(kind))
	}

	best := g.profile.BestScore()
	if g.session.score > best {
		best = g.session.score
	}

	return Snapshot{
		Score:       g.session.score,
		BestScore:   best,
		CurrentTier: g.spawner.Current(),
		NextTier:    g.spawner.PeekUpcoming(),
		IsGameOver:  g.session.over,
		IsDropping:  g.spawner.IsDropping(g.now),
		CanRevive:   g.canRevive(),
		Multiplier:  g.session.multiplier,
		Bodies:      views,
		Inventory:   inv,
	}
}

// Close records an unfinished session and closes telemetry output.
func (g *Game) Close() error {
	g.finishSession()
	return g.output.Close()
}
