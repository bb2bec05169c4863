package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/fruitmerge/config"
	"github.com/pthm-cable/fruitmerge/game"
	"github.com/pthm-cable/fruitmerge/renderer"
	"github.com/pthm-cable/fruitmerge/storage"
	"github.com/pthm-cable/fruitmerge/ui"
)

// Window layout
const (
	margin     = 20
	panelWidth = 200
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics, played by the autoplay bot")
	outputDir := flag.String("output-dir", "", "Output directory for sessions.csv and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Headless: stop after N physics steps (0 = unlimited)")
	sessions := flag.Int("sessions", 10, "Headless: stop after N recorded sessions (0 = unlimited)")
	memory := flag.Bool("memory", false, "Keep the profile in memory instead of the user data directory")
	debug := flag.Bool("debug", false, "Enable debug logging")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	opts := game.Options{
		Config:    cfg,
		Seed:      rngSeed,
		Store:     openStore(cfg, *memory || *headless),
		OutputDir: *outputDir,
		Logger:    logger,
	}

	if *headless {
		runHeadless(opts, *maxTicks, *sessions)
		return
	}
	runWindow(opts)
}

// openStore returns the persistent profile store, or nil to keep the profile
// in memory when persistence is disabled or unavailable.
func openStore(cfg *config.Config, inMemory bool) storage.Store {
	if inMemory {
		return storage.NewMemoryStore()
	}
	store, err := storage.OpenGdata(cfg.Storage.AppName)
	if err != nil {
		slog.Warn("profile storage unavailable, progress will not be saved", "error", err)
		return nil
	}
	return store
}

func runHeadless(opts game.Options, maxTicks, sessions int) {
	g, err := game.NewGame(opts)
	if err != nil {
		slog.Error("failed to create game", "error", err)
		os.Exit(1)
	}
	defer g.Close()

	slog.Info("starting headless autoplay",
		"seed", opts.Seed,
		"max_ticks", maxTicks,
		"sessions", sessions,
	)

	bot := game.NewAutoplay(opts.Seed)
	step := opts.Config.Derived.PhysicsStep
	for tick := 1; ; tick++ {
		bot.Act(g)
		g.Update(step)

		if sessions > 0 && g.SessionsFinished() >= sessions {
			slog.Info("session limit reached", "sessions", g.SessionsFinished(), "tick", tick)
			return
		}
		if maxTicks > 0 && tick >= maxTicks {
			slog.Info("max ticks reached", "tick", tick)
			return
		}
	}
}

func runWindow(opts game.Options) {
	cfg := opts.Config
	boardW, boardH := int32(cfg.Board.Width), int32(cfg.Board.Height)
	screenW := margin + boardW + margin + panelWidth + margin
	screenH := margin + boardH + margin + 10

	rl.InitWindow(screenW, screenH, "Fruit Merge")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	g, err := game.NewGame(opts)
	if err != nil {
		slog.Error("failed to create game", "error", err)
		return
	}
	defer g.Close()

	origin := rl.Vector2{X: margin, Y: margin}
	board := renderer.NewBoard(cfg, g.Tiers(), origin)
	popups := renderer.NewPopups(origin)
	g.OnMerge(popups.Add)

	input := ui.NewInput(board, cfg.Board.Width/2)
	hud := ui.NewHUD(g.Tiers(), margin+boardW+margin, margin, panelWidth, boardH)
	overlay := ui.NewGameOverOverlay(rl.Rectangle{
		X: origin.X, Y: origin.Y, Width: float32(boardW), Height: float32(boardH),
	})

	for !rl.WindowShouldClose() {
		frame := rl.GetFrameTime()
		g.Update(time.Duration(float64(frame) * float64(time.Second)))
		popups.Update(frame)

		snap := g.Snapshot()
		actions := []ui.Action{input.Poll(snap)}

		rl.BeginDrawing()
		rl.ClearBackground(rl.Color{R: 60, G: 45, B: 35, A: 255})
		board.Draw(snap, input.AimX(), g.Now())
		popups.Draw()
		actions = append(actions, hud.Draw(snap))
		if snap.IsGameOver {
			actions = append(actions, overlay.Draw(snap))
		}
		hud.DrawControls(screenH, "Click/Space: drop | 1-3: power-ups | V: revive | R: restart")
		rl.EndDrawing()

		for _, a := range actions {
			apply(g, popups, a)
		}
	}
}

func apply(g *game.Game, popups *renderer.Popups, a ui.Action) {
	switch a.Kind {
	case ui.ActionDrop:
		g.DropAt(a.X)
	case ui.ActionPowerup:
		g.UsePowerup(a.Powerup)
	case ui.ActionRevive:
		g.Revive()
	case ui.ActionRestart:
		g.Restart()
		popups.Clear()
	}
}
