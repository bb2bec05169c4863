package main

import (
	"io"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/pthm-cable/fruitmerge/config"
	"github.com/pthm-cable/fruitmerge/game"
	"github.com/pthm-cable/fruitmerge/storage"
)

// FitnessEvaluator plays autoplay sessions with candidate parameters and
// scores how close the mean session length lands to a target.
type FitnessEvaluator struct {
	params     *ParamVector
	baseConfig *config.Config
	seeds      []int64
	sessions   int
	maxTicks   int
	target     time.Duration

	mu          sync.Mutex
	lastMeanSec float64
	lastScore   float64
}

// NewFitnessEvaluator creates an evaluator. Each seed plays up to sessions
// sessions or maxTicks physics steps, whichever comes first.
func NewFitnessEvaluator(params *ParamVector, baseCfg *config.Config, seeds []int64,
	sessions, maxTicks int, target time.Duration) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:     params,
		baseConfig: baseCfg,
		seeds:      seeds,
		sessions:   sessions,
		maxTicks:   maxTicks,
		target:     target,
	}
}

// LastRun returns the mean session length and mean score of the most recent
// evaluation.
func (fe *FitnessEvaluator) LastRun() (meanSec, meanScore float64) {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastMeanSec, fe.lastScore
}

// invalidFitness is returned for parameter sets the config rejects.
const invalidFitness = 1e6

// Evaluate returns the squared relative error between the mean session
// length and the target. Lower is better.
func (fe *FitnessEvaluator) Evaluate(raw []float64) float64 {
	cfg := *fe.baseConfig
	if err := fe.params.ApplyToConfig(&cfg, raw); err != nil {
		return invalidFitness
	}

	var totalSec, totalScore float64
	runs := 0
	for _, seed := range fe.seeds {
		sec, score, n := fe.play(&cfg, seed)
		totalSec += sec
		totalScore += score
		runs += n
	}
	if runs == 0 {
		return invalidFitness
	}
	meanSec := totalSec / float64(runs)
	meanScore := totalScore / float64(runs)

	fe.mu.Lock()
	fe.lastMeanSec = meanSec
	fe.lastScore = meanScore
	fe.mu.Unlock()

	rel := (meanSec - fe.target.Seconds()) / fe.target.Seconds()
	return rel * rel
}

// play runs one seed and returns summed session seconds, summed score and
// the number of sessions they cover. A session still running at the tick cap
// counts with its elapsed time.
func (fe *FitnessEvaluator) play(cfg *config.Config, seed int64) (sec, score float64, n int) {
	g, err := game.NewGame(game.Options{
		Config: cfg,
		Seed:   seed,
		Store:  storage.NewMemoryStore(),
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	if err != nil {
		return 0, 0, 0
	}
	defer g.Close()

	bot := game.NewAutoplay(seed)
	step := cfg.Derived.PhysicsStep
	for tick := 0; tick < fe.maxTicks && g.SessionsFinished() < fe.sessions; tick++ {
		bot.Act(g)
		g.Update(step)
	}

	sum := g.Summary()
	sec = sum.MeanDurationSec * float64(sum.Sessions)
	score = sum.MeanScore * float64(sum.Sessions)
	n = sum.Sessions
	if n == 0 {
		// Never lost: the whole run is one long session.
		return g.Now().Seconds(), float64(g.Score()), 1
	}
	if math.IsNaN(sec) {
		return 0, 0, 0
	}
	return sec, score, n
}
