package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Summary describes the score distribution over finished sessions.
type Summary struct {
	Sessions   int
	MeanScore  float64
	StdScore   float64
	P50Score   float64
	P90Score   float64
	BestScore  float64
	MeanMerges float64

	MeanDurationSec float64
}

// LogValue implements slog.LogValuer for structured logging.
func (s Summary) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("sessions", s.Sessions),
		slog.Float64("mean_score", s.MeanScore),
		slog.Float64("std_score", s.StdScore),
		slog.Float64("p50_score", s.P50Score),
		slog.Float64("p90_score", s.P90Score),
		slog.Float64("best_score", s.BestScore),
		slog.Float64("mean_merges", s.MeanMerges),
		slog.Float64("mean_duration_sec", s.MeanDurationSec),
	)
}

// Summarize computes a Summary. StdScore needs at least two sessions and is
// zero otherwise.
func Summarize(sessions []SessionStats) Summary {
	n := len(sessions)
	if n == 0 {
		return Summary{}
	}

	scores := make([]float64, n)
	merges := make([]float64, n)
	durations := make([]float64, n)
	for i, s := range sessions {
		scores[i] = float64(s.Score)
		merges[i] = float64(s.Merges)
		durations[i] = s.DurationSec
	}
	sort.Float64s(scores)

	sum := Summary{
		Sessions:   n,
		MeanScore:  stat.Mean(scores, nil),
		P50Score:   stat.Quantile(0.5, stat.Empirical, scores, nil),
		P90Score:   stat.Quantile(0.9, stat.Empirical, scores, nil),
		BestScore:  scores[n-1],
		MeanMerges: stat.Mean(merges, nil),

		MeanDurationSec: stat.Mean(durations, nil),
	}
	if n > 1 {
		sum.StdScore = stat.StdDev(scores, nil)
	}
	return sum
}

// History keeps finished sessions and emits a summary every n of them.
type History struct {
	every    int
	sessions []SessionStats
}

// NewHistory creates a history that summarizes every n sessions. n <= 0
// disables periodic summaries.
func NewHistory(every int) *History {
	return &History{every: every}
}

// Add records a session. It returns a summary over all sessions so far when
// the periodic boundary is reached.
func (h *History) Add(s SessionStats) (Summary, bool) {
	h.sessions = append(h.sessions, s)
	if h.every <= 0 || len(h.sessions)%h.every != 0 {
		return Summary{}, false
	}
	return Summarize(h.sessions), true
}

// Summary summarizes every recorded session.
func (h *History) Summary() Summary {
	return Summarize(h.sessions)
}

// Len returns the number of recorded sessions.
func (h *History) Len() int {
	return len(h.sessions)
}
