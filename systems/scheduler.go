package systems

import (
	"log/slog"

	"gonum.org/v1/gonum/spatial/r2"
)

// PendingMerge is a classified pair waiting for the scheduler.
type PendingMerge struct {
	A, B       BodyID
	ResultTier int
}

// MergeResult describes one completed merge.
type MergeResult struct {
	Sources  [2]BodyID
	ID       BodyID // the new body
	Tier     int
	Position r2.Vec
	Points   int
}

// ScoreKeeper receives merge points.
type ScoreKeeper interface {
	Multiplier() int
	AddScore(points int)
}

// MergeScheduler is a FIFO of pending merges drained on its own cadence,
// never from inside a physics callback.
type MergeScheduler struct {
	registry   *Registry
	logger     *slog.Logger
	maxPerTick int // 0 = drain
	popImpulse float64

	queue []PendingMerge
}

// NewMergeScheduler creates a scheduler. maxPerTick <= 0 drains the queue on
// every tick.
func NewMergeScheduler(registry *Registry, maxPerTick int, popImpulse float64, logger *slog.Logger) *MergeScheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &MergeScheduler{
		registry:   registry,
		logger:     logger,
		maxPerTick: maxPerTick,
		popImpulse: popImpulse,
	}
}

// Enqueue appends a record.
func (s *MergeScheduler) Enqueue(rec PendingMerge) {
	s.queue = append(s.queue, rec)
}

// Len returns the number of pending records.
func (s *MergeScheduler) Len() int {
	return len(s.queue)
}

// Pending returns a copy of the queue in processing order.
func (s *MergeScheduler) Pending() []PendingMerge {
	out := make([]PendingMerge, len(s.queue))
	copy(out, s.queue)
	return out
}

// Flush drops every pending record and releases the locks it held.
func (s *MergeScheduler) Flush() {
	for _, rec := range s.queue {
		s.registry.Unlock(rec.A)
		s.registry.Unlock(rec.B)
	}
	s.queue = s.queue[:0]
}

// Tick processes pending records in FIFO order, up to maxPerTick.
func (s *MergeScheduler) Tick(score ScoreKeeper) []MergeResult {
	n := len(s.queue)
	if s.maxPerTick > 0 && n > s.maxPerTick {
		n = s.maxPerTick
	}
	if n == 0 {
		return nil
	}

	batch := make([]PendingMerge, n)
	copy(batch, s.queue[:n])
	s.queue = append(s.queue[:0], s.queue[n:]...)

	results := make([]MergeResult, 0, n)
	for _, rec := range batch {
		if res, ok := s.apply(rec, score); ok {
			results = append(results, res)
		}
	}
	return results
}

func (s *MergeScheduler) apply(rec PendingMerge, score ScoreKeeper) (MergeResult, bool) {
	a, okA := s.registry.Find(rec.A)
	b, okB := s.registry.Find(rec.B)
	if !okA || !okB {
		// Stale record: release whichever source survived.
		s.registry.Unlock(rec.A)
		s.registry.Unlock(rec.B)
		s.logger.Debug("discarding stale merge", "a", rec.A, "b", rec.B)
		return MergeResult{}, false
	}

	mid := r2.Scale(0.5, r2.Add(a.Position, b.Position))

	s.registry.Remove(rec.A)
	s.registry.Remove(rec.B)

	merged, err := s.registry.Spawn(rec.ResultTier, mid.X, mid.Y)
	if err != nil {
		s.logger.Error("failed to spawn merged body", "tier", rec.ResultTier, "error", err)
		return MergeResult{}, false
	}
	if s.popImpulse != 0 {
		if err := s.registry.ApplyImpulse(merged.ID, r2.Vec{Y: -s.popImpulse}); err != nil {
			s.logger.Debug("merge impulse failed", "body", merged.ID, "error", err)
		}
	}

	points := s.registry.Tiers().Score(rec.ResultTier) * score.Multiplier()
	score.AddScore(points)

	return MergeResult{
		Sources:  [2]BodyID{rec.A, rec.B},
		ID:       merged.ID,
		Tier:     rec.ResultTier,
		Position: mid,
		Points:   points,
	}, true
}
