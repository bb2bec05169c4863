// Package telemetry records per-session game statistics and writes them as
// CSV for offline analysis.
package telemetry

import (
	"log/slog"
	"time"
)

// SessionStats summarizes one finished session.
type SessionStats struct {
	Session     int     `csv:"session"`
	Score       int     `csv:"score"`
	Merges      int     `csv:"merges"`
	MaxTier     int     `csv:"max_tier"`
	Drops       int     `csv:"drops"`
	Powerups    int     `csv:"powerups"`
	Revived     bool    `csv:"revived"`
	BodiesLeft  int     `csv:"bodies_left"`
	DurationSec float64 `csv:"duration_sec"`
}

// LogValue implements slog.LogValuer for structured logging.
func (s SessionStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("session", s.Session),
		slog.Int("score", s.Score),
		slog.Int("merges", s.Merges),
		slog.Int("max_tier", s.MaxTier),
		slog.Int("drops", s.Drops),
		slog.Int("powerups", s.Powerups),
		slog.Bool("revived", s.Revived),
		slog.Float64("duration_sec", s.DurationSec),
	)
}

// Collector counts events during one session.
type Collector struct {
	session int
	start   time.Duration

	merges   int
	maxTier  int
	drops    int
	powerups int
	revived  bool
}

// NewCollector creates a collector for the first session.
func NewCollector() *Collector {
	return &Collector{session: 1}
}

// Start resets the counters for a session beginning at now.
func (c *Collector) Start(now time.Duration) {
	c.start = now
	c.merges = 0
	c.maxTier = 0
	c.drops = 0
	c.powerups = 0
	c.revived = false
}

// RecordDrop counts a player drop of the given tier.
func (c *Collector) RecordDrop(tier int) {
	c.drops++
	c.observeTier(tier)
}

// RecordMerge counts a completed merge into tier.
func (c *Collector) RecordMerge(tier int) {
	c.merges++
	c.observeTier(tier)
}

// RecordPowerup counts a successful power-up use.
func (c *Collector) RecordPowerup() {
	c.powerups++
}

// RecordRevive marks the session as revived.
func (c *Collector) RecordRevive() {
	c.revived = true
}

// Merges returns merges counted so far in this session.
func (c *Collector) Merges() int {
	return c.merges
}

func (c *Collector) observeTier(tier int) {
	if tier > c.maxTier {
		c.maxTier = tier
	}
}

// Finish closes the session at now and returns its stats.
func (c *Collector) Finish(now time.Duration, score, bodiesLeft int) SessionStats {
	stats := SessionStats{
		Session:     c.session,
		Score:       score,
		Merges:      c.merges,
		MaxTier:     c.maxTier,
		Drops:       c.drops,
		Powerups:    c.powerups,
		Revived:     c.revived,
		BodiesLeft:  bodiesLeft,
		DurationSec: (now - c.start).Seconds(),
	}
	c.session++
	return stats
}
