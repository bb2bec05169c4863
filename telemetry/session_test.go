package telemetry

import (
	"math"
	"testing"
	"time"
)

func TestCollectorSession(t *testing.T) {
	c := NewCollector()
	c.Start(2 * time.Second)

	c.RecordDrop(3)
	c.RecordDrop(1)
	c.RecordMerge(4)
	c.RecordMerge(2)
	c.RecordPowerup()
	c.RecordRevive()

	s := c.Finish(12*time.Second, 90, 7)
	if s.Session != 1 {
		t.Errorf("session = %d, want 1", s.Session)
	}
	if s.Drops != 2 || s.Merges != 2 || s.Powerups != 1 {
		t.Errorf("counts = drops %d merges %d powerups %d", s.Drops, s.Merges, s.Powerups)
	}
	if s.MaxTier != 4 {
		t.Errorf("max tier = %d, want 4", s.MaxTier)
	}
	if !s.Revived || s.Score != 90 || s.BodiesLeft != 7 {
		t.Errorf("stats = %+v", s)
	}
	if math.Abs(s.DurationSec-10) > 1e-9 {
		t.Errorf("duration = %v, want 10", s.DurationSec)
	}
}

func TestCollectorStartResets(t *testing.T) {
	c := NewCollector()
	c.Start(0)
	c.RecordMerge(5)
	c.RecordRevive()
	c.Finish(time.Second, 10, 0)

	c.Start(time.Second)
	s := c.Finish(3*time.Second, 0, 0)
	if s.Session != 2 {
		t.Errorf("session = %d, want 2", s.Session)
	}
	if s.Merges != 0 || s.MaxTier != 0 || s.Revived {
		t.Errorf("counters not reset: %+v", s)
	}
}
