package game

import (
	"testing"
	"time"
)

func TestCadence(t *testing.T) {
	c := newCadence(50 * time.Millisecond)

	tests := []struct {
		dt   time.Duration
		want int
	}{
		{20 * time.Millisecond, 0},
		{20 * time.Millisecond, 0},
		{10 * time.Millisecond, 1},
		{120 * time.Millisecond, 2},
		{30 * time.Millisecond, 1},
	}
	for i, tt := range tests {
		if got := c.advance(tt.dt); got != tt.want {
			t.Errorf("step %d: advance(%v) = %d, want %d", i, tt.dt, got, tt.want)
		}
	}

	c.reset()
	if got := c.advance(49 * time.Millisecond); got != 0 {
		t.Errorf("after reset: advance = %d, want 0", got)
	}
}

func TestCadenceDisabled(t *testing.T) {
	c := newCadence(0)
	if got := c.advance(time.Hour); got != 0 {
		t.Errorf("advance = %d, want 0", got)
	}
}
