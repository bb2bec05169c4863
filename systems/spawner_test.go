package systems

import (
	"testing"
)

func TestSpawnerRollsWithinRange(t *testing.T) {
	s := NewSpawner(newRand(), 4, ms(400))
	for i := 0; i < 500; i++ {
		tier := s.Next()
		if tier < 0 || tier > 4 {
			t.Fatalf("rolled tier %d outside [0,4]", tier)
		}
	}
}

func TestSpawnerNextAdvances(t *testing.T) {
	s := NewSpawner(newRand(), 4, ms(400))
	current, upcoming := s.Current(), s.PeekUpcoming()

	if got := s.Next(); got != current {
		t.Errorf("Next = %d, want current %d", got, current)
	}
	if s.Current() != upcoming {
		t.Errorf("Current after Next = %d, want previous upcoming %d", s.Current(), upcoming)
	}
}

func TestSpawnerCooldown(t *testing.T) {
	s := NewSpawner(newRand(), 4, ms(400))

	if _, ok := s.TryDrop(0); !ok {
		t.Fatal("first drop should be allowed")
	}
	if !s.IsDropping(ms(100)) {
		t.Error("expected cooldown at 100ms")
	}

	before := s.Current()
	if _, ok := s.TryDrop(ms(399)); ok {
		t.Error("drop at 399ms should be ignored")
	}
	if s.Current() != before {
		t.Error("ignored drop must not advance the queue")
	}

	if _, ok := s.TryDrop(ms(400)); !ok {
		t.Error("drop at 400ms should be allowed")
	}
}

func TestSpawnerResetClearsCooldown(t *testing.T) {
	s := NewSpawner(newRand(), 4, ms(400))
	s.TryDrop(ms(1000))
	s.Reset()

	if !s.CanDrop(ms(1001)) {
		t.Error("Reset should clear the cooldown")
	}
}
