package systems

import (
	"math/rand"
	"time"
)

// Spawner picks the tiers players drop and enforces the drop cooldown.
type Spawner struct {
	rng      *rand.Rand
	maxLevel int
	cooldown time.Duration

	current  int
	next     int
	lastDrop time.Duration
	dropped  bool
}

// NewSpawner creates a spawner rolling tiers uniformly in [0, maxLevel].
func NewSpawner(rng *rand.Rand, maxLevel int, cooldown time.Duration) *Spawner {
	s := &Spawner{rng: rng, maxLevel: maxLevel, cooldown: cooldown}
	s.Reset()
	return s
}

// Reset rolls a fresh current/next pair and clears the cooldown.
func (s *Spawner) Reset() {
	s.current = s.roll()
	s.next = s.roll()
	s.lastDrop = 0
	s.dropped = false
}

func (s *Spawner) roll() int {
	return s.rng.Intn(s.maxLevel + 1)
}

// Current returns the tier that the next drop releases.
func (s *Spawner) Current() int {
	return s.current
}

// PeekUpcoming returns the tier after the current one.
func (s *Spawner) PeekUpcoming() int {
	return s.next
}

// Next returns the current tier and advances: current takes next, next is rolled.
func (s *Spawner) Next() int {
	tier := s.current
	s.current = s.next
	s.next = s.roll()
	return tier
}

// CanDrop reports whether the cooldown has elapsed at now.
func (s *Spawner) CanDrop(now time.Duration) bool {
	return !s.dropped || now-s.lastDrop >= s.cooldown
}

// IsDropping reports whether a drop is still cooling down at now.
func (s *Spawner) IsDropping(now time.Duration) bool {
	return !s.CanDrop(now)
}

// TryDrop consumes the current tier if the cooldown allows. A request during
// cooldown is ignored, not queued.
func (s *Spawner) TryDrop(now time.Duration) (int, bool) {
	if !s.CanDrop(now) {
		return 0, false
	}
	s.lastDrop = now
	s.dropped = true
	return s.Next(), true
}
