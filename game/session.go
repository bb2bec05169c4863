package game

import "time"

// session is the per-game score state. It implements systems.ScoreKeeper.
type session struct {
	score      int
	multiplier int
	merges     int
	drops      int
	started    time.Duration
	over       bool
	revived    bool
}

func (s *session) Multiplier() int {
	return s.multiplier
}

func (s *session) AddScore(points int) {
	s.score += points
}
