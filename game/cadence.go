package game

import "time"

// cadence fires at a fixed interval of accumulated session time.
type cadence struct {
	interval time.Duration
	elapsed  time.Duration
}

func newCadence(interval time.Duration) cadence {
	return cadence{interval: interval}
}

// advance accumulates dt and returns how many intervals completed.
func (c *cadence) advance(dt time.Duration) int {
	if c.interval <= 0 {
		return 0
	}
	c.elapsed += dt
	n := int(c.elapsed / c.interval)
	c.elapsed -= time.Duration(n) * c.interval
	return n
}

func (c *cadence) reset() {
	c.elapsed = 0
}
