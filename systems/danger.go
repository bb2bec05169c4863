package systems

import (
	"math"
	"time"
)

// DangerMonitor ends the game when a body rests above the danger line for
// longer than the danger time. It trips at most once until Reset.
type DangerMonitor struct {
	registry   *Registry
	lineY      float64
	stillness  float64
	dangerTime time.Duration

	tripped bool
}

// NewDangerMonitor creates a monitor for the given line and thresholds.
func NewDangerMonitor(registry *Registry, lineY, stillness float64, dangerTime time.Duration) *DangerMonitor {
	return &DangerMonitor{
		registry:   registry,
		lineY:      lineY,
		stillness:  stillness,
		dangerTime: dangerTime,
	}
}

// Check scans live bodies at now and reports whether the game just ended.
// The first offending body ends the scan.
func (m *DangerMonitor) Check(now time.Duration) bool {
	if m.tripped {
		return false
	}
	table := m.registry.Tiers()

	m.registry.ForEach(func(b *Body) bool {
		top := b.Position.Y - table.Radius(b.Tier)
		if top < m.lineY && math.Abs(b.Velocity.Y) < m.stillness {
			if !b.InDanger {
				b.InDanger = true
				b.DangerSince = now
				return true
			}
			if now-b.DangerSince > m.dangerTime {
				m.tripped = true
				return false
			}
			return true
		}
		b.InDanger = false
		b.DangerSince = 0
		return true
	})

	return m.tripped
}

// Tripped reports whether the monitor has ended the game.
func (m *DangerMonitor) Tripped() bool {
	return m.tripped
}

// Reset clears all danger timestamps and re-arms the monitor.
func (m *DangerMonitor) Reset() {
	m.registry.ResetDanger()
	m.tripped = false
}
