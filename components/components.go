// Package components defines ECS components for merge-able bodies.
package components

import (
	"time"

	"github.com/pthm-cable/fruitmerge/physics"
)

// Fruit identifies a merge-able body and links it to its physics handle.
// The physics world never references the ECS entity; only this handle.
type Fruit struct {
	ID     uint32 // registry-issued, never reused
	Tier   int
	Handle physics.Handle
}

// Position is the body center, read back from physics after every step.
type Position struct {
	X, Y float64
}

// Velocity is in px/s, read back from physics after every step.
type Velocity struct {
	X, Y float64
}

// MergeState marks a body claimed by a pending merge.
type MergeState struct {
	Locked bool
}

// Danger tracks how long a body has rested above the danger line.
type Danger struct {
	Since  time.Duration // session clock when the body entered danger
	Active bool
}
