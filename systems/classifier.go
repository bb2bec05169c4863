package systems

import "github.com/pthm-cable/fruitmerge/physics"

// Classifier turns contact-start events into pending merges. It runs inside
// the physics step, so it only locks bodies and enqueues; it never removes.
type Classifier struct {
	registry  *Registry
	scheduler *MergeScheduler
}

// NewClassifier creates a classifier feeding the given scheduler.
func NewClassifier(registry *Registry, scheduler *MergeScheduler) *Classifier {
	return &Classifier{registry: registry, scheduler: scheduler}
}

// OnContact handles a contact-start pair reported by physics and reports
// whether a merge was enqueued.
func (c *Classifier) OnContact(a, b physics.Handle) bool {
	idA, okA := c.registry.Lookup(a)
	idB, okB := c.registry.Lookup(b)
	if !okA || !okB {
		return false
	}
	_, ok := c.Classify(idA, idB)
	return ok
}

// Classify decides whether two touching bodies merge. On success both are
// locked and the record is enqueued. Repeated reports of the same contact are
// rejected by the lock, so each body is in at most one pending merge.
func (c *Classifier) Classify(idA, idB BodyID) (PendingMerge, bool) {
	if idA == idB {
		return PendingMerge{}, false
	}
	a, okA := c.registry.Find(idA)
	b, okB := c.registry.Find(idB)
	if !okA || !okB {
		return PendingMerge{}, false
	}
	if a.MergeLocked || b.MergeLocked {
		return PendingMerge{}, false
	}
	if a.Tier != b.Tier {
		return PendingMerge{}, false
	}
	if c.registry.Tiers().IsTerminal(a.Tier) {
		return PendingMerge{}, false
	}

	c.registry.Lock(idA)
	c.registry.Lock(idB)

	rec := PendingMerge{A: idA, B: idB, ResultTier: a.Tier + 1}
	c.scheduler.Enqueue(rec)
	return rec, true
}

// Rescan classifies every contact physics still holds between unlocked
// bodies. Contact-start fires once per contact, so pairs released by a
// flush would otherwise never merge. It returns the number of merges
// enqueued.
func (c *Classifier) Rescan() int {
	n := 0
	for _, b := range c.registry.Bodies() {
		for _, other := range c.registry.Touching(b.ID) {
			if other <= b.ID {
				continue
			}
			if _, ok := c.Classify(b.ID, other); ok {
				n++
				break
			}
		}
	}
	return n
}
