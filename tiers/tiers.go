// Package tiers provides the static, ordered fruit tier table.
package tiers

import "github.com/pthm-cable/fruitmerge/config"

// Tier is one fruit size. Index 0 is the smallest.
type Tier struct {
	Index  int
	Name   string
	Radius float64
	Score  int
	Color  uint32
}

// Table is an immutable ordered list of tiers. The last tier is terminal:
// two terminal bodies never merge.
type Table struct {
	tiers []Tier
}

// New builds a table from tier definitions. Ordering is validated by config.Load.
func New(defs []config.TierConfig) *Table {
	t := &Table{tiers: make([]Tier, len(defs))}
	for i, d := range defs {
		t.tiers[i] = Tier{Index: i, Name: d.Name, Radius: d.Radius, Score: d.Score, Color: d.Color}
	}
	return t
}

// Len returns the number of tiers.
func (t *Table) Len() int {
	return len(t.tiers)
}

// Valid reports whether i is a tier index.
func (t *Table) Valid(i int) bool {
	return i >= 0 && i < len(t.tiers)
}

// Get returns tier i. The second result is false if i is out of range.
func (t *Table) Get(i int) (Tier, bool) {
	if !t.Valid(i) {
		return Tier{}, false
	}
	return t.tiers[i], true
}

// Terminal returns the index of the highest tier.
func (t *Table) Terminal() int {
	return len(t.tiers) - 1
}

// IsTerminal reports whether i is the highest tier.
func (t *Table) IsTerminal(i int) bool {
	return i == t.Terminal()
}

// Radius returns the radius of tier i, or 0 if out of range.
func (t *Table) Radius(i int) float64 {
	if !t.Valid(i) {
		return 0
	}
	return t.tiers[i].Radius
}

// Score returns the score value of tier i, or 0 if out of range.
func (t *Table) Score(i int) int {
	if !t.Valid(i) {
		return 0
	}
	return t.tiers[i].Score
}
