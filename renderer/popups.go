package renderer

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/fruitmerge/systems"
)

const popupLifetime = 0.8 // seconds

type popup struct {
	x, y float32
	text string
	age  float32
}

// Popups shows a rising "+points" label at each merge.
type Popups struct {
	origin rl.Vector2
	items  []popup
}

// NewPopups creates an empty popup layer drawn relative to origin.
func NewPopups(origin rl.Vector2) *Popups {
	return &Popups{origin: origin}
}

// Add queues a popup for a completed merge.
func (p *Popups) Add(res systems.MergeResult) {
	p.items = append(p.items, popup{
		x:    float32(res.Position.X),
		y:    float32(res.Position.Y),
		text: fmt.Sprintf("+%d", res.Points),
	})
}

// Update ages popups by dt seconds and drops expired ones.
func (p *Popups) Update(dt float32) {
	live := p.items[:0]
	for _, it := range p.items {
		it.age += dt
		if it.age < popupLifetime {
			live = append(live, it)
		}
	}
	p.items = live
}

// Clear removes all popups.
func (p *Popups) Clear() {
	p.items = p.items[:0]
}

// Len returns the number of live popups.
func (p *Popups) Len() int {
	return len(p.items)
}

// Draw renders live popups.
func (p *Popups) Draw() {
	for _, it := range p.items {
		t := it.age / popupLifetime
		x := int32(p.origin.X + it.x)
		y := int32(p.origin.Y + it.y - 40*t)
		rl.DrawText(it.text, x-rl.MeasureText(it.text, 20)/2, y, 20, rl.Fade(rl.DarkGray, 1-t))
	}
}
