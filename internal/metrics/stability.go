package metrics

import "github.com/san-kum/collide/internal/world"

// Containment is the share of frames that ended with every body fully inside
// the arena. Integration runs after reflection, so falling bodies can end a
// frame slightly past a wall; the next frame clamps them back.
type Containment struct {
	name       string
	violations int
	samples    int
}

func NewContainment() *Containment {
	return &Containment{name: "containment"}
}

func (c *Containment) Name() string {
	return c.name
}

func (c *Containment) Observe(w *world.World, st world.FrameStats) {
	c.samples++
	for _, b := range w.Bodies {
		r := b.Radius()
		if b.Position.X < r || b.Position.X > w.Arena.Width-r ||
			b.Position.Y < r || b.Position.Y > w.Arena.Height-r {
			c.violations++
			break
		}
	}
}

func (c *Containment) Value() float64 {
	if c.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(c.violations)/float64(c.samples)
}

func (c *Containment) Reset() {
	c.violations = 0
	c.samples = 0
}
