package metrics

import (
	"math"

	"github.com/san-kum/collide/internal/world"
)

// Energy is the mean total kinetic energy over the observed frames.
type Energy struct {
	name    string
	samples int
	total   float64
}

func NewEnergy() *Energy {
	return &Energy{name: "kinetic_energy"}
}

func (e *Energy) Name() string { return e.name }

func (e *Energy) Observe(w *world.World, st world.FrameStats) {
	e.total += w.KineticEnergy()
	e.samples++
}

func (e *Energy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.total / float64(e.samples)
}

func (e *Energy) Reset() {
	e.total = 0
	e.samples = 0
}

// PeakSpeed is the fastest any body moved during the run.
type PeakSpeed struct {
	name string
	max  float64
}

func NewPeakSpeed() *PeakSpeed {
	return &PeakSpeed{name: "peak_speed"}
}

func (p *PeakSpeed) Name() string { return p.name }

func (p *PeakSpeed) Observe(w *world.World, st world.FrameStats) {
	for _, b := range w.Bodies {
		p.max = math.Max(p.max, b.Velocity.Len())
	}
}

func (p *PeakSpeed) Value() float64 { return p.max }

func (p *PeakSpeed) Reset() { p.max = 0 }
