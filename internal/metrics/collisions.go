package metrics

import "github.com/san-kum/collide/internal/world"

// Collisions counts narrow-phase contacts.
type Collisions struct {
	name  string
	count int
}

func NewCollisions() *Collisions {
	return &Collisions{name: "collisions"}
}

func (c *Collisions) Name() string { return c.name }

func (c *Collisions) Observe(w *world.World, st world.FrameStats) {
	c.count += st.Collisions
}

func (c *Collisions) Value() float64 { return float64(c.count) }

func (c *Collisions) Reset() { c.count = 0 }

// PruneRatio is the share of broad-phase candidates the narrow phase
// rejected. It reads 0 when no candidates were seen.
type PruneRatio struct {
	name       string
	candidates int
	contacts   int
}

func NewPruneRatio() *PruneRatio {
	return &PruneRatio{name: "prune_ratio"}
}

func (p *PruneRatio) Name() string { return p.name }

func (p *PruneRatio) Observe(w *world.World, st world.FrameStats) {
	p.candidates += st.Candidates
	p.contacts += st.Collisions
}

func (p *PruneRatio) Value() float64 {
	if p.candidates == 0 {
		return 0
	}
	return 1 - float64(p.contacts)/float64(p.candidates)
}

func (p *PruneRatio) Reset() {
	p.candidates = 0
	p.contacts = 0
}

// HighlightShare is the mean fraction of bodies highlighted per frame.
type HighlightShare struct {
	name    string
	sum     float64
	samples int
}

func NewHighlightShare() *HighlightShare {
	return &HighlightShare{name: "highlight_share"}
}

func (h *HighlightShare) Name() string { return h.name }

func (h *HighlightShare) Observe(w *world.World, st world.FrameStats) {
	h.samples++
	if len(w.Bodies) == 0 {
		return
	}
	lit := 0
	for _, b := range w.Bodies {
		if b.Highlighted {
			lit++
		}
	}
	h.sum += float64(lit) / float64(len(w.Bodies))
}

func (h *HighlightShare) Value() float64 {
	if h.samples == 0 {
		return 0
	}
	return h.sum / float64(h.samples)
}

func (h *HighlightShare) Reset() {
	h.sum = 0
	h.samples = 0
}

// Default returns the metrics attached to every run.
func Default() []world.Metric {
	return []world.Metric{
		NewEnergy(),
		NewPeakSpeed(),
		NewCollisions(),
		NewPruneRatio(),
		NewHighlightShare(),
		NewContainment(),
	}
}
