package world

import (
	"fmt"
	"math/rand"

	"github.com/san-kum/collide/internal/config"
	"github.com/san-kum/collide/internal/physics"
	"github.com/san-kum/collide/internal/vec"
)

type World struct {
	Arena    physics.Arena
	Bodies   []*physics.Body
	Detector *physics.Detector
	Force    physics.ForceModel

	frame     int
	time      float64
	metrics   []Metric
	observers []Observer
}

// New places cfg.Bodies.Count bodies at random whole-number positions in the
// arena and wires the detector and force model from cfg.
func New(cfg *config.Config, rng *rand.Rand) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	tmpl := TemplateFromConfig(cfg)
	r := cfg.Bodies.Radius
	maxX := int(cfg.Arena.Width - r)
	maxY := int(cfg.Arena.Height - r)

	bodies := make([]*physics.Body, 0, cfg.Bodies.Count)
	for i := 0; i < cfg.Bodies.Count; i++ {
		color := RandomColor(rng)
		pos := vec.Vec2{X: float64(randInt(rng, 0, maxX)), Y: float64(randInt(rng, 0, maxY))}
		b, err := tmpl.Body(rng, i, color, pos, r)
		if err != nil {
			return nil, fmt.Errorf("spawn body %d: %w", i, err)
		}
		bodies = append(bodies, b)
	}

	det := physics.NewDetector(cfg.HighlightPolicy(), physics.NewElastic(cfg.NormalAxis()))
	return NewWithBodies(cfg.ArenaBounds(), bodies, det, physics.NewForceModel(cfg.Physics.Drag)), nil
}

func NewWithBodies(arena physics.Arena, bodies []*physics.Body, det *physics.Detector, force physics.ForceModel) *World {
	return &World{
		Arena:     arena,
		Bodies:    bodies,
		Detector:  det,
		Force:     force,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (w *World) AddMetric(m Metric)     { w.metrics = append(w.metrics, m) }
func (w *World) AddObserver(o Observer) { w.observers = append(w.observers, o) }

func (w *World) Frame() int        { return w.frame }
func (w *World) Time() float64     { return w.time }
func (w *World) Metrics() []Metric { return w.metrics }

// StepFrame advances the world by dt. When activate is true every body is
// switched on for gravity and drag before integration; bodies never switch
// back off.
func (w *World) StepFrame(dt float64, activate bool) FrameStats {
	for _, b := range w.Bodies {
		b.DecayHighlight(dt)
	}

	sweep := w.Detector.Sweep(w.Bodies)

	for _, b := range w.Bodies {
		b.Advance(dt)
		w.Arena.Reflect(b)
	}

	if activate {
		for _, b := range w.Bodies {
			b.Activate()
		}
	}
	for _, b := range w.Bodies {
		w.Force.Integrate(b, dt)
	}

	w.frame++
	w.time += dt

	st := FrameStats{
		Frame:      w.frame,
		Time:       w.time,
		SweepStats: sweep,
		Activated:  activate,
	}
	for _, m := range w.metrics {
		m.Observe(w, st)
	}
	for _, o := range w.observers {
		o.OnFrame(w, st)
	}
	return st
}

// Body returns the body with the given ID. The Bodies slice is reordered by
// every sweep, so positions in it are not stable.
func (w *World) Body(id int) *physics.Body {
	for _, b := range w.Bodies {
		if b.ID == id {
			return b
		}
	}
	return nil
}

func (w *World) KineticEnergy() float64 {
	total := 0.0
	for _, b := range w.Bodies {
		total += b.KineticEnergy()
	}
	return total
}

func (w *World) Momentum() vec.Vec2 {
	var p vec.Vec2
	for _, b := range w.Bodies {
		p = p.Add(b.Momentum())
	}
	return p
}

// Validate reports the first body holding a NaN or Inf.
func (w *World) Validate() error {
	for _, b := range w.Bodies {
		if !b.IsValid() {
			return &FrameError{Frame: w.frame, Body: b.ID, Wrapped: ErrNonFinite}
		}
	}
	return nil
}
