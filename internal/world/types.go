package world

import "github.com/san-kum/collide/internal/physics"

// FrameStats summarizes one StepFrame call.
type FrameStats struct {
	Frame int
	Time  float64
	physics.SweepStats
	Activated bool
}

type Metric interface {
	Name() string
	Observe(w *World, st FrameStats)
	Value() float64
	Reset()
}

type Observer interface {
	OnFrame(w *World, st FrameStats)
}

// ObserverFunc adapts a plain function to Observer.
type ObserverFunc func(w *World, st FrameStats)

func (f ObserverFunc) OnFrame(w *World, st FrameStats) { f(w, st) }

type RunConfig struct {
	Dt         float64
	Frames     int
	ActivateAt int
	// Trace records every body in every sample. Aggregates are always kept.
	Trace bool
}

func (rc RunConfig) activeAt(frame int) bool {
	return rc.ActivateAt >= 0 && frame >= rc.ActivateAt
}

type BodySample struct {
	ID          int
	X, Y        float64
	VX, VY      float64
	Activated   bool
	Highlighted bool
}

// Sample is the world as it stood after a frame. Frame 0 is the initial state.
type Sample struct {
	Frame         int
	Time          float64
	Candidates    int
	Collisions    int
	Degenerate    int
	KineticEnergy float64
	MomentumX     float64
	MomentumY     float64
	Highlighted   int
	Activated     int
	Bodies        []BodySample
}

type Result struct {
	Samples     []Sample
	Metrics     map[string]float64
	FramesTaken int
	Candidates  int
	Collisions  int
	Degenerate  int
}
