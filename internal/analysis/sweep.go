package analysis

import (
	"context"
	"fmt"
	"math/rand"
	"sort"

	"github.com/san-kum/collide/internal/config"
	"github.com/san-kum/collide/internal/world"
)

// SweepPoint summarises one run of a sweep.
type SweepPoint struct {
	Value         float64
	Candidates    float64 // per frame
	Collisions    int
	Degenerate    int
	KineticEnergy float64 // after the last frame
}

// Params lists the names Apply understands.
func Params() []string {
	names := make([]string, 0, len(setters))
	for name := range setters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var setters = map[string]func(*config.Config, float64){
	"bodies":      func(c *config.Config, v float64) { c.Bodies.Count = int(v) },
	"radius":      func(c *config.Config, v float64) { c.Bodies.Radius = v },
	"mass":        func(c *config.Config, v float64) { c.Bodies.Mass = v },
	"restitution": func(c *config.Config, v float64) { c.Bodies.Restitution = v },
	"max_speed":   func(c *config.Config, v float64) { c.Bodies.MaxSpeed = int(v) },
	"gravity":     func(c *config.Config, v float64) { c.Physics.Gravity = v },
	"drag":        func(c *config.Config, v float64) { c.Physics.Drag = v },
}

// Apply returns a copy of cfg with the named parameter set to value.
func Apply(cfg *config.Config, name string, value float64) (*config.Config, error) {
	set, ok := setters[name]
	if !ok {
		return nil, fmt.Errorf("unknown parameter %q (available: %v)", name, Params())
	}
	c := cfg.Clone()
	set(c, value)
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("%s=%v: %w", name, value, err)
	}
	return c, nil
}

// Sweep runs cfg once per value of the named parameter. Every run uses
// cfg.Run.Seed, so only the parameter differs.
func Sweep(ctx context.Context, cfg *config.Config, param string, values []float64) ([]SweepPoint, error) {
	points := make([]SweepPoint, 0, len(values))

	for _, v := range values {
		c, err := Apply(cfg, param, v)
		if err != nil {
			return points, err
		}

		w, err := world.New(c, rand.New(rand.NewSource(c.Run.Seed)))
		if err != nil {
			return points, err
		}
		result, err := w.Run(ctx, world.RunConfig{
			Dt:         c.Run.Dt,
			Frames:     c.Run.Frames,
			ActivateAt: c.Run.ActivateAt,
		})
		if err != nil {
			return points, err
		}

		p := SweepPoint{
			Value:         v,
			Collisions:    result.Collisions,
			Degenerate:    result.Degenerate,
			KineticEnergy: w.KineticEnergy(),
		}
		if result.FramesTaken > 0 {
			p.Candidates = float64(result.Candidates) / float64(result.FramesTaken)
		}
		points = append(points, p)
	}

	return points, nil
}

// Best returns the point with the lowest score. It panics on an empty slice.
func Best(points []SweepPoint, score func(SweepPoint) float64) SweepPoint {
	best := points[0]
	bestScore := score(best)
	for _, p := range points[1:] {
		if s := score(p); s < bestScore {
			best, bestScore = p, s
		}
	}
	return best
}
