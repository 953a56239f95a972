package analysis

import (
	"math"
	"math/rand"

	"github.com/san-kum/collide/internal/config"
	"github.com/san-kum/collide/internal/physics"
	"github.com/san-kum/collide/internal/world"
)

// twins pairs each body of a with the body of b sharing its ID. Sweeps
// reorder both slices independently, so index order cannot be used.
func twins(a, b *world.World) [][2]*physics.Body {
	byID := make(map[int]*physics.Body, len(b.Bodies))
	for _, bb := range b.Bodies {
		byID[bb.ID] = bb
	}
	pairs := make([][2]*physics.Body, 0, len(a.Bodies))
	for _, ab := range a.Bodies {
		if bb, ok := byID[ab.ID]; ok {
			pairs = append(pairs, [2]*physics.Body{ab, bb})
		}
	}
	return pairs
}

// separation is the distance between two worlds over every body's position
// and velocity.
func separation(pairs [][2]*physics.Body) float64 {
	sum := 0.0
	for _, p := range pairs {
		dp := p[1].Position.Sub(p[0].Position)
		dv := p[1].Velocity.Sub(p[0].Velocity)
		sum += dp.Dot(dp) + dv.Dot(dv)
	}
	return math.Sqrt(sum)
}

// pullTowards moves every second body towards its twin so that the
// separation is scaled by s.
func pullTowards(pairs [][2]*physics.Body, s float64) {
	for _, p := range pairs {
		ab, bb := p[0], p[1]
		bb.Position = ab.Position.Add(bb.Position.Sub(ab.Position).Mul(s))
		bb.Velocity = ab.Velocity.Add(bb.Velocity.Sub(ab.Velocity).Mul(s))
		bb.UpdateExtents()
	}
}

// Divergence estimates the largest Lyapunov exponent of the arena built from
// cfg by running it next to a copy whose body 0 is nudged by
// perturbation along x. The twin is pulled back whenever the gap passes 1 so
// the estimate keeps measuring the local rate.
//
// λ ≈ mean over frames of ln(d(t)/d0) / dt
func Divergence(cfg *config.Config, frames int, perturbation float64) (float64, error) {
	a, err := world.New(cfg, rand.New(rand.NewSource(cfg.Run.Seed)))
	if err != nil {
		return 0, err
	}
	b, err := world.New(cfg, rand.New(rand.NewSource(cfg.Run.Seed)))
	if err != nil {
		return 0, err
	}
	if len(a.Bodies) == 0 || perturbation <= 0 {
		return 0, nil
	}

	first := b.Body(0)
	first.Position.X += perturbation
	first.UpdateExtents()
	pairs := twins(a, b)
	d0 := perturbation
	dt := cfg.Run.Dt
	activateAt := cfg.Run.ActivateAt

	sumLog := 0.0
	count := 0

	for i := 0; i < frames; i++ {
		activate := activateAt >= 0 && i >= activateAt
		a.StepFrame(dt, activate)
		b.StepFrame(dt, activate)

		sep := separation(pairs)
		if sep > 0 {
			sumLog += math.Log(sep / d0)
			count++
		}

		if sep > 1.0 {
			pullTowards(pairs, d0/sep)
		}
	}

	if count == 0 {
		return 0, nil
	}
	return sumLog / (float64(count) * dt), nil
}
