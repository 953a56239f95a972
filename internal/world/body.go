package world

import (
	"math/rand"

	"github.com/san-kum/collide/internal/config"
	"github.com/san-kum/collide/internal/physics"
	"github.com/san-kum/collide/internal/vec"
)

// Template holds the per-body settings shared by a whole population.
type Template struct {
	MinSpeed          int
	MaxSpeed          int
	Gravity           float64
	Mass              float64
	Restitution       float64
	HighlightDuration float64
}

func DefaultTemplate() Template {
	return Template{
		MinSpeed:          config.DefaultMinSpeed,
		MaxSpeed:          config.DefaultMaxSpeed,
		Gravity:           config.DefaultGravity,
		Mass:              config.DefaultMass,
		Restitution:       config.DefaultRestitution,
		HighlightDuration: config.DefaultHighlightDuration,
	}
}

func TemplateFromConfig(cfg *config.Config) Template {
	return Template{
		MinSpeed:          cfg.Bodies.MinSpeed,
		MaxSpeed:          cfg.Bodies.MaxSpeed,
		Gravity:           cfg.Physics.Gravity,
		Mass:              cfg.Bodies.Mass,
		Restitution:       cfg.Bodies.Restitution,
		HighlightDuration: cfg.Bodies.HighlightDuration,
	}
}

// Body builds a body at rest vertically, drifting sideways at a whole-number
// speed drawn from [MinSpeed, MaxSpeed].
func (t Template) Body(rng *rand.Rand, id int, color physics.Color, pos vec.Vec2, radius float64) (*physics.Body, error) {
	return physics.NewBody(physics.BodyParams{
		ID:                id,
		Color:             color,
		Position:          pos,
		Velocity:          vec.Vec2{X: float64(randInt(rng, t.MinSpeed, t.MaxSpeed)), Y: 0},
		Acceleration:      vec.Vec2{X: 0, Y: t.Gravity},
		Radius:            radius,
		Mass:              t.Mass,
		Restitution:       t.Restitution,
		HighlightDuration: t.HighlightDuration,
	})
}

// InitializeBody builds a body with the default template: speed 50..100,
// gravity 100, mass 1, restitution 1, inactive.
func InitializeBody(rng *rand.Rand, color physics.Color, pos vec.Vec2, radius float64) (*physics.Body, error) {
	return DefaultTemplate().Body(rng, 0, color, pos, radius)
}

// RandomColor picks from the purple range used for new bodies.
func RandomColor(rng *rand.Rand) physics.Color {
	return physics.Color{
		R: uint8(randInt(rng, 20, 255)),
		G: 0,
		B: uint8(randInt(rng, 20, 255)),
	}
}

// randInt returns an integer in [lo, hi], both ends inclusive.
func randInt(rng *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rng.Intn(hi-lo+1)
}
