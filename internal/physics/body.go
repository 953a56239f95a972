package physics

import (
	"fmt"
	"math"

	"github.com/san-kum/collide/internal/vec"
)

// Color is an 8-bit RGB triple handed to renderers untouched.
type Color struct {
	R, G, B uint8
}

// DefaultGlow is drawn over a highlighted body.
var DefaultGlow = Color{255, 255, 0}

// Body is a rigid circle. Radius and mass are fixed at construction; Left
// and Right cache the horizontal extent and must be refreshed through
// UpdateExtents whenever Position.X changes.
type Body struct {
	ID int

	Position     vec.Vec2
	Velocity     vec.Vec2
	Acceleration vec.Vec2
	Restitution  float64

	Left, Right float64

	Activated bool

	Highlighted       bool
	HighlightElapsed  float64
	HighlightDuration float64

	Color     Color
	GlowColor Color

	radius float64
	mass   float64
}

// BodyParams describes a body to construct. Zero GlowColor means DefaultGlow.
type BodyParams struct {
	ID                int
	Color             Color
	GlowColor         Color
	Position          vec.Vec2
	Velocity          vec.Vec2
	Acceleration      vec.Vec2
	Radius            float64
	Mass              float64
	Restitution       float64
	HighlightDuration float64
}

// positive reports whether x is a finite number above zero. NaN fails every
// comparison, so checks are written to pass only on good values.
func positive(x float64) bool {
	return x > 0 && !math.IsInf(x, 1)
}

func NewBody(p BodyParams) (*Body, error) {
	if !positive(p.Radius) {
		return nil, fmt.Errorf("body %d: %w (got %v)", p.ID, ErrInvalidRadius, p.Radius)
	}
	if !positive(p.Mass) {
		return nil, fmt.Errorf("body %d: %w (got %v)", p.ID, ErrInvalidMass, p.Mass)
	}
	if !(p.Restitution >= 0 && p.Restitution <= 1) {
		return nil, fmt.Errorf("body %d: %w (got %v)", p.ID, ErrInvalidRestitution, p.Restitution)
	}
	if !(p.HighlightDuration >= 0) || math.IsInf(p.HighlightDuration, 1) {
		return nil, fmt.Errorf("body %d: %w (got %v)", p.ID, ErrInvalidHighlight, p.HighlightDuration)
	}
	if !p.Position.IsFinite() || !p.Velocity.IsFinite() || !p.Acceleration.IsFinite() {
		return nil, fmt.Errorf("body %d: %w (position %v, velocity %v, acceleration %v)",
			p.ID, ErrNonFinite, p.Position, p.Velocity, p.Acceleration)
	}

	glow := p.GlowColor
	if glow == (Color{}) {
		glow = DefaultGlow
	}

	b := &Body{
		ID:                p.ID,
		Position:          p.Position,
		Velocity:          p.Velocity,
		Acceleration:      p.Acceleration,
		Restitution:       p.Restitution,
		HighlightDuration: p.HighlightDuration,
		Color:             p.Color,
		GlowColor:         glow,
		radius:            p.Radius,
		mass:              p.Mass,
	}
	b.UpdateExtents()
	return b, nil
}

func (b *Body) Radius() float64 { return b.radius }
func (b *Body) Mass() float64   { return b.mass }

func (b *Body) UpdateExtents() {
	b.Left = b.Position.X - b.radius
	b.Right = b.Position.X + b.radius
}

// Advance moves the body horizontally by its velocity. Vertical motion is
// left to the integrator.
func (b *Body) Advance(dt float64) {
	b.Position.X += b.Velocity.X * dt
	b.UpdateExtents()
}

func (b *Body) Highlight() {
	b.Highlighted = true
	b.HighlightElapsed = 0
}

func (b *Body) DecayHighlight(dt float64) {
	if !b.Highlighted {
		return
	}
	b.HighlightElapsed += dt
	if b.HighlightElapsed >= b.HighlightDuration {
		b.Highlighted = false
	}
}

// Activate enables force integration. There is no way back.
func (b *Body) Activate() { b.Activated = true }

func (b *Body) KineticEnergy() float64 {
	return 0.5 * b.mass * b.Velocity.Dot(b.Velocity)
}

func (b *Body) Momentum() vec.Vec2 {
	return b.Velocity.Mul(b.mass)
}

func (b *Body) IsValid() bool {
	return b.Position.IsFinite() && b.Velocity.IsFinite()
}
