package physics

import "github.com/san-kum/collide/internal/vec"

// Resolver updates the velocities of a pair already known to be touching.
type Resolver interface {
	Resolve(a, b *Body) error
}

// NormalAxis selects the direction impulses are exchanged along.
type NormalAxis int

const (
	// AxisRelativeVelocity takes the normal from b.Velocity - a.Velocity.
	// This is the classic behavior of the simulator and the default.
	AxisRelativeVelocity NormalAxis = iota
	// AxisCenterLine takes the normal from the line joining the centers.
	AxisCenterLine
)

func (n NormalAxis) String() string {
	switch n {
	case AxisRelativeVelocity:
		return "relative_velocity"
	case AxisCenterLine:
		return "center_line"
	default:
		return "unknown"
	}
}

// ParseNormalAxis accepts the names produced by String.
func ParseNormalAxis(s string) (NormalAxis, bool) {
	switch s {
	case "", "relative_velocity":
		return AxisRelativeVelocity, true
	case "center_line":
		return AxisCenterLine, true
	}
	return 0, false
}

// Elastic exchanges momentum along a single axis with the 1-D elastic
// collision formulas. The tangential components are kept as they are.
type Elastic struct {
	Axis NormalAxis
}

func NewElastic(axis NormalAxis) *Elastic {
	return &Elastic{Axis: axis}
}

func (e *Elastic) normal(a, b *Body) (vec.Vec2, bool) {
	if e.Axis == AxisCenterLine {
		return b.Position.Sub(a.Position).Unit()
	}
	return b.Velocity.Sub(a.Velocity).Unit()
}

// Resolve leaves both bodies untouched and returns ErrDegenerateNormal when
// the axis has no direction (equal velocities, or coincident centers).
func (e *Elastic) Resolve(a, b *Body) error {
	n, ok := e.normal(a, b)
	if !ok {
		return &ContactError{A: a.ID, B: b.ID, Wrapped: ErrDegenerateNormal}
	}
	t := n.Perp()

	van := a.Velocity.Dot(n)
	vat := a.Velocity.Dot(t)
	vbn := b.Velocity.Dot(n)
	vbt := b.Velocity.Dot(t)

	ma, mb := a.mass, b.mass
	van2 := (van*(ma-mb) + 2*mb*vbn) / (ma + mb)
	vbn2 := (vbn*(mb-ma) + 2*ma*van) / (ma + mb)

	a.Velocity = n.Mul(van2).Add(t.Mul(vat))
	b.Velocity = n.Mul(vbn2).Add(t.Mul(vbt))
	return nil
}
