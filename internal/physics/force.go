package physics

import "github.com/san-kum/collide/internal/vec"

const DefaultDrag = 0.1

// ForceModel applies weight plus linear drag to activated bodies.
type ForceModel struct {
	Drag float64
}

func NewForceModel(drag float64) ForceModel {
	return ForceModel{Drag: drag}
}

func (f ForceModel) NetForce(b *Body) vec.Vec2 {
	weight := vec.Vec2{X: 0, Y: b.mass * b.Acceleration.Y}
	drag := b.Velocity.Mul(-f.Drag)
	return weight.Add(drag)
}

// Integrate is a semi-implicit Euler step, y axis first then x. It moves x
// on top of whatever Advance already did this frame, so an activated body
// travels twice its horizontal velocity per frame.
func (f ForceModel) Integrate(b *Body, dt float64) {
	if !b.Activated {
		return
	}
	force := f.NetForce(b)

	dvx := (force.X / b.mass) * dt
	dvy := (force.Y / b.mass) * dt

	b.Velocity.Y += dvy
	b.Position.Y += b.Velocity.Y * dt

	b.Velocity.X += dvx
	b.Position.X += b.Velocity.X * dt

	b.UpdateExtents()
}
