package physics

import "fmt"

// Arena is the [0, Width] x [0, Height] box the bodies live in. Y grows
// downwards, so the floor is at Height.
type Arena struct {
	Width  float64
	Height float64
}

func (a Arena) Validate() error {
	if !positive(a.Width) || !positive(a.Height) {
		return fmt.Errorf("%w (got %vx%v)", ErrInvalidArena, a.Width, a.Height)
	}
	return nil
}

// Reflect clamps b into the arena and flips the velocity component of every
// crossed edge. Only the floor bounce is damped by restitution.
func (a Arena) Reflect(b *Body) {
	r := b.radius

	if b.Position.Y > a.Height-r {
		b.Position.Y = a.Height - r
		b.Velocity.Y = -b.Velocity.Y * b.Restitution
	}

	if b.Position.X > a.Width-r {
		b.Position.X = a.Width - r
		b.Velocity.X = -b.Velocity.X
		b.UpdateExtents()
	} else if b.Position.X < r {
		b.Position.X = r
		b.Velocity.X = -b.Velocity.X
		b.UpdateExtents()
	}

	if b.Position.Y < r {
		b.Position.Y = r
		b.Velocity.Y = -b.Velocity.Y
	}
}
