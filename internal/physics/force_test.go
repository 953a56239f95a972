package physics

import (
	"math"
	"testing"

	"github.com/san-kum/collide/internal/vec"
)

func TestNetForce(t *testing.T) {
	f := NewForceModel(0.1)
	b := mustBody(t, 0, vec.Vec2{}, vec.Vec2{X: 20, Y: -10}, 10, 2)

	got := f.NetForce(b)
	want := vec.Vec2{X: -2, Y: 2*100 + 1}
	if math.Abs(got.X-want.X) > 1e-12 || math.Abs(got.Y-want.Y) > 1e-12 {
		t.Errorf("NetForce = %v, want %v", got, want)
	}
}

func TestIntegrateSkipsInactive(t *testing.T) {
	f := NewForceModel(DefaultDrag)
	b := mustBody(t, 0, vec.Vec2{X: 100, Y: 100}, vec.Vec2{X: 60, Y: 0}, 10, 1)

	for i := 0; i < 10; i++ {
		f.Integrate(b, 1.0/60)
	}

	if b.Velocity != (vec.Vec2{X: 60, Y: 0}) || b.Position != (vec.Vec2{X: 100, Y: 100}) {
		t.Errorf("inactive body changed: pos %v vel %v", b.Position, b.Velocity)
	}
}

func TestIntegrateActivated(t *testing.T) {
	f := NewForceModel(0.1)
	b := mustBody(t, 0, vec.Vec2{X: 100, Y: 100}, vec.Vec2{X: 60, Y: 0}, 10, 1)
	b.Activate()

	dt := 0.5
	f.Integrate(b, dt)

	// vy = 0 + (100 - 0.1*0)*0.5, y = 100 + vy*0.5
	// vx = 60 + (-0.1*60)*0.5, x = 100 + vx*0.5
	wantVel := vec.Vec2{X: 57, Y: 50}
	wantPos := vec.Vec2{X: 128.5, Y: 125}
	if math.Abs(b.Velocity.X-wantVel.X) > 1e-12 || math.Abs(b.Velocity.Y-wantVel.Y) > 1e-12 {
		t.Errorf("velocity = %v, want %v", b.Velocity, wantVel)
	}
	if math.Abs(b.Position.X-wantPos.X) > 1e-12 || math.Abs(b.Position.Y-wantPos.Y) > 1e-12 {
		t.Errorf("position = %v, want %v", b.Position, wantPos)
	}
	if b.Left != b.Position.X-10 {
		t.Errorf("extents not refreshed after integration")
	}
}

func TestIntegrateTerminalVelocity(t *testing.T) {
	f := NewForceModel(0.1)
	b := mustBody(t, 0, vec.Vec2{}, vec.Vec2{}, 10, 1)
	b.Activate()

	for i := 0; i < 200000; i++ {
		f.Integrate(b, 0.01)
	}

	// m*g = k*v at terminal speed
	terminal := b.Mass() * b.Acceleration.Y / f.Drag
	if math.Abs(b.Velocity.Y-terminal) > 1e-3*terminal {
		t.Errorf("vy = %v, want terminal %v", b.Velocity.Y, terminal)
	}
}
