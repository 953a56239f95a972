package physics

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/collide/internal/vec"
)

func mustBody(t testing.TB, id int, pos, vel vec.Vec2, radius, mass float64) *Body {
	t.Helper()
	b, err := NewBody(BodyParams{
		ID:                id,
		Position:          pos,
		Velocity:          vel,
		Acceleration:      vec.Vec2{X: 0, Y: 100},
		Radius:            radius,
		Mass:              mass,
		Restitution:       1,
		HighlightDuration: 1,
	})
	if err != nil {
		t.Fatalf("NewBody: %v", err)
	}
	return b
}

func TestNewBodyValidation(t *testing.T) {
	tests := []struct {
		name   string
		params BodyParams
		want   error
	}{
		{"zero radius", BodyParams{Radius: 0, Mass: 1}, ErrInvalidRadius},
		{"negative radius", BodyParams{Radius: -3, Mass: 1}, ErrInvalidRadius},
		{"NaN radius", BodyParams{Radius: math.NaN(), Mass: 1}, ErrInvalidRadius},
		{"zero mass", BodyParams{Radius: 1, Mass: 0}, ErrInvalidMass},
		{"negative mass", BodyParams{Radius: 1, Mass: -1}, ErrInvalidMass},
		{"restitution above one", BodyParams{Radius: 1, Mass: 1, Restitution: 1.5}, ErrInvalidRestitution},
		{"negative restitution", BodyParams{Radius: 1, Mass: 1, Restitution: -0.1}, ErrInvalidRestitution},
		{"NaN restitution", BodyParams{Radius: 1, Mass: 1, Restitution: math.NaN()}, ErrInvalidRestitution},
		{"infinite radius", BodyParams{Radius: math.Inf(1), Mass: 1}, ErrInvalidRadius},
		{"infinite mass", BodyParams{Radius: 1, Mass: math.Inf(1)}, ErrInvalidMass},
		{"NaN mass", BodyParams{Radius: 1, Mass: math.NaN()}, ErrInvalidMass},
		{"NaN highlight duration", BodyParams{Radius: 1, Mass: 1, HighlightDuration: math.NaN()}, ErrInvalidHighlight},
		{"infinite highlight duration", BodyParams{Radius: 1, Mass: 1, HighlightDuration: math.Inf(1)}, ErrInvalidHighlight},
		{"negative highlight duration", BodyParams{Radius: 1, Mass: 1, HighlightDuration: -1}, ErrInvalidHighlight},
		{"NaN position", BodyParams{Radius: 1, Mass: 1, Position: vec.Vec2{X: math.NaN()}}, ErrNonFinite},
		{"infinite velocity", BodyParams{Radius: 1, Mass: 1, Velocity: vec.Vec2{Y: math.Inf(-1)}}, ErrNonFinite},
		{"NaN acceleration", BodyParams{Radius: 1, Mass: 1, Acceleration: vec.Vec2{Y: math.NaN()}}, ErrNonFinite},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewBody(tt.params)
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestNewBodyDefaults(t *testing.T) {
	b := mustBody(t, 7, vec.Vec2{X: 50, Y: 60}, vec.Vec2{}, 10, 2)

	if b.Radius() != 10 || b.Mass() != 2 {
		t.Errorf("radius/mass = %v/%v, want 10/2", b.Radius(), b.Mass())
	}
	if b.Left != 40 || b.Right != 60 {
		t.Errorf("extents = [%v, %v], want [40, 60]", b.Left, b.Right)
	}
	if b.GlowColor != DefaultGlow {
		t.Errorf("glow color = %v, want %v", b.GlowColor, DefaultGlow)
	}
	if b.Activated || b.Highlighted {
		t.Error("new body should start inactive and not highlighted")
	}
}

func TestExtentsWidth(t *testing.T) {
	b := mustBody(t, 0, vec.Vec2{}, vec.Vec2{}, 7.25, 1)

	for _, x := range []float64{0, -13.5, 1e6, 0.1, 699.99} {
		b.Position.X = x
		b.UpdateExtents()
		if b.Left > b.Right {
			t.Errorf("x=%v: left %v > right %v", x, b.Left, b.Right)
		}
		if w := b.Right - b.Left; math.Abs(w-2*b.Radius()) > 1e-9 {
			t.Errorf("x=%v: width %v, want %v", x, w, 2*b.Radius())
		}
	}
}

func TestAdvanceMovesOnlyX(t *testing.T) {
	b := mustBody(t, 0, vec.Vec2{X: 100, Y: 200}, vec.Vec2{X: 60, Y: -30}, 10, 1)

	b.Advance(0.5)

	if b.Position.X != 130 {
		t.Errorf("x = %v, want 130", b.Position.X)
	}
	if b.Position.Y != 200 {
		t.Errorf("y changed to %v", b.Position.Y)
	}
	if b.Left != 120 || b.Right != 140 {
		t.Errorf("extents not refreshed: [%v, %v]", b.Left, b.Right)
	}
}

func TestDecayHighlight(t *testing.T) {
	b := mustBody(t, 0, vec.Vec2{}, vec.Vec2{}, 10, 1)

	b.DecayHighlight(5)
	if b.HighlightElapsed != 0 {
		t.Error("decay should not run while not highlighted")
	}

	b.Highlight()
	b.DecayHighlight(0.4)
	if !b.Highlighted {
		t.Fatal("highlight cleared too early")
	}
	b.DecayHighlight(0.6)
	if b.Highlighted {
		t.Error("highlight should clear once elapsed reaches duration")
	}

	b.Highlight()
	if !b.Highlighted || b.HighlightElapsed != 0 {
		t.Error("Highlight should reset the timer")
	}
}

func TestActivateIsOneWay(t *testing.T) {
	b := mustBody(t, 0, vec.Vec2{}, vec.Vec2{}, 10, 1)
	b.Activate()
	b.Activate()
	if !b.Activated {
		t.Error("expected body to stay activated")
	}
}

func TestKineticEnergyAndMomentum(t *testing.T) {
	b := mustBody(t, 0, vec.Vec2{}, vec.Vec2{X: 3, Y: 4}, 1, 2)

	if ke := b.KineticEnergy(); ke != 25 {
		t.Errorf("kinetic energy = %v, want 25", ke)
	}
	if p := b.Momentum(); p != (vec.Vec2{X: 6, Y: 8}) {
		t.Errorf("momentum = %v, want (6, 8)", p)
	}
}
