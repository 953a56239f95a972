package physics

import (
	"errors"
	"fmt"
)

// Domain errors for body construction and collision response.
var (
	// ErrInvalidRadius indicates a body radius that is not a positive finite number.
	ErrInvalidRadius = errors.New("physics: radius must be positive and finite")

	// ErrInvalidMass indicates a body mass that is not a positive finite number.
	ErrInvalidMass = errors.New("physics: mass must be positive and finite")

	// ErrInvalidRestitution indicates a restitution outside [0, 1].
	ErrInvalidRestitution = errors.New("physics: restitution must be within [0, 1]")

	// ErrInvalidArena indicates an arena whose width or height is not a
	// positive finite number.
	ErrInvalidArena = errors.New("physics: arena dimensions must be positive and finite")

	// ErrInvalidHighlight indicates a highlight duration that is negative,
	// NaN or infinite.
	ErrInvalidHighlight = errors.New("physics: highlight duration must be finite and non-negative")

	// ErrNonFinite indicates a NaN or infinite component in a body's initial
	// position, velocity or acceleration.
	ErrNonFinite = errors.New("physics: state must be finite")

	// ErrDegenerateNormal indicates a colliding pair whose collision axis has
	// no direction. The pair is left unchanged.
	ErrDegenerateNormal = errors.New("physics: degenerate collision normal")
)

// ContactError wraps a resolution failure with the identities of the pair.
type ContactError struct {
	A, B    int
	Wrapped error
}

func (e *ContactError) Error() string {
	return fmt.Sprintf("bodies %d and %d: %v", e.A, e.B, e.Wrapped)
}

func (e *ContactError) Unwrap() error {
	return e.Wrapped
}
