package world

import (
	"errors"
	"fmt"
)

var (
	// ErrNonFinite indicates a body whose position or velocity became NaN or Inf.
	ErrNonFinite = errors.New("world: non-finite body state")

	// ErrInvalidRun indicates a run configuration that cannot be stepped.
	ErrInvalidRun = errors.New("world: invalid run configuration")
)

// FrameError wraps an error with the frame and body it was detected on.
type FrameError struct {
	Frame   int
	Body    int
	Wrapped error
}

func (e *FrameError) Error() string {
	return fmt.Sprintf("frame %d, body %d: %v", e.Frame, e.Body, e.Wrapped)
}

func (e *FrameError) Unwrap() error {
	return e.Wrapped
}
