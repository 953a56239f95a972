package world

import (
	"context"
	"fmt"
	"sort"
)

func (rc RunConfig) validate() error {
	if rc.Dt <= 0 {
		return fmt.Errorf("%w: dt must be positive, got %f", ErrInvalidRun, rc.Dt)
	}
	if rc.Frames <= 0 {
		return fmt.Errorf("%w: frames must be positive, got %d", ErrInvalidRun, rc.Frames)
	}
	return nil
}

// Run steps rc.Frames frames with a fixed dt and samples the world after
// each one. Cancellation is checked between frames; the partial result is
// returned alongside ctx.Err().
func (w *World) Run(ctx context.Context, rc RunConfig) (*Result, error) {
	if err := rc.validate(); err != nil {
		return nil, err
	}

	result := &Result{
		Samples: make([]Sample, 0, rc.Frames+1),
		Metrics: make(map[string]float64),
	}

	for _, m := range w.metrics {
		m.Reset()
	}

	result.Samples = append(result.Samples, w.sample(FrameStats{Frame: w.frame, Time: w.time}, rc.Trace))

	for i := 0; i < rc.Frames; i++ {
		select {
		case <-ctx.Done():
			w.collectMetrics(result)
			return result, ctx.Err()
		default:
		}

		st := w.StepFrame(rc.Dt, rc.activeAt(i))
		result.FramesTaken++
		result.Candidates += st.Candidates
		result.Collisions += st.Collisions
		result.Degenerate += st.Degenerate

		if err := w.Validate(); err != nil {
			w.collectMetrics(result)
			return result, err
		}

		result.Samples = append(result.Samples, w.sample(st, rc.Trace))
	}

	w.collectMetrics(result)
	return result, nil
}

func (w *World) collectMetrics(result *Result) {
	for _, m := range w.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
}

func (w *World) sample(st FrameStats, trace bool) Sample {
	p := w.Momentum()
	s := Sample{
		Frame:         st.Frame,
		Time:          st.Time,
		Candidates:    st.Candidates,
		Collisions:    st.Collisions,
		Degenerate:    st.Degenerate,
		KineticEnergy: w.KineticEnergy(),
		MomentumX:     p.X,
		MomentumY:     p.Y,
	}
	for _, b := range w.Bodies {
		if b.Highlighted {
			s.Highlighted++
		}
		if b.Activated {
			s.Activated++
		}
	}
	if !trace {
		return s
	}

	s.Bodies = make([]BodySample, len(w.Bodies))
	for i, b := range w.Bodies {
		s.Bodies[i] = BodySample{
			ID:          b.ID,
			X:           b.Position.X,
			Y:           b.Position.Y,
			VX:          b.Velocity.X,
			VY:          b.Velocity.Y,
			Activated:   b.Activated,
			Highlighted: b.Highlighted,
		}
	}
	sort.Slice(s.Bodies, func(i, j int) bool { return s.Bodies[i].ID < s.Bodies[j].ID })
	return s
}
