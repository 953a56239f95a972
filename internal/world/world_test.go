package world_test

import (
	"context"
	"errors"
	"math"
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/collide/internal/config"
	"github.com/san-kum/collide/internal/physics"
	"github.com/san-kum/collide/internal/vec"
	"github.com/san-kum/collide/internal/world"
)

const dt = 1.0 / 60

func body(id int, pos, vel vec.Vec2) *physics.Body {
	b, err := physics.NewBody(physics.BodyParams{
		ID:                id,
		Position:          pos,
		Velocity:          vel,
		Acceleration:      vec.Vec2{X: 0, Y: 100},
		Radius:            10,
		Mass:              1,
		Restitution:       1,
		HighlightDuration: 1,
	})
	Expect(err).NotTo(HaveOccurred())
	return b
}

func newWorld(bodies ...*physics.Body) *world.World {
	det := physics.NewDetector(physics.HighlightCandidates, physics.NewElastic(physics.AxisRelativeVelocity))
	return world.NewWithBodies(physics.Arena{Width: 700, Height: 700}, bodies, det, physics.NewForceModel(0.1))
}

type countingMetric struct {
	frames     int
	collisions int
}

func (c *countingMetric) Name() string { return "counting" }
func (c *countingMetric) Observe(w *world.World, st world.FrameStats) {
	c.frames++
	c.collisions += st.Collisions
}
func (c *countingMetric) Value() float64 { return float64(c.collisions) }
func (c *countingMetric) Reset()         { c.frames, c.collisions = 0, 0 }

var _ = Describe("InitializeBody", func() {
	It("builds an inactive unit body drifting sideways", func() {
		rng := rand.New(rand.NewSource(1))
		for i := 0; i < 100; i++ {
			b, err := world.InitializeBody(rng, physics.Color{R: 100, B: 200}, vec.Vec2{X: 50, Y: 60}, 10)
			Expect(err).NotTo(HaveOccurred())
			Expect(b.Velocity.X).To(BeNumerically(">=", 50))
			Expect(b.Velocity.X).To(BeNumerically("<=", 100))
			Expect(b.Velocity.X).To(Equal(math.Trunc(b.Velocity.X)))
			Expect(b.Velocity.Y).To(BeZero())
			Expect(b.Acceleration).To(Equal(vec.Vec2{X: 0, Y: 100}))
			Expect(b.Mass()).To(Equal(1.0))
			Expect(b.Restitution).To(Equal(1.0))
			Expect(b.Activated).To(BeFalse())
			Expect(b.Left).To(Equal(40.0))
			Expect(b.Right).To(Equal(60.0))
		}
	})

	It("fails fast on a non-positive radius", func() {
		_, err := world.InitializeBody(rand.New(rand.NewSource(1)), physics.Color{}, vec.Vec2{}, 0)
		Expect(errors.Is(err, physics.ErrInvalidRadius)).To(BeTrue())
	})
})

var _ = Describe("New", func() {
	It("places every body inside the arena with the configured radius", func() {
		cfg := config.GetPreset("crowd")
		w, err := world.New(cfg, rand.New(rand.NewSource(3)))
		Expect(err).NotTo(HaveOccurred())
		Expect(w.Bodies).To(HaveLen(cfg.Bodies.Count))

		ids := map[int]bool{}
		for _, b := range w.Bodies {
			Expect(b.Radius()).To(Equal(cfg.Bodies.Radius))
			Expect(b.Position.X).To(BeNumerically(">=", 0))
			Expect(b.Position.X).To(BeNumerically("<=", cfg.Arena.Width-cfg.Bodies.Radius))
			Expect(b.Position.Y).To(BeNumerically("<=", cfg.Arena.Height-cfg.Bodies.Radius))
			Expect(b.Color.G).To(BeZero())
			Expect(b.Color.R).To(BeNumerically(">=", 20))
			ids[b.ID] = true
		}
		Expect(ids).To(HaveLen(cfg.Bodies.Count))
	})

	It("is deterministic for a seed", func() {
		cfg := config.DefaultConfig()
		a, err := world.New(cfg, rand.New(rand.NewSource(9)))
		Expect(err).NotTo(HaveOccurred())
		b, err := world.New(cfg, rand.New(rand.NewSource(9)))
		Expect(err).NotTo(HaveOccurred())
		for i := range a.Bodies {
			Expect(a.Bodies[i].Position).To(Equal(b.Bodies[i].Position))
			Expect(a.Bodies[i].Velocity).To(Equal(b.Bodies[i].Velocity))
		}
	})

	It("rejects an invalid configuration", func() {
		cfg := config.DefaultConfig()
		cfg.Bodies.Mass = 0
		_, err := world.New(cfg, rand.New(rand.NewSource(1)))
		Expect(errors.Is(err, physics.ErrInvalidMass)).To(BeTrue())
	})

	It("wires the configured collision policies", func() {
		cfg := config.GetPreset("contacts")
		w, err := world.New(cfg, rand.New(rand.NewSource(1)))
		Expect(err).NotTo(HaveOccurred())
		Expect(w.Detector.Highlight).To(Equal(physics.HighlightContacts))
		Expect(w.Detector.Resolver).To(Equal(physics.NewElastic(physics.AxisCenterLine)))
	})
})

var _ = Describe("StepFrame", func() {
	It("never integrates forces for inactive bodies", func() {
		b := body(0, vec.Vec2{X: 100, Y: 300}, vec.Vec2{X: 60, Y: 0})
		w := newWorld(b)

		for i := 0; i < 120; i++ {
			w.StepFrame(dt, false)
			Expect(b.Velocity).To(Equal(vec.Vec2{X: 60, Y: 0}))
			Expect(b.Position.Y).To(Equal(300.0))
		}
		Expect(b.Position.X).To(BeNumerically("~", 220, 1e-9))
	})

	It("changes inactive velocity only through wall reflection", func() {
		b := body(0, vec.Vec2{X: 689.5, Y: 300}, vec.Vec2{X: 60, Y: 0})
		w := newWorld(b)

		w.StepFrame(dt, false)
		Expect(b.Position.X).To(Equal(690.0))
		Expect(b.Velocity).To(Equal(vec.Vec2{X: -60, Y: 0}))
	})

	It("applies horizontal motion twice per frame once activated", func() {
		b := body(0, vec.Vec2{X: 100, Y: 300}, vec.Vec2{X: 60, Y: 0})
		w := newWorld(b)

		w.StepFrame(dt, true)

		vx := 60 + (-0.1*60)*dt
		Expect(b.Activated).To(BeTrue())
		Expect(b.Velocity.X).To(BeNumerically("~", vx, 1e-12))
		Expect(b.Position.X).To(BeNumerically("~", 100+60*dt+vx*dt, 1e-9))
		Expect(b.Velocity.Y).To(BeNumerically("~", 100*dt, 1e-12))
		Expect(b.Position.Y).To(BeNumerically("~", 300+100*dt*dt, 1e-9))
	})

	It("keeps bodies activated after the signal drops", func() {
		b := body(0, vec.Vec2{X: 100, Y: 300}, vec.Vec2{X: 60, Y: 0})
		w := newWorld(b)

		w.StepFrame(dt, true)
		vy := b.Velocity.Y
		w.StepFrame(dt, false)
		Expect(b.Activated).To(BeTrue())
		Expect(b.Velocity.Y).To(BeNumerically(">", vy))
	})

	It("resolves the head-on pair and highlights both", func() {
		a := body(0, vec.Vec2{X: 100, Y: 300}, vec.Vec2{X: 10, Y: 0})
		b := body(1, vec.Vec2{X: 119, Y: 300}, vec.Vec2{X: -10, Y: 0})
		w := newWorld(b, a)

		st := w.StepFrame(dt, false)

		Expect(st.Collisions).To(Equal(1))
		Expect(st.Frame).To(Equal(1))
		Expect(a.Velocity).To(Equal(vec.Vec2{X: -10, Y: 0}))
		Expect(b.Velocity).To(Equal(vec.Vec2{X: 10, Y: 0}))
		Expect(a.Highlighted).To(BeTrue())
		Expect(b.Highlighted).To(BeTrue())
		Expect(w.Bodies[0]).To(BeIdenticalTo(a), "sweep leaves bodies sorted by left extent")
		Expect(w.Body(1)).To(BeIdenticalTo(b))
	})

	It("clears the highlight once its duration has elapsed", func() {
		a := body(0, vec.Vec2{X: 100, Y: 300}, vec.Vec2{X: 100, Y: 0})
		b := body(1, vec.Vec2{X: 119, Y: 300}, vec.Vec2{X: -100, Y: 0})
		w := newWorld(a, b)

		w.StepFrame(dt, false)
		Expect(a.Highlighted).To(BeTrue())

		frames := 0
		for a.Highlighted && frames < 1000 {
			w.StepFrame(dt, false)
			frames++
		}
		Expect(frames).To(BeNumerically("~", 60, 1))
	})

	It("keeps the extent invariant through every stage", func() {
		w, err := world.New(config.GetPreset("crowd"), rand.New(rand.NewSource(5)))
		Expect(err).NotTo(HaveOccurred())

		for i := 0; i < 300; i++ {
			w.StepFrame(dt, i > 30)
			for _, b := range w.Bodies {
				Expect(b.Left).To(BeNumerically("<=", b.Right))
				Expect(b.Right - b.Left).To(BeNumerically("~", 2*b.Radius(), 1e-9))
				Expect(b.Left).To(BeNumerically("~", b.Position.X-b.Radius(), 1e-9))
			}
		}
	})

	It("feeds metrics and observers every frame", func() {
		a := body(0, vec.Vec2{X: 100, Y: 300}, vec.Vec2{X: 10, Y: 0})
		b := body(1, vec.Vec2{X: 119, Y: 300}, vec.Vec2{X: -10, Y: 0})
		w := newWorld(a, b)

		m := &countingMetric{}
		w.AddMetric(m)
		var seen []int
		w.AddObserver(world.ObserverFunc(func(_ *world.World, st world.FrameStats) {
			seen = append(seen, st.Frame)
		}))

		w.StepFrame(dt, false)
		w.StepFrame(dt, false)

		Expect(m.frames).To(Equal(2))
		Expect(m.collisions).To(BeNumerically(">=", 1))
		Expect(seen).To(Equal([]int{1, 2}))
	})
})

var _ = Describe("Run", func() {
	It("samples the initial state plus every frame", func() {
		w, err := world.New(config.DefaultConfig(), rand.New(rand.NewSource(2)))
		Expect(err).NotTo(HaveOccurred())
		w.AddMetric(&countingMetric{})

		res, err := w.Run(context.Background(), world.RunConfig{Dt: dt, Frames: 120, ActivateAt: 60, Trace: true})
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Samples).To(HaveLen(121))
		Expect(res.FramesTaken).To(Equal(120))
		Expect(res.Metrics).To(HaveKey("counting"))

		Expect(res.Samples[0].Frame).To(Equal(0))
		Expect(res.Samples[60].Activated).To(BeZero())
		Expect(res.Samples[61].Activated).To(Equal(3))
		Expect(res.Samples[120].Bodies).To(HaveLen(3))
		Expect(res.Samples[120].Bodies[0].ID).To(Equal(0))
	})

	It("never activates with a negative ActivateAt", func() {
		w, err := world.New(config.DefaultConfig(), rand.New(rand.NewSource(2)))
		Expect(err).NotTo(HaveOccurred())

		res, err := w.Run(context.Background(), world.RunConfig{Dt: dt, Frames: 30, ActivateAt: -1})
		Expect(err).NotTo(HaveOccurred())
		for _, s := range res.Samples {
			Expect(s.Activated).To(BeZero())
			Expect(s.Bodies).To(BeNil())
		}
	})

	It("rejects bad run settings", func() {
		w := newWorld()
		_, err := w.Run(context.Background(), world.RunConfig{Dt: 0, Frames: 10})
		Expect(errors.Is(err, world.ErrInvalidRun)).To(BeTrue())
		_, err = w.Run(context.Background(), world.RunConfig{Dt: dt, Frames: 0})
		Expect(errors.Is(err, world.ErrInvalidRun)).To(BeTrue())
	})

	It("stops when the context is cancelled", func() {
		w, err := world.New(config.DefaultConfig(), rand.New(rand.NewSource(2)))
		Expect(err).NotTo(HaveOccurred())

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		res, err := w.Run(ctx, world.RunConfig{Dt: dt, Frames: 100})
		Expect(errors.Is(err, context.Canceled)).To(BeTrue())
		Expect(res.FramesTaken).To(BeZero())
		Expect(res.Samples).To(HaveLen(1))
	})

	It("reports a non-finite body as a frame error", func() {
		b := body(4, vec.Vec2{X: 100, Y: 300}, vec.Vec2{X: math.Inf(1), Y: 0})
		w := newWorld(b)

		_, err := w.Run(context.Background(), world.RunConfig{Dt: dt, Frames: 5})
		var fe *world.FrameError
		Expect(errors.As(err, &fe)).To(BeTrue())
		Expect(fe.Body).To(Equal(4))
		Expect(errors.Is(err, world.ErrNonFinite)).To(BeTrue())
	})
})
