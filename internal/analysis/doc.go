// Package analysis looks at whole runs rather than single frames.
//
//   - [PowerSpectrum] and [DominantPeriod]: periodicity of a stored series,
//     such as collisions per frame.
//   - [Divergence]: how fast two worlds that start a hair apart drift
//     apart. A positive value means the arena is chaotic at that setting.
//   - [Sweep]: one parameter varied across runs that otherwise share a seed.
//
// Typical use:
//
//	points, err := analysis.Sweep(ctx, cfg, "bodies", []float64{10, 100, 500})
//	best := analysis.Best(points, func(p analysis.SweepPoint) float64 { return p.Candidates })
package analysis
