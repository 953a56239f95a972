// Package physics is the rigid-circle engine: bodies, the arena boundary,
// the gravity and drag integrator, and pairwise collision handling.
//
// The pieces a frame touches, in order:
//
//   - [Body.DecayHighlight]: ages the collision highlight
//   - [Detector.Sweep]: sweep-and-prune on x, exact circle test, [Resolver]
//   - [Body.Advance]: horizontal motion
//   - [Arena.Reflect]: clamps to the walls, floor and ceiling
//   - [ForceModel.Integrate]: gravity and drag for activated bodies
//
// # Example
//
//	b, _ := physics.NewBody(physics.BodyParams{Radius: 10, Mass: 1, Restitution: 1})
//	det := physics.NewDetector(physics.HighlightCandidates, physics.NewElastic(physics.AxisRelativeVelocity))
//	stats := det.Sweep(bodies)
//
// Nothing in this package is safe for concurrent use.
package physics
