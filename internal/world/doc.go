// Package world owns a population of bodies and steps it frame by frame.
//
// A [World] is built from a [config.Config] and advanced with
// [World.StepFrame], which runs, in order: highlight decay, the collision
// sweep, horizontal motion, boundary reflection, activation and force
// integration. [World.Run] drives a fixed number of frames headlessly and
// collects per-frame samples for storage and plotting.
//
// # Example
//
//	rng := rand.New(rand.NewSource(cfg.Run.Seed))
//	w, _ := world.New(cfg, rng)
//	for {
//	    stats := w.StepFrame(dt, keyDown)
//	    render(w.Bodies)
//	}
//
// # Thread Safety
//
// A World is NOT safe for concurrent use; the renderer must read bodies on
// the same goroutine that steps the frame.
package world
