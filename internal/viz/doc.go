// Package viz draws the arena in a terminal.
//
// Bodies are rasterised onto a braille canvas (two by four dots per cell)
// with a per-cell color layer. The live view is a bubbletea program that
// steps a world.World at the configured frame rate and plots kinetic energy
// with asciigraph.
package viz
