// Package viz draws a body set in the terminal.
//
// A [Scene] projects bodies, trails and distance labels onto a braille
// [Canvas] with per-cell colour. [Model] is the Bubble Tea program that
// steps an integrator once per frame and redraws.
//
// # Key Bindings
//
//	Space - Toggle schematic / true-scale radii
//	P     - Pause/Resume simulation
//	+/-   - Zoom in/out
//	R     - Reset to initial state
//	Q     - Quit
package viz
