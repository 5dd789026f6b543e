// Package physics holds the data model of the simulator: bodies, their
// bounded position trails, and the ordered [System] an integrator steps.
//
// All quantities are SI. [AU] exists for initial conditions and display;
// the force law in [Force] never sees it.
//
// A [System] names at most one reference body by index. Every other body
// records its distance to it during force evaluation, which is what the
// renderer labels in AU.
//
//	sys := physics.InnerSolarSystem()
//	e0 := sys.Energy()
package physics
