// Package field evaluates superposed point-source kernels on regular
// 2D and 3D grids.
//
// Three kernel kinds are supported:
//
//   - [Rotational]: a point-vortex circulation, perpendicular to the
//     displacement from the source and decaying as 1/r
//   - [Radial]: an inverse-square sink along the displacement
//   - [CoulombKind]: a scalar potential s/r2 with no vector form; its
//     square adds to the energy density
//
// All kernels share the same regularization: a strictly positive
// epsilon added to the squared distance, so every field is finite and
// smooth across the whole grid, including at source locations.
// Contributions combine by plain elementwise summation ([Superpose]);
// nothing is re-normalized.
//
// An [Evaluator] binds a grid to an epsilon so per-frame evaluation is
// a pure function of (sources, frame index).
package field
