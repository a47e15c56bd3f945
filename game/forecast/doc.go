// Package forecast reproduces future terrain states of a grid from the
// obstacle generator's (seed, draw count) pair.
//
// The live grid mutates each turn by consuming draws from an owned,
// draw-counting generator. Forecasting clones the grid, rebuilds a
// generator in exactly the live generator's state by replaying the
// tracked draw count, and then advances the clone through the same
// mutation procedure for the requested number of future turns, recording
// a terrain snapshot per turn.
//
// For a fixed seed and draw count the produced snapshot sequence is
// identical across invocations; reproducibility is the entire purpose of
// this package. The live grid is never touched.
package forecast
