// Package engine drives one exploration of a maze scenario.
//
// An Engine ties together the generated grid, the pathfinding facade
// with its per-session result cache, and the agent's accumulated
// knowledge: which cells it has discovered, the terrain it remembers
// seeing, and the positions it visited recently. Scenarios configure all
// of it from JSON, including the fog radius that decides how much of the
// maze a single step reveals.
//
// Engines are not safe for concurrent use; the session layer serializes
// access to each one.
package engine
