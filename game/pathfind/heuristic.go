package pathfind

import (
	"math"

	"github.com/mazequest/pathfinder-server/game/grid"
)

// HeuristicType selects the distance estimate used by informed searches
type HeuristicType string

const (
	Manhattan HeuristicType = "manhattan"
	Euclidean HeuristicType = "euclidean"
)

// Difficulty presets map to heuristic scale factors. Easy under-trusts
// the estimate and explores more; hard over-trusts it. A scale above 1
// breaks admissibility on purpose, trading optimality for speed.
const (
	EasyHeuristicScale   = 0.7
	MediumHeuristicScale = 1.0
	HardHeuristicScale   = 1.5
)

// manhattanDistance is the 4-directional city-block distance.
func manhattanDistance(a, b grid.Position) float64 {
	return float64(grid.ManhattanDistance(a, b))
}

// euclideanDistance is the straight-line distance.
func euclideanDistance(a, b grid.Position) float64 {
	dx := float64(a.X - b.X)
	dy := float64(a.Y - b.Y)
	return math.Sqrt(dx*dx + dy*dy)
}

// heuristic estimates remaining cost from p to goal, scaled by the
// minimum positive per-step cost. Admissible for scale factors <= 1.
func (pf *Pathfinder) heuristic(p, goal grid.Position) float64 {
	var d float64
	switch pf.heuristicType {
	case Euclidean:
		d = euclideanDistance(p, goal)
	default:
		d = manhattanDistance(p, goal)
	}
	return d * grid.MinStepCost
}
