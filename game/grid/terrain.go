package grid

import "math"

// Terrain represents the surface type of a grid cell
type Terrain string

const (
	Path       Terrain = "path"
	Grass      Terrain = "grass"
	Rocks      Terrain = "rocks"
	Water      Terrain = "water"
	Thorns     Terrain = "thorns"
	Spikes     Terrain = "spikes"
	Mud        Terrain = "mud"
	Quicksand  Terrain = "quicksand"
	Lava       Terrain = "lava"
	Wall       Terrain = "wall"
	Start      Terrain = "start"
	Goal       Terrain = "goal"
	Checkpoint Terrain = "checkpoint"
	Reward     Terrain = "reward"
)

// TerrainCosts maps each terrain type to its movement cost. Impassable
// terrain (walls, lava) costs +Inf; callers must never expand through an
// infinite-cost edge.
var TerrainCosts = map[Terrain]float64{
	Path:       1,
	Grass:      1,
	Rocks:      2,
	Water:      3,
	Thorns:     3,
	Spikes:     4,
	Mud:        5,
	Quicksand:  6,
	Lava:       math.Inf(1),
	Wall:       math.Inf(1),
	Start:      0,
	Goal:       0,
	Checkpoint: 0,
	Reward:     0,
}

// MinStepCost is the smallest positive per-step cost any passable cell can
// have. Heuristics scale by this value to stay admissible.
const MinStepCost = 1.0

// CostForTerrain returns the movement cost for a terrain type, defaulting
// to the grass cost for unknown types.
func CostForTerrain(t Terrain) float64 {
	if cost, ok := TerrainCosts[t]; ok {
		return cost
	}
	return TerrainCosts[Grass]
}

// Passable reports whether the terrain can be entered at finite cost.
func (t Terrain) Passable() bool {
	return !math.IsInf(CostForTerrain(t), 1)
}
