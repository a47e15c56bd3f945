package grid

import (
	"math/rand"
	"sort"
)

// Generation constants. Dimensions must be odd for the backtracker; even
// inputs are rounded down. Per-turn mutation defaults follow the dynamic
// obstacle settings of the original game.
const (
	MinDimension                 = 5
	DefaultSpawnRate             = 0.05
	DefaultTerrainChangesPerTurn = 2
	DefaultObstacleSpawnsPerTurn = 2
)

// GenerateOptions controls maze generation. Zero values fall back to the
// documented defaults.
type GenerateOptions struct {
	Width       int        `json:"width"`
	Height      int        `json:"height"`
	MazeSeed    int64      `json:"maze_seed"`
	ObstacleSeed int64     `json:"obstacle_seed"`
	Checkpoints []Position `json:"checkpoints,omitempty"`

	// TerrainWeights is the sampling distribution for open cells; nil uses
	// the classic 70% grass, 20% water, 10% mud split.
	TerrainWeights map[Terrain]float64 `json:"terrain_weights,omitempty"`

	SpawnRate             float64 `json:"spawn_rate,omitempty"`
	TerrainChangesPerTurn int     `json:"terrain_changes_per_turn,omitempty"`
	ObstacleSpawnsPerTurn int     `json:"obstacle_spawns_per_turn,omitempty"`
}

var defaultTerrainWeights = map[Terrain]float64{
	Grass: 0.7,
	Water: 0.2,
	Mud:   0.1,
}

// Generate carves a perfect maze with recursive backtracking, assigns
// weighted terrain to the carved cells, and wires the dynamic obstacle
// generator. Start is placed at (1,1) and the goal at the far corner.
func Generate(opts GenerateOptions) *Grid {
	width, height := oddDimension(opts.Width), oddDimension(opts.Height)

	g := &Grid{
		Width:                 width,
		Height:                height,
		open:                  make([][]bool, height),
		terrain:               make(map[Position]Terrain),
		dynamicObstacles:      make(map[Position]bool),
		rand:                  NewObstacleRand(opts.ObstacleSeed),
		spawnRate:             opts.SpawnRate,
		terrainChangesPerTurn: opts.TerrainChangesPerTurn,
		obstacleSpawnsPerTurn: opts.ObstacleSpawnsPerTurn,
	}
	if g.spawnRate <= 0 {
		g.spawnRate = DefaultSpawnRate
	}
	if g.terrainChangesPerTurn <= 0 {
		g.terrainChangesPerTurn = DefaultTerrainChangesPerTurn
	}
	if g.obstacleSpawnsPerTurn <= 0 {
		g.obstacleSpawnsPerTurn = DefaultObstacleSpawnsPerTurn
	}
	for y := range g.open {
		g.open[y] = make([]bool, width)
	}

	carve(g, rand.New(rand.NewSource(opts.MazeSeed)))

	g.start = Position{X: 1, Y: 1}
	g.goal = Position{X: width - 2, Y: height - 2}
	for _, cp := range opts.Checkpoints {
		if g.IsOpen(cp) {
			g.checkpoints = append(g.checkpoints, cp)
		}
	}

	assignTerrain(g, opts, rand.New(rand.NewSource(opts.MazeSeed+1)))
	return g
}

// NewOpenGrid builds a fully-open uniform-grass grid. Scenario tests and
// synthetic queries use it; generation-time defaults still apply so
// AdvanceTurn works on it.
func NewOpenGrid(width, height int, obstacleSeed int64) *Grid {
	g := &Grid{
		Width:                 width,
		Height:                height,
		open:                  make([][]bool, height),
		terrain:               make(map[Position]Terrain),
		dynamicObstacles:      make(map[Position]bool),
		rand:                  NewObstacleRand(obstacleSeed),
		spawnRate:             DefaultSpawnRate,
		terrainChangesPerTurn: DefaultTerrainChangesPerTurn,
		obstacleSpawnsPerTurn: DefaultObstacleSpawnsPerTurn,
	}
	for y := range g.open {
		g.open[y] = make([]bool, width)
		for x := range g.open[y] {
			g.open[y][x] = true
			g.terrain[Position{X: x, Y: y}] = Grass
		}
	}
	g.start = Position{X: 0, Y: 0}
	g.goal = Position{X: width - 1, Y: height - 1}
	return g
}

// carve runs the recursive backtracker over odd cells, knocking out the
// wall cell between each visited pair.
func carve(g *Grid, rng *rand.Rand) {
	start := Position{X: 1, Y: 1}
	g.open[start.Y][start.X] = true

	visited := map[Position]bool{start: true}
	stack := []Position{start}

	jumps := []struct{ dx, dy int }{{0, -2}, {2, 0}, {0, 2}, {-2, 0}}

	for len(stack) > 0 {
		current := stack[len(stack)-1]

		var candidates []Position
		for _, j := range jumps {
			next := Position{X: current.X + j.dx, Y: current.Y + j.dy}
			if g.InBounds(next) && !visited[next] {
				candidates = append(candidates, next)
			}
		}

		if len(candidates) == 0 {
			stack = stack[:len(stack)-1]
			continue
		}

		next := candidates[rng.Intn(len(candidates))]
		between := Position{X: (current.X + next.X) / 2, Y: (current.Y + next.Y) / 2}
		g.open[between.Y][between.X] = true
		g.open[next.Y][next.X] = true
		visited[next] = true
		stack = append(stack, next)
	}
}

// assignTerrain samples weighted terrain for every open cell, keeping the
// start, goal, and checkpoints at zero cost.
func assignTerrain(g *Grid, opts GenerateOptions, rng *rand.Rand) {
	weights := opts.TerrainWeights
	if len(weights) == 0 {
		weights = defaultTerrainWeights
	}
	order := terrainOrder(weights)

	var total float64
	for _, t := range order {
		total += weights[t]
	}

	checkpointSet := make(map[Position]bool, len(g.checkpoints))
	for _, cp := range g.checkpoints {
		checkpointSet[cp] = true
	}

	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			p := Position{X: x, Y: y}
			if !g.IsOpen(p) {
				continue
			}
			switch {
			case p == g.start:
				g.terrain[p] = Start
			case p == g.goal:
				g.terrain[p] = Goal
			case checkpointSet[p]:
				g.terrain[p] = Checkpoint
			default:
				g.terrain[p] = sampleTerrain(order, weights, total, rng.Float64())
			}
		}
	}
}

// terrainOrder lists the weighted terrains in name order. Map iteration
// order must never influence a seeded draw sequence.
func terrainOrder(weights map[Terrain]float64) []Terrain {
	order := make([]Terrain, 0, len(weights))
	for t := range weights {
		order = append(order, t)
	}
	sort.Slice(order, func(i, j int) bool { return order[i] < order[j] })
	return order
}

// sampleTerrain picks a terrain from the cumulative weight distribution.
func sampleTerrain(order []Terrain, weights map[Terrain]float64, total, roll float64) Terrain {
	target := roll * total
	var acc float64
	for _, t := range order {
		acc += weights[t]
		if target < acc {
			return t
		}
	}
	return order[len(order)-1]
}

// oddDimension clamps to the minimum and rounds even sizes down to odd.
func oddDimension(n int) int {
	if n < MinDimension {
		n = MinDimension
	}
	if n%2 == 0 {
		n--
	}
	return n
}
