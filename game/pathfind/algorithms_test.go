package pathfind

import (
	"math"
	"reflect"
	"testing"

	"github.com/mazequest/pathfinder-server/game/grid"
)

var optimalAlgorithms = []Algorithm{AlgorithmDijkstra, AlgorithmAStar, AlgorithmBidirectional}

func TestOpenGridUniformCost(t *testing.T) {
	g := grid.NewOpenGrid(5, 5, 0)
	start := grid.Position{X: 0, Y: 0}
	goal := grid.Position{X: 4, Y: 4}

	algorithms := append([]Algorithm{AlgorithmBFS}, optimalAlgorithms...)
	for _, algorithm := range algorithms {
		pf := newTestPathfinder()
		result, err := pf.Search(g, SearchQuery{Start: start, Goal: SingleGoal(goal), Algorithm: algorithm})
		if err != nil {
			t.Fatalf("%s: search failed: %v", algorithm, err)
		}
		checkPath(t, g, result, start, goal)
		if result.Cost != 8 {
			t.Errorf("%s: expected cost 8 on a uniform 5x5 grid, got %v", algorithm, result.Cost)
		}
		if len(result.Path) != 9 {
			t.Errorf("%s: expected 9 path positions, got %d", algorithm, len(result.Path))
		}
	}
}

func TestWeightedCellDetour(t *testing.T) {
	g := grid.NewOpenGrid(5, 5, 0)
	g.SetTerrain(grid.Position{X: 2, Y: 2}, grid.Mud)
	start := grid.Position{X: 0, Y: 0}
	goal := grid.Position{X: 4, Y: 4}

	for _, algorithm := range optimalAlgorithms {
		pf := newTestPathfinder()
		result, err := pf.Search(g, SearchQuery{Start: start, Goal: SingleGoal(goal), Algorithm: algorithm})
		if err != nil {
			t.Fatalf("%s: search failed: %v", algorithm, err)
		}
		checkPath(t, g, result, start, goal)
		if result.Cost != 8 {
			t.Errorf("%s: expected cost 8 around the mud cell, got %v", algorithm, result.Cost)
		}
		for _, p := range result.Path {
			if (p == grid.Position{X: 2, Y: 2}) {
				t.Errorf("%s: optimal path should route around the cost-5 cell", algorithm)
			}
		}
	}

	// BFS minimizes hops, not cost, so it may cross the mud.
	pf := newTestPathfinder()
	result, err := pf.Search(g, SearchQuery{Start: start, Goal: SingleGoal(goal), Algorithm: AlgorithmBFS})
	if err != nil {
		t.Fatalf("bfs: search failed: %v", err)
	}
	checkPath(t, g, result, start, goal)
	if len(result.Path) != 9 {
		t.Errorf("bfs: expected a minimum-hop path of 9 positions, got %d", len(result.Path))
	}
	if result.Cost < 8 {
		t.Errorf("bfs: cost %v below the optimum 8", result.Cost)
	}
}

func TestOptimalAlgorithmsAgreeOnMaze(t *testing.T) {
	g := mazeGrid()
	start, goal := g.Start(), g.GoalPos()

	costs := make(map[Algorithm]float64)
	for _, algorithm := range optimalAlgorithms {
		pf := newTestPathfinder()
		result, err := pf.Search(g, SearchQuery{Start: start, Goal: SingleGoal(goal), Algorithm: algorithm})
		if err != nil {
			t.Fatalf("%s: search failed: %v", algorithm, err)
		}
		checkPath(t, g, result, start, goal)
		costs[algorithm] = result.Cost
	}

	reference := costs[AlgorithmDijkstra]
	for algorithm, cost := range costs {
		if math.Abs(cost-reference) > 1e-9 {
			t.Errorf("%s: cost %v differs from Dijkstra's %v", algorithm, cost, reference)
		}
	}
}

func TestEuclideanHeuristicStaysOptimal(t *testing.T) {
	g := mazeGrid()
	start, goal := g.Start(), g.GoalPos()

	dijkstra, err := newTestPathfinder().Search(g, SearchQuery{Start: start, Goal: SingleGoal(goal), Algorithm: AlgorithmDijkstra})
	if err != nil {
		t.Fatalf("dijkstra: search failed: %v", err)
	}

	pf := NewPathfinder(Euclidean, MediumHeuristicScale)
	result, err := pf.Search(g, SearchQuery{Start: start, Goal: SingleGoal(goal), Algorithm: AlgorithmAStar})
	if err != nil {
		t.Fatalf("astar: search failed: %v", err)
	}
	checkPath(t, g, result, start, goal)
	if math.Abs(result.Cost-dijkstra.Cost) > 1e-9 {
		t.Errorf("Euclidean A* cost %v differs from Dijkstra's %v", result.Cost, dijkstra.Cost)
	}
}

func TestEasyScaleStaysOptimal(t *testing.T) {
	g := mazeGrid()
	start, goal := g.Start(), g.GoalPos()

	dijkstra, err := newTestPathfinder().Search(g, SearchQuery{Start: start, Goal: SingleGoal(goal), Algorithm: AlgorithmDijkstra})
	if err != nil {
		t.Fatalf("dijkstra: search failed: %v", err)
	}

	// Scaling an admissible heuristic below 1 keeps it admissible.
	pf := NewPathfinder(Manhattan, EasyHeuristicScale)
	result, err := pf.Search(g, SearchQuery{Start: start, Goal: SingleGoal(goal), Algorithm: AlgorithmAStar})
	if err != nil {
		t.Fatalf("astar: search failed: %v", err)
	}
	if math.Abs(result.Cost-dijkstra.Cost) > 1e-9 {
		t.Errorf("Easy-scale A* cost %v differs from Dijkstra's %v", result.Cost, dijkstra.Cost)
	}
}

func TestHardScaleStillFindsPath(t *testing.T) {
	g := mazeGrid()
	start, goal := g.Start(), g.GoalPos()

	pf := NewPathfinder(Manhattan, HardHeuristicScale)
	result, err := pf.Search(g, SearchQuery{Start: start, Goal: SingleGoal(goal), Algorithm: AlgorithmAStar})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	checkPath(t, g, result, start, goal)
}

func TestAStarExpandsNoMoreThanDijkstra(t *testing.T) {
	g := mazeGrid()
	start, goal := g.Start(), g.GoalPos()

	dijkstra, err := newTestPathfinder().Search(g, SearchQuery{Start: start, Goal: SingleGoal(goal), Algorithm: AlgorithmDijkstra})
	if err != nil {
		t.Fatalf("dijkstra: search failed: %v", err)
	}
	astar, err := newTestPathfinder().Search(g, SearchQuery{Start: start, Goal: SingleGoal(goal), Algorithm: AlgorithmAStar})
	if err != nil {
		t.Fatalf("astar: search failed: %v", err)
	}

	if astar.NodesExplored > dijkstra.NodesExplored {
		t.Errorf("A* explored %d nodes, more than Dijkstra's %d", astar.NodesExplored, dijkstra.NodesExplored)
	}
}

func TestTieBreakDeterminism(t *testing.T) {
	g := grid.NewOpenGrid(9, 9, 0)
	q := SearchQuery{
		Start:     grid.Position{X: 0, Y: 0},
		Goal:      SingleGoal(grid.Position{X: 8, Y: 8}),
		Algorithm: AlgorithmAStar,
	}

	first, err := newTestPathfinder().Search(g, q)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	second, err := newTestPathfinder().Search(g, q)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}

	if !reflect.DeepEqual(first.Path, second.Path) {
		t.Error("Identical queries on fresh engines should produce identical paths")
	}
	if first.NodesExplored != second.NodesExplored {
		t.Errorf("Exploration diverged: %d vs %d nodes", first.NodesExplored, second.NodesExplored)
	}
}

func TestStartEqualsGoal(t *testing.T) {
	g := grid.NewOpenGrid(5, 5, 0)
	p := grid.Position{X: 2, Y: 2}

	algorithms := append([]Algorithm{AlgorithmBFS}, optimalAlgorithms...)
	for _, algorithm := range algorithms {
		pf := newTestPathfinder()
		result, err := pf.Search(g, SearchQuery{Start: p, Goal: SingleGoal(p), Algorithm: algorithm})
		if err != nil {
			t.Fatalf("%s: search failed: %v", algorithm, err)
		}
		if !result.Found {
			t.Fatalf("%s: expected trivial path when start equals goal", algorithm)
		}
		if len(result.Path) != 1 || result.Path[0] != p {
			t.Errorf("%s: expected single-position path, got %v", algorithm, result.Path)
		}
		if result.Cost != 0 {
			t.Errorf("%s: expected zero cost, got %v", algorithm, result.Cost)
		}
	}
}

func TestMaskHidesGoal(t *testing.T) {
	g := grid.NewOpenGrid(5, 5, 0)
	start := grid.Position{X: 0, Y: 0}
	goal := grid.Position{X: 4, Y: 4}

	// Only the top-left quadrant is discovered; the goal is not.
	mask := VisibilityMask{}
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			mask[grid.Position{X: x, Y: y}] = true
		}
	}

	for _, algorithm := range optimalAlgorithms {
		pf := newTestPathfinder()
		result, err := pf.Search(g, SearchQuery{Start: start, Goal: SingleGoal(goal), Algorithm: algorithm, Mask: mask})
		if err != nil {
			t.Fatalf("%s: search failed: %v", algorithm, err)
		}
		if result.Found {
			t.Errorf("%s: undiscovered goal should be unreachable", algorithm)
		}
		for p := range result.Explored {
			if p != start && !mask[p] {
				t.Errorf("%s: explored undiscovered cell %v", algorithm, p)
			}
		}
	}
}

func TestMaskConstrainsPath(t *testing.T) {
	g := grid.NewOpenGrid(5, 5, 0)
	start := grid.Position{X: 0, Y: 0}
	goal := grid.Position{X: 4, Y: 4}

	// Discover an L-shaped corridor: the bottom row plus the left column.
	mask := VisibilityMask{}
	for y := 0; y < 5; y++ {
		mask[grid.Position{X: 0, Y: y}] = true
	}
	for x := 0; x < 5; x++ {
		mask[grid.Position{X: x, Y: 4}] = true
	}

	for _, algorithm := range append([]Algorithm{AlgorithmBFS}, optimalAlgorithms...) {
		pf := newTestPathfinder()
		result, err := pf.Search(g, SearchQuery{Start: start, Goal: SingleGoal(goal), Algorithm: algorithm, Mask: mask})
		if err != nil {
			t.Fatalf("%s: search failed: %v", algorithm, err)
		}
		checkPath(t, g, result, start, goal)
		if result.Cost != 8 {
			t.Errorf("%s: expected corridor cost 8, got %v", algorithm, result.Cost)
		}
		for _, p := range result.Path {
			if p != start && !mask[p] {
				t.Errorf("%s: path crosses undiscovered cell %v", algorithm, p)
			}
		}
	}
}

func TestSearchTerminatesOnNodeBudget(t *testing.T) {
	g := grid.NewOpenGrid(9, 9, 0)
	// Seal off the goal so every search must exhaust its reachable set.
	for _, p := range []grid.Position{{X: 7, Y: 8}, {X: 8, Y: 7}, {X: 7, Y: 7}} {
		g.SetTerrain(p, grid.Lava)
	}

	budget := g.Width * g.Height * 4
	for _, algorithm := range append([]Algorithm{AlgorithmBFS}, optimalAlgorithms...) {
		pf := newTestPathfinder()
		result, err := pf.Search(g, SearchQuery{
			Start:     grid.Position{X: 0, Y: 0},
			Goal:      SingleGoal(grid.Position{X: 8, Y: 8}),
			Algorithm: algorithm,
		})
		if err != nil {
			t.Fatalf("%s: search failed: %v", algorithm, err)
		}
		if result.Found {
			t.Errorf("%s: sealed goal should be unreachable", algorithm)
		}
		if result.NodesExplored > budget {
			t.Errorf("%s: explored %d nodes, above the %d budget", algorithm, result.NodesExplored, budget)
		}
	}
}
