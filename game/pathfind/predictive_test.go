package pathfind

import (
	"errors"
	"testing"

	"github.com/mazequest/pathfinder-server/game/grid"
)

func TestPredictiveCarriesBasePath(t *testing.T) {
	pf := newTestPathfinder()
	g := grid.NewOpenGrid(5, 5, 0)
	start := grid.Position{X: 0, Y: 0}
	goal := grid.Position{X: 4, Y: 4}

	plain, err := pf.Search(g, SearchQuery{Start: start, Goal: SingleGoal(goal), Algorithm: AlgorithmAStar})
	if err != nil {
		t.Fatalf("astar: search failed: %v", err)
	}
	predictive, err := pf.Search(g, SearchQuery{Start: start, Goal: SingleGoal(goal), Algorithm: AlgorithmPredictive})
	if err != nil {
		t.Fatalf("predictive: search failed: %v", err)
	}

	if !predictive.Found {
		t.Fatal("Expected predictive search to find the base path")
	}
	if len(predictive.Path) != len(plain.Path) {
		t.Errorf("Predictive path length %d differs from base %d", len(predictive.Path), len(plain.Path))
	}
	if predictive.Cost != plain.Cost {
		t.Errorf("Predictive current-terrain cost %v differs from base %v", predictive.Cost, plain.Cost)
	}
	if predictive.ForecastCost <= 0 {
		t.Errorf("Expected positive forecast-adjusted cost, got %v", predictive.ForecastCost)
	}
}

func TestPredictiveDeterministic(t *testing.T) {
	g := grid.Generate(grid.GenerateOptions{Width: 15, Height: 15, MazeSeed: 4, ObstacleSeed: 4})
	q := SearchQuery{
		Start:     g.Start(),
		Goal:      SingleGoal(g.GoalPos()),
		Algorithm: AlgorithmPredictive,
	}

	first, err := newTestPathfinder().Search(g, q)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	second, err := newTestPathfinder().Search(g, q)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}

	if first.ForecastCost != second.ForecastCost {
		t.Errorf("Forecast cost diverged between identical queries: %v vs %v", first.ForecastCost, second.ForecastCost)
	}
}

func TestPredictiveDoesNotAdvanceGrid(t *testing.T) {
	pf := newTestPathfinder()
	g := grid.Generate(grid.GenerateOptions{Width: 15, Height: 15, MazeSeed: 9, ObstacleSeed: 9})
	turn, draws := g.Turn(), g.ObstacleDraws()

	_, err := pf.Search(g, SearchQuery{
		Start:      g.Start(),
		Goal:       SingleGoal(g.GoalPos()),
		Algorithm:  AlgorithmPredictive,
		TurnsAhead: 5,
	})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}

	if g.Turn() != turn || g.ObstacleDraws() != draws {
		t.Error("Predictive query should never mutate the live grid")
	}
}

func TestPredictiveHonorsBaseAlgorithm(t *testing.T) {
	pf := newTestPathfinder()
	g := grid.NewOpenGrid(5, 5, 0)
	g.SetTerrain(grid.Position{X: 2, Y: 2}, grid.Mud)

	result, err := pf.Search(g, SearchQuery{
		Start:         grid.Position{X: 0, Y: 0},
		Goal:          SingleGoal(grid.Position{X: 4, Y: 4}),
		Algorithm:     AlgorithmPredictive,
		BaseAlgorithm: AlgorithmDijkstra,
	})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if !result.Found {
		t.Fatal("Expected a path")
	}
	for _, p := range result.Path {
		if (p == grid.Position{X: 2, Y: 2}) {
			t.Error("Dijkstra base should route around the mud cell")
		}
	}
}

func TestPredictiveRejectsCompositeBase(t *testing.T) {
	pf := newTestPathfinder()
	g := grid.NewOpenGrid(5, 5, 0)

	_, err := pf.Search(g, SearchQuery{
		Start:         grid.Position{X: 0, Y: 0},
		Goal:          SingleGoal(grid.Position{X: 4, Y: 4}),
		Algorithm:     AlgorithmPredictive,
		BaseAlgorithm: AlgorithmMultiGoal,
	})
	if !errors.Is(err, ErrUnknownAlgorithm) {
		t.Errorf("Expected ErrUnknownAlgorithm for a composite base, got %v", err)
	}
}

func TestPredictiveUnreachableGoal(t *testing.T) {
	pf := newTestPathfinder()
	g := grid.NewOpenGrid(5, 5, 0)
	g.SetTerrain(grid.Position{X: 3, Y: 4}, grid.Lava)
	g.SetTerrain(grid.Position{X: 4, Y: 3}, grid.Lava)

	result, err := pf.Search(g, SearchQuery{
		Start:     grid.Position{X: 0, Y: 0},
		Goal:      SingleGoal(grid.Position{X: 4, Y: 4}),
		Algorithm: AlgorithmPredictive,
	})
	if err != nil {
		t.Fatalf("No-path outcome should not be an error, got %v", err)
	}
	if result.Found {
		t.Error("Expected Found=false when the base search finds no path")
	}
	if result.ForecastCost != 0 {
		t.Errorf("Not-found result should carry no forecast cost, got %v", result.ForecastCost)
	}
}
