package grid

import (
	"math"
	"testing"
)

func TestGenerateDimensions(t *testing.T) {
	tests := []struct {
		name           string
		width, height  int
		wantW, wantH   int
	}{
		{"odd dimensions kept", 21, 15, 21, 15},
		{"even dimensions rounded down", 20, 16, 19, 15},
		{"below minimum clamped", 2, 3, 5, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := Generate(GenerateOptions{Width: tt.width, Height: tt.height, MazeSeed: 7})
			if g.Width != tt.wantW || g.Height != tt.wantH {
				t.Errorf("Expected %dx%d, got %dx%d", tt.wantW, tt.wantH, g.Width, g.Height)
			}
		})
	}
}

func TestGenerateConnectivity(t *testing.T) {
	g := Generate(GenerateOptions{Width: 21, Height: 21, MazeSeed: 42})

	if !g.IsOpen(g.Start()) {
		t.Fatal("Start position should be open")
	}
	if !g.IsOpen(g.GoalPos()) {
		t.Fatal("Goal position should be open")
	}

	// Flood fill from start; a perfect maze connects every carved cell.
	visited := map[Position]bool{g.Start(): true}
	queue := []Position{g.Start()}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, n := range g.Neighbors(current) {
			if !visited[n] {
				visited[n] = true
				queue = append(queue, n)
			}
		}
	}

	if !visited[g.GoalPos()] {
		t.Error("Goal should be reachable from start in a perfect maze")
	}
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			p := Position{X: x, Y: y}
			if g.IsOpen(p) && !visited[p] {
				t.Errorf("Open cell (%d,%d) unreachable from start", x, y)
			}
		}
	}
}

func TestGenerateDeterministic(t *testing.T) {
	a := Generate(GenerateOptions{Width: 15, Height: 15, MazeSeed: 99, ObstacleSeed: 5})
	b := Generate(GenerateOptions{Width: 15, Height: 15, MazeSeed: 99, ObstacleSeed: 5})

	for y := 0; y < a.Height; y++ {
		for x := 0; x < a.Width; x++ {
			p := Position{X: x, Y: y}
			if a.IsOpen(p) != b.IsOpen(p) {
				t.Fatalf("Cell (%d,%d) open state differs between identical seeds", x, y)
			}
			if a.TerrainAt(p) != b.TerrainAt(p) {
				t.Fatalf("Cell (%d,%d) terrain differs between identical seeds", x, y)
			}
		}
	}
}

func TestGenerateCustomTerrainWeights(t *testing.T) {
	g := Generate(GenerateOptions{
		Width: 21, Height: 21, MazeSeed: 42,
		TerrainWeights: map[Terrain]float64{Grass: 0.5, Quicksand: 0.5},
	})

	counts := make(map[Terrain]int)
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			p := Position{X: x, Y: y}
			if g.IsOpen(p) {
				counts[g.TerrainAt(p)]++
			}
		}
	}

	if counts[Quicksand] == 0 {
		t.Error("Expected quicksand cells with weight 0.5, got none")
	}
	if counts[Grass] == 0 {
		t.Error("Expected grass cells with weight 0.5, got none")
	}
	if counts[Water] != 0 || counts[Mud] != 0 {
		t.Errorf("Expected only weighted terrains, got %d water and %d mud", counts[Water], counts[Mud])
	}
}

func TestGenerateSingleTerrainWeight(t *testing.T) {
	g := Generate(GenerateOptions{
		Width: 11, Height: 11, MazeSeed: 7,
		TerrainWeights: map[Terrain]float64{Lava: 1.0},
	})

	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			p := Position{X: x, Y: y}
			if !g.IsOpen(p) || p == g.Start() || p == g.GoalPos() {
				continue
			}
			if got := g.TerrainAt(p); got != Lava {
				t.Fatalf("Cell (%d,%d): expected lava, got %s", x, y, got)
			}
		}
	}
}

func TestCostAndPassability(t *testing.T) {
	g := NewOpenGrid(5, 5, 0)

	if got := g.Cost(Position{X: 2, Y: 2}); got != 1 {
		t.Errorf("Expected grass cost 1, got %v", got)
	}
	if got := g.Cost(Position{X: -1, Y: 0}); !math.IsInf(got, 1) {
		t.Errorf("Expected out-of-bounds cost +Inf, got %v", got)
	}

	g.SetTerrain(Position{X: 1, Y: 1}, Lava)
	if g.IsPassable(Position{X: 1, Y: 1}) {
		t.Error("Lava cell should be impassable")
	}
	if !g.IsOpen(Position{X: 1, Y: 1}) {
		t.Error("Lava cell should remain open (impassable through cost, not carving)")
	}

	g.SetTerrain(Position{X: 3, Y: 3}, Mud)
	if got := g.Cost(Position{X: 3, Y: 3}); got != 5 {
		t.Errorf("Expected mud cost 5, got %v", got)
	}
}

func TestNeighborsOrderAndBounds(t *testing.T) {
	g := NewOpenGrid(3, 3, 0)

	center := g.Neighbors(Position{X: 1, Y: 1})
	want := []Position{{X: 1, Y: 0}, {X: 2, Y: 1}, {X: 1, Y: 2}, {X: 0, Y: 1}}
	if len(center) != 4 {
		t.Fatalf("Expected 4 neighbors, got %d", len(center))
	}
	for i, p := range want {
		if center[i] != p {
			t.Errorf("Neighbor %d: expected %v, got %v", i, p, center[i])
		}
	}

	corner := g.Neighbors(Position{X: 0, Y: 0})
	if len(corner) != 2 {
		t.Errorf("Expected 2 corner neighbors, got %d", len(corner))
	}
}

func TestManhattanDistance(t *testing.T) {
	if d := ManhattanDistance(Position{X: 0, Y: 0}, Position{X: 3, Y: 4}); d != 7 {
		t.Errorf("Expected distance 7, got %d", d)
	}
	if d := ManhattanDistance(Position{X: 3, Y: 4}, Position{X: 0, Y: 0}); d != 7 {
		t.Errorf("Distance should be symmetric, got %d", d)
	}
}

func TestPositionLess(t *testing.T) {
	if !(Position{X: 5, Y: 0}).Less(Position{X: 0, Y: 1}) {
		t.Error("Ordering should compare y before x")
	}
	if !(Position{X: 0, Y: 1}).Less(Position{X: 1, Y: 1}) {
		t.Error("Ordering should fall back to x on equal y")
	}
}

func TestObstacleRandReplay(t *testing.T) {
	live := NewObstacleRand(1234)
	for i := 0; i < 17; i++ {
		live.Float64()
		live.Intn(10)
	}
	draws := live.Draws()

	replayed := ReplayObstacleRand(1234, draws)
	for i := 0; i < 50; i++ {
		if a, b := live.Float64(), replayed.Float64(); a != b {
			t.Fatalf("Draw %d diverged: live %v, replayed %v", i, a, b)
		}
	}
}

func TestAdvanceTurnDeterministic(t *testing.T) {
	opts := GenerateOptions{Width: 15, Height: 15, MazeSeed: 3, ObstacleSeed: 77}
	a := Generate(opts)
	b := Generate(opts)

	for turn := 0; turn < 5; turn++ {
		a.AdvanceTurn()
		b.AdvanceTurn()
	}

	if a.Turn() != 5 || b.Turn() != 5 {
		t.Fatalf("Expected turn 5, got %d and %d", a.Turn(), b.Turn())
	}
	if a.ObstacleDraws() != b.ObstacleDraws() {
		t.Fatalf("Draw counts diverged: %d vs %d", a.ObstacleDraws(), b.ObstacleDraws())
	}
	for y := 0; y < a.Height; y++ {
		for x := 0; x < a.Width; x++ {
			p := Position{X: x, Y: y}
			if a.TerrainAt(p) != b.TerrainAt(p) {
				t.Fatalf("Terrain at (%d,%d) diverged after identical turns", x, y)
			}
		}
	}
}

func TestAdvanceTurnProtectsLandmarks(t *testing.T) {
	g := Generate(GenerateOptions{
		Width: 15, Height: 15, MazeSeed: 8, ObstacleSeed: 8,
		Checkpoints: []Position{{X: 3, Y: 1}},
	})

	for turn := 0; turn < 20; turn++ {
		g.AdvanceTurn()
	}

	if g.TerrainAt(g.Start()) != Start {
		t.Error("Start terrain should never mutate")
	}
	if g.TerrainAt(g.GoalPos()) != Goal {
		t.Error("Goal terrain should never mutate")
	}
	for _, cp := range g.Checkpoints() {
		if g.TerrainAt(cp) != Checkpoint {
			t.Errorf("Checkpoint (%d,%d) terrain should never mutate", cp.X, cp.Y)
		}
	}
}

func TestCloneIndependence(t *testing.T) {
	g := Generate(GenerateOptions{Width: 11, Height: 11, MazeSeed: 6, ObstacleSeed: 6})
	clone := g.Clone()

	g.AdvanceTurn()
	g.AdvanceTurn()

	if clone.Turn() != 0 {
		t.Errorf("Clone turn should stay 0, got %d", clone.Turn())
	}

	fresh := Generate(GenerateOptions{Width: 11, Height: 11, MazeSeed: 6, ObstacleSeed: 6})
	for y := 0; y < clone.Height; y++ {
		for x := 0; x < clone.Width; x++ {
			p := Position{X: x, Y: y}
			if clone.TerrainAt(p) != fresh.TerrainAt(p) {
				t.Fatalf("Clone terrain at (%d,%d) changed after mutating the original", x, y)
			}
		}
	}
}

func TestTerrainSnapshotIsCopy(t *testing.T) {
	g := NewOpenGrid(5, 5, 0)
	snapshot := g.TerrainSnapshot()

	g.SetTerrain(Position{X: 2, Y: 2}, Water)

	if snapshot[Position{X: 2, Y: 2}] != Grass {
		t.Error("Snapshot should not observe later mutations")
	}
}
