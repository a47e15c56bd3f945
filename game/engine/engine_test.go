package engine

import (
	"strings"
	"testing"

	"github.com/mazequest/pathfinder-server/game/grid"
	"github.com/mazequest/pathfinder-server/game/pathfind"
)

// arenaScenario returns a small wall-free scenario: start at (0,0), goal
// at (4,4), every cell grass.
func arenaScenario() *Scenario {
	return &Scenario{
		Name:        "arena",
		Description: "open test arena",
		Width:       5,
		Height:      5,
		OpenArena:   true,
		Difficulty:  "medium",
		Heuristic:   "manhattan",
	}
}

func mazeScenario() *Scenario {
	return &Scenario{
		Name:         "maze",
		Description:  "carved test maze",
		Width:        11,
		Height:       11,
		MazeSeed:     42,
		ObstacleSeed: 7,
		Difficulty:   "medium",
		Heuristic:    "manhattan",
	}
}

func newTestEngine(t *testing.T, s *Scenario) *Engine {
	t.Helper()
	e, err := NewEngine(s)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return e
}

func TestNewEngine_InvalidScenario(t *testing.T) {
	s := arenaScenario()
	s.Difficulty = "nightmare"
	if _, err := NewEngine(s); err == nil {
		t.Error("expected error for invalid difficulty")
	}
}

func TestNewEngine_InitialState(t *testing.T) {
	e := newTestEngine(t, arenaScenario())

	if e.AgentPosition() != e.Grid().Start() {
		t.Errorf("agent should start at %v, got %v", e.Grid().Start(), e.AgentPosition())
	}
	if e.Turn() != 0 {
		t.Errorf("expected turn 0, got %d", e.Turn())
	}
	if e.GoalReached() {
		t.Error("goal should not be reached at start")
	}
	if e.TotalCost() != 0 {
		t.Errorf("expected zero cost, got %v", e.TotalCost())
	}
	if len(e.MoveHistory()) != 0 {
		t.Errorf("expected empty history, got %d moves", len(e.MoveHistory()))
	}
}

func TestMove_Success(t *testing.T) {
	e := newTestEngine(t, arenaScenario())

	if !e.Move(DirRight) {
		t.Fatal("expected move to succeed")
	}

	expected := grid.Position{X: 1, Y: 0}
	if e.AgentPosition() != expected {
		t.Errorf("expected agent at %v, got %v", expected, e.AgentPosition())
	}
	if e.TotalCost() != 1.0 {
		t.Errorf("expected cost 1.0 after one grass step, got %v", e.TotalCost())
	}

	last := e.LastMove()
	if last == nil {
		t.Fatal("expected a recorded move")
	}
	if !last.Success || last.Action != DirRight {
		t.Errorf("unexpected move record: %+v", last)
	}
	if last.MoveNumber != 1 {
		t.Errorf("expected move number 1, got %d", last.MoveNumber)
	}
}

func TestMove_OutOfBounds(t *testing.T) {
	e := newTestEngine(t, arenaScenario())

	if e.Move(DirUp) {
		t.Error("expected move off the grid to fail")
	}
	if e.AgentPosition() != (grid.Position{X: 0, Y: 0}) {
		t.Errorf("agent should not have moved, got %v", e.AgentPosition())
	}
	if e.TotalCost() != 0 {
		t.Errorf("blocked move should cost nothing, got %v", e.TotalCost())
	}

	last := e.LastMove()
	if last == nil || last.Success {
		t.Error("blocked move should still be recorded as a failure")
	}
}

func TestMove_InvalidDirection(t *testing.T) {
	e := newTestEngine(t, arenaScenario())
	if e.Move("northwest") {
		t.Error("expected unknown direction to fail")
	}
	if len(e.MoveHistory()) != 0 {
		t.Error("unknown direction should not be recorded")
	}
}

func TestMove_ReachesGoal(t *testing.T) {
	e := newTestEngine(t, arenaScenario())

	for i := 0; i < 4; i++ {
		if !e.Move(DirRight) {
			t.Fatalf("move %d right failed", i)
		}
	}
	for i := 0; i < 4; i++ {
		if !e.Move(DirDown) {
			t.Fatalf("move %d down failed", i)
		}
	}

	if !e.GoalReached() {
		t.Error("expected goal reached at (4,4)")
	}
	if e.TotalCost() != 8.0 {
		t.Errorf("expected total cost 8.0, got %v", e.TotalCost())
	}
	if !strings.Contains(e.State().Message, "Goal reached") {
		t.Errorf("expected goal message, got %q", e.State().Message)
	}
}

func TestPossibleMoves_Corner(t *testing.T) {
	e := newTestEngine(t, arenaScenario())

	moves := e.PossibleMoves()
	if len(moves) != 2 {
		t.Fatalf("expected 2 possible moves at the corner, got %v", moves)
	}
	if moves[0] != DirDown || moves[1] != DirRight {
		t.Errorf("expected [down right], got %v", moves)
	}
}

func TestBulkMove_StopsOnFailure(t *testing.T) {
	e := newTestEngine(t, arenaScenario())

	results := e.BulkMove([]string{DirRight, DirUp, DirRight})
	if len(results) != 2 {
		t.Fatalf("expected execution to stop after the failed move, got %v", results)
	}
	if !results[0] || results[1] {
		t.Errorf("expected [true false], got %v", results)
	}
}

func TestBulkMove_StopsOnGoal(t *testing.T) {
	e := newTestEngine(t, arenaScenario())

	moves := []string{
		DirRight, DirRight, DirRight, DirRight,
		DirDown, DirDown, DirDown, DirDown,
		DirDown, DirDown,
	}
	results := e.BulkMove(moves)
	if len(results) != 8 {
		t.Fatalf("expected execution to stop at the goal after 8 moves, got %d", len(results))
	}
	if !e.GoalReached() {
		t.Error("expected goal reached")
	}
}

func TestFollowPath(t *testing.T) {
	e := newTestEngine(t, arenaScenario())

	path := []grid.Position{
		{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1},
	}
	steps, err := e.FollowPath(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if steps != 2 {
		t.Errorf("expected 2 steps, got %d", steps)
	}
	if e.AgentPosition() != (grid.Position{X: 1, Y: 1}) {
		t.Errorf("expected agent at (1,1), got %v", e.AgentPosition())
	}
}

func TestFollowPath_WrongStart(t *testing.T) {
	e := newTestEngine(t, arenaScenario())

	path := []grid.Position{{X: 2, Y: 2}, {X: 2, Y: 3}}
	if _, err := e.FollowPath(path); err == nil {
		t.Error("expected error for path not starting at the agent")
	}
}

func TestSearch_DefaultsToAgentPosition(t *testing.T) {
	e := newTestEngine(t, arenaScenario())

	res, err := e.Search(pathfind.SearchQuery{
		Goal:      pathfind.SingleGoal(e.Grid().GoalPos()),
		Algorithm: pathfind.AlgorithmAStar,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Found {
		t.Fatal("expected a path in the open arena")
	}
	if res.Path[0] != e.AgentPosition() {
		t.Errorf("path should start at the agent, got %v", res.Path[0])
	}
	if res.Cost != 8.0 {
		t.Errorf("expected cost 8.0 across the arena, got %v", res.Cost)
	}
}

func TestAdvanceTurn(t *testing.T) {
	e := newTestEngine(t, mazeScenario())

	turn := e.AdvanceTurn()
	if turn != 1 {
		t.Errorf("expected turn 1, got %d", turn)
	}
	if e.Pathfinder().CacheLen() != 0 {
		t.Error("advancing the turn should clear the result cache")
	}
}

func TestFog_RevealsAroundAgent(t *testing.T) {
	s := arenaScenario()
	s.FogRadius = 2
	e := newTestEngine(t, s)

	state := e.State()
	if len(state.Discovered) == 0 {
		t.Fatal("expected discovered cells under fog")
	}

	found := false
	for _, p := range state.Discovered {
		if p == e.AgentPosition() {
			found = true
		}
	}
	if !found {
		t.Error("agent's own cell should be discovered")
	}

	// (4,4) is Manhattan distance 8 from the start, well outside radius 2.
	for _, p := range state.Discovered {
		if p == (grid.Position{X: 4, Y: 4}) {
			t.Error("far corner should not be discovered yet")
		}
	}

	if progress := e.ExplorationProgress(); progress <= 0 || progress >= 1 {
		t.Errorf("expected partial exploration, got %v", progress)
	}
}

func TestFog_MemoryRecordsTerrain(t *testing.T) {
	s := arenaScenario()
	s.FogRadius = 1
	e := newTestEngine(t, s)

	state := e.State()
	if len(state.Memory) == 0 {
		t.Fatal("expected terrain memory under fog")
	}
	for _, entry := range state.Memory {
		if entry.Terrain != grid.Grass {
			t.Errorf("arena memory should be all grass, got %s at %v", entry.Terrain, entry.Pos)
		}
	}
}

func TestNoFog_FullVisibility(t *testing.T) {
	e := newTestEngine(t, arenaScenario())

	state := e.State()
	if len(state.Discovered) != 0 {
		t.Error("full-visibility sessions should not track discovered cells")
	}
	if e.ExplorationProgress() != 1 {
		t.Errorf("expected progress 1 without fog, got %v", e.ExplorationProgress())
	}
}

func TestState_RoundTrip(t *testing.T) {
	e := newTestEngine(t, arenaScenario())
	e.Move(DirRight)
	e.Move(DirDown)

	snapshot := e.State()

	restored := newTestEngine(t, arenaScenario())
	if err := restored.SetState(snapshot); err != nil {
		t.Fatalf("SetState: %v", err)
	}

	if restored.AgentPosition() != e.AgentPosition() {
		t.Errorf("expected agent at %v, got %v", e.AgentPosition(), restored.AgentPosition())
	}
	if restored.TotalCost() != e.TotalCost() {
		t.Errorf("expected cost %v, got %v", e.TotalCost(), restored.TotalCost())
	}
	if len(restored.MoveHistory()) != 2 {
		t.Errorf("expected 2 moves in restored history, got %d", len(restored.MoveHistory()))
	}
}

func TestSetState_WrongScenario(t *testing.T) {
	e := newTestEngine(t, arenaScenario())
	state := e.State()
	state.ScenarioName = "someone-elses-maze"

	if err := e.SetState(state); err == nil {
		t.Error("expected error restoring a foreign snapshot")
	}
}

func TestSetState_Nil(t *testing.T) {
	e := newTestEngine(t, arenaScenario())
	if err := e.SetState(nil); err == nil {
		t.Error("expected error for nil state")
	}
}

func TestReset_PreservesHistory(t *testing.T) {
	e := newTestEngine(t, arenaScenario())
	e.Move(DirRight)
	e.Move(DirRight)

	state := e.Reset()

	if state.AgentPos != e.Grid().Start() {
		t.Errorf("reset should return the agent to the start, got %v", state.AgentPos)
	}
	if state.TotalCost != 0 {
		t.Errorf("reset should zero the cost, got %v", state.TotalCost)
	}
	if len(state.MoveHistory) != 2 {
		t.Errorf("reset should keep the move history, got %d entries", len(state.MoveHistory))
	}
}

func TestRemainingCheckpoints(t *testing.T) {
	s := mazeScenario()
	// Odd cells always survive carving.
	s.Checkpoints = []grid.Position{{X: 3, Y: 3}, {X: 7, Y: 7}}
	e := newTestEngine(t, s)

	remaining := e.RemainingCheckpoints()
	if len(remaining) != 2 {
		t.Fatalf("expected 2 remaining checkpoints, got %v", remaining)
	}
	if len(e.VisitedCheckpoints()) != 0 {
		t.Error("no checkpoints should be visited initially")
	}

	_, dist, ok := e.NearestCheckpoint()
	if !ok {
		t.Fatal("expected a nearest checkpoint")
	}
	if dist != 4 {
		t.Errorf("expected distance 4 from (1,1) to (3,3), got %d", dist)
	}
}

func TestRenderMap(t *testing.T) {
	e := newTestEngine(t, arenaScenario())

	rendered := e.RenderMap(nil)
	lines := strings.Split(rendered, "\n")
	if len(lines) != 5 {
		t.Fatalf("expected 5 rows, got %d", len(lines))
	}
	if lines[0][0] != '@' {
		t.Errorf("expected agent marker at the start, got %q", lines[0][0])
	}
}

func TestRenderMap_Overlay(t *testing.T) {
	e := newTestEngine(t, arenaScenario())

	overlay := []grid.Position{{X: 1, Y: 0}, {X: 2, Y: 0}}
	rendered := e.RenderMap(overlay)
	if !strings.Contains(rendered, "**") {
		t.Errorf("expected overlay markers, got:\n%s", rendered)
	}
}

func TestRenderMap_Fog(t *testing.T) {
	s := arenaScenario()
	s.FogRadius = 1
	e := newTestEngine(t, s)

	if !strings.Contains(e.RenderMap(nil), "?") {
		t.Error("undiscovered cells should render as '?'")
	}
}

func TestLocalView(t *testing.T) {
	e := newTestEngine(t, arenaScenario())

	view := e.LocalView()
	// Corner position: only (1,0), (0,1), and (1,1) are in bounds.
	if len(view) != 3 {
		t.Fatalf("expected 3 surrounding cells at the corner, got %d", len(view))
	}
	for _, cell := range view {
		if !cell.Open {
			t.Errorf("arena cell (%d,%d) should be open", cell.X, cell.Y)
		}
	}
}
