package engine

import (
	"fmt"
	"time"

	"github.com/mazequest/pathfinder-server/game/forecast"
	"github.com/mazequest/pathfinder-server/game/grid"
	"github.com/mazequest/pathfinder-server/game/pathfind"
)

// Engine drives one exploration of a maze: it owns the grid, the
// pathfinder with its result cache, and the agent's knowledge (the
// visibility mask, the terrain memory, and the recent-position window).
// Pathfinding queries made through the engine see exactly what the agent
// has discovered, never the full grid, unless the scenario plays without
// fog.
type Engine struct {
	scenario *Scenario
	grid     *grid.Grid
	finder   *pathfind.Pathfinder

	agent       grid.Position
	goalReached bool
	totalCost   float64

	mask    pathfind.VisibilityMask
	memory  pathfind.MemoryMap
	recent  *pathfind.RecentHistory
	visited map[grid.Position]bool

	moves   []MoveRecord
	message string
}

// NewEngine builds an engine for the scenario, generating the maze and
// revealing the area around the start.
func NewEngine(scenario *Scenario) (*Engine, error) {
	if err := ValidateScenario(scenario); err != nil {
		return nil, err
	}

	e := &Engine{
		scenario: scenario,
		finder: pathfind.NewPathfinderWithCacheSize(
			scenario.HeuristicType(), scenario.HeuristicScale(), scenario.CacheSize),
	}
	e.initState()
	return e, nil
}

// initState rebuilds the grid and the agent's knowledge from scratch.
func (e *Engine) initState() {
	e.grid = e.scenario.BuildGrid()
	e.agent = e.grid.Start()
	e.goalReached = false
	e.totalCost = 0
	e.memory = make(pathfind.MemoryMap)
	e.recent = pathfind.NewRecentHistory(e.scenario.HistorySize)
	e.visited = make(map[grid.Position]bool)
	e.moves = nil
	e.message = fmt.Sprintf("Exploring %s, find the goal at (%d,%d)",
		e.scenario.Name, e.grid.GoalPos().X, e.grid.GoalPos().Y)

	if e.scenario.FogRadius > 0 {
		e.mask = make(pathfind.VisibilityMask)
		e.reveal(e.agent)
	} else {
		e.mask = nil
	}
	e.finder.ClearCache()
}

// Scenario returns the scenario the engine was built from.
func (e *Engine) Scenario() *Scenario {
	return e.scenario
}

// Grid returns the live grid.
func (e *Engine) Grid() *grid.Grid {
	return e.grid
}

// Pathfinder returns the engine's query facade.
func (e *Engine) Pathfinder() *pathfind.Pathfinder {
	return e.finder
}

// AgentPosition returns the agent's current position.
func (e *Engine) AgentPosition() grid.Position {
	return e.agent
}

// Turn returns the grid's mutation turn counter.
func (e *Engine) Turn() int {
	return e.grid.Turn()
}

// GoalReached reports whether the agent has stepped on the goal.
func (e *Engine) GoalReached() bool {
	return e.goalReached
}

// TotalCost returns the accumulated terrain cost of every successful
// move.
func (e *Engine) TotalCost() float64 {
	return e.totalCost
}

// Search runs a query through the engine, applying the agent's fog
// knowledge. Under fog every algorithm is restricted to the visibility
// mask; the fog-of-war algorithm additionally receives the agent's
// terrain memory and recent-position window. A zero-value start defaults
// to the agent's position.
func (e *Engine) Search(q pathfind.SearchQuery) (*pathfind.SearchResult, error) {
	if (q.Start == grid.Position{}) {
		q.Start = e.agent
	}
	if e.mask != nil && q.Mask == nil {
		q.Mask = e.mask
	}
	if q.Algorithm == pathfind.AlgorithmFogOfWar {
		if q.Memory == nil {
			q.Memory = e.memory
		}
		if q.Recent == nil {
			q.Recent = e.recent
		}
		if q.RevisitPenalty == 0 {
			q.RevisitPenalty = e.scenario.RevisitPenalty
		}
	}
	return e.finder.Search(e.grid, q)
}

// Forecast simulates the next turnsAhead turns of terrain mutation
// without touching the live grid.
func (e *Engine) Forecast(turnsAhead int) ([]forecast.TerrainSnapshot, error) {
	return forecast.Future(e.grid, turnsAhead)
}

// AdvanceTurn mutates the grid one turn and invalidates every cached
// search result; under fog the agent's surroundings are re-observed so
// its memory reflects the new terrain.
func (e *Engine) AdvanceTurn() int {
	e.grid.AdvanceTurn()
	e.finder.ClearCache()
	if e.mask != nil {
		e.reveal(e.agent)
	}
	return e.grid.Turn()
}

// State snapshots the engine for persistence or transport.
func (e *Engine) State() *EngineState {
	state := &EngineState{
		ScenarioName: e.scenario.Name,
		Turn:         e.grid.Turn(),
		AgentPos:     e.agent,
		GoalReached:  e.goalReached,
		TotalCost:    e.totalCost,
		Recent:       e.recent.Snapshot(),
		MoveHistory:  append([]MoveRecord(nil), e.moves...),
		TotalMoves:   len(e.moves),
		Message:      e.message,
	}

	if e.mask != nil {
		discovered := make(map[grid.Position]bool, len(e.mask))
		for p, seen := range e.mask {
			if seen {
				discovered[p] = true
			}
		}
		state.Discovered = sortedPositionSet(discovered)
	}

	if len(e.memory) > 0 {
		keys := make(map[grid.Position]bool, len(e.memory))
		for p := range e.memory {
			keys[p] = true
		}
		for _, p := range sortedPositionSet(keys) {
			state.Memory = append(state.Memory, MemoryEntry{Pos: p, Terrain: e.memory[p]})
		}
	}

	if len(e.visited) > 0 {
		state.VisitedCheckpoints = sortedPositionSet(e.visited)
	}

	return state
}

// SetState restores a snapshot. The grid is rebuilt from the scenario
// and advanced to the recorded turn, which replays the identical seeded
// mutation sequence the snapshot was taken under.
func (e *Engine) SetState(state *EngineState) error {
	if state == nil {
		return fmt.Errorf("state cannot be nil")
	}
	if state.ScenarioName != e.scenario.Name {
		return fmt.Errorf("state belongs to scenario %q, engine runs %q", state.ScenarioName, e.scenario.Name)
	}

	e.initState()
	for i := 0; i < state.Turn; i++ {
		e.grid.AdvanceTurn()
	}
	e.finder.ClearCache()

	e.agent = state.AgentPos
	e.goalReached = state.GoalReached
	e.totalCost = state.TotalCost
	e.moves = append([]MoveRecord(nil), state.MoveHistory...)
	e.message = state.Message

	if e.mask != nil {
		for _, p := range state.Discovered {
			e.mask[p] = true
		}
	}
	for _, entry := range state.Memory {
		e.memory[entry.Pos] = entry.Terrain
	}
	for _, p := range state.Recent {
		e.recent.Push(p)
	}
	for _, p := range state.VisitedCheckpoints {
		e.visited[p] = true
	}

	return nil
}

// Reset restarts the exploration from the scenario, preserving the
// cumulative move history.
func (e *Engine) Reset() *EngineState {
	prevMoves := e.moves
	e.initState()
	e.moves = prevMoves
	return e.State()
}

// MoveHistory returns every recorded move.
func (e *Engine) MoveHistory() []MoveRecord {
	return e.moves
}

// LastMove returns the most recent move, or nil before the first one.
func (e *Engine) LastMove() *MoveRecord {
	if len(e.moves) == 0 {
		return nil
	}
	return &e.moves[len(e.moves)-1]
}

// VisitedCheckpoints returns the checkpoints the agent has stepped on.
func (e *Engine) VisitedCheckpoints() []grid.Position {
	return sortedPositionSet(e.visited)
}

// RemainingCheckpoints returns the checkpoints not yet visited.
func (e *Engine) RemainingCheckpoints() []grid.Position {
	remaining := make(map[grid.Position]bool)
	for _, cp := range e.grid.Checkpoints() {
		if !e.visited[cp] {
			remaining[cp] = true
		}
	}
	return sortedPositionSet(remaining)
}

// recordMove appends one history entry stamped with the current time.
func (e *Engine) recordMove(action string, from, to grid.Position, cost float64, success bool) {
	e.moves = append(e.moves, MoveRecord{
		Action:       action,
		FromPosition: from,
		ToPosition:   to,
		Terrain:      e.grid.TerrainAt(to),
		Cost:         cost,
		Timestamp:    time.Now().Unix(),
		Success:      success,
		MoveNumber:   len(e.moves) + 1,
	})
}
