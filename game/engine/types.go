package engine

import (
	"github.com/mazequest/pathfinder-server/game/grid"
)

// Movement directions accepted by Move and CanMove.
const (
	DirUp    = "up"
	DirDown  = "down"
	DirLeft  = "left"
	DirRight = "right"
)

// Limits.
const (
	MaxBulkMoves        = 50
	WebSocketBufferSize = 256
)

// MemoryEntry is one remembered cell in a serialized engine state.
type MemoryEntry struct {
	Pos     grid.Position `json:"pos"`
	Terrain grid.Terrain  `json:"terrain"`
}

// MoveRecord is a single move in the agent's history.
type MoveRecord struct {
	Action       string        `json:"action"`
	FromPosition grid.Position `json:"from_position"`
	ToPosition   grid.Position `json:"to_position"`
	Terrain      grid.Terrain  `json:"terrain"`
	Cost         float64       `json:"cost"`
	Timestamp    int64         `json:"timestamp"`
	Success      bool          `json:"success"`
	MoveNumber   int           `json:"move_number"`
}

// SurroundingCell is one visible cell near the agent, with its absolute
// position.
type SurroundingCell struct {
	X       int          `json:"x"`
	Y       int          `json:"y"`
	Terrain grid.Terrain `json:"terrain"`
	Open    bool         `json:"open"`
}

// EngineState is the complete serializable state of one exploration. A
// state plus its scenario is enough to reconstruct the engine exactly:
// the grid is rebuilt from the scenario seeds and replayed to the
// recorded turn, so the seeded mutation sequence lines up with what the
// live engine saw.
type EngineState struct {
	ScenarioName string        `json:"scenario_name"`
	Turn         int           `json:"turn"`
	AgentPos     grid.Position `json:"agent_pos"`
	GoalReached  bool          `json:"goal_reached"`
	TotalCost    float64       `json:"total_cost"`

	Discovered         []grid.Position `json:"discovered,omitempty"`
	Memory             []MemoryEntry   `json:"memory,omitempty"`
	Recent             []grid.Position `json:"recent,omitempty"`
	VisitedCheckpoints []grid.Position `json:"visited_checkpoints,omitempty"`

	MoveHistory []MoveRecord `json:"move_history"`
	TotalMoves  int          `json:"total_moves"`

	Message string `json:"message,omitempty"`
}
