package service

import (
	"time"

	"github.com/mazequest/pathfinder-server/game/engine"
	"github.com/mazequest/pathfinder-server/game/grid"
)

// SessionInfo provides information about one exploration session
type SessionInfo struct {
	ID             string              `json:"id"`
	ScenarioName   string              `json:"scenario_name"`
	CreatedAt      time.Time           `json:"created_at"`
	LastAccessedAt time.Time           `json:"last_accessed_at"`
	State          *engine.EngineState `json:"state"`
	Scenario       *engine.Scenario    `json:"scenario"`
}

// FindPathRequest describes a single-goal pathfinding call. Start and
// Goal default to the agent's position and the maze goal.
type FindPathRequest struct {
	Algorithm string         `json:"algorithm"`
	Start     *grid.Position `json:"start,omitempty"`
	Goal      *grid.Position `json:"goal,omitempty"`

	// BaseAlgorithm and TurnsAhead apply to predictive queries only.
	BaseAlgorithm string `json:"base_algorithm,omitempty"`
	TurnsAhead    int    `json:"turns_ahead,omitempty"`
}

// OrderGoalsRequest describes a multi-goal ordering call. An empty goal
// list defaults to the scenario's unvisited checkpoints; Destination
// defaults to the maze goal.
type OrderGoalsRequest struct {
	Goals       []grid.Position `json:"goals,omitempty"`
	Destination *grid.Position  `json:"destination,omitempty"`
}

// NodeDetail is one explored node's scoring in a path result.
type NodeDetail struct {
	Pos grid.Position `json:"pos"`
	G   float64       `json:"g"`
	H   float64       `json:"h"`
	F   float64       `json:"f"`
}

// PathResult is the transport form of a search outcome.
type PathResult struct {
	Found         bool            `json:"found"`
	Path          []grid.Position `json:"path"`
	Cost          float64         `json:"cost,omitempty"`
	ForecastCost  float64         `json:"forecast_cost,omitempty"`
	NodesExplored int             `json:"nodes_explored"`
	Algorithm     string          `json:"algorithm"`
	Explored      []grid.Position `json:"explored,omitempty"`
	Frontier      []grid.Position `json:"frontier,omitempty"`
	NodeScores    []NodeDetail    `json:"node_scores,omitempty"`
	RenderedMap   string          `json:"rendered_map,omitempty"`
}

// TerrainCell is one cell's terrain in a flattened snapshot.
type TerrainCell struct {
	Pos     grid.Position `json:"pos"`
	Terrain grid.Terrain  `json:"terrain"`
	Cost    float64       `json:"cost"`
}

// ForecastTurn is one simulated future turn.
type ForecastTurn struct {
	Turn    int           `json:"turn"`
	Changes []TerrainCell `json:"changes"`
}

// ForecastResult lists the predicted terrain changes per future turn,
// relative to the current grid.
type ForecastResult struct {
	CurrentTurn int            `json:"current_turn"`
	Turns       []ForecastTurn `json:"turns"`
}

// MoveResult contains the result of a single move
type MoveResult struct {
	Success       bool                     `json:"success"`
	State         *engine.EngineState      `json:"state"`
	Message       string                   `json:"message"`
	PossibleMoves []string                 `json:"possible_moves"`
	LocalView     []engine.SurroundingCell `json:"local_view,omitempty"`
}

// BulkMoveResult contains the result of multiple moves
type BulkMoveResult struct {
	MovesExecuted  int                 `json:"moves_executed"`
	RequestedMoves int                 `json:"requested_moves"`
	Success        bool                `json:"success"`
	State          *engine.EngineState `json:"state"`
	StoppedOnMove  int                 `json:"stopped_on_move,omitempty"`
	StoppedReason  string              `json:"stopped_reason,omitempty"`
	Truncated      bool                `json:"truncated,omitempty"`
	Limit          int                 `json:"limit,omitempty"`

	StartPos  grid.Position `json:"start_pos"`
	EndPos    grid.Position `json:"end_pos"`
	CostDelta float64       `json:"cost_delta"`

	GoalReached   bool     `json:"goal_reached"`
	Message       string   `json:"message,omitempty"`
	PossibleMoves []string `json:"possible_moves,omitempty"`
}

// TurnResult describes the grid after advancing one or more turns.
type TurnResult struct {
	Turn           int                 `json:"turn"`
	TurnsAdvanced  int                 `json:"turns_advanced"`
	TerrainChanges []TerrainCell       `json:"terrain_changes,omitempty"`
	State          *engine.EngineState `json:"state"`
}

// HistoryOptions configures move history retrieval
type HistoryOptions struct {
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Order string `json:"order"` // "asc" or "desc"
}

// HistoryResponse contains paginated move history
type HistoryResponse struct {
	Moves       []engine.MoveRecord `json:"moves"`
	TotalMoves  int                 `json:"total_moves"`
	Page        int                 `json:"page"`
	PageSize    int                 `json:"page_size"`
	TotalPages  int                 `json:"total_pages"`
	HasNext     bool                `json:"has_next"`
	HasPrevious bool                `json:"has_previous"`
}

// ScenarioInfo provides information about one scenario file
type ScenarioInfo struct {
	Filename    string `json:"filename"`
	ScenarioID  string `json:"scenario_id"` // The identifier to use for session creation
	Name        string `json:"name"`        // Display name
	Description string `json:"description"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Difficulty  string `json:"difficulty"`
	FogRadius   int    `json:"fog_radius"`
}
