package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/mazequest/pathfinder-server/game/engine"
	"github.com/mazequest/pathfinder-server/game/grid"
	"github.com/mazequest/pathfinder-server/game/pathfind"
)

// pathServiceImpl implements the PathService interface
type pathServiceImpl struct {
	sessions  SessionManager
	scenarios ScenarioManager
	mu        sync.RWMutex
}

// NewPathService creates a new path service instance
func NewPathService(sessions SessionManager, scenarios ScenarioManager) PathService {
	return &pathServiceImpl{
		sessions:  sessions,
		scenarios: scenarios,
	}
}

// getScenarioID returns the scenario_id for a given display name, used
// for consistent API responses
func (s *pathServiceImpl) getScenarioID(scenarioName string) string {
	available, err := s.scenarios.ListScenarios()
	if err == nil {
		for _, sc := range available {
			if sc.Name == scenarioName {
				return sc.ScenarioID
			}
		}
	}
	if scenarioName == "" {
		return "default"
	}
	return scenarioName
}

// CreateSession creates a new exploration session
func (s *pathServiceImpl) CreateSession(ctx context.Context, scenarioName string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var scenario *engine.Scenario
	var err error
	if scenarioName != "" {
		scenario, err = s.scenarios.LoadScenario(scenarioName)
		if err != nil {
			if strings.Contains(err.Error(), "not found") {
				available, listErr := s.scenarios.ListScenarios()
				if listErr == nil && len(available) > 0 {
					var ids []string
					for _, sc := range available {
						ids = append(ids, sc.ScenarioID)
					}
					return nil, fmt.Errorf("scenario '%s' not found. Available scenarios: %v", scenarioName, ids)
				}
				return nil, fmt.Errorf("scenario '%s' not found. Use /api/scenarios to list available scenarios", scenarioName)
			}
			return nil, fmt.Errorf("failed to load scenario %s: %w", scenarioName, err)
		}
	} else {
		scenario = s.scenarios.GetDefault()
	}

	session, err := s.sessions.Create("", scenario)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	scenarioID := scenarioName
	if scenarioID == "" {
		scenarioID = s.getScenarioID(scenario.Name)
	}

	return &SessionInfo{
		ID:             session.ID,
		ScenarioName:   scenarioID,
		CreatedAt:      session.CreatedAt,
		LastAccessedAt: session.LastAccessedAt,
		State:          session.Engine.State(),
		Scenario:       session.Scenario,
	}, nil
}

// GetSession retrieves session information
func (s *pathServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)

	return &SessionInfo{
		ID:             session.ID,
		ScenarioName:   s.getScenarioID(session.Scenario.Name),
		CreatedAt:      session.CreatedAt,
		LastAccessedAt: session.LastAccessedAt,
		State:          session.Engine.State(),
		Scenario:       session.Scenario,
	}, nil
}

// ListSessions returns all active sessions
func (s *pathServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))

	for _, sess := range sessions {
		result = append(result, &SessionInfo{
			ID:             sess.ID,
			ScenarioName:   s.getScenarioID(sess.Scenario.Name),
			CreatedAt:      sess.CreatedAt,
			LastAccessedAt: sess.LastAccessedAt,
			State:          sess.Engine.State(),
			Scenario:       sess.Scenario,
		})
	}

	return result, nil
}

// DeleteSession removes a session
func (s *pathServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.sessions.Delete(sessionID)
}

// FindPath runs a single-goal search for a session
func (s *pathServiceImpl) FindPath(ctx context.Context, sessionID string, req FindPathRequest) (*PathResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(sessionID)

	algorithm := pathfind.Algorithm(req.Algorithm)
	if algorithm == "" {
		algorithm = pathfind.AlgorithmAStar
	}

	start := sess.Engine.AgentPosition()
	if req.Start != nil {
		start = *req.Start
	}
	goal := sess.Engine.Grid().GoalPos()
	if req.Goal != nil {
		goal = *req.Goal
	}

	result, err := sess.Engine.Search(pathfind.SearchQuery{
		Start:         start,
		Goal:          pathfind.SingleGoal(goal),
		Algorithm:     algorithm,
		BaseAlgorithm: pathfind.Algorithm(req.BaseAlgorithm),
		TurnsAhead:    req.TurnsAhead,
	})
	if err != nil {
		return nil, err
	}

	return s.toPathResult(sess, result, string(algorithm)), nil
}

// OrderGoals finds the cheapest order to visit every goal
func (s *pathServiceImpl) OrderGoals(ctx context.Context, sessionID string, req OrderGoalsRequest) (*PathResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(sessionID)

	goals := req.Goals
	if len(goals) == 0 {
		goals = sess.Engine.RemainingCheckpoints()
	}
	if len(goals) == 0 {
		return nil, fmt.Errorf("no goals to order: provide goals or use a scenario with checkpoints")
	}

	result, err := sess.Engine.Search(pathfind.SearchQuery{
		Start:       sess.Engine.AgentPosition(),
		Goal:        pathfind.GoalSet(goals...),
		Algorithm:   pathfind.AlgorithmMultiGoal,
		Destination: req.Destination,
	})
	if err != nil {
		return nil, err
	}

	return s.toPathResult(sess, result, string(pathfind.AlgorithmMultiGoal)), nil
}

// ForecastTerrain simulates future turns of terrain mutation
func (s *pathServiceImpl) ForecastTerrain(ctx context.Context, sessionID string, turnsAhead int) (*ForecastResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(sessionID)

	snapshots, err := sess.Engine.Forecast(turnsAhead)
	if err != nil {
		return nil, err
	}

	g := sess.Engine.Grid()
	baseline := g.TerrainSnapshot()

	result := &ForecastResult{CurrentTurn: g.Turn()}
	for _, snap := range snapshots {
		turn := ForecastTurn{Turn: snap.Turn}
		for p, terrain := range snap.Terrain {
			if baseline[p] == terrain {
				continue
			}
			turn.Changes = append(turn.Changes, TerrainCell{
				Pos:     p,
				Terrain: terrain,
				Cost:    grid.CostForTerrain(terrain),
			})
		}
		sortTerrainCells(turn.Changes)
		result.Turns = append(result.Turns, turn)
	}

	return result, nil
}

// Move executes a single move for a session
func (s *pathServiceImpl) Move(ctx context.Context, sessionID, direction string) (*MoveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(sessionID)

	success := sess.Engine.Move(direction)
	state := sess.Engine.State()

	if err := s.sessions.Save(sessionID); err != nil {
		fmt.Printf("Warning: Failed to persist session %s after move: %v\n", sessionID, err)
	}

	return &MoveResult{
		Success:       success,
		State:         state,
		Message:       state.Message,
		PossibleMoves: sess.Engine.PossibleMoves(),
		LocalView:     sess.Engine.LocalView(),
	}, nil
}

// BulkMove executes multiple moves in sequence
func (s *pathServiceImpl) BulkMove(ctx context.Context, sessionID string, moves []string) (*BulkMoveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(sessionID)

	result := &BulkMoveResult{
		RequestedMoves: len(moves),
		Success:        true,
		StartPos:       sess.Engine.AgentPosition(),
	}
	startCost := sess.Engine.TotalCost()

	if len(moves) > engine.MaxBulkMoves {
		result.Truncated = true
		result.Limit = engine.MaxBulkMoves
		moves = moves[:engine.MaxBulkMoves]
	}

	outcomes := sess.Engine.BulkMove(moves)
	for i, ok := range outcomes {
		if !ok {
			result.Success = false
			result.StoppedOnMove = i + 1
			result.StoppedReason = fmt.Sprintf("move %d blocked: %s", i+1, moves[i])
			break
		}
		result.MovesExecuted++
	}

	state := sess.Engine.State()
	result.State = state
	result.EndPos = sess.Engine.AgentPosition()
	result.CostDelta = sess.Engine.TotalCost() - startCost
	result.GoalReached = sess.Engine.GoalReached()
	result.Message = state.Message
	result.PossibleMoves = sess.Engine.PossibleMoves()

	if err := s.sessions.Save(sessionID); err != nil {
		fmt.Printf("Warning: Failed to persist session %s after bulk moves: %v\n", sessionID, err)
	}

	return result, nil
}

// AdvanceTurn mutates the grid for a number of turns
func (s *pathServiceImpl) AdvanceTurn(ctx context.Context, sessionID string, turns int) (*TurnResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(sessionID)

	if turns <= 0 {
		turns = 1
	}

	before := sess.Engine.Grid().TerrainSnapshot()
	for i := 0; i < turns; i++ {
		sess.Engine.AdvanceTurn()
	}
	after := sess.Engine.Grid().TerrainSnapshot()

	result := &TurnResult{
		Turn:          sess.Engine.Turn(),
		TurnsAdvanced: turns,
		State:         sess.Engine.State(),
	}
	for p, terrain := range after {
		if before[p] == terrain {
			continue
		}
		result.TerrainChanges = append(result.TerrainChanges, TerrainCell{
			Pos:     p,
			Terrain: terrain,
			Cost:    grid.CostForTerrain(terrain),
		})
	}
	sortTerrainCells(result.TerrainChanges)

	if err := s.sessions.Save(sessionID); err != nil {
		fmt.Printf("Warning: Failed to persist session %s after turn advance: %v\n", sessionID, err)
	}

	return result, nil
}

// Reset restarts a session's exploration
func (s *pathServiceImpl) Reset(ctx context.Context, sessionID string) (*engine.EngineState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)
	state := sess.Engine.Reset()

	if err := s.sessions.Save(sessionID); err != nil {
		fmt.Printf("Warning: Failed to persist session %s after reset: %v\n", sessionID, err)
	}

	return state, nil
}

// GetState retrieves the current exploration state
func (s *pathServiceImpl) GetState(ctx context.Context, sessionID string) (*engine.EngineState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)
	return sess.Engine.State(), nil
}

// GetMoveHistory returns paginated move history
func (s *pathServiceImpl) GetMoveHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	history := sess.Engine.MoveHistory()
	total := len(history)

	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit <= 0 {
		opts.Limit = 20
	}
	if opts.Limit > 100 {
		opts.Limit = 100
	}
	if opts.Order == "" {
		opts.Order = "desc"
	}

	totalPages := (total + opts.Limit - 1) / opts.Limit
	if totalPages == 0 {
		totalPages = 1
	}

	start := (opts.Page - 1) * opts.Limit
	end := start + opts.Limit
	if end > total {
		end = total
	}

	var moves []engine.MoveRecord
	if opts.Order == "desc" {
		for i := total - 1 - start; i >= 0 && i >= total-end; i-- {
			moves = append(moves, history[i])
		}
	} else {
		if start < total {
			moves = history[start:end]
		}
	}

	if moves == nil {
		moves = []engine.MoveRecord{}
	}

	return &HistoryResponse{
		Moves:       moves,
		TotalMoves:  total,
		Page:        opts.Page,
		PageSize:    opts.Limit,
		TotalPages:  totalPages,
		HasNext:     opts.Page < totalPages,
		HasPrevious: opts.Page > 1,
	}, nil
}

// RenderMap draws the maze as the session's agent knows it
func (s *pathServiceImpl) RenderMap(ctx context.Context, sessionID string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return "", fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)
	return sess.Engine.RenderMap(nil), nil
}

// ListScenarios returns available scenarios
func (s *pathServiceImpl) ListScenarios(ctx context.Context) ([]*ScenarioInfo, error) {
	return s.scenarios.ListScenarios()
}

// LoadScenario loads a specific scenario
func (s *pathServiceImpl) LoadScenario(ctx context.Context, name string) (*engine.Scenario, error) {
	return s.scenarios.LoadScenario(name)
}

// SaveScenario saves a scenario to disk
func (s *pathServiceImpl) SaveScenario(ctx context.Context, name string, scenario *engine.Scenario) error {
	return s.scenarios.SaveScenario(name, scenario)
}

// toPathResult flattens a search result for transport, attaching a map
// render with the path overlaid.
func (s *pathServiceImpl) toPathResult(sess *Session, result *pathfind.SearchResult, algorithm string) *PathResult {
	out := &PathResult{
		Found:         result.Found,
		Path:          result.Path,
		NodesExplored: result.NodesExplored,
		ForecastCost:  result.ForecastCost,
		Algorithm:     algorithm,
	}
	if result.Found {
		out.Cost = result.Cost
		out.RenderedMap = sess.Engine.RenderMap(result.Path)
	}
	if out.Path == nil {
		out.Path = []grid.Position{}
	}

	out.Explored = flattenPositionSet(result.Explored)
	out.Frontier = flattenPositionSet(result.Frontier)
	for _, p := range flattenScoreKeys(result.NodeScores) {
		score := result.NodeScores[p]
		out.NodeScores = append(out.NodeScores, NodeDetail{Pos: p, G: score.G, H: score.H, F: score.F})
	}

	return out
}

// flattenPositionSet orders a set by (y, x) for stable JSON output.
func flattenPositionSet(set map[grid.Position]bool) []grid.Position {
	out := make([]grid.Position, 0, len(set))
	for p := range set {
		out = append(out, p)
	}
	sortPositionSlice(out)
	return out
}

func flattenScoreKeys(scores map[grid.Position]pathfind.NodeScore) []grid.Position {
	out := make([]grid.Position, 0, len(scores))
	for p := range scores {
		out = append(out, p)
	}
	sortPositionSlice(out)
	return out
}

func sortPositionSlice(out []grid.Position) {
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].Less(out[j-1]); j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
}

func sortTerrainCells(cells []TerrainCell) {
	for i := 1; i < len(cells); i++ {
		for j := i; j > 0 && cells[j].Pos.Less(cells[j-1].Pos); j-- {
			cells[j], cells[j-1] = cells[j-1], cells[j]
		}
	}
}
