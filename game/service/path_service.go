package service

import (
	"context"
	"time"

	"github.com/mazequest/pathfinder-server/game/engine"
)

// PathService defines all maze and pathfinding operations exposed over
// the transports.
type PathService interface {
	// Session management
	CreateSession(ctx context.Context, scenarioName string) (*SessionInfo, error)
	GetSession(ctx context.Context, sessionID string) (*SessionInfo, error)
	ListSessions(ctx context.Context) ([]*SessionInfo, error)
	DeleteSession(ctx context.Context, sessionID string) error

	// Pathfinding
	FindPath(ctx context.Context, sessionID string, req FindPathRequest) (*PathResult, error)
	OrderGoals(ctx context.Context, sessionID string, req OrderGoalsRequest) (*PathResult, error)
	ForecastTerrain(ctx context.Context, sessionID string, turnsAhead int) (*ForecastResult, error)

	// Simulation
	Move(ctx context.Context, sessionID, direction string) (*MoveResult, error)
	BulkMove(ctx context.Context, sessionID string, moves []string) (*BulkMoveResult, error)
	AdvanceTurn(ctx context.Context, sessionID string, turns int) (*TurnResult, error)
	Reset(ctx context.Context, sessionID string) (*engine.EngineState, error)

	// State
	GetState(ctx context.Context, sessionID string) (*engine.EngineState, error)
	GetMoveHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error)
	RenderMap(ctx context.Context, sessionID string) (string, error)

	// Scenarios
	ListScenarios(ctx context.Context) ([]*ScenarioInfo, error)
	LoadScenario(ctx context.Context, name string) (*engine.Scenario, error)
	SaveScenario(ctx context.Context, name string, scenario *engine.Scenario) error
}

// SessionManager defines session storage operations
type SessionManager interface {
	Create(id string, scenario *engine.Scenario) (*Session, error)
	Get(id string) (*Session, error)
	GetOrCreate(id string, scenario *engine.Scenario) (*Session, error)
	List() []*Session
	Delete(id string) error
	UpdateLastAccessed(id string) error
	Save(id string) error
}

// ScenarioManager handles scenario loading
type ScenarioManager interface {
	LoadScenario(name string) (*engine.Scenario, error)
	ListScenarios() ([]*ScenarioInfo, error)
	GetDefault() *engine.Scenario
	SaveScenario(name string, scenario *engine.Scenario) error
}

// Session represents one active exploration
type Session struct {
	ID             string
	Engine         *engine.Engine
	Scenario       *engine.Scenario
	CreatedAt      time.Time
	LastAccessedAt time.Time
}
