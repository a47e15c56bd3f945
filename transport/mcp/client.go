package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/mazequest/pathfinder-server/game/engine"
	"github.com/mazequest/pathfinder-server/game/grid"
	"github.com/mazequest/pathfinder-server/game/service"
)

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Maze Pathfinder",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Maze Pathfinder - MCP Interface

This is a thin client that proxies all requests to the REST API server.

OBJECTIVE:
Guide the agent (@) through a weighted maze to the goal, visiting
checkpoints along the way. Terrain mutates every turn, and under fog
you only see what the agent has discovered.

AVAILABLE TOOLS:
- session_state: Get current engine state
- find_path: Run a search (bfs/dijkstra/astar/bidirectional/fog_of_war/predictive)
- order_goals: Order multiple goals into one cheapest route
- forecast_terrain: Predict terrain changes N turns ahead
- move: Single move (up/down/left/right) - requires intent explanation
- bulk_move: Multiple moves at once - requires intent explanation
- advance_turn: Advance the terrain clock without moving
- reset_session: Reset to initial state
- move_history: View past moves
- render_map: ASCII map of what the agent knows
- describe_cell: What the agent remembers about a specific cell
- create_session: Create new session
- get_session: Get session details
- list_sessions: List all active sessions
- list_scenarios: List available scenarios
- pathfinding_instructions: Get comprehensive usage instructions

NOTE: The 'intent' parameter on move/bulk_move tools serves as rubber duck debugging - explain your reasoning!`),
	)

	// Register all tools
	c.registerTools()
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	// Session management
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_session",
		Description: "Create a new exploration session with optional scenario selection",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"scenario_id": map[string]interface{}{
					"type":        "string",
					"description": "ID of the scenario to use (optional)",
				},
			},
		},
	}, c.handleCreateSession)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_sessions",
		Description: "List all active exploration sessions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListSessions)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_session",
		Description: "Get details of a specific session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID to retrieve",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleGetSession)

	// Pathfinding
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "find_path",
		Description: "Run a pathfinding search. Defaults to the agent's position and the maze goal when start/goal are omitted.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"algorithm": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"bfs", "dijkstra", "astar", "bidirectional", "fog_of_war", "predictive"},
					"description": "Search algorithm to run",
				},
				"start_x": map[string]interface{}{
					"type":        "integer",
					"description": "Start X coordinate (optional, defaults to agent)",
				},
				"start_y": map[string]interface{}{
					"type":        "integer",
					"description": "Start Y coordinate (optional, defaults to agent)",
				},
				"goal_x": map[string]interface{}{
					"type":        "integer",
					"description": "Goal X coordinate (optional, defaults to maze goal)",
				},
				"goal_y": map[string]interface{}{
					"type":        "integer",
					"description": "Goal Y coordinate (optional, defaults to maze goal)",
				},
				"base_algorithm": map[string]interface{}{
					"type":        "string",
					"description": "Underlying algorithm for predictive searches (optional)",
				},
				"turns_ahead": map[string]interface{}{
					"type":        "integer",
					"description": "Turns to look ahead for predictive searches (optional)",
				},
				"intent": map[string]interface{}{
					"type":        "string",
					"description": "Brief explanation of why you are running this search (serves as a rubber duck to help explain your reasoning)",
				},
			},
			Required: []string{"session_id", "algorithm"},
		},
	}, c.handleFindPath)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "order_goals",
		Description: "Order multiple goals into one cheapest route. Defaults to the scenario's unvisited checkpoints when goals are omitted.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"goals": map[string]interface{}{
					"type": "array",
					"items": map[string]interface{}{
						"type": "object",
						"properties": map[string]interface{}{
							"x": map[string]interface{}{"type": "integer"},
							"y": map[string]interface{}{"type": "integer"},
						},
					},
					"description": "Goals to visit (optional)",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleOrderGoals)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "forecast_terrain",
		Description: "Predict terrain changes N turns ahead without mutating the live grid",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"turns": map[string]interface{}{
					"type":        "integer",
					"description": "Turns to look ahead (default 1)",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleForecastTerrain)

	// Agent operations
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "session_state",
		Description: "Get the current engine state",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleSessionState)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "move",
		Description: "Move the agent one step in a direction",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"direction": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"up", "down", "left", "right"},
					"description": "Direction to move",
				},
				"intent": map[string]interface{}{
					"type":        "string",
					"description": "Brief explanation of the intent behind this move (serves as a rubber duck to help explain your reasoning)",
				},
			},
			Required: []string{"session_id", "direction"},
		},
	}, c.handleMove)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "bulk_move",
		Description: "Execute multiple moves in sequence",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"moves": map[string]interface{}{
					"type": "array",
					"items": map[string]interface{}{
						"type": "string",
						"enum": []string{"up", "down", "left", "right"},
					},
					"description": "Array of moves",
				},
				"intent": map[string]interface{}{
					"type":        "string",
					"description": "Brief explanation of the intent behind this sequence of moves (serves as a rubber duck to help explain your reasoning)",
				},
			},
			Required: []string{"session_id", "moves"},
		},
	}, c.handleBulkMove)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "advance_turn",
		Description: "Advance the terrain clock without moving the agent",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"turns": map[string]interface{}{
					"type":        "integer",
					"description": "Turns to advance (default 1)",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleAdvanceTurn)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "reset_session",
		Description: "Reset the session to its initial state",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleReset)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "move_history",
		Description: "Get move history for a session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"page": map[string]interface{}{
					"type":        "integer",
					"description": "Page number",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Items per page",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleMoveHistory)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "render_map",
		Description: "Render an ASCII map of what the agent knows. Under fog, undiscovered cells show as '?'.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleRenderMap)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "describe_cell",
		Description: "Get what the agent remembers about a specific cell. Under fog the answer reflects memory, which may be stale after terrain mutations.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"x": map[string]interface{}{
					"type":        "integer",
					"description": "X coordinate (column) of the cell to describe (0-based)",
				},
				"y": map[string]interface{}{
					"type":        "integer",
					"description": "Y coordinate (row) of the cell to describe (0-based)",
				},
			},
			Required: []string{"session_id", "x", "y"},
		},
	}, c.handleDescribeCell)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_scenarios",
		Description: "List available maze scenarios",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListScenarios)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "pathfinding_instructions",
		Description: "Get comprehensive instructions for using the pathfinding tools",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleInstructions)
}

// GetMCPServer returns the underlying MCP server for serving
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// Helper methods for API calls

func (c *Client) apiCall(method, path string, body interface{}, result interface{}) error {
	url := c.baseURL + path

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"]; ok {
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	return nil
}

// Tool handlers

func (c *Client) handleCreateSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	scenarioID, _ := args["scenario_id"].(string)

	body := map[string]string{}
	if scenarioID != "" {
		body["scenario_id"] = scenarioID
	}

	var session service.SessionInfo
	err := c.apiCall("POST", "/api/sessions", body, &session)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Created session: %s\nScenario: %s\n", session.ID, session.ScenarioName)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count    int                   `json:"count"`
		Sessions []service.SessionInfo `json:"sessions"`
	}

	err := c.apiCall("GET", "/api/sessions", nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Active Sessions (%d):\n\n", response.Count)
	for _, s := range response.Sessions {
		result += fmt.Sprintf("- %s (Scenario: %s, Created: %s)\n",
			s.ID, s.ScenarioName, s.CreatedAt.Format("15:04:05"))
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var session service.SessionInfo
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s", sessionID), nil, &session)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := formatSessionInfo(&session)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleSessionState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var state engine.EngineState
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s/state", sessionID), nil, &state)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := formatEngineState(&state)

	// Append the rendered map when available
	var mapResp map[string]string
	if err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s/map", sessionID), nil, &mapResp); err == nil {
		if m := mapResp["map"]; m != "" {
			result += "\n" + m
		}
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleFindPath(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	algorithm, _ := args["algorithm"].(string)
	intent, _ := args["intent"].(string)

	// Intent parameter serves as rubber duck debugging - we don't need to process it further
	_ = intent

	body := map[string]interface{}{
		"algorithm": algorithm,
	}
	if x, ok := args["start_x"].(float64); ok {
		if y, ok := args["start_y"].(float64); ok {
			body["start"] = map[string]int{"x": int(x), "y": int(y)}
		}
	}
	if x, ok := args["goal_x"].(float64); ok {
		if y, ok := args["goal_y"].(float64); ok {
			body["goal"] = map[string]int{"x": int(x), "y": int(y)}
		}
	}
	if base, ok := args["base_algorithm"].(string); ok && base != "" {
		body["base_algorithm"] = base
	}
	if turns, ok := args["turns_ahead"].(float64); ok {
		body["turns_ahead"] = int(turns)
	}

	var result service.PathResult
	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/find-path", sessionID), body, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	response := formatPathResult(&result)
	return mcp.NewToolResultText(response), nil
}

func (c *Client) handleOrderGoals(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	body := map[string]interface{}{}
	if goalsRaw, ok := args["goals"].([]interface{}); ok {
		goals := make([]map[string]int, 0, len(goalsRaw))
		for _, g := range goalsRaw {
			if obj, ok := g.(map[string]interface{}); ok {
				x, _ := obj["x"].(float64)
				y, _ := obj["y"].(float64)
				goals = append(goals, map[string]int{"x": int(x), "y": int(y)})
			}
		}
		if len(goals) > 0 {
			body["goals"] = goals
		}
	}

	var result service.PathResult
	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/order-goals", sessionID), body, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	response := formatPathResult(&result)
	return mcp.NewToolResultText(response), nil
}

func (c *Client) handleForecastTerrain(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	turns := 1
	if t, ok := args["turns"].(float64); ok && int(t) > 0 {
		turns = int(t)
	}

	var forecast service.ForecastResult
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s/forecast?turns=%d", sessionID, turns), nil, &forecast)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := formatForecast(&forecast)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleMove(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	direction, _ := args["direction"].(string)
	intent, _ := args["intent"].(string)

	// Intent parameter serves as rubber duck debugging - we don't need to process it further
	_ = intent

	body := map[string]interface{}{
		"direction": direction,
	}

	var result service.MoveResult
	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/move", sessionID), body, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	response := formatMoveResult(&result)
	return mcp.NewToolResultText(response), nil
}

func (c *Client) handleBulkMove(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	movesRaw, _ := args["moves"].([]interface{})
	intent, _ := args["intent"].(string)

	// Intent parameter serves as rubber duck debugging - we don't need to process it further
	_ = intent

	// Convert moves to string array
	moves := make([]string, 0, len(movesRaw))
	for _, m := range movesRaw {
		if move, ok := m.(string); ok {
			moves = append(moves, move)
		}
	}

	body := map[string]interface{}{
		"moves": moves,
	}

	var result service.BulkMoveResult
	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/bulk-move", sessionID), body, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	response := formatBulkMoveResult(sessionID, &result)
	return mcp.NewToolResultText(response), nil
}

func (c *Client) handleAdvanceTurn(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	body := map[string]interface{}{}
	if t, ok := args["turns"].(float64); ok && int(t) > 0 {
		body["turns"] = int(t)
	}

	var result service.TurnResult
	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/advance-turn", sessionID), body, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("Advanced %d turn(s), now at turn %d\n", result.TurnsAdvanced, result.Turn))
	if len(result.TerrainChanges) > 0 {
		b.WriteString(fmt.Sprintf("\nTerrain changes (%d):\n", len(result.TerrainChanges)))
		for _, ch := range result.TerrainChanges {
			b.WriteString(fmt.Sprintf("- (%d,%d) -> %s (cost %.1f)\n", ch.Pos.X, ch.Pos.Y, ch.Terrain, ch.Cost))
		}
	}
	if result.State != nil {
		b.WriteString("\n")
		b.WriteString(formatEngineState(result.State))
	}
	return mcp.NewToolResultText(b.String()), nil
}

func (c *Client) handleReset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var response struct {
		Message string              `json:"message"`
		State   *engine.EngineState `json:"state"`
	}

	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/reset", sessionID), nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("%s\n\n%s", response.Message, formatEngineState(response.State))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleMoveHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	params := "?"
	if page, ok := args["page"].(float64); ok {
		params += fmt.Sprintf("page=%d&", int(page))
	}
	if limit, ok := args["limit"].(float64); ok {
		params += fmt.Sprintf("limit=%d&", int(limit))
	}

	var history service.HistoryResponse
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s/history%s", sessionID, params), nil, &history)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := formatHistory(&history)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleRenderMap(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var response map[string]string
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s/map", sessionID), nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(response["map"]), nil
}

func (c *Client) handleDescribeCell(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	x := int(args["x"].(float64))
	y := int(args["y"].(float64))

	var state engine.EngineState
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s/state", sessionID), nil, &state)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if x == state.AgentPos.X && y == state.AgentPos.Y {
		return mcp.NewToolResultText(fmt.Sprintf(
			"Cell (%d,%d): agent's current position", x, y)), nil
	}

	// Full visibility sessions carry no memory; only fogged sessions do
	if len(state.Memory) == 0 && len(state.Discovered) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf(
			"Cell (%d,%d): session has full visibility, use render_map for the live terrain", x, y)), nil
	}

	for _, entry := range state.Memory {
		if entry.Pos.X == x && entry.Pos.Y == y {
			return mcp.NewToolResultText(fmt.Sprintf(
				"Cell (%d,%d): remembered as %s\nNote: memory can be stale; terrain mutates each turn.",
				x, y, entry.Terrain)), nil
		}
	}

	return mcp.NewToolResultText(fmt.Sprintf(
		"Cell (%d,%d): not yet discovered. Move closer or run a fog_of_war search toward it.", x, y)), nil
}

func (c *Client) handleListScenarios(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var scenarios []service.ScenarioInfo
	err := c.apiCall("GET", "/api/scenarios", nil, &scenarios)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := "Available Scenarios:\n\n"
	for _, s := range scenarios {
		result += fmt.Sprintf("• %s\n  %s\n  Grid: %dx%d, Difficulty: %s, Fog radius: %d\n\n",
			s.ScenarioID, s.Description, s.Width, s.Height, s.Difficulty, s.FogRadius)
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	instructions := `Maze Pathfinder - Complete Instructions

OBJECTIVE:
Guide the agent (@) through a weighted maze to the goal (G), visiting
any checkpoints (C) on the way, while terrain mutates every turn.

MAP LEGEND:
• @ - Agent (current position)
• . - Path or grass (cost 1)
• r - Rocks (cost 2)
• ~ - Water, t - Thorns (cost 3)
• ^ - Spikes (cost 4)
• m - Mud (cost 5)
• q - Quicksand (cost 6)
• # - Wall, L - Lava (impassable)
• S - Start, G - Goal, C - Checkpoint
• ? - Undiscovered (fog sessions only)
• * - Cell on the most recent path overlay

ALGORITHMS:
• bfs - Fewest steps, ignores terrain weight
• dijkstra - Cheapest path, no heuristic
• astar - Cheapest path guided by the scenario heuristic
• bidirectional - Simultaneous search from both ends, same cost as dijkstra
• fog_of_war - Plans only through discovered cells; targets the nearest
  frontier when the goal is still hidden
• predictive - Plans with forecasted terrain costs (set turns_ahead and
  optionally base_algorithm)

STRATEGY NOTES:
1. Under fog, alternate fog_of_war searches with bulk_move along the
   returned path. The frontier shifts as you discover more of the maze.
2. Terrain mutates every turn. A path that was cheap when computed may
   cost more by the time you walk it; forecast_terrain shows what is
   coming.
3. Use predictive searches before long moves: the forecast_cost field
   tells you what the path will actually cost as turns advance.
4. order_goals solves the visiting order for multiple checkpoints; feed
   its path directly to bulk_move.
5. Moves onto walls or lava fail and waste nothing but the attempt. The
   possible_moves field lists directions that will succeed.

SESSION MANAGEMENT:
- Multiple sessions can run simultaneously
- Each session has a unique 4-character ID
- Sessions maintain independent state and scenario
- State persists across server restarts

MOVEMENT COMMANDS:
- up, down, left, right - Single moves in cardinal directions
- bulk_move - Execute multiple moves in sequence for efficiency
- advance_turn - Let terrain mutate without moving`

	return mcp.NewToolResultText(instructions), nil
}

// Formatting helpers

func formatSessionInfo(session *service.SessionInfo) string {
	return fmt.Sprintf("Session: %s\nScenario: %s\nCreated: %s\n\n%s",
		session.ID, session.ScenarioName,
		session.CreatedAt.Format("2006-01-02 15:04:05"),
		formatEngineState(session.State))
}

func formatEngineState(state *engine.EngineState) string {
	if state == nil {
		return "No state available"
	}

	var result strings.Builder

	result.WriteString(fmt.Sprintf("Position: (%d,%d) | Turn: %d | Cost: %.1f | Moves: %d\n",
		state.AgentPos.X, state.AgentPos.Y, state.Turn, state.TotalCost, state.TotalMoves))

	if len(state.VisitedCheckpoints) > 0 {
		result.WriteString(fmt.Sprintf("Checkpoints visited: %d\n", len(state.VisitedCheckpoints)))
	}
	if len(state.Discovered) > 0 {
		result.WriteString(fmt.Sprintf("Cells discovered: %d\n", len(state.Discovered)))
	}

	if state.GoalReached {
		result.WriteString("\nGOAL REACHED!\n")
	}

	if state.Message != "" {
		result.WriteString(fmt.Sprintf("Message: %s\n", state.Message))
	}

	return result.String()
}

func formatPathResult(result *service.PathResult) string {
	var b strings.Builder

	if result.Found {
		b.WriteString(fmt.Sprintf("✓ Path found (%s)\n", result.Algorithm))
		b.WriteString(fmt.Sprintf("Length: %d cells | Cost: %.1f | Explored: %d nodes\n",
			len(result.Path), result.Cost, result.NodesExplored))
		if result.ForecastCost > 0 {
			b.WriteString(fmt.Sprintf("Forecast cost: %.1f\n", result.ForecastCost))
		}
		b.WriteString("\nPath: ")
		b.WriteString(formatPath(result.Path, 20))
		b.WriteString("\n")
		if result.RenderedMap != "" {
			b.WriteString("\n")
			b.WriteString(result.RenderedMap)
		}
	} else {
		b.WriteString(fmt.Sprintf("✗ No path found (%s)\n", result.Algorithm))
		b.WriteString(fmt.Sprintf("Explored: %d nodes\n", result.NodesExplored))
	}

	return b.String()
}

// formatPath renders positions as (x,y) pairs, eliding the middle of
// long paths.
func formatPath(path []grid.Position, limit int) string {
	format := func(ps []grid.Position) string {
		parts := make([]string, len(ps))
		for i, p := range ps {
			parts[i] = fmt.Sprintf("(%d,%d)", p.X, p.Y)
		}
		return strings.Join(parts, " ")
	}

	if len(path) <= limit {
		return format(path)
	}

	head := limit / 2
	tail := limit - head
	return format(path[:head]) + fmt.Sprintf(" ... %d more ... ", len(path)-limit) + format(path[len(path)-tail:])
}

func formatForecast(forecast *service.ForecastResult) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Forecast from turn %d:\n", forecast.CurrentTurn))

	if len(forecast.Turns) == 0 {
		b.WriteString("(no changes predicted)\n")
		return b.String()
	}

	for _, turn := range forecast.Turns {
		b.WriteString(fmt.Sprintf("\nTurn +%d (%d changes):\n", turn.Turn, len(turn.Changes)))
		for _, ch := range turn.Changes {
			b.WriteString(fmt.Sprintf("- (%d,%d) -> %s (cost %.1f)\n", ch.Pos.X, ch.Pos.Y, ch.Terrain, ch.Cost))
		}
	}

	return b.String()
}

func formatMoveResult(result *service.MoveResult) string {
	response := ""
	if result.Success {
		response = "✓ Move successful\n"
	} else {
		response = "✗ Move failed\n"
	}

	if result.Message != "" {
		response += result.Message + "\n"
	}

	if len(result.PossibleMoves) > 0 {
		response += "Possible moves: " + strings.Join(result.PossibleMoves, ",") + "\n"
	}

	if len(result.LocalView) > 0 {
		response += "Nearby:\n"
		for _, cell := range result.LocalView {
			open := "open"
			if !cell.Open {
				open = "blocked"
			}
			response += fmt.Sprintf("- (%d,%d) %s (%s)\n", cell.X, cell.Y, cell.Terrain, open)
		}
	}

	response += "\n" + formatEngineState(result.State)
	return response
}

func formatBulkMoveResult(sessionID string, result *service.BulkMoveResult) string {
	var b strings.Builder

	scenarioName := ""
	if result.State != nil {
		scenarioName = result.State.ScenarioName
	}
	b.WriteString(fmt.Sprintf("Session: %s • Scenario: %s\n", sessionID, scenarioName))

	b.WriteString(fmt.Sprintf("Executed %d/%d moves\n", result.MovesExecuted, result.RequestedMoves))
	b.WriteString(fmt.Sprintf("From (%d,%d) to (%d,%d), cost +%.1f\n",
		result.StartPos.X, result.StartPos.Y, result.EndPos.X, result.EndPos.Y, result.CostDelta))

	if result.Truncated {
		b.WriteString(fmt.Sprintf("Truncated to %d moves per call\n", result.Limit))
	}
	if result.StoppedReason != "" {
		b.WriteString(fmt.Sprintf("Stopped on move %d: %s\n", result.StoppedOnMove, result.StoppedReason))
	}
	if result.GoalReached {
		b.WriteString("\nGOAL REACHED!\n")
	}

	if len(result.PossibleMoves) > 0 {
		b.WriteString("Possible moves: " + strings.Join(result.PossibleMoves, ",") + "\n")
	}

	b.WriteString("\n")
	b.WriteString(formatEngineState(result.State))
	return b.String()
}

func formatHistory(history *service.HistoryResponse) string {
	result := fmt.Sprintf("Move History (Page %d/%d) — Total: %d\n\n",
		history.Page, history.TotalPages, history.TotalMoves)

	for i, move := range history.Moves {
		num := (history.Page-1)*history.PageSize + i + 1
		status := "✓"
		if !move.Success {
			status = "✗"
		}
		result += fmt.Sprintf("%d. %s (%d,%d)→(%d,%d) %s [%s, cost %.1f]\n",
			num, move.Action,
			move.FromPosition.X, move.FromPosition.Y,
			move.ToPosition.X, move.ToPosition.Y,
			status, move.Terrain, move.Cost)
	}

	return result
}
