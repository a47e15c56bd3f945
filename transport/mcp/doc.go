// Package mcp provides a Model Context Protocol server for the maze
// pathfinding engine.
//
// The mcp package implements:
//   - MCP server for AI agent integration
//   - Tool definitions for pathfinding and agent operations
//   - Session-aware command execution
//   - Stdio and HTTP transport modes
//
// MCP Tools:
//
// The package exposes the following tools for AI agents:
//   - session_state: Get the current engine state
//   - find_path: Run a search with any registered algorithm
//   - order_goals: Order multiple goals into one cheapest route
//   - forecast_terrain: Predict terrain changes N turns ahead
//   - move: Execute single directional movement
//   - bulk_move: Execute multiple moves in sequence
//   - advance_turn: Advance the terrain clock without moving
//   - reset_session: Reset a session to its initial state
//   - move_history: Retrieve move history with pagination
//   - render_map: ASCII map of what the agent knows
//   - describe_cell: What the agent remembers about a cell
//   - create_session: Create a new session with scenario selection
//   - get_session: Get specific session details
//   - list_sessions: List all active sessions
//   - list_scenarios: List available maze scenarios
//   - pathfinding_instructions: Comprehensive usage instructions
//
// Transport Modes:
//
// The server supports two transport modes:
//   - Stdio: Direct stdio communication for local MCP clients
//   - HTTP: HTTP endpoint for remote MCP integration
//
// The Client is a thin proxy: every tool call is translated into a
// REST API request against the running HTTP server, so MCP and HTTP
// clients always observe the same session state.
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	server.ServeStdio(client.GetMCPServer())
package mcp
