// Package api provides HTTP REST API handlers for the pathfinding server.
//
// The api package implements:
//   - RESTful endpoints for pathfinding queries
//   - Session management endpoints
//   - Agent movement and turn control
//   - Scenario listing, retrieval, and creation
//   - WebSocket upgrade handling
//   - Static file serving
//
// Endpoints:
//
// Session Management:
//   - POST /api/sessions - Create new session
//   - GET /api/sessions - List all sessions
//   - GET /api/sessions/{id} - Get specific session
//   - DELETE /api/sessions/{id} - Delete session
//
// Pathfinding:
//   - POST /api/sessions/{id}/find-path - Run a search from the agent
//     (or an explicit start) to a goal
//   - POST /api/sessions/{id}/order-goals - Order multiple goals into
//     one cheapest route
//   - GET /api/sessions/{id}/forecast?turns=N - Predict terrain changes
//     N turns ahead
//
// Agent Operations:
//   - GET /api/sessions/{id}/state - Get current engine state
//   - POST /api/sessions/{id}/move - Move one step
//   - POST /api/sessions/{id}/bulk-move - Execute a move sequence
//   - POST /api/sessions/{id}/advance-turn - Advance the terrain clock
//   - POST /api/sessions/{id}/reset - Reset the session
//   - GET /api/sessions/{id}/history - Get move history with pagination
//   - GET /api/sessions/{id}/map - Render the ASCII map
//
// Scenarios:
//   - GET /api/scenarios - List available scenarios
//   - POST /api/scenarios - Save a new scenario
//   - GET /api/scenarios/{name} - Get a specific scenario
//
// Request/Response Format:
//
// All endpoints accept and return JSON. A find-path request looks like:
//
//	{
//	  "algorithm": "astar|bfs|dijkstra|bidirectional|fog_of_war|predictive",
//	  "start": {"x": 1, "y": 1},     // optional, defaults to the agent
//	  "goal": {"x": 13, "y": 13},    // optional, defaults to the maze goal
//	  "base_algorithm": "astar",     // predictive only
//	  "turns_ahead": 3               // predictive only
//	}
//
// Error Handling:
//
// Errors are returned as JSON with appropriate HTTP status codes:
//
//	{
//	  "error": "error message"
//	}
package api
