// Package service is the application layer between the transports and
// the exploration engine.
//
// PathService is the single interface every transport (REST, WebSocket,
// MCP) programs against. The implementation coordinates the session
// manager and the scenario manager, flattens engine results into
// JSON-friendly DTOs, and persists sessions after every mutating
// operation.
package service
