// Package websocket provides real-time transport for exploration sessions.
//
// The websocket package implements:
//   - Session-aware WebSocket connections
//   - Automatic state broadcasting after moves and turn advances
//   - Custom events for search results and terrain changes
//   - Connection lifecycle management
//
// Architecture:
//
// The package uses a hub-and-spoke model where a central Hub manages all
// WebSocket connections. Each client connection is handled by a dedicated
// goroutine that manages reading, writing, and cleanup.
//
// Message Protocol:
//
// Outgoing messages are JSON-encoded Message values. State updates carry
// the full engine state under "state" with event "state_update"; turn
// advances and search results use "turn_advanced" and "search_result"
// events with a payload under "data". Incoming client messages are not
// processed; the connection is read only to keep it alive.
//
// Session Integration:
//
// Clients specify their session ID via query parameter (?session=ab12)
// when establishing the connection. Updates are broadcast only to clients
// connected to the same session.
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run()
//
//	// from an HTTP handler, after resolving the session ID:
//	hub.ServeWS(w, r, sessionID)
package websocket
