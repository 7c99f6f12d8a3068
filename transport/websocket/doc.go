// Package websocket provides WebSocket transport for solver progress.
//
// The websocket package implements:
//   - Session-aware WebSocket connections
//   - Live progress events while a breadth-first search runs
//   - Solve outcome broadcasting (solved / unsolvable)
//   - Connection lifecycle management
//
// Architecture:
//
// The package uses a hub-and-spoke model where a central Hub manages all
// WebSocket connections. Each client connection is handled by dedicated
// read and write goroutines; all session bookkeeping happens on the hub's
// event loop.
//
// Message Protocol:
//
// Messages are JSON-encoded and flow server-to-client only:
//   - {session_id: "ab12", event: "progress", data: {"states_explored": 300}}
//   - {session_id: "ab12", event: "solved", result: {...}}
//   - {session_id: "ab12", event: "unsolvable", result: {...}}
//
// Session Integration:
//
// Clients specify their session ID via query parameter (?session=ab12)
// when establishing the connection. Events are broadcast only to clients
// watching the same session.
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run()
//
//	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
//		hub.ServeWS(w, r, r.URL.Query().Get("session"))
//	})
//
// Concurrency:
//
// The hub event loop owns the client registry. Broadcasts from solver
// goroutines go through a channel, so multiple solves can report progress
// concurrently without locking.
package websocket
