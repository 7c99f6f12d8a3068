// Package api provides the REST API server for the solver.
//
// The api package implements:
//   - Session management endpoints (create, get, list, delete)
//   - Solve endpoints (run the search, fetch the solution)
//   - Configuration endpoints (list, get, create)
//   - WebSocket endpoint for live solve progress
//
// All endpoints return JSON. Errors use the shape {"error": "message"}.
//
// Endpoints:
//
//	POST   /api/sessions              create a session (body: {"config_id": "beginner"})
//	GET    /api/sessions              list sessions (sort, order, limit query params)
//	GET    /api/sessions/{id}         get one session
//	DELETE /api/sessions/{id}         delete a session
//	POST   /api/sessions/{id}/solve   run the solver (idempotent)
//	GET    /api/sessions/{id}/solution fetch the cached solution
//	GET    /api/configs               list available configurations
//	POST   /api/configs               validate and save a configuration
//	GET    /api/configs/{name}        get one configuration
//	GET    /api/health                health check
//	GET    /ws?session={id}           WebSocket for progress events
package api
