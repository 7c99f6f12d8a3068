// Package service defines the business logic layer for the Gridlock solver.
//
// The service package provides:
//   - SolverService: the main interface for solve-session operations
//   - Session and result types shared across transports
//   - Interfaces for session and configuration management
//
// The service layer coordinates between the session manager, the
// configuration manager, and the puzzle solver, providing a clean API for
// the REST, WebSocket, and MCP transport layers. A session pairs one puzzle
// with at most one solve; solving is idempotent and the result is cached on
// the session.
package service
