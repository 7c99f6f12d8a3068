// Package session manages the lifecycle of solve sessions.
//
// The session package provides:
//   - Manager: thread-safe in-memory session storage with random IDs
//   - SessionPersistence: an interface for durable session storage
//   - FilePersistence: JSON-file-backed persistence under a sessions directory
//
// Sessions are cached in memory and optionally written through to
// persistence on creation and on every save, so solve results survive
// server restarts. Session IDs are matched case-insensitively.
package session
