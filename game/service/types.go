package service

import (
	"time"

	"github.com/gridlock-games/rushhour/game/puzzle"
)

// Session status values.
const (
	StatusPending    = "pending"
	StatusSolved     = "solved"
	StatusUnsolvable = "unsolvable"
)

// Session represents an active solve session: one puzzle and at most one
// completed solve.
type Session struct {
	ID             string
	Config         *puzzle.Config
	Board          puzzle.Board
	Status         string
	Solution       *puzzle.Solution
	CreatedAt      time.Time
	LastAccessedAt time.Time
}

// SessionInfo provides information about a solve session.
type SessionInfo struct {
	ID             string           `json:"id"`
	ConfigName     string           `json:"config_name"`
	Status         string           `json:"status"`
	CreatedAt      time.Time        `json:"created_at"`
	LastAccessedAt time.Time        `json:"last_accessed_at"`
	Board          puzzle.Board     `json:"board"`
	Solution       *puzzle.Solution `json:"solution,omitempty"`
	PuzzleConfig   *puzzle.Config   `json:"puzzle_config,omitempty"`
}

// SolveResult contains the outcome of running the solver on a session.
type SolveResult struct {
	Status           string           `json:"status"` // "solved" or "unsolvable"
	Solved           bool             `json:"solved"`
	Message          string           `json:"message"`
	Moves            int              `json:"moves"`
	StatesExplored   int              `json:"states_explored"`
	StatesDiscovered int              `json:"states_discovered"`
	Solution         *puzzle.Solution `json:"solution,omitempty"`
}

// ConfigInfo provides information about a puzzle configuration.
type ConfigInfo struct {
	Filename    string `json:"filename"`
	ConfigID    string `json:"config_id"` // The identifier to use for session creation
	Name        string `json:"name"`      // Display name
	Description string `json:"description"`
	BoardSize   int    `json:"board_size"`
	ExitRow     int    `json:"exit_row"`
	Cars        int    `json:"cars"`
}

// ProgressFunc receives the number of explored states during a solve. It is
// purely observational and must not affect the search outcome.
type ProgressFunc func(explored int)
