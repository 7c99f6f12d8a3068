package service

import (
	"context"

	"github.com/gridlock-games/rushhour/game/puzzle"
)

// SolverService defines all solve-related operations
type SolverService interface {
	// Session Management
	CreateSession(ctx context.Context, configName string) (*SessionInfo, error)
	GetSession(ctx context.Context, sessionID string) (*SessionInfo, error)
	ListSessions(ctx context.Context) ([]*SessionInfo, error)
	DeleteSession(ctx context.Context, sessionID string) error

	// Solving
	Solve(ctx context.Context, sessionID string, onProgress ProgressFunc) (*SolveResult, error)
	GetSolution(ctx context.Context, sessionID string) (*puzzle.Solution, error)

	// Configuration
	ListConfigs(ctx context.Context) ([]*ConfigInfo, error)
	LoadConfig(ctx context.Context, configName string) (*puzzle.Config, error)
	SaveConfig(ctx context.Context, configName string, config *puzzle.Config) error
}

// SessionManager defines session storage operations
type SessionManager interface {
	Create(id string, config *puzzle.Config) (*Session, error)
	Get(id string) (*Session, error)
	List() []*Session
	Delete(id string) error
	UpdateLastAccessed(id string) error
	Save(id string) error
}

// ConfigManager handles puzzle configuration loading
type ConfigManager interface {
	LoadConfig(name string) (*puzzle.Config, error)
	ListConfigs() ([]*ConfigInfo, error)
	GetDefault() *puzzle.Config
	SaveConfig(name string, config *puzzle.Config) error
}
