package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/gridlock-games/rushhour/game/puzzle"
)

// ErrNotSolved is returned when a solution is requested for a session that
// has not been solved yet.
var ErrNotSolved = errors.New("session has not been solved yet")

// solverServiceImpl implements the SolverService interface
type solverServiceImpl struct {
	sessions SessionManager
	configs  ConfigManager
	mu       sync.RWMutex
}

// NewSolverService creates a new solver service instance
func NewSolverService(sessions SessionManager, configs ConfigManager) SolverService {
	return &solverServiceImpl{
		sessions: sessions,
		configs:  configs,
	}
}

// getConfigID returns the config_id for a given config name, used for consistent API responses
func (s *solverServiceImpl) getConfigID(configName string) string {
	availableConfigs, err := s.configs.ListConfigs()
	if err == nil {
		for _, cfg := range availableConfigs {
			if cfg.Name == configName {
				return cfg.ConfigID
			}
		}
	}
	// Fallback: return as-is or "default"
	if configName == "" {
		return "default"
	}
	return configName
}

// sessionInfo builds the transport view of a session.
func (s *solverServiceImpl) sessionInfo(session *Session) *SessionInfo {
	return &SessionInfo{
		ID:             session.ID,
		ConfigName:     s.getConfigID(session.Config.Name),
		Status:         session.Status,
		CreatedAt:      session.CreatedAt,
		LastAccessedAt: session.LastAccessedAt,
		Board:          session.Board,
		Solution:       session.Solution,
		PuzzleConfig:   session.Config,
	}
}

// CreateSession creates a new solve session
func (s *solverServiceImpl) CreateSession(ctx context.Context, configName string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Load puzzle configuration
	var config *puzzle.Config
	var err error
	if configName != "" {
		config, err = s.configs.LoadConfig(configName)
		if err != nil {
			// Provide helpful error message with available options
			if strings.Contains(err.Error(), "configuration not found") {
				availableConfigs, listErr := s.configs.ListConfigs()
				if listErr == nil && len(availableConfigs) > 0 {
					var configIDs []string
					for _, cfg := range availableConfigs {
						configIDs = append(configIDs, cfg.ConfigID)
					}
					return nil, fmt.Errorf("config '%s' not found. Available configs: %v", configName, configIDs)
				}
				return nil, fmt.Errorf("config '%s' not found. Use /api/configs to list available configurations", configName)
			}
			return nil, fmt.Errorf("failed to load config %s: %w", configName, err)
		}
	} else {
		config = s.configs.GetDefault()
	}

	// Let the session manager generate a proper 4-character ID
	session, err := s.sessions.Create("", config)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	info := s.sessionInfo(session)
	if configName != "" {
		info.ConfigName = configName
	}
	return info, nil
}

// GetSession retrieves session information
func (s *solverServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)

	return s.sessionInfo(session), nil
}

// ListSessions returns all active sessions
func (s *solverServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := s.sessions.List()
	infos := make([]*SessionInfo, 0, len(sessions))
	for _, session := range sessions {
		infos = append(infos, s.sessionInfo(session))
	}
	return infos, nil
}

// DeleteSession removes a session
func (s *solverServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.sessions.Delete(sessionID); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// Solve runs the breadth-first search for a session's puzzle. Solving is
// idempotent: a session that was already solved (or proven unsolvable)
// returns its cached result without searching again.
func (s *solverServiceImpl) Solve(ctx context.Context, sessionID string, onProgress ProgressFunc) (*SolveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	if session.Status != StatusPending {
		return s.solveResult(session), nil
	}

	solver := puzzle.NewSolver(session.Board)
	if onProgress != nil {
		solver.OnProgress = onProgress
	}

	solution, err := solver.Run()
	switch {
	case errors.Is(err, puzzle.ErrUnsolvable):
		session.Status = StatusUnsolvable
	case err != nil:
		return nil, fmt.Errorf("solve failed: %w", err)
	default:
		session.Status = StatusSolved
		session.Solution = solution
	}

	s.sessions.UpdateLastAccessed(sessionID)
	if err := s.sessions.Save(sessionID); err != nil {
		return nil, fmt.Errorf("failed to persist solve result: %w", err)
	}

	return s.solveResult(session), nil
}

// solveResult builds a SolveResult from a session's cached solve outcome.
func (s *solverServiceImpl) solveResult(session *Session) *SolveResult {
	if session.Status == StatusUnsolvable {
		return &SolveResult{
			Status:  StatusUnsolvable,
			Message: session.Config.Messages.Unsolvable,
		}
	}

	solution := session.Solution
	return &SolveResult{
		Status:           StatusSolved,
		Solved:           true,
		Message:          fmt.Sprintf(session.Config.Messages.Solved, solution.Moves),
		Moves:            solution.Moves,
		StatesExplored:   solution.StatesExplored,
		StatesDiscovered: solution.StatesDiscovered,
		Solution:         solution,
	}
}

// GetSolution returns the cached solution for a solved session
func (s *solverServiceImpl) GetSolution(ctx context.Context, sessionID string) (*puzzle.Solution, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	switch session.Status {
	case StatusSolved:
		return session.Solution, nil
	case StatusUnsolvable:
		return nil, puzzle.ErrUnsolvable
	default:
		return nil, ErrNotSolved
	}
}

// ListConfigs returns all available puzzle configurations
func (s *solverServiceImpl) ListConfigs(ctx context.Context) ([]*ConfigInfo, error) {
	return s.configs.ListConfigs()
}

// LoadConfig loads a puzzle configuration by name
func (s *solverServiceImpl) LoadConfig(ctx context.Context, configName string) (*puzzle.Config, error) {
	return s.configs.LoadConfig(configName)
}

// SaveConfig validates and saves a puzzle configuration
func (s *solverServiceImpl) SaveConfig(ctx context.Context, configName string, config *puzzle.Config) error {
	return s.configs.SaveConfig(configName, config)
}
