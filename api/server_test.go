package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gridlock-games/rushhour/game/puzzle"
	"github.com/gridlock-games/rushhour/game/service"
)

// MockSolverService implements service.SolverService for testing
type MockSolverService struct {
	// Session Management
	CreateSessionFunc func(ctx context.Context, configName string) (*service.SessionInfo, error)
	GetSessionFunc    func(ctx context.Context, sessionID string) (*service.SessionInfo, error)
	ListSessionsFunc  func(ctx context.Context) ([]*service.SessionInfo, error)
	DeleteSessionFunc func(ctx context.Context, sessionID string) error

	// Solving
	SolveFunc       func(ctx context.Context, sessionID string, onProgress service.ProgressFunc) (*service.SolveResult, error)
	GetSolutionFunc func(ctx context.Context, sessionID string) (*puzzle.Solution, error)

	// Configuration
	ListConfigsFunc func(ctx context.Context) ([]*service.ConfigInfo, error)
	LoadConfigFunc  func(ctx context.Context, configName string) (*puzzle.Config, error)
	SaveConfigFunc  func(ctx context.Context, configName string, config *puzzle.Config) error
}

func (m *MockSolverService) CreateSession(ctx context.Context, configName string) (*service.SessionInfo, error) {
	if m.CreateSessionFunc != nil {
		return m.CreateSessionFunc(ctx, configName)
	}
	return &service.SessionInfo{
		ID:         "ab12",
		ConfigName: configName,
		Status:     service.StatusPending,
		CreatedAt:  time.Now(),
	}, nil
}

func (m *MockSolverService) GetSession(ctx context.Context, sessionID string) (*service.SessionInfo, error) {
	if m.GetSessionFunc != nil {
		return m.GetSessionFunc(ctx, sessionID)
	}
	return &service.SessionInfo{
		ID:         sessionID,
		ConfigName: "beginner",
		Status:     service.StatusPending,
		CreatedAt:  time.Now(),
	}, nil
}

func (m *MockSolverService) ListSessions(ctx context.Context) ([]*service.SessionInfo, error) {
	if m.ListSessionsFunc != nil {
		return m.ListSessionsFunc(ctx)
	}
	return []*service.SessionInfo{}, nil
}

func (m *MockSolverService) DeleteSession(ctx context.Context, sessionID string) error {
	if m.DeleteSessionFunc != nil {
		return m.DeleteSessionFunc(ctx, sessionID)
	}
	return nil
}

func (m *MockSolverService) Solve(ctx context.Context, sessionID string, onProgress service.ProgressFunc) (*service.SolveResult, error) {
	if m.SolveFunc != nil {
		return m.SolveFunc(ctx, sessionID, onProgress)
	}
	return &service.SolveResult{
		Status:  service.StatusSolved,
		Solved:  true,
		Message: "Solved in 8 moves",
		Moves:   8,
	}, nil
}

func (m *MockSolverService) GetSolution(ctx context.Context, sessionID string) (*puzzle.Solution, error) {
	if m.GetSolutionFunc != nil {
		return m.GetSolutionFunc(ctx, sessionID)
	}
	return &puzzle.Solution{Moves: 8}, nil
}

func (m *MockSolverService) ListConfigs(ctx context.Context) ([]*service.ConfigInfo, error) {
	if m.ListConfigsFunc != nil {
		return m.ListConfigsFunc(ctx)
	}
	return []*service.ConfigInfo{}, nil
}

func (m *MockSolverService) LoadConfig(ctx context.Context, configName string) (*puzzle.Config, error) {
	if m.LoadConfigFunc != nil {
		return m.LoadConfigFunc(ctx, configName)
	}
	return puzzle.DefaultConfig(), nil
}

func (m *MockSolverService) SaveConfig(ctx context.Context, configName string, config *puzzle.Config) error {
	if m.SaveConfigFunc != nil {
		return m.SaveConfigFunc(ctx, configName, config)
	}
	return nil
}

func newTestServer(mock *MockSolverService) *Server {
	return NewServer(mock, nil)
}

func TestHandleCreateSession(t *testing.T) {
	server := newTestServer(&MockSolverService{})

	body := bytes.NewBufferString(`{"config_id": "beginner"}`)
	req := httptest.NewRequest("POST", "/api/sessions", body)
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var info service.SessionInfo
	if err := json.Unmarshal(rec.Body.Bytes(), &info); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if info.ConfigName != "beginner" {
		t.Errorf("expected config name 'beginner', got %q", info.ConfigName)
	}
	if info.Status != service.StatusPending {
		t.Errorf("expected pending status, got %q", info.Status)
	}
}

func TestHandleCreateSession_UnknownConfig(t *testing.T) {
	server := newTestServer(&MockSolverService{
		CreateSessionFunc: func(ctx context.Context, configName string) (*service.SessionInfo, error) {
			return nil, fmt.Errorf("config '%s' not found", configName)
		},
	})

	body := bytes.NewBufferString(`{"config_id": "missing"}`)
	req := httptest.NewRequest("POST", "/api/sessions", body)
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestHandleGetSession_NotFound(t *testing.T) {
	server := newTestServer(&MockSolverService{
		GetSessionFunc: func(ctx context.Context, sessionID string) (*service.SessionInfo, error) {
			return nil, fmt.Errorf("session %s not found", sessionID)
		},
	})

	req := httptest.NewRequest("GET", "/api/sessions/nope", nil)
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestHandleListSessions_SortAndLimit(t *testing.T) {
	now := time.Now()
	server := newTestServer(&MockSolverService{
		ListSessionsFunc: func(ctx context.Context) ([]*service.SessionInfo, error) {
			return []*service.SessionInfo{
				{ID: "old", CreatedAt: now.Add(-2 * time.Hour), LastAccessedAt: now.Add(-2 * time.Hour)},
				{ID: "new", CreatedAt: now, LastAccessedAt: now},
				{ID: "mid", CreatedAt: now.Add(-1 * time.Hour), LastAccessedAt: now.Add(-1 * time.Hour)},
			}, nil
		},
	})

	req := httptest.NewRequest("GET", "/api/sessions?sort=created&order=desc&limit=2", nil)
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Count    int                    `json:"count"`
		Sessions []*service.SessionInfo `json:"sessions"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Count != 2 {
		t.Fatalf("expected 2 sessions, got %d", resp.Count)
	}
	if resp.Sessions[0].ID != "new" || resp.Sessions[1].ID != "mid" {
		t.Errorf("unexpected order: %s, %s", resp.Sessions[0].ID, resp.Sessions[1].ID)
	}
}

func TestHandleDeleteSession(t *testing.T) {
	deleted := ""
	server := newTestServer(&MockSolverService{
		DeleteSessionFunc: func(ctx context.Context, sessionID string) error {
			deleted = sessionID
			return nil
		},
	})

	req := httptest.NewRequest("DELETE", "/api/sessions/ab12", nil)
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if deleted != "ab12" {
		t.Errorf("expected delete of ab12, got %q", deleted)
	}
}

func TestHandleSolve(t *testing.T) {
	server := newTestServer(&MockSolverService{})

	req := httptest.NewRequest("POST", "/api/sessions/ab12/solve", nil)
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var result service.SolveResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !result.Solved || result.Moves != 8 {
		t.Errorf("unexpected result: %+v", result)
	}
}

func TestHandleSolve_SessionNotFound(t *testing.T) {
	server := newTestServer(&MockSolverService{
		SolveFunc: func(ctx context.Context, sessionID string, onProgress service.ProgressFunc) (*service.SolveResult, error) {
			return nil, fmt.Errorf("session not found: %s", sessionID)
		},
	})

	req := httptest.NewRequest("POST", "/api/sessions/nope/solve", nil)
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestHandleGetSolution(t *testing.T) {
	server := newTestServer(&MockSolverService{})

	req := httptest.NewRequest("GET", "/api/sessions/ab12/solution", nil)
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var solution puzzle.Solution
	if err := json.Unmarshal(rec.Body.Bytes(), &solution); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if solution.Moves != 8 {
		t.Errorf("expected 8 moves, got %d", solution.Moves)
	}
}

func TestHandleGetSolution_Pending(t *testing.T) {
	server := newTestServer(&MockSolverService{
		GetSolutionFunc: func(ctx context.Context, sessionID string) (*puzzle.Solution, error) {
			return nil, service.ErrNotSolved
		},
	})

	req := httptest.NewRequest("GET", "/api/sessions/ab12/solution", nil)
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", rec.Code)
	}
}

func TestHandleGetSolution_Unsolvable(t *testing.T) {
	server := newTestServer(&MockSolverService{
		GetSolutionFunc: func(ctx context.Context, sessionID string) (*puzzle.Solution, error) {
			return nil, puzzle.ErrUnsolvable
		},
	})

	req := httptest.NewRequest("GET", "/api/sessions/ab12/solution", nil)
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp["status"] != service.StatusUnsolvable {
		t.Errorf("expected unsolvable status, got %q", resp["status"])
	}
}

func TestHandleListConfigs(t *testing.T) {
	server := newTestServer(&MockSolverService{
		ListConfigsFunc: func(ctx context.Context) ([]*service.ConfigInfo, error) {
			return []*service.ConfigInfo{
				{ConfigID: "beginner", Name: "Beginner", BoardSize: 6, ExitRow: 2, Cars: 8},
			}, nil
		},
	})

	req := httptest.NewRequest("GET", "/api/configs", nil)
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var configs []*service.ConfigInfo
	if err := json.Unmarshal(rec.Body.Bytes(), &configs); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(configs) != 1 || configs[0].ConfigID != "beginner" {
		t.Errorf("unexpected configs: %+v", configs)
	}
}

func TestHandleGetConfig_StripsExtension(t *testing.T) {
	var requested string
	server := newTestServer(&MockSolverService{
		LoadConfigFunc: func(ctx context.Context, configName string) (*puzzle.Config, error) {
			requested = configName
			return puzzle.DefaultConfig(), nil
		},
	})

	req := httptest.NewRequest("GET", "/api/configs/beginner.json", nil)
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if requested != "beginner" {
		t.Errorf("expected .json to be stripped, got %q", requested)
	}
}

func TestHandleCreateConfig(t *testing.T) {
	saved := ""
	server := newTestServer(&MockSolverService{
		SaveConfigFunc: func(ctx context.Context, configName string, config *puzzle.Config) error {
			saved = configName
			return nil
		},
	})

	config := puzzle.DefaultConfig()
	data, _ := json.Marshal(config)
	req := httptest.NewRequest("POST", "/api/configs", bytes.NewBuffer(data))
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if saved != config.Name {
		t.Errorf("expected config %q to be saved, got %q", config.Name, saved)
	}
}

func TestHandleCreateConfig_MissingName(t *testing.T) {
	server := newTestServer(&MockSolverService{})

	body := bytes.NewBufferString(`{"board_size": 6}`)
	req := httptest.NewRequest("POST", "/api/configs", body)
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestHandleHealth(t *testing.T) {
	server := newTestServer(&MockSolverService{})

	req := httptest.NewRequest("GET", "/api/health", nil)
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestHandleWebSocket_MissingSession(t *testing.T) {
	server := newTestServer(&MockSolverService{})

	req := httptest.NewRequest("GET", "/ws", nil)
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}
