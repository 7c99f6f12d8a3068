package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gridlock-games/rushhour/game/puzzle"
	"github.com/gridlock-games/rushhour/game/service"
)

// FilePersistence implements SessionPersistence using the local filesystem.
// Each session is stored as one JSON file named <id>.json under the sessions
// directory.
type FilePersistence struct {
	sessionsDir string
	configs     service.ConfigManager
}

// NewFilePersistence creates a new file-based session persistence layer.
// The sessions directory is created if it does not exist.
func NewFilePersistence(sessionsDir string, configs service.ConfigManager) (*FilePersistence, error) {
	if err := os.MkdirAll(sessionsDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create sessions directory: %w", err)
	}
	return &FilePersistence{
		sessionsDir: sessionsDir,
		configs:     configs,
	}, nil
}

// getFilePath returns the file path for a session ID
func (fp *FilePersistence) getFilePath(id string) string {
	return filepath.Join(fp.sessionsDir, strings.ToLower(id)+".json")
}

// Save persists a session to a JSON file
func (fp *FilePersistence) Save(session *service.Session) error {
	data := PersistedSessionData{
		ID:             session.ID,
		ConfigName:     session.Config.Name,
		Status:         session.Status,
		CreatedAt:      session.CreatedAt,
		LastAccessedAt: session.LastAccessedAt,
		Board:          session.Board,
		Solution:       session.Solution,
	}

	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session data: %w", err)
	}

	filePath := fp.getFilePath(session.ID)
	if err := os.WriteFile(filePath, jsonData, 0644); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}

	return nil
}

// Load retrieves a session from its JSON file and re-attaches the puzzle
// configuration it was created from. If that configuration no longer exists
// the default configuration is used instead; the persisted board still wins.
func (fp *FilePersistence) Load(id string) (*service.Session, error) {
	filePath := fp.getFilePath(id)

	jsonData, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("session %s not found in storage", id)
		}
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	var data PersistedSessionData
	if err := json.Unmarshal(jsonData, &data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session data: %w", err)
	}

	config := fp.loadConfigByName(data.ConfigName)

	return &service.Session{
		ID:             data.ID,
		Config:         config,
		Board:          data.Board,
		Status:         data.Status,
		Solution:       data.Solution,
		CreatedAt:      data.CreatedAt,
		LastAccessedAt: data.LastAccessedAt,
	}, nil
}

// loadConfigByName resolves a persisted display name back to a loadable
// configuration. Persisted files store the display name, config files are
// addressed by config ID, so the lookup goes through the config listing.
func (fp *FilePersistence) loadConfigByName(name string) *puzzle.Config {
	if configs, err := fp.configs.ListConfigs(); err == nil {
		for _, info := range configs {
			if info.Name == name || info.ConfigID == name {
				if config, err := fp.configs.LoadConfig(info.ConfigID); err == nil {
					return config
				}
			}
		}
	}
	return fp.configs.GetDefault()
}

// Delete removes a session's JSON file
func (fp *FilePersistence) Delete(id string) error {
	filePath := fp.getFilePath(id)
	if err := os.Remove(filePath); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to delete session file: %w", err)
	}
	return nil
}

// ListAll returns the IDs of all persisted sessions
func (fp *FilePersistence) ListAll() ([]string, error) {
	entries, err := os.ReadDir(fp.sessionsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read sessions directory: %w", err)
	}

	var ids []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		ids = append(ids, strings.TrimSuffix(entry.Name(), ".json"))
	}
	return ids, nil
}

// Exists checks whether a session file is present in storage
func (fp *FilePersistence) Exists(id string) bool {
	_, err := os.Stat(fp.getFilePath(id))
	return err == nil
}
