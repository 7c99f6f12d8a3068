package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/gridlock-games/rushhour/game/puzzle"
	"github.com/gridlock-games/rushhour/game/service"
)

// Sentinel errors for configuration operations.
var (
	ErrConfigNotFound = errors.New("configuration not found")
	ErrInvalidConfig  = errors.New("invalid configuration")
)

// Manager handles loading, caching and saving puzzle configurations from a
// configs directory.
type Manager struct {
	configDir   string
	defaultName string
	cache       map[string]*puzzle.Config
	mu          sync.RWMutex
}

// NewManager creates a configuration manager rooted at configDir. The
// CONFIG_DIR environment variable overrides the directory when set.
func NewManager(configDir string) *Manager {
	if envDir := os.Getenv("CONFIG_DIR"); envDir != "" {
		configDir = envDir
	}
	return &Manager{
		configDir:   configDir,
		defaultName: "default",
		cache:       make(map[string]*puzzle.Config),
	}
}

// configPath returns the file path for a config ID.
func (m *Manager) configPath(name string) string {
	return filepath.Join(m.configDir, name+".json")
}

// LoadConfig loads a configuration by config ID, using the cache when the
// file was loaded before.
func (m *Manager) LoadConfig(name string) (*puzzle.Config, error) {
	m.mu.RLock()
	if config, ok := m.cache[name]; ok {
		m.mu.RUnlock()
		return config, nil
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	// Another goroutine may have populated the cache while we waited.
	if config, ok := m.cache[name]; ok {
		return config, nil
	}

	config, err := m.loadFromFile(name)
	if err != nil {
		return nil, err
	}

	m.cache[name] = config
	return config, nil
}

// loadFromFile reads and validates a configuration file. Callers hold the
// write lock.
func (m *Manager) loadFromFile(name string) (*puzzle.Config, error) {
	data, err := os.ReadFile(m.configPath(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, name)
		}
		return nil, fmt.Errorf("failed to read config %s: %w", name, err)
	}

	var config puzzle.Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, name, err)
	}

	if err := puzzle.ValidateConfig(&config); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, name, err)
	}

	return &config, nil
}

// ListConfigs returns information about every valid configuration in the
// configs directory. Invalid files are skipped with a warning rather than
// failing the whole listing.
func (m *Manager) ListConfigs() ([]*service.ConfigInfo, error) {
	entries, err := os.ReadDir(m.configDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []*service.ConfigInfo{}, nil
		}
		return nil, fmt.Errorf("failed to read config directory: %w", err)
	}

	infos := make([]*service.ConfigInfo, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		configID := strings.TrimSuffix(entry.Name(), ".json")
		config, err := m.LoadConfig(configID)
		if err != nil {
			log.Printf("Warning: skipping config %s: %v", entry.Name(), err)
			continue
		}

		infos = append(infos, &service.ConfigInfo{
			Filename:    entry.Name(),
			ConfigID:    configID,
			Name:        config.Name,
			Description: config.Description,
			BoardSize:   config.BoardSize,
			ExitRow:     config.ExitRow,
			Cars:        countCars(config),
		})
	}

	return infos, nil
}

// countCars counts the distinct car symbols in a configuration's layout.
func countCars(config *puzzle.Config) int {
	seen := make(map[byte]bool)
	for _, row := range config.Layout {
		for i := 0; i < len(row); i++ {
			if row[i] != puzzle.Empty {
				seen[row[i]] = true
			}
		}
	}
	return len(seen)
}

// GetDefault returns the default configuration. It tries the configured
// default config ID first and falls back to the built-in beginner puzzle if
// no such file exists.
func (m *Manager) GetDefault() *puzzle.Config {
	m.mu.RLock()
	name := m.defaultName
	m.mu.RUnlock()

	if config, err := m.LoadConfig(name); err == nil {
		return config
	}
	return puzzle.DefaultConfig()
}

// SetDefault changes which config ID GetDefault tries first.
func (m *Manager) SetDefault(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaultName = name
}

// SaveConfig validates and writes a configuration to the configs directory,
// then updates the cache.
func (m *Manager) SaveConfig(name string, config *puzzle.Config) error {
	if err := puzzle.ValidateConfig(config); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config %s: %w", name, err)
	}

	if err := os.MkdirAll(m.configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(m.configPath(name), data, 0644); err != nil {
		return fmt.Errorf("failed to write config %s: %w", name, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.cache[name] = config
	return nil
}

// RefreshCache drops all cached configurations so the next load re-reads the
// files. Used by the periodic filesystem sync to pick up edits.
func (m *Manager) RefreshCache() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cache = make(map[string]*puzzle.Config)
}
