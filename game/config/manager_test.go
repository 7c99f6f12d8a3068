package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/gridlock-games/rushhour/game/puzzle"
)

// writeTestConfig writes a valid beginner configuration into dir under the
// given config ID and returns it.
func writeTestConfig(t *testing.T, dir, configID, displayName string) *puzzle.Config {
	t.Helper()

	config := puzzle.DefaultConfig()
	config.Name = displayName

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		t.Fatalf("failed to marshal test config: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, configID+".json"), data, 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	return config
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	writeTestConfig(t, dir, "beginner", "Beginner")

	m := NewManager(dir)
	config, err := m.LoadConfig("beginner")
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if config.Name != "Beginner" {
		t.Errorf("expected name 'Beginner', got %q", config.Name)
	}
	if config.BoardSize != puzzle.DefaultBoardSize {
		t.Errorf("expected board size %d, got %d", puzzle.DefaultBoardSize, config.BoardSize)
	}
}

func TestLoadConfig_NotFound(t *testing.T) {
	m := NewManager(t.TempDir())
	_, err := m.LoadConfig("missing")
	if !errors.Is(err, ErrConfigNotFound) {
		t.Errorf("expected ErrConfigNotFound, got %v", err)
	}
}

func TestLoadConfig_MalformedJSON(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "broken.json"), []byte("{not json"), 0644); err != nil {
		t.Fatalf("failed to write broken config: %v", err)
	}

	m := NewManager(dir)
	_, err := m.LoadConfig("broken")
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestLoadConfig_FailsValidation(t *testing.T) {
	dir := t.TempDir()
	config := puzzle.DefaultConfig()
	config.Layout[2] = "P..Q.O" // no goal car anywhere
	data, _ := json.Marshal(config)
	if err := os.WriteFile(filepath.Join(dir, "nogoal.json"), data, 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	m := NewManager(dir)
	_, err := m.LoadConfig("nogoal")
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestLoadConfig_Caches(t *testing.T) {
	dir := t.TempDir()
	writeTestConfig(t, dir, "beginner", "Beginner")

	m := NewManager(dir)
	first, err := m.LoadConfig("beginner")
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	// Remove the file; the cached config must still be served.
	if err := os.Remove(filepath.Join(dir, "beginner.json")); err != nil {
		t.Fatalf("failed to remove config file: %v", err)
	}

	second, err := m.LoadConfig("beginner")
	if err != nil {
		t.Fatalf("LoadConfig after removal failed: %v", err)
	}
	if first != second {
		t.Error("expected cached config to be reused")
	}
}

func TestRefreshCache(t *testing.T) {
	dir := t.TempDir()
	writeTestConfig(t, dir, "beginner", "Beginner")

	m := NewManager(dir)
	if _, err := m.LoadConfig("beginner"); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	writeTestConfig(t, dir, "beginner", "Beginner (updated)")
	m.RefreshCache()

	config, err := m.LoadConfig("beginner")
	if err != nil {
		t.Fatalf("LoadConfig after refresh failed: %v", err)
	}
	if config.Name != "Beginner (updated)" {
		t.Errorf("expected refreshed config, got name %q", config.Name)
	}
}

func TestListConfigs(t *testing.T) {
	dir := t.TempDir()
	writeTestConfig(t, dir, "beginner", "Beginner")
	writeTestConfig(t, dir, "expert", "Expert")

	// Files that are not valid configs must be skipped, not fail the listing.
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hi"), 0644); err != nil {
		t.Fatalf("failed to write stray file: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "broken.json"), []byte("{"), 0644); err != nil {
		t.Fatalf("failed to write broken file: %v", err)
	}

	m := NewManager(dir)
	infos, err := m.ListConfigs()
	if err != nil {
		t.Fatalf("ListConfigs failed: %v", err)
	}
	if len(infos) != 2 {
		t.Fatalf("expected 2 configs, got %d", len(infos))
	}

	byID := make(map[string]bool)
	for _, info := range infos {
		byID[info.ConfigID] = true
		if info.BoardSize != puzzle.DefaultBoardSize {
			t.Errorf("config %s: expected board size %d, got %d", info.ConfigID, puzzle.DefaultBoardSize, info.BoardSize)
		}
		// The beginner layout has X, A, B, C, O, P, Q, R.
		if info.Cars != 8 {
			t.Errorf("config %s: expected 8 cars, got %d", info.ConfigID, info.Cars)
		}
	}
	if !byID["beginner"] || !byID["expert"] {
		t.Errorf("expected beginner and expert in listing, got %v", byID)
	}
}

func TestListConfigs_MissingDirectory(t *testing.T) {
	m := NewManager(filepath.Join(t.TempDir(), "nope"))
	infos, err := m.ListConfigs()
	if err != nil {
		t.Fatalf("ListConfigs failed: %v", err)
	}
	if len(infos) != 0 {
		t.Errorf("expected empty listing, got %d entries", len(infos))
	}
}

func TestGetDefault_Fallback(t *testing.T) {
	m := NewManager(t.TempDir())
	config := m.GetDefault()
	if config == nil {
		t.Fatal("expected built-in default config")
	}
	if err := puzzle.ValidateConfig(config); err != nil {
		t.Errorf("built-in default config must validate: %v", err)
	}
}

func TestGetDefault_FromFile(t *testing.T) {
	dir := t.TempDir()
	writeTestConfig(t, dir, "default", "House Default")

	m := NewManager(dir)
	config := m.GetDefault()
	if config.Name != "House Default" {
		t.Errorf("expected config from default.json, got %q", config.Name)
	}
}

func TestSetDefault(t *testing.T) {
	dir := t.TempDir()
	writeTestConfig(t, dir, "expert", "Expert")

	m := NewManager(dir)
	m.SetDefault("expert")
	if got := m.GetDefault().Name; got != "Expert" {
		t.Errorf("expected 'Expert' after SetDefault, got %q", got)
	}
}

func TestSetDefault_ConcurrentWithGetDefault(t *testing.T) {
	dir := t.TempDir()
	writeTestConfig(t, dir, "alt", "Alternate")

	m := NewManager(dir)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				m.SetDefault("alt")
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				if m.GetDefault() == nil {
					t.Error("GetDefault returned nil")
					return
				}
			}
		}()
	}
	wg.Wait()

	if got := m.GetDefault().Name; got != "Alternate" {
		t.Errorf("expected 'Alternate' after SetDefault, got %q", got)
	}
}

func TestSaveConfig(t *testing.T) {
	dir := t.TempDir()
	m := NewManager(dir)

	config := puzzle.DefaultConfig()
	config.Name = "Saved"
	if err := m.SaveConfig("saved", config); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "saved.json")); err != nil {
		t.Errorf("expected saved.json to exist: %v", err)
	}

	loaded, err := m.LoadConfig("saved")
	if err != nil {
		t.Fatalf("LoadConfig after save failed: %v", err)
	}
	if loaded.Name != "Saved" {
		t.Errorf("expected saved config, got %q", loaded.Name)
	}
}

func TestSaveConfig_RejectsInvalid(t *testing.T) {
	dir := t.TempDir()
	m := NewManager(dir)

	config := puzzle.DefaultConfig()
	config.Name = ""
	if err := m.SaveConfig("bad", config); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "bad.json")); !os.IsNotExist(err) {
		t.Error("invalid config must not be written to disk")
	}
}

func TestConfigDirEnvOverride(t *testing.T) {
	envDir := t.TempDir()
	writeTestConfig(t, envDir, "beginner", "From Env")
	t.Setenv("CONFIG_DIR", envDir)

	m := NewManager(t.TempDir())
	config, err := m.LoadConfig("beginner")
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if config.Name != "From Env" {
		t.Errorf("expected config from CONFIG_DIR, got %q", config.Name)
	}
}
