package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/gridlock-games/rushhour/game/puzzle"
)

func writeConfigFile(t *testing.T, dir, name string, config *puzzle.Config) string {
	t.Helper()
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		t.Fatalf("failed to marshal config: %v", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestValidateConfig_Valid(t *testing.T) {
	path := writeConfigFile(t, t.TempDir(), "beginner.json", puzzle.DefaultConfig())

	result := validateConfig(path)
	if !result.Valid {
		t.Fatalf("expected valid result, got errors: %v", result.Errors)
	}
	if len(result.Errors) == 0 {
		t.Error("expected informational summary for valid config")
	}
}

func TestValidateConfig_Invalid(t *testing.T) {
	config := puzzle.DefaultConfig()
	config.Layout[2] = "P..Q.O" // goal car removed
	path := writeConfigFile(t, t.TempDir(), "broken.json", config)

	result := validateConfig(path)
	if result.Valid {
		t.Fatal("expected invalid result")
	}
	if len(result.Errors) == 0 {
		t.Error("expected validation errors to be reported")
	}
}

func TestValidateConfig_MalformedJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(path, []byte("{nope"), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	result := validateConfig(path)
	if result.Valid {
		t.Fatal("expected invalid result for malformed JSON")
	}
}

func TestLayoutCensus(t *testing.T) {
	config := puzzle.DefaultConfig()
	cars, empties := layoutCensus(config.Layout)
	if cars != 8 {
		t.Errorf("expected 8 cars, got %d", cars)
	}
	// 6x6 board, 8 cars: X(2) A(2) B(2) C(2) P(3) Q(3) O(3) R(3) = 20 cells
	if empties != 16 {
		t.Errorf("expected 16 empty cells, got %d", empties)
	}
}

func TestExitLaneBlockers(t *testing.T) {
	config := puzzle.DefaultConfig()
	// Exit row is "PXXQ.O": Q and O stand between the goal car and the edge.
	if got := exitLaneBlockers(config); got != 2 {
		t.Errorf("expected 2 blockers, got %d", got)
	}
}
