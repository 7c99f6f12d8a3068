package puzzle

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Config represents a puzzle configuration loaded from JSON.
type Config struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	BoardSize   int               `json:"board_size"`
	ExitRow     int               `json:"exit_row"`
	Layout      []string          `json:"layout"`
	Legend      map[string]string `json:"legend"`
	Messages    struct {
		Solved     string `json:"solved"`
		Unsolvable string `json:"unsolvable"`
		Progress   string `json:"progress"`
	} `json:"messages"`
}

// ValidateConfig validates a puzzle configuration for correctness and
// solvability preconditions. A config that passes validation satisfies the
// car-contiguity invariant the solver relies on.
func ValidateConfig(config *Config) error {
	if config.Name == "" {
		return fmt.Errorf("config validation: name is required")
	}
	if config.Description == "" {
		return fmt.Errorf("config validation: description is required")
	}

	if config.BoardSize < MinBoardSize || config.BoardSize > MaxBoardSize {
		return fmt.Errorf("config validation: board_size must be between %d and %d, got %d", MinBoardSize, MaxBoardSize, config.BoardSize)
	}
	if config.ExitRow < 0 || config.ExitRow >= config.BoardSize {
		return fmt.Errorf("config validation: exit_row must be between 0 and %d, got %d", config.BoardSize-1, config.ExitRow)
	}

	if len(config.Layout) != config.BoardSize {
		return fmt.Errorf("config validation: layout must have %d rows to match board_size, got %d",
			config.BoardSize, len(config.Layout))
	}

	type cellPos struct{ y, x int }
	cars := make(map[byte][]cellPos)

	for y, row := range config.Layout {
		if len(row) != config.BoardSize {
			return fmt.Errorf("config validation: row %d must have %d characters to match board_size, got %d",
				y+1, config.BoardSize, len(row))
		}
		for x := 0; x < len(row); x++ {
			ch := row[x]
			if ch == Empty {
				continue
			}
			if ch < 'A' || ch > 'Z' {
				return fmt.Errorf("config validation: invalid character '%c' at row %d, col %d", ch, y+1, x+1)
			}
			cars[ch] = append(cars[ch], cellPos{y, x})
		}
	}

	if _, ok := cars[GoalCar]; !ok {
		return fmt.Errorf("config validation: layout must contain the goal car '%c'", GoalCar)
	}

	// Check every car is a straight contiguous run of a legal length.
	// Cells were collected in row-major scan order, so a horizontal car's
	// cells have ascending x and a vertical car's cells ascending y.
	symbols := make([]byte, 0, len(cars))
	for sym := range cars {
		symbols = append(symbols, sym)
	}
	sort.Slice(symbols, func(i, j int) bool { return symbols[i] < symbols[j] })

	for _, sym := range symbols {
		cells := cars[sym]
		if len(cells) < MinCarLength || len(cells) > MaxCarLength {
			return fmt.Errorf("config validation: car '%c' has %d cells, must have between %d and %d",
				sym, len(cells), MinCarLength, MaxCarLength)
		}

		horizontal := cells[0].y == cells[1].y
		for i := 1; i < len(cells); i++ {
			prev, cur := cells[i-1], cells[i]
			if horizontal && (cur.y != prev.y || cur.x != prev.x+1) {
				return fmt.Errorf("config validation: car '%c' is not a contiguous horizontal run", sym)
			}
			if !horizontal && (cur.x != prev.x || cur.y != prev.y+1) {
				return fmt.Errorf("config validation: car '%c' is not a contiguous vertical run", sym)
			}
		}
	}

	goal := cars[GoalCar]
	if goal[0].y != goal[len(goal)-1].y {
		return fmt.Errorf("config validation: goal car '%c' must be horizontal", GoalCar)
	}
	if goal[0].y != config.ExitRow {
		return fmt.Errorf("config validation: goal car '%c' must sit on exit_row %d, found on row %d",
			GoalCar, config.ExitRow, goal[0].y)
	}
	if goal[len(goal)-1].x >= config.BoardSize-1 {
		return fmt.Errorf("config validation: goal car '%c' already touches the right edge, puzzle is pre-solved", GoalCar)
	}

	// Validate legend
	requiredLegend := map[string]string{
		string(GoalCar): "goal car",
		string(Empty):   "empty",
	}
	for key, expectedValue := range requiredLegend {
		if value, ok := config.Legend[key]; !ok || value != expectedValue {
			return fmt.Errorf("config validation: legend['%s'] must be '%s', got '%s'", key, expectedValue, value)
		}
	}

	// Validate messages
	if config.Messages.Solved == "" {
		return fmt.Errorf("config validation: messages.solved is required")
	}
	if !strings.Contains(config.Messages.Solved, "%d") {
		return fmt.Errorf("config validation: messages.solved must contain %%d for the move count")
	}
	if config.Messages.Unsolvable == "" {
		return fmt.Errorf("config validation: messages.unsolvable is required")
	}
	if config.Messages.Progress != "" && !strings.Contains(config.Messages.Progress, "%d") {
		return fmt.Errorf("config validation: messages.progress must contain %%d for the state count")
	}

	return nil
}

// LoadConfig loads a puzzle configuration from a JSON file.
func LoadConfig(filename string) (*Config, error) {
	// Support CONFIG_DIR environment variable for alternative config directory
	configPath := filename
	if configDir := os.Getenv("CONFIG_DIR"); configDir != "" {
		if strings.HasPrefix(filename, "configs/") {
			configPath = filepath.Join(configDir, strings.TrimPrefix(filename, "configs/"))
		}
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	if err := ValidateConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// Board builds the initial board described by the configuration.
func (c *Config) Board() (Board, error) {
	return NewBoard(c.Layout, c.ExitRow)
}

// DefaultConfig returns the built-in beginner puzzle, used when no config
// directory entry is selected.
func DefaultConfig() *Config {
	config := &Config{
		Name:        "Beginner",
		Description: "Card #1 of the classic deck. One truck and a little shuffling.",
		BoardSize:   DefaultBoardSize,
		ExitRow:     DefaultExitRow,
		Layout: []string{
			"AA...O",
			"P..Q.O",
			"PXXQ.O",
			"P..Q..",
			"B...CC",
			"B.RRR.",
		},
		Legend: map[string]string{
			string(GoalCar): "goal car",
			string(Empty):   "empty",
		},
	}
	config.Messages.Solved = "Solved in %d moves"
	config.Messages.Unsolvable = "Cannot find solution!"
	config.Messages.Progress = "...explored %d board states"
	return config
}
