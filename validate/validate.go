// Command validate provides a small CLI that validates puzzle configuration
// JSON files in the ../configs directory (or a directory given as the first
// argument). It checks:
//   - JSON structure and required fields
//   - Layout consistency and allowed characters (A-Z cars, '.' empty)
//   - Car geometry: straight contiguous runs of 2 or 3 cells
//   - Goal car placement: horizontal, on the exit row, not pre-solved
//   - Required legend entries and message keys
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gridlock-games/rushhour/game/puzzle"
)

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Errors contains informational messages; otherwise it
// accumulates the validation errors that were found.
type ValidationResult struct {
	File   string
	Valid  bool
	Errors []string
}

// validateConfig loads and validates a single configuration JSON file,
// delegating the layout checks to the solver's validation and adding a
// short informational summary for valid files.
func validateConfig(filePath string) ValidationResult {
	result := ValidationResult{
		File:   filepath.Base(filePath),
		Valid:  true,
		Errors: []string{},
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Failed to read file: %v", err))
		return result
	}

	var config puzzle.Config
	if err := json.Unmarshal(data, &config); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Invalid JSON: %v", err))
		return result
	}

	if err := puzzle.ValidateConfig(&config); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, err.Error())
		return result
	}

	// Add informational data
	cars, empties := layoutCensus(config.Layout)
	result.Errors = append(result.Errors, fmt.Sprintf("✓ Name: %s", config.Name))
	result.Errors = append(result.Errors, fmt.Sprintf("✓ Board: %dx%d, exit row %d", config.BoardSize, config.BoardSize, config.ExitRow))
	result.Errors = append(result.Errors, fmt.Sprintf("✓ Cars: %d", cars))
	result.Errors = append(result.Errors, fmt.Sprintf("✓ Empty cells: %d", empties))
	result.Errors = append(result.Errors, fmt.Sprintf("✓ Exit-lane blockers: %d", exitLaneBlockers(&config)))

	return result
}

// layoutCensus counts distinct cars and empty cells in a layout.
func layoutCensus(layout []string) (cars, empties int) {
	seen := make(map[byte]bool)
	for _, row := range layout {
		for i := 0; i < len(row); i++ {
			if row[i] == puzzle.Empty {
				empties++
			} else {
				seen[row[i]] = true
			}
		}
	}
	return len(seen), empties
}

// exitLaneBlockers counts the distinct cars standing between the goal car and
// the right edge of the exit row. A rough difficulty signal, not a bound.
func exitLaneBlockers(config *puzzle.Config) int {
	row := config.Layout[config.ExitRow]

	goalEnd := strings.LastIndexByte(row, puzzle.GoalCar)
	blockers := make(map[byte]bool)
	for x := goalEnd + 1; x < len(row); x++ {
		if row[x] != puzzle.Empty {
			blockers[row[x]] = true
		}
	}
	return len(blockers)
}

// main scans the config directory for *.json files and validates each one,
// printing a concise report and exiting with non-zero status if any are
// invalid.
func main() {
	configDir := "../configs"
	if len(os.Args) > 1 {
		configDir = os.Args[1]
	}

	files, err := filepath.Glob(filepath.Join(configDir, "*.json"))
	if err != nil {
		fmt.Printf("Error finding config files: %v\n", err)
		os.Exit(1)
	}

	allValid := true
	for _, file := range files {
		result := validateConfig(file)

		fmt.Printf("\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Println("✅ VALID")
			for _, info := range result.Errors {
				fmt.Println("  " + info)
			}
		} else {
			fmt.Println("❌ INVALID")
			allValid = false
			for _, err := range result.Errors {
				fmt.Println("  ❌ " + err)
			}
		}
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Println("✅ All configurations are valid!")
	} else {
		fmt.Println("❌ Some configurations have errors")
		os.Exit(1)
	}
}
