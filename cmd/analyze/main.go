// Command analyze prints quick, human-readable heuristics about puzzle
// configuration files in the project's configs directory. It summarizes
// board dimensions, the car census by length and orientation, empty cells,
// and the cars blocking the exit lane. With --solve it also runs the search
// and reports the optimal move count.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/gridlock-games/rushhour/game/puzzle"
)

func main() {
	cmd := &cli.Command{
		Name:      "analyze",
		Usage:     "summarize puzzle configuration files",
		ArgsUsage: "[config-id ...]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "configs",
				Value: "configs",
				Usage: "directory containing puzzle configuration files",
			},
			&cli.BoolFlag{
				Name:  "solve",
				Usage: "run the solver on each config and report the optimal move count",
			},
		},
		Action: run,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	configDir := cmd.String("configs")

	files := cmd.Args().Slice()
	if len(files) == 0 {
		matches, err := filepath.Glob(filepath.Join(configDir, "*.json"))
		if err != nil {
			return fmt.Errorf("failed to list configs: %w", err)
		}
		if len(matches) == 0 {
			return fmt.Errorf("no configuration files found in %s", configDir)
		}
		for _, match := range matches {
			files = append(files, strings.TrimSuffix(filepath.Base(match), ".json"))
		}
	}

	for _, configID := range files {
		fmt.Printf("\n=== Analyzing %s ===\n", configID)
		analyzeConfig(filepath.Join(configDir, configID+".json"), cmd.Bool("solve"))
	}
	return nil
}

func analyzeConfig(path string, solve bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Printf("Error reading file: %v\n", err)
		return
	}

	var config puzzle.Config
	if err := json.Unmarshal(data, &config); err != nil {
		fmt.Printf("Error parsing JSON: %v\n", err)
		return
	}
	if err := puzzle.ValidateConfig(&config); err != nil {
		fmt.Printf("Invalid configuration: %v\n", err)
		return
	}

	fmt.Printf("Name: %s\n", config.Name)
	fmt.Printf("Board: %d x %d, exit row %d\n", config.BoardSize, config.BoardSize, config.ExitRow)

	census := carCensus(&config)
	fmt.Printf("Cars: %d total (%d horizontal, %d vertical; %d trucks)\n",
		census.total, census.horizontal, census.vertical, census.trucks)
	fmt.Printf("Empty cells: %d\n", census.empties)

	blockers := exitLaneBlockers(&config)
	if len(blockers) > 0 {
		fmt.Printf("Exit lane: blocked by %s\n", strings.Join(blockers, ", "))
	} else {
		fmt.Printf("Exit lane: clear, the goal car can drive straight out\n")
	}

	if !solve {
		return
	}

	board, err := config.Board()
	if err != nil {
		fmt.Printf("Error building board: %v\n", err)
		return
	}

	solver := puzzle.NewSolver(board)
	solution, err := solver.Run()
	switch {
	case errors.Is(err, puzzle.ErrUnsolvable):
		fmt.Printf("Solver: UNSOLVABLE\n")
	case err != nil:
		fmt.Printf("Solver error: %v\n", err)
	default:
		fmt.Printf("Solver: optimal solution has %d moves (%d states explored, %d discovered)\n",
			solution.Moves, solution.StatesExplored, solution.StatesDiscovered)
	}
}

// censusResult aggregates per-layout car statistics.
type censusResult struct {
	total      int
	horizontal int
	vertical   int
	trucks     int
	empties    int
}

func carCensus(config *puzzle.Config) censusResult {
	type span struct {
		cells  int
		firstY int
		lastY  int
	}
	cars := make(map[byte]*span)

	var result censusResult
	for y, row := range config.Layout {
		for x := 0; x < len(row); x++ {
			ch := row[x]
			if ch == puzzle.Empty {
				result.empties++
				continue
			}
			s, ok := cars[ch]
			if !ok {
				s = &span{firstY: y}
				cars[ch] = s
			}
			s.cells++
			s.lastY = y
		}
	}

	result.total = len(cars)
	for _, s := range cars {
		if s.firstY == s.lastY {
			result.horizontal++
		} else {
			result.vertical++
		}
		if s.cells == puzzle.MaxCarLength {
			result.trucks++
		}
	}
	return result
}

// exitLaneBlockers lists the cars standing between the goal car and the right
// edge of the exit row, nearest first.
func exitLaneBlockers(config *puzzle.Config) []string {
	row := config.Layout[config.ExitRow]
	goalEnd := strings.LastIndexByte(row, puzzle.GoalCar)

	var blockers []string
	seen := make(map[byte]bool)
	for x := goalEnd + 1; x < len(row); x++ {
		ch := row[x]
		if ch != puzzle.Empty && !seen[ch] {
			seen[ch] = true
			blockers = append(blockers, string(ch))
		}
	}
	return blockers
}
