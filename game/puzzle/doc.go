// Package puzzle provides the core solving logic for Gridlock sliding-car
// parking puzzles (Rush Hour).
//
// The puzzle package implements:
//   - The board model: a square grid of cells holding car identifiers
//   - Legal move generation, including cars driving off the exit row
//   - Exhaustive breadth-first search over board configurations
//   - Optimal solution reconstruction and ASCII rendering with move arrows
//   - Configuration loading and validation for puzzle layouts
//
// Core Types:
//
// Board is one complete configuration of cars on the grid. Solver owns the
// search state for a single solve and produces a Solution, an ordered list of
// Steps from the initial board to the winning board. Config defines a puzzle
// loaded from a JSON file.
//
// Usage:
//
//	cfg, err := puzzle.LoadConfig("configs/beginner.json")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	board, err := cfg.Board()
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	solver := puzzle.NewSolver(board)
//	solution, err := solver.Run()
//	if errors.Is(err, puzzle.ErrUnsolvable) {
//		log.Fatal("no way out")
//	}
//
//	for _, step := range solution.Steps {
//		fmt.Println(step.Rendered)
//	}
//
// Game Rules:
//
// Cars are straight runs of two or three cells that slide along their axis,
// one cell per move. The goal car ('X') sits on the exit row and must reach
// the right edge of the board to escape. Any other car that reaches the right
// edge of the exit row drives off the board entirely, freeing its cells. The
// search is unweighted breadth-first, so the first solution found uses the
// minimum possible number of moves.
package puzzle
