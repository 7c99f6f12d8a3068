package puzzle

// Cell markers. Every other printable upper-case letter is a regular car.
const (
	// Empty marks a cell with no car on it.
	Empty byte = '.'
	// GoalCar identifies the car that must escape through the exit row.
	GoalCar byte = 'X'
)

const (
	// Validation constants
	MinBoardSize = 4
	MaxBoardSize = 12
	MinCarLength = 2
	MaxCarLength = 3

	// Reference puzzle dimensions
	DefaultBoardSize = 6
	DefaultExitRow   = 2

	// DefaultProgressInterval is how many explored states pass between
	// progress callbacks during a solve.
	DefaultProgressInterval = 100
)

// MoveInfo describes a single move between two consecutive boards in a
// solution: which car moved, in which direction, and whether it drove off
// the board entirely.
type MoveInfo struct {
	Car       string `json:"car"`
	Direction string `json:"direction"`
	Exited    bool   `json:"exited,omitempty"`
}

// Step is one entry of a solution: the board before the move, the move made
// from it, and the board rendered with the move arrow drawn in. The final
// step of a solution carries no move and renders the winning board plainly.
type Step struct {
	Number   int       `json:"number"`
	Board    Board     `json:"board"`
	Move     *MoveInfo `json:"move,omitempty"`
	Rendered string    `json:"rendered"`
}

// Solution is the optimal move sequence found by a solve, from the initial
// board (step 1) to the winning board.
type Solution struct {
	Steps []Step `json:"steps"`

	// Moves is the solution length in moves, one less than the number of steps.
	Moves int `json:"moves"`

	// StatesExplored counts boards dequeued before the solution was found.
	// StatesDiscovered counts every board ever added to the search frontier.
	StatesExplored   int `json:"states_explored"`
	StatesDiscovered int `json:"states_discovered"`
}
