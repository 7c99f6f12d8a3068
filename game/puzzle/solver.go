package puzzle

import (
	"errors"
	"log"
	"slices"
)

// ErrUnsolvable is returned by Run when the search space is exhausted
// without freeing the goal car. It is a normal outcome, not a defect;
// commands map it to a non-zero exit status.
var ErrUnsolvable = errors.New("puzzle has no solution")

// frontierEntry pairs a discovered board with the frontier index of the
// board it was discovered from (-1 for the initial board). Entries are
// appended in non-decreasing move-depth order, which is what makes the
// first-reached winning state optimal.
type frontierEntry struct {
	board  Board
	parent int
}

// Solver runs a single exhaustive breadth-first search over board
// configurations. The frontier slice doubles as the BFS queue: the cursor in
// Run is the dequeue pointer and registerIfNovel appends are the enqueues.
//
// A Solver is single-use and not safe for concurrent use.
type Solver struct {
	// OnProgress, if set, is called with the number of explored states
	// every ProgressInterval dequeues. Purely observational; it must not
	// affect the search.
	OnProgress       func(explored int)
	ProgressInterval int

	// Debug logs rejected duplicate boards while searching.
	Debug bool

	root     Board
	frontier []frontierEntry
	visited  map[string]int // board key -> frontier index

	solved      bool
	solutionIdx int
}

// NewSolver prepares a solver for the given initial board. The board must
// satisfy the car-contiguity invariant (see ValidateConfig); the solver
// trusts it and does not re-verify.
func NewSolver(root Board) *Solver {
	return &Solver{
		root:             root.Clone(),
		ProgressInterval: DefaultProgressInterval,
		visited:          make(map[string]int),
	}
}

// registerIfNovel adds a candidate board to the search unless a structurally
// equal board was already discovered. It returns true when the board was
// appended to the frontier.
func (s *Solver) registerIfNovel(b Board, parent int) bool {
	key := b.Key()
	if at, ok := s.visited[key]; ok {
		if s.Debug {
			log.Printf("rejected move, already found state %d", at)
		}
		return false
	}

	s.visited[key] = len(s.frontier)
	s.frontier = append(s.frontier, frontierEntry{board: b.Clone(), parent: parent})

	// The visited set and the frontier must stay in lockstep.
	if len(s.visited) != len(s.frontier) {
		panic("puzzle: visited set and frontier out of sync")
	}
	return true
}

// Run performs the breadth-first search and returns the optimal solution,
// or ErrUnsolvable when no reachable board frees the goal car. It may be
// called once per Solver.
func (s *Solver) Run() (*Solution, error) {
	if len(s.frontier) != 0 {
		panic("puzzle: Run called twice on the same Solver")
	}
	if !s.registerIfNovel(s.root, -1) {
		panic("puzzle: initial board failed to register in a fresh search")
	}

	interval := s.ProgressInterval
	if interval <= 0 {
		interval = DefaultProgressInterval
	}

	// Keep exploring the frontier until we hit the end of the list. The
	// frontier grows while we iterate it, which is exactly the BFS queue.
	for idx := 0; idx < len(s.frontier); idx++ {
		if s.OnProgress != nil && idx%interval == 0 {
			s.OnProgress(idx)
		}

		// One scratch board is reused for every candidate move from this
		// state; checkMove restores it before returning.
		scratch := s.frontier[idx].board.Clone()

		for y := 0; y < scratch.size; y++ {
			for x := 0; x < scratch.size; x++ {
				if scratch.Cell(y, x) != Empty {
					continue
				}

				// Try sliding a car into the empty cell from each of
				// the four directions.
				s.checkMove(&scratch, x, y, 1, 0, idx)
				s.checkMove(&scratch, x, y, -1, 0, idx)
				s.checkMove(&scratch, x, y, 0, 1, idx)
				s.checkMove(&scratch, x, y, 0, -1, idx)

				if s.solved {
					return s.solution(idx + 1), nil
				}
			}
		}
	}

	return nil, ErrUnsolvable
}

// solution walks parent pointers from the winning entry back to the root and
// emits the steps in forward order, numbered from 1.
func (s *Solver) solution(explored int) *Solution {
	var chain []int
	for i := s.solutionIdx; i != -1; i = s.frontier[i].parent {
		if i < 0 || i >= len(s.frontier) {
			panic("puzzle: corrupt parent chain in solution")
		}
		chain = append(chain, i)
	}
	slices.Reverse(chain)

	steps := make([]Step, len(chain))
	for k, idx := range chain {
		steps[k] = Step{Number: k + 1, Board: s.frontier[idx].board}
	}
	for k := range steps {
		if k == len(steps)-1 {
			steps[k].Rendered = steps[k].Board.Render(nil)
			continue
		}
		next := steps[k+1].Board
		steps[k].Rendered = steps[k].Board.Render(&next)
		move, err := DescribeMove(steps[k].Board, next)
		if err != nil {
			panic("puzzle: solution chain contains an impossible transition: " + err.Error())
		}
		steps[k].Move = move
	}

	return &Solution{
		Steps:            steps,
		Moves:            len(steps) - 1,
		StatesExplored:   explored,
		StatesDiscovered: len(s.frontier),
	}
}
