package puzzle

import (
	"encoding/json"
	"fmt"
)

// Board is one complete configuration of cars on a square grid. Cells hold
// car identifiers or the Empty marker, indexed (y, x) with y the row.
//
// Boards are value types: cloned copies share nothing, and every board
// stored by the solver is never mutated after insertion. The zero Board is
// not usable; construct one with NewBoard or Config.Board.
type Board struct {
	size    int
	exitRow int
	cells   []byte
}

// NewBoard builds a board from layout rows ('.' for empty cells, letters for
// cars). It checks shape only: the rows must form a square grid of a
// supported size and the exit row must be on the board. Car geometry is the
// caller's responsibility (see ValidateConfig); the solver trusts it.
func NewBoard(rows []string, exitRow int) (Board, error) {
	size := len(rows)
	if size < MinBoardSize || size > MaxBoardSize {
		return Board{}, fmt.Errorf("board must have between %d and %d rows, got %d", MinBoardSize, MaxBoardSize, size)
	}
	if exitRow < 0 || exitRow >= size {
		return Board{}, fmt.Errorf("exit row %d is outside the board (size %d)", exitRow, size)
	}

	cells := make([]byte, 0, size*size)
	for i, row := range rows {
		if len(row) != size {
			return Board{}, fmt.Errorf("row %d must have %d cells to match the board size, got %d", i+1, size, len(row))
		}
		cells = append(cells, row...)
	}

	return Board{size: size, exitRow: exitRow, cells: cells}, nil
}

// Size returns the side length of the board.
func (b Board) Size() int { return b.size }

// ExitRow returns the row along which cars leave the board.
func (b Board) ExitRow() int { return b.exitRow }

// Cell returns the value of the cell at (y, x). Out-of-range coordinates are
// a programming error and panic; callers validate bounds structurally while
// scanning the grid.
func (b Board) Cell(y, x int) byte {
	if x < 0 || x >= b.size || y < 0 || y >= b.size {
		panic(fmt.Sprintf("puzzle: cell (%d,%d) out of range on %dx%d board", y, x, b.size, b.size))
	}
	return b.cells[y*b.size+x]
}

// CellSafe returns the value of the cell at (y, x), or 0 for coordinates off
// the board. Used by rendering to simplify boundary checks.
func (b Board) CellSafe(y, x int) byte {
	if x < 0 || x >= b.size || y < 0 || y >= b.size {
		return 0
	}
	return b.cells[y*b.size+x]
}

// SetCell writes a cell value with bounds checking.
func (b *Board) SetCell(y, x int, c byte) {
	if x < 0 || x >= b.size || y < 0 || y >= b.size {
		panic(fmt.Sprintf("puzzle: cell (%d,%d) out of range on %dx%d board", y, x, b.size, b.size))
	}
	b.cells[y*b.size+x] = c
}

// Key returns the structural identity of the board, used for visited-set
// membership. Two boards with the same grid contents have the same key.
func (b Board) Key() string {
	return string(b.cells)
}

// Equal reports whether two boards have identical grid contents.
func (b Board) Equal(other Board) bool {
	return b.size == other.size && b.exitRow == other.exitRow && b.Key() == other.Key()
}

// Clone returns a deep copy that can be mutated independently.
func (b Board) Clone() Board {
	cells := make([]byte, len(b.cells))
	copy(cells, b.cells)
	return Board{size: b.size, exitRow: b.exitRow, cells: cells}
}

// Rows returns the grid as layout strings, one per row.
func (b Board) Rows() []string {
	rows := make([]string, b.size)
	for y := 0; y < b.size; y++ {
		rows[y] = string(b.cells[y*b.size : (y+1)*b.size])
	}
	return rows
}

// String renders the board without move annotations.
func (b Board) String() string {
	return b.Render(nil)
}

// boardJSON is the wire form of a Board.
type boardJSON struct {
	ExitRow int      `json:"exit_row"`
	Rows    []string `json:"rows"`
}

// MarshalJSON encodes the board as its exit row plus layout rows.
func (b Board) MarshalJSON() ([]byte, error) {
	return json.Marshal(boardJSON{ExitRow: b.exitRow, Rows: b.Rows()})
}

// UnmarshalJSON decodes a board from its wire form, re-checking shape.
func (b *Board) UnmarshalJSON(data []byte) error {
	var bj boardJSON
	if err := json.Unmarshal(data, &bj); err != nil {
		return err
	}
	board, err := NewBoard(bj.Rows, bj.ExitRow)
	if err != nil {
		return fmt.Errorf("invalid board: %w", err)
	}
	*b = board
	return nil
}
