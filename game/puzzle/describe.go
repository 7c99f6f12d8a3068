package puzzle

import (
	"errors"
	"fmt"
)

// Move directions as reported by DescribeMove and consumed by ApplyMove.
const (
	DirUp    = "up"
	DirDown  = "down"
	DirLeft  = "left"
	DirRight = "right"
)

// DescribeMove diffs two consecutive boards of a solution and reports which
// car moved, in which direction, and whether it drove off the board.
func DescribeMove(from, to Board) (*MoveInfo, error) {
	if from.size != to.size || from.exitRow != to.exitRow {
		return nil, errors.New("boards have different dimensions")
	}

	// A one-step slide leaves exactly one formerly-empty cell occupied.
	for y := 0; y < from.size; y++ {
		for x := 0; x < from.size; x++ {
			if from.Cell(y, x) != Empty || to.Cell(y, x) == Empty {
				continue
			}
			car := to.Cell(y, x)
			var dir string
			switch car {
			case from.CellSafe(y, x-1):
				dir = DirRight
			case from.CellSafe(y, x+1):
				dir = DirLeft
			case from.CellSafe(y-1, x):
				dir = DirDown
			case from.CellSafe(y+1, x):
				dir = DirUp
			default:
				return nil, fmt.Errorf("car %c appeared at (%d,%d) with no adjacent origin", car, y, x)
			}
			return &MoveInfo{Car: string(car), Direction: dir}, nil
		}
	}

	// No destination cell: a car vacated the board through the exit row.
	for x := 0; x < from.size; x++ {
		c := from.Cell(from.exitRow, x)
		if c != Empty && to.Cell(from.exitRow, x) == Empty {
			return &MoveInfo{Car: string(c), Direction: DirRight, Exited: true}, nil
		}
	}

	return nil, errors.New("boards are identical")
}

// ApplyMove replays a described move on a board and returns the resulting
// board. The input board is not modified.
func ApplyMove(b Board, m *MoveInfo) (Board, error) {
	if m == nil || len(m.Car) != 1 {
		return Board{}, errors.New("move must name a single-character car")
	}
	car := m.Car[0]

	minY, minX := b.size, b.size
	maxY, maxX := -1, -1
	for y := 0; y < b.size; y++ {
		for x := 0; x < b.size; x++ {
			if b.Cell(y, x) != car {
				continue
			}
			if y < minY {
				minY = y
			}
			if y > maxY {
				maxY = y
			}
			if x < minX {
				minX = x
			}
			if x > maxX {
				maxX = x
			}
		}
	}
	if maxY < 0 {
		return Board{}, fmt.Errorf("car %c is not on the board", car)
	}

	next := b.Clone()

	if m.Exited {
		if minY != maxY || minY != b.exitRow {
			return Board{}, fmt.Errorf("car %c cannot exit: not horizontal on the exit row", car)
		}
		for x := minX; x <= maxX; x++ {
			next.SetCell(b.exitRow, x, Empty)
		}
		return next, nil
	}

	// Destination cell of the leading edge and the trailing cell to clear.
	var destY, destX, tailY, tailX int
	switch m.Direction {
	case DirRight:
		destY, destX, tailY, tailX = minY, maxX+1, minY, minX
	case DirLeft:
		destY, destX, tailY, tailX = minY, minX-1, minY, maxX
	case DirDown:
		destY, destX, tailY, tailX = maxY+1, minX, minY, minX
	case DirUp:
		destY, destX, tailY, tailX = minY-1, minX, maxY, minX
	default:
		return Board{}, fmt.Errorf("unknown direction %q", m.Direction)
	}

	horizontal := m.Direction == DirLeft || m.Direction == DirRight
	if horizontal && minY != maxY {
		return Board{}, fmt.Errorf("car %c is vertical, cannot move %s", car, m.Direction)
	}
	if !horizontal && minX != maxX {
		return Board{}, fmt.Errorf("car %c is horizontal, cannot move %s", car, m.Direction)
	}
	if destY < 0 || destY >= b.size || destX < 0 || destX >= b.size {
		return Board{}, fmt.Errorf("car %c cannot move %s off the board", car, m.Direction)
	}
	if b.Cell(destY, destX) != Empty {
		return Board{}, fmt.Errorf("car %c is blocked moving %s", car, m.Direction)
	}

	next.SetCell(destY, destX, car)
	next.SetCell(tailY, tailX, Empty)
	return next, nil
}
