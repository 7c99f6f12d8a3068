package puzzle

import "strings"

// Arrow glyphs drawn by Render to show which way a car moved.
const (
	arrowRight = '>'
	arrowLeft  = '<'
	arrowDown  = 'v'
	arrowUp    = '^'
)

// Render produces the board as text, one row per line. When next is the
// board that follows this one in a solution, the single cell the moving car
// slid into is replaced with a directional arrow glyph. When the move drove
// a car off the right edge of the exit row entirely, the car's remaining
// cells are drawn followed by trailing '>' glyphs past the last column to
// show the departure. With next nil the board is rendered plainly.
func (b Board) Render(next *Board) string {
	if next == nil {
		next = &b
	}

	var sb strings.Builder
	for y := 0; y < b.size; y++ {
		for x := 0; x < b.size; x++ {
			c := b.Cell(y, x)
			n := next.Cell(y, x)
			if c != n {
				if c == Empty {
					// A car slid into this cell; figure out which
					// direction arrow to draw.
					switch n {
					case b.CellSafe(y, x-1):
						c = arrowRight
					case b.CellSafe(y, x+1):
						c = arrowLeft
					case b.CellSafe(y-1, x):
						c = arrowDown
					case b.CellSafe(y+1, x):
						c = arrowUp
					default:
						panic("puzzle: successor board is not reachable by a single move")
					}
				} else if n == Empty && y == b.exitRow && x < b.size-1 {
					// A car may have left the board entirely through
					// the exit row.
					carLeftBoard := true
					for xx := x + 1; xx < b.size; xx++ {
						if next.Cell(y, xx) != Empty || (b.Cell(y, xx) != Empty && b.Cell(y, xx) != c) {
							carLeftBoard = false
							break
						}
					}
					if carLeftBoard {
						for x < b.size && b.Cell(y, x) == c {
							sb.WriteByte(c)
							x++
						}
						for ; x < b.size+1; x++ {
							sb.WriteByte(arrowRight)
						}
						break
					}
				}
			}
			sb.WriteByte(c)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
