package puzzle

// checkMove checks whether a car can slide one step into the empty cell at
// (y, x). dx, dy is the direction we scan from the empty cell; the car moves
// in the opposite direction, into the empty space. from is the frontier
// index of the board being explored.
//
// The scratch board is mutated in place to evaluate each candidate and is
// guaranteed to be restored to its pre-call contents on every return path.
func (s *Solver) checkMove(b *Board, x, y, dx, dy, from int) {
	// Once a winning state is found the search is over; evaluating further
	// candidates would only pad the frontier.
	if s.solved {
		return
	}

	onBoard := func(tx, ty int) bool {
		return tx >= 0 && tx < b.size && ty >= 0 && ty < b.size
	}

	// Step two squares in the scan direction; both must hold the same car.
	tx, ty := x+dx*2, y+dy*2
	if !onBoard(tx, ty) {
		return
	}
	car := b.Cell(ty, tx)
	if car == Empty || b.Cell(ty-dy, tx-dx) != car {
		return
	}

	// There's a car here we can move. Walk to its far end. Cars are length
	// 2 or 3 in the standard puzzle, but the walk is length-agnostic.
	for onBoard(tx+dx, ty+dy) && b.Cell(ty+dy, tx+dx) == car {
		tx += dx
		ty += dy
	}

	// Slide the car one step toward the empty cell. Only the far end and
	// the empty cell change, no matter how long the car is.
	b.SetCell(y, x, car)
	b.SetCell(ty, tx, Empty)
	defer func() {
		b.SetCell(y, x, Empty)
		b.SetCell(ty, tx, car)
	}()

	// Did the move put the car's leading edge on the exit ramp, at the
	// right-hand edge of the exit row?
	if dx == -1 && x == b.size-1 && y == b.exitRow {
		if car == GoalCar {
			// The goal car reached the exit: winning state. Register it
			// and stop the whole search.
			if s.registerIfNovel(*b, from) {
				s.solutionIdx = len(s.frontier) - 1
			} else {
				s.solutionIdx = s.visited[b.Key()]
			}
			s.solved = true
			return
		}

		// Any other car at the ramp can drive off the board entirely,
		// which is always at least as good as the one-step slide. Offer
		// the fully-vacated board as the successor instead.
		for xx := tx + 1; xx <= x; xx++ {
			b.SetCell(y, xx, Empty)
		}
		s.registerIfNovel(*b, from)
		for xx := tx + 1; xx <= x; xx++ {
			b.SetCell(y, xx, car)
		}
		return
	}

	s.registerIfNovel(*b, from)
}
