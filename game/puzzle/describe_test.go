package puzzle

import "testing"

func TestDescribeMove_Slide(t *testing.T) {
	fromRows := emptyRows(6)
	fromRows[2] = "XX...."
	from := mustBoard(t, fromRows, 2)

	toRows := emptyRows(6)
	toRows[2] = ".XX..."
	to := mustBoard(t, toRows, 2)

	move, err := DescribeMove(from, to)
	if err != nil {
		t.Fatalf("Failed to describe move: %v", err)
	}
	if move.Car != string(GoalCar) || move.Direction != DirRight || move.Exited {
		t.Errorf("Expected goal car sliding right, got %+v", move)
	}
}

func TestDescribeMove_Exit(t *testing.T) {
	fromRows := emptyRows(6)
	fromRows[2] = "...AA."
	from := mustBoard(t, fromRows, 2)
	to := mustBoard(t, emptyRows(6), 2)

	move, err := DescribeMove(from, to)
	if err != nil {
		t.Fatalf("Failed to describe move: %v", err)
	}
	if move.Car != "A" || move.Direction != DirRight || !move.Exited {
		t.Errorf("Expected car A driving off the board, got %+v", move)
	}
}

func TestDescribeMove_IdenticalBoards(t *testing.T) {
	b := mustBoard(t, emptyRows(6), 2)
	if _, err := DescribeMove(b, b); err == nil {
		t.Error("Expected error for identical boards")
	}
}

func TestApplyMove_Invalid(t *testing.T) {
	rows := emptyRows(6)
	rows[2] = "XX...A"
	rows[3] = ".....A"
	b := mustBoard(t, rows, 2)

	tests := []struct {
		name string
		move *MoveInfo
	}{
		{"nil move", nil},
		{"unknown car", &MoveInfo{Car: "Z", Direction: DirRight}},
		{"unknown direction", &MoveInfo{Car: "X", Direction: "sideways"}},
		{"off the board", &MoveInfo{Car: "X", Direction: DirLeft}},
		{"wrong axis", &MoveInfo{Car: "A", Direction: DirLeft}},
		{"exit off the exit row", &MoveInfo{Car: "A", Direction: DirRight, Exited: true}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if _, err := ApplyMove(b, test.move); err == nil {
				t.Error("Expected error for invalid move")
			}
		})
	}
}

func TestApplyMove_Blocked(t *testing.T) {
	rows := emptyRows(6)
	rows[2] = "XXA..."
	rows[3] = "..A..."
	b := mustBoard(t, rows, 2)

	if _, err := ApplyMove(b, &MoveInfo{Car: "X", Direction: DirRight}); err == nil {
		t.Error("Expected error for a blocked move")
	}
}
