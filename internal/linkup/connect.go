package linkup

import "github.com/playgrid/gameroom-backend/internal/apperror"

// Connect - tests whether two cells hold the same icon and can be joined by a
// clear rectilinear path with at most two turns. The path may run through the
// one-cell virtual border surrounding the grid, so edge cells can match around
// the outside. On success it returns the key points of the path (endpoints
// plus corners) for UI highlighting.
func Connect(board *Board, a, b Cell) ([]Cell, bool) {
	if !board.contains(a) || !board.contains(b) {
		return nil, false
	}

	if a == b {
		return nil, false
	}

	iconA := board.Cells[a.Row][a.Col]
	iconB := board.Cells[b.Row][b.Col]
	if iconA == emptyCell || iconA != iconB {
		return nil, false
	}

	if connectStraight(board, a, b) {
		return []Cell{a, b}, true
	}

	if corner, ok := connectOneCorner(board, a, b); ok {
		return []Cell{a, corner, b}, true
	}

	if c1, c2, ok := connectTwoCorners(board, a, b); ok {
		return []Cell{a, c1, c2, b}, true
	}

	return nil, false
}

// connectStraight - a clear horizontal or vertical segment between two points;
// either endpoint may lie on the virtual border.
func connectStraight(board *Board, a, b Cell) bool {
	if a.Row == b.Row {
		lo, hi := minInt(a.Col, b.Col), maxInt(a.Col, b.Col)
		for col := lo + 1; col < hi; col++ {
			if !board.isEmpty(a.Row, col) {
				return false
			}
		}
		return true
	}

	if a.Col == b.Col {
		lo, hi := minInt(a.Row, b.Row), maxInt(a.Row, b.Row)
		for row := lo + 1; row < hi; row++ {
			if !board.isEmpty(row, a.Col) {
				return false
			}
		}
		return true
	}

	return false
}

func connectOneCorner(board *Board, a, b Cell) (Cell, bool) {
	corner := Cell{Row: a.Row, Col: b.Col}
	if board.isEmpty(corner.Row, corner.Col) &&
		connectStraight(board, a, corner) && connectStraight(board, corner, b) {
		return corner, true
	}

	corner = Cell{Row: b.Row, Col: a.Col}
	if board.isEmpty(corner.Row, corner.Col) &&
		connectStraight(board, a, corner) && connectStraight(board, corner, b) {
		return corner, true
	}

	return Cell{}, false
}

// connectTwoCorners - both corners share a column (vertical middle segment) or
// a row (horizontal middle segment); candidates range one cell beyond the grid
// to allow border paths.
func connectTwoCorners(board *Board, a, b Cell) (Cell, Cell, bool) {
	for col := -1; col <= board.Cols; col++ {
		c1 := Cell{Row: a.Row, Col: col}
		c2 := Cell{Row: b.Row, Col: col}
		if !board.isEmpty(c1.Row, c1.Col) || !board.isEmpty(c2.Row, c2.Col) {
			continue
		}
		if connectStraight(board, a, c1) && connectStraight(board, c1, c2) && connectStraight(board, c2, b) {
			return c1, c2, true
		}
	}

	for row := -1; row <= board.Rows; row++ {
		c1 := Cell{Row: row, Col: a.Col}
		c2 := Cell{Row: row, Col: b.Col}
		if !board.isEmpty(c1.Row, c1.Col) || !board.isEmpty(c2.Row, c2.Col) {
			continue
		}
		if connectStraight(board, a, c1) && connectStraight(board, c1, c2) && connectStraight(board, c2, b) {
			return c1, c2, true
		}
	}

	return Cell{}, Cell{}, false
}

// FindHint - scans all same-icon pairs for one satisfying the connectivity
// rule. Returns ErrBoardSolved when no icons remain, ErrNoMovesAvailable when
// icons remain but none are currently connectable.
func FindHint(board *Board) (Cell, Cell, error) {
	cells := occupiedCells(board)
	if len(cells) == 0 {
		return Cell{}, Cell{}, apperror.ErrBoardSolved
	}

	for i := 0; i < len(cells); i++ {
		for j := i + 1; j < len(cells); j++ {
			if _, ok := Connect(board, cells[i], cells[j]); ok {
				return cells[i], cells[j], nil
			}
		}
	}

	return Cell{}, Cell{}, apperror.ErrNoMovesAvailable
}

func occupiedCells(board *Board) []Cell {
	cells := make([]Cell, 0, board.Rows*board.Cols)
	for r := 0; r < board.Rows; r++ {
		for c := 0; c < board.Cols; c++ {
			if board.Cells[r][c] != emptyCell {
				cells = append(cells, Cell{Row: r, Col: c})
			}
		}
	}

	return cells
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
