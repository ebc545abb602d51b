package linkup

import (
	"math/rand"

	"github.com/playgrid/gameroom-backend/internal/apperror"
)

// Difficulty levels for the match oracle.
const (
	LevelEasy   = 1
	LevelMedium = 2
	LevelHard   = 3
)

// SuggestMatch - returns one connectable pair for the given difficulty. The
// caller re-validates the pair through the session's select path.
func SuggestMatch(board *Board, level int) (Cell, Cell, error) {
	if board.Solved() {
		return Cell{}, Cell{}, apperror.ErrBoardSolved
	}

	switch level {
	case LevelMedium:
		return easiestMatch(board)
	case LevelHard:
		return bestMatch(board)
	default:
		return randomMatch(board)
	}
}

func randomMatch(board *Board) (Cell, Cell, error) {
	cells := occupiedCells(board)

	rand.Shuffle(len(cells), func(i, j int) { //nolint: gosec // it's ok
		cells[i], cells[j] = cells[j], cells[i]
	})

	for i := 0; i < len(cells); i++ {
		for j := i + 1; j < len(cells); j++ {
			if _, ok := Connect(board, cells[i], cells[j]); ok {
				return cells[i], cells[j], nil
			}
		}
	}

	return Cell{}, Cell{}, apperror.ErrNoMovesAvailable
}

// easiestMatch prefers straight connections, then one corner, then two.
func easiestMatch(board *Board) (Cell, Cell, error) {
	cells := occupiedCells(board)

	for _, probe := range []func(*Board, Cell, Cell) bool{
		func(b *Board, a, c Cell) bool { return connectStraight(b, a, c) },
		func(b *Board, a, c Cell) bool { _, ok := connectOneCorner(b, a, c); return ok },
		func(b *Board, a, c Cell) bool { _, _, ok := connectTwoCorners(b, a, c); return ok },
	} {
		for i := 0; i < len(cells); i++ {
			for j := i + 1; j < len(cells); j++ {
				if board.Cells[cells[i].Row][cells[i].Col] != board.Cells[cells[j].Row][cells[j].Col] {
					continue
				}
				if probe(board, cells[i], cells[j]) {
					return cells[i], cells[j], nil
				}
			}
		}
	}

	return Cell{}, Cell{}, apperror.ErrNoMovesAvailable
}

// bestMatch scores each connectable pair by how short its path is and keeps
// the highest-scoring one.
func bestMatch(board *Board) (Cell, Cell, error) {
	cells := occupiedCells(board)

	bestScore := -1
	var bestA, bestB Cell

	for i := 0; i < len(cells); i++ {
		for j := i + 1; j < len(cells); j++ {
			if board.Cells[cells[i].Row][cells[i].Col] != board.Cells[cells[j].Row][cells[j].Col] {
				continue
			}

			path, ok := Connect(board, cells[i], cells[j])
			if !ok {
				continue
			}

			score := 0
			switch len(path) {
			case 2:
				score = 100
			case 3:
				score = 50
			default:
				score = 10
			}

			if score > bestScore {
				bestScore = score
				bestA, bestB = cells[i], cells[j]
			}
		}
	}

	if bestScore == -1 {
		return Cell{}, Cell{}, apperror.ErrNoMovesAvailable
	}

	return bestA, bestB, nil
}
