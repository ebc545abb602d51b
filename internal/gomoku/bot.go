package gomoku

import (
	"math/rand"

	"github.com/playgrid/gameroom-backend/internal/apperror"
)

// Difficulty levels for the move oracle.
const (
	LevelEasy   = 1
	LevelMedium = 2
	LevelHard   = 3
)

// SuggestMove - returns one move for the given stone. The caller re-validates
// the move through Board.Apply, a buggy suggestion can never corrupt a session.
func SuggestMove(board *Board, stone Stone, level int) (int, int, error) {
	empty := emptyCells(board)
	if len(empty) == 0 {
		return 0, 0, apperror.ErrNoMovesAvailable
	}

	// an empty board always opens at the center
	center := BoardSize / 2
	if board.Cells[center][center] == Empty && len(empty) == BoardSize*BoardSize {
		return center, center, nil
	}

	switch level {
	case LevelEasy:
		cell := empty[rand.Intn(len(empty))] //nolint: gosec // it's ok
		return cell[0], cell[1], nil
	case LevelMedium, LevelHard:
		return bestMove(board, stone, empty)
	default:
		return bestMove(board, stone, empty)
	}
}

func emptyCells(board *Board) [][2]int {
	cells := make([][2]int, 0, BoardSize*BoardSize)
	for x := range board.Cells {
		for y := range board.Cells[x] {
			if board.Cells[x][y] == Empty {
				cells = append(cells, [2]int{x, y})
			}
		}
	}

	return cells
}

func bestMove(board *Board, stone Stone, empty [][2]int) (int, int, error) {
	opponent := Black
	if stone == Black {
		opponent = White
	}

	bestScore := -1
	bestX, bestY := -1, -1

	for _, cell := range empty {
		x, y := cell[0], cell[1]

		// attack and defense: blocking the opponent scores the same way
		score := scorePosition(board, x, y, stone) + scorePosition(board, x, y, opponent)
		if score > bestScore {
			bestScore = score
			bestX, bestY = x, y
		}
	}

	if bestX == -1 {
		return 0, 0, apperror.ErrNoMovesAvailable
	}

	return bestX, bestY, nil
}

func scorePosition(board *Board, x, y int, stone Stone) int {
	score := 0
	for _, dir := range directions {
		score += scoreDirection(board, x, y, stone, dir[0], dir[1])
	}

	return score
}

// scoreDirection counts contiguous stones of one color through (x, y) along
// one axis and converts the run length into a weight.
func scoreDirection(board *Board, x, y int, stone Stone, dx, dy int) int {
	count := 0

	for i := 1; i < 5; i++ {
		nx, ny := x+dx*i, y+dy*i
		if !inBounds(nx, ny) || board.Cells[nx][ny] != stone {
			break
		}
		count++
	}

	for i := 1; i < 5; i++ {
		nx, ny := x-dx*i, y-dy*i
		if !inBounds(nx, ny) || board.Cells[nx][ny] != stone {
			break
		}
		count++
	}

	// both directions combined can exceed 4, e.g. filling the gap in XX_XX
	switch {
	case count >= 4:
		return 100000 // winning or win-blocking move
	case count == 3:
		return 1000
	case count == 2:
		return 100
	case count == 1:
		return 10
	default:
		return 0
	}
}
