package gomoku

import (
	"fmt"

	"github.com/playgrid/gameroom-backend/internal/apperror"
)

// BoardSize - gomoku is always played on a 15x15 grid.
const BoardSize = 15

// Stone is a closed enumeration of cell values.
type Stone int

const (
	Empty Stone = 0
	Black Stone = 1
	White Stone = 2
)

var directions = [4][2]int{
	{1, 0},  // horizontal
	{0, 1},  // vertical
	{1, 1},  // diagonal \
	{1, -1}, // diagonal /
}

type Board struct {
	Cells [][]Stone `json:"cells"`
}

func NewBoard() *Board {
	cells := make([][]Stone, BoardSize)
	for i := range cells {
		cells[i] = make([]Stone, BoardSize)
	}

	return &Board{Cells: cells}
}

// StoneForSlot - maps a player slot (1 or 2) to its stone color.
func StoneForSlot(slot int) (Stone, error) {
	switch slot {
	case 1:
		return Black, nil
	case 2:
		return White, nil
	default:
		return Empty, fmt.Errorf("%w: %d", apperror.ErrInvalidSlot, slot)
	}
}

// BoardFromCells - builds a board from externally supplied cells, rejecting
// wrong dimensions and unknown stone values.
func BoardFromCells(cells [][]Stone) (*Board, error) {
	if len(cells) != BoardSize {
		return nil, fmt.Errorf("%w: expected %d rows, got %d", apperror.ErrInvalidCell, BoardSize, len(cells))
	}

	board := NewBoard()
	for x, row := range cells {
		if len(row) != BoardSize {
			return nil, fmt.Errorf("%w: row %d has %d cells", apperror.ErrInvalidCell, x, len(row))
		}

		for y, stone := range row {
			if stone != Empty && stone != Black && stone != White {
				return nil, fmt.Errorf("%w: unknown stone %d at (%d,%d)", apperror.ErrInvalidCell, stone, x, y)
			}
			board.Cells[x][y] = stone
		}
	}

	return board, nil
}

// Apply - places a stone at (x, y); an invalid move leaves the board untouched.
func (that *Board) Apply(x, y int, stone Stone) error {
	if stone != Black && stone != White {
		return fmt.Errorf("%w: stone %d", apperror.ErrInvalidCell, stone)
	}

	if !inBounds(x, y) {
		return fmt.Errorf("%w: (%d,%d)", apperror.ErrInvalidCell, x, y)
	}

	if that.Cells[x][y] != Empty {
		return apperror.ErrCellOccupied
	}

	that.Cells[x][y] = stone

	return nil
}

// CheckWin - scans the four axes through the just-played cell, counting
// contiguous same-color stones in both directions; >=5 in any axis is a win.
func (that *Board) CheckWin(x, y int, stone Stone) bool {
	for _, dir := range directions {
		dx, dy := dir[0], dir[1]
		count := 1

		for i := 1; i < 5; i++ {
			nx, ny := x+dx*i, y+dy*i
			if !inBounds(nx, ny) || that.Cells[nx][ny] != stone {
				break
			}
			count++
		}

		for i := 1; i < 5; i++ {
			nx, ny := x-dx*i, y-dy*i
			if !inBounds(nx, ny) || that.Cells[nx][ny] != stone {
				break
			}
			count++
		}

		if count >= 5 {
			return true
		}
	}

	return false
}

// Full - reports whether no empty cell remains (draw when nobody has won).
func (that *Board) Full() bool {
	for _, row := range that.Cells {
		for _, cell := range row {
			if cell == Empty {
				return false
			}
		}
	}

	return true
}

func (that *Board) Clone() *Board {
	clone := NewBoard()
	for i := range that.Cells {
		copy(clone.Cells[i], that.Cells[i])
	}

	return clone
}

func inBounds(x, y int) bool {
	return x >= 0 && x < BoardSize && y >= 0 && y < BoardSize
}
