package linkup

import (
	"fmt"
	"math/rand"

	"github.com/playgrid/gameroom-backend/internal/apperror"
)

// Board dimension and icon-count limits; out-of-range requests fall back to
// the defaults instead of failing room creation.
const (
	MinDimension = 4
	MaxDimension = 20
	MinIcons     = 4
	MaxIcons     = 20

	DefaultRows  = 8
	DefaultCols  = 8
	DefaultIcons = 8
)

const emptyCell = 0

// Cell is a coordinate on the board.
type Cell struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Board is a rows x cols grid; 0 is empty, 1..Icons are icon ids.
type Board struct {
	Cells [][]int `json:"cells"`
	Rows  int     `json:"rows"`
	Cols  int     `json:"cols"`
	Icons int     `json:"icons"`
}

// ClampConfig - normalizes a requested board configuration to the legal range.
func ClampConfig(rows, cols, icons int) (int, int, int) {
	if rows < MinDimension || rows > MaxDimension {
		rows = DefaultRows
	}
	if cols < MinDimension || cols > MaxDimension {
		cols = DefaultCols
	}
	if icons < MinIcons || icons > MaxIcons {
		icons = DefaultIcons
	}

	return rows, cols, icons
}

// Generate - creates a shuffled board where every icon id appears an even
// number of times; an odd cell count leaves exactly one cell empty.
func Generate(rows, cols, icons int) *Board {
	rows, cols, icons = ClampConfig(rows, cols, icons)

	totalCells := rows * cols
	iconCount := totalCells
	if totalCells%2 != 0 {
		iconCount = totalCells - 1
	}

	ids := make([]int, iconCount)
	for i := 0; i < iconCount; i += 2 {
		id := (i/2)%icons + 1
		ids[i] = id
		ids[i+1] = id
	}

	rand.Shuffle(len(ids), func(i, j int) { //nolint: gosec // it's ok
		ids[i], ids[j] = ids[j], ids[i]
	})

	cells := make([][]int, rows)
	for r := 0; r < rows; r++ {
		cells[r] = make([]int, cols)
		for c := 0; c < cols; c++ {
			idx := r*cols + c
			if idx < len(ids) {
				cells[r][c] = ids[idx]
			}
		}
	}

	return &Board{
		Cells: cells,
		Rows:  rows,
		Cols:  cols,
		Icons: icons,
	}
}

// BoardFromCells - builds a board from externally supplied cells, rejecting
// ragged grids, illegal dimensions and unknown icon ids.
func BoardFromCells(cells [][]int, icons int) (*Board, error) {
	rows := len(cells)
	if rows < MinDimension || rows > MaxDimension {
		return nil, fmt.Errorf("%w: %d rows", apperror.ErrInvalidCell, rows)
	}

	cols := len(cells[0])
	if cols < MinDimension || cols > MaxDimension {
		return nil, fmt.Errorf("%w: %d cols", apperror.ErrInvalidCell, cols)
	}

	if icons < MinIcons || icons > MaxIcons {
		icons = DefaultIcons
	}

	copied := make([][]int, rows)
	for r, row := range cells {
		if len(row) != cols {
			return nil, fmt.Errorf("%w: row %d has %d cells", apperror.ErrInvalidCell, r, len(row))
		}

		copied[r] = make([]int, cols)
		for c, id := range row {
			if id < emptyCell || id > icons {
				return nil, fmt.Errorf("%w: unknown icon %d at (%d,%d)", apperror.ErrInvalidCell, id, r, c)
			}
			copied[r][c] = id
		}
	}

	return &Board{
		Cells: copied,
		Rows:  rows,
		Cols:  cols,
		Icons: icons,
	}, nil
}

// TotalPairs - the number of icon pairs the board starts with.
func (that *Board) TotalPairs() int {
	return (that.Rows * that.Cols) / 2
}

// Remaining - the number of icon pairs still on the board.
func (that *Board) Remaining() int {
	count := 0
	for _, row := range that.Cells {
		for _, cell := range row {
			if cell != emptyCell {
				count++
			}
		}
	}

	return count / 2
}

// Solved - reports whether no icons remain.
func (that *Board) Solved() bool {
	for _, row := range that.Cells {
		for _, cell := range row {
			if cell != emptyCell {
				return false
			}
		}
	}

	return true
}

// Validate - checks that a coordinate addresses a non-empty cell.
func (that *Board) Validate(cell Cell) error {
	if !that.contains(cell) {
		return fmt.Errorf("%w: (%d,%d)", apperror.ErrInvalidCell, cell.Row, cell.Col)
	}

	if that.Cells[cell.Row][cell.Col] == emptyCell {
		return apperror.ErrCellEmpty
	}

	return nil
}

// ClearPair - removes both cells of a matched pair.
func (that *Board) ClearPair(a, b Cell) {
	that.Cells[a.Row][a.Col] = emptyCell
	that.Cells[b.Row][b.Col] = emptyCell
}

func (that *Board) Clone() *Board {
	cells := make([][]int, that.Rows)
	for r := range that.Cells {
		cells[r] = make([]int, that.Cols)
		copy(cells[r], that.Cells[r])
	}

	return &Board{
		Cells: cells,
		Rows:  that.Rows,
		Cols:  that.Cols,
		Icons: that.Icons,
	}
}

func (that *Board) contains(cell Cell) bool {
	return cell.Row >= 0 && cell.Row < that.Rows && cell.Col >= 0 && cell.Col < that.Cols
}

// isEmpty treats the one-cell virtual border around the grid as empty, so
// paths may run around the outside of the board.
func (that *Board) isEmpty(row, col int) bool {
	if row < 0 || row >= that.Rows || col < 0 || col >= that.Cols {
		return row >= -1 && row <= that.Rows && col >= -1 && col <= that.Cols
	}

	return that.Cells[row][col] == emptyCell
}
