package linkup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/playgrid/gameroom-backend/internal/apperror"
)

func TestClampConfig(t *testing.T) {
	t.Run("InRange_IsKept", func(t *testing.T) {
		rows, cols, icons := ClampConfig(6, 10, 12)

		assert.Equal(t, 6, rows)
		assert.Equal(t, 10, cols)
		assert.Equal(t, 12, icons)
	})

	t.Run("OutOfRange_FallsBackPerField", func(t *testing.T) {
		rows, cols, icons := ClampConfig(2, 100, 6)

		assert.Equal(t, DefaultRows, rows)
		assert.Equal(t, DefaultCols, cols)
		assert.Equal(t, 6, icons)
	})
}

func TestGenerate(t *testing.T) {
	t.Run("EveryIconAppearsAnEvenNumberOfTimes", func(t *testing.T) {
		for _, dims := range [][3]int{{4, 4, 4}, {8, 8, 8}, {5, 5, 6}, {20, 20, 20}} {
			board := Generate(dims[0], dims[1], dims[2])

			counts := map[int]int{}
			for _, row := range board.Cells {
				for _, cell := range row {
					counts[cell]++
				}
			}

			for id, count := range counts {
				if id == emptyCell {
					continue
				}
				assert.Zerof(t, count%2, "icon %d appears %d times on a %dx%d board", id, count, dims[0], dims[1])
				assert.LessOrEqual(t, id, board.Icons)
				assert.Positive(t, id)
			}
		}
	})

	t.Run("OddCellCount_LeavesOneEmpty", func(t *testing.T) {
		board := Generate(5, 5, 4)

		empties := 0
		for _, row := range board.Cells {
			for _, cell := range row {
				if cell == emptyCell {
					empties++
				}
			}
		}

		assert.Equal(t, 1, empties)
	})

	t.Run("EvenCellCount_IsFull", func(t *testing.T) {
		board := Generate(4, 4, 4)

		for _, row := range board.Cells {
			for _, cell := range row {
				assert.NotEqual(t, emptyCell, cell)
			}
		}
	})
}

func TestBoard_Validate(t *testing.T) {
	board := &Board{
		Cells: [][]int{
			{1, 0, 0, 0},
			{0, 0, 0, 0},
			{0, 0, 0, 0},
			{0, 0, 0, 1},
		},
		Rows:  4,
		Cols:  4,
		Icons: 4,
	}

	require.NoError(t, board.Validate(Cell{Row: 0, Col: 0}))
	require.ErrorIs(t, board.Validate(Cell{Row: 1, Col: 1}), apperror.ErrCellEmpty)
	require.ErrorIs(t, board.Validate(Cell{Row: -1, Col: 0}), apperror.ErrInvalidCell)
	require.ErrorIs(t, board.Validate(Cell{Row: 0, Col: 4}), apperror.ErrInvalidCell)
}

func TestBoard_PairAccounting(t *testing.T) {
	board := &Board{
		Cells: [][]int{
			{1, 1, 2, 2},
			{3, 3, 4, 4},
			{1, 1, 2, 2},
			{3, 3, 4, 4},
		},
		Rows:  4,
		Cols:  4,
		Icons: 4,
	}

	require.Equal(t, 8, board.TotalPairs())
	require.Equal(t, 8, board.Remaining())
	require.False(t, board.Solved())

	board.ClearPair(Cell{Row: 0, Col: 0}, Cell{Row: 0, Col: 1})

	assert.Equal(t, 8, board.TotalPairs())
	assert.Equal(t, 7, board.Remaining())
}

func TestBoard_Clone(t *testing.T) {
	board := Generate(4, 4, 4)
	clone := board.Clone()

	clone.Cells[0][0] = emptyCell

	assert.NotEqual(t, emptyCell, board.Cells[0][0])
}

func TestBoard_VirtualBorder(t *testing.T) {
	board := Generate(4, 4, 4)

	// the one-cell ring around the grid counts as empty
	assert.True(t, board.isEmpty(-1, -1))
	assert.True(t, board.isEmpty(-1, 2))
	assert.True(t, board.isEmpty(4, 4))

	// anything beyond the ring does not
	assert.False(t, board.isEmpty(-2, 0))
	assert.False(t, board.isEmpty(0, 5))
}

func TestBoardFromCells(t *testing.T) {
	grid := [][]int{
		{1, 1, 0, 0},
		{2, 2, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	}

	t.Run("ValidBoard_IsCopied", func(t *testing.T) {
		board, err := BoardFromCells(grid, 4)

		require.NoError(t, err)
		assert.Equal(t, 4, board.Rows)
		assert.Equal(t, 4, board.Cols)

		// the board must not alias the caller's slices
		grid[0][0] = 3
		assert.Equal(t, 1, board.Cells[0][0])
		grid[0][0] = 1
	})

	t.Run("TooSmall_Fails", func(t *testing.T) {
		_, err := BoardFromCells(grid[:2], 4)

		require.ErrorIs(t, err, apperror.ErrInvalidCell)
	})

	t.Run("RaggedRow_Fails", func(t *testing.T) {
		ragged := [][]int{{1, 1, 0, 0}, {2, 2}, {0, 0, 0, 0}, {0, 0, 0, 0}}

		_, err := BoardFromCells(ragged, 4)

		require.ErrorIs(t, err, apperror.ErrInvalidCell)
	})

	t.Run("UnknownIcon_Fails", func(t *testing.T) {
		bad := [][]int{
			{9, 9, 0, 0},
			{0, 0, 0, 0},
			{0, 0, 0, 0},
			{0, 0, 0, 0},
		}

		_, err := BoardFromCells(bad, 4)

		require.ErrorIs(t, err, apperror.ErrInvalidCell)
	})
}
