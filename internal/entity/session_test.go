package entity

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/playgrid/gameroom-backend/internal/apperror"
	"github.com/playgrid/gameroom-backend/internal/linkup"
)

func newGomokuDuel(t *testing.T) *Room {
	t.Helper()

	room, err := NewRoom("room-1", GameGomoku, ModeDuel, BoardConfig{}, "alice", "", "")
	require.NoError(t, err)

	_, _, err = room.Join("", "bob")
	require.NoError(t, err)

	return room
}

// newLinkUpDuel builds a duel room and swaps in a deterministic board where
// every pair sits side by side.
func newLinkUpDuel(t *testing.T) *Room {
	t.Helper()

	room, err := NewRoom("room-1", GameLinkUp, ModeDuel, BoardConfig{Rows: 4, Cols: 4, Icons: 8}, "alice", "", "")
	require.NoError(t, err)

	_, _, err = room.Join("", "bob")
	require.NoError(t, err)

	board, err := linkup.BoardFromCells([][]int{
		{1, 1, 2, 2},
		{3, 3, 4, 4},
		{5, 5, 6, 6},
		{7, 7, 8, 8},
	}, 8)
	require.NoError(t, err)
	room.Session.LinkUp.Board = board

	return room
}

func TestRoom_MakeGomokuMove(t *testing.T) {
	t.Run("BeforeJoin_Fails", func(t *testing.T) {
		room, err := NewRoom("room-1", GameGomoku, ModeDuel, BoardConfig{}, "alice", "", "")
		require.NoError(t, err)

		_, err = room.MakeGomokuMove(1, 0, 0)

		require.ErrorIs(t, err, apperror.ErrGameIsNotStarted)
	})

	t.Run("OutOfTurn_Fails", func(t *testing.T) {
		room := newGomokuDuel(t)

		_, err := room.MakeGomokuMove(2, 0, 0)

		require.ErrorIs(t, err, apperror.ErrNotYourTurn)
	})

	t.Run("InvalidSlot_Fails", func(t *testing.T) {
		room := newGomokuDuel(t)

		_, err := room.MakeGomokuMove(3, 0, 0)

		require.ErrorIs(t, err, apperror.ErrInvalidSlot)
	})

	t.Run("TurnAlternates", func(t *testing.T) {
		room := newGomokuDuel(t)

		// When: slot 1 moves
		snapshot, err := room.MakeGomokuMove(1, 7, 7)
		require.NoError(t, err)

		// Then: the turn passes and the move is recorded
		assert.Equal(t, 2, snapshot.CurrentTurn)
		assert.Equal(t, 1, snapshot.Seq)
		require.NotNil(t, snapshot.Gomoku.LastMove)
		assert.Equal(t, GomokuMove{X: 7, Y: 7, Slot: 1}, *snapshot.Gomoku.LastMove)

		// And: slot 1 cannot move again
		_, err = room.MakeGomokuMove(1, 7, 8)
		require.ErrorIs(t, err, apperror.ErrNotYourTurn)
	})

	t.Run("OccupiedCell_KeepsTurnAndSeq", func(t *testing.T) {
		room := newGomokuDuel(t)

		_, err := room.MakeGomokuMove(1, 7, 7)
		require.NoError(t, err)

		_, err = room.MakeGomokuMove(2, 7, 7)
		require.ErrorIs(t, err, apperror.ErrCellOccupied)

		snapshot := room.Snapshot(2)
		assert.Equal(t, 2, snapshot.CurrentTurn)
		assert.Equal(t, 1, snapshot.Seq)
	})

	t.Run("FiveInARow_FinishesTheSession", func(t *testing.T) {
		room := newGomokuDuel(t)

		// Given: slot 1 builds a row while slot 2 plays elsewhere
		for y := 0; y < 4; y++ {
			_, err := room.MakeGomokuMove(1, 0, y)
			require.NoError(t, err)
			_, err = room.MakeGomokuMove(2, 1, y)
			require.NoError(t, err)
		}

		// When: the fifth stone lands
		snapshot, err := room.MakeGomokuMove(1, 0, 4)
		require.NoError(t, err)

		// Then: the session freezes with slot 1 as the winner
		assert.Equal(t, StatusFinished, snapshot.Status)
		assert.Equal(t, 1, snapshot.Winner)
		assert.Equal(t, 0, snapshot.CurrentTurn)
		assert.False(t, snapshot.Active)
		assert.Equal(t, 9, snapshot.Seq)

		// And: no further move is accepted
		_, err = room.MakeGomokuMove(2, 5, 5)
		require.ErrorIs(t, err, apperror.ErrGameFinished)

		// And: repeated polls return the same terminal state
		assert.Equal(t, room.Snapshot(1), room.Snapshot(1))
		assert.Equal(t, snapshot.Seq, room.Snapshot(2).Seq)
	})

	t.Run("ConcurrentMoves_ExactlyOneWins", func(t *testing.T) {
		room := newGomokuDuel(t)

		var wg sync.WaitGroup
		accepted := make(chan struct{}, 10)

		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func(y int) {
				defer wg.Done()
				if _, err := room.MakeGomokuMove(1, 3, y); err == nil {
					accepted <- struct{}{}
				}
			}(i)
		}
		wg.Wait()
		close(accepted)

		assert.Len(t, accepted, 1)
		assert.Equal(t, 1, room.Snapshot(1).Seq)
	})
}

func TestRoom_SelectLinkUpCell(t *testing.T) {
	t.Run("FirstClickSelects", func(t *testing.T) {
		room := newLinkUpDuel(t)

		outcome, err := room.SelectLinkUpCell(1, linkup.Cell{Row: 0, Col: 0})

		require.NoError(t, err)
		assert.False(t, outcome.Matched)
		require.NotNil(t, outcome.Snapshot.LinkUp.Selected)
		assert.Equal(t, linkup.Cell{Row: 0, Col: 0}, *outcome.Snapshot.LinkUp.Selected)
		// the selection does not end the turn
		assert.Equal(t, 1, outcome.Snapshot.CurrentTurn)
		assert.Equal(t, 1, outcome.Snapshot.Seq)
	})

	t.Run("SameCellTwice_Fails", func(t *testing.T) {
		room := newLinkUpDuel(t)

		_, err := room.SelectLinkUpCell(1, linkup.Cell{Row: 0, Col: 0})
		require.NoError(t, err)

		_, err = room.SelectLinkUpCell(1, linkup.Cell{Row: 0, Col: 0})
		require.ErrorIs(t, err, apperror.ErrSameCell)

		// the first selection survives the rejected click
		require.NotNil(t, room.Session.LinkUp.Selected)
	})

	t.Run("MatchedPair_ScoresAndPassesTurn", func(t *testing.T) {
		room := newLinkUpDuel(t)

		_, err := room.SelectLinkUpCell(1, linkup.Cell{Row: 0, Col: 0})
		require.NoError(t, err)

		outcome, err := room.SelectLinkUpCell(1, linkup.Cell{Row: 0, Col: 1})
		require.NoError(t, err)

		assert.True(t, outcome.Matched)
		assert.Len(t, outcome.MatchCells, 2)
		assert.Equal(t, 1, outcome.Snapshot.Player1Score)
		assert.Equal(t, 2, outcome.Snapshot.CurrentTurn)
		assert.Equal(t, 7, outcome.Snapshot.LinkUp.RemainingPairs)
		assert.Nil(t, outcome.Snapshot.LinkUp.Selected)
	})

	t.Run("FailedPair_PassesTurnWithoutScoring", func(t *testing.T) {
		room := newLinkUpDuel(t)

		_, err := room.SelectLinkUpCell(1, linkup.Cell{Row: 0, Col: 0})
		require.NoError(t, err)

		// When: the second cell holds a different icon
		outcome, err := room.SelectLinkUpCell(1, linkup.Cell{Row: 1, Col: 0})
		require.NoError(t, err)

		// Then: nothing is cleared but the turn still passes, and no
		// selection leaks into the opponent's turn
		assert.False(t, outcome.Matched)
		assert.Equal(t, 0, outcome.Snapshot.Player1Score)
		assert.Equal(t, 2, outcome.Snapshot.CurrentTurn)
		assert.Equal(t, 8, outcome.Snapshot.LinkUp.RemainingPairs)
		assert.Nil(t, room.Session.LinkUp.Selected)
	})

	t.Run("EmptyCell_Fails", func(t *testing.T) {
		room := newLinkUpDuel(t)

		_, err := room.SelectLinkUpCell(1, linkup.Cell{Row: 0, Col: 0})
		require.NoError(t, err)
		_, err = room.SelectLinkUpCell(1, linkup.Cell{Row: 0, Col: 1})
		require.NoError(t, err)

		// slot 2 clicks a cleared cell
		_, err = room.SelectLinkUpCell(2, linkup.Cell{Row: 0, Col: 0})
		require.ErrorIs(t, err, apperror.ErrCellEmpty)
	})

	t.Run("OutOfTurn_Fails", func(t *testing.T) {
		room := newLinkUpDuel(t)

		_, err := room.SelectLinkUpCell(2, linkup.Cell{Row: 0, Col: 0})
		require.ErrorIs(t, err, apperror.ErrNotYourTurn)
	})

	t.Run("ClearedBoard_FinishesWithScoreWinner", func(t *testing.T) {
		room := newLinkUpDuel(t)

		// Given: both players alternate clearing side-by-side pairs
		pairs := [][2]linkup.Cell{
			{{Row: 0, Col: 0}, {Row: 0, Col: 1}},
			{{Row: 0, Col: 2}, {Row: 0, Col: 3}},
			{{Row: 1, Col: 0}, {Row: 1, Col: 1}},
			{{Row: 1, Col: 2}, {Row: 1, Col: 3}},
			{{Row: 2, Col: 0}, {Row: 2, Col: 1}},
			{{Row: 2, Col: 2}, {Row: 2, Col: 3}},
			{{Row: 3, Col: 0}, {Row: 3, Col: 1}},
			{{Row: 3, Col: 2}, {Row: 3, Col: 3}},
		}

		var last *SelectOutcome
		for i, pair := range pairs {
			slot := 1 + i%2

			_, err := room.SelectLinkUpCell(slot, pair[0])
			require.NoError(t, err)

			last, err = room.SelectLinkUpCell(slot, pair[1])
			require.NoError(t, err)
			require.True(t, last.Matched)
		}

		// Then: an even split is a draw
		assert.Equal(t, StatusFinished, last.Snapshot.Status)
		assert.Equal(t, 0, last.Snapshot.Winner)
		assert.Equal(t, 4, last.Snapshot.Player1Score)
		assert.Equal(t, 4, last.Snapshot.Player2Score)
		assert.Equal(t, 0, last.Snapshot.LinkUp.RemainingPairs)

		_, err := room.SelectLinkUpCell(1, linkup.Cell{Row: 0, Col: 0})
		require.ErrorIs(t, err, apperror.ErrGameFinished)
	})
}

func TestRoom_RaceMode(t *testing.T) {
	newRace := func(t *testing.T) *Room {
		t.Helper()

		room, err := NewRoom("room-1", GameLinkUp, ModeRace, BoardConfig{Rows: 4, Cols: 4, Icons: 4}, "alice", "", "")
		require.NoError(t, err)

		_, _, err = room.Join("", "bob")
		require.NoError(t, err)

		board, err := linkup.BoardFromCells([][]int{
			{1, 1, 0, 0},
			{2, 2, 0, 0},
			{0, 0, 0, 0},
			{0, 0, 0, 0},
		}, 4)
		require.NoError(t, err)
		room.Session.Race.Boards[0] = board
		room.Session.Race.Boards[1] = board.Clone()

		return room
	}

	clearPair := func(t *testing.T, room *Room, slot int, a, b linkup.Cell) *SelectOutcome {
		t.Helper()

		_, err := room.SelectLinkUpCell(slot, a)
		require.NoError(t, err)

		outcome, err := room.SelectLinkUpCell(slot, b)
		require.NoError(t, err)
		require.True(t, outcome.Matched)

		return outcome
	}

	t.Run("NoTurnGating", func(t *testing.T) {
		room := newRace(t)

		// both slots select on their own boards without waiting
		_, err := room.SelectLinkUpCell(2, linkup.Cell{Row: 0, Col: 0})
		require.NoError(t, err)
		_, err = room.SelectLinkUpCell(1, linkup.Cell{Row: 1, Col: 0})
		require.NoError(t, err)

		assert.NotNil(t, room.Session.Race.Selected[0])
		assert.NotNil(t, room.Session.Race.Selected[1])
	})

	t.Run("FailedMatch_CarriesNewSelection", func(t *testing.T) {
		room := newRace(t)

		_, err := room.SelectLinkUpCell(1, linkup.Cell{Row: 0, Col: 0})
		require.NoError(t, err)

		// When: the second click hits a different icon
		outcome, err := room.SelectLinkUpCell(1, linkup.Cell{Row: 1, Col: 0})
		require.NoError(t, err)

		// Then: the clicked cell becomes the new selection
		assert.False(t, outcome.Matched)
		require.NotNil(t, room.Session.Race.Selected[0])
		assert.Equal(t, linkup.Cell{Row: 1, Col: 0}, *room.Session.Race.Selected[0])
		require.NotNil(t, outcome.Snapshot.Race.YourSelected)
		assert.Equal(t, linkup.Cell{Row: 1, Col: 0}, *outcome.Snapshot.Race.YourSelected)

		// And: the carried selection completes its pair directly
		next, err := room.SelectLinkUpCell(1, linkup.Cell{Row: 1, Col: 1})
		require.NoError(t, err)
		assert.True(t, next.Matched)
	})

	t.Run("FirstFinisherWins", func(t *testing.T) {
		room := newRace(t)

		// When: slot 1 clears its board first
		clearPair(t, room, 1, linkup.Cell{Row: 0, Col: 0}, linkup.Cell{Row: 0, Col: 1})
		outcome := clearPair(t, room, 1, linkup.Cell{Row: 1, Col: 0}, linkup.Cell{Row: 1, Col: 1})

		// Then: the room stays open until the opponent also finishes
		assert.Equal(t, StatusOngoing, outcome.Snapshot.Status)
		assert.True(t, outcome.Snapshot.Race.YourFinished)
		assert.False(t, outcome.Snapshot.Race.OpponentFinished)

		// And: a finished racer cannot keep clicking
		_, err := room.SelectLinkUpCell(1, linkup.Cell{Row: 0, Col: 0})
		require.ErrorIs(t, err, apperror.ErrBoardSolved)

		// the laggard still sees the leader's finish while playing
		assert.True(t, room.Snapshot(2).Race.OpponentFinished)

		clearPair(t, room, 2, linkup.Cell{Row: 0, Col: 0}, linkup.Cell{Row: 0, Col: 1})
		final := clearPair(t, room, 2, linkup.Cell{Row: 1, Col: 0}, linkup.Cell{Row: 1, Col: 1})

		assert.Equal(t, StatusFinished, final.Snapshot.Status)
		assert.Equal(t, 1, final.Snapshot.Winner)
	})
}

func TestRoom_Hint(t *testing.T) {
	t.Run("LinkUpDuel", func(t *testing.T) {
		room := newLinkUpDuel(t)

		a, b, err := room.Hint(1)

		require.NoError(t, err)
		_, ok := linkup.Connect(room.Session.LinkUp.Board, a, b)
		assert.True(t, ok)
	})

	t.Run("GomokuRoom_HasNoHints", func(t *testing.T) {
		room := newGomokuDuel(t)

		_, _, err := room.Hint(1)

		require.ErrorIs(t, err, ErrUnsupportedMode)
	})
}

func TestRoom_BotMode(t *testing.T) {
	room, err := NewRoom("room-1", GameGomoku, ModeBot, BoardConfig{BotLevel: 1}, "alice", "", "")
	require.NoError(t, err)

	// the human opens immediately, no join required
	snapshot, err := room.MakeGomokuMove(1, 7, 7)
	require.NoError(t, err)

	assert.Equal(t, 2, snapshot.CurrentTurn)
	assert.Equal(t, "Bot", snapshot.Player2Name)
}
