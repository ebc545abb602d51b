package entity

import (
	"errors"
	"fmt"
	"time"

	"github.com/playgrid/gameroom-backend/internal/apperror"
	"github.com/playgrid/gameroom-backend/internal/gomoku"
	"github.com/playgrid/gameroom-backend/internal/linkup"
)

var ErrUnsupportedMode = errors.New("unsupported game/mode combination")

// Session is the live game state embedded in a Room. It is never shared:
// callers only ever see serialized snapshots.
type Session struct {
	Status string
	Turn   int // slot on turn in duel/bot modes, 0 in race and terminal states
	Winner int // 0 undecided or draw, 1 or 2 the winning slot
	Seq    int // server-assigned move sequence number

	Player1Score int
	Player2Score int

	Gomoku *GomokuState
	LinkUp *LinkUpState
	Race   *RaceState
}

type GomokuState struct {
	Board    *gomoku.Board
	Moves    int
	LastMove *GomokuMove
}

// GomokuMove is the last accepted move, kept for client-side highlighting.
type GomokuMove struct {
	X    int `json:"x"`
	Y    int `json:"y"`
	Slot int `json:"slot"`
}

type LinkUpState struct {
	Board    *linkup.Board
	Selected *linkup.Cell
}

// RaceState holds one independent sub-board per slot; both start from
// identical layouts.
type RaceState struct {
	Boards     [2]*linkup.Board
	Selected   [2]*linkup.Cell
	FinishedAt [2]time.Time
}

func newSession(game, mode string, config BoardConfig) (*Session, error) {
	session := &Session{
		Status: StatusWaiting,
		Turn:   1, // slot 1 always opens
	}

	switch {
	case game == GameGomoku && (mode == ModeDuel || mode == ModeBot):
		session.Gomoku = &GomokuState{Board: gomoku.NewBoard()}
	case game == GameLinkUp && (mode == ModeDuel || mode == ModeBot):
		session.LinkUp = &LinkUpState{Board: linkup.Generate(config.Rows, config.Cols, config.Icons)}
	case game == GameLinkUp && mode == ModeRace:
		board := linkup.Generate(config.Rows, config.Cols, config.Icons)
		session.Turn = 0 // no turn alternation in race mode
		session.Race = &RaceState{
			Boards: [2]*linkup.Board{board, board.Clone()},
		}
	default:
		return nil, fmt.Errorf("%w: %s/%s", ErrUnsupportedMode, game, mode)
	}

	return session, nil
}

// SelectOutcome is the result of a linkup cell selection.
type SelectOutcome struct {
	Matched    bool          `json:"matched"`
	MatchCells []linkup.Cell `json:"matchCells,omitempty"`
	Snapshot   *Snapshot     `json:"snapshot"`
}

// MakeGomokuMove - the whole move unit runs under the room lock: turn check,
// board validation, mutation, termination evaluation, turn advance.
func (that *Room) MakeGomokuMove(slot, x, y int) (*Snapshot, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if err := that.ensureOngoingLocked(); err != nil {
		return nil, err
	}

	if that.Session.Gomoku == nil {
		return nil, fmt.Errorf("%w: room %s is not a gomoku room", ErrUnsupportedMode, that.ID)
	}

	stone, err := gomoku.StoneForSlot(slot)
	if err != nil {
		return nil, err
	}

	if that.Session.Turn != slot {
		return nil, apperror.ErrNotYourTurn
	}

	state := that.Session.Gomoku
	if err = state.Board.Apply(x, y, stone); err != nil {
		return nil, err
	}

	state.Moves++
	state.LastMove = &GomokuMove{X: x, Y: y, Slot: slot}
	that.Session.Seq++
	that.LastActivity = time.Now()

	switch {
	case state.Board.CheckWin(x, y, stone):
		that.finishLocked(slot)
	case state.Board.Full():
		that.finishLocked(0)
	default:
		that.Session.Turn = 3 - slot
	}

	return that.snapshotLocked(slot), nil
}

// SelectLinkUpCell - first click selects, second click attempts a match. In
// duel and bot modes the turn passes to the other slot after every resolved
// pair attempt; race mode has no turns.
func (that *Room) SelectLinkUpCell(slot int, cell linkup.Cell) (*SelectOutcome, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if err := that.ensureOngoingLocked(); err != nil {
		return nil, err
	}

	if slot != 1 && slot != 2 {
		return nil, fmt.Errorf("%w: %d", apperror.ErrInvalidSlot, slot)
	}

	if that.Session.Race != nil {
		return that.selectRaceCellLocked(slot, cell)
	}

	if that.Session.LinkUp == nil {
		return nil, fmt.Errorf("%w: room %s is not a linkup room", ErrUnsupportedMode, that.ID)
	}

	if that.Session.Turn != slot {
		return nil, apperror.ErrNotYourTurn
	}

	state := that.Session.LinkUp
	if err := state.Board.Validate(cell); err != nil {
		return nil, err
	}

	if state.Selected == nil {
		state.Selected = &cell
		that.Session.Seq++
		that.LastActivity = time.Now()

		return &SelectOutcome{Snapshot: that.snapshotLocked(slot)}, nil
	}

	if *state.Selected == cell {
		return nil, apperror.ErrSameCell
	}

	first := *state.Selected
	state.Selected = nil
	that.Session.Seq++
	that.LastActivity = time.Now()

	path, ok := linkup.Connect(state.Board, first, cell)
	if !ok {
		that.Session.Turn = 3 - slot

		return &SelectOutcome{Snapshot: that.snapshotLocked(slot)}, nil
	}

	state.Board.ClearPair(first, cell)
	that.addScoreLocked(slot)

	if state.Board.Solved() {
		that.finishLocked(that.scoreWinnerLocked())
	} else {
		that.Session.Turn = 3 - slot
	}

	return &SelectOutcome{
		Matched:    true,
		MatchCells: path,
		Snapshot:   that.snapshotLocked(slot),
	}, nil
}

// selectRaceCellLocked - the same selection rules against the slot's own
// sub-board; a solved sub-board records the finish time and the room finishes
// once both are done.
func (that *Room) selectRaceCellLocked(slot int, cell linkup.Cell) (*SelectOutcome, error) {
	race := that.Session.Race
	idx := slot - 1

	if !race.FinishedAt[idx].IsZero() {
		return nil, apperror.ErrBoardSolved
	}

	board := race.Boards[idx]
	if err := board.Validate(cell); err != nil {
		return nil, err
	}

	if race.Selected[idx] == nil {
		race.Selected[idx] = &cell
		that.Session.Seq++
		that.LastActivity = time.Now()

		return &SelectOutcome{Snapshot: that.snapshotLocked(slot)}, nil
	}

	if *race.Selected[idx] == cell {
		return nil, apperror.ErrSameCell
	}

	first := *race.Selected[idx]
	race.Selected[idx] = nil
	that.Session.Seq++
	that.LastActivity = time.Now()

	path, ok := linkup.Connect(board, first, cell)
	if !ok {
		// no turn to pass here, the clicked cell carries over as the
		// new selection
		race.Selected[idx] = &cell

		return &SelectOutcome{Snapshot: that.snapshotLocked(slot)}, nil
	}

	board.ClearPair(first, cell)
	that.addScoreLocked(slot)

	if board.Solved() {
		race.FinishedAt[idx] = time.Now()

		if !race.FinishedAt[0].IsZero() && !race.FinishedAt[1].IsZero() {
			that.finishLocked(that.raceWinnerLocked())
		}
	}

	return &SelectOutcome{
		Matched:    true,
		MatchCells: path,
		Snapshot:   that.snapshotLocked(slot),
	}, nil
}

// Hint - a currently connectable pair on the requesting slot's board.
func (that *Room) Hint(slot int) (linkup.Cell, linkup.Cell, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	switch {
	case that.Session.LinkUp != nil:
		return linkup.FindHint(that.Session.LinkUp.Board)
	case that.Session.Race != nil:
		if slot != 1 && slot != 2 {
			return linkup.Cell{}, linkup.Cell{}, fmt.Errorf("%w: %d", apperror.ErrInvalidSlot, slot)
		}
		return linkup.FindHint(that.Session.Race.Boards[slot-1])
	default:
		return linkup.Cell{}, linkup.Cell{}, fmt.Errorf("%w: hints only exist for linkup", ErrUnsupportedMode)
	}
}

func (that *Room) ensureOngoingLocked() error {
	switch that.Session.Status {
	case StatusWaiting:
		return apperror.ErrGameIsNotStarted
	case StatusFinished:
		return apperror.ErrGameFinished
	default:
		return nil
	}
}

func (that *Room) addScoreLocked(slot int) {
	if slot == 1 {
		that.Session.Player1Score++
		return
	}
	that.Session.Player2Score++
}

// finishLocked freezes the session; nothing mutates it afterwards.
func (that *Room) finishLocked(winner int) {
	that.Session.Status = StatusFinished
	that.Session.Winner = winner
	that.Session.Turn = 0
	that.FinishedAt = time.Now()
}

func (that *Room) scoreWinnerLocked() int {
	switch {
	case that.Session.Player1Score > that.Session.Player2Score:
		return 1
	case that.Session.Player2Score > that.Session.Player1Score:
		return 2
	default:
		return 0
	}
}

// raceWinnerLocked - earlier finish wins; identical times fall back to score.
func (that *Room) raceWinnerLocked() int {
	race := that.Session.Race

	switch {
	case race.FinishedAt[0].Before(race.FinishedAt[1]):
		return 1
	case race.FinishedAt[1].Before(race.FinishedAt[0]):
		return 2
	default:
		return that.scoreWinnerLocked()
	}
}
