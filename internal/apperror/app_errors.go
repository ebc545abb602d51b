package apperror

import "errors"

// Protocol errors - surfaced verbatim to the caller, never retried automatically.
var (
	ErrRoomNotFound  = errors.New("room not found")
	ErrRoomFull      = errors.New("room is already full")
	ErrWrongPassword = errors.New("wrong password")
)

// Validation errors - caller-caused, rejected without mutating state.
var (
	ErrNotYourTurn  = errors.New("it's not your turn")
	ErrInvalidCell  = errors.New("invalid cell coordinates")
	ErrCellOccupied = errors.New("cell is already occupied")
	ErrCellEmpty    = errors.New("cell is empty")
	ErrSameCell     = errors.New("same cell selected twice")
	ErrInvalidSlot  = errors.New("invalid player slot")
)

// Session lifecycle errors.
var (
	ErrGameFinished     = errors.New("game is already finished")
	ErrGameIsNotStarted = errors.New("game is not started")
)

// Logical impossibilities - end of game or a generator invariant violation.
var (
	ErrNoMovesAvailable = errors.New("no moves available")
	ErrBoardSolved      = errors.New("board is already solved")
)
