package entity

import (
	"github.com/playgrid/gameroom-backend/internal/gomoku"
	"github.com/playgrid/gameroom-backend/internal/linkup"
)

// Snapshot is a complete, self-sufficient serialization of session state.
// Every poll returns one; boards are deep copies so clients never share
// mutable state with the room.
type Snapshot struct {
	RoomID      string `json:"roomId"`
	Game        string `json:"game"`
	Mode        string `json:"mode"`
	Status      string `json:"status"`
	Active      bool   `json:"active"`
	Winner      int    `json:"winner"`
	Seq         int    `json:"seq"`
	CurrentTurn int    `json:"currentTurn"`
	YourTurn    bool   `json:"yourTurn"`

	Player1Name  string `json:"player1Name"`
	Player2Name  string `json:"player2Name"`
	Player1Score int    `json:"player1Score"`
	Player2Score int    `json:"player2Score"`

	Gomoku *GomokuSnapshot `json:"gomoku,omitempty"`
	LinkUp *LinkUpSnapshot `json:"linkup,omitempty"`
	Race   *RaceSnapshot   `json:"race,omitempty"`
}

type GomokuSnapshot struct {
	Board    *gomoku.Board `json:"board"`
	LastMove *GomokuMove   `json:"lastMove,omitempty"`
}

type LinkUpSnapshot struct {
	Board          *linkup.Board `json:"board"`
	Selected       *linkup.Cell  `json:"selected,omitempty"`
	TotalPairs     int           `json:"totalPairs"`
	RemainingPairs int           `json:"remainingPairs"`
}

// RaceSnapshot is slot-relative: each poller sees its own board in full and
// only progress counters for the opponent's.
type RaceSnapshot struct {
	YourBoard              *linkup.Board `json:"yourBoard"`
	YourSelected           *linkup.Cell  `json:"yourSelected,omitempty"`
	YourRemainingPairs     int           `json:"yourRemainingPairs"`
	YourFinished           bool          `json:"yourFinished"`
	YourFinishedAt         int64         `json:"yourFinishedAt,omitempty"`
	OpponentScore          int           `json:"opponentScore"`
	OpponentRemainingPairs int           `json:"opponentRemainingPairs"`
	OpponentFinished       bool          `json:"opponentFinished"`
	OpponentFinishedAt     int64         `json:"opponentFinishedAt,omitempty"`
}

// Snapshot - the poll response for the requesting slot.
func (that *Room) Snapshot(slot int) *Snapshot {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.snapshotLocked(slot)
}

func (that *Room) snapshotLocked(slot int) *Snapshot {
	session := that.Session

	snapshot := &Snapshot{
		RoomID:       that.ID,
		Game:         that.Game,
		Mode:         that.Mode,
		Status:       session.Status,
		Active:       session.Status == StatusOngoing,
		Winner:       session.Winner,
		Seq:          session.Seq,
		CurrentTurn:  session.Turn,
		YourTurn:     session.Status == StatusOngoing && session.Turn == slot,
		Player1Name:  that.Player1Name,
		Player2Name:  that.Player2Name,
		Player1Score: session.Player1Score,
		Player2Score: session.Player2Score,
	}

	switch {
	case session.Gomoku != nil:
		snapshot.Gomoku = &GomokuSnapshot{
			Board:    session.Gomoku.Board.Clone(),
			LastMove: session.Gomoku.LastMove,
		}
	case session.LinkUp != nil:
		snapshot.LinkUp = &LinkUpSnapshot{
			Board:          session.LinkUp.Board.Clone(),
			Selected:       session.LinkUp.Selected,
			TotalPairs:     session.LinkUp.Board.TotalPairs(),
			RemainingPairs: session.LinkUp.Board.Remaining(),
		}
	case session.Race != nil:
		snapshot.Race = that.raceSnapshotLocked(slot)
	}

	return snapshot
}

func (that *Room) raceSnapshotLocked(slot int) *RaceSnapshot {
	race := that.Session.Race

	yours, theirs := 0, 1
	opponentScore := that.Session.Player2Score
	if slot == 2 {
		yours, theirs = 1, 0
		opponentScore = that.Session.Player1Score
	}

	snapshot := &RaceSnapshot{
		YourBoard:              race.Boards[yours].Clone(),
		YourSelected:           race.Selected[yours],
		YourRemainingPairs:     race.Boards[yours].Remaining(),
		YourFinished:           !race.FinishedAt[yours].IsZero(),
		OpponentScore:          opponentScore,
		OpponentRemainingPairs: race.Boards[theirs].Remaining(),
		OpponentFinished:       !race.FinishedAt[theirs].IsZero(),
	}

	if snapshot.YourFinished {
		snapshot.YourFinishedAt = race.FinishedAt[yours].Unix()
	}
	if snapshot.OpponentFinished {
		snapshot.OpponentFinishedAt = race.FinishedAt[theirs].Unix()
	}

	return snapshot
}
