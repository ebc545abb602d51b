package entity

import (
	"fmt"
	"sync"
	"time"

	"github.com/playgrid/gameroom-backend/internal/apperror"
	"github.com/playgrid/gameroom-backend/internal/gomoku"
	"github.com/playgrid/gameroom-backend/internal/linkup"
)

const (
	StatusWaiting  = "waiting"
	StatusOngoing  = "ongoing"
	StatusFinished = "finished"
)

const (
	GameGomoku = "gomoku"
	GameLinkUp = "linkup"
)

const (
	ModeDuel = "duel"
	ModeRace = "race"
	ModeBot  = "bot"
)

const botPlayerName = "Bot"

// BoardConfig describes the board a room plays on; Rows/Cols/Icons only apply
// to linkup, gomoku is always 15x15.
type BoardConfig struct {
	Rows     int `json:"rows,omitempty"`
	Cols     int `json:"cols,omitempty"`
	Icons    int `json:"icons,omitempty"`
	BotLevel int `json:"botLevel,omitempty"`
}

// Room owns its Session exclusively; every read or transition goes through the
// room's mutex, so one room never contends with another.
type Room struct {
	mu sync.Mutex

	ID        string
	Name      string
	Creator   string
	CreatedAt time.Time

	// stored as provided, never echoed; listings expose only a boolean
	password string

	Game   string
	Mode   string
	Config BoardConfig

	Player1Name string
	Player2Name string

	Session *Session

	StartedAt    time.Time
	FinishedAt   time.Time
	LastActivity time.Time
}

// RoomSummary is the non-sensitive listing view of a room.
type RoomSummary struct {
	RoomID       string      `json:"roomId"`
	RoomName     string      `json:"roomName"`
	Creator      string      `json:"creator"`
	Game         string      `json:"game"`
	Mode         string      `json:"mode"`
	BoardConfig  BoardConfig `json:"boardConfig"`
	HasPassword  bool        `json:"hasPassword"`
	Player1Ready bool        `json:"player1Ready"`
	Player2Ready bool        `json:"player2Ready"`
	CreatedAt    int64       `json:"createdAt"`
}

// NewRoom - creates a room with the creator in slot 1. Bot rooms activate
// immediately with the bot in slot 2; every other room waits for a join.
func NewRoom(id, game, mode string, config BoardConfig, creator, roomName, password string) (*Room, error) {
	session, err := newSession(game, mode, config)
	if err != nil {
		return nil, err
	}

	now := time.Now()

	room := &Room{
		ID:           id,
		Name:         roomName,
		Creator:      creator,
		CreatedAt:    now,
		password:     password,
		Game:         game,
		Mode:         mode,
		Config:       config,
		Player1Name:  creator,
		Session:      session,
		LastActivity: now,
	}

	if mode == ModeBot {
		room.Player2Name = botPlayerName
		room.Session.Status = StatusOngoing
		room.StartedAt = now
	}

	return room, nil
}

// HasPassword - reports password presence without revealing the password.
func (that *Room) HasPassword() bool {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.password != ""
}

// Join - seats a second player. Fails with ErrRoomFull once slot 2 is taken
// and with ErrWrongPassword on a mismatch; a failed join never mutates slot 2.
func (that *Room) Join(password, playerName string) (int, *Snapshot, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.Session.Status != StatusWaiting {
		return 0, nil, fmt.Errorf("%w: room %s", apperror.ErrRoomFull, that.ID)
	}

	if that.password != "" && that.password != password {
		return 0, nil, apperror.ErrWrongPassword
	}

	if playerName == "" {
		playerName = "Player 2"
	}

	now := time.Now()

	that.Player2Name = playerName
	that.Session.Status = StatusOngoing
	that.StartedAt = now
	that.LastActivity = now

	return 2, that.snapshotLocked(2), nil
}

// Summary - the listing view; taken under the room lock so slot flags and the
// password boolean are consistent.
func (that *Room) Summary() RoomSummary {
	that.mu.Lock()
	defer that.mu.Unlock()

	return RoomSummary{
		RoomID:       that.ID,
		RoomName:     that.Name,
		Creator:      that.Creator,
		Game:         that.Game,
		Mode:         that.Mode,
		BoardConfig:  that.Config,
		HasPassword:  that.password != "",
		Player1Ready: true,
		Player2Ready: that.Session.Status != StatusWaiting,
		CreatedAt:    that.CreatedAt.Unix(),
	}
}

// Joinable - whether the room should appear in listings.
func (that *Room) Joinable() bool {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.Session.Status == StatusWaiting
}

// Expired - the garbage-collection predicate: a room is expired once it has
// waited for a second player longer than waitingTimeout, once an ongoing
// session has seen no move for that long, or once it finished more than
// retention ago.
func (that *Room) Expired(now time.Time, waitingTimeout, retention time.Duration) bool {
	that.mu.Lock()
	defer that.mu.Unlock()

	switch that.Session.Status {
	case StatusWaiting:
		return now.Sub(that.CreatedAt) > waitingTimeout
	case StatusOngoing:
		return now.Sub(that.LastActivity) > waitingTimeout
	case StatusFinished:
		return now.Sub(that.FinishedAt) > retention
	default:
		return false
	}
}

// Result - the archival record of a finished room, nil while the session is
// still live.
func (that *Room) Result() *MatchResult {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.Session.Status != StatusFinished {
		return nil
	}

	return &MatchResult{
		RoomID:       that.ID,
		RoomName:     that.Name,
		Game:         that.Game,
		Mode:         that.Mode,
		Winner:       that.Session.Winner,
		Player1Name:  that.Player1Name,
		Player2Name:  that.Player2Name,
		Player1Score: that.Session.Player1Score,
		Player2Score: that.Session.Player2Score,
		StartedAt:    that.StartedAt.Unix(),
		FinishedAt:   that.FinishedAt.Unix(),
	}
}

// CloneGomokuBoard - a detached board copy for the move oracle, so the
// suggestion is computed outside the room lock.
func (that *Room) CloneGomokuBoard() (*gomoku.Board, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.Session.Gomoku == nil {
		return nil, fmt.Errorf("%w: room %s is not a gomoku room", apperror.ErrInvalidCell, that.ID)
	}

	return that.Session.Gomoku.Board.Clone(), nil
}

// CloneLinkUpBoard - same as CloneGomokuBoard for the linkup oracle.
func (that *Room) CloneLinkUpBoard() (*linkup.Board, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.Session.LinkUp == nil {
		return nil, fmt.Errorf("%w: room %s is not a linkup room", apperror.ErrInvalidCell, that.ID)
	}

	return that.Session.LinkUp.Board.Clone(), nil
}

// MatchResult is what survives a room after garbage collection.
type MatchResult struct {
	RoomID       string `json:"roomId"`
	RoomName     string `json:"roomName,omitempty"`
	Game         string `json:"game"`
	Mode         string `json:"mode"`
	Winner       int    `json:"winner"`
	Player1Name  string `json:"player1Name"`
	Player2Name  string `json:"player2Name"`
	Player1Score int    `json:"player1Score"`
	Player2Score int    `json:"player2Score"`
	StartedAt    int64  `json:"startedAt"`
	FinishedAt   int64  `json:"finishedAt"`
}
