package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/playgrid/gameroom-backend/internal/entity"
	"github.com/playgrid/gameroom-backend/internal/gomoku"
	"github.com/playgrid/gameroom-backend/internal/linkup"
	"github.com/playgrid/gameroom-backend/internal/usecase"
)

type Handlers interface {
	PingHandler(w http.ResponseWriter, _ *http.Request)

	CreateRoomHandler(w http.ResponseWriter, r *http.Request)
	ListRoomsHandler(w http.ResponseWriter, r *http.Request)
	JoinRoomHandler(w http.ResponseWriter, r *http.Request)
	MoveHandler(w http.ResponseWriter, r *http.Request)
	StateHandler(w http.ResponseWriter, r *http.Request)
	HintHandler(w http.ResponseWriter, r *http.Request)
	ResultHandler(w http.ResponseWriter, r *http.Request)

	GomokuOracleHandler(w http.ResponseWriter, r *http.Request)
	LinkUpOracleHandler(w http.ResponseWriter, r *http.Request)
}

type gameManager interface {
	CreateRoom(game, mode string, config entity.BoardConfig, creator, roomName, password string) (*entity.Snapshot, error)
	JoinRoom(roomID, password, playerName string) (int, *entity.Snapshot, error)
	ListRooms() []entity.RoomSummary
	Move(ctx context.Context, roomID string, slot, x, y int) (*usecase.MoveOutcome, error)
	PollState(roomID string, slot int) (*entity.Snapshot, error)
	Hint(roomID string, slot int) (linkup.Cell, linkup.Cell, error)
	GetResult(ctx context.Context, roomID string) (*entity.MatchResult, error)

	OracleGomokuMove(board *gomoku.Board, playerRole, level int) (int, int, error)
	OracleLinkUpMatch(board *linkup.Board, level int) (linkup.Cell, linkup.Cell, error)
}

type handlers struct {
	logger      *slog.Logger
	gameManager gameManager
}

func NewHandlers(logger *slog.Logger, manager gameManager) Handlers {
	return &handlers{
		logger:      logger.With("component", "rest-handlers"),
		gameManager: manager,
	}
}

type createRoomRequest struct {
	Game        string             `json:"game"`
	Mode        string             `json:"mode"`
	RoomName    string             `json:"roomName"`
	PlayerName  string             `json:"playerName"`
	Password    string             `json:"password"`
	BoardConfig entity.BoardConfig `json:"boardConfig"`
}

type joinRoomRequest struct {
	PlayerName string `json:"playerName"`
	Password   string `json:"password"`
}

// moveRequest carries coordinates for either game: x/y for gomoku, row/col
// for linkup. Pointers distinguish "absent" from a legitimate zero.
type moveRequest struct {
	Player int  `json:"player"`
	X      *int `json:"x,omitempty"`
	Y      *int `json:"y,omitempty"`
	Row    *int `json:"row,omitempty"`
	Col    *int `json:"col,omitempty"`
}

type playerStateResponse struct {
	Player int              `json:"player"`
	State  *entity.Snapshot `json:"state"`
}

type moveResponse struct {
	Matched    bool             `json:"matched"`
	MatchCells []linkup.Cell    `json:"matchCells,omitempty"`
	State      *entity.Snapshot `json:"state"`
}

func (that *handlers) CreateRoomHandler(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "CreateRoomHandler")

	var req createRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, log, "invalid request body")
		return
	}

	snapshot, err := that.gameManager.CreateRoom(req.Game, req.Mode, req.BoardConfig, req.PlayerName, req.RoomName, req.Password)
	if err != nil {
		writeError(w, log, err)
		return
	}

	writeJSON(w, log, http.StatusCreated, playerStateResponse{Player: 1, State: snapshot})
}

func (that *handlers) ListRoomsHandler(w http.ResponseWriter, _ *http.Request) {
	log := that.logger.With("method", "ListRoomsHandler")

	writeJSON(w, log, http.StatusOK, that.gameManager.ListRooms())
}

func (that *handlers) JoinRoomHandler(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "JoinRoomHandler")

	var req joinRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, log, "invalid request body")
		return
	}

	slot, snapshot, err := that.gameManager.JoinRoom(chi.URLParam(r, "roomID"), req.Password, req.PlayerName)
	if err != nil {
		writeError(w, log, err)
		return
	}

	writeJSON(w, log, http.StatusOK, playerStateResponse{Player: slot, State: snapshot})
}

func (that *handlers) MoveHandler(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "MoveHandler")

	var req moveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, log, "invalid request body")
		return
	}

	var x, y int
	switch {
	case req.Row != nil && req.Col != nil:
		x, y = *req.Row, *req.Col
	case req.X != nil && req.Y != nil:
		x, y = *req.X, *req.Y
	default:
		writeBadRequest(w, log, "move coordinates are required")
		return
	}

	outcome, err := that.gameManager.Move(r.Context(), chi.URLParam(r, "roomID"), req.Player, x, y)
	if err != nil {
		writeError(w, log, err)
		return
	}

	writeJSON(w, log, http.StatusOK, moveResponse{
		Matched:    outcome.Matched,
		MatchCells: outcome.MatchCells,
		State:      outcome.Snapshot,
	})
}

func (that *handlers) StateHandler(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "StateHandler")

	slot, ok := playerParam(r)
	if !ok {
		writeBadRequest(w, log, "player query parameter is required")
		return
	}

	snapshot, err := that.gameManager.PollState(chi.URLParam(r, "roomID"), slot)
	if err != nil {
		writeError(w, log, err)
		return
	}

	writeJSON(w, log, http.StatusOK, snapshot)
}

func (that *handlers) HintHandler(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "HintHandler")

	slot, ok := playerParam(r)
	if !ok {
		writeBadRequest(w, log, "player query parameter is required")
		return
	}

	a, b, err := that.gameManager.Hint(chi.URLParam(r, "roomID"), slot)
	if err != nil {
		writeError(w, log, err)
		return
	}

	writeJSON(w, log, http.StatusOK, map[string]linkup.Cell{"a": a, "b": b})
}

func (that *handlers) ResultHandler(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "ResultHandler")

	result, err := that.gameManager.GetResult(r.Context(), chi.URLParam(r, "roomID"))
	if err != nil {
		writeError(w, log, err)
		return
	}

	writeJSON(w, log, http.StatusOK, result)
}

type gomokuOracleRequest struct {
	Board  [][]gomoku.Stone `json:"board"`
	Player int              `json:"player"`
	Level  int              `json:"level"`
}

func (that *handlers) GomokuOracleHandler(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "GomokuOracleHandler")

	var req gomokuOracleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, log, "invalid request body")
		return
	}

	board, err := gomoku.BoardFromCells(req.Board)
	if err != nil {
		writeError(w, log, err)
		return
	}

	x, y, err := that.gameManager.OracleGomokuMove(board, req.Player, req.Level)
	if err != nil {
		writeError(w, log, err)
		return
	}

	writeJSON(w, log, http.StatusOK, map[string]int{"x": x, "y": y})
}

type linkUpOracleRequest struct {
	Board [][]int `json:"board"`
	Icons int     `json:"icons"`
	Level int     `json:"level"`
}

func (that *handlers) LinkUpOracleHandler(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "LinkUpOracleHandler")

	var req linkUpOracleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, log, "invalid request body")
		return
	}

	board, err := linkup.BoardFromCells(req.Board, req.Icons)
	if err != nil {
		writeError(w, log, err)
		return
	}

	a, b, err := that.gameManager.OracleLinkUpMatch(board, req.Level)
	if err != nil {
		writeError(w, log, err)
		return
	}

	writeJSON(w, log, http.StatusOK, map[string]linkup.Cell{"a": a, "b": b})
}

func playerParam(r *http.Request) (int, bool) {
	slot, err := strconv.Atoi(r.URL.Query().Get("player"))
	if err != nil {
		return 0, false
	}

	return slot, true
}
