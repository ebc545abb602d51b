package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/playgrid/gameroom-backend/internal/apperror"
	"github.com/playgrid/gameroom-backend/internal/entity"
	"github.com/playgrid/gameroom-backend/internal/gomoku"
	"github.com/playgrid/gameroom-backend/internal/linkup"
	"github.com/playgrid/gameroom-backend/internal/pkg"
	"github.com/playgrid/gameroom-backend/internal/registry"
)

type resultRepo interface {
	Save(ctx context.Context, result *entity.MatchResult) error
	GetByRoomID(ctx context.Context, roomID string) (*entity.MatchResult, error)
}

// GameManager wires the room registry, the board engines and the result
// archive behind the transport layer.
type GameManager struct {
	logger   *slog.Logger
	registry *registry.Registry
	results  resultRepo
}

func NewGameManager(logger *slog.Logger, reg *registry.Registry, results resultRepo) *GameManager {
	return &GameManager{
		logger:   logger.With("component", "game-manager"),
		registry: reg,
		results:  results,
	}
}

// MoveOutcome is the response of a move in either game; MatchCells is only
// populated by linkup matches.
type MoveOutcome struct {
	Matched    bool
	MatchCells []linkup.Cell
	Snapshot   *entity.Snapshot
}

// CreateRoom - mints a room id, generates the board and seats the creator in
// slot 1.
func (that *GameManager) CreateRoom(game, mode string, config entity.BoardConfig, creator, roomName, password string) (*entity.Snapshot, error) {
	if creator == "" {
		creator = "Player 1"
	}

	if game == entity.GameLinkUp {
		config.Rows, config.Cols, config.Icons = linkup.ClampConfig(config.Rows, config.Cols, config.Icons)
	}

	room, err := entity.NewRoom(pkg.GenerateRoomID(), game, mode, config, creator, roomName, password)
	if err != nil {
		return nil, fmt.Errorf("failed to create room: %w", err)
	}

	that.registry.Add(room)

	that.logger.Info("room created", "roomID", room.ID, "game", game, "mode", mode)

	return room.Snapshot(1), nil
}

// JoinRoom - seats a second player; the returned slot is always 2.
func (that *GameManager) JoinRoom(roomID, password, playerName string) (int, *entity.Snapshot, error) {
	room, err := that.registry.Get(roomID)
	if err != nil {
		return 0, nil, err
	}

	slot, snapshot, err := room.Join(password, playerName)
	if err != nil {
		return 0, nil, err
	}

	that.logger.Info("player joined room", "roomID", roomID, "slot", slot)

	return slot, snapshot, nil
}

func (that *GameManager) ListRooms() []entity.RoomSummary {
	return that.registry.List()
}

// Move - applies one move for the requesting slot. In bot rooms a successful
// human move triggers the bot's reply, computed off-lock and applied through
// the same validated path.
func (that *GameManager) Move(ctx context.Context, roomID string, slot, x, y int) (*MoveOutcome, error) {
	room, err := that.registry.Get(roomID)
	if err != nil {
		return nil, err
	}

	outcome, err := that.applyMove(room, slot, x, y)
	if err != nil {
		return nil, err
	}

	if room.Mode == entity.ModeBot && outcome.Snapshot.Active && outcome.Snapshot.CurrentTurn == 2 {
		if snapshot := that.playBotTurn(room); snapshot != nil {
			outcome.Snapshot = snapshot
		}
	}

	if outcome.Snapshot.Status == entity.StatusFinished {
		that.archiveRoom(ctx, room)
	}

	return outcome, nil
}

func (that *GameManager) applyMove(room *entity.Room, slot, x, y int) (*MoveOutcome, error) {
	switch room.Game {
	case entity.GameGomoku:
		snapshot, err := room.MakeGomokuMove(slot, x, y)
		if err != nil {
			return nil, err
		}

		return &MoveOutcome{Snapshot: snapshot}, nil
	case entity.GameLinkUp:
		result, err := room.SelectLinkUpCell(slot, linkup.Cell{Row: x, Col: y})
		if err != nil {
			return nil, err
		}

		return &MoveOutcome{
			Matched:    result.Matched,
			MatchCells: result.MatchCells,
			Snapshot:   result.Snapshot,
		}, nil
	default:
		return nil, fmt.Errorf("%w: %s", entity.ErrUnsupportedMode, room.Game)
	}
}

// PollState - the complete snapshot for the requesting slot; identical calls
// after a terminal state return identical snapshots.
func (that *GameManager) PollState(roomID string, slot int) (*entity.Snapshot, error) {
	room, err := that.registry.Get(roomID)
	if err != nil {
		return nil, err
	}

	if slot != 1 && slot != 2 {
		return nil, fmt.Errorf("%w: %d", apperror.ErrInvalidSlot, slot)
	}

	return room.Snapshot(slot), nil
}

// Hint - a connectable pair on the requesting slot's linkup board.
func (that *GameManager) Hint(roomID string, slot int) (linkup.Cell, linkup.Cell, error) {
	room, err := that.registry.Get(roomID)
	if err != nil {
		return linkup.Cell{}, linkup.Cell{}, err
	}

	return room.Hint(slot)
}

// GetResult - the archived record of a finished room; a still-registered
// finished room answers from memory.
func (that *GameManager) GetResult(ctx context.Context, roomID string) (*entity.MatchResult, error) {
	if room, err := that.registry.Get(roomID); err == nil {
		if result := room.Result(); result != nil {
			return result, nil
		}
	}

	result, err := that.results.GetByRoomID(ctx, roomID)
	if err != nil {
		return nil, fmt.Errorf("failed to get match result: %w", err)
	}

	return result, nil
}

// ArchiveExpired - the registry GC callback: finished rooms are persisted
// before they vanish from memory.
func (that *GameManager) ArchiveExpired(room *entity.Room) {
	that.archiveRoom(context.Background(), room)
}

// OracleGomokuMove - the stateless AI contract: one move for the posted
// board. Callers re-validate the move before applying it.
func (that *GameManager) OracleGomokuMove(board *gomoku.Board, playerRole, level int) (int, int, error) {
	stone, err := gomoku.StoneForSlot(playerRole)
	if err != nil {
		return 0, 0, err
	}

	return gomoku.SuggestMove(board, stone, level)
}

// OracleLinkUpMatch - the stateless AI contract for linkup.
func (that *GameManager) OracleLinkUpMatch(board *linkup.Board, level int) (linkup.Cell, linkup.Cell, error) {
	return linkup.SuggestMatch(board, level)
}

// playBotTurn computes the bot's reply against a detached board copy and
// re-applies it through the regular validated move path. A misbehaving oracle
// only ever loses its turn; it cannot corrupt the session.
func (that *GameManager) playBotTurn(room *entity.Room) *entity.Snapshot {
	log := that.logger.With("method", "playBotTurn", "roomID", room.ID)

	switch room.Game {
	case entity.GameGomoku:
		board, err := room.CloneGomokuBoard()
		if err != nil {
			log.Error("failed to clone board", "error", err)
			return nil
		}

		x, y, err := gomoku.SuggestMove(board, gomoku.White, room.Config.BotLevel)
		if err != nil {
			log.Error("bot failed to suggest a move", "error", err)
			return nil
		}

		snapshot, err := room.MakeGomokuMove(2, x, y)
		if err != nil {
			log.Error("bot move rejected", "error", err)
			return nil
		}

		return snapshot
	case entity.GameLinkUp:
		board, err := room.CloneLinkUpBoard()
		if err != nil {
			log.Error("failed to clone board", "error", err)
			return nil
		}

		a, b, err := linkup.SuggestMatch(board, room.Config.BotLevel)
		if err != nil {
			if !errors.Is(err, apperror.ErrBoardSolved) {
				log.Error("bot failed to suggest a match", "error", err)
			}
			return nil
		}

		if _, err = room.SelectLinkUpCell(2, a); err != nil {
			log.Error("bot selection rejected", "error", err)
			return nil
		}

		outcome, err := room.SelectLinkUpCell(2, b)
		if err != nil {
			log.Error("bot match rejected", "error", err)
			return nil
		}

		return outcome.Snapshot
	default:
		return nil
	}
}

func (that *GameManager) archiveRoom(ctx context.Context, room *entity.Room) {
	log := that.logger.With("method", "archiveRoom", "roomID", room.ID)

	result := room.Result()
	if result == nil {
		return
	}

	if err := that.results.Save(ctx, result); err != nil {
		log.Error("failed to archive match result", "error", err)
		return
	}

	log.Info("match result archived", "winner", result.Winner)
}
