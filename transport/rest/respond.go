package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/playgrid/gameroom-backend/internal/apperror"
	"github.com/playgrid/gameroom-backend/internal/entity"
	"github.com/playgrid/gameroom-backend/internal/repository"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, log *slog.Logger, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Error("failed to encode response", "error", err)
	}
}

func writeBadRequest(w http.ResponseWriter, log *slog.Logger, message string) {
	writeJSON(w, log, http.StatusBadRequest, errorResponse{Error: message})
}

// writeError maps the error taxonomy onto HTTP statuses: malformed input is
// 400, authorization failures 401, unknown resources 404 and everything the
// session refused in its current state 409.
func writeError(w http.ResponseWriter, log *slog.Logger, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, apperror.ErrInvalidCell),
		errors.Is(err, apperror.ErrInvalidSlot),
		errors.Is(err, entity.ErrUnsupportedMode):
		status = http.StatusBadRequest
	case errors.Is(err, apperror.ErrWrongPassword):
		status = http.StatusUnauthorized
	case errors.Is(err, apperror.ErrRoomNotFound),
		errors.Is(err, repository.ErrResultNotFound):
		status = http.StatusNotFound
	case errors.Is(err, apperror.ErrRoomFull),
		errors.Is(err, apperror.ErrNotYourTurn),
		errors.Is(err, apperror.ErrCellOccupied),
		errors.Is(err, apperror.ErrCellEmpty),
		errors.Is(err, apperror.ErrSameCell),
		errors.Is(err, apperror.ErrGameFinished),
		errors.Is(err, apperror.ErrGameIsNotStarted),
		errors.Is(err, apperror.ErrNoMovesAvailable),
		errors.Is(err, apperror.ErrBoardSolved):
		status = http.StatusConflict
	}

	if status == http.StatusInternalServerError {
		log.Error("request failed", "error", err)
		writeJSON(w, log, status, errorResponse{Error: "internal server error"})
		return
	}

	writeJSON(w, log, status, errorResponse{Error: err.Error()})
}
