package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rocketscienceinc/tictactoe-widget/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-widget/internal/entity"
	"github.com/rocketscienceinc/tictactoe-widget/internal/widget"
)

type gameUseCase interface {
	NewSession(ctx context.Context) (entity.Session, error)
	GetSession(ctx context.Context, sessionID string) (entity.Session, error)

	MakeTurn(ctx context.Context, sessionID string, cell int) (entity.Session, error)
	Restart(ctx context.Context, sessionID string) (entity.Session, error)
	ToggleTheme(ctx context.Context, sessionID string) (entity.Session, error)

	EndSession(ctx context.Context, sessionID string) error
}

type moveRequest struct {
	Cell *int `json:"cell"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type handlers struct {
	logger      *slog.Logger
	gameUseCase gameUseCase
}

func newHandlers(logger *slog.Logger, gameUseCase gameUseCase) *handlers {
	return &handlers{
		logger:      logger.With("component", "rest"),
		gameUseCase: gameUseCase,
	}
}

func (that *handlers) CreateSession(w http.ResponseWriter, r *http.Request) {
	session, err := that.gameUseCase.NewSession(r.Context())
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, widget.RenderSession(session))
}

func (that *handlers) GetSession(w http.ResponseWriter, r *http.Request) {
	session, err := that.gameUseCase.GetSession(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, widget.RenderSession(session))
}

func (that *handlers) MakeTurn(w http.ResponseWriter, r *http.Request) {
	var req moveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	if req.Cell == nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "cell is required"})
		return
	}

	session, err := that.gameUseCase.MakeTurn(r.Context(), chi.URLParam(r, "sessionID"), *req.Cell)
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, widget.RenderSession(session))
}

func (that *handlers) Restart(w http.ResponseWriter, r *http.Request) {
	session, err := that.gameUseCase.Restart(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, widget.RenderSession(session))
}

func (that *handlers) ToggleTheme(w http.ResponseWriter, r *http.Request) {
	session, err := that.gameUseCase.ToggleTheme(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, widget.RenderSession(session))
}

func (that *handlers) EndSession(w http.ResponseWriter, r *http.Request) {
	if err := that.gameUseCase.EndSession(r.Context(), chi.URLParam(r, "sessionID")); err != nil {
		that.writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// writeError maps use case errors onto HTTP statuses.
func (that *handlers) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, apperror.ErrSessionNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: apperror.ErrSessionNotFound.Error()})
	case errors.Is(err, apperror.ErrInvalidCell):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: apperror.ErrInvalidCell.Error()})
	default:
		that.logger.Error("request failed", "path", r.URL.Path, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: http.StatusText(http.StatusInternalServerError)})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
