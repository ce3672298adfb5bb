package handlers

import (
	"net/http"

	"gamewatch-backend/application/services"
	"gamewatch-backend/domain/core/entities"
	"gamewatch-backend/pkg/common"
	apperrors "gamewatch-backend/pkg/errors"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// WatchlistHandler handles per-user watchlist requests.
type WatchlistHandler struct {
	watchlist *services.WatchlistService
	errs      *apperrors.ErrorHandler
	logger    *zap.Logger
}

// NewWatchlistHandler creates a new watchlist handler.
func NewWatchlistHandler(watchlist *services.WatchlistService, errs *apperrors.ErrorHandler, logger *zap.Logger) *WatchlistHandler {
	return &WatchlistHandler{watchlist: watchlist, errs: errs, logger: logger}
}

type addWatchlistRequest struct {
	GameID string `json:"game_id"`
	Status string `json:"status"`
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

type updatePlaytimeRequest struct {
	Playtime *float64 `json:"playtime"`
}

// Add handles POST /watchlist/{user_id}.
func (h *WatchlistHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req addWatchlistRequest
	if err := common.ParseJSONBody(r, &req, maxBodyBytes); err != nil {
		h.errs.Handle(w, r, apperrors.NewValidationError("invalid request body"))
		return
	}

	userID := chi.URLParam(r, "user_id")
	err := h.watchlist.Add(r.Context(), userID, req.GameID, entities.WatchStatus(req.Status))
	if err != nil {
		h.errs.Handle(w, r, err)
		return
	}

	common.RespondMessage(w, http.StatusCreated, "game added to watchlist", nil)
}

// List handles GET /watchlist/{user_id}.
func (h *WatchlistHandler) List(w http.ResponseWriter, r *http.Request) {
	entries, err := h.watchlist.List(r.Context(), chi.URLParam(r, "user_id"))
	if err != nil {
		h.errs.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"watchlist": entries,
	})
}

// Remove handles DELETE /watchlist/{user_id}/{game_id}.
func (h *WatchlistHandler) Remove(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "user_id")
	gameID := chi.URLParam(r, "game_id")
	if err := h.watchlist.Remove(r.Context(), userID, gameID); err != nil {
		h.errs.Handle(w, r, err)
		return
	}
	common.RespondMessage(w, http.StatusOK, "game removed from watchlist", nil)
}

// UpdateStatus handles PUT /watchlist/{user_id}/update-status/{game_id}.
func (h *WatchlistHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req updateStatusRequest
	if err := common.ParseJSONBody(r, &req, maxBodyBytes); err != nil {
		h.errs.Handle(w, r, apperrors.NewValidationError("invalid request body"))
		return
	}

	userID := chi.URLParam(r, "user_id")
	gameID := chi.URLParam(r, "game_id")
	entry, err := h.watchlist.UpdateStatus(r.Context(), userID, gameID, entities.WatchStatus(req.Status))
	if err != nil {
		h.errs.Handle(w, r, err)
		return
	}

	common.RespondMessage(w, http.StatusOK, "status updated", map[string]interface{}{
		"entry": entry,
	})
}

// UpdatePlaytime handles PATCH /watchlist/{user_id}/update/{game_id}.
func (h *WatchlistHandler) UpdatePlaytime(w http.ResponseWriter, r *http.Request) {
	var req updatePlaytimeRequest
	if err := common.ParseJSONBody(r, &req, maxBodyBytes); err != nil {
		h.errs.Handle(w, r, apperrors.NewValidationError("invalid request body"))
		return
	}
	if req.Playtime == nil {
		h.errs.Handle(w, r, apperrors.NewValidationError("playtime is required"))
		return
	}

	userID := chi.URLParam(r, "user_id")
	gameID := chi.URLParam(r, "game_id")
	playtime, err := h.watchlist.UpdatePlaytime(r.Context(), userID, gameID, *req.Playtime)
	if err != nil {
		h.errs.Handle(w, r, err)
		return
	}

	common.RespondMessage(w, http.StatusOK, "playtime updated", map[string]interface{}{
		"playtime": playtime,
	})
}
