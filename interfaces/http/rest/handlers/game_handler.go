// Package handlers contains the HTTP request handlers. Each handler
// decodes and validates its request body, delegates to an application
// service, and renders the response; error-to-status mapping is left to
// the shared ErrorHandler.
package handlers

import (
	"net/http"

	"gamewatch-backend/application/services"
	"gamewatch-backend/pkg/common"
	apperrors "gamewatch-backend/pkg/errors"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

// GameHandler handles game catalog requests.
type GameHandler struct {
	catalog *services.CatalogService
	errs    *apperrors.ErrorHandler
	logger  *zap.Logger
}

// NewGameHandler creates a new game handler.
func NewGameHandler(catalog *services.CatalogService, errs *apperrors.ErrorHandler, logger *zap.Logger) *GameHandler {
	return &GameHandler{catalog: catalog, errs: errs, logger: logger}
}

// Create handles POST /games/create.
func (h *GameHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input services.GameInput
	if err := common.ParseJSONBody(r, &input, maxBodyBytes); err != nil {
		h.errs.Handle(w, r, apperrors.NewValidationError("invalid request body"))
		return
	}

	gameID, err := h.catalog.Create(r.Context(), input)
	if err != nil {
		h.errs.Handle(w, r, err)
		return
	}

	h.logger.Info("game created", zap.String("gameID", gameID))
	common.RespondMessage(w, http.StatusCreated, "game created", map[string]interface{}{
		"game_id": gameID,
	})
}

// List handles GET /games.
func (h *GameHandler) List(w http.ResponseWriter, r *http.Request) {
	games, err := h.catalog.List(r.Context())
	if err != nil {
		h.errs.Handle(w, r, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, games)
}

// Get handles GET /games/{game_id}.
func (h *GameHandler) Get(w http.ResponseWriter, r *http.Request) {
	game, err := h.catalog.Get(r.Context(), chi.URLParam(r, "game_id"))
	if err != nil {
		h.errs.Handle(w, r, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, game)
}

// Update handles PUT /games/{game_id}.
func (h *GameHandler) Update(w http.ResponseWriter, r *http.Request) {
	var input services.GameInput
	if err := common.ParseJSONBody(r, &input, maxBodyBytes); err != nil {
		h.errs.Handle(w, r, apperrors.NewValidationError("invalid request body"))
		return
	}

	game, err := h.catalog.Update(r.Context(), chi.URLParam(r, "game_id"), input)
	if err != nil {
		h.errs.Handle(w, r, err)
		return
	}

	common.RespondMessage(w, http.StatusOK, "game updated", map[string]interface{}{
		"game": game,
	})
}

// Delete handles DELETE /games/{game_id}.
func (h *GameHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.catalog.Delete(r.Context(), chi.URLParam(r, "game_id")); err != nil {
		h.errs.Handle(w, r, err)
		return
	}
	common.RespondMessage(w, http.StatusOK, "game deleted", nil)
}
