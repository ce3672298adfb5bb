package handlers

import (
	"net/http"

	"gamewatch-backend/application/services"
	"gamewatch-backend/pkg/common"
	apperrors "gamewatch-backend/pkg/errors"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ReviewHandler handles review upserts, listings and deletions.
type ReviewHandler struct {
	reviews *services.ReviewService
	errs    *apperrors.ErrorHandler
	logger  *zap.Logger
}

// NewReviewHandler creates a new review handler.
func NewReviewHandler(reviews *services.ReviewService, errs *apperrors.ErrorHandler, logger *zap.Logger) *ReviewHandler {
	return &ReviewHandler{reviews: reviews, errs: errs, logger: logger}
}

type upsertReviewRequest struct {
	Rating        float64 `json:"rating"`
	Comment       string  `json:"comment"`
	Platform      string  `json:"platform"`
	PlaytimeHours float64 `json:"playtime_hours"`
}

// Upsert handles POST /review/{user_id}/review/{game_id}. Creating and
// editing a review share this one endpoint.
func (h *ReviewHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	var req upsertReviewRequest
	if err := common.ParseJSONBody(r, &req, maxBodyBytes); err != nil {
		h.errs.Handle(w, r, apperrors.NewValidationError("invalid request body"))
		return
	}

	userID := chi.URLParam(r, "user_id")
	gameID := chi.URLParam(r, "game_id")
	err := h.reviews.Upsert(r.Context(), userID, gameID, services.UpsertReviewInput{
		Rating:        req.Rating,
		Comment:       req.Comment,
		Platform:      req.Platform,
		PlaytimeHours: req.PlaytimeHours,
	})
	if err != nil {
		h.errs.Handle(w, r, err)
		return
	}

	common.RespondMessage(w, http.StatusOK, "review saved", nil)
}

// ListByGame handles GET /review/{game_id}.
func (h *ReviewHandler) ListByGame(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.reviews.ListByGame(r.Context(), chi.URLParam(r, "game_id"))
	if err != nil {
		h.errs.Handle(w, r, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, reviews)
}

// Delete handles DELETE /review/{user_id}/review/{game_id}.
func (h *ReviewHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "user_id")
	gameID := chi.URLParam(r, "game_id")
	if err := h.reviews.Delete(r.Context(), userID, gameID); err != nil {
		h.errs.Handle(w, r, err)
		return
	}
	common.RespondMessage(w, http.StatusOK, "review deleted", nil)
}
