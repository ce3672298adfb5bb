package services

import (
	"context"
	"fmt"
	"math"
	"strings"

	"gamewatch-backend/application/ports"
	"gamewatch-backend/domain/core/entities"
	apperrors "gamewatch-backend/pkg/errors"
	"gamewatch-backend/pkg/observability"
	"gamewatch-backend/pkg/utils"

	"go.uber.org/zap"
)

// UpsertReviewInput carries the mutable fields of a review. Rating arrives
// as a float so that non-integer values can be rejected with a validation
// error instead of being truncated by JSON decoding.
type UpsertReviewInput struct {
	Rating        float64 `json:"rating"`
	Comment       string  `json:"comment"`
	Platform      string  `json:"platform"`
	PlaytimeHours float64 `json:"playtime_hours"`
}

// ReviewService implements the review workflow: upsert and delete, both
// followed by a best-effort stats reconciliation, and per-game listing
// decorated with resolved usernames.
type ReviewService struct {
	reviews    ports.ReviewRepository
	users      ports.UserRepository
	reconciler *StatsReconciler
	metrics    *observability.Metrics
	logger     *zap.Logger
}

// NewReviewService creates a review service.
func NewReviewService(
	reviews ports.ReviewRepository,
	users ports.UserRepository,
	reconciler *StatsReconciler,
	metrics *observability.Metrics,
	logger *zap.Logger,
) *ReviewService {
	return &ReviewService{
		reviews:    reviews,
		users:      users,
		reconciler: reconciler,
		metrics:    metrics,
		logger:     logger,
	}
}

// Upsert inserts or updates the review for a (user, game) pair. An existing
// row keeps its posted_at; a new row is stamped with the current time.
// Stats reconciliation runs synchronously afterwards, but its failure never
// fails the upsert.
func (s *ReviewService) Upsert(ctx context.Context, userID, gameID string, input UpsertReviewInput) error {
	if !entities.ValidRating(input.Rating) {
		return apperrors.NewValidationError("rating must be an integer between 1 and 5")
	}
	if !entities.ValidComment(input.Comment) {
		return apperrors.NewValidationError("comment must not be empty")
	}
	if !entities.ValidReviewPlatform(input.Platform) {
		return apperrors.NewValidationError(fmt.Sprintf("platform must be one of: %s", strings.Join(entities.ReviewPlatforms, ", ")))
	}
	if math.IsNaN(input.PlaytimeHours) || input.PlaytimeHours < 0 {
		return apperrors.NewValidationError("playtime_hours must be a non-negative number")
	}

	review := &entities.Review{
		UserID:        userID,
		GameID:        gameID,
		Rating:        int(input.Rating),
		Comment:       input.Comment,
		Platform:      input.Platform,
		PlaytimeHours: input.PlaytimeHours,
	}

	existing, err := s.reviews.Get(ctx, userID, gameID)
	switch {
	case err == nil:
		review.PostedAt = existing.PostedAt
		if err := s.reviews.UpdateFields(ctx, review); err != nil {
			return apperrors.Wrap(err, "failed to update review")
		}
	case apperrors.IsNotFound(err):
		review.PostedAt = utils.NowRFC3339()
		if err := s.reviews.Insert(ctx, review); err != nil {
			return apperrors.Wrap(err, "failed to insert review")
		}
	default:
		return apperrors.Wrap(err, "failed to look up review")
	}

	s.metrics.Count("ReviewUpserts", 1)
	s.reconcile(ctx, gameID)
	return nil
}

// ListByGame returns every review for a game, each decorated with the
// reviewer's display name. Listing a game with zero reviews is a NotFound;
// clients depend on that status.
func (s *ReviewService) ListByGame(ctx context.Context, gameID string) ([]entities.Review, error) {
	reviews, err := s.reviews.ListByGame(ctx, gameID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list reviews")
	}
	if len(reviews) == 0 {
		return nil, apperrors.NewNotFoundError("reviews for this game")
	}

	for i := range reviews {
		if reviews[i].Username == "" {
			reviews[i].Username = s.resolveUsername(ctx, reviews[i].UserID)
		}
	}
	return reviews, nil
}

// Delete removes a review unconditionally; deleting an absent review is a
// silent no-op. Stats are reconciled afterwards either way.
func (s *ReviewService) Delete(ctx context.Context, userID, gameID string) error {
	if userID == "" || gameID == "" {
		return apperrors.NewValidationError("user_id and game_id are required")
	}

	if err := s.reviews.Delete(ctx, userID, gameID); err != nil {
		return apperrors.Wrap(err, "failed to delete review")
	}

	s.metrics.Count("ReviewDeletes", 1)
	s.reconcile(ctx, gameID)
	return nil
}

// reconcile runs the stats reconciler and swallows any error: the caller's
// primary operation has already succeeded.
func (s *ReviewService) reconcile(ctx context.Context, gameID string) {
	if err := s.reconciler.Reconcile(ctx, gameID); err != nil {
		s.logger.Error("stats reconciliation failed",
			zap.String("gameID", gameID),
			zap.Error(err),
		)
	}
}

// resolveUsername looks up a reviewer's display name, falling back to a
// generated placeholder when the lookup fails.
func (s *ReviewService) resolveUsername(ctx context.Context, userID string) string {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil || user.Username == "" {
		return fmt.Sprintf("User_%s", userID)
	}
	return user.Username
}
