package services

import (
	"context"
	"math"
	"time"

	"gamewatch-backend/application/ports"
	apperrors "gamewatch-backend/pkg/errors"
	"gamewatch-backend/pkg/observability"

	"go.uber.org/zap"
)

// StatsReconciler recomputes the derived reviews_count and average_rating
// attributes of a game from its review rows. The recomputation is a full
// read of the game_id index, so it is idempotent and safe to retry at any
// time. Writes are last-writer-wins: concurrent reconciliations for the
// same game may race and one result overwrites the other.
type StatsReconciler struct {
	games   ports.GameRepository
	reviews ports.ReviewRepository
	metrics *observability.Metrics
	logger  *zap.Logger
}

// NewStatsReconciler creates a stats reconciler.
func NewStatsReconciler(
	games ports.GameRepository,
	reviews ports.ReviewRepository,
	metrics *observability.Metrics,
	logger *zap.Logger,
) *StatsReconciler {
	return &StatsReconciler{
		games:   games,
		reviews: reviews,
		metrics: metrics,
		logger:  logger,
	}
}

// Reconcile recomputes and writes back the review stats for a game.
// A missing game row is logged and swallowed: reconciliation is a side
// effect of review writes and must not fail the primary operation.
func (s *StatsReconciler) Reconcile(ctx context.Context, gameID string) error {
	start := time.Now()

	reviews, err := s.reviews.ListByGame(ctx, gameID)
	if err != nil {
		return apperrors.Wrap(err, "failed to load reviews for reconciliation")
	}

	reviewsCount := len(reviews)
	averageRating := 0.0
	if reviewsCount > 0 {
		total := 0
		for _, r := range reviews {
			total += r.Rating
		}
		averageRating = math.Round(float64(total)/float64(reviewsCount)*10) / 10
	}

	game, err := s.games.GetByID(ctx, gameID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			s.logger.Warn("game not found during stats reconciliation",
				zap.String("gameID", gameID),
			)
			return nil
		}
		return apperrors.Wrap(err, "failed to load game for reconciliation")
	}

	if err := s.games.UpdateStats(ctx, game.GameID, game.Title, reviewsCount, averageRating); err != nil {
		return apperrors.Wrap(err, "failed to write game stats")
	}

	s.metrics.Timing("ReconcileDuration", time.Since(start))
	s.logger.Debug("game stats reconciled",
		zap.String("gameID", gameID),
		zap.Int("reviewsCount", reviewsCount),
		zap.Float64("averageRating", averageRating),
	)

	return nil
}
