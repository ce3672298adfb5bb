package services

import (
	"context"
	"testing"

	"gamewatch-backend/domain/core/entities"
	"gamewatch-backend/infrastructure/persistence/memory"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func seedGame(t *testing.T, games *memory.GameRepository, gameID, title string) {
	t.Helper()
	err := games.Create(context.Background(), &entities.Game{
		GameID:      gameID,
		Title:       title,
		Genre:       "RPG",
		Platforms:   []string{"PC"},
		ReleaseDate: "2024-01-01",
		ImageURL:    "http://x/img.png",
		Description: "d",
		CreatedAt:   "2024-01-01T00:00:00Z",
	})
	require.NoError(t, err)
}

func seedReview(t *testing.T, reviews *memory.ReviewRepository, userID, gameID string, rating int) {
	t.Helper()
	err := reviews.Insert(context.Background(), &entities.Review{
		UserID:   userID,
		GameID:   gameID,
		Rating:   rating,
		Comment:  "ok",
		Platform: "PC",
		PostedAt: "2024-02-01T00:00:00Z",
	})
	require.NoError(t, err)
}

func TestReconcileComputesCountAndRoundedMean(t *testing.T) {
	ctx := context.Background()
	games := memory.NewGameRepository()
	reviews := memory.NewReviewRepository()
	reconciler := NewStatsReconciler(games, reviews, nil, zap.NewNop())

	seedGame(t, games, "1", "Foo")
	seedReview(t, reviews, "1", "1", 4)

	require.NoError(t, reconciler.Reconcile(ctx, "1"))
	game, err := games.GetByID(ctx, "1")
	require.NoError(t, err)
	require.Equal(t, 1, game.ReviewsCount)
	require.Equal(t, 4.0, game.AverageRating)

	seedReview(t, reviews, "2", "1", 5)
	require.NoError(t, reconciler.Reconcile(ctx, "1"))
	game, err = games.GetByID(ctx, "1")
	require.NoError(t, err)
	require.Equal(t, 2, game.ReviewsCount)
	require.Equal(t, 4.5, game.AverageRating)

	require.NoError(t, reviews.Delete(ctx, "1", "1"))
	require.NoError(t, reconciler.Reconcile(ctx, "1"))
	game, err = games.GetByID(ctx, "1")
	require.NoError(t, err)
	require.Equal(t, 1, game.ReviewsCount)
	require.Equal(t, 5.0, game.AverageRating)
}

func TestReconcileRoundsToOneDecimal(t *testing.T) {
	ctx := context.Background()
	games := memory.NewGameRepository()
	reviews := memory.NewReviewRepository()
	reconciler := NewStatsReconciler(games, reviews, nil, zap.NewNop())

	seedGame(t, games, "1", "Foo")
	seedReview(t, reviews, "1", "1", 4)
	seedReview(t, reviews, "2", "1", 4)
	seedReview(t, reviews, "3", "1", 5)

	require.NoError(t, reconciler.Reconcile(ctx, "1"))
	game, err := games.GetByID(ctx, "1")
	require.NoError(t, err)
	// 13/3 = 4.333... rounds to 4.3
	require.Equal(t, 4.3, game.AverageRating)
}

func TestReconcileZeroReviewsResetsStats(t *testing.T) {
	ctx := context.Background()
	games := memory.NewGameRepository()
	reviews := memory.NewReviewRepository()
	reconciler := NewStatsReconciler(games, reviews, nil, zap.NewNop())

	seedGame(t, games, "1", "Foo")
	require.NoError(t, games.UpdateStats(ctx, "1", "Foo", 3, 4.2))

	require.NoError(t, reconciler.Reconcile(ctx, "1"))
	game, err := games.GetByID(ctx, "1")
	require.NoError(t, err)
	require.Equal(t, 0, game.ReviewsCount)
	require.Equal(t, 0.0, game.AverageRating)
}

func TestReconcileMissingGameIsSwallowed(t *testing.T) {
	reconciler := NewStatsReconciler(memory.NewGameRepository(), memory.NewReviewRepository(), nil, zap.NewNop())
	require.NoError(t, reconciler.Reconcile(context.Background(), "does-not-exist"))
}
