package services

import (
	"context"
	"testing"

	"gamewatch-backend/infrastructure/persistence/memory"
	apperrors "gamewatch-backend/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func validGame() GameInput {
	return GameInput{
		Title:       "Foo",
		Genre:       "RPG",
		Platforms:   []string{"PC"},
		ReleaseDate: "2024-01-01",
		ImageURL:    "http://x/img.png",
		Description: "d",
	}
}

func newCatalogFixture(t *testing.T) (*memory.GameRepository, *CatalogService) {
	t.Helper()
	games := memory.NewGameRepository()
	return games, NewCatalogService(games, zap.NewNop())
}

func TestCreateAssignsMonotonicIDs(t *testing.T) {
	_, catalog := newCatalogFixture(t)
	ctx := context.Background()

	first, err := catalog.Create(ctx, validGame())
	require.NoError(t, err)
	assert.Equal(t, "1", first)

	second := validGame()
	second.Title = "Bar"
	id, err := catalog.Create(ctx, second)
	require.NoError(t, err)
	assert.Equal(t, "2", id)
}

func TestCreateInitializesDerivedStats(t *testing.T) {
	games, catalog := newCatalogFixture(t)
	ctx := context.Background()

	id, err := catalog.Create(ctx, validGame())
	require.NoError(t, err)

	game, err := games.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 0, game.ReviewsCount)
	assert.Equal(t, 0.0, game.AverageRating)
	assert.NotEmpty(t, game.CreatedAt)
}

func TestCreateRejectsMissingFields(t *testing.T) {
	_, catalog := newCatalogFixture(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*GameInput)
	}{
		{"missing title", func(in *GameInput) { in.Title = "" }},
		{"missing genre", func(in *GameInput) { in.Genre = "" }},
		{"empty platforms", func(in *GameInput) { in.Platforms = nil }},
		{"missing release date", func(in *GameInput) { in.ReleaseDate = "" }},
		{"missing image url", func(in *GameInput) { in.ImageURL = "" }},
		{"missing description", func(in *GameInput) { in.Description = "" }},
		{"unknown platform", func(in *GameInput) { in.Platforms = []string{"Amiga"} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validGame()
			tt.mutate(&input)
			_, err := catalog.Create(ctx, input)
			require.Error(t, err)
			assert.True(t, apperrors.IsValidation(err))
		})
	}
}

func TestGetUnknownGameIsNotFound(t *testing.T) {
	_, catalog := newCatalogFixture(t)
	_, err := catalog.Get(context.Background(), "404")
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestUpdateSameTitleKeepsRowInPlace(t *testing.T) {
	games, catalog := newCatalogFixture(t)
	ctx := context.Background()

	id, err := catalog.Create(ctx, validGame())
	require.NoError(t, err)
	created, err := games.GetByID(ctx, id)
	require.NoError(t, err)

	input := validGame()
	input.Genre = "Strategy"
	updated, err := catalog.Update(ctx, id, input)
	require.NoError(t, err)
	assert.Equal(t, "Strategy", updated.Genre)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
}

func TestUpdateChangedTitlePreservesDerivedFields(t *testing.T) {
	games, catalog := newCatalogFixture(t)
	ctx := context.Background()

	id, err := catalog.Create(ctx, validGame())
	require.NoError(t, err)
	created, err := games.GetByID(ctx, id)
	require.NoError(t, err)
	require.NoError(t, games.UpdateStats(ctx, id, "Foo", 2, 4.5))

	input := validGame()
	input.Title = "Foo Remastered"
	updated, err := catalog.Update(ctx, id, input)
	require.NoError(t, err)

	assert.Equal(t, "Foo Remastered", updated.Title)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.Equal(t, 2, updated.ReviewsCount)
	assert.Equal(t, 4.5, updated.AverageRating)

	stored, err := games.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Foo Remastered", stored.Title)
	assert.Equal(t, 2, stored.ReviewsCount)
	assert.Equal(t, 4.5, stored.AverageRating)
}

func TestUpdateUnknownGameIsNotFound(t *testing.T) {
	_, catalog := newCatalogFixture(t)
	_, err := catalog.Update(context.Background(), "404", validGame())
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestDeleteRemovesGame(t *testing.T) {
	games, catalog := newCatalogFixture(t)
	ctx := context.Background()

	id, err := catalog.Create(ctx, validGame())
	require.NoError(t, err)
	require.NoError(t, catalog.Delete(ctx, id))

	_, err = games.GetByID(ctx, id)
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestDeleteUnknownGameIsNotFound(t *testing.T) {
	_, catalog := newCatalogFixture(t)
	err := catalog.Delete(context.Background(), "404")
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}
