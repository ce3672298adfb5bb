package services

import (
	"context"
	"testing"

	"gamewatch-backend/domain/core/entities"
	"gamewatch-backend/infrastructure/persistence/memory"
	apperrors "gamewatch-backend/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type watchlistFixture struct {
	games     *memory.GameRepository
	users     *memory.UserRepository
	watchlist *memory.WatchlistRepository
	service   *WatchlistService
}

func newWatchlistFixture(t *testing.T) *watchlistFixture {
	t.Helper()
	games := memory.NewGameRepository()
	users := memory.NewUserRepository()
	watchlist := memory.NewWatchlistRepository()
	return &watchlistFixture{
		games:     games,
		users:     users,
		watchlist: watchlist,
		service:   NewWatchlistService(watchlist, users, games, zap.NewNop()),
	}
}

func (f *watchlistFixture) seedUser(t *testing.T, userID string) {
	t.Helper()
	err := f.users.Create(context.Background(), &entities.User{
		UserID:   userID,
		Username: "user" + userID,
		Email:    "user" + userID + "@example.com",
	})
	require.NoError(t, err)
}

func TestAddUnknownUserIsNotFound(t *testing.T) {
	f := newWatchlistFixture(t)
	err := f.service.Add(context.Background(), "404", "1", entities.StatusPlanned)
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestAddRejectsInvalidStatus(t *testing.T) {
	f := newWatchlistFixture(t)
	f.seedUser(t, "1")
	err := f.service.Add(context.Background(), "1", "1", "playing")
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestAddTwiceIsConflict(t *testing.T) {
	f := newWatchlistFixture(t)
	ctx := context.Background()
	f.seedUser(t, "1")

	require.NoError(t, f.service.Add(ctx, "1", "1", entities.StatusPlanned))
	err := f.service.Add(ctx, "1", "1", entities.StatusPlaying)
	require.Error(t, err)
	assert.True(t, apperrors.IsConflict(err))
}

func TestAddStartsWithZeroPlaytime(t *testing.T) {
	f := newWatchlistFixture(t)
	ctx := context.Background()
	f.seedUser(t, "1")

	require.NoError(t, f.service.Add(ctx, "1", "1", entities.StatusPlaying))
	entries, err := f.watchlist.ListByUser(ctx, "1")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 0.0, entries[0].Playtime)
	assert.Equal(t, entities.StatusPlaying, entries[0].Status)
	assert.NotEmpty(t, entries[0].AddedAt)
}

func TestListEnrichesWithGameData(t *testing.T) {
	f := newWatchlistFixture(t)
	ctx := context.Background()
	f.seedUser(t, "1")
	seedGame(t, f.games, "1", "Foo")

	require.NoError(t, f.service.Add(ctx, "1", "1", entities.StatusPlanned))
	// Entry for a game that has since been deleted from the catalog.
	require.NoError(t, f.service.Add(ctx, "1", "2", entities.StatusPlanned))

	entries, err := f.service.List(ctx, "1")
	require.NoError(t, err)
	require.Len(t, entries, 2)

	byGame := map[string]*entities.Game{}
	for _, e := range entries {
		byGame[e.GameID] = e.GameData
	}
	require.NotNil(t, byGame["1"])
	assert.Equal(t, "Foo", byGame["1"].Title)
	assert.Nil(t, byGame["2"])
}

func TestListUnknownUserIsNotFound(t *testing.T) {
	f := newWatchlistFixture(t)
	_, err := f.service.List(context.Background(), "404")
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestRemoveAbsentEntryIsNoOp(t *testing.T) {
	f := newWatchlistFixture(t)
	f.seedUser(t, "1")
	require.NoError(t, f.service.Remove(context.Background(), "1", "999"))
}

func TestUpdateStatusMissingEntryIsNotFound(t *testing.T) {
	f := newWatchlistFixture(t)
	ctx := context.Background()
	f.seedUser(t, "1")
	seedGame(t, f.games, "1", "Foo")

	_, err := f.service.UpdateStatus(ctx, "1", "1", entities.StatusFinished)
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestUpdateStatusReturnsUpdatedEntry(t *testing.T) {
	f := newWatchlistFixture(t)
	ctx := context.Background()
	f.seedUser(t, "1")
	seedGame(t, f.games, "1", "Foo")
	require.NoError(t, f.service.Add(ctx, "1", "1", entities.StatusPlanned))

	entry, err := f.service.UpdateStatus(ctx, "1", "1", entities.StatusFinished)
	require.NoError(t, err)
	assert.Equal(t, entities.StatusFinished, entry.Status)
}

func TestUpdatePlaytimeRejectsNegative(t *testing.T) {
	f := newWatchlistFixture(t)
	_, err := f.service.UpdatePlaytime(context.Background(), "1", "1", -2)
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestUpdatePlaytimeSilentlyCreatesMissingRow(t *testing.T) {
	// No user or row check on playtime updates; the row is created with
	// only the playtime set.
	f := newWatchlistFixture(t)
	ctx := context.Background()

	playtime, err := f.service.UpdatePlaytime(ctx, "1", "1", 12.5)
	require.NoError(t, err)
	assert.Equal(t, 12.5, playtime)

	entries, err := f.watchlist.ListByUser(ctx, "1")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 12.5, entries[0].Playtime)
	assert.Empty(t, entries[0].Status)
}
