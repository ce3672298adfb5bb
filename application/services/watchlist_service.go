package services

import (
	"context"
	"fmt"
	"math"

	"gamewatch-backend/application/ports"
	"gamewatch-backend/domain/core/entities"
	apperrors "gamewatch-backend/pkg/errors"
	"gamewatch-backend/pkg/utils"

	"go.uber.org/zap"
)

// EnrichedWatchlistEntry is a watchlist row joined with its current game
// record. GameData is null when the game has been deleted from the catalog.
type EnrichedWatchlistEntry struct {
	entities.WatchlistEntry
	GameData *entities.Game `json:"game_data"`
}

// WatchlistService implements the watchlist workflow over the Watchlist
// table, validating referenced users and games where the legacy API does.
type WatchlistService struct {
	watchlist ports.WatchlistRepository
	users     ports.UserRepository
	games     ports.GameRepository
	logger    *zap.Logger
}

// NewWatchlistService creates a watchlist service.
func NewWatchlistService(
	watchlist ports.WatchlistRepository,
	users ports.UserRepository,
	games ports.GameRepository,
	logger *zap.Logger,
) *WatchlistService {
	return &WatchlistService{
		watchlist: watchlist,
		users:     users,
		games:     games,
		logger:    logger,
	}
}

// Add tracks a game for a user. The user must exist; the (user, game) pair
// must not already have a row. Playtime starts at zero.
func (s *WatchlistService) Add(ctx context.Context, userID, gameID string, status entities.WatchStatus) error {
	if err := s.requireUser(ctx, userID); err != nil {
		return err
	}
	if gameID == "" {
		return apperrors.NewValidationError("game_id is required")
	}
	if !status.Valid() {
		return apperrors.NewValidationError(statusErrorMessage())
	}

	entry := &entities.WatchlistEntry{
		UserID:   userID,
		GameID:   gameID,
		Status:   status,
		Playtime: 0,
		AddedAt:  utils.NowRFC3339(),
	}
	if err := s.watchlist.Add(ctx, entry); err != nil {
		return apperrors.Wrap(err, "failed to add watchlist entry")
	}
	return nil
}

// List returns the user's watchlist, each entry enriched with the current
// game record via a per-row lookup. A batch read would change error
// behavior for partially deleted games, so the per-row lookup stays.
func (s *WatchlistService) List(ctx context.Context, userID string) ([]EnrichedWatchlistEntry, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}

	entries, err := s.watchlist.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list watchlist")
	}

	enriched := make([]EnrichedWatchlistEntry, 0, len(entries))
	for _, entry := range entries {
		game, err := s.games.GetByID(ctx, entry.GameID)
		if err != nil {
			if !apperrors.IsNotFound(err) {
				return nil, apperrors.Wrap(err, "failed to load game for watchlist entry")
			}
			game = nil
		}
		enriched = append(enriched, EnrichedWatchlistEntry{WatchlistEntry: entry, GameData: game})
	}
	return enriched, nil
}

// Remove deletes a watchlist row unconditionally; removing an absent row
// is a silent no-op.
func (s *WatchlistService) Remove(ctx context.Context, userID, gameID string) error {
	if err := s.requireUser(ctx, userID); err != nil {
		return err
	}
	if err := s.watchlist.Remove(ctx, userID, gameID); err != nil {
		return apperrors.Wrap(err, "failed to remove watchlist entry")
	}
	return nil
}

// UpdateStatus changes the play status of a tracked game. Both the user and
// the game must exist, and the pair must already have a row; the
// update-if-exists condition surfaces as NotFound rather than silently
// creating a malformed row.
func (s *WatchlistService) UpdateStatus(ctx context.Context, userID, gameID string, status entities.WatchStatus) (*entities.WatchlistEntry, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	if _, err := s.games.GetByID(ctx, gameID); err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.NewNotFoundError("game")
		}
		return nil, apperrors.Wrap(err, "failed to look up game")
	}
	if !status.Valid() {
		return nil, apperrors.NewValidationError(statusErrorMessage())
	}

	entry, err := s.watchlist.UpdateStatus(ctx, userID, gameID, status)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to update watchlist status")
	}
	return entry, nil
}

// UpdatePlaytime sets the hours played on a watchlist row. There is no
// existence check: updating a missing row creates one with only playtime
// set, a gap the legacy API also has.
func (s *WatchlistService) UpdatePlaytime(ctx context.Context, userID, gameID string, playtime float64) (float64, error) {
	if math.IsNaN(playtime) || playtime < 0 {
		return 0, apperrors.NewValidationError("playtime must be a non-negative number")
	}

	stored, err := s.watchlist.UpdatePlaytime(ctx, userID, gameID, playtime)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to update playtime")
	}
	return stored, nil
}

func (s *WatchlistService) requireUser(ctx context.Context, userID string) error {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		if apperrors.IsNotFound(err) {
			return apperrors.NewNotFoundError("user")
		}
		return apperrors.Wrap(err, "failed to look up user")
	}
	return nil
}

func statusErrorMessage() string {
	return fmt.Sprintf("status must be one of: '%s', '%s', '%s'",
		entities.StatusPlanned, entities.StatusPlaying, entities.StatusFinished)
}
