// Package memory provides in-memory repository implementations backing
// local development (STORE_BACKEND=memory) and the service tests. They
// reproduce the store's semantics: conditional inserts fail with
// Conflict, status updates on absent rows fail with NotFound, and
// playtime updates silently create rows.
package memory

import (
	"context"
	"strconv"
	"sync"

	"gamewatch-backend/application/ports"
	"gamewatch-backend/domain/core/entities"
	apperrors "gamewatch-backend/pkg/errors"
)

// GameRepository is a mutex-guarded in-memory ports.GameRepository.
type GameRepository struct {
	mu     sync.RWMutex
	games  map[string]entities.Game // keyed by game_id
	nextID int
}

// NewGameRepository creates an empty in-memory game store.
func NewGameRepository() *GameRepository {
	return &GameRepository{games: make(map[string]entities.Game)}
}

func (r *GameRepository) NextID(ctx context.Context) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	return strconv.Itoa(r.nextID), nil
}

func (r *GameRepository) Create(ctx context.Context, game *entities.Game) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.games[game.GameID]; exists {
		return apperrors.NewConflictError("a game with this id already exists")
	}
	r.games[game.GameID] = *game
	return nil
}

func (r *GameRepository) GetByID(ctx context.Context, gameID string) (*entities.Game, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	game, exists := r.games[gameID]
	if !exists {
		return nil, apperrors.NewNotFoundError("game")
	}
	return &game, nil
}

func (r *GameRepository) List(ctx context.Context) ([]entities.Game, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	games := make([]entities.Game, 0, len(r.games))
	for _, game := range r.games {
		games = append(games, game)
	}
	return games, nil
}

func (r *GameRepository) UpdateAttributes(ctx context.Context, game *entities.Game) (*entities.Game, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, exists := r.games[game.GameID]
	if !exists {
		return nil, apperrors.NewNotFoundError("game")
	}
	stored.Genre = game.Genre
	stored.Platforms = game.Platforms
	stored.ReleaseDate = game.ReleaseDate
	stored.ImageURL = game.ImageURL
	stored.Description = game.Description
	r.games[game.GameID] = stored
	return &stored, nil
}

func (r *GameRepository) Rename(ctx context.Context, oldTitle string, game *entities.Game) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.games[game.GameID] = *game
	return nil
}

func (r *GameRepository) Delete(ctx context.Context, gameID, title string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.games, gameID)
	return nil
}

func (r *GameRepository) UpdateStats(ctx context.Context, gameID, title string, reviewsCount int, averageRating float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, exists := r.games[gameID]
	if !exists {
		return apperrors.NewNotFoundError("game")
	}
	stored.ReviewsCount = reviewsCount
	stored.AverageRating = averageRating
	r.games[gameID] = stored
	return nil
}

var _ ports.GameRepository = (*GameRepository)(nil)
