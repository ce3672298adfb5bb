package memory

import (
	"context"
	"sync"

	"gamewatch-backend/application/ports"
	"gamewatch-backend/domain/core/entities"
	apperrors "gamewatch-backend/pkg/errors"
)

type watchKey struct {
	userID string
	gameID string
}

// WatchlistRepository is a mutex-guarded in-memory ports.WatchlistRepository.
type WatchlistRepository struct {
	mu      sync.RWMutex
	entries map[watchKey]entities.WatchlistEntry
}

// NewWatchlistRepository creates an empty in-memory watchlist store.
func NewWatchlistRepository() *WatchlistRepository {
	return &WatchlistRepository{entries: make(map[watchKey]entities.WatchlistEntry)}
}

func (r *WatchlistRepository) Add(ctx context.Context, entry *entities.WatchlistEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := watchKey{userID: entry.UserID, gameID: entry.GameID}
	if _, exists := r.entries[key]; exists {
		return apperrors.NewConflictError("game is already on the watchlist")
	}
	r.entries[key] = *entry
	return nil
}

func (r *WatchlistRepository) ListByUser(ctx context.Context, userID string) ([]entities.WatchlistEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entries := make([]entities.WatchlistEntry, 0)
	for key, entry := range r.entries {
		if key.userID == userID {
			entries = append(entries, entry)
		}
	}
	return entries, nil
}

func (r *WatchlistRepository) Remove(ctx context.Context, userID, gameID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, watchKey{userID: userID, gameID: gameID})
	return nil
}

func (r *WatchlistRepository) UpdateStatus(ctx context.Context, userID, gameID string, status entities.WatchStatus) (*entities.WatchlistEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := watchKey{userID: userID, gameID: gameID}
	entry, exists := r.entries[key]
	if !exists {
		return nil, apperrors.NewNotFoundError("watchlist entry")
	}
	entry.Status = status
	r.entries[key] = entry
	return &entry, nil
}

// UpdatePlaytime creates the row when it is absent, matching the store's
// unconditional update semantics.
func (r *WatchlistRepository) UpdatePlaytime(ctx context.Context, userID, gameID string, playtime float64) (float64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := watchKey{userID: userID, gameID: gameID}
	entry, exists := r.entries[key]
	if !exists {
		entry = entities.WatchlistEntry{UserID: userID, GameID: gameID}
	}
	entry.Playtime = playtime
	r.entries[key] = entry
	return entry.Playtime, nil
}

var _ ports.WatchlistRepository = (*WatchlistRepository)(nil)
