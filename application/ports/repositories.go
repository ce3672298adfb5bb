// Package ports defines the repository interfaces the application layer
// depends on. DynamoDB implementations live in
// infrastructure/persistence/dynamodb; in-memory implementations used by
// tests and local development live in infrastructure/persistence/memory.
package ports

import (
	"context"

	"gamewatch-backend/domain/core/entities"
)

// GameRepository persists catalog entries in the Games table, keyed by
// (game_id, title). Implementations return pkg/errors values: NotFound when
// a game is absent, Conflict on duplicate conditional inserts, Database for
// store failures.
type GameRepository interface {
	// NextID returns the next monotonically increasing game id as a
	// string of an integer ("1", "2", ...).
	NextID(ctx context.Context) (string, error)

	// Create inserts a new game; fails with Conflict if the id exists.
	Create(ctx context.Context, game *entities.Game) error

	// GetByID looks a game up by its partition key alone.
	GetByID(ctx context.Context, gameID string) (*entities.Game, error)

	// List returns every game, unfiltered.
	List(ctx context.Context) ([]entities.Game, error)

	// UpdateAttributes rewrites the mutable attributes of a game in place.
	// Only valid while the title (sort key) is unchanged.
	UpdateAttributes(ctx context.Context, game *entities.Game) (*entities.Game, error)

	// Rename moves a game to a new (game_id, title) composite key in a
	// single transactional delete+put, carrying all attributes over.
	Rename(ctx context.Context, oldTitle string, game *entities.Game) error

	// Delete removes the row under its full composite key.
	Delete(ctx context.Context, gameID, title string) error

	// UpdateStats overwrites the derived reviews_count and average_rating
	// attributes. Last writer wins; there is no optimistic concurrency.
	UpdateStats(ctx context.Context, gameID, title string, reviewsCount int, averageRating float64) error
}

// UserRepository persists accounts in the Users table, keyed by user_id.
type UserRepository interface {
	NextID(ctx context.Context) (string, error)

	// Create inserts a new user; fails with Conflict if the id exists.
	Create(ctx context.Context, user *entities.User) error

	GetByID(ctx context.Context, userID string) (*entities.User, error)

	// FindByEmail scans for a user by email address. Returns NotFound
	// when no account matches.
	FindByEmail(ctx context.Context, email string) (*entities.User, error)
}

// WatchlistRepository persists tracked games in the Watchlist table, keyed
// by (user_id, game_id).
type WatchlistRepository interface {
	// Add conditionally inserts an entry; fails with Conflict if the
	// (user, game) pair already has a row.
	Add(ctx context.Context, entry *entities.WatchlistEntry) error

	ListByUser(ctx context.Context, userID string) ([]entities.WatchlistEntry, error)

	// Remove deletes unconditionally; removing an absent row is a no-op.
	Remove(ctx context.Context, userID, gameID string) error

	// UpdateStatus sets the status on an existing row and returns it.
	// Fails with NotFound when the pair has no row.
	UpdateStatus(ctx context.Context, userID, gameID string, status entities.WatchStatus) (*entities.WatchlistEntry, error)

	// UpdatePlaytime sets the playtime attribute without an existence
	// check; a missing row is silently created with only playtime set.
	// Returns the stored playtime.
	UpdatePlaytime(ctx context.Context, userID, gameID string, playtime float64) (float64, error)
}

// ReviewRepository persists reviews in the Reviews table, keyed by
// (user_id, game_id), with a secondary index on game_id for per-game reads.
type ReviewRepository interface {
	// Get returns the review for a (user, game) pair, or NotFound.
	Get(ctx context.Context, userID, gameID string) (*entities.Review, error)

	// Insert writes a new review row.
	Insert(ctx context.Context, review *entities.Review) error

	// UpdateFields rewrites rating, comment, platform and playtime_hours
	// on an existing row, leaving posted_at untouched.
	UpdateFields(ctx context.Context, review *entities.Review) error

	// Delete removes unconditionally; deleting an absent row is a no-op.
	Delete(ctx context.Context, userID, gameID string) error

	// ListByGame returns every review for a game via the game_id index.
	ListByGame(ctx context.Context, gameID string) ([]entities.Review, error)
}
