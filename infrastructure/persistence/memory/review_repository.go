package memory

import (
	"context"
	"sync"

	"gamewatch-backend/application/ports"
	"gamewatch-backend/domain/core/entities"
	apperrors "gamewatch-backend/pkg/errors"
)

type reviewKey struct {
	userID string
	gameID string
}

// ReviewRepository is a mutex-guarded in-memory ports.ReviewRepository.
type ReviewRepository struct {
	mu      sync.RWMutex
	reviews map[reviewKey]entities.Review
}

// NewReviewRepository creates an empty in-memory review store.
func NewReviewRepository() *ReviewRepository {
	return &ReviewRepository{reviews: make(map[reviewKey]entities.Review)}
}

func (r *ReviewRepository) Get(ctx context.Context, userID, gameID string) (*entities.Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	review, exists := r.reviews[reviewKey{userID: userID, gameID: gameID}]
	if !exists {
		return nil, apperrors.NewNotFoundError("review")
	}
	return &review, nil
}

func (r *ReviewRepository) Insert(ctx context.Context, review *entities.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reviews[reviewKey{userID: review.UserID, gameID: review.GameID}] = *review
	return nil
}

func (r *ReviewRepository) UpdateFields(ctx context.Context, review *entities.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := reviewKey{userID: review.UserID, gameID: review.GameID}
	stored, exists := r.reviews[key]
	if !exists {
		return apperrors.NewNotFoundError("review")
	}
	stored.Rating = review.Rating
	stored.Comment = review.Comment
	stored.Platform = review.Platform
	stored.PlaytimeHours = review.PlaytimeHours
	r.reviews[key] = stored
	return nil
}

func (r *ReviewRepository) Delete(ctx context.Context, userID, gameID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.reviews, reviewKey{userID: userID, gameID: gameID})
	return nil
}

func (r *ReviewRepository) ListByGame(ctx context.Context, gameID string) ([]entities.Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	reviews := make([]entities.Review, 0)
	for key, review := range r.reviews {
		if key.gameID == gameID {
			reviews = append(reviews, review)
		}
	}
	return reviews, nil
}

var _ ports.ReviewRepository = (*ReviewRepository)(nil)
