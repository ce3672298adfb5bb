package memory

import (
	"context"
	"strconv"
	"sync"

	"gamewatch-backend/application/ports"
	"gamewatch-backend/domain/core/entities"
	apperrors "gamewatch-backend/pkg/errors"
)

// UserRepository is a mutex-guarded in-memory ports.UserRepository.
type UserRepository struct {
	mu     sync.RWMutex
	users  map[string]entities.User // keyed by user_id
	nextID int
}

// NewUserRepository creates an empty in-memory user store.
func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[string]entities.User)}
}

func (r *UserRepository) NextID(ctx context.Context) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	return strconv.Itoa(r.nextID), nil
}

func (r *UserRepository) Create(ctx context.Context, user *entities.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.users[user.UserID]; exists {
		return apperrors.NewConflictError("a user with this id already exists")
	}
	r.users[user.UserID] = *user
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, userID string) (*entities.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, exists := r.users[userID]
	if !exists {
		return nil, apperrors.NewNotFoundError("user")
	}
	return &user, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, user := range r.users {
		if user.Email == email {
			u := user
			return &u, nil
		}
	}
	return nil, apperrors.NewNotFoundError("user")
}

var _ ports.UserRepository = (*UserRepository)(nil)
