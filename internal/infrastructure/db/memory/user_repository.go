// Package memory provides process-local, concurrency-safe implementations of
// the repository ports. Data does not survive a restart.
package memory

import (
	"context"
	"sync"

	"github.com/storemanager/store-api/internal/core/domain"
)

type UserRepository struct {
	mu    sync.RWMutex
	users map[string]domain.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[string]domain.User)}
}

func (r *UserRepository) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.users[user.Email]; exists {
		return nil, domain.ErrUserExists
	}
	r.users[user.Email] = *user
	clone := *user
	return &clone, nil
}

func (r *UserRepository) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &u, nil
}
