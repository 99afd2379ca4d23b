package memory

import (
	"context"
	"sync"

	"github.com/bizsites/website-builder/internal/core/domain"
)

type AuthRepository struct {
	mu     sync.Mutex
	nextID int64
	users  map[string]domain.User
}

func NewAuthRepository() *AuthRepository {
	return &AuthRepository{nextID: 1, users: make(map[string]domain.User)}
}

func (r *AuthRepository) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.users[user.Username]; exists {
		return nil, domain.ErrUserExists
	}
	u := *user
	u.ID = r.nextID
	r.nextID++
	r.users[u.Username] = u
	return &u, nil
}

func (r *AuthRepository) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &u, nil
}
