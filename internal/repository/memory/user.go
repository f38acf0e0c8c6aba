package memory

import (
	"context"
	"sync"

	"github.com/imagify/community-service/internal/domain"
)

// UserDirectory реализует repository.UserDirectory в памяти
type UserDirectory struct {
	mu      sync.RWMutex
	byID    map[string]domain.User
	byEmail map[string]string
}

// NewUserDirectory создает новый экземпляр UserDirectory
func NewUserDirectory() *UserDirectory {
	return &UserDirectory{
		byID:    make(map[string]domain.User),
		byEmail: make(map[string]string),
	}
}

// Create создает новую учетную запись
func (r *UserDirectory) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byEmail[user.Email]; ok {
		return domain.ErrEmailTaken
	}

	r.byID[user.ID] = *user
	r.byEmail[user.Email] = user.ID
	return nil
}

// GetByEmail получает пользователя по email
func (r *UserDirectory) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	user := r.byID[id]
	return &user, nil
}

// GetByID получает пользователя по внутреннему ID
func (r *UserDirectory) GetByID(_ context.Context, userID string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.byID[userID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &user, nil
}
