package repository

import (
	"context"

	"github.com/imagify/community-service/internal/domain"
)

// UserDirectory определяет методы для работы с каталогом пользователей.
// Каталог ничего не знает о членстве в сообществах.
type UserDirectory interface {
	// Create создает новую учетную запись
	Create(ctx context.Context, user *domain.User) error

	// GetByEmail получает пользователя по email (стабильный subject токена)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// GetByID получает пользователя по внутреннему ID
	GetByID(ctx context.Context, userID string) (*domain.User, error)
}

// MembershipStore определяет методы для работы с записями сообществ.
// Update — атомарный read-modify-write по одному ключу: два конкурентных
// вызова по одному id сериализуются, вызовы по разным id не конкурируют.
type MembershipStore interface {
	// Insert сохраняет новое сообщество; запись видна читателям сразу после коммита
	Insert(ctx context.Context, community *domain.Community) error

	// Get получает сообщество по ID; возвращает domain.ErrCommunityNotFound если его нет
	Get(ctx context.Context, id string) (*domain.Community, error)

	// GetAll возвращает снимок всех сообществ
	GetAll(ctx context.Context) ([]*domain.Community, error)

	// GetByMember возвращает все сообщества, в состав которых входит пользователь
	GetByMember(ctx context.Context, userID string) ([]*domain.Community, error)

	// Update атомарно применяет mutate к сообществу и сохраняет результат.
	// Возвращает domain.ErrCommunityNotFound если сообщества нет.
	Update(ctx context.Context, id string, mutate func(*domain.Community) error) (*domain.Community, error)

	// Delete удаляет сообщество; возвращает true если запись существовала
	Delete(ctx context.Context, id string) (bool, error)
}
