package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/imagify/community-service/internal/domain"
)

// CommunityStore реализует repository.MembershipStore в памяти.
// Каждая запись защищена собственным мьютексом: read-modify-write по одному
// id сериализуется, операции по разным id не конкурируют между собой.
type CommunityStore struct {
	mu    sync.RWMutex
	items map[string]*communityEntry
}

type communityEntry struct {
	mu        sync.Mutex
	deleted   bool
	community domain.Community
}

// NewCommunityStore создает новый экземпляр CommunityStore
func NewCommunityStore() *CommunityStore {
	return &CommunityStore{
		items: make(map[string]*communityEntry),
	}
}

// Insert сохраняет новое сообщество
func (s *CommunityStore) Insert(_ context.Context, community *domain.Community) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items[community.ID] = &communityEntry{community: *cloneCommunity(community)}
	return nil
}

// Get получает сообщество по ID
func (s *CommunityStore) Get(_ context.Context, id string) (*domain.Community, error) {
	s.mu.RLock()
	entry, ok := s.items[id]
	s.mu.RUnlock()

	if !ok {
		return nil, domain.ErrCommunityNotFound
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()
	if entry.deleted {
		return nil, domain.ErrCommunityNotFound
	}
	return cloneCommunity(&entry.community), nil
}

// GetAll возвращает снимок всех сообществ
func (s *CommunityStore) GetAll(ctx context.Context) ([]*domain.Community, error) {
	return s.snapshot(func(*domain.Community) bool { return true })
}

// GetByMember возвращает все сообщества, в состав которых входит пользователь
func (s *CommunityStore) GetByMember(_ context.Context, userID string) ([]*domain.Community, error) {
	return s.snapshot(func(c *domain.Community) bool { return c.HasMember(userID) })
}

// Update атомарно применяет mutate к записи сообщества.
// Мьютекс записи удерживается на все время mutate, поэтому конкурентные
// изменения состава участников не теряются.
func (s *CommunityStore) Update(_ context.Context, id string, mutate func(*domain.Community) error) (*domain.Community, error) {
	s.mu.RLock()
	entry, ok := s.items[id]
	s.mu.RUnlock()

	if !ok {
		return nil, domain.ErrCommunityNotFound
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()
	if entry.deleted {
		return nil, domain.ErrCommunityNotFound
	}

	updated := cloneCommunity(&entry.community)
	if err := mutate(updated); err != nil {
		return nil, err
	}

	entry.community = *updated
	return cloneCommunity(updated), nil
}

// Delete удаляет сообщество; возвращает true если запись существовала
func (s *CommunityStore) Delete(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.items[id]
	if !ok {
		return false, nil
	}

	// Помечаем запись удаленной, чтобы Update, уже получивший указатель
	// на нее, увидел отсутствие, а не записал в отцепленную копию
	entry.mu.Lock()
	entry.deleted = true
	entry.mu.Unlock()

	delete(s.items, id)
	return true, nil
}

// snapshot собирает копии всех записей, проходящих фильтр
func (s *CommunityStore) snapshot(keep func(*domain.Community) bool) ([]*domain.Community, error) {
	s.mu.RLock()
	entries := make([]*communityEntry, 0, len(s.items))
	for _, entry := range s.items {
		entries = append(entries, entry)
	}
	s.mu.RUnlock()

	var communities []*domain.Community
	for _, entry := range entries {
		entry.mu.Lock()
		if !entry.deleted && keep(&entry.community) {
			communities = append(communities, cloneCommunity(&entry.community))
		}
		entry.mu.Unlock()
	}

	sort.Slice(communities, func(i, j int) bool { return communities[i].ID < communities[j].ID })
	return communities, nil
}

// cloneCommunity копирует запись вместе с составом участников
func cloneCommunity(c *domain.Community) *domain.Community {
	out := *c
	out.Members = append([]string{}, c.Members...)
	return &out
}
