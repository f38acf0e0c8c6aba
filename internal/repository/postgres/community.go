package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/imagify/community-service/internal/domain"
)

// CommunityStore реализует repository.MembershipStore для PostgreSQL
type CommunityStore struct {
	db *pgxpool.Pool
}

// NewCommunityStore создает новый экземпляр CommunityStore
func NewCommunityStore(db *pgxpool.Pool) *CommunityStore {
	return &CommunityStore{db: db}
}

// Insert сохраняет новое сообщество вместе с начальным составом участников
func (s *CommunityStore) Insert(ctx context.Context, community *domain.Community) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx) // Ignore error as it will fail if transaction was committed
	}()

	query := `
		INSERT INTO communities (id, name, description, created_by)
		VALUES ($1, $2, $3, $4)
	`

	_, err = tx.Exec(ctx, query, community.ID, community.Name, community.Description, community.CreatedBy)
	if err != nil {
		return err
	}

	memberQuery := `
		INSERT INTO community_members (community_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (community_id, user_id) DO NOTHING
	`
	for _, memberID := range community.Members {
		if _, err := tx.Exec(ctx, memberQuery, community.ID, memberID); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// Get получает сообщество по ID вместе с составом участников
func (s *CommunityStore) Get(ctx context.Context, id string) (*domain.Community, error) {
	query := `
		SELECT id, name, description, created_by
		FROM communities
		WHERE id = $1
	`

	var community domain.Community
	err := s.db.QueryRow(ctx, query, id).Scan(
		&community.ID,
		&community.Name,
		&community.Description,
		&community.CreatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCommunityNotFound
		}
		return nil, err
	}

	members, err := s.loadMembers(ctx, []string{id})
	if err != nil {
		return nil, err
	}
	community.Members = members[id]

	return &community, nil
}

// GetAll возвращает снимок всех сообществ
func (s *CommunityStore) GetAll(ctx context.Context) ([]*domain.Community, error) {
	query := `
		SELECT id, name, description, created_by
		FROM communities
		ORDER BY id
	`
	return s.queryCommunities(ctx, query)
}

// GetByMember возвращает все сообщества, в состав которых входит пользователь
func (s *CommunityStore) GetByMember(ctx context.Context, userID string) ([]*domain.Community, error) {
	query := `
		SELECT c.id, c.name, c.description, c.created_by
		FROM communities c
		JOIN community_members m ON m.community_id = c.id
		WHERE m.user_id = $1
		ORDER BY c.id
	`
	return s.queryCommunities(ctx, query, userID)
}

// Update атомарно применяет mutate к записи сообщества.
// Строка сообщества блокируется через SELECT ... FOR UPDATE, поэтому
// конкурентные изменения одного id сериализуются, а разных id — независимы.
func (s *CommunityStore) Update(ctx context.Context, id string, mutate func(*domain.Community) error) (*domain.Community, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	query := `
		SELECT id, name, description, created_by
		FROM communities
		WHERE id = $1
		FOR UPDATE
	`

	var community domain.Community
	err = tx.QueryRow(ctx, query, id).Scan(
		&community.ID,
		&community.Name,
		&community.Description,
		&community.CreatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCommunityNotFound
		}
		return nil, err
	}

	memberRows, err := tx.Query(ctx, `SELECT user_id FROM community_members WHERE community_id = $1`, id)
	if err != nil {
		return nil, err
	}
	before := make(map[string]bool)
	for memberRows.Next() {
		var memberID string
		if err := memberRows.Scan(&memberID); err != nil {
			memberRows.Close()
			return nil, err
		}
		before[memberID] = true
		community.Members = append(community.Members, memberID)
	}
	memberRows.Close()
	if err := memberRows.Err(); err != nil {
		return nil, err
	}

	if err := mutate(&community); err != nil {
		return nil, err
	}

	updateQuery := `
		UPDATE communities
		SET name = $1, description = $2, updated_at = NOW()
		WHERE id = $3
	`
	if _, err := tx.Exec(ctx, updateQuery, community.Name, community.Description, id); err != nil {
		return nil, err
	}

	// Приводим таблицу участников к новому составу
	after := make(map[string]bool, len(community.Members))
	for _, memberID := range community.Members {
		after[memberID] = true
		if !before[memberID] {
			insertQuery := `
				INSERT INTO community_members (community_id, user_id)
				VALUES ($1, $2)
				ON CONFLICT (community_id, user_id) DO NOTHING
			`
			if _, err := tx.Exec(ctx, insertQuery, id, memberID); err != nil {
				return nil, err
			}
		}
	}
	for memberID := range before {
		if !after[memberID] {
			deleteQuery := `DELETE FROM community_members WHERE community_id = $1 AND user_id = $2`
			if _, err := tx.Exec(ctx, deleteQuery, id, memberID); err != nil {
				return nil, err
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return &community, nil
}

// Delete удаляет сообщество; участники удаляются каскадно
func (s *CommunityStore) Delete(ctx context.Context, id string) (bool, error) {
	result, err := s.db.Exec(ctx, `DELETE FROM communities WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return result.RowsAffected() > 0, nil
}

// queryCommunities выполняет запрос списка сообществ и догружает участников
func (s *CommunityStore) queryCommunities(ctx context.Context, query string, args ...any) ([]*domain.Community, error) {
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var communities []*domain.Community
	var ids []string
	for rows.Next() {
		var community domain.Community
		if err := rows.Scan(&community.ID, &community.Name, &community.Description, &community.CreatedBy); err != nil {
			return nil, err
		}
		communities = append(communities, &community)
		ids = append(ids, community.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(ids) == 0 {
		return communities, nil
	}

	members, err := s.loadMembers(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, community := range communities {
		community.Members = members[community.ID]
	}

	return communities, nil
}

// loadMembers возвращает составы участников для набора сообществ
func (s *CommunityStore) loadMembers(ctx context.Context, ids []string) (map[string][]string, error) {
	query := `
		SELECT community_id, user_id
		FROM community_members
		WHERE community_id = ANY($1)
		ORDER BY user_id
	`

	rows, err := s.db.Query(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	members := make(map[string][]string, len(ids))
	for _, id := range ids {
		members[id] = []string{}
	}
	for rows.Next() {
		var communityID, userID string
		if err := rows.Scan(&communityID, &userID); err != nil {
			return nil, err
		}
		members[communityID] = append(members[communityID], userID)
	}

	return members, rows.Err()
}
