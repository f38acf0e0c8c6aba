package service

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// CommunityStats represents membership statistics for a single community
type CommunityStats struct {
	CommunityID string `json:"community_id"`
	Name        string `json:"name"`
	MemberCount int    `json:"member_count"`
}

// OverallStats represents service-wide totals
type OverallStats struct {
	TotalCommunities int `json:"total_communities"`
	TotalMemberships int `json:"total_memberships"`
	TotalUsers       int `json:"total_users"`
}

// Stats represents combined statistics
type Stats struct {
	Communities []CommunityStats `json:"communities"`
	Overall     OverallStats     `json:"overall"`
}

// StatsService handles statistics queries
type StatsService struct {
	db *pgxpool.Pool
}

// NewStatsService creates a new StatsService
func NewStatsService(db *pgxpool.Pool) *StatsService {
	return &StatsService{db: db}
}

// GetStats returns overall statistics
func (s *StatsService) GetStats(ctx context.Context) (*Stats, error) {
	stats := &Stats{}

	communityQuery := `
		SELECT
			c.id,
			c.name,
			COUNT(m.user_id) as member_count
		FROM communities c
		LEFT JOIN community_members m ON m.community_id = c.id
		GROUP BY c.id, c.name
		ORDER BY member_count DESC, c.id
	`

	rows, err := s.db.Query(ctx, communityQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var cs CommunityStats
		if err := rows.Scan(&cs.CommunityID, &cs.Name, &cs.MemberCount); err != nil {
			return nil, err
		}
		stats.Communities = append(stats.Communities, cs)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	overallQuery := `
		SELECT
			(SELECT COUNT(*) FROM communities) as total_communities,
			(SELECT COUNT(*) FROM community_members) as total_memberships,
			(SELECT COUNT(*) FROM users) as total_users
	`

	if err := s.db.QueryRow(ctx, overallQuery).Scan(
		&stats.Overall.TotalCommunities,
		&stats.Overall.TotalMemberships,
		&stats.Overall.TotalUsers,
	); err != nil {
		return nil, err
	}

	return stats, nil
}
