package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/imagify/community-service/internal/domain"
	"github.com/imagify/community-service/internal/repository"
)

// CommunityService handles business logic for communities
type CommunityService struct {
	store repository.MembershipStore
}

// NewCommunityService creates a new CommunityService
func NewCommunityService(store repository.MembershipStore) *CommunityService {
	return &CommunityService{
		store: store,
	}
}

// CreateCommunity creates a community owned by the actor. The creator joins
// automatically, so the returned member set is exactly {actor}.
func (s *CommunityService) CreateCommunity(ctx context.Context, name, description, actorID string) (*domain.Community, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}

	community := &domain.Community{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
		CreatedBy:   actorID,
		Members:     []string{actorID},
	}

	if err := s.store.Insert(ctx, community); err != nil {
		return nil, err
	}

	return community, nil
}

// GetAllCommunities returns a snapshot of every stored community
func (s *CommunityService) GetAllCommunities(ctx context.Context) ([]*domain.Community, error) {
	communities, err := s.store.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if communities == nil {
		communities = []*domain.Community{}
	}
	return communities, nil
}

// GetCommunityByID retrieves a community; returns domain.ErrCommunityNotFound if absent
func (s *CommunityService) GetCommunityByID(ctx context.Context, id string) (*domain.Community, error) {
	return s.store.Get(ctx, id)
}

// JoinCommunity adds the actor to the member set. Returns false only when the
// community does not exist; joining an already-joined community is an
// idempotent success.
func (s *CommunityService) JoinCommunity(ctx context.Context, id, actorID string) (bool, error) {
	_, err := s.store.Update(ctx, id, func(c *domain.Community) error {
		c.AddMember(actorID)
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrCommunityNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// LeaveCommunity removes the actor from the member set. Returns false only
// when the community does not exist; leaving a community the actor is not a
// member of is an idempotent success. The creator may leave: the community
// keeps existing and CreatedBy keeps pointing at the (now absent) creator.
func (s *CommunityService) LeaveCommunity(ctx context.Context, id, actorID string) (bool, error) {
	_, err := s.store.Update(ctx, id, func(c *domain.Community) error {
		c.RemoveMember(actorID)
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrCommunityNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// GetCommunitiesByUser returns every community whose member set contains the user
func (s *CommunityService) GetCommunitiesByUser(ctx context.Context, userID string) ([]*domain.Community, error) {
	communities, err := s.store.GetByMember(ctx, userID)
	if err != nil {
		return nil, err
	}
	if communities == nil {
		communities = []*domain.Community{}
	}
	return communities, nil
}

// UpdateCommunity overwrites name and description only; the member set and
// CreatedBy are never touched by update.
func (s *CommunityService) UpdateCommunity(ctx context.Context, id, name, description string) (*domain.Community, error) {
	return s.store.Update(ctx, id, func(c *domain.Community) error {
		c.Name = name
		c.Description = description
		return nil
	})
}

// DeleteCommunity hard-deletes a community; reports whether a deletion occurred
func (s *CommunityService) DeleteCommunity(ctx context.Context, id string) (bool, error) {
	return s.store.Delete(ctx, id)
}
