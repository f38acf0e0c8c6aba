package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/imagify/community-service/internal/domain"
	"github.com/imagify/community-service/internal/repository"
)

// AuthService handles account registration and token issuance
type AuthService struct {
	users  repository.UserDirectory
	tokens *TokenService
}

// NewAuthService creates a new AuthService
func NewAuthService(users repository.UserDirectory, tokens *TokenService) *AuthService {
	return &AuthService{
		users:  users,
		tokens: tokens,
	}
}

// Register creates a new directory record for the given email
func (s *AuthService) Register(ctx context.Context, email, username string) (*domain.User, error) {
	user := &domain.User{
		ID:       uuid.NewString(),
		Email:    email,
		Username: username,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Login issues a bearer token for an existing account
func (s *AuthService) Login(ctx context.Context, email string) (string, error) {
	// Verify the account exists before issuing a token
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return "", err
	}

	return s.tokens.Issue(user.Email)
}
