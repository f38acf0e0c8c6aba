package service

import (
	"context"
	"strings"

	"github.com/imagify/community-service/internal/domain"
	"github.com/imagify/community-service/internal/repository"
)

// TokenVerifier extracts a stable subject identifier from a bearer token
type TokenVerifier interface {
	ExtractSubject(token string) (string, error)
}

// AccessGate resolves a raw Authorization header value into an internal
// user ID. It composes token verification and directory lookup; it has no
// side effects and is safe to call concurrently.
type AccessGate struct {
	verifier TokenVerifier
	users    repository.UserDirectory
}

// NewAccessGate creates a new AccessGate
func NewAccessGate(verifier TokenVerifier, users repository.UserDirectory) *AccessGate {
	return &AccessGate{
		verifier: verifier,
		users:    users,
	}
}

// ResolveIdentity resolves the raw header value to an internal user ID.
// Returns domain.ErrUnauthenticated when the header is absent or does not
// carry the Bearer scheme, domain.ErrInvalidToken when the token yields no
// subject, and domain.ErrUserNotFound when the subject has no directory
// record (a still-valid token for a deleted account).
func (g *AccessGate) ResolveIdentity(ctx context.Context, rawHeader string) (string, error) {
	if rawHeader == "" {
		return "", domain.ErrUnauthenticated
	}

	parts := strings.Split(rawHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", domain.ErrUnauthenticated
	}

	subject, err := g.verifier.ExtractSubject(parts[1])
	if err != nil {
		return "", domain.ErrInvalidToken
	}

	user, err := g.users.GetByEmail(ctx, subject)
	if err != nil {
		return "", err
	}

	return user.ID, nil
}
