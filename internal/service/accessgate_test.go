package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imagify/community-service/internal/domain"
	"github.com/imagify/community-service/internal/repository/memory"
)

// fakeVerifier подменяет TokenVerifier в тестах: токен и есть subject
type fakeVerifier struct{}

func (fakeVerifier) ExtractSubject(token string) (string, error) {
	if token == "bad-token" {
		return "", domain.ErrInvalidToken
	}
	return token, nil
}

func newTestGate(t *testing.T) *AccessGate {
	t.Helper()

	users := memory.NewUserDirectory()
	err := users.Create(context.Background(), &domain.User{
		ID:    "u1",
		Email: "alice@example.com",
	})
	require.NoError(t, err)

	return NewAccessGate(fakeVerifier{}, users)
}

func TestResolveIdentity(t *testing.T) {
	gate := newTestGate(t)

	userID, err := gate.ResolveIdentity(context.Background(), "Bearer alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, "u1", userID)
}

func TestResolveIdentityMissingHeader(t *testing.T) {
	gate := newTestGate(t)

	_, err := gate.ResolveIdentity(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestResolveIdentityWrongScheme(t *testing.T) {
	gate := newTestGate(t)

	for _, header := range []string{
		"Basic alice@example.com",
		"bearer alice@example.com",
		"Bearer",
		"alice@example.com",
	} {
		_, err := gate.ResolveIdentity(context.Background(), header)
		assert.ErrorIs(t, err, domain.ErrUnauthenticated, "header %q", header)
	}
}

func TestResolveIdentityInvalidToken(t *testing.T) {
	gate := newTestGate(t)

	_, err := gate.ResolveIdentity(context.Background(), "Bearer bad-token")
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestResolveIdentityUnknownSubject(t *testing.T) {
	gate := newTestGate(t)

	// Валидный токен на удаленную учетную запись
	_, err := gate.ResolveIdentity(context.Background(), "Bearer ghost@example.com")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestResolveIdentityWithJWT(t *testing.T) {
	users := memory.NewUserDirectory()
	err := users.Create(context.Background(), &domain.User{
		ID:    "u1",
		Email: "alice@example.com",
	})
	require.NoError(t, err)

	tokens := NewTokenService("test-secret", testExpiry)
	gate := NewAccessGate(tokens, users)

	token, err := tokens.Issue("alice@example.com")
	require.NoError(t, err)

	userID, err := gate.ResolveIdentity(context.Background(), "Bearer "+token)
	require.NoError(t, err)
	assert.Equal(t, "u1", userID)
}
