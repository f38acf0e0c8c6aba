package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imagify/community-service/internal/domain"
	"github.com/imagify/community-service/internal/middleware"
	"github.com/imagify/community-service/internal/repository/memory"
	"github.com/imagify/community-service/internal/service"
)

// testEnv поднимает роутер на in-memory хранилищах, повторяя схему роутинга
// приложения
type testEnv struct {
	router chi.Router
	auth   *service.AuthService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	users := memory.NewUserDirectory()
	store := memory.NewCommunityStore()

	tokens := service.NewTokenService("test-secret", time.Hour)
	gate := service.NewAccessGate(tokens, users)
	authService := service.NewAuthService(users, tokens)
	communityService := service.NewCommunityService(store)

	authHandler := NewAuthHandler(authService)
	communityHandler := NewCommunityHandler(communityService)
	authMiddleware := middleware.AuthMiddleware(gate)

	r := chi.NewRouter()
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
	})
	r.Route("/api/communities", func(r chi.Router) {
		r.Get("/", communityHandler.GetAll)
		r.Get("/{id}", communityHandler.GetByID)
		r.Put("/{id}", communityHandler.Update)
		r.Delete("/{id}", communityHandler.Delete)
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)
			r.Post("/", communityHandler.Create)
			r.Get("/my", communityHandler.GetMine)
			r.Post("/{id}/join", communityHandler.Join)
			r.Post("/{id}/leave", communityHandler.Leave)
		})
	})

	return &testEnv{router: r, auth: authService}
}

// registerAndLogin создает учетную запись и возвращает (userID, token)
func (env *testEnv) registerAndLogin(t *testing.T, email string) (string, string) {
	t.Helper()

	user, err := env.auth.Register(context.Background(), email, "user")
	require.NoError(t, err)

	token, err := env.auth.Login(context.Background(), email)
	require.NoError(t, err)

	return user.ID, token
}

func (env *testEnv) request(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	return rec
}

func decodeCommunity(t *testing.T, rec *httptest.ResponseRecorder) domain.Community {
	t.Helper()

	var community domain.Community
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&community))
	return community
}

func TestCreateCommunityEndpoint(t *testing.T) {
	env := newTestEnv(t)
	userID, token := env.registerAndLogin(t, "alice@example.com")

	rec := env.request(t, http.MethodPost, "/api/communities/", token,
		CommunityRequest{Name: "Photographers", Description: "x"})
	require.Equal(t, http.StatusCreated, rec.Code)

	community := decodeCommunity(t, rec)
	assert.NotEmpty(t, community.ID)
	assert.Equal(t, "Photographers", community.Name)
	assert.Equal(t, userID, community.CreatedBy)
	assert.Equal(t, []string{userID}, community.Members)
}

func TestCreateCommunityRequiresAuth(t *testing.T) {
	env := newTestEnv(t)

	// Без заголовка — 401
	rec := env.request(t, http.MethodPost, "/api/communities/", "",
		CommunityRequest{Name: "Photographers"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// С мусорным токеном — 404 (невалидный токен не отличим от
	// несуществующей учетной записи)
	rec = env.request(t, http.MethodPost, "/api/communities/", "garbage",
		CommunityRequest{Name: "Photographers"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateCommunityEmptyName(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.registerAndLogin(t, "alice@example.com")

	rec := env.request(t, http.MethodPost, "/api/communities/", token,
		CommunityRequest{Name: "  ", Description: "x"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetCommunityEndpoints(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.registerAndLogin(t, "alice@example.com")

	rec := env.request(t, http.MethodPost, "/api/communities/", token,
		CommunityRequest{Name: "Photographers", Description: "x"})
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decodeCommunity(t, rec)

	// Чтение по id публично
	rec = env.request(t, http.MethodGet, "/api/communities/"+created.ID, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, created, decodeCommunity(t, rec))

	rec = env.request(t, http.MethodGet, "/api/communities/nonexistent-id", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// Список тоже публичен
	rec = env.request(t, http.MethodGet, "/api/communities/", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list []domain.Community
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&list))
	assert.Len(t, list, 1)
}

func TestJoinLeaveEndpoints(t *testing.T) {
	env := newTestEnv(t)
	creatorID, creatorToken := env.registerAndLogin(t, "alice@example.com")
	joinerID, joinerToken := env.registerAndLogin(t, "bob@example.com")

	rec := env.request(t, http.MethodPost, "/api/communities/", creatorToken,
		CommunityRequest{Name: "Photographers", Description: "x"})
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decodeCommunity(t, rec)

	// Вступление — 200 с пустым телом
	rec = env.request(t, http.MethodPost, fmt.Sprintf("/api/communities/%s/join", created.ID), joinerToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.Bytes())

	rec = env.request(t, http.MethodGet, "/api/communities/"+created.ID, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.ElementsMatch(t, []string{creatorID, joinerID}, decodeCommunity(t, rec).Members)

	// Вступление в несуществующее сообщество — 404
	rec = env.request(t, http.MethodPost, "/api/communities/nonexistent-id/join", joinerToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// Выход создателя: сообщество остается, created_by не меняется
	rec = env.request(t, http.MethodPost, fmt.Sprintf("/api/communities/%s/leave", created.ID), creatorToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.request(t, http.MethodGet, "/api/communities/"+created.ID, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	got := decodeCommunity(t, rec)
	assert.Equal(t, []string{joinerID}, got.Members)
	assert.Equal(t, creatorID, got.CreatedBy)

	// Без токена join и leave недоступны
	rec = env.request(t, http.MethodPost, fmt.Sprintf("/api/communities/%s/join", created.ID), "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGetMineEndpoint(t *testing.T) {
	env := newTestEnv(t)
	_, creatorToken := env.registerAndLogin(t, "alice@example.com")
	joinerID, joinerToken := env.registerAndLogin(t, "bob@example.com")

	rec := env.request(t, http.MethodPost, "/api/communities/", creatorToken,
		CommunityRequest{Name: "Photographers", Description: "x"})
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decodeCommunity(t, rec)

	// Пока bob никуда не вступил — пустой список, не null
	rec = env.request(t, http.MethodGet, "/api/communities/my", joinerToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())

	rec = env.request(t, http.MethodPost, fmt.Sprintf("/api/communities/%s/join", created.ID), joinerToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.request(t, http.MethodGet, "/api/communities/my", joinerToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var mine []domain.Community
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&mine))
	require.Len(t, mine, 1)
	assert.Equal(t, created.ID, mine[0].ID)
	assert.Contains(t, mine[0].Members, joinerID)
}

func TestUpdateAndDeleteEndpoints(t *testing.T) {
	env := newTestEnv(t)
	creatorID, token := env.registerAndLogin(t, "alice@example.com")

	rec := env.request(t, http.MethodPost, "/api/communities/", token,
		CommunityRequest{Name: "Photographers", Description: "x"})
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decodeCommunity(t, rec)

	// Update в базовом контракте не требует токена
	rec = env.request(t, http.MethodPut, "/api/communities/"+created.ID, "",
		CommunityRequest{Name: "Film Photographers", Description: "35mm"})
	require.Equal(t, http.StatusOK, rec.Code)
	updated := decodeCommunity(t, rec)
	assert.Equal(t, "Film Photographers", updated.Name)
	assert.Equal(t, []string{creatorID}, updated.Members)

	rec = env.request(t, http.MethodPut, "/api/communities/nonexistent-id", "",
		CommunityRequest{Name: "n"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// Delete — 204 с пустым телом, повторное удаление — 404
	rec = env.request(t, http.MethodDelete, "/api/communities/"+created.ID, "", nil)
	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.Bytes())

	rec = env.request(t, http.MethodDelete, "/api/communities/"+created.ID, "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAuthEndpoints(t *testing.T) {
	env := newTestEnv(t)

	rec := env.request(t, http.MethodPost, "/auth/register", "",
		RegisterRequest{Email: "alice@example.com", Username: "alice"})
	require.Equal(t, http.StatusCreated, rec.Code)

	// Повторная регистрация того же email — 409
	rec = env.request(t, http.MethodPost, "/auth/register", "",
		RegisterRequest{Email: "alice@example.com", Username: "alice2"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = env.request(t, http.MethodPost, "/auth/login", "",
		LoginRequest{Email: "alice@example.com"})
	require.Equal(t, http.StatusOK, rec.Code)
	var login LoginResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&login))
	assert.NotEmpty(t, login.Token)

	// Логин незарегистрированного email — 404
	rec = env.request(t, http.MethodPost, "/auth/login", "",
		LoginRequest{Email: "ghost@example.com"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
