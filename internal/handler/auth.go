package handler

import (
	"encoding/json"
	"net/http"

	"github.com/imagify/community-service/internal/domain"
	"github.com/imagify/community-service/internal/service"
)

// AuthHandler обрабатывает эндпоинты аутентификации
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler создает новый AuthHandler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// RegisterRequest представляет тело запроса на регистрацию
type RegisterRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
}

// RegisterResponse представляет тело ответа на регистрацию
type RegisterResponse struct {
	User *domain.User `json:"user"`
}

// LoginRequest представляет тело запроса на логин
type LoginRequest struct {
	Email string `json:"email"`
}

// LoginResponse представляет тело ответа на логин
type LoginResponse struct {
	Token string `json:"token"`
}

// Register обрабатывает POST /auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		return
	}

	if req.Email == "" {
		RespondWithError(w, r, http.StatusBadRequest, "BAD_REQUEST", "email is required")
		return
	}

	user, err := h.authService.Register(r.Context(), req.Email, req.Username)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusCreated, RegisterResponse{User: user})
}

// Login обрабатывает POST /auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		return
	}

	if req.Email == "" {
		RespondWithError(w, r, http.StatusBadRequest, "BAD_REQUEST", "email is required")
		return
	}

	token, err := h.authService.Login(r.Context(), req.Email)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, LoginResponse{Token: token})
}
