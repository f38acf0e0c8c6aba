package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/imagify/community-service/internal/middleware"
	"github.com/imagify/community-service/internal/service"
)

// CommunityHandler обрабатывает эндпоинты сообществ
type CommunityHandler struct {
	communityService *service.CommunityService
}

// NewCommunityHandler создает новый CommunityHandler
func NewCommunityHandler(communityService *service.CommunityService) *CommunityHandler {
	return &CommunityHandler{
		communityService: communityService,
	}
}

// CommunityRequest представляет тело запроса на создание/обновление сообщества
type CommunityRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Create обрабатывает POST /api/communities
func (h *CommunityHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CommunityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		return
	}

	actorID := middleware.GetUserIDFromContext(r.Context())

	community, err := h.communityService.CreateCommunity(r.Context(), req.Name, req.Description, actorID)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusCreated, community)
}

// GetAll обрабатывает GET /api/communities
func (h *CommunityHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	communities, err := h.communityService.GetAllCommunities(r.Context())
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, communities)
}

// GetByID обрабатывает GET /api/communities/{id}
func (h *CommunityHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	community, err := h.communityService.GetCommunityByID(r.Context(), id)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, community)
}

// Join обрабатывает POST /api/communities/{id}/join
func (h *CommunityHandler) Join(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	actorID := middleware.GetUserIDFromContext(r.Context())

	joined, err := h.communityService.JoinCommunity(r.Context(), id, actorID)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	if !joined {
		RespondWithError(w, r, http.StatusNotFound, "NOT_FOUND", "resource not found")
		return
	}

	w.WriteHeader(http.StatusOK)
}

// Leave обрабатывает POST /api/communities/{id}/leave
func (h *CommunityHandler) Leave(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	actorID := middleware.GetUserIDFromContext(r.Context())

	left, err := h.communityService.LeaveCommunity(r.Context(), id, actorID)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	if !left {
		RespondWithError(w, r, http.StatusNotFound, "NOT_FOUND", "resource not found")
		return
	}

	w.WriteHeader(http.StatusOK)
}

// GetMine обрабатывает GET /api/communities/my
func (h *CommunityHandler) GetMine(w http.ResponseWriter, r *http.Request) {
	actorID := middleware.GetUserIDFromContext(r.Context())

	communities, err := h.communityService.GetCommunitiesByUser(r.Context(), actorID)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, communities)
}

// Update обрабатывает PUT /api/communities/{id}
func (h *CommunityHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req CommunityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		return
	}

	id := chi.URLParam(r, "id")

	community, err := h.communityService.UpdateCommunity(r.Context(), id, req.Name, req.Description)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, community)
}

// Delete обрабатывает DELETE /api/communities/{id}
func (h *CommunityHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	deleted, err := h.communityService.DeleteCommunity(r.Context(), id)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	if !deleted {
		RespondWithError(w, r, http.StatusNotFound, "NOT_FOUND", "resource not found")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
