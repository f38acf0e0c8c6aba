package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/render"

	"github.com/imagify/community-service/internal/domain"
)

// ErrorResponse представляет ответ с ошибкой
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail содержит код и описание ошибки
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RespondWithError отправляет ответ с ошибкой
func RespondWithError(w http.ResponseWriter, r *http.Request, statusCode int, code, message string) {
	render.Status(r, statusCode)
	render.JSON(w, r, ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
		},
	})
}

// HandleError преобразует доменные ошибки в HTTP ответы
func HandleError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		RespondWithError(w, r, http.StatusBadRequest, string(domain.CodeBadRequest), err.Error())
	case errors.Is(err, domain.ErrUnauthenticated):
		RespondWithError(w, r, http.StatusUnauthorized, string(domain.CodeUnauthorized), "missing or malformed credentials")
	case errors.Is(err, domain.ErrEmailTaken):
		RespondWithError(w, r, http.StatusConflict, string(domain.CodeEmailTaken), "email already registered")
	case errors.Is(err, domain.ErrCommunityNotFound), errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrInvalidToken):
		RespondWithError(w, r, http.StatusNotFound, string(domain.CodeNotFound), "resource not found")
	default:
		RespondWithError(w, r, http.StatusInternalServerError, string(domain.CodeInternal), "internal server error")
	}
}
