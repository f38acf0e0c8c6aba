package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/imagify/community-service/internal/domain"
	"github.com/imagify/community-service/internal/service"
)

// ContextKey это кастомный тип для ключей контекста
type ContextKey string

// UserIDKey ключ контекста для ID аутентифицированного пользователя
const UserIDKey ContextKey = "user_id"

// AuthMiddleware создает middleware, разрешающее личность через AccessGate.
// Отсутствующий или неправильно оформленный заголовок дает 401; невалидный
// токен и неизвестный subject оба дают 404, чтобы граница не раскрывала,
// какая именно проверка не прошла.
func AuthMiddleware(gate *service.AccessGate) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, err := gate.ResolveIdentity(r.Context(), r.Header.Get("Authorization"))
			if err != nil {
				if errors.Is(err, domain.ErrUnauthenticated) {
					http.Error(w, `{"error":{"code":"UNAUTHORIZED","message":"missing or malformed authorization header"}}`, http.StatusUnauthorized)
					return
				}
				http.Error(w, `{"error":{"code":"NOT_FOUND","message":"resource not found"}}`, http.StatusNotFound)
				return
			}

			// Добавляем ID пользователя в контекст
			ctx := context.WithValue(r.Context(), UserIDKey, userID)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserIDFromContext извлекает ID пользователя из контекста
func GetUserIDFromContext(ctx context.Context) string {
	userID, ok := ctx.Value(UserIDKey).(string)
	if !ok {
		return ""
	}
	return userID
}
