package domain

import "errors"

// Доменные ошибки сервиса сообществ
var (
	// ErrValidation возвращается при невалидных данных запроса
	ErrValidation = errors.New("validation failed")

	// ErrCommunityNotFound возвращается когда сообщество не найдено
	ErrCommunityNotFound = errors.New("community not found")

	// ErrUserNotFound возвращается когда пользователь не найден в каталоге
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailTaken возвращается при регистрации с уже занятым email
	ErrEmailTaken = errors.New("email already registered")

	// ErrUnauthenticated возвращается при отсутствующем или неправильно
	// оформленном заголовке Authorization
	ErrUnauthenticated = errors.New("missing or malformed credentials")

	// ErrInvalidToken возвращается когда bearer-токен невалиден
	ErrInvalidToken = errors.New("invalid token")
)

// ErrorCode представляет коды ошибок API
type ErrorCode string

// Коды ошибок API
const (
	CodeBadRequest   ErrorCode = "BAD_REQUEST"   // Невалидные данные запроса
	CodeUnauthorized ErrorCode = "UNAUTHORIZED"  // Отсутствует или неверно оформлен credential
	CodeNotFound     ErrorCode = "NOT_FOUND"     // Ресурс не найден
	CodeEmailTaken   ErrorCode = "EMAIL_TAKEN"   // Email уже зарегистрирован
	CodeInternal     ErrorCode = "INTERNAL_ERROR"
)

// MapErrorToCode преобразует доменные ошибки в коды ошибок API.
// ErrInvalidToken и ErrUserNotFound намеренно схлопываются в NOT_FOUND:
// граница не раскрывает, что именно не удалось при разрешении личности.
func MapErrorToCode(err error) ErrorCode {
	switch {
	case errors.Is(err, ErrValidation):
		return CodeBadRequest
	case errors.Is(err, ErrUnauthenticated):
		return CodeUnauthorized
	case errors.Is(err, ErrEmailTaken):
		return CodeEmailTaken
	case errors.Is(err, ErrCommunityNotFound), errors.Is(err, ErrUserNotFound),
		errors.Is(err, ErrInvalidToken):
		return CodeNotFound
	default:
		return CodeInternal
	}
}
