package domain

// User представляет учетную запись в каталоге пользователей.
// Сервис сообществ ссылается на пользователя только по ID.
type User struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
}
