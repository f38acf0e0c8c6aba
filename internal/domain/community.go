package domain

// Community представляет сообщество с составом участников
type Community struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	CreatedBy   string   `json:"created_by"`
	Members     []string `json:"members"` // Множество ID участников, без дубликатов
}

// HasMember проверяет, состоит ли пользователь в сообществе
func (c *Community) HasMember(userID string) bool {
	for _, member := range c.Members {
		if member == userID {
			return true
		}
	}
	return false
}

// AddMember добавляет пользователя в состав участников.
// Повторное добавление не создает дубликат (семантика множества).
func (c *Community) AddMember(userID string) {
	if c.HasMember(userID) {
		return
	}
	c.Members = append(c.Members, userID)
}

// RemoveMember удаляет пользователя из состава участников.
// Удаление отсутствующего участника ничего не меняет.
func (c *Community) RemoveMember(userID string) {
	for i, member := range c.Members {
		if member == userID {
			c.Members = append(c.Members[:i], c.Members[i+1:]...)
			return
		}
	}
}
