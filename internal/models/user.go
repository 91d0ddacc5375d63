package models

// User — пользователь системы MontajPro (не телеграм-аккаунт).
// TelegramID связывает его с чатом, через который он работает с ботом.
type User struct {
	ID         int64  `json:"id"`
	Login      string `json:"login"`
	Name       string `json:"name"`
	Lastname   string `json:"lastname"`
	Role       string `json:"role"`
	IsActive   bool   `json:"is_active"`
	TelegramID int64  `json:"telegram_id,omitempty"`
}

// FullName собирает отображаемое имя так же, как это делал веб-клиент.
func (u User) FullName() string {
	if u.Lastname == "" {
		return u.Name
	}
	return u.Name + " " + u.Lastname
}

// UserPayload — тело создания/редактирования пользователя администратором.
type UserPayload struct {
	Login      string `json:"login,omitempty"`
	Name       string `json:"name,omitempty"`
	Lastname   string `json:"lastname,omitempty"`
	Role       string `json:"role,omitempty"`
	IsActive   *bool  `json:"is_active,omitempty"`
	TelegramID int64  `json:"telegram_id,omitempty"`
}
