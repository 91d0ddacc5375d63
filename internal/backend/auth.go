package backend

import (
	"context"
	"fmt"
)

// AuthResponse — ответ на авторизацию: токен и то, что веб-клиент
// складывал в хранилище сессии.
type AuthResponse struct {
	Token    string `json:"access_token"`
	Role     string `json:"role"`
	FullName string `json:"fullname"`
}

// tokenWithTGRequest — тело авторизации через Telegram.
type tokenWithTGRequest struct {
	TelegramID int64  `json:"telegram_id"`
	InitData   string `json:"init_data,omitempty"`
}

// TokenWithTG обменивает telegram_id на токен доступа. Наличие учетной
// записи с таким telegram_id проверяет бэкенд.
func (c *Client) TokenWithTG(ctx context.Context, telegramID int64) (AuthResponse, error) {
	var out AuthResponse
	err := c.post(ctx, "/auth/token_with_tg", tokenWithTGRequest{TelegramID: telegramID}, &out)
	if err != nil {
		return AuthResponse{}, err
	}
	if out.Token == "" {
		return AuthResponse{}, fmt.Errorf("бэкенд не вернул токен доступа")
	}
	return out, nil
}

// VerifyToken проверяет живость токена. Возвращает актуальные роль и имя:
// если роль сменили на бэкенде, сессия в боте обновится при следующем входе.
func (c *Client) VerifyToken(ctx context.Context) (AuthResponse, error) {
	var out AuthResponse
	if err := c.get(ctx, "/auth/verify", nil, &out); err != nil {
		return AuthResponse{}, err
	}
	return out, nil
}
