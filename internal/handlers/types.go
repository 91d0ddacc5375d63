package handlers

import (
	"montajbot/internal/backend"
	"montajbot/internal/config"
	"montajbot/internal/session"
	"montajbot/internal/telegram_api"
)

// HandlerDependencies содержит все зависимости, необходимые для обработчиков.
type HandlerDependencies struct {
	Config         *config.Config
	BotClient      *telegram_api.BotClient
	SessionManager *session.Manager
	Backend        *backend.Client // без токена; токен подставляется per-user
}

// BotHandler инкапсулирует логику обработки сообщений и коллбэков.
type BotHandler struct {
	Deps HandlerDependencies
}

// NewBotHandler создает новый экземпляр BotHandler.
func NewBotHandler(deps HandlerDependencies) *BotHandler {
	if deps.Config == nil || deps.BotClient == nil || deps.SessionManager == nil || deps.Backend == nil {
		panic("Не все зависимости для BotHandler были предоставлены.")
	}
	return &BotHandler{Deps: deps}
}

// apiFor возвращает клиент бэкенда с токеном сессии.
func (bh *BotHandler) apiFor(s session.Session) *backend.Client {
	return bh.Deps.Backend.WithToken(s.Token)
}
