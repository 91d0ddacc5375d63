package telegram_api

import (
	"fmt"
	"log"

	tgbotapi "github.com/OvyFlash/telegram-bot-api"
)

// BotClient — обертка над Telegram Bot API. В отличие от прежних версий
// не хранится в глобальной переменной: экземпляр создается в main и
// передается через зависимости.
type BotClient struct {
	api      *tgbotapi.BotAPI
	Debug    bool
	Username string
}

// NewBot инициализирует Telegram-бота и снимает вебхук: бот работает
// через getUpdates.
func NewBot(token string, debug bool, username string) (*BotClient, error) {
	if token == "" {
		return nil, fmt.Errorf("токен Telegram API не предоставлен")
	}

	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("ошибка инициализации Telegram Bot API: %w", err)
	}
	api.Debug = debug
	log.Printf("Авторизован как аккаунт %s", api.Self.UserName)

	if _, err := api.Request(tgbotapi.DeleteWebhookConfig{DropPendingUpdates: true}); err != nil {
		// Вебхука могло и не быть; это не повод не стартовать.
		log.Printf("Предупреждение при отключении вебхука: %v", err)
	}

	if username == "" {
		username = api.Self.UserName
	}
	return &BotClient{api: api, Debug: debug, Username: username}, nil
}

// GetUpdatesChan возвращает канал обновлений от Telegram.
func (bc *BotClient) GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	return bc.api.GetUpdatesChan(config)
}

// Send отправляет сообщение (или документ, фото и т.п.).
func (bc *BotClient) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	if bc == nil || bc.api == nil {
		return tgbotapi.Message{}, fmt.Errorf("BotClient не инициализирован")
	}
	if bc.Debug {
		if msg, ok := c.(tgbotapi.MessageConfig); ok {
			log.Printf("Отправка сообщения: ChatID=%d, Text='%.50s...'", msg.ChatID, msg.Text)
		} else {
			log.Printf("Отправка типа %T", c)
		}
	}
	return bc.api.Send(c)
}

// GetFileDirectURL возвращает прямую ссылку на файл, присланный боту
// (нужна для скачивания фото отчета перед загрузкой на бэкенд).
func (bc *BotClient) GetFileDirectURL(fileID string) (string, error) {
	if bc == nil || bc.api == nil {
		return "", fmt.Errorf("BotClient не инициализирован")
	}
	return bc.api.GetFileDirectURL(fileID)
}

// Request выполняет запрос без сообщения в ответе (ответ на коллбэк,
// удаление сообщения).
func (bc *BotClient) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	if bc == nil || bc.api == nil {
		return nil, fmt.Errorf("BotClient не инициализирован")
	}
	return bc.api.Request(c)
}
