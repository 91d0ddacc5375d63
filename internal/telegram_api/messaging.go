package telegram_api

import (
	"fmt"
	"log"
	"strings"

	tgbotapi "github.com/OvyFlash/telegram-bot-api"
)

// SendOrEditMessage пытается отредактировать существующее сообщение и
// отправляет новое, если редактировать нечего или не вышло. Ошибка
// «message is not modified» считается успехом: контент просто не изменился.
func SendOrEditMessage(
	botClient *BotClient,
	chatID int64,
	messageIDToTryEdit int,
	text string,
	keyboard *tgbotapi.InlineKeyboardMarkup,
) (tgbotapi.Message, error) {
	if botClient == nil || botClient.api == nil {
		return tgbotapi.Message{}, fmt.Errorf("BotClient не инициализирован")
	}

	if messageIDToTryEdit != 0 {
		var edit tgbotapi.EditMessageTextConfig
		if keyboard != nil {
			edit = tgbotapi.NewEditMessageTextAndMarkup(chatID, messageIDToTryEdit, text, *keyboard)
		} else {
			edit = tgbotapi.NewEditMessageText(chatID, messageIDToTryEdit, text)
		}
		edit.ParseMode = tgbotapi.ModeHTML

		_, err := botClient.Request(edit)
		if err == nil || strings.Contains(err.Error(), "message is not modified") {
			// Возвращаем «фиктивное» сообщение с прежним ID: вызывающему
			// важен только ID для дальнейших правок.
			return tgbotapi.Message{MessageID: messageIDToTryEdit}, nil
		}
		if !strings.Contains(err.Error(), "message to edit not found") {
			log.Printf("SendOrEditMessage: ошибка редактирования chatID=%d msgID=%d: %v. Будет отправлено новое.", chatID, messageIDToTryEdit, err)
		}
	}

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	if keyboard != nil {
		msg.ReplyMarkup = keyboard
	}
	sent, err := botClient.Send(msg)
	if err != nil {
		return tgbotapi.Message{}, fmt.Errorf("ошибка отправки сообщения chatID %d: %w", chatID, err)
	}
	return sent, nil
}
