// Файл: montajbot/internal/api/handlers.go
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	tgbotapi "github.com/OvyFlash/telegram-bot-api"

	"montajbot/internal/constants"
)

// BackendEvent — уведомление от бэкенда MontajPro: что-то произошло с
// заданием, и перечисленные получатели должны узнать об этом в чате.
// Получатели адресуются telegram_id, бэкенд знает привязку.
type BackendEvent struct {
	Event      string  `json:"event"`
	TaskID     int64   `json:"task_id,omitempty"`
	Recipients []int64 `json:"recipients"`
	Text       string  `json:"text"`
}

// eventEmoji — значки для известных типов событий.
var eventEmoji = map[string]string{
	"task_published": "🆕",
	"task_assigned":  "📌",
	"task_accepted":  "🤝",
	"task_returned":  "↩️",
	"report_created": "📄",
	"report_review":  "🔎",
	"task_completed": "✅",
}

// EventsHandler принимает событие бэкенда, рассылает уведомления и
// обновляет счетчики меню получателей.
func EventsHandler(deps ApiDependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bh := deps.Bot
		if bh == nil {
			http.Error(w, "service unavailable: bot is not running", http.StatusServiceUnavailable)
			return
		}

		var event BackendEvent
		if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
			http.Error(w, "bad request: "+err.Error(), http.StatusBadRequest)
			return
		}
		if event.Text == "" || len(event.Recipients) == 0 {
			http.Error(w, "bad request: text and recipients are required", http.StatusBadRequest)
			return
		}

		delivered := 0
		for _, chatID := range event.Recipients {
			text := event.Text
			if emoji := eventEmoji[event.Event]; emoji != "" {
				text = emoji + " " + text
			}
			msg := tgbotapi.NewMessage(chatID, text)
			msg.ParseMode = tgbotapi.ModeHTML
			if event.TaskID != 0 {
				kb := tgbotapi.NewInlineKeyboardMarkup(
					tgbotapi.NewInlineKeyboardRow(
						tgbotapi.NewInlineKeyboardButtonData("📋 Открыть задание",
							fmt.Sprintf("%s%d", constants.CALLBACK_PREFIX_TASK_VIEW, event.TaskID))))
				msg.ReplyMarkup = kb
			}
			if _, err := bh.Deps.BotClient.Send(msg); err != nil {
				log.Printf("api: не доставлено уведомление chatID %d: %v", chatID, err)
				continue
			}
			delivered++

			// Счетчики получателя освежаются в фоне, если у него есть сессия.
			if s, ok := deps.SessionManager.Get(chatID); ok {
				go func(chatID int64, token string) {
					ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
					defer cancel()
					deps.SessionManager.RefreshCounts(ctx, chatID, bh.Deps.Backend.WithToken(token))
				}(chatID, s.Token)
			}
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]int{"delivered": delivered})
	}
}
