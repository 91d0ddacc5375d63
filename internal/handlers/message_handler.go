package handlers

import (
	"context"
	"errors"
	"log"
	"strconv"
	"strings"

	tgbotapi "github.com/OvyFlash/telegram-bot-api"

	"montajbot/internal/backend"
	"montajbot/internal/constants"
)

// HandleMessage обрабатывает входящее сообщение: команды, фото отчета и
// текстовый ввод многошаговых сценариев.
func (bh *BotHandler) HandleMessage(message *tgbotapi.Message) {
	if message == nil {
		return
	}
	chatID := message.Chat.ID

	if message.IsCommand() {
		switch message.Command() {
		case "start":
			bh.handleStartCommand(message)
		case "menu":
			bh.SendMainMenu(chatID, 0)
		case "logout":
			bh.HandleLogout(chatID, 0)
		default:
			bh.draftInputRetry(chatID, "Неизвестная команда. Используйте /start.")
		}
		return
	}

	state := bh.Deps.SessionManager.GetState(chatID)

	if len(message.Photo) > 0 {
		if state == constants.STATE_REPORT_PHOTOS {
			bh.HandleReportPhoto(message)
		} else {
			bh.draftInputRetry(chatID, "Сейчас фото не ожидается.")
		}
		return
	}

	text := strings.TrimSpace(message.Text)
	if text == "" {
		return
	}

	s, ok := bh.Deps.SessionManager.Get(chatID)
	if !ok {
		bh.requireSession(chatID, 0)
		return
	}

	switch {
	case isDraftState(state):
		bh.handleDraftTextInput(chatID, s, state, text)
	case state == constants.STATE_REPORT_TEXT:
		bh.handleReportTextInput(chatID, s, text)
	case state == constants.STATE_TASK_RETURN_COMMENT:
		bh.handleReturnCommentInput(chatID, s, text)
	case state == constants.STATE_TASK_EDIT_COMMENT:
		bh.handleEditCommentInput(chatID, s, text)
	case state == constants.STATE_REVIEW_REJECT_REASON:
		bh.handleReviewRejectInput(chatID, s, text)
	case state == constants.STATE_TASK_FILTER_SEARCH:
		bh.handleTaskSearchInput(chatID, s, text)
	case state == constants.STATE_ADMIN_USER_LOGIN,
		state == constants.STATE_ADMIN_USER_NAME,
		state == constants.STATE_ADMIN_USER_LASTNAME:
		bh.handleAdminUserInput(chatID, s, state, text)
	case state == constants.STATE_ADMIN_EQUIPMENT_NAME,
		state == constants.STATE_ADMIN_EQUIPMENT_PRICE,
		state == constants.STATE_ADMIN_EQUIPMENT_EDIT,
		state == constants.STATE_ADMIN_WORKTYPE_NAME,
		state == constants.STATE_ADMIN_WORKTYPE_PRICE:
		bh.handleAdminCatalogInput(chatID, s, state, text)
	default:
		// Текст вне сценария: просто показываем меню.
		bh.SendMainMenu(chatID, 0)
	}
}

// handleStartCommand авторизует пользователя по telegram_id и открывает
// главное меню. Аргумент deep link вида task_<id> открывает карточку
// задания (так работают QR-коды и ссылки «Поделиться»).
func (bh *BotHandler) handleStartCommand(message *tgbotapi.Message) {
	chatID := message.Chat.ID

	needAuth := true
	if s, ok := bh.Deps.SessionManager.Get(chatID); ok {
		// Токен уже есть: проверяем его и заодно подтягиваем актуальные
		// роль и имя. Протухший токен просто меняем на новый.
		if auth, err := bh.apiFor(s).VerifyToken(context.Background()); err == nil {
			if err := bh.Deps.SessionManager.SetAuth(chatID, s.Token, auth.Role, auth.FullName); err != nil {
				log.Printf("handlers: ошибка обновления сессии chatID %d: %v", chatID, err)
			}
			needAuth = false
		} else {
			log.Printf("handlers: токен chatID %d не прошел проверку: %v", chatID, err)
		}
	}

	if needAuth {
		auth, err := bh.Deps.Backend.TokenWithTG(context.Background(), message.From.ID)
		if err != nil {
			var apiErr *backend.APIError
			if errors.As(err, &apiErr) {
				log.Printf("handlers: отказ в авторизации chatID %d: %v", chatID, err)
				bh.sendPlain(chatID, "🚫 Доступ не найден. Обратитесь к администратору, чтобы вас добавили в систему.")
				return
			}
			bh.sendErrorMessageHelper(chatID, 0, err)
			return
		}
		if err := bh.Deps.SessionManager.SetAuth(chatID, auth.Token, auth.Role, auth.FullName); err != nil {
			bh.sendErrorMessageHelper(chatID, 0, err)
			return
		}
	}

	if arg := message.CommandArguments(); strings.HasPrefix(arg, "task_") {
		if taskID, err := strconv.ParseInt(strings.TrimPrefix(arg, "task_"), 10, 64); err == nil && taskID > 0 {
			bh.SendTaskCard(chatID, 0, taskID)
			return
		}
	}
	bh.SendMainMenu(chatID, 0)
}

func (bh *BotHandler) sendPlain(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := bh.Deps.BotClient.Send(msg); err != nil {
		log.Printf("handlers: ошибка отправки сообщения chatID %d: %v", chatID, err)
	}
}
