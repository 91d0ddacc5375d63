package handlers

import (
	"context"
	"fmt"
	"log"
	"time"

	tgbotapi "github.com/OvyFlash/telegram-bot-api"

	"montajbot/internal/constants"
	"montajbot/internal/formatters"
	"montajbot/internal/lifecycle"
	"montajbot/internal/session"
	"montajbot/internal/utils"
)

// badge добавляет к названию кнопки счетчик, если он ненулевой.
func badge(title string, n int) string {
	if n <= 0 {
		return title
	}
	return fmt.Sprintf("%s (%d)", title, n)
}

// SendMainMenu показывает главное меню роли. Счетчики для бейджей
// обновляются с бэкенда перед отрисовкой; при ошибке остаются прежние.
func (bh *BotHandler) SendMainMenu(chatID int64, messageID int) {
	s, ok := bh.requireSession(chatID, messageID)
	if !ok {
		return
	}

	// Любой вход в главное меню обрывает незаконченный диалог.
	bh.Deps.SessionManager.ClearState(chatID)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	bh.Deps.SessionManager.RefreshCounts(ctx, chatID, bh.apiFor(s))
	if fresh, ok := bh.Deps.SessionManager.Get(chatID); ok {
		s = fresh
	}

	role := roleOf(s)
	text := fmt.Sprintf("👋 <b>%s</b>\nРоль: %s\nВыберите раздел:", utils.EscapeHTML(s.FullName), role.Display())

	rows, ok := mainMenuRows(role, s.Counts)
	if !ok {
		text = "Ваша роль не распознана. Обратитесь к администратору."
	}

	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("👤 Профиль", constants.CALLBACK_PROFILE),
		tgbotapi.NewInlineKeyboardButtonData("🚪 Выйти", constants.CALLBACK_LOGOUT),
	))

	kb := tgbotapi.NewInlineKeyboardMarkup(rows...)
	if _, err := bh.sendOrEditMessageHelper(chatID, messageID, text, &kb); err != nil {
		log.Printf("handlers: ошибка отправки главного меню chatID %d: %v", chatID, err)
	}
}

// mainMenuRows собирает разделы главного меню для роли. Второе значение
// false означает нераспознанную роль.
func mainMenuRows(role lifecycle.Role, counts session.Counts) ([][]tgbotapi.InlineKeyboardButton, bool) {
	var rows [][]tgbotapi.InlineKeyboardButton
	switch role {
	case lifecycle.RoleLogist:
		rows = append(rows,
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData(badge("📋 Активные задания", counts.LogistNew), constants.CALLBACK_TASKS_ACTIVE),
			),
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("📝 Черновики", constants.CALLBACK_DRAFTS),
				tgbotapi.NewInlineKeyboardButtonData("➕ Новый", constants.CALLBACK_DRAFT_NEW),
			),
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData(badge("🔎 Отчеты на проверку", counts.LogistReviews), constants.CALLBACK_REVIEWS),
			),
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("🗄 История", constants.CALLBACK_TASKS_HISTORY),
				tgbotapi.NewInlineKeyboardButtonData("📊 Экспорт в Excel", constants.CALLBACK_EXPORT_XLSX),
			),
		)
	case lifecycle.RoleAdmin:
		rows = append(rows,
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData(badge("📋 Все задания", counts.AdminActive), constants.CALLBACK_TASKS_ACTIVE),
			),
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("👥 Пользователи", constants.CALLBACK_ADMIN_USERS),
			),
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("🔩 Оборудование", constants.CALLBACK_ADMIN_EQUIPMENT),
				tgbotapi.NewInlineKeyboardButtonData("🔧 Виды работ", constants.CALLBACK_ADMIN_WORK_TYPES),
			),
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("📊 Экспорт в Excel", constants.CALLBACK_EXPORT_XLSX),
			),
		)
	case lifecycle.RoleMontajnik:
		rows = append(rows,
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData(badge("🆕 Доступные", counts.MontajnikAvailable), constants.CALLBACK_TASKS_AVAILABLE),
			),
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData(badge("📌 Назначенные мне", counts.MontajnikAssigned), constants.CALLBACK_TASKS_ASSIGNED),
			),
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("🔧 Мои задания", constants.CALLBACK_TASKS_MINE),
			),
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("🗄 История", constants.CALLBACK_TASKS_HISTORY),
			),
		)
	case lifecycle.RoleTechSupp:
		rows = append(rows,
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData(badge("🔎 Отчеты на проверку", counts.TechReviews), constants.CALLBACK_REVIEWS),
			),
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("🗄 История", constants.CALLBACK_TASKS_HISTORY),
			),
		)
	default:
		return nil, false
	}
	return rows, true
}

// SendProfile показывает экран профиля со счетчиками роли.
func (bh *BotHandler) SendProfile(chatID int64, messageID int) {
	s, ok := bh.requireSession(chatID, messageID)
	if !ok {
		return
	}
	counts := bh.countsSummary(s)
	kb := backKeyboard()
	if _, err := bh.sendOrEditMessageHelper(chatID, messageID, formatters.FormatProfile(s.FullName, s.Role, counts), &kb); err != nil {
		log.Printf("handlers: ошибка отправки профиля chatID %d: %v", chatID, err)
	}
}

func (bh *BotHandler) countsSummary(s session.Session) string {
	switch roleOf(s) {
	case lifecycle.RoleLogist:
		return fmt.Sprintf("Новых заданий: %d\nОтчетов на проверке: %d", s.Counts.LogistNew, s.Counts.LogistReviews)
	case lifecycle.RoleAdmin:
		return fmt.Sprintf("Активных заданий: %d", s.Counts.AdminActive)
	case lifecycle.RoleMontajnik:
		return fmt.Sprintf("Доступных заданий: %d\nНазначено вам: %d", s.Counts.MontajnikAvailable, s.Counts.MontajnikAssigned)
	case lifecycle.RoleTechSupp:
		return fmt.Sprintf("Отчетов на проверке: %d", s.Counts.TechReviews)
	}
	return ""
}

// HandleLogout снимает авторизацию и прощается.
func (bh *BotHandler) HandleLogout(chatID int64, messageID int) {
	if err := bh.Deps.SessionManager.Logout(chatID); err != nil {
		bh.sendErrorMessageHelper(chatID, messageID, err)
		return
	}
	if _, err := bh.sendOrEditMessageHelper(chatID, messageID, "Вы вышли из системы. Для входа отправьте /start.", nil); err != nil {
		log.Printf("handlers: ошибка отправки прощального сообщения chatID %d: %v", chatID, err)
	}
}
