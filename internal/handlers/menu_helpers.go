package handlers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync"

	tgbotapi "github.com/OvyFlash/telegram-bot-api"

	"montajbot/internal/backend"
	"montajbot/internal/constants"
	"montajbot/internal/formatters"
	"montajbot/internal/lifecycle"
	"montajbot/internal/models"
	"montajbot/internal/session"
	"montajbot/internal/telegram_api"
)

// --- Вспомогательные функции отправки сообщений ---

// sendOrEditMessageHelper отправляет или редактирует главное сообщение экрана.
func (bh *BotHandler) sendOrEditMessageHelper(chatID int64, messageIDToTryEdit int, text string, keyboard *tgbotapi.InlineKeyboardMarkup) (tgbotapi.Message, error) {
	return telegram_api.SendOrEditMessage(bh.Deps.BotClient, chatID, messageIDToTryEdit, text, keyboard)
}

// sendErrorMessageHelper показывает пользователю ошибку. Текст ошибки бэкенда
// (APIError.Detail) показываем дословно: бэкенд формулирует причины отказа
// по-человечески. Остальное прячем за общей фразой, подробности в логе.
func (bh *BotHandler) sendErrorMessageHelper(chatID int64, messageIDToTryEdit int, err error) {
	text := "⚠️ Произошла ошибка. Попробуйте еще раз или начните с /start."
	var apiErr *backend.APIError
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		text = "⚠️ " + apiErr.Detail
	}
	log.Printf("handlers: ошибка для chatID %d: %v", chatID, err)
	kb := backKeyboard()
	if _, sendErr := bh.sendOrEditMessageHelper(chatID, messageIDToTryEdit, text, &kb); sendErr != nil {
		log.Printf("handlers: не удалось отправить сообщение об ошибке chatID %d: %v", chatID, sendErr)
	}
}

// answerCallback закрывает «часики» на кнопке; опциональный текст
// показывается всплывашкой.
func (bh *BotHandler) answerCallback(queryID, text string) {
	cb := tgbotapi.NewCallback(queryID, text)
	if _, err := bh.Deps.BotClient.Request(cb); err != nil {
		log.Printf("handlers: ошибка ответа на коллбэк: %v", err)
	}
}

// requireSession возвращает сессию чата либо просит авторизоваться.
func (bh *BotHandler) requireSession(chatID int64, messageID int) (session.Session, bool) {
	s, ok := bh.Deps.SessionManager.Get(chatID)
	if !ok {
		text := "Вы не авторизованы. Отправьте /start для входа."
		if _, err := bh.sendOrEditMessageHelper(chatID, messageID, text, nil); err != nil {
			log.Printf("handlers: ошибка отправки приглашения авторизоваться chatID %d: %v", chatID, err)
		}
		return session.Session{}, false
	}
	return s, true
}

// roleOf переводит строку роли сессии в типизированную роль.
func roleOf(s session.Session) lifecycle.Role {
	r, err := lifecycle.ParseRole(s.Role)
	if err != nil {
		log.Printf("handlers: неизвестная роль %q у chatID %d", s.Role, s.ChatID)
	}
	return r
}

// --- Клавиатуры ---

func backKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🏠 В меню", constants.CALLBACK_BACK_MAIN),
		),
	)
}

func backRow() []tgbotapi.InlineKeyboardButton {
	return tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("🏠 В меню", constants.CALLBACK_BACK_MAIN),
	)
}

// paginationRow строит строку листания для экрана. total и page считаются
// в элементах и страницах размера PAGE_SIZE.
func paginationRow(screen string, page, total int) []tgbotapi.InlineKeyboardButton {
	pages := (total + constants.PAGE_SIZE - 1) / constants.PAGE_SIZE
	if pages <= 1 {
		return nil
	}
	var row []tgbotapi.InlineKeyboardButton
	if page > 0 {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData("⬅️",
			fmt.Sprintf("%s%s_%d", constants.CALLBACK_PREFIX_PAGE, screen, page-1)))
	}
	row = append(row, tgbotapi.NewInlineKeyboardButtonData(
		fmt.Sprintf("%d/%d", page+1, pages), constants.CALLBACK_NOOP))
	if page < pages-1 {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData("➡️",
			fmt.Sprintf("%s%s_%d", constants.CALLBACK_PREFIX_PAGE, screen, page+1)))
	}
	return row
}

// pageSlice возвращает границы страницы page для списка длины n.
func pageSlice(n, page int) (int, int) {
	start := page * constants.PAGE_SIZE
	if start >= n {
		start = 0
	}
	end := start + constants.PAGE_SIZE
	if end > n {
		end = n
	}
	return start, end
}

// --- Разбор callback data ---

// parseIDSuffix извлекает один числовой id из data вида <префикс><id>.
func parseIDSuffix(data, prefix string) (int64, error) {
	raw := strings.TrimPrefix(data, prefix)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("некорректный id в callback data %q: %w", data, err)
	}
	return id, nil
}

// parseTwoIDs извлекает пару id из data вида <префикс><a>_<b>.
func parseTwoIDs(data, prefix string) (int64, int64, error) {
	raw := strings.TrimPrefix(data, prefix)
	parts := strings.SplitN(raw, "_", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("некорректная callback data %q", data)
	}
	a, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("некорректная callback data %q: %w", data, err)
	}
	b, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("некорректная callback data %q: %w", data, err)
	}
	return a, b, nil
}

// --- Справочные подстановки ---

// loadRefs собирает подстановки id -> название для карточек. Справочники
// независимы, поэтому грузятся параллельно; ошибка любого из них не
// фатальна, карточка просто покажет id вместо названия.
func (bh *BotHandler) loadRefs(ctx context.Context, s session.Session) formatters.Refs {
	api := bh.apiFor(s)
	refs := formatters.Refs{
		Companies: map[int64]string{},
		Equipment: map[int64]string{},
		WorkTypes: map[int64]string{},
		Users:     map[int64]string{},
	}

	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		companies, err := api.Companies(ctx)
		if err != nil {
			log.Printf("handlers: справочник компаний недоступен: %v", err)
			return
		}
		for _, co := range companies {
			refs.Companies[co.ID] = co.Name
		}
	}()
	go func() {
		defer wg.Done()
		equipment, err := api.EquipmentCatalog(ctx)
		if err != nil {
			log.Printf("handlers: справочник оборудования недоступен: %v", err)
			return
		}
		for _, eq := range equipment {
			refs.Equipment[eq.ID] = eq.Name
		}
	}()
	go func() {
		defer wg.Done()
		workTypes, err := api.WorkTypes(ctx)
		if err != nil {
			log.Printf("handlers: справочник видов работ недоступен: %v", err)
			return
		}
		for _, wt := range workTypes {
			refs.WorkTypes[wt.ID] = wt.Name
		}
	}()

	role := roleOf(s)
	if role == lifecycle.RoleLogist || role == lifecycle.RoleAdmin {
		wg.Add(1)
		go func() {
			defer wg.Done()
			var (
				users []models.User
				err   error
			)
			if role == lifecycle.RoleLogist {
				users, err = api.Montajniks(ctx)
			} else {
				users, err = api.Users(ctx)
			}
			if err != nil {
				log.Printf("handlers: список пользователей недоступен: %v", err)
				return
			}
			for _, u := range users {
				refs.Users[u.ID] = u.FullName()
			}
		}()
	}

	wg.Wait()
	return refs
}

// contactRefs дополняет подстановки контактами компании задания.
// Контакты живут по компаниям, поэтому в общий loadRefs не входят.
func (bh *BotHandler) contactRefs(ctx context.Context, s session.Session, refs formatters.Refs, companyID int64) formatters.Refs {
	if companyID == 0 {
		return refs
	}
	contacts, err := bh.apiFor(s).ContactPersons(ctx, companyID)
	if err != nil {
		log.Printf("handlers: контакты компании %d недоступны: %v", companyID, err)
		return refs
	}
	refs.Contacts = map[int64]string{}
	for _, cp := range contacts {
		refs.Contacts[cp.ID] = cp.Name
	}
	return refs
}

// workTypeCatalog возвращает справочник видов работ (для определения
// необходимости техсогласования).
func (bh *BotHandler) workTypeCatalog(ctx context.Context, s session.Session) []models.WorkType {
	catalog, err := bh.apiFor(s).WorkTypes(ctx)
	if err != nil {
		log.Printf("handlers: справочник видов работ недоступен: %v", err)
		return nil
	}
	return catalog
}
