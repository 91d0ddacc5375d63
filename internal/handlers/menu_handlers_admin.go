package handlers

import (
	"context"
	"fmt"
	"log"
	"time"

	tgbotapi "github.com/OvyFlash/telegram-bot-api"
	"github.com/xuri/excelize/v2"

	"montajbot/internal/constants"
	"montajbot/internal/lifecycle"
	"montajbot/internal/models"
	"montajbot/internal/session"
	"montajbot/internal/utils"
)

const (
	screenUsers     = "users"
	screenEquipment = "equipment"
	screenWorkTypes = "worktypes"
)

// --- Пользователи ---

// SendUsersList показывает пользователей системы с переключателями
// активности.
func (bh *BotHandler) SendUsersList(chatID int64, messageID int, page int) {
	s, ok := bh.requireSession(chatID, messageID)
	if !ok {
		return
	}
	users, err := bh.apiFor(s).Users(context.Background())
	if err != nil {
		bh.sendErrorMessageHelper(chatID, messageID, err)
		return
	}

	var rows [][]tgbotapi.InlineKeyboardButton
	start, end := pageSlice(len(users), page)
	for _, u := range users[start:end] {
		mark := "🔴"
		if u.IsActive {
			mark = "🟢"
		}
		label := fmt.Sprintf("%s %s · %s", mark, u.FullName(), constants.RoleDisplayMap[u.Role])
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label,
				fmt.Sprintf("%s%d", constants.CALLBACK_PREFIX_USER_TOGGLE, u.ID))))
	}
	if row := paginationRow(screenUsers, page, len(users)); row != nil {
		rows = append(rows, row)
	}
	rows = append(rows,
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("➕ Новый пользователь", constants.CALLBACK_ADMIN_USER_NEW)),
		backRow(),
	)

	text := "👥 <b>Пользователи</b>\nНажатие на пользователя включает или отключает его."
	kb := tgbotapi.NewInlineKeyboardMarkup(rows...)
	if _, err := bh.sendOrEditMessageHelper(chatID, messageID, text, &kb); err != nil {
		log.Printf("handlers: ошибка отправки списка пользователей chatID %d: %v", chatID, err)
	}
}

// HandleToggleUser включает или отключает пользователя.
func (bh *BotHandler) HandleToggleUser(chatID int64, messageID int, userID int64) {
	s, ok := bh.requireSession(chatID, messageID)
	if !ok {
		return
	}
	ctx := context.Background()
	api := bh.apiFor(s)

	users, err := api.Users(ctx)
	if err != nil {
		bh.sendErrorMessageHelper(chatID, messageID, err)
		return
	}
	for _, u := range users {
		if u.ID != userID {
			continue
		}
		active := !u.IsActive
		if _, err := api.UpdateUser(ctx, userID, models.UserPayload{IsActive: &active}); err != nil {
			bh.sendErrorMessageHelper(chatID, messageID, err)
			return
		}
		break
	}
	bh.SendUsersList(chatID, messageID, 0)
}

// StartUserCreation начинает пошаговое создание пользователя.
func (bh *BotHandler) StartUserCreation(chatID int64, messageID int) {
	if _, ok := bh.requireSession(chatID, messageID); !ok {
		return
	}
	bh.Deps.SessionManager.UpdateTempAdmin(chatID, session.TempAdminData{MessageID: messageID})
	bh.Deps.SessionManager.SetState(chatID, constants.STATE_ADMIN_USER_LOGIN)
	kb := backKeyboard()
	if _, err := bh.sendOrEditMessageHelper(chatID, messageID, "👥 Новый пользователь.\nВведите логин:", &kb); err != nil {
		log.Printf("handlers: ошибка запроса логина chatID %d: %v", chatID, err)
	}
}

// handleAdminUserInput — текстовые шаги создания пользователя.
func (bh *BotHandler) handleAdminUserInput(chatID int64, s session.Session, state, text string) {
	temp := bh.Deps.SessionManager.GetTempAdmin(chatID)
	kb := backKeyboard()

	switch state {
	case constants.STATE_ADMIN_USER_LOGIN:
		temp.User.Login = text
		bh.Deps.SessionManager.UpdateTempAdmin(chatID, temp)
		bh.Deps.SessionManager.SetState(chatID, constants.STATE_ADMIN_USER_NAME)
		bh.sendOrEditMessageHelper(chatID, temp.MessageID, "Введите имя:", &kb)

	case constants.STATE_ADMIN_USER_NAME:
		temp.User.Name = text
		bh.Deps.SessionManager.UpdateTempAdmin(chatID, temp)
		bh.Deps.SessionManager.SetState(chatID, constants.STATE_ADMIN_USER_LASTNAME)
		bh.sendOrEditMessageHelper(chatID, temp.MessageID, "Введите фамилию:", &kb)

	case constants.STATE_ADMIN_USER_LASTNAME:
		temp.User.Lastname = text
		bh.Deps.SessionManager.UpdateTempAdmin(chatID, temp)
		bh.Deps.SessionManager.SetState(chatID, constants.STATE_ADMIN_USER_ROLE)
		roleKb := tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("Логист", constants.CALLBACK_PREFIX_USER_ROLE+constants.ROLE_LOGIST),
				tgbotapi.NewInlineKeyboardButtonData("Монтажник", constants.CALLBACK_PREFIX_USER_ROLE+constants.ROLE_MONTAJNIK)),
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("Техподдержка", constants.CALLBACK_PREFIX_USER_ROLE+constants.ROLE_TECHSUPP),
				tgbotapi.NewInlineKeyboardButtonData("Администратор", constants.CALLBACK_PREFIX_USER_ROLE+constants.ROLE_ADMIN)),
			backRow(),
		)
		bh.sendOrEditMessageHelper(chatID, temp.MessageID, "Выберите роль:", &roleKb)
	}
}

// HandleUserRoleChosen завершает создание пользователя выбранной ролью.
func (bh *BotHandler) HandleUserRoleChosen(chatID int64, messageID int, role string) {
	s, ok := bh.requireSession(chatID, messageID)
	if !ok {
		return
	}
	if _, err := lifecycle.ParseRole(role); err != nil {
		bh.sendErrorMessageHelper(chatID, messageID, err)
		return
	}
	temp := bh.Deps.SessionManager.GetTempAdmin(chatID)
	temp.User.Role = role
	active := true
	temp.User.IsActive = &active

	if _, err := bh.apiFor(s).CreateUser(context.Background(), temp.User); err != nil {
		bh.sendErrorMessageHelper(chatID, messageID, err)
		return
	}
	bh.Deps.SessionManager.ClearTempAdmin(chatID)
	bh.Deps.SessionManager.ClearState(chatID)
	bh.SendUsersList(chatID, messageID, 0)
}

// --- Справочники ---

// SendEquipmentList показывает каталог оборудования.
func (bh *BotHandler) SendEquipmentList(chatID int64, messageID int, page int) {
	s, ok := bh.requireSession(chatID, messageID)
	if !ok {
		return
	}
	catalog, err := bh.apiFor(s).EquipmentCatalog(context.Background())
	if err != nil {
		bh.sendErrorMessageHelper(chatID, messageID, err)
		return
	}

	var rows [][]tgbotapi.InlineKeyboardButton
	start, end := pageSlice(len(catalog), page)
	for _, eq := range catalog[start:end] {
		label := eq.Name
		if eq.Price > 0 {
			label += " · " + utils.FormatMoney(eq.Price)
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label,
				fmt.Sprintf("%s%d", constants.CALLBACK_PREFIX_EQUIP_PRICE, eq.ID)),
			tgbotapi.NewInlineKeyboardButtonData("🗑",
				fmt.Sprintf("%s%d", constants.CALLBACK_PREFIX_EQUIP_DELETE, eq.ID))))
	}
	if row := paginationRow(screenEquipment, page, len(catalog)); row != nil {
		rows = append(rows, row)
	}
	rows = append(rows,
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("➕ Добавить", constants.CALLBACK_ADMIN_EQUIP_NEW)),
		backRow(),
	)

	text := "🔩 <b>Оборудование</b>\nНажатие на позицию меняет цену, 🗑 удаляет."
	kb := tgbotapi.NewInlineKeyboardMarkup(rows...)
	if _, err := bh.sendOrEditMessageHelper(chatID, messageID, text, &kb); err != nil {
		log.Printf("handlers: ошибка отправки каталога оборудования chatID %d: %v", chatID, err)
	}
}

// SendWorkTypesList показывает каталог видов работ.
func (bh *BotHandler) SendWorkTypesList(chatID int64, messageID int, page int) {
	s, ok := bh.requireSession(chatID, messageID)
	if !ok {
		return
	}
	catalog, err := bh.apiFor(s).WorkTypes(context.Background())
	if err != nil {
		bh.sendErrorMessageHelper(chatID, messageID, err)
		return
	}

	var rows [][]tgbotapi.InlineKeyboardButton
	start, end := pageSlice(len(catalog), page)
	for _, wt := range catalog[start:end] {
		label := wt.Name
		if wt.RequiresTechReview {
			label += " · 🔎 техпроверка"
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label,
				fmt.Sprintf("%s%d", constants.CALLBACK_PREFIX_WORKTYPE_FLAG, wt.ID)),
			tgbotapi.NewInlineKeyboardButtonData("🗑",
				fmt.Sprintf("%s%d", constants.CALLBACK_PREFIX_WORKTYPE_DEL, wt.ID))))
	}
	if row := paginationRow(screenWorkTypes, page, len(catalog)); row != nil {
		rows = append(rows, row)
	}
	rows = append(rows,
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("➕ Добавить", constants.CALLBACK_ADMIN_WORKTYPE_NEW)),
		backRow(),
	)

	text := "🔧 <b>Виды работ</b>\nНажатие на позицию переключает флаг техпроверки, 🗑 удаляет."
	kb := tgbotapi.NewInlineKeyboardMarkup(rows...)
	if _, err := bh.sendOrEditMessageHelper(chatID, messageID, text, &kb); err != nil {
		log.Printf("handlers: ошибка отправки каталога видов работ chatID %d: %v", chatID, err)
	}
}

// HandleDeleteEquipment удаляет позицию оборудования.
func (bh *BotHandler) HandleDeleteEquipment(chatID int64, messageID int, id int64) {
	s, ok := bh.requireSession(chatID, messageID)
	if !ok {
		return
	}
	if err := bh.apiFor(s).DeleteEquipment(context.Background(), id); err != nil {
		bh.sendErrorMessageHelper(chatID, messageID, err)
		return
	}
	bh.SendEquipmentList(chatID, messageID, 0)
}

// HandleDeleteWorkType удаляет вид работ.
func (bh *BotHandler) HandleDeleteWorkType(chatID int64, messageID int, id int64) {
	s, ok := bh.requireSession(chatID, messageID)
	if !ok {
		return
	}
	if err := bh.apiFor(s).DeleteWorkType(context.Background(), id); err != nil {
		bh.sendErrorMessageHelper(chatID, messageID, err)
		return
	}
	bh.SendWorkTypesList(chatID, messageID, 0)
}

// HandleEquipmentPriceEdit запрашивает новую цену позиции оборудования.
func (bh *BotHandler) HandleEquipmentPriceEdit(chatID int64, messageID int, id int64) {
	if _, ok := bh.requireSession(chatID, messageID); !ok {
		return
	}
	bh.Deps.SessionManager.UpdateTempAdmin(chatID, session.TempAdminData{CatalogID: id, MessageID: messageID})
	bh.Deps.SessionManager.SetState(chatID, constants.STATE_ADMIN_EQUIPMENT_EDIT)
	kb := backKeyboard()
	bh.sendOrEditMessageHelper(chatID, messageID, "Введите новую цену, ₽:", &kb)
}

// HandleWorkTypeTechToggle переключает флаг техпроверки вида работ.
func (bh *BotHandler) HandleWorkTypeTechToggle(chatID int64, messageID int, id int64) {
	s, ok := bh.requireSession(chatID, messageID)
	if !ok {
		return
	}
	ctx := context.Background()
	api := bh.apiFor(s)

	catalog, err := api.WorkTypes(ctx)
	if err != nil {
		bh.sendErrorMessageHelper(chatID, messageID, err)
		return
	}
	for _, wt := range catalog {
		if wt.ID != id {
			continue
		}
		flag := !wt.RequiresTechReview
		if _, err := api.UpdateWorkType(ctx, id, models.CatalogPayload{RequiresTechReview: &flag}); err != nil {
			bh.sendErrorMessageHelper(chatID, messageID, err)
			return
		}
		break
	}
	bh.SendWorkTypesList(chatID, messageID, 0)
}

// StartEquipmentCreation начинает добавление позиции оборудования.
func (bh *BotHandler) StartEquipmentCreation(chatID int64, messageID int) {
	if _, ok := bh.requireSession(chatID, messageID); !ok {
		return
	}
	bh.Deps.SessionManager.UpdateTempAdmin(chatID, session.TempAdminData{MessageID: messageID})
	bh.Deps.SessionManager.SetState(chatID, constants.STATE_ADMIN_EQUIPMENT_NAME)
	kb := backKeyboard()
	bh.sendOrEditMessageHelper(chatID, messageID, "🔩 Новая позиция оборудования.\nВведите название:", &kb)
}

// StartWorkTypeCreation начинает добавление вида работ.
func (bh *BotHandler) StartWorkTypeCreation(chatID int64, messageID int) {
	if _, ok := bh.requireSession(chatID, messageID); !ok {
		return
	}
	bh.Deps.SessionManager.UpdateTempAdmin(chatID, session.TempAdminData{MessageID: messageID})
	bh.Deps.SessionManager.SetState(chatID, constants.STATE_ADMIN_WORKTYPE_NAME)
	kb := backKeyboard()
	bh.sendOrEditMessageHelper(chatID, messageID, "🔧 Новый вид работ.\nВведите название:", &kb)
}

// handleAdminCatalogInput — текстовые шаги добавления позиций справочников.
func (bh *BotHandler) handleAdminCatalogInput(chatID int64, s session.Session, state, text string) {
	temp := bh.Deps.SessionManager.GetTempAdmin(chatID)
	kb := backKeyboard()

	switch state {
	case constants.STATE_ADMIN_EQUIPMENT_NAME:
		temp.Catalog.Name = text
		bh.Deps.SessionManager.UpdateTempAdmin(chatID, temp)
		bh.Deps.SessionManager.SetState(chatID, constants.STATE_ADMIN_EQUIPMENT_PRICE)
		bh.sendOrEditMessageHelper(chatID, temp.MessageID, "Введите цену, ₽:", &kb)

	case constants.STATE_ADMIN_EQUIPMENT_PRICE:
		price, err := utils.ParsePrice(text)
		if err != nil {
			bh.draftInputRetry(chatID, "Не удалось разобрать сумму. Введите число:")
			return
		}
		temp.Catalog.Price = price
		if _, err := bh.apiFor(s).CreateEquipment(context.Background(), temp.Catalog); err != nil {
			bh.sendErrorMessageHelper(chatID, temp.MessageID, err)
			return
		}
		bh.Deps.SessionManager.ClearTempAdmin(chatID)
		bh.Deps.SessionManager.ClearState(chatID)
		bh.SendEquipmentList(chatID, temp.MessageID, 0)

	case constants.STATE_ADMIN_EQUIPMENT_EDIT:
		price, err := utils.ParsePrice(text)
		if err != nil {
			bh.draftInputRetry(chatID, "Не удалось разобрать сумму. Введите число:")
			return
		}
		if _, err := bh.apiFor(s).UpdateEquipment(context.Background(), temp.CatalogID, models.CatalogPayload{Price: price}); err != nil {
			bh.sendErrorMessageHelper(chatID, temp.MessageID, err)
			return
		}
		bh.Deps.SessionManager.ClearTempAdmin(chatID)
		bh.Deps.SessionManager.ClearState(chatID)
		bh.SendEquipmentList(chatID, temp.MessageID, 0)

	case constants.STATE_ADMIN_WORKTYPE_NAME:
		temp.Catalog.Name = text
		bh.Deps.SessionManager.UpdateTempAdmin(chatID, temp)
		bh.Deps.SessionManager.SetState(chatID, constants.STATE_ADMIN_WORKTYPE_PRICE)
		bh.sendOrEditMessageHelper(chatID, temp.MessageID, "Введите цену, ₽:", &kb)

	case constants.STATE_ADMIN_WORKTYPE_PRICE:
		price, err := utils.ParsePrice(text)
		if err != nil {
			bh.draftInputRetry(chatID, "Не удалось разобрать сумму. Введите число:")
			return
		}
		temp.Catalog.Price = price
		bh.Deps.SessionManager.UpdateTempAdmin(chatID, temp)
		techKb := tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("Да", constants.CALLBACK_WORKTYPE_TECH_YES),
				tgbotapi.NewInlineKeyboardButtonData("Нет", constants.CALLBACK_WORKTYPE_TECH_NO)),
			backRow(),
		)
		bh.sendOrEditMessageHelper(chatID, temp.MessageID,
			"Требуется ли согласование отчета техподдержкой для этого вида работ?", &techKb)
	}
}

// HandleWorkTypeTechChoice завершает добавление вида работ.
func (bh *BotHandler) HandleWorkTypeTechChoice(chatID int64, messageID int, requiresTech bool) {
	s, ok := bh.requireSession(chatID, messageID)
	if !ok {
		return
	}
	temp := bh.Deps.SessionManager.GetTempAdmin(chatID)
	temp.Catalog.RequiresTechReview = &requiresTech

	if _, err := bh.apiFor(s).CreateWorkType(context.Background(), temp.Catalog); err != nil {
		bh.sendErrorMessageHelper(chatID, messageID, err)
		return
	}
	bh.Deps.SessionManager.ClearTempAdmin(chatID)
	bh.Deps.SessionManager.ClearState(chatID)
	bh.SendWorkTypesList(chatID, messageID, 0)
}

// --- Экспорт ---

// HandleExportXlsx выгружает все задания в Excel и отправляет файл в чат.
func (bh *BotHandler) HandleExportXlsx(chatID int64, messageID int) {
	s, ok := bh.requireSession(chatID, messageID)
	if !ok {
		return
	}
	ctx := context.Background()

	list, err := bh.apiFor(s).ListTasks(ctx, roleOf(s))
	if err != nil {
		bh.sendErrorMessageHelper(chatID, messageID, err)
		return
	}
	refs := bh.loadRefs(ctx, s)

	f := excelize.NewFile()
	sheetName := "Задания"
	index, _ := f.NewSheet(sheetName)
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headers := []string{"ID", "Статус", "Компания", "ТС", "Госномер", "Когда", "Адрес", "Стоимость", "Вознаграждение", "Назначение", "Исполнитель"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, header)
	}

	rowIndex := 2
	for _, t := range list.Items {
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", rowIndex), t.ID)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", rowIndex), constants.StatusDisplayMap[t.Status])
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", rowIndex), refs.Companies[t.CompanyID])
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", rowIndex), t.VehicleInfo)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", rowIndex), t.GosNumber)
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", rowIndex), utils.FormatDateTime(t.ScheduledAt))
		f.SetCellValue(sheetName, fmt.Sprintf("G%d", rowIndex), t.Location)
		f.SetCellValue(sheetName, fmt.Sprintf("H%d", rowIndex), t.ClientPrice)
		f.SetCellValue(sheetName, fmt.Sprintf("I%d", rowIndex), t.MontajnikReward)
		f.SetCellValue(sheetName, fmt.Sprintf("J%d", rowIndex), t.AssignmentType)
		f.SetCellValue(sheetName, fmt.Sprintf("K%d", rowIndex), refs.Users[t.AssignedUserID])
		rowIndex++
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		bh.sendErrorMessageHelper(chatID, messageID, err)
		return
	}

	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{
		Name:  fmt.Sprintf("tasks_%s.xlsx", time.Now().Format("20060102_150405")),
		Bytes: buf.Bytes(),
	})
	doc.Caption = fmt.Sprintf("Выгрузка заданий на %s", time.Now().Format("02.01.2006"))
	if _, err := bh.Deps.BotClient.Send(doc); err != nil {
		log.Printf("handlers: ошибка отправки Excel файла chatID %d: %v", chatID, err)
	}
}
