package handlers

import (
	"context"
	"fmt"
	"log"
	"strings"

	tgbotapi "github.com/OvyFlash/telegram-bot-api"

	"montajbot/internal/constants"
	"montajbot/internal/formatters"
	"montajbot/internal/models"
	"montajbot/internal/session"
	"montajbot/internal/utils"
)

// Пошаговая сборка черновика логистом. Временные данные живут в сессии,
// на бэкенд черновик уезжает один раз, по кнопке сохранения.

// StartDraftFlow начинает сборку нового черновика либо редактирование
// существующего (draftID != 0).
func (bh *BotHandler) StartDraftFlow(chatID int64, messageID int, draftID int64) {
	s, ok := bh.requireSession(chatID, messageID)
	if !ok {
		return
	}

	temp := session.TempDraftData{MessageID: messageID}
	if draftID != 0 {
		draft, err := bh.apiFor(s).GetDraft(context.Background(), draftID)
		if err != nil {
			bh.sendErrorMessageHelper(chatID, messageID, err)
			return
		}
		temp.DraftID = draft.ID
		temp.Payload = draft.TaskPayload
	}
	bh.Deps.SessionManager.UpdateTempDraft(chatID, temp)
	bh.Deps.SessionManager.SetState(chatID, constants.STATE_DRAFT_COMPANY)
	bh.promptDraftStep(chatID, s)
}

// promptDraftStep рисует экран текущего шага сборки.
func (bh *BotHandler) promptDraftStep(chatID int64, s session.Session) {
	state := bh.Deps.SessionManager.GetState(chatID)
	temp := bh.Deps.SessionManager.GetTempDraft(chatID)
	ctx := context.Background()
	api := bh.apiFor(s)

	var (
		text string
		rows [][]tgbotapi.InlineKeyboardButton
	)

	switch state {
	case constants.STATE_DRAFT_COMPANY:
		text = "🏢 Шаг 1. Выберите компанию-заказчика:"
		companies, err := api.Companies(ctx)
		if err != nil {
			bh.sendErrorMessageHelper(chatID, temp.MessageID, err)
			return
		}
		for _, co := range companies {
			rows = append(rows, tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData(co.Name,
					fmt.Sprintf("%s%d", constants.CALLBACK_PREFIX_DRAFT_COMPANY, co.ID))))
		}

	case constants.STATE_DRAFT_CONTACT:
		text = "👤 Шаг 2. Выберите контактное лицо:"
		contacts, err := api.ContactPersons(ctx, temp.Payload.CompanyID)
		if err != nil {
			bh.sendErrorMessageHelper(chatID, temp.MessageID, err)
			return
		}
		for _, cp := range contacts {
			rows = append(rows, tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData(cp.Name,
					fmt.Sprintf("%s%d", constants.CALLBACK_PREFIX_DRAFT_CONTACT, cp.ID))))
		}
		rows = append(rows, skipRow())

	case constants.STATE_DRAFT_VEHICLE:
		text = "🚚 Шаг 3. Введите марку и модель ТС:"
		rows = append(rows, skipRow())
	case constants.STATE_DRAFT_GOS_NUMBER:
		text = "🔢 Шаг 4. Введите госномер ТС (например, А123ВС77):"
		rows = append(rows, skipRow())
	case constants.STATE_DRAFT_DATE:
		text = "🗓 Шаг 5. Когда выполнить? Введите дату и время (ДД.ММ.ГГГГ ЧЧ:ММ):"
		rows = append(rows, skipRow())
	case constants.STATE_DRAFT_LOCATION:
		text = "📍 Шаг 6. Введите адрес объекта:"
		rows = append(rows, skipRow())
	case constants.STATE_DRAFT_COMMENT:
		text = "💬 Шаг 7. Комментарий для монтажника:"
		rows = append(rows, skipRow())
	case constants.STATE_DRAFT_CLIENT_PRICE:
		text = "💰 Шаг 8. Стоимость для клиента, ₽:"
		rows = append(rows, skipRow())
	case constants.STATE_DRAFT_REWARD:
		text = "💰 Шаг 9. Вознаграждение монтажника, ₽:"
		rows = append(rows, skipRow())

	case constants.STATE_DRAFT_EQUIPMENT:
		text = "🔩 Шаг 10. Отметьте оборудование (повторное нажатие добавляет еще единицу):"
		text += equipmentSummary(temp.Payload.Equipment)
		catalog, err := api.EquipmentCatalog(ctx)
		if err != nil {
			bh.sendErrorMessageHelper(chatID, temp.MessageID, err)
			return
		}
		counts := map[int64]int{}
		for _, eq := range temp.Payload.Equipment {
			counts[eq.EquipmentID] = eq.Quantity
		}
		for _, eq := range catalog {
			label := eq.Name
			if n := counts[eq.ID]; n > 0 {
				label = fmt.Sprintf("%s ×%d", eq.Name, n)
			}
			rows = append(rows, tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData(label,
					fmt.Sprintf("%s%d", constants.CALLBACK_PREFIX_DRAFT_EQUIP, eq.ID))))
		}
		rows = append(rows, doneRow())

	case constants.STATE_DRAFT_WORK_TYPES:
		text = "🔧 Шаг 11. Отметьте виды работ:"
		catalog := bh.workTypeCatalog(ctx, s)
		counts := map[int64]int{}
		for _, wt := range temp.Payload.WorkTypes {
			counts[wt.WorkTypeID] = wt.Quantity
		}
		for _, wt := range catalog {
			label := wt.Name
			if n := counts[wt.ID]; n > 0 {
				label = fmt.Sprintf("%s ×%d", wt.Name, n)
			}
			rows = append(rows, tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData(label,
					fmt.Sprintf("%s%d", constants.CALLBACK_PREFIX_DRAFT_WORKTYPE, wt.ID))))
		}
		rows = append(rows, doneRow())

	case constants.STATE_DRAFT_ASSIGNMENT:
		text = "📌 Шаг 12. Кому назначить задание?"
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📢 Всем монтажникам", constants.CALLBACK_DRAFT_BROADCAST)))
		montajniks, err := api.Montajniks(ctx)
		if err != nil {
			log.Printf("handlers: список монтажников недоступен: %v", err)
		}
		for _, u := range montajniks {
			rows = append(rows, tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("👤 "+u.FullName(),
					fmt.Sprintf("%s%d", constants.CALLBACK_PREFIX_DRAFT_ASSIGNEE, u.ID))))
		}

	case constants.STATE_DRAFT_CONFIRM:
		refs := bh.contactRefs(ctx, s, bh.loadRefs(ctx, s), temp.Payload.CompanyID)
		preview := models.Draft{ID: temp.DraftID, TaskPayload: temp.Payload}
		text = formatters.FormatDraftCard(preview, refs) + "\n\nВсё верно?"
		photoLabel := "📷 Фотоотчет: не обязателен"
		if temp.Payload.PhotoRequired {
			photoLabel = "📷 Фотоотчет: обязателен"
		}
		rows = append(rows,
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData(photoLabel, constants.CALLBACK_DRAFT_PHOTO_TOGGLE)),
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("💾 Сохранить", constants.CALLBACK_DRAFT_SAVE),
				tgbotapi.NewInlineKeyboardButtonData("🚀 Опубликовать", constants.CALLBACK_DRAFT_PUBLISH_NOW)),
		)

	default:
		log.Printf("handlers: promptDraftStep вызван вне сборки черновика, state=%q chatID=%d", state, chatID)
		return
	}

	controls := tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("✖️ Отменить", constants.CALLBACK_DRAFT_CANCEL))
	if state != constants.STATE_DRAFT_COMPANY {
		controls = append(tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⬅️ Назад", constants.CALLBACK_DRAFT_BACK)), controls...)
	}
	rows = append(rows, controls)

	kb := tgbotapi.NewInlineKeyboardMarkup(rows...)
	sent, err := bh.sendOrEditMessageHelper(chatID, temp.MessageID, text, &kb)
	if err != nil {
		log.Printf("handlers: ошибка отрисовки шага черновика chatID %d: %v", chatID, err)
		return
	}
	if sent.MessageID != 0 && sent.MessageID != temp.MessageID {
		temp = bh.Deps.SessionManager.GetTempDraft(chatID)
		temp.MessageID = sent.MessageID
		bh.Deps.SessionManager.UpdateTempDraft(chatID, temp)
	}
}

func skipRow() []tgbotapi.InlineKeyboardButton {
	return tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("⏩ Пропустить", constants.CALLBACK_DRAFT_SKIP))
}

func doneRow() []tgbotapi.InlineKeyboardButton {
	return tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("✔️ Готово", constants.CALLBACK_DRAFT_STEP_DONE))
}

func equipmentSummary(items []models.TaskEquipment) string {
	if len(items) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("\nВыбрано позиций: ")
	total := 0
	for _, it := range items {
		total += it.Quantity
	}
	fmt.Fprintf(&b, "%d", total)
	return b.String()
}

// draftStepOrder — порядок шагов сборки; по нему идет продвижение вперед.
var draftStepOrder = []string{
	constants.STATE_DRAFT_COMPANY,
	constants.STATE_DRAFT_CONTACT,
	constants.STATE_DRAFT_VEHICLE,
	constants.STATE_DRAFT_GOS_NUMBER,
	constants.STATE_DRAFT_DATE,
	constants.STATE_DRAFT_LOCATION,
	constants.STATE_DRAFT_COMMENT,
	constants.STATE_DRAFT_CLIENT_PRICE,
	constants.STATE_DRAFT_REWARD,
	constants.STATE_DRAFT_EQUIPMENT,
	constants.STATE_DRAFT_WORK_TYPES,
	constants.STATE_DRAFT_ASSIGNMENT,
	constants.STATE_DRAFT_CONFIRM,
}

// advanceDraftStep переводит диалог на следующий шаг и рисует его.
func (bh *BotHandler) advanceDraftStep(chatID int64, s session.Session) {
	state := bh.Deps.SessionManager.GetState(chatID)
	for i, st := range draftStepOrder {
		if st == state && i+1 < len(draftStepOrder) {
			bh.Deps.SessionManager.SetState(chatID, draftStepOrder[i+1])
			bh.promptDraftStep(chatID, s)
			return
		}
	}
	bh.Deps.SessionManager.SetState(chatID, constants.STATE_DRAFT_CONFIRM)
	bh.promptDraftStep(chatID, s)
}

// handleDraftStepBack откатывает сборку на предыдущий шаг по истории
// состояний.
func (bh *BotHandler) handleDraftStepBack(chatID int64, s session.Session) {
	prev := bh.Deps.SessionManager.PopState(chatID)
	if !isDraftState(prev) {
		bh.handleDraftCancel(chatID, s)
		return
	}
	bh.promptDraftStep(chatID, s)
}

// isDraftState сообщает, относится ли состояние к сборке черновика.
func isDraftState(state string) bool {
	for _, st := range draftStepOrder {
		if st == state {
			return true
		}
	}
	return false
}

// handleDraftTextInput обрабатывает текстовый ввод шагов сборки.
// Невалидный ввод не продвигает шаг: подсказка остается на экране.
func (bh *BotHandler) handleDraftTextInput(chatID int64, s session.Session, state, text string) {
	temp := bh.Deps.SessionManager.GetTempDraft(chatID)

	switch state {
	case constants.STATE_DRAFT_VEHICLE:
		temp.Payload.VehicleInfo = text
	case constants.STATE_DRAFT_GOS_NUMBER:
		gos, err := utils.ValidateGosNumber(text)
		if err != nil {
			bh.draftInputRetry(chatID, "Госномер не распознан. Формат: А123ВС77. Попробуйте еще раз:")
			return
		}
		temp.Payload.GosNumber = gos
	case constants.STATE_DRAFT_DATE:
		temp.Payload.ScheduledAt = strings.TrimSpace(text)
	case constants.STATE_DRAFT_LOCATION:
		temp.Payload.Location = text
	case constants.STATE_DRAFT_COMMENT:
		temp.Payload.Comment = text
	case constants.STATE_DRAFT_CLIENT_PRICE:
		price, err := utils.ParsePrice(text)
		if err != nil {
			bh.draftInputRetry(chatID, "Не удалось разобрать сумму. Введите число, например 12500 или 12500,50:")
			return
		}
		temp.Payload.ClientPrice = price
	case constants.STATE_DRAFT_REWARD:
		price, err := utils.ParsePrice(text)
		if err != nil {
			bh.draftInputRetry(chatID, "Не удалось разобрать сумму. Введите число, например 5000:")
			return
		}
		temp.Payload.MontajnikReward = price
	default:
		// Шаг ждет нажатия кнопки, а не текста.
		bh.promptDraftStep(chatID, s)
		return
	}

	bh.Deps.SessionManager.UpdateTempDraft(chatID, temp)
	bh.advanceDraftStep(chatID, s)
}

// draftInputRetry показывает подсказку о невалидном вводе отдельным
// сообщением, не трогая экран шага.
func (bh *BotHandler) draftInputRetry(chatID int64, hint string) {
	msg := tgbotapi.NewMessage(chatID, "⚠️ "+hint)
	if _, err := bh.Deps.BotClient.Send(msg); err != nil {
		log.Printf("handlers: ошибка отправки подсказки chatID %d: %v", chatID, err)
	}
}

// --- Обработчики кнопок шагов ---

func (bh *BotHandler) handleDraftCompanyChosen(chatID int64, s session.Session, companyID int64) {
	temp := bh.Deps.SessionManager.GetTempDraft(chatID)
	if temp.Payload.CompanyID != companyID {
		temp.Payload.CompanyID = companyID
		temp.Payload.ContactPersonID = 0 // контакт прежней компании больше не подходит
	}
	bh.Deps.SessionManager.UpdateTempDraft(chatID, temp)
	bh.advanceDraftStep(chatID, s)
}

func (bh *BotHandler) handleDraftContactChosen(chatID int64, s session.Session, contactID int64) {
	temp := bh.Deps.SessionManager.GetTempDraft(chatID)
	temp.Payload.ContactPersonID = contactID
	bh.Deps.SessionManager.UpdateTempDraft(chatID, temp)
	bh.advanceDraftStep(chatID, s)
}

func (bh *BotHandler) handleDraftEquipmentToggled(chatID int64, s session.Session, equipmentID int64) {
	temp := bh.Deps.SessionManager.GetTempDraft(chatID)
	found := false
	for i := range temp.Payload.Equipment {
		if temp.Payload.Equipment[i].EquipmentID == equipmentID {
			temp.Payload.Equipment[i].Quantity++
			found = true
			break
		}
	}
	if !found {
		temp.Payload.Equipment = append(temp.Payload.Equipment,
			models.TaskEquipment{EquipmentID: equipmentID, Quantity: 1})
	}
	bh.Deps.SessionManager.UpdateTempDraft(chatID, temp)
	bh.promptDraftStep(chatID, s)
}

func (bh *BotHandler) handleDraftWorkTypeToggled(chatID int64, s session.Session, workTypeID int64) {
	temp := bh.Deps.SessionManager.GetTempDraft(chatID)
	found := false
	for i := range temp.Payload.WorkTypes {
		if temp.Payload.WorkTypes[i].WorkTypeID == workTypeID {
			temp.Payload.WorkTypes[i].Quantity++
			found = true
			break
		}
	}
	if !found {
		temp.Payload.WorkTypes = append(temp.Payload.WorkTypes,
			models.TaskWorkType{WorkTypeID: workTypeID, Quantity: 1})
	}
	bh.Deps.SessionManager.UpdateTempDraft(chatID, temp)
	bh.promptDraftStep(chatID, s)
}

func (bh *BotHandler) handleDraftAssigneeChosen(chatID int64, s session.Session, userID int64) {
	temp := bh.Deps.SessionManager.GetTempDraft(chatID)
	temp.Payload.AssignmentType = constants.ASSIGNMENT_INDIVIDUAL
	temp.Payload.AssignedUserID = userID
	bh.Deps.SessionManager.UpdateTempDraft(chatID, temp)
	bh.advanceDraftStep(chatID, s)
}

func (bh *BotHandler) handleDraftBroadcastChosen(chatID int64, s session.Session) {
	temp := bh.Deps.SessionManager.GetTempDraft(chatID)
	temp.Payload.AssignmentType = constants.ASSIGNMENT_BROADCAST
	temp.Payload.AssignedUserID = 0
	bh.Deps.SessionManager.UpdateTempDraft(chatID, temp)
	bh.advanceDraftStep(chatID, s)
}

func (bh *BotHandler) handleDraftPhotoToggle(chatID int64, s session.Session) {
	temp := bh.Deps.SessionManager.GetTempDraft(chatID)
	temp.Payload.PhotoRequired = !temp.Payload.PhotoRequired
	bh.Deps.SessionManager.UpdateTempDraft(chatID, temp)
	bh.promptDraftStep(chatID, s)
}

// handleDraftSave отправляет собранный черновик на бэкенд.
func (bh *BotHandler) handleDraftSave(chatID int64, s session.Session) {
	temp := bh.Deps.SessionManager.GetTempDraft(chatID)
	if temp.Payload.CompanyID == 0 {
		bh.draftInputRetry(chatID, "Черновик без компании сохранить нельзя.")
		return
	}

	ctx := context.Background()
	api := bh.apiFor(s)
	var (
		draft models.Draft
		err   error
	)
	if temp.DraftID == 0 {
		draft, err = api.CreateDraft(ctx, temp.Payload)
	} else {
		draft, err = api.UpdateDraft(ctx, temp.DraftID, temp.Payload)
	}
	if err != nil {
		bh.sendErrorMessageHelper(chatID, temp.MessageID, err)
		return
	}

	messageID := temp.MessageID
	bh.Deps.SessionManager.ClearTempDraft(chatID)
	bh.Deps.SessionManager.ClearState(chatID)
	bh.SendDraftCard(chatID, messageID, draft.ID)
}

// handleDraftPublishNow создает задание в обход черновика. Для
// редактируемого черновика изменения сначала сохраняются, затем он
// публикуется штатно.
func (bh *BotHandler) handleDraftPublishNow(chatID int64, s session.Session) {
	temp := bh.Deps.SessionManager.GetTempDraft(chatID)
	if temp.Payload.CompanyID == 0 {
		bh.draftInputRetry(chatID, "Задание без компании опубликовать нельзя.")
		return
	}

	ctx := context.Background()
	api := bh.apiFor(s)
	var (
		taskID int64
		err    error
	)
	if temp.DraftID == 0 {
		var task models.Task
		task, err = api.CreateTask(ctx, temp.Payload)
		taskID = task.ID
	} else {
		if _, err = api.UpdateDraft(ctx, temp.DraftID, temp.Payload); err == nil {
			taskID, err = api.PublishDraft(ctx, temp.DraftID)
		}
	}
	if err != nil {
		bh.sendErrorMessageHelper(chatID, temp.MessageID, err)
		return
	}

	messageID := temp.MessageID
	bh.Deps.SessionManager.ClearTempDraft(chatID)
	bh.Deps.SessionManager.ClearState(chatID)
	bh.SendTaskCard(chatID, messageID, taskID)
}

// handleDraftCancel прерывает сборку и возвращает в меню.
func (bh *BotHandler) handleDraftCancel(chatID int64, s session.Session) {
	temp := bh.Deps.SessionManager.GetTempDraft(chatID)
	messageID := temp.MessageID
	bh.Deps.SessionManager.ClearTempDraft(chatID)
	bh.Deps.SessionManager.ClearState(chatID)
	bh.SendMainMenu(chatID, messageID)
}
