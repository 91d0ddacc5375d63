package handlers

import (
	"context"
	"fmt"
	"log"
	"strings"

	tgbotapi "github.com/OvyFlash/telegram-bot-api"

	"montajbot/internal/backend"
	"montajbot/internal/constants"
	"montajbot/internal/formatters"
	"montajbot/internal/lifecycle"
	"montajbot/internal/models"
	"montajbot/internal/session"
	"montajbot/internal/utils"
)

// activeStatuses — статусы, попадающие в «активные» списки логиста и админа.
var activeStatuses = []string{
	constants.STATUS_NEW,
	constants.STATUS_ASSIGNED,
	constants.STATUS_ACCEPTED,
	constants.STATUS_ON_THE_ROAD,
	constants.STATUS_ON_SITE,
	constants.STATUS_STARTED,
	constants.STATUS_INSPECTION,
	constants.STATUS_RETURNED,
}

// historyStatuses — статусы «истории».
var historyStatuses = []string{
	constants.STATUS_COMPLETED,
	constants.STATUS_ARCHIVED,
}

// Экраны списков. Ключ попадает в callback data пагинации.
const (
	screenTasksActive    = "tasks_active"
	screenTasksHistory   = "tasks_history"
	screenTasksAvailable = "tasks_available"
	screenTasksAssigned  = "tasks_assigned"
	screenTasksMine      = "tasks_mine"
)

// fetchTaskScreen возвращает задания экрана screen для роли сессии.
func (bh *BotHandler) fetchTaskScreen(ctx context.Context, s session.Session, screen string) (backend.TaskList, string, error) {
	api := bh.apiFor(s)
	role := roleOf(s)
	switch screen {
	case screenTasksActive:
		list, err := api.FilterTasks(ctx, role, backend.TaskFilter{Status: activeStatuses})
		return list, "📋 Активные задания", err
	case screenTasksHistory:
		list, err := api.FilterTasks(ctx, role, backend.TaskFilter{Status: historyStatuses})
		return list, "🗄 История заданий", err
	case screenTasksAvailable:
		list, err := api.AvailableTasks(ctx)
		return list, "🆕 Доступные задания", err
	case screenTasksAssigned:
		list, err := api.AssignedTasks(ctx)
		return list, "📌 Назначенные вам задания", err
	case screenTasksMine:
		list, err := api.MyTasks(ctx)
		return list, "🔧 Ваши задания в работе", err
	}
	return backend.TaskList{}, "", fmt.Errorf("неизвестный экран списка: %q", screen)
}

// SendTaskList показывает страницу списка заданий экрана screen.
func (bh *BotHandler) SendTaskList(chatID int64, messageID int, screen string, page int) {
	s, ok := bh.requireSession(chatID, messageID)
	if !ok {
		return
	}
	ctx := context.Background()

	list, title, err := bh.fetchTaskScreen(ctx, s, screen)
	if err != nil {
		bh.sendErrorMessageHelper(chatID, messageID, err)
		return
	}
	if len(list.Items) == 0 {
		kb := backKeyboard()
		if _, err := bh.sendOrEditMessageHelper(chatID, messageID, title+"\n\nПока пусто.", &kb); err != nil {
			log.Printf("handlers: ошибка отправки пустого списка chatID %d: %v", chatID, err)
		}
		return
	}

	refs := bh.loadRefs(ctx, s)
	start, end := pageSlice(len(list.Items), page)

	var b strings.Builder
	b.WriteString(title + "\n\n")
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, t := range list.Items[start:end] {
		b.WriteString(formatters.FormatTaskListItem(t, refs) + "\n")
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(
				fmt.Sprintf("#%d %s", t.ID, constants.StatusDisplayMap[t.Status]),
				fmt.Sprintf("%s%d", constants.CALLBACK_PREFIX_TASK_VIEW, t.ID)),
		))
	}
	if row := paginationRow(screen, page, len(list.Items)); row != nil {
		rows = append(rows, row)
	}
	if screen == screenTasksActive || screen == screenTasksHistory {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔍 Поиск", constants.CALLBACK_TASK_SEARCH)))
	}
	rows = append(rows, backRow())

	kb := tgbotapi.NewInlineKeyboardMarkup(rows...)
	if _, err := bh.sendOrEditMessageHelper(chatID, messageID, b.String(), &kb); err != nil {
		log.Printf("handlers: ошибка отправки списка заданий chatID %d: %v", chatID, err)
	}
}

// PromptTaskSearch запрашивает строку поиска по заданиям.
func (bh *BotHandler) PromptTaskSearch(chatID int64, messageID int) {
	if _, ok := bh.requireSession(chatID, messageID); !ok {
		return
	}
	bh.Deps.SessionManager.SetState(chatID, constants.STATE_TASK_FILTER_SEARCH)
	kb := backKeyboard()
	text := "🔍 Введите номер задания, госномер или часть адреса:"
	if _, err := bh.sendOrEditMessageHelper(chatID, messageID, text, &kb); err != nil {
		log.Printf("handlers: ошибка запроса строки поиска chatID %d: %v", chatID, err)
	}
}

// handleTaskSearchInput — строка из состояния STATE_TASK_FILTER_SEARCH.
func (bh *BotHandler) handleTaskSearchInput(chatID int64, s session.Session, query string) {
	bh.Deps.SessionManager.ClearState(chatID)
	ctx := context.Background()

	list, err := bh.apiFor(s).FilterTasks(ctx, roleOf(s), backend.TaskFilter{Search: query})
	if err != nil {
		bh.sendErrorMessageHelper(chatID, 0, err)
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🔍 <b>Результаты поиска</b> по «%s»\n\n", utils.EscapeHTML(query))
	var rows [][]tgbotapi.InlineKeyboardButton
	if len(list.Items) == 0 {
		b.WriteString("Ничего не найдено.")
	} else {
		refs := bh.loadRefs(ctx, s)
		for i, t := range list.Items {
			if i >= constants.PAGE_SIZE*2 {
				fmt.Fprintf(&b, "... и еще %d. Уточните запрос.", len(list.Items)-i)
				break
			}
			b.WriteString(formatters.FormatTaskListItem(t, refs) + "\n")
			rows = append(rows, tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData(
					fmt.Sprintf("#%d %s", t.ID, constants.StatusDisplayMap[t.Status]),
					fmt.Sprintf("%s%d", constants.CALLBACK_PREFIX_TASK_VIEW, t.ID))))
		}
	}
	rows = append(rows, backRow())

	kb := tgbotapi.NewInlineKeyboardMarkup(rows...)
	if _, err := bh.sendOrEditMessageHelper(chatID, 0, b.String(), &kb); err != nil {
		log.Printf("handlers: ошибка отправки результатов поиска chatID %d: %v", chatID, err)
	}
}

// SendTaskCard загружает задание заново и показывает карточку с действиями.
// Карточка всегда строится по свежим данным бэкенда, а не по кешу списка.
func (bh *BotHandler) SendTaskCard(chatID int64, messageID int, taskID int64) {
	s, ok := bh.requireSession(chatID, messageID)
	if !ok {
		return
	}
	ctx := context.Background()

	task, err := bh.apiFor(s).GetTask(ctx, roleOf(s), taskID)
	if err != nil {
		bh.sendErrorMessageHelper(chatID, messageID, err)
		return
	}

	refs := bh.contactRefs(ctx, s, bh.loadRefs(ctx, s), task.CompanyID)
	text := formatters.FormatTaskCard(task, refs)
	kb := bh.taskCardKeyboard(ctx, s, task)
	if _, err := bh.sendOrEditMessageHelper(chatID, messageID, text, &kb); err != nil {
		log.Printf("handlers: ошибка отправки карточки задания chatID %d: %v", chatID, err)
	}
}

// taskCardKeyboard собирает кнопки карточки. Показываются только действия,
// разрешенные роли из текущего статуса; бэкенд проверит еще раз.
func (bh *BotHandler) taskCardKeyboard(ctx context.Context, s session.Session, task models.Task) tgbotapi.InlineKeyboardMarkup {
	role := roleOf(s)
	var rows [][]tgbotapi.InlineKeyboardButton

	switch role {
	case lifecycle.RoleMontajnik:
		if lifecycle.CanTransition(role, task.Status, constants.STATUS_ACCEPTED) {
			row := tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("🤝 Принять",
					fmt.Sprintf("%s%d", constants.CALLBACK_PREFIX_TASK_ACCEPT, task.ID)))
			if lifecycle.CanTransition(role, task.Status, constants.STATUS_NEW) {
				row = append(row, tgbotapi.NewInlineKeyboardButtonData("🚫 Отказаться",
					fmt.Sprintf("%s%d", constants.CALLBACK_PREFIX_TASK_REJECT, task.ID)))
			}
			rows = append(rows, row)
		}
		for _, next := range lifecycle.NextStatuses(role, task.Status) {
			if next == constants.STATUS_ACCEPTED || next == constants.STATUS_NEW {
				continue
			}
			if next == constants.STATUS_INSPECTION {
				// Переход started -> inspection совершается сдачей отчета.
				if !lifecycle.HasPendingReport(task.Reports) {
					rows = append(rows, tgbotapi.NewInlineKeyboardRow(
						tgbotapi.NewInlineKeyboardButtonData("📄 Сдать отчет",
							fmt.Sprintf("%s%d", constants.CALLBACK_PREFIX_TASK_REPORT, task.ID))))
				}
				continue
			}
			rows = append(rows, tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("➡️ "+constants.StatusDisplayMap[next],
					fmt.Sprintf("%s%d_%s", constants.CALLBACK_PREFIX_TASK_STATUS, task.ID, next))))
		}

	case lifecycle.RoleLogist, lifecycle.RoleAdmin:
		if task.Status == constants.STATUS_INSPECTION {
			techRequired := lifecycle.NeedsTechReview(task.WorkTypes, bh.workTypeCatalog(ctx, s))
			if lifecycle.CanComplete(task, techRequired) {
				rows = append(rows, tgbotapi.NewInlineKeyboardRow(
					tgbotapi.NewInlineKeyboardButtonData("✅ Завершить",
						fmt.Sprintf("%s%d", constants.CALLBACK_PREFIX_TASK_COMPLETE, task.ID))))
			}
			rows = append(rows, tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("↩️ На доработку",
					fmt.Sprintf("%s%d", constants.CALLBACK_PREFIX_TASK_RETURN, task.ID))))
		}
		if lifecycle.CanTransition(role, task.Status, constants.STATUS_ARCHIVED) {
			rows = append(rows, tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("🗄 В архив",
					fmt.Sprintf("%s%d", constants.CALLBACK_PREFIX_TASK_ARCHIVE, task.ID))))
		}
		if lifecycle.CanTransition(role, task.Status, constants.STATUS_DRAFT) {
			rows = append(rows, tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("📝 Вернуть в черновики",
					fmt.Sprintf("%s%d", constants.CALLBACK_PREFIX_TASK_UNARCHIVE, task.ID))))
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✏️ Комментарий",
				fmt.Sprintf("%s%d", constants.CALLBACK_PREFIX_TASK_EDIT, task.ID)),
			tgbotapi.NewInlineKeyboardButtonData("🔗 Поделиться",
				fmt.Sprintf("%s%d", constants.CALLBACK_PREFIX_TASK_SHARE, task.ID))))
	}

	var extra []tgbotapi.InlineKeyboardButton
	if task.ContactPersonID != 0 {
		extra = append(extra, tgbotapi.NewInlineKeyboardButtonData("📞 Телефон",
			fmt.Sprintf("%s%d", constants.CALLBACK_PREFIX_TASK_PHONE, task.ID)))
	}
	if len(task.Reports) > 0 {
		extra = append(extra, tgbotapi.NewInlineKeyboardButtonData("📄 Отчеты",
			fmt.Sprintf("%s%d", constants.CALLBACK_PREFIX_TASK_REPORTS, task.ID)))
	}
	extra = append(extra, tgbotapi.NewInlineKeyboardButtonData("🕓 История",
		fmt.Sprintf("%s%d", constants.CALLBACK_PREFIX_TASK_HISTORY, task.ID)))
	if len(task.Attachments) > 0 {
		extra = append(extra, tgbotapi.NewInlineKeyboardButtonData("📎 Файлы",
			fmt.Sprintf("%s%d", constants.CALLBACK_PREFIX_TASK_FILES, task.ID)))
	}
	rows = append(rows, extra, backRow())
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// --- Действия над заданием ---

// HandleAcceptTask — монтажник принимает задание.
func (bh *BotHandler) HandleAcceptTask(chatID int64, messageID int, taskID int64) {
	s, ok := bh.requireSession(chatID, messageID)
	if !ok {
		return
	}
	if _, err := bh.apiFor(s).AcceptTask(context.Background(), taskID); err != nil {
		bh.sendErrorMessageHelper(chatID, messageID, err)
		return
	}
	bh.SendTaskCard(chatID, messageID, taskID)
}

// HandleRejectTask — монтажник отказывается от назначенного задания,
// оно возвращается в общий пул.
func (bh *BotHandler) HandleRejectTask(chatID int64, messageID int, taskID int64) {
	s, ok := bh.requireSession(chatID, messageID)
	if !ok {
		return
	}
	if err := bh.apiFor(s).RejectTask(context.Background(), taskID); err != nil {
		bh.sendErrorMessageHelper(chatID, messageID, err)
		return
	}
	bh.SendTaskList(chatID, messageID, screenTasksAssigned, 0)
}

// HandleSetTaskStatus переводит задание в следующий статус. Переход заранее
// проверяется по свежему состоянию задания.
func (bh *BotHandler) HandleSetTaskStatus(chatID int64, messageID int, taskID int64, newStatus string) {
	s, ok := bh.requireSession(chatID, messageID)
	if !ok {
		return
	}
	ctx := context.Background()
	api := bh.apiFor(s)

	task, err := api.GetTask(ctx, roleOf(s), taskID)
	if err != nil {
		bh.sendErrorMessageHelper(chatID, messageID, err)
		return
	}
	if !lifecycle.CanTransition(roleOf(s), task.Status, newStatus) {
		// Статус уже ушел вперед (например, с другого устройства);
		// просто перерисовываем карточку.
		bh.SendTaskCard(chatID, messageID, taskID)
		return
	}
	if _, err := api.SetTaskStatus(ctx, taskID, newStatus); err != nil {
		bh.sendErrorMessageHelper(chatID, messageID, err)
		return
	}
	bh.SendTaskCard(chatID, messageID, taskID)
}

// HandleArchiveTask убирает задание в архив.
func (bh *BotHandler) HandleArchiveTask(chatID int64, messageID int, taskID int64) {
	s, ok := bh.requireSession(chatID, messageID)
	if !ok {
		return
	}
	if err := bh.apiFor(s).ArchiveTask(context.Background(), taskID); err != nil {
		bh.sendErrorMessageHelper(chatID, messageID, err)
		return
	}
	bh.SendTaskCard(chatID, messageID, taskID)
}

// HandleUnarchiveTask возвращает задание из архива в черновики.
func (bh *BotHandler) HandleUnarchiveTask(chatID int64, messageID int, taskID int64) {
	s, ok := bh.requireSession(chatID, messageID)
	if !ok {
		return
	}
	if err := bh.apiFor(s).UnarchiveTask(context.Background(), taskID); err != nil {
		bh.sendErrorMessageHelper(chatID, messageID, err)
		return
	}
	bh.SendDraftsList(chatID, messageID, 0)
}

// HandleCompleteTask завершает задание после согласованного отчета.
func (bh *BotHandler) HandleCompleteTask(chatID int64, messageID int, taskID int64) {
	s, ok := bh.requireSession(chatID, messageID)
	if !ok {
		return
	}
	if err := bh.apiFor(s).CompleteTask(context.Background(), taskID); err != nil {
		bh.sendErrorMessageHelper(chatID, messageID, err)
		return
	}
	bh.SendTaskCard(chatID, messageID, taskID)
}

// PromptReturnComment запрашивает комментарий возврата на доработку.
func (bh *BotHandler) PromptReturnComment(chatID int64, messageID int, taskID int64) {
	if _, ok := bh.requireSession(chatID, messageID); !ok {
		return
	}
	bh.Deps.SessionManager.SetTempTarget(chatID, session.TempTarget{TaskID: taskID})
	bh.Deps.SessionManager.SetState(chatID, constants.STATE_TASK_RETURN_COMMENT)
	kb := backKeyboard()
	text := fmt.Sprintf("↩️ Возврат задания #%d на доработку.\nНапишите, что нужно исправить:", taskID)
	if _, err := bh.sendOrEditMessageHelper(chatID, messageID, text, &kb); err != nil {
		log.Printf("handlers: ошибка запроса комментария возврата chatID %d: %v", chatID, err)
	}
}

// handleReturnCommentInput — текст из состояния STATE_TASK_RETURN_COMMENT.
func (bh *BotHandler) handleReturnCommentInput(chatID int64, s session.Session, text string) {
	target := bh.Deps.SessionManager.TempTargetOf(chatID)
	if target.TaskID == 0 {
		bh.Deps.SessionManager.ClearState(chatID)
		bh.SendMainMenu(chatID, 0)
		return
	}
	if err := bh.apiFor(s).ReturnTask(context.Background(), target.TaskID, text); err != nil {
		bh.sendErrorMessageHelper(chatID, 0, err)
		return
	}
	bh.Deps.SessionManager.ClearState(chatID)
	bh.Deps.SessionManager.ClearTempTarget(chatID)
	bh.SendTaskCard(chatID, 0, target.TaskID)
}

// PromptEditComment запрашивает новый комментарий задания.
func (bh *BotHandler) PromptEditComment(chatID int64, messageID int, taskID int64) {
	if _, ok := bh.requireSession(chatID, messageID); !ok {
		return
	}
	bh.Deps.SessionManager.SetTempTarget(chatID, session.TempTarget{TaskID: taskID})
	bh.Deps.SessionManager.SetState(chatID, constants.STATE_TASK_EDIT_COMMENT)
	kb := backKeyboard()
	text := fmt.Sprintf("✏️ Новый комментарий для задания #%d:", taskID)
	if _, err := bh.sendOrEditMessageHelper(chatID, messageID, text, &kb); err != nil {
		log.Printf("handlers: ошибка запроса комментария chatID %d: %v", chatID, err)
	}
}

// handleEditCommentInput — текст из состояния STATE_TASK_EDIT_COMMENT.
func (bh *BotHandler) handleEditCommentInput(chatID int64, s session.Session, text string) {
	target := bh.Deps.SessionManager.TempTargetOf(chatID)
	if target.TaskID == 0 {
		bh.Deps.SessionManager.ClearState(chatID)
		bh.SendMainMenu(chatID, 0)
		return
	}
	ctx := context.Background()
	api := bh.apiFor(s)
	payload := models.TaskPayload{Comment: text}

	var err error
	if roleOf(s) == lifecycle.RoleAdmin {
		_, err = api.AdminUpdateTask(ctx, target.TaskID, payload)
	} else {
		_, err = api.UpdateTask(ctx, target.TaskID, payload)
	}
	if err != nil {
		bh.sendErrorMessageHelper(chatID, 0, err)
		return
	}
	bh.Deps.SessionManager.ClearState(chatID)
	bh.Deps.SessionManager.ClearTempTarget(chatID)
	bh.SendTaskCard(chatID, 0, target.TaskID)
}

// HandleShareTask отправляет QR-код со ссылкой на задание.
func (bh *BotHandler) HandleShareTask(chatID int64, messageID int, taskID int64) {
	if _, ok := bh.requireSession(chatID, messageID); !ok {
		return
	}
	username := bh.Deps.BotClient.Username
	link, err := utils.TaskDeepLink(username, taskID)
	if err != nil {
		bh.sendErrorMessageHelper(chatID, messageID, err)
		return
	}
	png, err := utils.TaskQRCode(username, taskID)
	if err != nil {
		bh.sendErrorMessageHelper(chatID, messageID, err)
		return
	}
	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileBytes{
		Name:  fmt.Sprintf("task_%d.png", taskID),
		Bytes: png,
	})
	photo.Caption = fmt.Sprintf("Задание #%d\n%s", taskID, link)
	if _, err := bh.Deps.BotClient.Send(photo); err != nil {
		log.Printf("handlers: ошибка отправки QR задания %d chatID %d: %v", taskID, chatID, err)
	}
}

// HandleContactPhone запрашивает у бэкенда телефон контактного лица задания.
// Телефон не хранится в карточке и отдается только по явному запросу.
func (bh *BotHandler) HandleContactPhone(chatID int64, messageID int, taskID int64) {
	s, ok := bh.requireSession(chatID, messageID)
	if !ok {
		return
	}
	ctx := context.Background()
	api := bh.apiFor(s)

	task, err := api.GetTask(ctx, roleOf(s), taskID)
	if err != nil {
		bh.sendErrorMessageHelper(chatID, messageID, err)
		return
	}
	if task.ContactPersonID == 0 {
		bh.sendPlain(chatID, "У задания не указано контактное лицо.")
		return
	}
	phone, err := api.ContactPhone(ctx, task.ContactPersonID)
	if err != nil {
		bh.sendErrorMessageHelper(chatID, messageID, err)
		return
	}
	if normalized, err := utils.ValidatePhoneNumber(phone); err == nil {
		phone = normalized
	}
	bh.sendPlain(chatID, fmt.Sprintf("📞 Контакт по заданию #%d: %s", taskID, phone))
}

// SendTaskHistory показывает историю изменений задания.
func (bh *BotHandler) SendTaskHistory(chatID int64, messageID int, taskID int64) {
	s, ok := bh.requireSession(chatID, messageID)
	if !ok {
		return
	}
	ctx := context.Background()
	task, err := bh.apiFor(s).GetTask(ctx, roleOf(s), taskID)
	if err != nil {
		bh.sendErrorMessageHelper(chatID, messageID, err)
		return
	}
	refs := bh.loadRefs(ctx, s)
	kb := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⬅️ К заданию",
				fmt.Sprintf("%s%d", constants.CALLBACK_PREFIX_TASK_VIEW, taskID))),
		backRow(),
	)
	if _, err := bh.sendOrEditMessageHelper(chatID, messageID, formatters.FormatHistory(taskID, task.History, refs), &kb); err != nil {
		log.Printf("handlers: ошибка отправки истории задания chatID %d: %v", chatID, err)
	}
}

// SendTaskFiles отправляет ссылки на вложения задания через медиапрокси бота.
// Ссылки бэкенда короткоживущие, поэтому в чат они не попадают.
func (bh *BotHandler) SendTaskFiles(chatID int64, messageID int, taskID int64) {
	s, ok := bh.requireSession(chatID, messageID)
	if !ok {
		return
	}
	attachments, err := bh.apiFor(s).TaskAttachments(context.Background(), taskID)
	if err != nil {
		bh.sendErrorMessageHelper(chatID, messageID, err)
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📎 <b>Вложения задания #%d</b>\n", taskID)
	if len(attachments) == 0 {
		b.WriteString("Вложений нет.")
	} else if bh.Deps.Config.PublicBaseURL == "" {
		fmt.Fprintf(&b, "Файлов: %d. Ссылки недоступны: у бота не настроен публичный адрес.", len(attachments))
	} else {
		for i, a := range attachments {
			fmt.Fprintf(&b, "%d. %s/api/media/%d\n", i+1, bh.Deps.Config.PublicBaseURL, a.ID)
		}
	}
	kb := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⬅️ К заданию",
				fmt.Sprintf("%s%d", constants.CALLBACK_PREFIX_TASK_VIEW, taskID))),
		backRow(),
	)
	if _, err := bh.sendOrEditMessageHelper(chatID, messageID, b.String(), &kb); err != nil {
		log.Printf("handlers: ошибка отправки вложений chatID %d: %v", chatID, err)
	}
}

// SendTaskReports показывает отчеты задания (последний подробно).
func (bh *BotHandler) SendTaskReports(chatID int64, messageID int, taskID int64) {
	s, ok := bh.requireSession(chatID, messageID)
	if !ok {
		return
	}
	ctx := context.Background()
	task, err := bh.apiFor(s).GetTask(ctx, roleOf(s), taskID)
	if err != nil {
		bh.sendErrorMessageHelper(chatID, messageID, err)
		return
	}

	var text string
	if len(task.Reports) == 0 {
		text = fmt.Sprintf("По заданию #%d отчетов пока нет.", taskID)
	} else {
		techRequired := lifecycle.NeedsTechReview(task.WorkTypes, bh.workTypeCatalog(ctx, s))
		last := task.Reports[len(task.Reports)-1]
		text = formatters.FormatReportCard(last, techRequired)
		if n := len(task.Reports); n > 1 {
			text += fmt.Sprintf("\n\nВсего %d %s, показан последний.",
				n, utils.Plural(n, "отчет", "отчета", "отчетов"))
		}
	}
	kb := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⬅️ К заданию",
				fmt.Sprintf("%s%d", constants.CALLBACK_PREFIX_TASK_VIEW, taskID))),
		backRow(),
	)
	if _, err := bh.sendOrEditMessageHelper(chatID, messageID, text, &kb); err != nil {
		log.Printf("handlers: ошибка отправки отчетов задания chatID %d: %v", chatID, err)
	}
}
