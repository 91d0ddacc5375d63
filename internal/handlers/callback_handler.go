package handlers

import (
	"log"
	"strconv"
	"strings"

	tgbotapi "github.com/OvyFlash/telegram-bot-api"

	"montajbot/internal/constants"
	"montajbot/internal/session"
)

// HandleCallbackQuery разбирает callback data и вызывает нужный обработчик.
// Формат data: либо команда без параметров, либо <префикс><id...>.
func (bh *BotHandler) HandleCallbackQuery(query *tgbotapi.CallbackQuery) {
	if query == nil || query.Message == nil {
		return
	}
	bh.answerCallback(query.ID, "")

	chatID := query.Message.Chat.ID
	messageID := query.Message.MessageID
	data := query.Data

	// Команды без параметров.
	switch data {
	case constants.CALLBACK_NOOP:
		return
	case constants.CALLBACK_BACK_MAIN:
		bh.SendMainMenu(chatID, messageID)
		return
	case constants.CALLBACK_PROFILE:
		bh.SendProfile(chatID, messageID)
		return
	case constants.CALLBACK_LOGOUT:
		bh.HandleLogout(chatID, messageID)
		return
	case constants.CALLBACK_TASKS_ACTIVE:
		bh.SendTaskList(chatID, messageID, screenTasksActive, 0)
		return
	case constants.CALLBACK_TASKS_HISTORY:
		bh.SendTaskList(chatID, messageID, screenTasksHistory, 0)
		return
	case constants.CALLBACK_TASKS_AVAILABLE:
		bh.SendTaskList(chatID, messageID, screenTasksAvailable, 0)
		return
	case constants.CALLBACK_TASKS_ASSIGNED:
		bh.SendTaskList(chatID, messageID, screenTasksAssigned, 0)
		return
	case constants.CALLBACK_TASKS_MINE:
		bh.SendTaskList(chatID, messageID, screenTasksMine, 0)
		return
	case constants.CALLBACK_TASK_SEARCH:
		bh.PromptTaskSearch(chatID, messageID)
		return
	case constants.CALLBACK_DRAFTS:
		bh.SendDraftsList(chatID, messageID, 0)
		return
	case constants.CALLBACK_DRAFT_NEW:
		bh.StartDraftFlow(chatID, messageID, 0)
		return
	case constants.CALLBACK_REVIEWS:
		bh.SendReviewsList(chatID, messageID, 0)
		return
	case constants.CALLBACK_ADMIN_USERS:
		bh.SendUsersList(chatID, messageID, 0)
		return
	case constants.CALLBACK_ADMIN_USER_NEW:
		bh.StartUserCreation(chatID, messageID)
		return
	case constants.CALLBACK_ADMIN_EQUIPMENT:
		bh.SendEquipmentList(chatID, messageID, 0)
		return
	case constants.CALLBACK_ADMIN_EQUIP_NEW:
		bh.StartEquipmentCreation(chatID, messageID)
		return
	case constants.CALLBACK_ADMIN_WORK_TYPES:
		bh.SendWorkTypesList(chatID, messageID, 0)
		return
	case constants.CALLBACK_ADMIN_WORKTYPE_NEW:
		bh.StartWorkTypeCreation(chatID, messageID)
		return
	case constants.CALLBACK_EXPORT_XLSX:
		bh.HandleExportXlsx(chatID, messageID)
		return
	case constants.CALLBACK_WORKTYPE_TECH_YES:
		bh.HandleWorkTypeTechChoice(chatID, messageID, true)
		return
	case constants.CALLBACK_WORKTYPE_TECH_NO:
		bh.HandleWorkTypeTechChoice(chatID, messageID, false)
		return
	}

	// Кнопки сборки черновика и отчета зависят от сессии.
	if bh.handleFlowCallback(chatID, messageID, data) {
		return
	}
	if bh.handlePrefixCallback(chatID, messageID, data) {
		return
	}
	log.Printf("handlers: нераспознанная callback data %q (chatID %d)", data, chatID)
}

// handleFlowCallback — кнопки многошаговых сценариев без параметров.
func (bh *BotHandler) handleFlowCallback(chatID int64, messageID int, data string) bool {
	s, ok := bh.Deps.SessionManager.Get(chatID)
	if !ok {
		// Сессии нет, а кнопка из сценария: предложим авторизоваться.
		switch data {
		case constants.CALLBACK_DRAFT_SKIP, constants.CALLBACK_DRAFT_BACK,
			constants.CALLBACK_DRAFT_STEP_DONE,
			constants.CALLBACK_DRAFT_BROADCAST, constants.CALLBACK_DRAFT_PHOTO_TOGGLE,
			constants.CALLBACK_DRAFT_SAVE, constants.CALLBACK_DRAFT_PUBLISH_NOW,
			constants.CALLBACK_DRAFT_CANCEL,
			constants.CALLBACK_REPORT_SUBMIT, constants.CALLBACK_REPORT_CANCEL:
			bh.requireSession(chatID, messageID)
			return true
		}
		return false
	}

	switch data {
	case constants.CALLBACK_DRAFT_SKIP, constants.CALLBACK_DRAFT_STEP_DONE:
		bh.advanceDraftStep(chatID, s)
	case constants.CALLBACK_DRAFT_BACK:
		bh.handleDraftStepBack(chatID, s)
	case constants.CALLBACK_DRAFT_BROADCAST:
		bh.handleDraftBroadcastChosen(chatID, s)
	case constants.CALLBACK_DRAFT_PHOTO_TOGGLE:
		bh.handleDraftPhotoToggle(chatID, s)
	case constants.CALLBACK_DRAFT_SAVE:
		bh.handleDraftSave(chatID, s)
	case constants.CALLBACK_DRAFT_PUBLISH_NOW:
		bh.handleDraftPublishNow(chatID, s)
	case constants.CALLBACK_DRAFT_CANCEL:
		bh.handleDraftCancel(chatID, s)
	case constants.CALLBACK_REPORT_SUBMIT:
		bh.handleReportSubmit(chatID, s)
	case constants.CALLBACK_REPORT_CANCEL:
		bh.handleReportCancel(chatID, s)
	default:
		return false
	}
	return true
}

// handlePrefixCallback — кнопки с параметрами в data.
func (bh *BotHandler) handlePrefixCallback(chatID int64, messageID int, data string) bool {
	switch {
	case strings.HasPrefix(data, constants.CALLBACK_PREFIX_PAGE):
		bh.handlePageCallback(chatID, messageID, data)

	case strings.HasPrefix(data, constants.CALLBACK_PREFIX_TASK_VIEW):
		bh.withID(chatID, messageID, data, constants.CALLBACK_PREFIX_TASK_VIEW, bh.SendTaskCard)
	case strings.HasPrefix(data, constants.CALLBACK_PREFIX_TASK_ACCEPT):
		bh.withID(chatID, messageID, data, constants.CALLBACK_PREFIX_TASK_ACCEPT, bh.HandleAcceptTask)
	case strings.HasPrefix(data, constants.CALLBACK_PREFIX_TASK_REJECT):
		bh.withID(chatID, messageID, data, constants.CALLBACK_PREFIX_TASK_REJECT, bh.HandleRejectTask)
	case strings.HasPrefix(data, constants.CALLBACK_PREFIX_TASK_STATUS):
		raw := strings.TrimPrefix(data, constants.CALLBACK_PREFIX_TASK_STATUS)
		parts := strings.SplitN(raw, "_", 2)
		if len(parts) != 2 {
			return false
		}
		taskID, err := strconv.ParseInt(parts[0], 10, 64)
		if err != nil {
			return false
		}
		bh.HandleSetTaskStatus(chatID, messageID, taskID, parts[1])
	case strings.HasPrefix(data, constants.CALLBACK_PREFIX_TASK_REPORTS):
		bh.withID(chatID, messageID, data, constants.CALLBACK_PREFIX_TASK_REPORTS, bh.SendTaskReports)
	case strings.HasPrefix(data, constants.CALLBACK_PREFIX_TASK_REPORT):
		bh.withID(chatID, messageID, data, constants.CALLBACK_PREFIX_TASK_REPORT, bh.StartReportFlow)
	case strings.HasPrefix(data, constants.CALLBACK_PREFIX_TASK_ARCHIVE):
		bh.withID(chatID, messageID, data, constants.CALLBACK_PREFIX_TASK_ARCHIVE, bh.HandleArchiveTask)
	case strings.HasPrefix(data, constants.CALLBACK_PREFIX_TASK_UNARCHIVE):
		bh.withID(chatID, messageID, data, constants.CALLBACK_PREFIX_TASK_UNARCHIVE, bh.HandleUnarchiveTask)
	case strings.HasPrefix(data, constants.CALLBACK_PREFIX_TASK_COMPLETE):
		bh.withID(chatID, messageID, data, constants.CALLBACK_PREFIX_TASK_COMPLETE, bh.HandleCompleteTask)
	case strings.HasPrefix(data, constants.CALLBACK_PREFIX_TASK_RETURN):
		bh.withID(chatID, messageID, data, constants.CALLBACK_PREFIX_TASK_RETURN, bh.PromptReturnComment)
	case strings.HasPrefix(data, constants.CALLBACK_PREFIX_TASK_EDIT):
		bh.withID(chatID, messageID, data, constants.CALLBACK_PREFIX_TASK_EDIT, bh.PromptEditComment)
	case strings.HasPrefix(data, constants.CALLBACK_PREFIX_TASK_SHARE):
		bh.withID(chatID, messageID, data, constants.CALLBACK_PREFIX_TASK_SHARE, bh.HandleShareTask)
	case strings.HasPrefix(data, constants.CALLBACK_PREFIX_TASK_HISTORY):
		bh.withID(chatID, messageID, data, constants.CALLBACK_PREFIX_TASK_HISTORY, bh.SendTaskHistory)
	case strings.HasPrefix(data, constants.CALLBACK_PREFIX_TASK_FILES):
		bh.withID(chatID, messageID, data, constants.CALLBACK_PREFIX_TASK_FILES, bh.SendTaskFiles)
	case strings.HasPrefix(data, constants.CALLBACK_PREFIX_TASK_PHONE):
		bh.withID(chatID, messageID, data, constants.CALLBACK_PREFIX_TASK_PHONE, bh.HandleContactPhone)

	case strings.HasPrefix(data, constants.CALLBACK_PREFIX_DRAFT_VIEW):
		bh.withID(chatID, messageID, data, constants.CALLBACK_PREFIX_DRAFT_VIEW, bh.SendDraftCard)
	case strings.HasPrefix(data, constants.CALLBACK_PREFIX_DRAFT_PUBLISH):
		bh.withID(chatID, messageID, data, constants.CALLBACK_PREFIX_DRAFT_PUBLISH, bh.HandlePublishDraft)
	case strings.HasPrefix(data, constants.CALLBACK_PREFIX_DRAFT_DELETE):
		bh.withID(chatID, messageID, data, constants.CALLBACK_PREFIX_DRAFT_DELETE, bh.HandleDeleteDraft)
	case strings.HasPrefix(data, constants.CALLBACK_PREFIX_DRAFT_EDIT):
		bh.withID(chatID, messageID, data, constants.CALLBACK_PREFIX_DRAFT_EDIT, func(c int64, m int, id int64) {
			bh.StartDraftFlow(c, m, id)
		})

	case strings.HasPrefix(data, constants.CALLBACK_PREFIX_REVIEW_VIEW):
		bh.withTwoIDs(chatID, messageID, data, constants.CALLBACK_PREFIX_REVIEW_VIEW, bh.SendReviewCard)
	case strings.HasPrefix(data, constants.CALLBACK_PREFIX_REVIEW_OK):
		bh.withTwoIDs(chatID, messageID, data, constants.CALLBACK_PREFIX_REVIEW_OK, bh.HandleApproveReport)
	case strings.HasPrefix(data, constants.CALLBACK_PREFIX_REVIEW_NO):
		bh.withTwoIDs(chatID, messageID, data, constants.CALLBACK_PREFIX_REVIEW_NO, bh.PromptRejectReason)

	case strings.HasPrefix(data, constants.CALLBACK_PREFIX_USER_TOGGLE):
		bh.withID(chatID, messageID, data, constants.CALLBACK_PREFIX_USER_TOGGLE, bh.HandleToggleUser)
	case strings.HasPrefix(data, constants.CALLBACK_PREFIX_USER_ROLE):
		bh.HandleUserRoleChosen(chatID, messageID, strings.TrimPrefix(data, constants.CALLBACK_PREFIX_USER_ROLE))
	case strings.HasPrefix(data, constants.CALLBACK_PREFIX_EQUIP_DELETE):
		bh.withID(chatID, messageID, data, constants.CALLBACK_PREFIX_EQUIP_DELETE, bh.HandleDeleteEquipment)
	case strings.HasPrefix(data, constants.CALLBACK_PREFIX_EQUIP_PRICE):
		bh.withID(chatID, messageID, data, constants.CALLBACK_PREFIX_EQUIP_PRICE, bh.HandleEquipmentPriceEdit)
	case strings.HasPrefix(data, constants.CALLBACK_PREFIX_WORKTYPE_DEL):
		bh.withID(chatID, messageID, data, constants.CALLBACK_PREFIX_WORKTYPE_DEL, bh.HandleDeleteWorkType)
	case strings.HasPrefix(data, constants.CALLBACK_PREFIX_WORKTYPE_FLAG):
		bh.withID(chatID, messageID, data, constants.CALLBACK_PREFIX_WORKTYPE_FLAG, bh.HandleWorkTypeTechToggle)

	case strings.HasPrefix(data, constants.CALLBACK_PREFIX_DRAFT_COMPANY):
		bh.withSessionID(chatID, messageID, data, constants.CALLBACK_PREFIX_DRAFT_COMPANY, bh.handleDraftCompanyChosen)
	case strings.HasPrefix(data, constants.CALLBACK_PREFIX_DRAFT_CONTACT):
		bh.withSessionID(chatID, messageID, data, constants.CALLBACK_PREFIX_DRAFT_CONTACT, bh.handleDraftContactChosen)
	case strings.HasPrefix(data, constants.CALLBACK_PREFIX_DRAFT_EQUIP):
		bh.withSessionID(chatID, messageID, data, constants.CALLBACK_PREFIX_DRAFT_EQUIP, bh.handleDraftEquipmentToggled)
	case strings.HasPrefix(data, constants.CALLBACK_PREFIX_DRAFT_WORKTYPE):
		bh.withSessionID(chatID, messageID, data, constants.CALLBACK_PREFIX_DRAFT_WORKTYPE, bh.handleDraftWorkTypeToggled)
	case strings.HasPrefix(data, constants.CALLBACK_PREFIX_DRAFT_ASSIGNEE):
		bh.withSessionID(chatID, messageID, data, constants.CALLBACK_PREFIX_DRAFT_ASSIGNEE, bh.handleDraftAssigneeChosen)

	default:
		return false
	}
	return true
}

// withID разбирает один id из data и вызывает обработчик.
func (bh *BotHandler) withID(chatID int64, messageID int, data, prefix string, fn func(int64, int, int64)) {
	id, err := parseIDSuffix(data, prefix)
	if err != nil {
		log.Printf("handlers: %v (chatID %d)", err, chatID)
		return
	}
	fn(chatID, messageID, id)
}

// withTwoIDs разбирает пару id из data и вызывает обработчик.
func (bh *BotHandler) withTwoIDs(chatID int64, messageID int, data, prefix string, fn func(int64, int, int64, int64)) {
	a, b, err := parseTwoIDs(data, prefix)
	if err != nil {
		log.Printf("handlers: %v (chatID %d)", err, chatID)
		return
	}
	fn(chatID, messageID, a, b)
}

// withSessionID — вариант withID для обработчиков сценария сборки,
// которым нужна сессия.
func (bh *BotHandler) withSessionID(chatID int64, messageID int, data, prefix string, fn func(int64, session.Session, int64)) {
	s, ok := bh.requireSession(chatID, messageID)
	if !ok {
		return
	}
	id, err := parseIDSuffix(data, prefix)
	if err != nil {
		log.Printf("handlers: %v (chatID %d)", err, chatID)
		return
	}
	fn(chatID, s, id)
}

// handlePageCallback разбирает page_<экран>_<номер> и перерисовывает список.
func (bh *BotHandler) handlePageCallback(chatID int64, messageID int, data string) {
	raw := strings.TrimPrefix(data, constants.CALLBACK_PREFIX_PAGE)
	idx := strings.LastIndex(raw, "_")
	if idx <= 0 {
		return
	}
	screen := raw[:idx]
	page, err := strconv.Atoi(raw[idx+1:])
	if err != nil || page < 0 {
		return
	}

	switch screen {
	case screenTasksActive, screenTasksHistory, screenTasksAvailable, screenTasksAssigned, screenTasksMine:
		bh.SendTaskList(chatID, messageID, screen, page)
	case screenDrafts:
		bh.SendDraftsList(chatID, messageID, page)
	case screenReviews:
		bh.SendReviewsList(chatID, messageID, page)
	case screenUsers:
		bh.SendUsersList(chatID, messageID, page)
	case screenEquipment:
		bh.SendEquipmentList(chatID, messageID, page)
	case screenWorkTypes:
		bh.SendWorkTypesList(chatID, messageID, page)
	}
}
