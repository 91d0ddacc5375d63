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
)

const screenDrafts = "drafts"
const screenReviews = "reviews"

// SendDraftsList показывает черновики логиста.
func (bh *BotHandler) SendDraftsList(chatID int64, messageID int, page int) {
	s, ok := bh.requireSession(chatID, messageID)
	if !ok {
		return
	}
	ctx := context.Background()

	drafts, err := bh.apiFor(s).Drafts(ctx)
	if err != nil {
		bh.sendErrorMessageHelper(chatID, messageID, err)
		return
	}

	var rows [][]tgbotapi.InlineKeyboardButton
	text := "📝 <b>Черновики</b>\n"
	if len(drafts) == 0 {
		text += "\nЧерновиков нет."
	} else {
		refs := bh.loadRefs(ctx, s)
		start, end := pageSlice(len(drafts), page)
		for _, d := range drafts[start:end] {
			label := fmt.Sprintf("#%d", d.ID)
			if company := refs.Companies[d.CompanyID]; company != "" {
				label += " · " + company
			}
			rows = append(rows, tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData(label,
					fmt.Sprintf("%s%d", constants.CALLBACK_PREFIX_DRAFT_VIEW, d.ID))))
		}
		if row := paginationRow(screenDrafts, page, len(drafts)); row != nil {
			rows = append(rows, row)
		}
	}
	rows = append(rows,
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("➕ Новый черновик", constants.CALLBACK_DRAFT_NEW)),
		backRow(),
	)

	kb := tgbotapi.NewInlineKeyboardMarkup(rows...)
	if _, err := bh.sendOrEditMessageHelper(chatID, messageID, text, &kb); err != nil {
		log.Printf("handlers: ошибка отправки списка черновиков chatID %d: %v", chatID, err)
	}
}

// SendDraftCard показывает карточку черновика с действиями.
func (bh *BotHandler) SendDraftCard(chatID int64, messageID int, draftID int64) {
	s, ok := bh.requireSession(chatID, messageID)
	if !ok {
		return
	}
	ctx := context.Background()

	draft, err := bh.apiFor(s).GetDraft(ctx, draftID)
	if err != nil {
		bh.sendErrorMessageHelper(chatID, messageID, err)
		return
	}

	refs := bh.contactRefs(ctx, s, bh.loadRefs(ctx, s), draft.CompanyID)
	kb := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🚀 Опубликовать",
				fmt.Sprintf("%s%d", constants.CALLBACK_PREFIX_DRAFT_PUBLISH, draftID))),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✏️ Редактировать",
				fmt.Sprintf("%s%d", constants.CALLBACK_PREFIX_DRAFT_EDIT, draftID)),
			tgbotapi.NewInlineKeyboardButtonData("🗑 Удалить",
				fmt.Sprintf("%s%d", constants.CALLBACK_PREFIX_DRAFT_DELETE, draftID))),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⬅️ К черновикам", constants.CALLBACK_DRAFTS)),
		backRow(),
	)
	if _, err := bh.sendOrEditMessageHelper(chatID, messageID, formatters.FormatDraftCard(draft, refs), &kb); err != nil {
		log.Printf("handlers: ошибка отправки карточки черновика chatID %d: %v", chatID, err)
	}
}

// HandlePublishDraft публикует черновик и открывает карточку созданного
// задания по id из ответа бэкенда.
func (bh *BotHandler) HandlePublishDraft(chatID int64, messageID int, draftID int64) {
	s, ok := bh.requireSession(chatID, messageID)
	if !ok {
		return
	}
	taskID, err := bh.apiFor(s).PublishDraft(context.Background(), draftID)
	if err != nil {
		bh.sendErrorMessageHelper(chatID, messageID, err)
		return
	}
	log.Printf("handlers: черновик %d опубликован как задание %d (chatID %d)", draftID, taskID, chatID)
	bh.SendTaskCard(chatID, messageID, taskID)
}

// HandleDeleteDraft удаляет черновик.
func (bh *BotHandler) HandleDeleteDraft(chatID int64, messageID int, draftID int64) {
	s, ok := bh.requireSession(chatID, messageID)
	if !ok {
		return
	}
	if err := bh.apiFor(s).DeleteDraft(context.Background(), draftID); err != nil {
		bh.sendErrorMessageHelper(chatID, messageID, err)
		return
	}
	bh.SendDraftsList(chatID, messageID, 0)
}

// --- Проверка отчетов ---

// SendReviewsList показывает очередь отчетов, ожидающих решения роли сессии.
func (bh *BotHandler) SendReviewsList(chatID int64, messageID int, page int) {
	s, ok := bh.requireSession(chatID, messageID)
	if !ok {
		return
	}
	ctx := context.Background()
	api := bh.apiFor(s)

	var (
		list backend.TaskList
		err  error
	)
	if roleOf(s) == lifecycle.RoleTechSupp {
		list, err = api.TechPendingReviews(ctx)
	} else {
		list, err = api.PendingReviews(ctx)
	}
	if err != nil {
		bh.sendErrorMessageHelper(chatID, messageID, err)
		return
	}

	var b strings.Builder
	b.WriteString("🔎 <b>Отчеты на проверку</b>\n\n")
	var rows [][]tgbotapi.InlineKeyboardButton
	if len(list.Items) == 0 {
		b.WriteString("Очередь пуста.")
	} else {
		refs := bh.loadRefs(ctx, s)
		start, end := pageSlice(len(list.Items), page)
		for _, t := range list.Items[start:end] {
			report, found := pendingReportOf(t)
			if !found {
				continue
			}
			b.WriteString(formatters.FormatTaskListItem(t, refs) + "\n")
			rows = append(rows, tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData(
					fmt.Sprintf("Отчет по #%d", t.ID),
					fmt.Sprintf("%s%d_%d", constants.CALLBACK_PREFIX_REVIEW_VIEW, t.ID, report.ID))))
		}
		if row := paginationRow(screenReviews, page, len(list.Items)); row != nil {
			rows = append(rows, row)
		}
	}
	rows = append(rows, backRow())

	kb := tgbotapi.NewInlineKeyboardMarkup(rows...)
	if _, err := bh.sendOrEditMessageHelper(chatID, messageID, b.String(), &kb); err != nil {
		log.Printf("handlers: ошибка отправки очереди отчетов chatID %d: %v", chatID, err)
	}
}

// pendingReportOf возвращает последний несогласованный отчет задания.
func pendingReportOf(t models.Task) (models.Report, bool) {
	for i := len(t.Reports) - 1; i >= 0; i-- {
		r := t.Reports[i]
		if r.ApprovalLogist == constants.APPROVAL_WAITING || r.ApprovalTech == constants.APPROVAL_WAITING {
			return r, true
		}
	}
	return models.Report{}, false
}

// SendReviewCard показывает отчет с кнопками решения.
func (bh *BotHandler) SendReviewCard(chatID int64, messageID int, taskID, reportID int64) {
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
	var report models.Report
	for _, r := range task.Reports {
		if r.ID == reportID {
			report = r
			break
		}
	}
	if report.ID == 0 {
		bh.sendErrorMessageHelper(chatID, messageID, fmt.Errorf("отчет %d не найден в задании %d", reportID, taskID))
		return
	}

	techRequired := lifecycle.NeedsTechReview(task.WorkTypes, bh.workTypeCatalog(ctx, s))
	kb := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Согласовать",
				fmt.Sprintf("%s%d_%d", constants.CALLBACK_PREFIX_REVIEW_OK, taskID, reportID)),
			tgbotapi.NewInlineKeyboardButtonData("❌ Отклонить",
				fmt.Sprintf("%s%d_%d", constants.CALLBACK_PREFIX_REVIEW_NO, taskID, reportID))),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📋 Карточка задания",
				fmt.Sprintf("%s%d", constants.CALLBACK_PREFIX_TASK_VIEW, taskID))),
		backRow(),
	)
	if _, err := bh.sendOrEditMessageHelper(chatID, messageID, formatters.FormatReportCard(report, techRequired), &kb); err != nil {
		log.Printf("handlers: ошибка отправки карточки отчета chatID %d: %v", chatID, err)
	}
}

// HandleApproveReport согласует отчет от имени роли сессии. Статус задания
// при этом не меняется: завершение остается отдельным действием логиста.
func (bh *BotHandler) HandleApproveReport(chatID int64, messageID int, taskID, reportID int64) {
	s, ok := bh.requireSession(chatID, messageID)
	if !ok {
		return
	}
	ctx := context.Background()
	payload := models.ReviewPayload{Approval: constants.APPROVAL_APPROVED}

	var err error
	if roleOf(s) == lifecycle.RoleTechSupp {
		err = bh.apiFor(s).ReviewTechReport(ctx, taskID, reportID, payload)
	} else {
		err = bh.apiFor(s).ReviewReport(ctx, taskID, reportID, payload)
	}
	if err != nil {
		bh.sendErrorMessageHelper(chatID, messageID, err)
		return
	}
	bh.SendReviewsList(chatID, messageID, 0)
}

// PromptRejectReason запрашивает причину отклонения отчета. Отклонение без
// причины не отправляется.
func (bh *BotHandler) PromptRejectReason(chatID int64, messageID int, taskID, reportID int64) {
	if _, ok := bh.requireSession(chatID, messageID); !ok {
		return
	}
	bh.Deps.SessionManager.SetTempTarget(chatID, session.TempTarget{TaskID: taskID, ReportID: reportID})
	bh.Deps.SessionManager.SetState(chatID, constants.STATE_REVIEW_REJECT_REASON)
	kb := backKeyboard()
	text := fmt.Sprintf("❌ Отклонение отчета по заданию #%d.\nУкажите причину:", taskID)
	if _, err := bh.sendOrEditMessageHelper(chatID, messageID, text, &kb); err != nil {
		log.Printf("handlers: ошибка запроса причины отклонения chatID %d: %v", chatID, err)
	}
}

// handleReviewRejectInput — текст из состояния STATE_REVIEW_REJECT_REASON.
func (bh *BotHandler) handleReviewRejectInput(chatID int64, s session.Session, text string) {
	target := bh.Deps.SessionManager.TempTargetOf(chatID)
	if target.TaskID == 0 || target.ReportID == 0 {
		bh.Deps.SessionManager.ClearState(chatID)
		bh.SendMainMenu(chatID, 0)
		return
	}
	ctx := context.Background()
	payload := models.ReviewPayload{Approval: constants.APPROVAL_REJECTED, Comment: text}

	var err error
	if roleOf(s) == lifecycle.RoleTechSupp {
		err = bh.apiFor(s).ReviewTechReport(ctx, target.TaskID, target.ReportID, payload)
	} else {
		err = bh.apiFor(s).ReviewReport(ctx, target.TaskID, target.ReportID, payload)
	}
	if err != nil {
		bh.sendErrorMessageHelper(chatID, 0, err)
		return
	}
	bh.Deps.SessionManager.ClearState(chatID)
	bh.Deps.SessionManager.ClearTempTarget(chatID)
	bh.SendReviewsList(chatID, 0, 0)
}
