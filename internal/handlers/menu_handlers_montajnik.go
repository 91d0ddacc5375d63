package handlers

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	tgbotapi "github.com/OvyFlash/telegram-bot-api"

	"montajbot/internal/constants"
	"montajbot/internal/lifecycle"
	"montajbot/internal/models"
	"montajbot/internal/session"
)

// Сдача отчета монтажником: текст, затем фото, затем отправка.

// fileDownloadClient скачивает файлы с серверов Telegram перед загрузкой
// на бэкенд.
var fileDownloadClient = &http.Client{Timeout: 60 * time.Second}

// StartReportFlow начинает сдачу отчета по заданию. Пока предыдущий отчет
// не рассмотрен, новый сдать нельзя.
func (bh *BotHandler) StartReportFlow(chatID int64, messageID int, taskID int64) {
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
	if task.Status != constants.STATUS_STARTED {
		bh.draftInputRetry(chatID, "Отчет можно сдать только по заданию с начатыми работами.")
		bh.SendTaskCard(chatID, messageID, taskID)
		return
	}
	if lifecycle.HasPendingReport(task.Reports) {
		bh.draftInputRetry(chatID, "По заданию уже есть отчет на проверке. Дождитесь решения.")
		bh.SendTaskCard(chatID, messageID, taskID)
		return
	}

	bh.Deps.SessionManager.UpdateTempReport(chatID, session.TempReportData{
		TaskID:    taskID,
		MessageID: messageID,
	})
	bh.Deps.SessionManager.SetState(chatID, constants.STATE_REPORT_TEXT)

	kb := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✖️ Отменить", constants.CALLBACK_REPORT_CANCEL)),
	)
	text := fmt.Sprintf("📄 Отчет по заданию #%d.\nОпишите выполненные работы:", taskID)
	if _, err := bh.sendOrEditMessageHelper(chatID, messageID, text, &kb); err != nil {
		log.Printf("handlers: ошибка запроса текста отчета chatID %d: %v", chatID, err)
	}
}

// handleReportTextInput — текст из состояния STATE_REPORT_TEXT.
func (bh *BotHandler) handleReportTextInput(chatID int64, s session.Session, text string) {
	temp := bh.Deps.SessionManager.GetTempReport(chatID)
	if temp.TaskID == 0 {
		bh.Deps.SessionManager.ClearState(chatID)
		bh.SendMainMenu(chatID, 0)
		return
	}
	temp.Text = text
	bh.Deps.SessionManager.UpdateTempReport(chatID, temp)
	bh.Deps.SessionManager.SetState(chatID, constants.STATE_REPORT_PHOTOS)
	bh.renderReportPhotosScreen(chatID, s)
}

// renderReportPhotosScreen показывает экран набора фотографий отчета.
func (bh *BotHandler) renderReportPhotosScreen(chatID int64, s session.Session) {
	temp := bh.Deps.SessionManager.GetTempReport(chatID)
	text := fmt.Sprintf(
		"📷 Пришлите фотографии выполненных работ (до %d шт).\nЗагружено: %d.\nКогда закончите, нажмите «Отправить отчет».",
		constants.MAX_REPORT_PHOTOS, len(temp.Photos))

	kb := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📤 Отправить отчет", constants.CALLBACK_REPORT_SUBMIT)),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✖️ Отменить", constants.CALLBACK_REPORT_CANCEL)),
	)
	sent, err := bh.sendOrEditMessageHelper(chatID, temp.MessageID, text, &kb)
	if err != nil {
		log.Printf("handlers: ошибка отрисовки экрана фото chatID %d: %v", chatID, err)
		return
	}
	if sent.MessageID != 0 && sent.MessageID != temp.MessageID {
		temp = bh.Deps.SessionManager.GetTempReport(chatID)
		temp.MessageID = sent.MessageID
		bh.Deps.SessionManager.UpdateTempReport(chatID, temp)
	}
}

// HandleReportPhoto скачивает присланное фото с серверов Telegram и
// загружает его на бэкенд как вложение задания.
func (bh *BotHandler) HandleReportPhoto(message *tgbotapi.Message) {
	chatID := message.Chat.ID
	s, ok := bh.requireSession(chatID, 0)
	if !ok {
		return
	}
	temp := bh.Deps.SessionManager.GetTempReport(chatID)
	if temp.TaskID == 0 || len(message.Photo) == 0 {
		return
	}

	// Telegram присылает несколько размеров, берем самый крупный.
	photo := message.Photo[len(message.Photo)-1]
	fileURL, err := bh.Deps.BotClient.GetFileDirectURL(photo.FileID)
	if err != nil {
		bh.sendErrorMessageHelper(chatID, 0, err)
		return
	}
	resp, err := fileDownloadClient.Get(fileURL)
	if err != nil {
		bh.sendErrorMessageHelper(chatID, 0, err)
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		bh.sendErrorMessageHelper(chatID, 0, fmt.Errorf("telegram вернул %d при скачивании фото", resp.StatusCode))
		return
	}

	attachment, err := bh.apiFor(s).UploadAttachment(context.Background(), temp.TaskID, photo.FileUniqueID+".jpg", resp.Body)
	if err != nil {
		bh.sendErrorMessageHelper(chatID, 0, err)
		return
	}

	count, limitHit := bh.Deps.SessionManager.AddTempReportPhoto(chatID, attachment.StorageKey, constants.MAX_REPORT_PHOTOS)
	if limitHit {
		bh.draftInputRetry(chatID, fmt.Sprintf("Лимит фотографий исчерпан (%d). Отправьте отчет.", constants.MAX_REPORT_PHOTOS))
		return
	}
	log.Printf("handlers: фото отчета загружено, задание %d, всего фото %d (chatID %d)", temp.TaskID, count, chatID)
	bh.renderReportPhotosScreen(chatID, s)
}

// handleReportSubmit отправляет собранный отчет. Отчет без текста или без
// фото (когда задание требует фотоотчет) не уходит.
func (bh *BotHandler) handleReportSubmit(chatID int64, s session.Session) {
	temp := bh.Deps.SessionManager.GetTempReport(chatID)
	if temp.TaskID == 0 || temp.Text == "" {
		bh.draftInputRetry(chatID, "Сначала опишите выполненные работы.")
		return
	}
	ctx := context.Background()
	api := bh.apiFor(s)

	task, err := api.GetTask(ctx, roleOf(s), temp.TaskID)
	if err != nil {
		bh.sendErrorMessageHelper(chatID, temp.MessageID, err)
		return
	}
	if task.PhotoRequired && len(temp.Photos) == 0 {
		bh.draftInputRetry(chatID, "Это задание требует фотоотчет. Пришлите хотя бы одно фото.")
		return
	}

	if _, err := api.SubmitReport(ctx, temp.TaskID, models.ReportPayload{
		Text:   temp.Text,
		Photos: temp.Photos,
	}); err != nil {
		bh.sendErrorMessageHelper(chatID, temp.MessageID, err)
		return
	}

	messageID := temp.MessageID
	taskID := temp.TaskID
	bh.Deps.SessionManager.ClearTempReport(chatID)
	bh.Deps.SessionManager.ClearState(chatID)
	bh.SendTaskCard(chatID, messageID, taskID)
}

// handleReportCancel прерывает сдачу отчета.
func (bh *BotHandler) handleReportCancel(chatID int64, s session.Session) {
	temp := bh.Deps.SessionManager.GetTempReport(chatID)
	messageID := temp.MessageID
	taskID := temp.TaskID
	bh.Deps.SessionManager.ClearTempReport(chatID)
	bh.Deps.SessionManager.ClearState(chatID)
	if taskID != 0 {
		bh.SendTaskCard(chatID, messageID, taskID)
		return
	}
	bh.SendMainMenu(chatID, messageID)
}
