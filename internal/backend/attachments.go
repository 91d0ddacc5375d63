package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"

	"github.com/google/uuid"

	"montajbot/internal/models"
)

// UploadAttachment загружает файл вложения к заданию через запасной
// (не-presigned) путь загрузки. Пустое имя файла заменяется случайным:
// Telegram отдает фото без имен.
func (c *Client) UploadAttachment(ctx context.Context, taskID int64, filename string, src io.Reader) (models.Attachment, error) {
	if filename == "" {
		filename = uuid.New().String() + ".jpg"
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filepath.Base(filename))
	if err != nil {
		return models.Attachment{}, fmt.Errorf("ошибка подготовки multipart: %w", err)
	}
	if _, err := io.Copy(part, src); err != nil {
		return models.Attachment{}, fmt.Errorf("ошибка чтения файла %s: %w", filename, err)
	}
	if err := mw.Close(); err != nil {
		return models.Attachment{}, fmt.Errorf("ошибка завершения multipart: %w", err)
	}

	u := fmt.Sprintf("%s/attachments/upload-fallback?task_id=%d", c.baseURL, taskID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, &buf)
	if err != nil {
		return models.Attachment{}, fmt.Errorf("ошибка создания запроса загрузки: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	c.setCommonHeaders(req, http.MethodPost)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return models.Attachment{}, fmt.Errorf("ошибка загрузки вложения: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return models.Attachment{}, fmt.Errorf("ошибка чтения ответа загрузки: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return models.Attachment{}, parseAPIError(resp.StatusCode, body)
	}

	var att models.Attachment
	if err := json.Unmarshal(body, &att); err != nil {
		return models.Attachment{}, fmt.Errorf("ошибка разбора ответа загрузки: %w", err)
	}
	return att, nil
}

// TaskAttachments возвращает вложения задания.
func (c *Client) TaskAttachments(ctx context.Context, taskID int64) ([]models.Attachment, error) {
	var atts []models.Attachment
	if err := c.get(ctx, fmt.Sprintf("/attachments/tasks/%d/attachments", taskID), nil, &atts); err != nil {
		return nil, err
	}
	return atts, nil
}

// DownloadAttachment отдает поток содержимого вложения и его Content-Type.
// Закрыть поток обязан вызывающий. Используется медиа-прокси бота.
func (c *Client) DownloadAttachment(ctx context.Context, attachmentID int64) (io.ReadCloser, string, error) {
	u := fmt.Sprintf("%s/attachments/%d/download", c.baseURL, attachmentID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, "", fmt.Errorf("ошибка создания запроса вложения: %w", err)
	}
	c.setCommonHeaders(req, http.MethodGet)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("ошибка запроса вложения %d: %w", attachmentID, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, "", parseAPIError(resp.StatusCode, body)
	}
	return resp.Body, resp.Header.Get("Content-Type"), nil
}
