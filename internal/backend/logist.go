package backend

import (
	"context"
	"fmt"

	"montajbot/internal/models"
)

// --- Черновики ---

// Drafts возвращает черновики логиста.
func (c *Client) Drafts(ctx context.Context) ([]models.Draft, error) {
	var drafts []models.Draft
	if err := c.get(ctx, "/logist/drafts", nil, &drafts); err != nil {
		return nil, err
	}
	return drafts, nil
}

// GetDraft возвращает один черновик.
func (c *Client) GetDraft(ctx context.Context, id int64) (models.Draft, error) {
	var d models.Draft
	if err := c.get(ctx, fmt.Sprintf("/logist/drafts/%d", id), nil, &d); err != nil {
		return models.Draft{}, err
	}
	return d, nil
}

// CreateDraft создает черновик.
func (c *Client) CreateDraft(ctx context.Context, p models.TaskPayload) (models.Draft, error) {
	var d models.Draft
	if err := c.post(ctx, "/logist/drafts", p, &d); err != nil {
		return models.Draft{}, err
	}
	return d, nil
}

// UpdateDraft правит черновик.
func (c *Client) UpdateDraft(ctx context.Context, id int64, p models.TaskPayload) (models.Draft, error) {
	var d models.Draft
	if err := c.patch(ctx, fmt.Sprintf("/logist/drafts/%d", id), p, &d); err != nil {
		return models.Draft{}, err
	}
	return d, nil
}

// DeleteDraft удаляет черновик.
func (c *Client) DeleteDraft(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/logist/drafts/%d", id))
}

// publishResponse — ответ публикации черновика.
type publishResponse struct {
	ID int64 `json:"id"`
}

// PublishDraft публикует черновик и возвращает id созданного задания.
// Ответ без пригодного id — ошибка: дальше этим id откроется карточка.
func (c *Client) PublishDraft(ctx context.Context, draftID int64) (int64, error) {
	var out publishResponse
	if err := c.post(ctx, fmt.Sprintf("/logist/drafts/%d/publish", draftID), nil, &out); err != nil {
		return 0, err
	}
	if out.ID == 0 {
		return 0, fmt.Errorf("публикация черновика %d: бэкенд не вернул id задания", draftID)
	}
	return out.ID, nil
}

// --- Задания ---

// CreateTask создает задание сразу в статусе new, минуя черновик.
func (c *Client) CreateTask(ctx context.Context, p models.TaskPayload) (models.Task, error) {
	var t models.Task
	if err := c.post(ctx, "/logist/tasks", p, &t); err != nil {
		return models.Task{}, err
	}
	return t, nil
}

// UpdateTask правит задание от имени логиста.
func (c *Client) UpdateTask(ctx context.Context, id int64, p models.TaskPayload) (models.Task, error) {
	var t models.Task
	if err := c.patch(ctx, fmt.Sprintf("/logist/tasks/%d", id), p, &t); err != nil {
		return models.Task{}, err
	}
	return t, nil
}

// ArchiveTask убирает задание в архив.
func (c *Client) ArchiveTask(ctx context.Context, id int64) error {
	return c.post(ctx, fmt.Sprintf("/logist/tasks/%d/archive", id), nil, nil)
}

// UnarchiveTask возвращает задание из архива в черновики.
func (c *Client) UnarchiveTask(ctx context.Context, id int64) error {
	return c.post(ctx, fmt.Sprintf("/logist/tasks/%d/unarchive", id), nil, nil)
}

// CompleteTask завершает задание после полностью согласованного отчета.
func (c *Client) CompleteTask(ctx context.Context, id int64) error {
	return c.post(ctx, fmt.Sprintf("/logist/tasks/%d/complete", id), nil, nil)
}

// returnRequest — тело возврата на доработку.
type returnRequest struct {
	Comment string `json:"comment"`
}

// ReturnTask возвращает задание монтажнику на доработку с комментарием.
func (c *Client) ReturnTask(ctx context.Context, id int64, comment string) error {
	return c.post(ctx, fmt.Sprintf("/logist/tasks/%d/return", id), returnRequest{Comment: comment}, nil)
}

// ReviewReport — решение логиста по отчету. Меняет только поля согласования
// отчета, статус задания не трогает.
func (c *Client) ReviewReport(ctx context.Context, taskID, reportID int64, p models.ReviewPayload) error {
	return c.post(ctx, fmt.Sprintf("/logist/tasks/%d/reports/%d/review", taskID, reportID), p, nil)
}

// Montajniks возвращает активных монтажников для индивидуального
// назначения задания.
func (c *Client) Montajniks(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := c.get(ctx, "/logist/montajniks", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// PendingReviews — задания логиста с отчетами, ожидающими его решения.
func (c *Client) PendingReviews(ctx context.Context) (TaskList, error) {
	var list TaskList
	if err := c.get(ctx, "/logist/reviews", nil, &list); err != nil {
		return TaskList{}, err
	}
	return list, nil
}
