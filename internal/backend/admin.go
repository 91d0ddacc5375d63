package backend

import (
	"context"
	"fmt"

	"montajbot/internal/models"
)

// --- Пользователи ---

// Users возвращает всех пользователей системы.
func (c *Client) Users(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := c.get(ctx, "/admin/users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// CreateUser заводит пользователя.
func (c *Client) CreateUser(ctx context.Context, p models.UserPayload) (models.User, error) {
	var u models.User
	if err := c.post(ctx, "/admin/users", p, &u); err != nil {
		return models.User{}, err
	}
	return u, nil
}

// UpdateUser правит пользователя (роль, активность, связка с Telegram).
func (c *Client) UpdateUser(ctx context.Context, id int64, p models.UserPayload) (models.User, error) {
	var u models.User
	if err := c.patch(ctx, fmt.Sprintf("/admin/users/%d", id), p, &u); err != nil {
		return models.User{}, err
	}
	return u, nil
}

// --- Каталог оборудования ---

// CreateEquipment добавляет позицию оборудования.
func (c *Client) CreateEquipment(ctx context.Context, p models.CatalogPayload) (models.Equipment, error) {
	var e models.Equipment
	if err := c.post(ctx, "/admin/equipment", p, &e); err != nil {
		return models.Equipment{}, err
	}
	return e, nil
}

// UpdateEquipment правит позицию оборудования.
func (c *Client) UpdateEquipment(ctx context.Context, id int64, p models.CatalogPayload) (models.Equipment, error) {
	var e models.Equipment
	if err := c.patch(ctx, fmt.Sprintf("/admin/equipment/%d", id), p, &e); err != nil {
		return models.Equipment{}, err
	}
	return e, nil
}

// DeleteEquipment удаляет позицию оборудования.
func (c *Client) DeleteEquipment(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/admin/equipment/%d", id))
}

// --- Виды работ ---

// CreateWorkType добавляет вид работ.
func (c *Client) CreateWorkType(ctx context.Context, p models.CatalogPayload) (models.WorkType, error) {
	var wt models.WorkType
	if err := c.post(ctx, "/admin/work-types", p, &wt); err != nil {
		return models.WorkType{}, err
	}
	return wt, nil
}

// UpdateWorkType правит вид работ (в том числе флаг техпроверки).
func (c *Client) UpdateWorkType(ctx context.Context, id int64, p models.CatalogPayload) (models.WorkType, error) {
	var wt models.WorkType
	if err := c.patch(ctx, fmt.Sprintf("/admin/work-types/%d", id), p, &wt); err != nil {
		return models.WorkType{}, err
	}
	return wt, nil
}

// DeleteWorkType удаляет вид работ.
func (c *Client) DeleteWorkType(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/admin/work-types/%d", id))
}

// AdminUpdateTask правит задание от имени администратора.
func (c *Client) AdminUpdateTask(ctx context.Context, id int64, p models.TaskPayload) (models.Task, error) {
	var t models.Task
	if err := c.patch(ctx, fmt.Sprintf("/admin/tasks/%d", id), p, &t); err != nil {
		return models.Task{}, err
	}
	return t, nil
}
