package backend

import (
	"context"
	"fmt"

	"montajbot/internal/lifecycle"
	"montajbot/internal/models"
)

// TaskEndpoints — набор путей «список / фильтр / задание» для одной роли.
// Веб-клиент дублировал эту логику четырьмя почти одинаковыми деревьями
// страниц; здесь она сведена к одной записи возможностей на роль.
type TaskEndpoints struct {
	List   string // активные задания роли
	Filter string // фильтрация с query-параметрами
	Get    string // одно задание, шаблон с %d
}

// taskEndpointsByRole покрывает все роли. Полнота проверяется тестом.
var taskEndpointsByRole = map[lifecycle.Role]TaskEndpoints{
	lifecycle.RoleLogist: {
		List:   "/logist/tasks",
		Filter: "/logist/tasks_logist/filter",
		Get:    "/logist/tasks/%d",
	},
	lifecycle.RoleAdmin: {
		List:   "/admin/tasks",
		Filter: "/admin/tasks/filter",
		Get:    "/admin/tasks/%d",
	},
	lifecycle.RoleMontajnik: {
		List:   "/montajnik/tasks",
		Filter: "/montajnik/tasks/filter",
		Get:    "/montajnik/tasks/%d",
	},
	lifecycle.RoleTechSupp: {
		List:   "/tech/tasks",
		Filter: "/tech/tasks/filter",
		Get:    "/tech/tasks/%d",
	},
}

// EndpointsFor возвращает набор эндпоинтов роли.
func EndpointsFor(role lifecycle.Role) (TaskEndpoints, error) {
	ep, ok := taskEndpointsByRole[role]
	if !ok {
		return TaskEndpoints{}, fmt.Errorf("для роли %s нет набора эндпоинтов", role)
	}
	return ep, nil
}

// TaskList — списочный ответ бэкенда. Total используется счетчиками меню.
type TaskList struct {
	Items []models.Task `json:"items"`
	Total int           `json:"total"`
}

// ListTasks — общий список активных заданий роли.
func (c *Client) ListTasks(ctx context.Context, role lifecycle.Role) (TaskList, error) {
	ep, err := EndpointsFor(role)
	if err != nil {
		return TaskList{}, err
	}
	var list TaskList
	if err := c.get(ctx, ep.List, nil, &list); err != nil {
		return TaskList{}, err
	}
	return list, nil
}

// FilterTasks — общий фильтрованный список заданий роли.
func (c *Client) FilterTasks(ctx context.Context, role lifecycle.Role, f TaskFilter) (TaskList, error) {
	ep, err := EndpointsFor(role)
	if err != nil {
		return TaskList{}, err
	}
	var list TaskList
	if err := c.get(ctx, ep.Filter, f.Values(), &list); err != nil {
		return TaskList{}, err
	}
	return list, nil
}

// GetTask — одно задание глазами роли.
func (c *Client) GetTask(ctx context.Context, role lifecycle.Role, id int64) (models.Task, error) {
	ep, err := EndpointsFor(role)
	if err != nil {
		return models.Task{}, err
	}
	var task models.Task
	if err := c.get(ctx, fmt.Sprintf(ep.Get, id), nil, &task); err != nil {
		return models.Task{}, err
	}
	return task, nil
}
