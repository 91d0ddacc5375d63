package backend

import (
	"context"
	"fmt"

	"montajbot/internal/models"
)

// AvailableTasks — задания общего пула, которые монтажник может взять.
func (c *Client) AvailableTasks(ctx context.Context) (TaskList, error) {
	var list TaskList
	if err := c.get(ctx, "/montajnik/tasks/available", nil, &list); err != nil {
		return TaskList{}, err
	}
	return list, nil
}

// AssignedTasks — индивидуальные назначения, ожидающие принятия.
func (c *Client) AssignedTasks(ctx context.Context) (TaskList, error) {
	var list TaskList
	if err := c.get(ctx, "/montajnik/tasks/assigned", nil, &list); err != nil {
		return TaskList{}, err
	}
	return list, nil
}

// MyTasks — задания, которые монтажник уже ведет.
func (c *Client) MyTasks(ctx context.Context) (TaskList, error) {
	var list TaskList
	if err := c.get(ctx, "/montajnik/tasks/mine", nil, &list); err != nil {
		return TaskList{}, err
	}
	return list, nil
}

// AcceptTask принимает задание (из пула или индивидуальное).
func (c *Client) AcceptTask(ctx context.Context, id int64) (models.Task, error) {
	var t models.Task
	if err := c.post(ctx, fmt.Sprintf("/montajnik/tasks/%d/accept", id), nil, &t); err != nil {
		return models.Task{}, err
	}
	return t, nil
}

// RejectTask отказывается от индивидуального назначения; задание уходит
// обратно в общий пул.
func (c *Client) RejectTask(ctx context.Context, id int64) error {
	return c.post(ctx, fmt.Sprintf("/montajnik/tasks/%d/reject", id), nil, nil)
}

// statusRequest — тело смены статуса.
type statusRequest struct {
	Status string `json:"status"`
}

// SetTaskStatus двигает задание по цепочке монтажника
// (accepted → on_the_road → on_site → started).
func (c *Client) SetTaskStatus(ctx context.Context, id int64, status string) (models.Task, error) {
	var t models.Task
	if err := c.post(ctx, fmt.Sprintf("/montajnik/tasks/%d/status", id), statusRequest{Status: status}, &t); err != nil {
		return models.Task{}, err
	}
	return t, nil
}

// SubmitReport сдает отчет по заданию. Бэкенд создает отчет со статусами
// согласования waiting и переводит задание на проверку.
func (c *Client) SubmitReport(ctx context.Context, taskID int64, p models.ReportPayload) (models.Report, error) {
	var r models.Report
	if err := c.post(ctx, fmt.Sprintf("/montajnik/tasks/%d/report", taskID), p, &r); err != nil {
		return models.Report{}, err
	}
	return r, nil
}
