package backend

import (
	"context"
	"fmt"

	"montajbot/internal/models"
)

// TechPendingReviews — задания с отчетами, ожидающими решения техподдержки.
func (c *Client) TechPendingReviews(ctx context.Context) (TaskList, error) {
	var list TaskList
	if err := c.get(ctx, "/tech/reviews", nil, &list); err != nil {
		return TaskList{}, err
	}
	return list, nil
}

// ReviewTechReport — решение техподдержки по отчету. Эндпоинт отдельный от
// логистского: веб-клиент звал их по-разному, и считать их одним ресурсом
// мы не вправе.
func (c *Client) ReviewTechReport(ctx context.Context, taskID, reportID int64, p models.ReviewPayload) error {
	return c.post(ctx, fmt.Sprintf("/tech/tasks/%d/reports/%d/review", taskID, reportID), p, nil)
}
