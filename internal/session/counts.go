package session

import (
	"context"
	"log"

	"montajbot/internal/backend"
	"montajbot/internal/constants"
	"montajbot/internal/lifecycle"
)

// RefreshCounts обновляет счетчики бейджей для роли сессии. Каждый счетчик
// обновляется независимо; ошибка любого запроса логируется, а счетчик
// остается прежним — меню не должно падать из-за бейджа.
func (m *Manager) RefreshCounts(ctx context.Context, chatID int64, api *backend.Client) {
	sess, ok := m.Get(chatID)
	if !ok {
		return
	}
	role, err := lifecycle.ParseRole(sess.Role)
	if err != nil {
		log.Printf("session: счетчики chatID %d не обновлены: %v", chatID, err)
		return
	}
	bound := api.WithToken(sess.Token)

	switch role {
	case lifecycle.RoleLogist:
		m.refreshOne(chatID, "новые задания", func(c *Counts, n int) { c.LogistNew = n }, func() (int, error) {
			list, err := bound.FilterTasks(ctx, role, backend.TaskFilter{Status: []string{constants.STATUS_NEW}})
			return list.Total, err
		})
		m.refreshOne(chatID, "отчеты на проверке", func(c *Counts, n int) { c.LogistReviews = n }, func() (int, error) {
			list, err := bound.PendingReviews(ctx)
			return list.Total, err
		})
	case lifecycle.RoleAdmin:
		m.refreshOne(chatID, "активные задания", func(c *Counts, n int) { c.AdminActive = n }, func() (int, error) {
			list, err := bound.ListTasks(ctx, role)
			return list.Total, err
		})
	case lifecycle.RoleMontajnik:
		m.refreshOne(chatID, "доступные задания", func(c *Counts, n int) { c.MontajnikAvailable = n }, func() (int, error) {
			list, err := bound.AvailableTasks(ctx)
			return list.Total, err
		})
		m.refreshOne(chatID, "назначенные задания", func(c *Counts, n int) { c.MontajnikAssigned = n }, func() (int, error) {
			list, err := bound.AssignedTasks(ctx)
			return list.Total, err
		})
	case lifecycle.RoleTechSupp:
		m.refreshOne(chatID, "отчеты на техпроверке", func(c *Counts, n int) { c.TechReviews = n }, func() (int, error) {
			list, err := bound.TechPendingReviews(ctx)
			return list.Total, err
		})
	}
}

func (m *Manager) refreshOne(chatID int64, what string, set func(*Counts, int), fetch func() (int, error)) {
	n, err := fetch()
	if err != nil {
		log.Printf("session: счетчик «%s» для chatID %d не обновлен: %v", what, chatID, err)
		return
	}
	m.UpdateCounts(chatID, func(c *Counts) { set(c, n) })
}
