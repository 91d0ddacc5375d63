package handlers

import (
	"testing"

	tgbotapi "github.com/OvyFlash/telegram-bot-api"

	"montajbot/internal/constants"
	"montajbot/internal/lifecycle"
	"montajbot/internal/session"
)

func menuCallbacks(rows [][]tgbotapi.InlineKeyboardButton) map[string]bool {
	set := make(map[string]bool)
	for _, row := range rows {
		for _, btn := range row {
			if btn.CallbackData != nil {
				set[*btn.CallbackData] = true
			}
		}
	}
	return set
}

func TestMainMenuRowsPerRole(t *testing.T) {
	cases := []struct {
		role lifecycle.Role
		want []string
	}{
		{lifecycle.RoleLogist, []string{
			constants.CALLBACK_TASKS_ACTIVE,
			constants.CALLBACK_DRAFTS,
			constants.CALLBACK_DRAFT_NEW,
			constants.CALLBACK_REVIEWS,
			constants.CALLBACK_TASKS_HISTORY,
			constants.CALLBACK_EXPORT_XLSX,
		}},
		{lifecycle.RoleAdmin, []string{
			constants.CALLBACK_TASKS_ACTIVE,
			constants.CALLBACK_ADMIN_USERS,
			constants.CALLBACK_ADMIN_EQUIPMENT,
			constants.CALLBACK_ADMIN_WORK_TYPES,
			constants.CALLBACK_EXPORT_XLSX,
		}},
		{lifecycle.RoleMontajnik, []string{
			constants.CALLBACK_TASKS_AVAILABLE,
			constants.CALLBACK_TASKS_ASSIGNED,
			constants.CALLBACK_TASKS_MINE,
			constants.CALLBACK_TASKS_HISTORY,
		}},
		{lifecycle.RoleTechSupp, []string{
			constants.CALLBACK_REVIEWS,
			constants.CALLBACK_TASKS_HISTORY,
		}},
	}

	for _, tc := range cases {
		rows, ok := mainMenuRows(tc.role, session.Counts{})
		if !ok {
			t.Fatalf("роль %s: меню не собрано", tc.role)
		}
		got := menuCallbacks(rows)
		for _, cb := range tc.want {
			if !got[cb] {
				t.Errorf("роль %s: в меню нет кнопки %q", tc.role, cb)
			}
		}
	}
}

func TestMainMenuRowsUnknownRole(t *testing.T) {
	if rows, ok := mainMenuRows(lifecycle.RoleUnknown, session.Counts{}); ok || rows != nil {
		t.Fatalf("для нераспознанной роли ожидалось пустое меню, получено %v", rows)
	}
}
