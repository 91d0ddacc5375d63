// Пакет lifecycle описывает правила жизненного цикла задания и отчета.
// Правила применяются ботом до обращения к бэкенду: кнопка действия
// просто не показывается, если переход для этой роли невозможен.
// Последнее слово всегда за бэкендом.
package lifecycle

import (
	"fmt"

	"montajbot/internal/constants"
	"montajbot/internal/models"
)

// Role — роль пользователя. Типизированный вариант вместо сравнения строк:
// switch по Role обязан быть полным, пропущенную роль видно на ревью.
type Role int

const (
	RoleUnknown Role = iota
	RoleAdmin
	RoleLogist
	RoleMontajnik
	RoleTechSupp
)

// ParseRole переводит строку протокола в Role.
func ParseRole(s string) (Role, error) {
	switch s {
	case constants.ROLE_ADMIN:
		return RoleAdmin, nil
	case constants.ROLE_LOGIST:
		return RoleLogist, nil
	case constants.ROLE_MONTAJNIK:
		return RoleMontajnik, nil
	case constants.ROLE_TECHSUPP:
		return RoleTechSupp, nil
	}
	return RoleUnknown, fmt.Errorf("неизвестная роль: %q", s)
}

// String возвращает строку протокола.
func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return constants.ROLE_ADMIN
	case RoleLogist:
		return constants.ROLE_LOGIST
	case RoleMontajnik:
		return constants.ROLE_MONTAJNIK
	case RoleTechSupp:
		return constants.ROLE_TECHSUPP
	}
	return "unknown"
}

// Display возвращает название роли для показа пользователю.
func (r Role) Display() string {
	return constants.RoleDisplayMap[r.String()]
}

// transition — разрешенный переход статуса для набора ролей.
type transition struct {
	from, to string
	roles    []Role
}

// Таблица переходов. Полная: всё, чего здесь нет, запрещено.
var transitions = []transition{
	// Логист/админ управляют черновиками и терминальными статусами.
	{constants.STATUS_DRAFT, constants.STATUS_NEW, []Role{RoleLogist, RoleAdmin}},       // публикация
	{constants.STATUS_ARCHIVED, constants.STATUS_DRAFT, []Role{RoleLogist, RoleAdmin}},  // разархивация
	{constants.STATUS_INSPECTION, constants.STATUS_COMPLETED, []Role{RoleLogist, RoleAdmin}},
	{constants.STATUS_INSPECTION, constants.STATUS_RETURNED, []Role{RoleLogist, RoleAdmin}},
	{constants.STATUS_NEW, constants.STATUS_ARCHIVED, []Role{RoleLogist, RoleAdmin}},
	{constants.STATUS_ASSIGNED, constants.STATUS_ARCHIVED, []Role{RoleLogist, RoleAdmin}},
	{constants.STATUS_COMPLETED, constants.STATUS_ARCHIVED, []Role{RoleLogist, RoleAdmin}},
	{constants.STATUS_INSPECTION, constants.STATUS_ARCHIVED, []Role{RoleLogist, RoleAdmin}},
	{constants.STATUS_RETURNED, constants.STATUS_ARCHIVED, []Role{RoleLogist, RoleAdmin}},

	// Монтажник ведет задание по основной цепочке.
	{constants.STATUS_NEW, constants.STATUS_ACCEPTED, []Role{RoleMontajnik}},
	{constants.STATUS_ASSIGNED, constants.STATUS_ACCEPTED, []Role{RoleMontajnik}},
	{constants.STATUS_ASSIGNED, constants.STATUS_NEW, []Role{RoleMontajnik}}, // отказ: обратно в общий пул
	{constants.STATUS_RETURNED, constants.STATUS_ACCEPTED, []Role{RoleMontajnik}},
	{constants.STATUS_ACCEPTED, constants.STATUS_ON_THE_ROAD, []Role{RoleMontajnik}},
	{constants.STATUS_ON_THE_ROAD, constants.STATUS_ON_SITE, []Role{RoleMontajnik}},
	{constants.STATUS_ON_SITE, constants.STATUS_STARTED, []Role{RoleMontajnik}},
	{constants.STATUS_STARTED, constants.STATUS_INSPECTION, []Role{RoleMontajnik}}, // сдача отчета
}

// CanTransition сообщает, разрешен ли роли переход from -> to.
func CanTransition(role Role, from, to string) bool {
	for _, t := range transitions {
		if t.from != from || t.to != to {
			continue
		}
		for _, r := range t.roles {
			if r == role {
				return true
			}
		}
	}
	return false
}

// NextStatuses возвращает статусы, в которые роль может перевести задание.
// Порядок стабилен (порядок таблицы), чтобы кнопки не прыгали.
func NextStatuses(role Role, from string) []string {
	var out []string
	for _, t := range transitions {
		if t.from != from {
			continue
		}
		for _, r := range t.roles {
			if r == role {
				out = append(out, t.to)
				break
			}
		}
	}
	return out
}

// HasPendingReport отвечает, есть ли у задания отчет на согласовании.
// Пока такой есть, новый отчет сдавать нельзя.
func HasPendingReport(reports []models.Report) bool {
	for _, r := range reports {
		if r.ApprovalLogist == constants.APPROVAL_WAITING || r.ApprovalTech == constants.APPROVAL_WAITING {
			return true
		}
	}
	return false
}

// NeedsTechReview — требуется ли согласование техподдержки: да, если хотя бы
// один вид работ задания помечен соответствующим флагом в справочнике.
func NeedsTechReview(taskWorkTypes []models.TaskWorkType, catalog []models.WorkType) bool {
	flagged := make(map[int64]bool, len(catalog))
	for _, wt := range catalog {
		if wt.RequiresTechReview {
			flagged[wt.ID] = true
		}
	}
	for _, twt := range taskWorkTypes {
		if flagged[twt.WorkTypeID] {
			return true
		}
	}
	return false
}

// ReportSettled — полностью ли согласован отчет: логист согласовал, и либо
// техподдержка согласовала, либо ее согласование не требуется.
func ReportSettled(r models.Report, techRequired bool) bool {
	if r.ApprovalLogist != constants.APPROVAL_APPROVED {
		return false
	}
	if !techRequired {
		return true
	}
	return r.ApprovalTech == constants.APPROVAL_APPROVED
}

// ReportRejected — отклонен ли отчет хотя бы одной из сторон.
func ReportRejected(r models.Report) bool {
	return r.ApprovalLogist == constants.APPROVAL_REJECTED || r.ApprovalTech == constants.APPROVAL_REJECTED
}

// CanComplete — может ли логист завершить задание: оно на проверке и
// последний отчет полностью согласован.
func CanComplete(task models.Task, techRequired bool) bool {
	if task.Status != constants.STATUS_INSPECTION || len(task.Reports) == 0 {
		return false
	}
	last := task.Reports[len(task.Reports)-1]
	return ReportSettled(last, techRequired)
}
