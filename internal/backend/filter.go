package backend

import (
	"net/url"
	"strconv"
	"strings"
)

// TaskFilter — параметры фильтрации списков заданий. Семантика одна для
// всех ролей, различаются только эндпоинты (см. endpoints.go).
type TaskFilter struct {
	Status         []string
	CompanyID      int64
	AssignedUserID int64
	WorkTypeID     int64
	TaskID         int64
	EquipmentID    int64
	Search         string
}

// Values сериализует фильтр в query-параметры. В запрос попадают только
// заполненные поля; список статусов склеивается через запятую.
func (f TaskFilter) Values() url.Values {
	q := url.Values{}
	if len(f.Status) > 0 {
		var nonEmpty []string
		for _, s := range f.Status {
			if s != "" {
				nonEmpty = append(nonEmpty, s)
			}
		}
		if len(nonEmpty) > 0 {
			q.Set("status", strings.Join(nonEmpty, ","))
		}
	}
	setID := func(key string, v int64) {
		if v != 0 {
			q.Set(key, strconv.FormatInt(v, 10))
		}
	}
	setID("company_id", f.CompanyID)
	setID("assigned_user_id", f.AssignedUserID)
	setID("work_type_id", f.WorkTypeID)
	setID("task_id", f.TaskID)
	setID("equipment_id", f.EquipmentID)
	if s := strings.TrimSpace(f.Search); s != "" {
		q.Set("search", s)
	}
	return q
}

// IsEmpty — пустой фильтр не добавляет query-параметров вовсе.
func (f TaskFilter) IsEmpty() bool {
	return len(f.Values()) == 0
}
