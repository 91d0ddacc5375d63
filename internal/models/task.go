package models

import "time"

// TaskEquipment — позиция оборудования внутри задания.
type TaskEquipment struct {
	EquipmentID  int64  `json:"equipment_id"`
	SerialNumber string `json:"serial_number,omitempty"`
	Quantity     int    `json:"quantity"`
}

// TaskWorkType — вид работ внутри задания.
type TaskWorkType struct {
	WorkTypeID int64 `json:"work_type_id"`
	Quantity   int   `json:"quantity"`
}

// Task — задание на монтаж в том виде, в каком его отдает бэкенд.
// Бот ничего не хранит и не валидирует сверх необходимого для UI:
// источником истины всегда остается бэкенд.
type Task struct {
	ID              int64           `json:"id"`
	Status          string          `json:"status"`
	CompanyID       int64           `json:"company_id,omitempty"`
	ContactPersonID int64           `json:"contact_person_id,omitempty"`
	VehicleInfo     string          `json:"vehicle_info,omitempty"`
	GosNumber       string          `json:"gos_number,omitempty"`
	ScheduledAt     string          `json:"scheduled_at,omitempty"`
	Location        string          `json:"location,omitempty"`
	Comment         string          `json:"comment,omitempty"`
	ClientPrice     float64         `json:"client_price,omitempty"`
	MontajnikReward float64         `json:"montajnik_reward,omitempty"`
	AssignmentType  string          `json:"assignment_type,omitempty"`
	AssignedUserID  int64           `json:"assigned_user_id,omitempty"`
	PhotoRequired   bool            `json:"photo_required,omitempty"`
	Equipment       []TaskEquipment `json:"equipment,omitempty"`
	WorkTypes       []TaskWorkType  `json:"work_types,omitempty"`
	Attachments     []Attachment    `json:"attachments,omitempty"`
	Reports         []Report        `json:"reports,omitempty"`
	History         []HistoryEntry  `json:"history,omitempty"`
	CreatedAt       time.Time       `json:"created_at,omitempty"`
	UpdatedAt       time.Time       `json:"updated_at,omitempty"`
}

// TaskPayload — тело создания/редактирования задания или черновика.
// Указатели не используются: бэкенд принимает полный снимок полей,
// как это делал и веб-клиент.
type TaskPayload struct {
	CompanyID       int64           `json:"company_id,omitempty"`
	ContactPersonID int64           `json:"contact_person_id,omitempty"`
	VehicleInfo     string          `json:"vehicle_info,omitempty"`
	GosNumber       string          `json:"gos_number,omitempty"`
	ScheduledAt     string          `json:"scheduled_at,omitempty"`
	Location        string          `json:"location,omitempty"`
	Comment         string          `json:"comment,omitempty"`
	ClientPrice     float64         `json:"client_price,omitempty"`
	MontajnikReward float64         `json:"montajnik_reward,omitempty"`
	AssignmentType  string          `json:"assignment_type,omitempty"`
	AssignedUserID  int64           `json:"assigned_user_id,omitempty"`
	PhotoRequired   bool            `json:"photo_required,omitempty"`
	Equipment       []TaskEquipment `json:"equipment,omitempty"`
	WorkTypes       []TaskWorkType  `json:"work_types,omitempty"`
}

// Draft — неопубликованное задание логиста. Поля совпадают с Task,
// но жизнь у черновика своя: он редактируется и удаляется независимо,
// а при публикации бэкенд создает новое задание и возвращает его id.
type Draft struct {
	ID int64 `json:"id"`
	TaskPayload
	CreatedAt time.Time `json:"created_at,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}
