package models

import "time"

// Report — отчет монтажника по заданию. Согласуется независимо логистом
// и (если хотя бы один вид работ этого требует) техподдержкой.
type Report struct {
	ID              int64        `json:"id"`
	TaskID          int64        `json:"task_id"`
	Text            string       `json:"text"`
	Photos          []Attachment `json:"photos,omitempty"`
	ApprovalLogist  string       `json:"approval_logist"`
	ApprovalTech    string       `json:"approval_tech"`
	CommentLogist   string       `json:"comment_logist,omitempty"`
	CommentTech     string       `json:"comment_tech,omitempty"`
	TechReviewNeeds bool         `json:"tech_review_required,omitempty"`
	CreatedAt       time.Time    `json:"created_at,omitempty"`
}

// ReportPayload — тело создания отчета монтажником.
type ReportPayload struct {
	Text   string   `json:"text"`
	Photos []string `json:"photos,omitempty"` // storage_key загруженных вложений
}

// ReviewPayload — тело решения по отчету (логист или техподдержка).
// Approval принимает approved либо rejected; комментарий обязателен
// только при отклонении, это проверяет вызывающая сторона.
type ReviewPayload struct {
	Approval string   `json:"approval"`
	Comment  string   `json:"comment,omitempty"`
	Photos   []string `json:"photos,omitempty"`
}
