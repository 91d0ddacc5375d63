package models

import (
	"encoding/json"
	"time"
)

// Виды записей истории задания.
const (
	HistoryKindFreeText     = "free_text"
	HistoryKindFieldChanges = "field_changes"
)

// FieldChange — одно изменение поля в записи истории.
type FieldChange struct {
	Field string `json:"field"`
	Old   string `json:"old"`
	New   string `json:"new"`
}

// HistoryEntry — запись истории задания. Бэкенд отдает дискриминированную
// схему: kind и соответствующий payload (text либо changes). Старые записи
// приходят без kind, с полем comment, внутри которого может лежать как
// произвольный текст, так и JSON-массив изменений — их мы тоже принимаем.
type HistoryEntry struct {
	ID        int64         `json:"id"`
	AuthorID  int64         `json:"author_id,omitempty"`
	Kind      string        `json:"kind"`
	Text      string        `json:"text,omitempty"`
	Changes   []FieldChange `json:"changes,omitempty"`
	CreatedAt time.Time     `json:"created_at,omitempty"`
}

// UnmarshalJSON принимает и новую дискриминированную форму, и легаси-форму
// с единственным строковым comment.
func (h *HistoryEntry) UnmarshalJSON(data []byte) error {
	type alias HistoryEntry
	aux := struct {
		*alias
		Comment string `json:"comment,omitempty"`
	}{alias: (*alias)(h)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	if h.Kind != "" {
		return nil
	}

	// Легаси-запись: kind отсутствует, содержимое лежит в comment.
	var changes []FieldChange
	if aux.Comment != "" && json.Unmarshal([]byte(aux.Comment), &changes) == nil && len(changes) > 0 {
		h.Kind = HistoryKindFieldChanges
		h.Changes = changes
		return nil
	}
	h.Kind = HistoryKindFreeText
	h.Text = aux.Comment
	return nil
}
