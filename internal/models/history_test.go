package models

import (
	"encoding/json"
	"testing"
)

func TestHistoryEntryUnmarshal_Discriminated(t *testing.T) {
	raw := `{"id":1,"kind":"field_changes","changes":[{"field":"status","old":"new","new":"accepted"}]}`
	var h HistoryEntry
	if err := json.Unmarshal([]byte(raw), &h); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if h.Kind != HistoryKindFieldChanges {
		t.Fatalf("expected kind %q, got %q", HistoryKindFieldChanges, h.Kind)
	}
	if len(h.Changes) != 1 || h.Changes[0].Field != "status" || h.Changes[0].New != "accepted" {
		t.Fatalf("unexpected changes: %+v", h.Changes)
	}
}

func TestHistoryEntryUnmarshal_LegacyFreeText(t *testing.T) {
	raw := `{"id":2,"comment":"Задание возвращено на доработку"}`
	var h HistoryEntry
	if err := json.Unmarshal([]byte(raw), &h); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if h.Kind != HistoryKindFreeText {
		t.Fatalf("expected kind %q, got %q", HistoryKindFreeText, h.Kind)
	}
	if h.Text != "Задание возвращено на доработку" {
		t.Fatalf("unexpected text: %q", h.Text)
	}
}

func TestHistoryEntryUnmarshal_LegacyJSONComment(t *testing.T) {
	raw := `{"id":3,"comment":"[{\"field\":\"location\",\"old\":\"Москва\",\"new\":\"Тула\"}]"}`
	var h HistoryEntry
	if err := json.Unmarshal([]byte(raw), &h); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if h.Kind != HistoryKindFieldChanges {
		t.Fatalf("expected kind %q, got %q", HistoryKindFieldChanges, h.Kind)
	}
	if len(h.Changes) != 1 || h.Changes[0].Old != "Москва" {
		t.Fatalf("unexpected changes: %+v", h.Changes)
	}
}
