package backend

import "testing"

func TestTaskFilterValues_OnlyPresentFields(t *testing.T) {
	f := TaskFilter{CompanyID: 7, Search: "  газель  "}
	q := f.Values()
	if len(q) != 2 {
		t.Fatalf("expected 2 params, got %v", q)
	}
	if q.Get("company_id") != "7" {
		t.Fatalf("company_id: %q", q.Get("company_id"))
	}
	if q.Get("search") != "газель" {
		t.Fatalf("search must be trimmed, got %q", q.Get("search"))
	}
	if q.Has("status") || q.Has("task_id") || q.Has("assigned_user_id") {
		t.Fatalf("empty fields must not be serialized: %v", q)
	}
}

func TestTaskFilterValues_StatusCommaJoined(t *testing.T) {
	f := TaskFilter{Status: []string{"new", "accepted", "started"}}
	if got := f.Values().Get("status"); got != "new,accepted,started" {
		t.Fatalf("status: %q", got)
	}
}

func TestTaskFilterValues_EmptyStatusesDropped(t *testing.T) {
	f := TaskFilter{Status: []string{"", ""}}
	if q := f.Values(); q.Has("status") {
		t.Fatalf("all-empty status list must not be serialized: %v", q)
	}
	if !f.IsEmpty() {
		t.Fatal("filter with only empty values must be empty")
	}
}
