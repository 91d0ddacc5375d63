package session

import (
	"testing"

	"montajbot/internal/constants"
)

func TestSetAuthThenRestore(t *testing.T) {
	storage := NewMemoryStorage()
	m := NewManager(storage)
	if err := m.SetAuth(100, "tok", "logist", "Анна Ковалева"); err != nil {
		t.Fatalf("set auth: %v", err)
	}

	// Новый менеджер поверх того же хранилища — аналог перезапуска процесса.
	m2 := NewManager(storage)
	sess, ok := m2.Get(100)
	if !ok {
		t.Fatal("session must be restored from storage")
	}
	if sess.Token != "tok" || sess.Role != "logist" || sess.FullName != "Анна Ковалева" {
		t.Fatalf("restored session mismatch: %+v", sess)
	}
}

func TestRestore_RequiresTokenAndRole(t *testing.T) {
	storage := NewMemoryStorage()
	storage.SaveAuth(5, AuthRecord{Token: "tok"}) // роли нет
	m := NewManager(storage)
	if _, ok := m.Get(5); ok {
		t.Fatal("restore must require both token and role")
	}

	storage.SaveAuth(6, AuthRecord{Token: "tok", Role: "montajnik"}) // имя опционально
	if sess, ok := m.Get(6); !ok || sess.Role != "montajnik" {
		t.Fatalf("restore without fullname must succeed: %+v ok=%v", sess, ok)
	}
}

func TestLogout_ClearsEverything(t *testing.T) {
	storage := NewMemoryStorage()
	m := NewManager(storage)
	if err := m.SetAuth(7, "tok", "montajnik", "Петр"); err != nil {
		t.Fatalf("set auth: %v", err)
	}
	m.UpdateCounts(7, func(c *Counts) { c.MontajnikAvailable = 3; c.MontajnikAssigned = 2 })
	m.SetState(7, constants.STATE_REPORT_TEXT)

	if err := m.Logout(7); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, ok := m.Get(7); ok {
		t.Fatal("session must be gone after logout")
	}
	if _, ok, _ := storage.LoadAuth(7); ok {
		t.Fatal("storage must be cleared on logout")
	}
	if st := m.GetState(7); st != constants.STATE_IDLE {
		t.Fatalf("state after logout: %s", st)
	}

	// Повторная авторизация начинается с нулевых счетчиков.
	if err := m.SetAuth(7, "tok2", "montajnik", "Петр"); err != nil {
		t.Fatalf("re-auth: %v", err)
	}
	sess, _ := m.Get(7)
	if sess.Counts != (Counts{}) {
		t.Fatalf("counts must be zero after logout: %+v", sess.Counts)
	}
}

func TestStateHistory(t *testing.T) {
	m := NewManager(NewMemoryStorage())
	if st := m.GetState(1); st != constants.STATE_IDLE {
		t.Fatalf("default state: %s", st)
	}
	m.SetState(1, constants.STATE_DRAFT_COMPANY)
	m.SetState(1, constants.STATE_DRAFT_CONTACT)
	m.SetState(1, constants.STATE_DRAFT_CONTACT) // дубль не множит историю
	if st := m.PopState(1); st != constants.STATE_DRAFT_COMPANY {
		t.Fatalf("pop: %s", st)
	}
	if st := m.PopState(1); st != constants.STATE_IDLE {
		t.Fatalf("pop to bottom: %s", st)
	}
}

func TestAddTempReportPhoto_DuplicatesAndLimit(t *testing.T) {
	m := NewManager(NewMemoryStorage())
	if n, full := m.AddTempReportPhoto(1, "key-a", 2); n != 1 || full {
		t.Fatalf("first add: n=%d full=%v", n, full)
	}
	if n, _ := m.AddTempReportPhoto(1, "key-a", 2); n != 1 {
		t.Fatalf("duplicate must not be added: n=%d", n)
	}
	m.AddTempReportPhoto(1, "key-b", 2)
	if n, full := m.AddTempReportPhoto(1, "key-c", 2); n != 2 || !full {
		t.Fatalf("limit must hold: n=%d full=%v", n, full)
	}
}
