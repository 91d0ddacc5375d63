package handlers

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"montajbot/internal/backend"
	"montajbot/internal/config"
	"montajbot/internal/constants"
	"montajbot/internal/session"
	"montajbot/internal/telegram_api"
)

func newTestBotHandler(t *testing.T, backendURL string) *BotHandler {
	t.Helper()
	return NewBotHandler(HandlerDependencies{
		Config:         &config.Config{},
		BotClient:      &telegram_api.BotClient{},
		SessionManager: session.NewManager(session.NewMemoryStorage()),
		Backend:        backend.New(backendURL),
	})
}

// Префиксы task_report_ и task_reports_ различаются одним символом, и
// порядок case в диспетчере важен: более длинный должен проверяться
// первым, иначе кнопка списка отчетов перестает работать.
func TestPrefixCallbackReportVsReports(t *testing.T) {
	var mu sync.Mutex
	var paths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		paths = append(paths, r.URL.Path)
		mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"id": 42, "status": "started"}`)
	}))
	defer srv.Close()

	bh := newTestBotHandler(t, srv.URL)
	const chatID int64 = 100500
	if err := bh.Deps.SessionManager.SetAuth(chatID, "tok", constants.ROLE_MONTAJNIK, "Тестов Тест"); err != nil {
		t.Fatal(err)
	}

	if !bh.handlePrefixCallback(chatID, 1, "task_reports_42") {
		t.Fatal("callback task_reports_42 не диспетчеризован")
	}
	if st := bh.Deps.SessionManager.GetState(chatID); st != "" {
		t.Fatalf("просмотр отчетов не должен менять состояние, получено %q", st)
	}

	if !bh.handlePrefixCallback(chatID, 1, "task_report_42") {
		t.Fatal("callback task_report_42 не диспетчеризован")
	}
	if st := bh.Deps.SessionManager.GetState(chatID); st != constants.STATE_REPORT_TEXT {
		t.Fatalf("после task_report_ ожидалось состояние %q, получено %q", constants.STATE_REPORT_TEXT, st)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(paths) != 2 {
		t.Fatalf("ожидалось 2 запроса карточки задания, получено %d: %v", len(paths), paths)
	}
	for _, p := range paths {
		if p != "/montajnik/tasks/42" {
			t.Errorf("неожиданный путь запроса: %s", p)
		}
	}
}
