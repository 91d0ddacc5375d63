package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"montajbot/internal/session"
)

// Бот может быть еще не запущен, когда бэкенд начинает слать события.
// Обработчик в этом случае обязан отвечать 503, а не падать на обращении
// к зависимостям бота.
func TestEventsHandlerWithoutBot(t *testing.T) {
	mgr := session.NewManager(session.NewMemoryStorage())
	if err := mgr.SetAuth(7, "tok", "montajnik", "Тестов Тест"); err != nil {
		t.Fatal(err)
	}

	h := EventsHandler(ApiDependencies{SessionManager: mgr})
	body := strings.NewReader(`{"event":"task_assigned","task_id":1,"text":"x","recipients":[7]}`)
	req := httptest.NewRequest(http.MethodPost, "/api/events", body)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("без бота ожидался 503, получен %d", rec.Code)
	}
}
