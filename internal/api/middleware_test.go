package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func protectedHandler() http.Handler {
	mw := WebhookAuthMiddleware("s3cret")
	return mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
}

func TestWebhookAuthMiddleware(t *testing.T) {
	h := protectedHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/events", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("без токена ожидался 401, получен %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/api/events", nil)
	req.Header.Set("X-Webhook-Token", "wrong")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("с неверным токеном ожидался 401, получен %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/api/events", nil)
	req.Header.Set("X-Webhook-Token", "s3cret")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("с верным токеном ожидался 200, получен %d", rec.Code)
	}
}

func TestWebhookAuthMiddlewareEmptySecret(t *testing.T) {
	mw := WebhookAuthMiddleware("")
	h := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("обработчик не должен вызываться при пустом секрете")
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/events", nil)
	req.Header.Set("X-Webhook-Token", "")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("при пустом секрете ожидался 403, получен %d", rec.Code)
	}
}
