// Файл: montajbot/internal/api/middleware.go
package api

import (
	"crypto/subtle"
	"log"
	"net/http"
)

// WebhookAuthMiddleware проверяет заголовок X-Webhook-Token. Пустой секрет
// в конфигурации закрывает вебхук полностью.
func WebhookAuthMiddleware(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if secret == "" {
				log.Printf("api: запрос %s отклонен: WEBHOOK_SECRET не настроен", r.URL.Path)
				http.Error(w, "webhook disabled", http.StatusForbidden)
				return
			}
			token := r.Header.Get("X-Webhook-Token")
			if token == "" || subtle.ConstantTimeCompare([]byte(token), []byte(secret)) != 1 {
				log.Printf("api: запрос %s отклонен: неверный X-Webhook-Token", r.URL.Path)
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
