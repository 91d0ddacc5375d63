// Файл: montajbot/internal/api/router.go
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"montajbot/internal/backend"
	"montajbot/internal/config"
	"montajbot/internal/handlers"
	"montajbot/internal/session"
)

// ApiDependencies содержит зависимости для обработчиков API.
type ApiDependencies struct {
	Config         *config.Config
	Bot            *handlers.BotHandler
	SessionManager *session.Manager
	// ServiceBackend — клиент бэкенда с сервисным токеном; им подписаны
	// запросы медиапрокси, не привязанные к чьей-либо чат-сессии.
	ServiceBackend *backend.Client
}

// SetupRoutes настраивает все маршруты HTTP-сервера бота.
func SetupRoutes(r *chi.Mux, deps ApiDependencies) {
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "X-Webhook-Token"},
	}))

	r.Get("/healthz", HealthHandler)
	r.Get("/api/media/{attachmentID}", MediaProxyHandler(deps))

	r.Group(func(r chi.Router) {
		r.Use(WebhookAuthMiddleware(deps.Config.WebhookSecret))
		r.Post("/api/events", EventsHandler(deps))
	})
}

// HealthHandler отвечает на проверки живости.
func HealthHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}
