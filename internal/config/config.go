// internal/config/config.go
package config

import (
	"log"
	"os"
	"strings"
)

// Config хранит все конфигурационные параметры приложения.
type Config struct {
	TelegramToken string
	BackendAPIURL string
	ServiceToken  string
	DatabaseURL   string
	AppEnv        string
	BotUsername   string
	WebhookSecret string
	HTTPPort      string
	PublicBaseURL string
}

// LoadConfig загружает конфигурацию из переменных окружения.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		TelegramToken: os.Getenv("TELEGRAM_APITOKEN"),
		BackendAPIURL: os.Getenv("BACKEND_API_URL"),
		ServiceToken:  os.Getenv("BACKEND_SERVICE_TOKEN"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		AppEnv:        os.Getenv("ENV"),
		BotUsername:   os.Getenv("BOT_USERNAME"),
		WebhookSecret: os.Getenv("WEBHOOK_SECRET"),
		HTTPPort:      os.Getenv("PORT"),
		PublicBaseURL: strings.TrimRight(os.Getenv("PUBLIC_BASE_URL"), "/"),
	}

	if cfg.TelegramToken == "" {
		log.Println("Критическая ошибка: TELEGRAM_APITOKEN не установлен.")
	}
	if cfg.BackendAPIURL == "" {
		log.Println("Критическая ошибка: BACKEND_API_URL не установлен.")
	} else {
		cfg.BackendAPIURL = strings.TrimRight(cfg.BackendAPIURL, "/")
	}
	if cfg.DatabaseURL == "" {
		log.Println("Критическая ошибка: DATABASE_URL не установлен.")
	}
	if cfg.ServiceToken == "" {
		log.Println("Предупреждение: BACKEND_SERVICE_TOKEN не установлен. Прокси вложений не будет работать.")
	}
	if cfg.WebhookSecret == "" {
		log.Println("Предупреждение: WEBHOOK_SECRET не установлен. Вебхук событий бэкенда будет отклонять все запросы.")
	}
	if cfg.PublicBaseURL == "" {
		log.Println("Предупреждение: PUBLIC_BASE_URL не установлен. Ссылки на вложения в чат отправляться не будут.")
	}
	if cfg.BotUsername == "" {
		log.Println("Предупреждение: BOT_USERNAME не установлен. Ссылки на задания будут без deep link.")
	}
	if cfg.HTTPPort == "" {
		cfg.HTTPPort = "8080"
	}

	log.Println("Конфигурация загружена.")
	return cfg, nil
}
