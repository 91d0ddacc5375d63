package main

import (
	"log"
	"net/http"

	tgbotapi "github.com/OvyFlash/telegram-bot-api"
	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"montajbot/internal/api"
	"montajbot/internal/backend"
	"montajbot/internal/config"
	"montajbot/internal/db"
	"montajbot/internal/handlers"
	"montajbot/internal/session"
	"montajbot/internal/telegram_api"
)

func main() {
	// --- Блок инициализации ---
	if err := godotenv.Load(); err != nil {
		log.Println("Предупреждение: не удалось загрузить файл .env. Переменные окружения должны быть установлены иным способом.")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Критическая ошибка: не удалось загрузить конфигурацию: %v", err)
	}

	store, err := db.New(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Критическая ошибка: не удалось инициализировать базу данных: %v", err)
	}
	defer store.Close()

	backendClient := backend.New(cfg.BackendAPIURL)
	log.Printf("Бэкенд MontajPro: %s", backendClient.BaseURL())
	sessionManager := session.NewManager(store)

	botClient, err := telegram_api.NewBot(cfg.TelegramToken, cfg.AppEnv == "dev", cfg.BotUsername)
	if err != nil {
		log.Fatalf("Критическая ошибка: не удалось инициализировать Telegram бота: %v", err)
	}

	botHandler := handlers.NewBotHandler(handlers.HandlerDependencies{
		Config:         cfg,
		BotClient:      botClient,
		SessionManager: sessionManager,
		Backend:        backendClient,
	})

	// --- HTTP-сервер: вебхук событий бэкенда и медиапрокси ---
	router := chi.NewRouter()
	apiDeps := api.ApiDependencies{
		Config:         cfg,
		Bot:            botHandler,
		SessionManager: sessionManager,
	}
	if cfg.ServiceToken != "" {
		apiDeps.ServiceBackend = backendClient.WithToken(cfg.ServiceToken)
	}
	api.SetupRoutes(router, apiDeps)

	go func() {
		log.Printf("Запуск HTTP-сервера на порту %s", cfg.HTTPPort)
		if err := http.ListenAndServe(":"+cfg.HTTPPort, router); err != nil {
			log.Fatalf("КРИТИЧЕСКАЯ ОШИБКА: не удалось запустить HTTP-сервер: %v", err)
		}
	}()

	// --- Цикл обновлений Telegram ---
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := botClient.GetUpdatesChan(u)

	log.Println("Бот и API-сервер запущены и готовы к работе...")

	for update := range updates {
		if update.Message != nil {
			go botHandler.HandleMessage(update.Message)
		} else if update.CallbackQuery != nil {
			go botHandler.HandleCallbackQuery(update.CallbackQuery)
		}
	}
}
