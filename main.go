package main

import (
	"context"
	"log"
	"net/http"

	tgbotapi "github.com/OvyFlash/telegram-bot-api"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"Courier/internal/api"
	"Courier/internal/config"
	"Courier/internal/db"
	"Courier/internal/handlers"
	"Courier/internal/session"
	"Courier/internal/telegram_api"
	"Courier/internal/utils"
)

func main() {
	// --- Блок инициализации ---
	err := godotenv.Load()
	if err != nil {
		log.Println("Предупреждение: не удалось загрузить файл .env. Переменные окружения должны быть установлены иным способом.")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Критическая ошибка: не удалось загрузить конфигурацию: %v", err)
	}

	if err := utils.InitEncryptionKey(); err != nil {
		log.Fatalf("Критическая ошибка: не удалось инициализировать ключ шифрования: %v", err)
	}

	if err := db.InitDB(); err != nil {
		log.Fatalf("Критическая ошибка: не удалось инициализировать базу данных: %v", err)
	}
	defer db.CloseDB()

	err = telegram_api.InitBot(cfg.TelegramToken, cfg.AppEnv == "dev", cfg.BotUsername)
	if err != nil {
		log.Fatalf("Критическая ошибка: не удалось инициализировать Telegram бота: %v", err)
	}

	if telegram_api.Client == nil || telegram_api.Client.GetAPI() == nil {
		log.Fatalf("Критическая ошибка: Telegram API клиент не был корректно инициализирован.")
	}
	botAPI := telegram_api.Client.GetAPI()

	tokenStore := db.NewTokenStore(db.DB)
	sessionManager := session.NewManager(tokenStore)

	handlerDeps := handlers.HandlerDependencies{
		Config:         cfg,
		BotClient:      telegram_api.Client,
		SessionManager: sessionManager,
	}
	botHandler := handlers.NewBotHandler(handlerDeps)

	// --- Настройка роутера и Middleware ---
	apiRouter := chi.NewRouter()

	apiRouter.Use(middleware.Logger)
	apiRouter.Use(middleware.Recoverer)
	apiRouter.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Telegram-Auth"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	apiDeps := api.ApiDependencies{
		Config:    cfg,
		SecretKey: cfg.TelegramToken,
		Sessions:  sessionManager,
	}
	api.SetupRoutes(apiRouter, apiDeps)

	// HTTP-сервер Mini App API живет в отдельной горутине, бот - в основной.
	go func() {
		log.Printf("Запуск HTTP-сервера Mini App API на порту %s", cfg.Port)
		if err := http.ListenAndServe(":"+cfg.Port, apiRouter); err != nil {
			log.Fatalf("КРИТИЧЕСКАЯ ОШИБКА: не удалось запустить HTTP-сервер: %v", err)
		}
	}()

	// Запуск самого бота
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := botAPI.GetUpdatesChan(u)

	log.Println("Бот и API-сервер запущены и готовы к работе...")

	ctx := context.Background()
	for update := range updates {
		if update.Message != nil {
			log.Printf("[%s] %s", update.Message.From.UserName, update.Message.Text)
			go botHandler.HandleMessage(ctx, update)
		} else if update.CallbackQuery != nil {
			log.Printf("Callback от %s: %s", update.CallbackQuery.From.UserName, update.CallbackQuery.Data)
			go botHandler.HandleCallback(ctx, update)
		}
	}
}
