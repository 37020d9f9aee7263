package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"smartshopbot/internal/api"
	"smartshopbot/internal/config"
	"smartshopbot/internal/handlers"
	"smartshopbot/internal/llm"
	"smartshopbot/internal/ocr"
	"smartshopbot/internal/repository/postgres"
	"smartshopbot/internal/service"
	"smartshopbot/internal/telegram"
	"smartshopbot/pkg/logger"
)

func main() {
	// Optional .env for local development
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	l := logger.New(cfg.LogLevel)
	l.Info("Starting SmartShopBot...")

	// Database
	db, err := config.NewDatabase(cfg.DatabaseURL, l)
	if err != nil {
		l.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Run migrations
	if err := db.Migrate("migrations"); err != nil {
		l.Fatalf("Failed to run migrations: %v", err)
	}

	// Repositories
	userRepo := postgres.NewUserRepository(db.DB)
	itemRepo := postgres.NewShoppingItemRepository(db.DB)
	receiptRepo := postgres.NewReceiptRepository(db.DB)

	// Service layer
	svc := service.New(db.DB, l, userRepo, itemRepo, receiptRepo)

	// External collaborators
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	suggester, err := llm.NewClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		l.Fatalf("Failed to create suggestion client: %v", err)
	}
	if !suggester.Enabled() {
		l.Warn("GEMINI_API_KEY not set, AI suggestions will use the static fallback")
	}

	extractor, err := ocr.NewClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		l.Fatalf("Failed to create OCR client: %v", err)
	}

	// Telegram bot
	bot, err := telegram.NewBot(cfg.TelegramToken, l)
	if err != nil {
		l.Fatalf("Failed to create Telegram bot: %v", err)
	}

	// Register command handlers
	bot.RegisterCommand("start", handlers.NewStartHandler(svc, l))
	bot.RegisterCommand("help", handlers.NewHelpHandler(l))

	// Shopping list handlers
	bot.RegisterCommand("add", handlers.NewAddHandler(svc, l))
	bot.RegisterCommand("list", handlers.NewListHandler(svc, l))
	bot.RegisterCommand("remove", handlers.NewRemoveHandler(svc, l))
	bot.RegisterCommand("clear", handlers.NewClearHandler(svc, l))

	// Preference handlers
	bot.RegisterCommand("currency", handlers.NewCurrencyHandler(svc, l))
	bot.RegisterCommand("language", handlers.NewLanguageHandler(svc, l))
	bot.RegisterCommand("settings", handlers.NewSettingsHandler(svc, l))

	// AI and receipt handlers
	bot.RegisterCommand("suggestions", handlers.NewSuggestionsHandler(svc, suggester, l))
	receiptHandler := handlers.NewReceiptHandler(svc, extractor, l)
	bot.RegisterCommand("receipt", receiptHandler)
	bot.RegisterPhotoHandler(receiptHandler)

	// Analytics
	bot.RegisterCommand("stats", handlers.NewStatsHandler(svc, l))

	// Context for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		l.Info("Received shutdown signal...")
		cancel()
	}()

	// Start HTTP server for health checks and metrics
	apiServer := api.NewServer(l)
	httpServer := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: apiServer.Handler(),
	}

	go func() {
		l.Infof("HTTP server listening on :%s", cfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			l.Errorf("HTTP server error: %v", err)
		}
	}()

	// Start Telegram bot polling
	go func() {
		if err := bot.Start(ctx); err != nil {
			l.Errorf("Bot error: %v", err)
		}
	}()

	l.Info("SmartShopBot started successfully")

	<-ctx.Done()

	l.Info("Shutting down HTTP server...")
	httpServer.Close()

	l.Info("SmartShopBot stopped")
}
