package main

import (
	"log"

	"detect-bot/config"
	telegram "detect-bot/internal/api"
	"detect-bot/internal/container"
	"detect-bot/internal/infrastructure/imaging"
	"detect-bot/internal/infrastructure/remote"
	"detect-bot/internal/infrastructure/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if cfg.TelegramToken == "" {
		log.Fatal("TELEGRAM_TOKEN is required")
	}

	// Создаём хранилище пользователей
	userRepo := storage.NewMemoryUserRepository()

	// Кодек и клиент удалённого сервиса детекции
	codec := imaging.NewJPEGCodec()
	detector := remote.NewRemoteDetector(cfg.APIURL, codec)

	// Собираем сервисы приложения
	appContainer := container.New(userRepo, detector)

	// Создаём бота
	bot, err := telegram.NewBot(cfg.TelegramToken, appContainer.UserService, appContainer.DetectionService, codec)
	if err != nil {
		log.Fatalf("Failed to create bot: %v", err)
	}

	log.Printf("Detection API: %s", cfg.APIURL)
	log.Println("Bot is running...")
	if err := bot.Run(); err != nil {
		log.Fatalf("Bot error: %v", err)
	}
}
