package config

import (
	"os"

	"github.com/joho/godotenv"
)

// DefaultAPIURL — адрес FastAPI-сервиса с моделью YOLOv5.
const DefaultAPIURL = "https://fastapi-yolo-darianest.amvera.io"

type Config struct {
	TelegramToken string
	APIURL        string
	Port          string
}

func Load() (*Config, error) {
	// Загружаем .env файл (игнорируем ошибку если файла нет)
	_ = godotenv.Load()

	cfg := &Config{
		TelegramToken: os.Getenv("TELEGRAM_TOKEN"),
		APIURL:        getEnv("API_URL", DefaultAPIURL),
		Port:          getEnv("PORT", "8080"),
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
