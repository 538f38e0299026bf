package config

import (
	"errors"
	"os"

	"github.com/joho/godotenv"
)

// Config — явная конфигурация приложения, передаётся при сборке зависимостей.
// Никакого глобального изменяемого состояния.
type Config struct {
	HTTPAddr      string
	DBPath        string
	TelegramToken string
	OpenAIKey     string
	OpenAIModel   string
}

// Load читает конфигурацию из переменных окружения.
// Файл .env, если он есть рядом, подхватывается автоматически.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		HTTPAddr:      os.Getenv("HTTP_ADDR"),
		DBPath:        os.Getenv("DB_PATH"),
		TelegramToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
		OpenAIKey:     os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:   os.Getenv("OPENAI_MODEL"),
	}
	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = ":8080"
	}
	if cfg.DBPath == "" {
		cfg.DBPath = "./data/taskbot.db"
	}
	return cfg, nil
}

// LoadTelegram — как Load, но токен бота обязателен.
func LoadTelegram() (Config, error) {
	cfg, err := Load()
	if err != nil {
		return Config{}, err
	}
	if cfg.TelegramToken == "" {
		return Config{}, errors.New("TELEGRAM_BOT_TOKEN is required")
	}
	return cfg, nil
}
