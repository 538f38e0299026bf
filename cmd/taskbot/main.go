package main

import (
	"context"
	"net/http"
	"os"
	"path/filepath"

	server "taskbot"
	"taskbot/internal/analyzer"
	"taskbot/internal/config"
	"taskbot/internal/logger"
	"taskbot/internal/manager"
	"taskbot/internal/storage"
)

func main() {
	ctx := context.Background()
	logger.SetLevel(logger.LevelInfo)
	logger.Info(ctx, "Запуск HTTP-сервера...")

	cfg, err := config.Load()
	if err != nil {
		logger.Error(ctx, err, "Ошибка загрузки конфигурации")
		os.Exit(1)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0755); err != nil {
		logger.Error(ctx, err, "Ошибка создания директории data")
		os.Exit(1)
	}

	dbStorage, err := storage.NewSQLiteStorage(cfg.DBPath)
	if err != nil {
		logger.Error(ctx, err, "Ошибка инициализации SQLite хранилища")
		os.Exit(1)
	}
	defer dbStorage.Close()

	logger.Info(ctx, "SQLite хранилище успешно инициализировано", "path", cfg.DBPath)

	service := manager.NewTaskService(analyzer.New(buildClassifier(cfg)), dbStorage)

	logger.Info(ctx, "Сервер слушает", "addr", cfg.HTTPAddr)
	if err := http.ListenAndServe(cfg.HTTPAddr, server.NewRouter(service)); err != nil {
		logger.Error(ctx, err, "Ошибка HTTP-сервера")
		os.Exit(1)
	}
}

func buildClassifier(cfg config.Config) analyzer.Classifier {
	if cfg.OpenAIKey == "" {
		// Без ключа работаем только по шаблонам.
		logger.Info(context.Background(), "OPENAI_API_KEY не задан, классификатор отключен")
		return analyzer.NopClassifier{}
	}
	return analyzer.NewOpenAIClassifier(cfg.OpenAIKey, cfg.OpenAIModel)
}
