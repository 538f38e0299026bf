package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"

	"taskbot/internal/analyzer"
	"taskbot/internal/config"
	"taskbot/internal/logger"
	"taskbot/internal/manager"
	"taskbot/internal/storage"
)

type Bot struct {
	api     *tgbotapi.BotAPI
	service *manager.TaskService
}

func NewBot(token string, service *manager.TaskService) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания бота: %v", err)
	}

	logger.Info(context.Background(), "Бот авторизован", "username", api.Self.UserName)

	return &Bot{
		api:     api,
		service: service,
	}, nil
}

func (b *Bot) Start() error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates, err := b.api.GetUpdatesChan(u)
	if err != nil {
		return fmt.Errorf("ошибка получения updates: %v", err)
	}

	logger.Info(context.Background(), "Бот запущен и слушает сообщения...")

	for update := range updates {
		if update.Message == nil {
			continue
		}

		go b.handleMessage(update.Message)
	}
	return nil
}

func (b *Bot) handleMessage(msg *tgbotapi.Message) {
	ctx := context.Background()

	logger.Debug(ctx, "Получено сообщение",
		"user", msg.From.UserName,
		"text", msg.Text,
	)

	if msg.IsCommand() {
		b.handleCommand(msg)
		return
	}

	// Устойчивый идентификатор владельца задаёт транспорт.
	owner := fmt.Sprintf("telegram:%d", msg.From.ID)

	outcome, err := b.service.HandleMessage(ctx, owner, msg.Text)
	if err != nil {
		b.sendMessage(msg.Chat.ID, manager.FormatError(err))
		return
	}

	b.sendMessage(msg.Chat.ID, manager.FormatOutcome(outcome))
}

func (b *Bot) handleCommand(msg *tgbotapi.Message) {
	switch msg.Command() {
	case "start":
		b.sendWelcomeMessage(msg.Chat.ID)
	case "help":
		b.sendHelp(msg.Chat.ID)
	default:
		b.sendMessage(msg.Chat.ID, "Unknown command. Use /help to see what I can do.")
	}
}

func (b *Bot) sendWelcomeMessage(chatID int64) {
	text := `🎯 *Welcome to TaskBot!*

Send me a message in plain language and I will manage your tasks:

create task: Buy groceries
show task 1
update task 1: Buy groceries and milk
delete task 1
list my tasks

/help - Show this help`

	b.sendMessage(chatID, text)
}

func (b *Bot) sendHelp(chatID int64) {
	helpText := `🤖 *How to talk to me*

*create task: [text]* - Add a new task
*show task [id]* - Show one task
*update task [id]: [text]* - Replace the task text
*delete task [id]* - Delete a task
*list my tasks* - Show all your tasks

Free-form phrasing works too - I will do my best to understand it.
Your tasks are private: nobody else can see or change them.`

	b.sendMessage(chatID, helpText)
}

func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = "Markdown"

	if _, err := b.api.Send(msg); err != nil {
		logger.Error(context.Background(), err, "Ошибка отправки сообщения")
	}
}

func main() {
	ctx := context.Background()
	logger.SetLevel(logger.LevelInfo)
	logger.Info(ctx, "Запуск Telegram-бота...")

	cfg, err := config.LoadTelegram()
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

	bot, err := NewBot(cfg.TelegramToken, service)
	if err != nil {
		logger.Error(ctx, err, "Ошибка создания бота")
		os.Exit(1)
	}

	logger.Info(ctx, "Бот успешно инициализирован")

	if err := bot.Start(); err != nil {
		logger.Error(ctx, err, "Ошибка цикла обновлений")
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
