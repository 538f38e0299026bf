package manager

import (
	"context"

	"taskbot/internal/analyzer"
	"taskbot/internal/logger"
	"taskbot/internal/models"
	"taskbot/internal/storage"
)

// TaskService — конвейер обработки одного сообщения: анализ → выполнение.
type TaskService struct {
	analyzer  *analyzer.Analyzer
	processor *TaskProcessor
}

func NewTaskService(a *analyzer.Analyzer, st storage.Storage) *TaskService {
	return &TaskService{
		analyzer:  a,
		processor: NewTaskProcessor(st),
	}
}

// HandleMessage — единственная точка входа для транспортного слоя.
// Одно сообщение — один вызов анализатора и не более одного обращения к
// хранилищу; первая же ошибка уходит наверх, повторов внутри нет.
func (s *TaskService) HandleMessage(ctx context.Context, owner, text string) (models.ActionOutcome, error) {
	intent, err := s.analyzer.Analyze(ctx, text)
	if err != nil {
		analyzeCount.WithLabelValues("error").Inc()
		logger.Debug(ctx, "Сообщение не распознано", "owner", owner, "error", err)
		return models.ActionOutcome{}, err
	}
	analyzeCount.WithLabelValues("success").Inc()

	outcome, err := s.processor.Process(owner, intent)
	if err != nil {
		logger.Debug(ctx, "Ошибка обработки интента", "owner", owner, "op", intent.Kind.String(), "error", err)
		return models.ActionOutcome{}, err
	}

	logger.Info(ctx, "Интент обработан", "owner", owner, "op", intent.Kind.String())
	return outcome, nil
}
