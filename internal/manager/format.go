package manager

import (
	"errors"
	"fmt"
	"strings"

	"taskbot/internal/analyzer"
	"taskbot/internal/models"
)

// FormatOutcome превращает результат обработки в текст ответа пользователю.
func FormatOutcome(outcome models.ActionOutcome) string {
	switch outcome.Kind {
	case models.IntentCreate:
		return fmt.Sprintf("✅ Task created: %s (ID: %d)", outcome.Task.Description, outcome.Task.ID)
	case models.IntentRead:
		return fmt.Sprintf("📌 Task: %s (ID: %d)", outcome.Task.Description, outcome.Task.ID)
	case models.IntentUpdate:
		return fmt.Sprintf("✏️ Task updated: %s (ID: %d)", outcome.Task.Description, outcome.Task.ID)
	case models.IntentDelete:
		return fmt.Sprintf("🗑 Task %d deleted", outcome.Task.ID)
	case models.IntentList:
		if len(outcome.Tasks) == 0 {
			return "📭 No tasks yet"
		}
		var b strings.Builder
		b.WriteString("📋 Your tasks:\n")
		for _, task := range outcome.Tasks {
			fmt.Fprintf(&b, "#%d: %s\n", task.ID, task.Description)
		}
		return strings.TrimRight(b.String(), "\n")
	default:
		panic(fmt.Sprintf("необработанный вид исхода: %v", outcome.Kind))
	}
}

// FormatError — отдельное сообщение на каждый вариант ошибки.
// Чужая и отсутствующая задача дают одинаковый ответ: существование
// чужих ID не раскрывается.
func FormatError(err error) string {
	switch {
	case errors.Is(err, analyzer.ErrInvalidArgument):
		return "⚠️ Invalid task number, expected a positive integer"
	case errors.Is(err, analyzer.ErrBackendUnavailable):
		return "⏳ The assistant is unavailable right now, please try again later"
	case errors.Is(err, analyzer.ErrUnrecognized):
		return "🤔 I did not understand that. Try \"create task: Buy groceries\" or /help"
	case errors.Is(err, ErrNotFound):
		return "❌ Task not found"
	case errors.Is(err, ErrValidationFailed):
		return "⚠️ Task description must be non-empty and at most 1000 characters"
	default:
		return "❌ Something went wrong, please try again"
	}
}
