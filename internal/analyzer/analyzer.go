package analyzer

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"taskbot/internal/models"
)

var (
	// ErrUnrecognized — интент вывести не удалось: ни один шаблон не
	// подошёл, а классификатор вернул неизвестную метку. Анализатор никогда
	// не угадывает операцию без уверенности.
	ErrUnrecognized = errors.New("не удалось распознать команду")

	// ErrInvalidArgument — обязательное поле команды распознано, но
	// некорректно (нечисловой или неположительный номер, пустое описание).
	ErrInvalidArgument = errors.New("некорректный аргумент команды")

	// ErrBackendUnavailable — классификатор не ответил или ответил мусором.
	ErrBackendUnavailable = errors.New("классификатор недоступен")
)

// Шаблоны канонических формулировок. Русские варианты принимаются наравне
// с английскими. Номер задачи захватывается как произвольный токен и
// валидируется отдельно: "delete task abc" — это InvalidArgument, а не
// нераспознанная команда.
var (
	listPattern   = regexp.MustCompile(`(?i)^(?:list|show|покажи|список)\s+(?:my\s+|all\s+|мои\s+|все\s+)?(?:tasks|задачи|задач)$`)
	createPattern = regexp.MustCompile(`(?i)^(?:create|add|new|создай|добавь)\s+(?:a\s+)?(?:task|задачу):?\s*(.*)$`)
	readPattern   = regexp.MustCompile(`(?i)^(?:show|read|get|покажи)\s+(?:task|задачу)\s+#?([^\s:]+)$`)
	updatePattern = regexp.MustCompile(`(?i)^(?:update|edit|обнови)\s+(?:task|задачу)\s+#?([^\s:]+):?\s+(.+)$`)
	deletePattern = regexp.MustCompile(`(?i)^(?:delete|remove|удали)\s+(?:task|задачу)\s+#?([^\s:]+)$`)
)

// labelKinds отображает метки классификатора на варианты интента.
// Неизвестная метка — ErrUnrecognized, словарь закрыт.
var labelKinds = map[string]models.IntentKind{
	"create": models.IntentCreate,
	"add":    models.IntentCreate,
	"new":    models.IntentCreate,
	"read":   models.IntentRead,
	"show":   models.IntentRead,
	"get":    models.IntentRead,
	"update": models.IntentUpdate,
	"edit":   models.IntentUpdate,
	"delete": models.IntentDelete,
	"remove": models.IntentDelete,
	"list":   models.IntentList,
}

// Analyzer переводит свободный текст в валидированный интент в два этапа:
// дешёвое сопоставление с шаблонами, затем внешний классификатор.
// Хранилища анализатор не касается и блокировок во время вызова бэкенда
// не держит.
type Analyzer struct {
	classifier Classifier
}

func New(classifier Classifier) *Analyzer {
	return &Analyzer{classifier: classifier}
}

// Analyze разбирает одно сообщение. Интент, не прошедший валидацию полей,
// наружу не выходит — вместо него структурированная ошибка.
func (a *Analyzer) Analyze(ctx context.Context, text string) (models.Intent, error) {
	normalized := strings.TrimSpace(text)
	if normalized == "" {
		return models.Intent{}, ErrUnrecognized
	}

	if intent, matched, err := matchPattern(normalized); matched {
		return intent, err
	}

	if a.classifier == nil {
		return models.Intent{}, ErrUnrecognized
	}

	result, err := a.classifier.Classify(ctx, normalized)
	if err != nil {
		return models.Intent{}, fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}

	return mapClassification(result)
}

// matchPattern — первый этап: канонические формулировки.
func matchPattern(text string) (models.Intent, bool, error) {
	if listPattern.MatchString(text) {
		return models.Intent{Kind: models.IntentList}, true, nil
	}

	if m := createPattern.FindStringSubmatch(text); m != nil {
		return buildCreate(m[1])
	}

	if m := updatePattern.FindStringSubmatch(text); m != nil {
		return buildUpdate(m[1], m[2])
	}

	if m := deletePattern.FindStringSubmatch(text); m != nil {
		id, err := parseTaskID(m[1])
		if err != nil {
			return models.Intent{}, true, err
		}
		return models.Intent{Kind: models.IntentDelete, TaskID: id}, true, nil
	}

	if m := readPattern.FindStringSubmatch(text); m != nil {
		id, err := parseTaskID(m[1])
		if err != nil {
			return models.Intent{}, true, err
		}
		return models.Intent{Kind: models.IntentRead, TaskID: id}, true, nil
	}

	return models.Intent{}, false, nil
}

// mapClassification — второй этап: ответ классификатора → интент.
// Ключи слотов принимаются в обоих написаниях: description/title, id/task_id.
func mapClassification(c Classification) (models.Intent, error) {
	kind, ok := labelKinds[strings.ToLower(strings.TrimSpace(c.Label))]
	if !ok {
		return models.Intent{}, fmt.Errorf("%w: метка %q", ErrUnrecognized, c.Label)
	}

	switch kind {
	case models.IntentCreate:
		intent, _, err := buildCreate(slot(c.Slots, "description", "title"))
		return intent, err
	case models.IntentRead, models.IntentDelete:
		id, err := parseTaskID(slot(c.Slots, "id", "task_id"))
		if err != nil {
			return models.Intent{}, err
		}
		return models.Intent{Kind: kind, TaskID: id}, nil
	case models.IntentUpdate:
		id, err := parseTaskID(slot(c.Slots, "id", "task_id"))
		if err != nil {
			return models.Intent{}, err
		}
		intent, _, err := buildUpdate(strconv.Itoa(id), slot(c.Slots, "description", "title"))
		return intent, err
	case models.IntentList:
		return models.Intent{Kind: models.IntentList}, nil
	default:
		panic(fmt.Sprintf("необработанный вид интента: %v", kind))
	}
}

func buildCreate(description string) (models.Intent, bool, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return models.Intent{}, true, fmt.Errorf("%w: пустое описание задачи", ErrInvalidArgument)
	}
	return models.Intent{Kind: models.IntentCreate, Description: description}, true, nil
}

func buildUpdate(rawID, description string) (models.Intent, bool, error) {
	id, err := parseTaskID(rawID)
	if err != nil {
		return models.Intent{}, true, err
	}
	description = strings.TrimSpace(description)
	if description == "" {
		return models.Intent{}, true, fmt.Errorf("%w: пустое описание задачи", ErrInvalidArgument)
	}
	return models.Intent{Kind: models.IntentUpdate, TaskID: id, Description: description}, true, nil
}

func parseTaskID(raw string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: номер задачи должен быть положительным числом, получено %q", ErrInvalidArgument, raw)
	}
	return id, nil
}

func slot(slots map[string]string, keys ...string) string {
	for _, key := range keys {
		if v, ok := slots[key]; ok && strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
