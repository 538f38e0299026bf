package manager

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"taskbot/internal/models"
	"taskbot/internal/storage"
)

var (
	processCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "taskbot_intents_processed_total",
			Help: "Total number of processed intents",
		},
		[]string{"op", "status"},
	)

	analyzeCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "taskbot_messages_analyzed_total",
			Help: "Total number of analyzed messages",
		},
		[]string{"result"},
	)

	taskDescLength = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "taskbot_task_desc_length_bytes",
			Help:    "Length distribution of task descriptions",
			Buckets: []float64{50, 100, 500, 1000},
		},
	)

	processDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "taskbot_process_duration_seconds",
			Help:    "Duration of intent processing in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)
)

var (
	// ErrNotFound — задача отсутствует либо принадлежит другому
	// пользователю; снаружи эти случаи неразличимы.
	ErrNotFound = errors.New("задача не найдена")

	// ErrValidationFailed — данные не прошли бизнес-проверку
	// (страховка на случай, если анализатор что-то пропустил).
	ErrValidationFailed = errors.New("некорректные данные задачи")
)

const maxDescriptionLength = 1000

// TaskProcessor выполняет валидированный интент: ровно одно обращение к
// хранилищу на вызов, по одной ветке на вариант интента.
type TaskProcessor struct {
	storage storage.Storage
}

func NewTaskProcessor(st storage.Storage) *TaskProcessor {
	return &TaskProcessor{storage: st}
}

func (p *TaskProcessor) Process(owner string, intent models.Intent) (models.ActionOutcome, error) {
	startTime := time.Now()
	defer func() {
		processDuration.Observe(time.Since(startTime).Seconds())
	}()

	outcome, err := p.dispatch(owner, intent)

	status := "success"
	if err != nil {
		status = "error"
	}
	processCount.WithLabelValues(intent.Kind.String(), status).Inc()

	return outcome, err
}

func (p *TaskProcessor) dispatch(owner string, intent models.Intent) (models.ActionOutcome, error) {
	switch intent.Kind {
	case models.IntentCreate:
		if err := validateDescription(intent.Description); err != nil {
			return models.ActionOutcome{}, err
		}
		task, err := p.storage.AddTask(owner, intent.Description)
		if err != nil {
			return models.ActionOutcome{}, err
		}
		taskDescLength.Observe(float64(len(intent.Description)))
		return models.ActionOutcome{Kind: intent.Kind, Task: &task}, nil

	case models.IntentRead:
		task, err := p.storage.GetTask(owner, intent.TaskID)
		if err != nil {
			return models.ActionOutcome{}, translateStorageErr(err)
		}
		return models.ActionOutcome{Kind: intent.Kind, Task: task}, nil

	case models.IntentUpdate:
		if err := validateDescription(intent.Description); err != nil {
			return models.ActionOutcome{}, err
		}
		task, err := p.storage.UpdateTask(owner, intent.TaskID, intent.Description)
		if err != nil {
			return models.ActionOutcome{}, translateStorageErr(err)
		}
		return models.ActionOutcome{Kind: intent.Kind, Task: task}, nil

	case models.IntentDelete:
		if err := p.storage.DeleteTask(owner, intent.TaskID); err != nil {
			return models.ActionOutcome{}, translateStorageErr(err)
		}
		return models.ActionOutcome{
			Kind: intent.Kind,
			Task: &models.Task{ID: intent.TaskID, Owner: owner},
		}, nil

	case models.IntentList:
		tasks, err := p.storage.ListTasks(owner)
		if err != nil {
			return models.ActionOutcome{}, err
		}
		return models.ActionOutcome{Kind: intent.Kind, Tasks: tasks}, nil

	default:
		// Закрытый набор вариантов: сюда можно попасть только из-за бага.
		panic(fmt.Sprintf("необработанный вид интента: %v", intent.Kind))
	}
}

func validateDescription(description string) error {
	if strings.TrimSpace(description) == "" {
		return fmt.Errorf("%w: описание задачи обязательно", ErrValidationFailed)
	}
	if len(description) > maxDescriptionLength {
		return fmt.Errorf("%w: описание не может превышать %d символов", ErrValidationFailed, maxDescriptionLength)
	}
	return nil
}

// translateStorageErr переводит сигнальную ошибку хранилища в ошибку уровня
// обработки: транспорту достаточно одной поверхности ошибок.
func translateStorageErr(err error) error {
	if errors.Is(err, storage.ErrTaskNotFound) {
		return ErrNotFound
	}
	return err
}
