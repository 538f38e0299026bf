package storage

import (
	"errors"
	"sort"
	"sync"
	"time"

	"taskbot/internal/models"
)

// ErrTaskNotFound возвращается, когда задача отсутствует или принадлежит
// другому пользователю.
var ErrTaskNotFound = errors.New("задача не найдена")

// Storage — интерфейс хранилища задач.
// Все операции, кроме назначения ID, ограничены владельцем.
type Storage interface {
	// AddTask назначает следующий ID (уникальный на всё хранилище),
	// проставляет метки времени и сохраняет задачу.
	AddTask(owner, description string) (models.Task, error)
	GetTask(owner string, id int) (*models.Task, error)
	// UpdateTask обновляет описание и updated_at.
	UpdateTask(owner string, id int, description string) (*models.Task, error)
	// DeleteTask не идемпотентен: повторное удаление того же ID — ошибка
	// вызывающего кода, а не тихий успех.
	DeleteTask(owner string, id int) error
	// ListTasks возвращает задачи владельца по возрастанию ID.
	ListTasks(owner string) ([]models.Task, error)

	Close() error
}

// MemoryStorage — хранилище в памяти.
// Назначение ID идёт под общим мьютексом (дубликаты невозможны), а чтение-
// изменение-запись сериализуется мьютексом конкретной задачи: операции
// над разными ID не блокируют друг друга.
type MemoryStorage struct {
	mu     sync.RWMutex
	tasks  map[int]models.Task
	locks  map[int]*sync.Mutex
	nextID int
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		tasks:  make(map[int]models.Task),
		locks:  make(map[int]*sync.Mutex),
		nextID: 1,
	}
}

func (m *MemoryStorage) AddTask(owner, description string) (models.Task, error) {
	now := time.Now()

	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.nextID
	m.nextID++

	task := models.Task{
		ID:          id,
		Owner:       owner,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	m.tasks[id] = task
	m.locks[id] = &sync.Mutex{}

	return task, nil
}

func (m *MemoryStorage) GetTask(owner string, id int) (*models.Task, error) {
	m.mu.RLock()
	task, ok := m.tasks[id]
	m.mu.RUnlock()

	if !ok {
		return nil, ErrTaskNotFound
	}
	if err := EnsureOwned(owner, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (m *MemoryStorage) UpdateTask(owner string, id int, description string) (*models.Task, error) {
	lock := m.recordLock(id)
	if lock == nil {
		return nil, ErrTaskNotFound
	}
	lock.Lock()
	defer lock.Unlock()

	m.mu.RLock()
	task, ok := m.tasks[id]
	m.mu.RUnlock()

	if !ok {
		return nil, ErrTaskNotFound
	}
	if err := EnsureOwned(owner, &task); err != nil {
		return nil, err
	}

	task.Description = description
	task.UpdatedAt = time.Now()

	m.mu.Lock()
	m.tasks[id] = task
	m.mu.Unlock()

	return &task, nil
}

func (m *MemoryStorage) DeleteTask(owner string, id int) error {
	lock := m.recordLock(id)
	if lock == nil {
		return ErrTaskNotFound
	}
	lock.Lock()
	defer lock.Unlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	task, ok := m.tasks[id]
	if !ok {
		return ErrTaskNotFound
	}
	if err := EnsureOwned(owner, &task); err != nil {
		return err
	}

	delete(m.tasks, id)
	delete(m.locks, id)
	return nil
}

func (m *MemoryStorage) ListTasks(owner string) ([]models.Task, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	tasks := make([]models.Task, 0)
	for _, task := range m.tasks {
		if task.Owner == owner {
			tasks = append(tasks, task)
		}
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].ID < tasks[j].ID })
	return tasks, nil
}

func (m *MemoryStorage) Close() error {
	return nil
}

// recordLock возвращает мьютекс конкретной задачи, nil — если задачи нет.
func (m *MemoryStorage) recordLock(id int) *sync.Mutex {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.locks[id]
}
