package storage

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"taskbot/internal/models"
)

// SQLiteStorage — долговременное хранилище поверх SQLite.
// Владелец входит в условие каждого запроса, поэтому чужая задача на любом
// пути выглядит как отсутствующая. Мутации — одиночные UPDATE/DELETE,
// атомарность на запись обеспечивает сама база.
type SQLiteStorage struct {
	db *sql.DB
}

func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("ошибка открытия БД: %v", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ошибка подключения к БД: %v", err)
	}

	if err := createTables(db); err != nil {
		return nil, err
	}

	return &SQLiteStorage{db: db}, nil
}

func createTables(db *sql.DB) error {
	// AUTOINCREMENT гарантирует строго возрастающие ID даже после удалений.
	createTasksTable := `
	CREATE TABLE IF NOT EXISTS tasks (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id TEXT NOT NULL,
		description TEXT NOT NULL,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	)`

	createOwnerIndex := `CREATE INDEX IF NOT EXISTS idx_tasks_user_id ON tasks (user_id)`

	if _, err := db.Exec(createTasksTable); err != nil {
		return fmt.Errorf("ошибка создания таблицы tasks: %v", err)
	}
	if _, err := db.Exec(createOwnerIndex); err != nil {
		return fmt.Errorf("ошибка создания индекса: %v", err)
	}

	return nil
}

func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

func (s *SQLiteStorage) AddTask(owner, description string) (models.Task, error) {
	query := `
	INSERT INTO tasks (user_id, description, created_at, updated_at)
	VALUES (?, ?, ?, ?)`

	now := time.Now()
	result, err := s.db.Exec(query, owner, description, now, now)
	if err != nil {
		return models.Task{}, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return models.Task{}, err
	}

	return models.Task{
		ID:          int(id),
		Owner:       owner,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

func (s *SQLiteStorage) GetTask(owner string, id int) (*models.Task, error) {
	query := `
	SELECT id, user_id, description, created_at, updated_at
	FROM tasks WHERE id = ? AND user_id = ?`

	var task models.Task
	err := s.db.QueryRow(query, id, owner).Scan(
		&task.ID, &task.Owner, &task.Description, &task.CreatedAt, &task.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}

	return &task, nil
}

func (s *SQLiteStorage) UpdateTask(owner string, id int, description string) (*models.Task, error) {
	query := `
	UPDATE tasks SET description = ?, updated_at = ?
	WHERE id = ? AND user_id = ?`

	result, err := s.db.Exec(query, description, time.Now(), id, owner)
	if err != nil {
		return nil, err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}
	if rowsAffected == 0 {
		return nil, ErrTaskNotFound
	}

	return s.GetTask(owner, id)
}

func (s *SQLiteStorage) DeleteTask(owner string, id int) error {
	query := "DELETE FROM tasks WHERE id = ? AND user_id = ?"

	result, err := s.db.Exec(query, id, owner)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrTaskNotFound
	}

	return nil
}

func (s *SQLiteStorage) ListTasks(owner string) ([]models.Task, error) {
	query := `
	SELECT id, user_id, description, created_at, updated_at
	FROM tasks WHERE user_id = ? ORDER BY id`

	rows, err := s.db.Query(query, owner)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := make([]models.Task, 0)
	for rows.Next() {
		var task models.Task
		err := rows.Scan(
			&task.ID, &task.Owner, &task.Description, &task.CreatedAt, &task.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}

	return tasks, rows.Err()
}
