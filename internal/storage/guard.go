package storage

import "taskbot/internal/models"

// EnsureOwned проверяет, что задача принадлежит запрашивающему пользователю.
// Чужая задача снаружи неотличима от отсутствующей: в обоих случаях уходит
// ErrTaskNotFound, чтобы не раскрывать существование чужих ID.
//
// Проверка живёт на границе хранилища, а не в вызывающем коде: каждый
// owner-scoped метод Storage принимает владельца обязательным параметром.
func EnsureOwned(owner string, task *models.Task) error {
	if task == nil || task.Owner != owner {
		return ErrTaskNotFound
	}
	return nil
}
