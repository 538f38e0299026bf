package models

import "time"

// Task — задача пользователя.
// Owner назначается транспортным слоем при создании и больше не меняется:
// задача видна и изменяема только через вызовы с её владельцем.
type Task struct {
	ID          int       `json:"id"`
	Owner       string    `json:"owner"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
