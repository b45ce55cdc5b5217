package models

import "time"

type TodoFilter string

const (
	TODO_ALL       TodoFilter = "all"
	TODO_ACTIVE    TodoFilter = "active"
	TODO_COMPLETED TodoFilter = "completed"
)

// Todo - задача из личного дашборда
type Todo struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"created_at"`
}
