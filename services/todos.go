package services

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"devforum/models"
)

// TodoService - стор задач личного дашборда. Та же снапшот-дисциплина,
// что и у форума: мутация собирает новую коллекцию целиком.
type TodoService struct {
	mu    sync.RWMutex
	todos []models.Todo
}

func NewTodoService() *TodoService {
	return &TodoService{}
}

// Seed задает начальный список задач
func (ts *TodoService) Seed(todos []models.Todo) {
	next := make([]models.Todo, len(todos))
	copy(next, todos)

	ts.mu.Lock()
	ts.todos = next
	ts.mu.Unlock()
}

// Add создает задачу и ставит ее в начало списка.
// Пустой (после trim) текст - тихий no-op.
func (ts *TodoService) Add(text string) (models.Todo, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return models.Todo{}, false
	}

	todo := models.Todo{
		ID:        uuid.NewString(),
		Text:      text,
		CreatedAt: time.Now(),
	}

	ts.mu.Lock()
	next := make([]models.Todo, 0, len(ts.todos)+1)
	next = append(next, todo)
	next = append(next, ts.todos...)
	ts.todos = next
	ts.mu.Unlock()

	return todo, true
}

// Toggle переключает отметку выполнения; неизвестный id - no-op
func (ts *TodoService) Toggle(id string) bool {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	for i := range ts.todos {
		if ts.todos[i].ID != id {
			continue
		}
		next := make([]models.Todo, len(ts.todos))
		copy(next, ts.todos)
		next[i].Completed = !next[i].Completed
		ts.todos = next
		return true
	}
	return false
}

// Delete удаляет задачу; неизвестный id - no-op
func (ts *TodoService) Delete(id string) bool {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	for i := range ts.todos {
		if ts.todos[i].ID != id {
			continue
		}
		next := make([]models.Todo, 0, len(ts.todos)-1)
		next = append(next, ts.todos[:i]...)
		next = append(next, ts.todos[i+1:]...)
		ts.todos = next
		return true
	}
	return false
}

// Snapshot возвращает текущий список задач
func (ts *TodoService) Snapshot() []models.Todo {
	ts.mu.RLock()
	defer ts.mu.RUnlock()
	return ts.todos
}

// Filtered - проекция списка по фильтру all/active/completed
func (ts *TodoService) Filtered(filter models.TodoFilter) []models.Todo {
	snap := ts.Snapshot()
	if filter == models.TODO_ALL || filter == "" {
		return snap
	}
	out := make([]models.Todo, 0, len(snap))
	for _, t := range snap {
		switch filter {
		case models.TODO_ACTIVE:
			if !t.Completed {
				out = append(out, t)
			}
		case models.TODO_COMPLETED:
			if t.Completed {
				out = append(out, t)
			}
		}
	}
	return out
}

// Texts возвращает тексты всех задач (контекст для AI-подсказки)
func (ts *TodoService) Texts() []string {
	snap := ts.Snapshot()
	out := make([]string, 0, len(snap))
	for _, t := range snap {
		out = append(out, t.Text)
	}
	return out
}
