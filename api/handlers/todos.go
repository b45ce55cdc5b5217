package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"devforum/models"
)

type AddTodoRequest struct {
	Text string `json:"text" binding:"required"`
}

// ListTodos возвращает задачи, опционально отфильтрованные
// по статусу: all / active / completed
func (a *API) ListTodos(c *gin.Context) {
	filter := models.TodoFilter(c.DefaultQuery("filter", string(models.TODO_ALL)))
	switch filter {
	case models.TODO_ALL, models.TODO_ACTIVE, models.TODO_COMPLETED:
		c.JSON(http.StatusOK, a.Todos.Filtered(filter))
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown filter"})
	}
}

func (a *API) AddTodo(c *gin.Context) {
	var req AddTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Todo text is required"})
		return
	}
	todo, ok := a.Todos.Add(req.Text)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Todo text is empty"})
		return
	}
	c.JSON(http.StatusCreated, todo)
}

func (a *API) ToggleTodo(c *gin.Context) {
	if !a.Todos.Toggle(c.Param("todo_id")) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Todo not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "toggled"})
}

func (a *API) DeleteTodo(c *gin.Context) {
	if !a.Todos.Delete(c.Param("todo_id")) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Todo not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
