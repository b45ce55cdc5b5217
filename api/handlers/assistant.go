package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"devforum/api/middleware"
	"devforum/services"
)

type GeneratePostRequest struct {
	Topic string `json:"topic" binding:"required"`
}

// GeneratePost генерирует черновик поста по теме. В отличие от цитаты
// и подсказки задачи здесь сбой генерации возвращается клиенту как ошибка
func (a *API) GeneratePost(c *gin.Context) {
	var req GeneratePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Topic is required"})
		return
	}

	start := time.Now()
	draft, err := a.Assistant.GeneratePostContent(c.Request.Context(), req.Topic)
	if err != nil {
		middleware.RecordAssistantCall("generate_post", "error", ServiceName, time.Since(start))
		var genErr *services.GenerationError
		if errors.As(err, &genErr) {
			c.JSON(http.StatusBadGateway, gin.H{"error": genErr.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	middleware.RecordAssistantCall("generate_post", "ok", ServiceName, time.Since(start))
	c.JSON(http.StatusOK, draft)
}

// GenerateQuote всегда отвечает 200: при сбое апстрима отдается запасная цитата
func (a *API) GenerateQuote(c *gin.Context) {
	start := time.Now()
	quote := a.Assistant.GenerateQuote(c.Request.Context())
	middleware.RecordAssistantCall("generate_quote", "ok", ServiceName, time.Since(start))
	c.JSON(http.StatusOK, quote)
}

// GenerateTodoSuggestion предлагает задачу с учетом текущего списка.
// Предложение не добавляется в список автоматически
func (a *API) GenerateTodoSuggestion(c *gin.Context) {
	start := time.Now()
	suggestion := a.Assistant.GenerateTodoSuggestion(c.Request.Context(), a.Todos.Texts())
	middleware.RecordAssistantCall("generate_todo", "ok", ServiceName, time.Since(start))
	c.JSON(http.StatusOK, gin.H{"suggestion": suggestion})
}
