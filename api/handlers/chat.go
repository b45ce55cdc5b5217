package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"devforum/api/middleware"
)

type SendMessageRequest struct {
	Content string `json:"content" binding:"required"`
}

type EnsureSessionRequest struct {
	PartnerName   string `json:"partner_name" binding:"required"`
	PartnerAvatar string `json:"partner_avatar"`
}

func (a *API) ListChats(c *gin.Context) {
	c.JSON(http.StatusOK, a.Chat.Sessions())
}

func (a *API) ChatMessages(c *gin.Context) {
	messages, ok := a.Chat.Messages(c.Param("session_id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Chat session not found"})
		return
	}
	c.JSON(http.StatusOK, messages)
}

// EnsureChat создает диалог с собеседником или возвращает существующий
func (a *API) EnsureChat(c *gin.Context) {
	var req EnsureSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Partner name is required"})
		return
	}
	session := a.Chat.EnsureSession(req.PartnerName, req.PartnerAvatar)
	c.JSON(http.StatusOK, session)
}

// SendMessage добавляет сообщение текущего пользователя в диалог.
// Ответ собеседника придет позже отдельным WebSocket-событием
func (a *API) SendMessage(c *gin.Context) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message content is required"})
		return
	}

	msg, ok := a.Chat.AppendMessage(c.Param("session_id"), identity.ID, req.Content, true)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Chat session not found or message is empty"})
		return
	}
	middleware.RecordChatOperation("send_message", "ok", ServiceName)
	c.JSON(http.StatusCreated, msg)
}

func (a *API) DeleteChat(c *gin.Context) {
	if !a.Chat.DeleteSession(c.Param("session_id")) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Chat session not found"})
		return
	}
	middleware.RecordChatOperation("delete_session", "ok", ServiceName)
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
