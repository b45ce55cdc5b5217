package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"devforum/api/middleware"
	"devforum/services"
)

type CreatePostRequest struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content" binding:"required"`
	Image   string `json:"image"`
}

type AddCommentRequest struct {
	Content string `json:"content" binding:"required"`
}

type OverrideLikesRequest struct {
	Likes int `json:"likes"`
}

// ListPosts возвращает ленту. Сортировка: latest (по умолчанию) или hottest,
// collected=true оставляет только посты в избранном
func (a *API) ListPosts(c *gin.Context) {
	if c.Query("collected") == "true" {
		c.JSON(http.StatusOK, a.Forum.CollectedOnly())
		return
	}
	switch c.DefaultQuery("sort", "latest") {
	case "hottest":
		c.JSON(http.StatusOK, a.Forum.SortedByPopularity())
	case "latest":
		c.JSON(http.StatusOK, a.Forum.SortedByRecency())
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown sort mode"})
	}
}

func (a *API) GetPost(c *gin.Context) {
	post, ok := a.Forum.RegisterView(c.Param("post_id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}
	// Счетчик стора - источник истины, Redis лишь зеркалирует его
	a.Views.Mirror(post.ID, post.Views)
	c.JSON(http.StatusOK, post)
}

func (a *API) CreatePost(c *gin.Context) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title and content are required"})
		return
	}

	post := a.Forum.CreatePost(identity, req.Title, req.Content, req.Image)
	middleware.RecordForumOperation("create_post", "ok", ServiceName)

	// Рассылаем событие ленты: через RabbitMQ, а при его отсутствии -
	// напрямую в WebSocket
	event := services.FeedEvent{
		PostID:     post.ID,
		AuthorID:   post.AuthorID,
		AuthorName: post.AuthorName,
		Title:      post.Title,
		CreatedAt:  post.CreatedAt,
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := services.PublishPostCreated(ctx, event); err != nil {
		log.Printf("Feed event not published, falling back to direct push: %v", err)
		a.broadcastFeedEvent(event)
	}

	c.JSON(http.StatusCreated, post)
}

func (a *API) broadcastFeedEvent(event services.FeedEvent) {
	event.Event = "post_created"
	if data, err := json.Marshal(event); err == nil {
		a.WS.Broadcast(data)
	}
}

func (a *API) ToggleLike(c *gin.Context) {
	post, ok := a.Forum.ToggleLike(c.Param("post_id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}
	middleware.RecordForumOperation("toggle_like", "ok", ServiceName)
	c.JSON(http.StatusOK, post)
}

func (a *API) ToggleCollect(c *gin.Context) {
	post, ok := a.Forum.ToggleCollect(c.Param("post_id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}
	middleware.RecordForumOperation("toggle_collect", "ok", ServiceName)
	c.JSON(http.StatusOK, post)
}

func (a *API) AddComment(c *gin.Context) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Comment content is required"})
		return
	}

	comment, ok := a.Forum.AddComment(c.Param("post_id"), identity, req.Content)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}
	middleware.RecordForumOperation("add_comment", "ok", ServiceName)
	c.JSON(http.StatusCreated, comment)
}

// DeleteComment - модераторская операция, доступна только администратору
func (a *API) DeleteComment(c *gin.Context) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	if !identity.IsAdmin() {
		c.JSON(http.StatusForbidden, gin.H{"error": "Admin role required"})
		return
	}

	postID := c.Param("post_id")
	commentID := c.Param("comment_id")

	comment, found := a.Forum.GetComment(postID, commentID)
	if !a.Forum.DeleteComment(postID, commentID, identity) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
		return
	}
	middleware.RecordForumOperation("delete_comment", "ok", ServiceName)

	// Уведомляем автора удаленного комментария
	if found {
		_ = services.SendWsNotify(comment.AuthorID, "moderation", "Your comment was removed by a moderator")
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// OverrideLikes - административная корректировка счетчика лайков.
// Персональный флаг liked у поста при этом не меняется
func (a *API) OverrideLikes(c *gin.Context) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	if !identity.IsAdmin() {
		c.JSON(http.StatusForbidden, gin.H{"error": "Admin role required"})
		return
	}

	var req OverrideLikesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if req.Likes < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Likes must be non-negative"})
		return
	}

	post, ok := a.Forum.OverrideLikes(c.Param("post_id"), req.Likes, identity)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}
	middleware.RecordForumOperation("override_likes", "ok", ServiceName)

	_ = services.SendWsNotify(post.AuthorID, "moderation", "Like counter of your post was adjusted by a moderator")
	c.JSON(http.StatusOK, post)
}
