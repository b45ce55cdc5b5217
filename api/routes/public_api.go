package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"devforum/api/handlers"
	"devforum/api/middleware"
)

func PublicApi(router *gin.Engine, api *handlers.API) *gin.RouterGroup {
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	publicEndpoints := router.Group("/api/v1/")
	{
		publicEndpoints.POST("auth/login", api.Login)
	}

	authEndpoints := router.Group("/api/v1/")
	authEndpoints.Use(middleware.AuthMiddleware(api.Sessions))
	{
		authEndpoints.POST("auth/logout", api.Logout)
		authEndpoints.GET("profile", api.Profile)
		authEndpoints.PUT("profile", api.UpdateProfile)

		// Форум
		authEndpoints.GET("posts", api.ListPosts)
		authEndpoints.POST("posts", api.CreatePost)
		authEndpoints.GET("posts/:post_id", api.GetPost)
		authEndpoints.POST("posts/:post_id/like", api.ToggleLike)
		authEndpoints.POST("posts/:post_id/collect", api.ToggleCollect)
		authEndpoints.POST("posts/:post_id/comments", api.AddComment)
		authEndpoints.DELETE("posts/:post_id/comments/:comment_id", api.DeleteComment)
		authEndpoints.PUT("posts/:post_id/likes", api.OverrideLikes)

		// Чат
		authEndpoints.GET("chats", api.ListChats)
		authEndpoints.POST("chats", api.EnsureChat)
		authEndpoints.GET("chats/:session_id/messages", api.ChatMessages)
		authEndpoints.POST("chats/:session_id/messages", api.SendMessage)
		authEndpoints.DELETE("chats/:session_id", api.DeleteChat)

		// Задачи
		authEndpoints.GET("todos", api.ListTodos)
		authEndpoints.POST("todos", api.AddTodo)
		authEndpoints.POST("todos/:todo_id/toggle", api.ToggleTodo)
		authEndpoints.DELETE("todos/:todo_id", api.DeleteTodo)

		// AI-ассистент
		authEndpoints.POST("assistant/post", api.GeneratePost)
		authEndpoints.GET("assistant/quote", api.GenerateQuote)
		authEndpoints.GET("assistant/todo", api.GenerateTodoSuggestion)

		// WebSocket
		authEndpoints.GET("ws", api.WSHandler)
	}
	return authEndpoints
}
