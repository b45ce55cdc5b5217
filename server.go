package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"

	"github.com/gin-gonic/gin"

	"devforum/api/handlers"
	"devforum/api/middleware"
	"devforum/api/routes"
	"devforum/config"
	"devforum/db"
	"devforum/models"
	"devforum/services"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "config.yaml", "Path to the configuration file")
	flag.Parse()

	err := config.LoadConfig(configPath)
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}
	log.Println("Starting server...")

	if err := db.ConnectDB(); err != nil {
		panic("Failed to connect to the database: " + err.Error())
	}

	// Redis и RabbitMQ опциональны: без них сервер работает на in-memory fallback
	if err := services.InitRedis(); err != nil {
		log.Printf("Redis unavailable, continuing without it: %v", err)
	}
	if err := services.InitRabbitMQ(); err != nil {
		log.Printf("RabbitMQ unavailable, feed events will go directly to WebSocket: %v", err)
	} else {
		if err := services.StartFeedEventConsumer(context.Background(), "forum_feed_push"); err != nil {
			log.Printf("Failed to start feed event consumer: %v", err)
		}
	}

	sessions := services.NewSessionService()
	forum := services.NewForumService()
	chat := services.NewChatService()
	todos := services.NewTodoService()
	views := services.NewViewCounterService()
	assistant := services.NewAssistantService(
		config.AppConfig.Assistant.APIKey,
		config.AppConfig.Assistant.Model,
	)

	// Ответ собеседника приходит асинхронно, пушим его в WebSocket
	chat.OnReply(func(sessionID string, msg models.ChatMessage) {
		event := struct {
			Event     string             `json:"event"`
			SessionID string             `json:"session_id"`
			Message   models.ChatMessage `json:"message"`
		}{Event: "chat_reply", SessionID: sessionID, Message: msg}
		if data, err := json.Marshal(event); err == nil {
			services.GlobalWSConnManager.Broadcast(data)
		}
	})

	if sessions.Restore() {
		log.Println("Previous session restored from storage")
	}
	if config.AppConfig.Demo {
		services.SeedDemoData(forum, chat, todos)
	}

	// Подтягиваем зеркала счетчиков просмотров, пережившие рестарт
	snap := forum.Snapshot()
	postIDs := make([]string, 0, len(snap))
	for _, p := range snap {
		postIDs = append(postIDs, p.ID)
	}
	for id, v := range views.Restore(postIDs) {
		forum.SetViews(id, v)
	}

	api := handlers.NewAPI(sessions, forum, chat, todos, assistant, views, services.GlobalWSConnManager)

	router := gin.Default()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.PrometheusMiddleware(handlers.ServiceName))

	routes.PublicApi(router, api)

	defer func() {
		chat.Close()
		services.CloseRabbitMQ()
		services.CloseRedis()
	}()

	addr := fmt.Sprintf("%s:%d", config.AppConfig.Backend.Host, config.AppConfig.Backend.Port)
	if err := router.Run(addr); err != nil {
		panic(err)
	}
}
