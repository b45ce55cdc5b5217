package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"devforum/config"
)

var (
	rabbitConn    *amqp.Connection
	rabbitChannel *amqp.Channel
	forumExchange = "forum_events"
)

// FeedEvent - событие о новом посте для рассылки подписчикам ленты
type FeedEvent struct {
	Event      string    `json:"event"`
	PostID     string    `json:"post_id"`
	AuthorID   string    `json:"author_id"`
	AuthorName string    `json:"author_name"`
	Title      string    `json:"title"`
	CreatedAt  time.Time `json:"created_at"`
}

// InitRabbitMQ инициализирует соединение и exchange.
// RabbitMQ опционален: при недоступности события уходят в WebSocket напрямую.
func InitRabbitMQ() error {
	url := ""
	if config.AppConfig != nil {
		url = config.AppConfig.RabbitMQ.URL
	}
	if url == "" {
		return fmt.Errorf("RabbitMQ URL is not configured")
	}
	var err error
	rabbitConn, err = amqp.Dial(url)
	if err != nil {
		return fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}
	rabbitChannel, err = rabbitConn.Channel()
	if err != nil {
		return fmt.Errorf("failed to open channel: %w", err)
	}
	// Создаем exchange типа topic
	if err := rabbitChannel.ExchangeDeclare(
		forumExchange,
		"topic",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,   // args
	); err != nil {
		return fmt.Errorf("failed to declare exchange: %w", err)
	}
	log.Printf("RabbitMQ initialized successfully with URL: %s", url)
	return nil
}

// PublishPostCreated публикует событие о создании поста
func PublishPostCreated(ctx context.Context, event FeedEvent) error {
	if rabbitChannel == nil {
		return fmt.Errorf("RabbitMQ channel not initialized")
	}
	event.Event = "post_created"
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	return rabbitChannel.PublishWithContext(ctx,
		forumExchange,
		"feed.post_created",
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
}

// StartFeedEventConsumer запускает воркер, который слушает события
// и рассылает их всем подключенным WebSocket-клиентам
func StartFeedEventConsumer(ctx context.Context, queueName string) error {
	if rabbitChannel == nil {
		return fmt.Errorf("RabbitMQ channel not initialized")
	}
	q, err := rabbitChannel.QueueDeclare(
		queueName,
		true,  // durable
		false, // auto-delete
		false, // exclusive
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		return fmt.Errorf("failed to declare queue: %w", err)
	}
	if err := rabbitChannel.QueueBind(
		q.Name,
		"feed.*",
		forumExchange,
		false,
		nil,
	); err != nil {
		return fmt.Errorf("failed to bind queue: %w", err)
	}
	msgs, err := rabbitChannel.Consume(
		q.Name,
		"",
		true,  // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to start consumer: %w", err)
	}
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				var event FeedEvent
				if err := json.Unmarshal(msg.Body, &event); err != nil {
					log.Println("Failed to unmarshal feed event:", err)
					continue
				}
				// Пушим событие всем подключенным клиентам
				pushData, _ := json.Marshal(event)
				GlobalWSConnManager.Broadcast(pushData)
			}
		}
	}()
	return nil
}

func CloseRabbitMQ() {
	if rabbitChannel != nil {
		_ = rabbitChannel.Close()
		rabbitChannel = nil
	}
	if rabbitConn != nil {
		_ = rabbitConn.Close()
		rabbitConn = nil
	}
}
