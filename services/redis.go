package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"

	"devforum/config"
)

// RedisClient - общий клиент Redis. Может быть nil: все потребители обязаны
// проверять и работать без него (in-memory fallback).
var RedisClient *redis.Client

// InitRedis подключается к Redis по конфигу. Отсутствие Redis не фатально
func InitRedis() error {
	if config.AppConfig == nil || config.AppConfig.Redis.Host == "" {
		log.Println("Redis is not configured, view counters will stay in memory only")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", config.AppConfig.Redis.Host, config.AppConfig.Redis.Port),
		Password: config.AppConfig.Redis.Password,
		DB:       config.AppConfig.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}

	RedisClient = client
	log.Println("Redis connected successfully")
	return nil
}

func CloseRedis() {
	if RedisClient != nil {
		_ = RedisClient.Close()
		RedisClient = nil
	}
}
