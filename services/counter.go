package services

import (
	"context"
	"log"
	"time"
)

const viewKeyPrefix = "post_views:"

// ViewCounterService зеркалирует счетчики просмотров в Redis, чтобы они
// переживали рестарт процесса. Источник истины - стор форума; при
// отсутствии Redis оба метода - тихие no-op.
type ViewCounterService struct{}

func NewViewCounterService() *ViewCounterService {
	return &ViewCounterService{}
}

// Mirror записывает текущее значение счетчика поста
func (v *ViewCounterService) Mirror(postID string, views int64) {
	if RedisClient == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := RedisClient.Set(ctx, viewKeyPrefix+postID, views, 0).Err(); err != nil {
		log.Printf("Failed to mirror view counter to redis: %v", err)
	}
}

// Restore возвращает сохраненные счетчики для известных постов
func (v *ViewCounterService) Restore(postIDs []string) map[string]int64 {
	out := make(map[string]int64)
	if RedisClient == nil {
		return out
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	for _, id := range postIDs {
		val, err := RedisClient.Get(ctx, viewKeyPrefix+id).Int64()
		if err != nil {
			continue
		}
		out[id] = val
	}
	return out
}
