package services

import (
	"fmt"
	"log"
	"time"

	"github.com/brianvoe/gofakeit/v6"

	"devforum/models"
)

// SeedDemoData наполняет сторы стартовыми данными: пара постоянных постов,
// один диалог и немного сгенерированного фона для наглядности
func SeedDemoData(forum *ForumService, chat *ChatService, todos *TodoService) {
	now := time.Now()

	posts := []models.Post{
		{
			ID:           "1",
			AuthorID:     "admin",
			AuthorName:   "AdminUser",
			AuthorAvatar: "https://picsum.photos/seed/admin/50/50",
			Title:        "Welcome to the DevForum!",
			Content:      "This forum simulates a classic backend-driven architecture. Feel free to test the features!",
			Likes:        120,
			Views:        540,
			CreatedAt:    now.Add(-10000 * time.Second),
			Comments: []models.Comment{
				{
					ID:           "c1",
					PostID:       "1",
					AuthorID:     "user2",
					AuthorName:   "JaneDoe",
					AuthorAvatar: "https://picsum.photos/seed/jane/50/50",
					Content:      "Great system! Love the design.",
					CreatedAt:    now.Add(-5000 * time.Second),
				},
			},
		},
		{
			ID:           "2",
			AuthorID:     "user2",
			AuthorName:   "JaneDoe",
			AuthorAvatar: "https://picsum.photos/seed/jane/50/50",
			Title:        "How to center a div?",
			Content:      "I have been trying for 3 hours. Flexbox? Grid? Help!",
			Image:        "https://picsum.photos/seed/css/600/300",
			Likes:        5,
			Views:        42,
			CreatedAt:    now.Add(-2000 * time.Second),
			Comments:     []models.Comment{},
		},
	}

	// Фоновые посты от случайных авторов
	for i := 0; i < 5; i++ {
		username := gofakeit.Username()
		posts = append(posts, models.Post{
			ID:           fmt.Sprintf("seed-%d", i+3),
			AuthorID:     fmt.Sprintf("user-%s", username),
			AuthorName:   username,
			AuthorAvatar: fmt.Sprintf("https://picsum.photos/seed/%s/50/50", username),
			Title:        gofakeit.Sentence(6),
			Content:      gofakeit.Paragraph(1, 3, 12, " "),
			Likes:        gofakeit.Number(0, 50),
			Views:        int64(gofakeit.Number(10, 500)),
			CreatedAt:    now.Add(-time.Duration(gofakeit.Number(3000, 90000)) * time.Second),
			Comments:     []models.Comment{},
		})
	}
	forum.Seed(posts)

	chat.Seed([]models.ChatSession{
		{
			ID:            "chat1",
			PartnerName:   "JaneDoe",
			PartnerAvatar: "https://picsum.photos/seed/jane/50/50",
			LastMessage:   "Hey, did you solve that CSS issue?",
			Messages: []models.ChatMessage{
				{
					ID:        "m1",
					SenderID:  "user2",
					Content:   "Hey, did you solve that CSS issue?",
					CreatedAt: now.Add(-100 * time.Second),
					IsSelf:    false,
				},
			},
		},
	})

	todos.Seed([]models.Todo{
		{ID: "t1", Text: "Reply to the CSS thread", Completed: false, CreatedAt: now.Add(-3600 * time.Second)},
		{ID: "t2", Text: "Read the welcome post", Completed: true, CreatedAt: now.Add(-7200 * time.Second)},
	})

	log.Printf("Demo data seeded: %d posts, 1 chat session, 2 todos", len(posts))
}
