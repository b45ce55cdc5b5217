package models

import (
	"time"
)

// ChatMessage представляет сообщение в диалоге. После создания не меняется,
// порядок в диалоге только append-only.
type ChatMessage struct {
	ID        string    `json:"id"`
	SenderID  string    `json:"sender_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	IsSelf    bool      `json:"is_self"`
}

// ChatSession - диалог с одним собеседником. LastMessage - производный кеш
// текста последнего сообщения, обновляется на каждом append.
type ChatSession struct {
	ID            string        `json:"id"`
	PartnerName   string        `json:"partner_name"`
	PartnerAvatar string        `json:"partner_avatar"`
	LastMessage   string        `json:"last_message"`
	Messages      []ChatMessage `json:"messages"`
}
