package services

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"devforum/models"
)

func newTestChat() *ChatService {
	cs := NewChatService()
	cs.SetReplyDelay(20 * time.Millisecond)
	cs.Seed([]models.ChatSession{
		{ID: "chat1", PartnerName: "JaneDoe", LastMessage: "hi", Messages: []models.ChatMessage{
			{ID: "m1", SenderID: "user2", Content: "hi", IsSelf: false},
		}},
	})
	return cs
}

func waitForReply(t *testing.T) {
	t.Helper()
	time.Sleep(100 * time.Millisecond)
}

func TestAppendMessageSpawnsSingleReply(t *testing.T) {
	cs := newTestChat()
	defer cs.Close()

	msg, ok := cs.AppendMessage("chat1", "me", "hello world, this is long", true)
	assert.True(t, ok)
	assert.True(t, msg.IsSelf)

	waitForReply(t)

	messages, _ := cs.Messages("chat1")
	assert.Len(t, messages, 3)

	reply := messages[2]
	assert.Equal(t, PartnerSenderID, reply.SenderID)
	assert.False(t, reply.IsSelf)
	assert.Equal(t, `That's interesting! Tell me more about "hello worl..."`, reply.Content)
}

func TestRapidMessagesRearmTimer(t *testing.T) {
	cs := newTestChat()
	defer cs.Close()

	cs.AppendMessage("chat1", "me", "first message", true)
	cs.AppendMessage("chat1", "me", "second message", true)
	cs.AppendMessage("chat1", "me", "third message", true)

	waitForReply(t)

	// Три своих сообщения, но ровно один ответ - на последнее
	messages, _ := cs.Messages("chat1")
	assert.Len(t, messages, 5)

	reply := messages[4]
	assert.Equal(t, PartnerSenderID, reply.SenderID)
	assert.Equal(t, `That's interesting! Tell me more about "third mess..."`, reply.Content)
}

func TestReplyUpdatesLastMessage(t *testing.T) {
	cs := newTestChat()
	defer cs.Close()

	cs.AppendMessage("chat1", "me", "ping", true)
	waitForReply(t)

	sessions := cs.Sessions()
	assert.Equal(t, `That's interesting! Tell me more about "ping..."`, sessions[0].LastMessage)
}

func TestPartnerMessageDoesNotArmTimer(t *testing.T) {
	cs := newTestChat()
	defer cs.Close()

	cs.AppendMessage("chat1", "user2", "are you there?", false)
	waitForReply(t)

	messages, _ := cs.Messages("chat1")
	assert.Len(t, messages, 2)
}

func TestAppendMessageBlankIsNoop(t *testing.T) {
	cs := newTestChat()
	defer cs.Close()

	_, ok := cs.AppendMessage("chat1", "me", "   ", true)
	assert.False(t, ok)

	_, ok = cs.AppendMessage("missing", "me", "hello", true)
	assert.False(t, ok)

	waitForReply(t)
	messages, _ := cs.Messages("chat1")
	assert.Len(t, messages, 1)
}

func TestDeleteSessionCancelsReply(t *testing.T) {
	cs := newTestChat()
	defer cs.Close()

	cs.AppendMessage("chat1", "me", "bye", true)
	assert.True(t, cs.DeleteSession("chat1"))

	waitForReply(t)
	assert.Empty(t, cs.Sessions())
}

func TestCloseSuppressesPendingReplies(t *testing.T) {
	cs := newTestChat()

	cs.AppendMessage("chat1", "me", "last words", true)
	cs.Close()

	waitForReply(t)
	messages, _ := cs.Messages("chat1")
	assert.Len(t, messages, 2)
}

func TestOnReplyCallback(t *testing.T) {
	cs := newTestChat()
	defer cs.Close()

	var mu sync.Mutex
	var got []models.ChatMessage
	cs.OnReply(func(sessionID string, msg models.ChatMessage) {
		mu.Lock()
		defer mu.Unlock()
		assert.Equal(t, "chat1", sessionID)
		got = append(got, msg)
	})

	cs.AppendMessage("chat1", "me", "notify me", true)
	waitForReply(t)

	mu.Lock()
	defer mu.Unlock()
	assert.Len(t, got, 1)
	assert.Equal(t, PartnerSenderID, got[0].SenderID)
}

func TestEnsureSessionIsIdempotent(t *testing.T) {
	cs := newTestChat()
	defer cs.Close()

	first := cs.EnsureSession("BobSmith", "https://picsum.photos/seed/bob/50/50")
	second := cs.EnsureSession("BobSmith", "")

	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, cs.Sessions(), 2)
}

func TestReplyTextShortTrigger(t *testing.T) {
	// Короткий исходник цитируется целиком
	assert.Equal(t, `That's interesting! Tell me more about "hi..."`, replyText("hi"))
}
