package services

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"devforum/models"
)

const (
	// CHAT_REPLY_DELAY - пауза перед симулированным ответом собеседника
	CHAT_REPLY_DELAY = 2000 * time.Millisecond
	// REPLY_PREFIX_LEN - сколько символов исходного сообщения цитирует ответ
	REPLY_PREFIX_LEN = 10
	// PartnerSenderID - отправитель всех симулированных ответов
	PartnerSenderID = "partner"
)

// ChatService - стор диалогов с симуляцией ответа собеседника.
// После каждого своего сообщения взводится таймер на CHAT_REPLY_DELAY;
// на каждую сессию живет максимум один таймер (cancel-and-rearm),
// поэтому ответы не дублируются, сколько бы сообщений ни отправили подряд.
type ChatService struct {
	mu         sync.Mutex
	sessions   []models.ChatSession
	timers     map[string]*time.Timer
	pending    map[string]uint64 // поколение взвода; устаревшая доставка отбрасывается
	replyDelay time.Duration
	onReply    func(sessionID string, msg models.ChatMessage)
	closed     bool
}

func NewChatService() *ChatService {
	return &ChatService{
		timers:     make(map[string]*time.Timer),
		pending:    make(map[string]uint64),
		replyDelay: CHAT_REPLY_DELAY,
	}
}

// SetReplyDelay переопределяет задержку ответа (для тестов)
func (cs *ChatService) SetReplyDelay(d time.Duration) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.replyDelay = d
}

// OnReply ставит колбек на доставку симулированного ответа (push в WebSocket)
func (cs *ChatService) OnReply(fn func(sessionID string, msg models.ChatMessage)) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.onReply = fn
}

// Seed задает начальный набор диалогов
func (cs *ChatService) Seed(sessions []models.ChatSession) {
	next := make([]models.ChatSession, len(sessions))
	copy(next, sessions)

	cs.mu.Lock()
	cs.sessions = next
	cs.mu.Unlock()
}

// EnsureSession возвращает диалог с собеседником, создавая его при
// необходимости: на одного собеседника - ровно одна сессия
func (cs *ChatService) EnsureSession(partnerName, partnerAvatar string) models.ChatSession {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	for i := range cs.sessions {
		if cs.sessions[i].PartnerName == partnerName {
			return cs.sessions[i]
		}
	}

	session := models.ChatSession{
		ID:            uuid.NewString(),
		PartnerName:   partnerName,
		PartnerAvatar: partnerAvatar,
		Messages:      []models.ChatMessage{},
	}
	next := make([]models.ChatSession, 0, len(cs.sessions)+1)
	next = append(next, cs.sessions...)
	next = append(next, session)
	cs.sessions = next
	return session
}

// Sessions возвращает текущий снапшот диалогов
func (cs *ChatService) Sessions() []models.ChatSession {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	return cs.sessions
}

// Messages возвращает сообщения диалога
func (cs *ChatService) Messages(sessionID string) ([]models.ChatMessage, bool) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	for i := range cs.sessions {
		if cs.sessions[i].ID == sessionID {
			return cs.sessions[i].Messages, true
		}
	}
	return nil, false
}

// AppendMessage дописывает сообщение в конец диалога и обновляет
// LastMessage. Пустой текст и неизвестная сессия - тихие no-op.
// Свое сообщение перевзводит таймер симулированного ответа.
func (cs *ChatService) AppendMessage(sessionID, senderID, content string, isSelf bool) (models.ChatMessage, bool) {
	content = strings.TrimSpace(content)
	if content == "" {
		return models.ChatMessage{}, false
	}

	cs.mu.Lock()
	idx := cs.indexLocked(sessionID)
	if idx < 0 {
		cs.mu.Unlock()
		return models.ChatMessage{}, false
	}

	msg := models.ChatMessage{
		ID:        uuid.NewString(),
		SenderID:  senderID,
		Content:   content,
		CreatedAt: time.Now(),
		IsSelf:    isSelf,
	}
	cs.appendLocked(idx, msg)
	if isSelf && !cs.closed {
		cs.armReplyLocked(sessionID, content)
	}
	cs.mu.Unlock()

	return msg, true
}

// DeleteSession удаляет диалог и подавляет его отложенный ответ
func (cs *ChatService) DeleteSession(sessionID string) bool {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	idx := cs.indexLocked(sessionID)
	if idx < 0 {
		return false
	}

	cs.cancelReplyLocked(sessionID)
	next := make([]models.ChatSession, 0, len(cs.sessions)-1)
	next = append(next, cs.sessions[:idx]...)
	next = append(next, cs.sessions[idx+1:]...)
	cs.sessions = next
	return true
}

// Close останавливает все отложенные ответы (teardown процесса)
func (cs *ChatService) Close() {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.closed = true
	for id, t := range cs.timers {
		t.Stop()
		delete(cs.timers, id)
	}
}

func (cs *ChatService) indexLocked(sessionID string) int {
	for i := range cs.sessions {
		if cs.sessions[i].ID == sessionID {
			return i
		}
	}
	return -1
}

// appendLocked собирает новый снапшот с дописанным сообщением
func (cs *ChatService) appendLocked(idx int, msg models.ChatMessage) {
	next := make([]models.ChatSession, len(cs.sessions))
	copy(next, cs.sessions)

	session := &next[idx]
	messages := make([]models.ChatMessage, len(session.Messages), len(session.Messages)+1)
	copy(messages, session.Messages)
	session.Messages = append(messages, msg)
	session.LastMessage = msg.Content

	cs.sessions = next
}

// armReplyLocked взводит таймер ответа, снимая предыдущий.
// Поколение в pending отсекает доставку от уже остановленного таймера,
// который успел сработать до Stop.
func (cs *ChatService) armReplyLocked(sessionID, trigger string) {
	if t := cs.timers[sessionID]; t != nil {
		t.Stop()
	}
	cs.pending[sessionID]++
	gen := cs.pending[sessionID]
	cs.timers[sessionID] = time.AfterFunc(cs.replyDelay, func() {
		cs.deliverReply(sessionID, gen, trigger)
	})
}

func (cs *ChatService) cancelReplyLocked(sessionID string) {
	if t := cs.timers[sessionID]; t != nil {
		t.Stop()
		delete(cs.timers, sessionID)
	}
	cs.pending[sessionID]++
}

// deliverReply дописывает симулированный ответ собеседника
func (cs *ChatService) deliverReply(sessionID string, gen uint64, trigger string) {
	cs.mu.Lock()
	if cs.closed || cs.pending[sessionID] != gen {
		cs.mu.Unlock()
		return
	}
	delete(cs.timers, sessionID)

	idx := cs.indexLocked(sessionID)
	if idx < 0 {
		cs.mu.Unlock()
		return
	}

	reply := models.ChatMessage{
		ID:        uuid.NewString(),
		SenderID:  PartnerSenderID,
		Content:   replyText(trigger),
		CreatedAt: time.Now(),
		IsSelf:    false,
	}
	cs.appendLocked(idx, reply)
	notify := cs.onReply
	cs.mu.Unlock()

	if notify != nil {
		notify(sessionID, reply)
	}
}

// replyText детерминированно выводит ответ из префикса исходного сообщения
func replyText(trigger string) string {
	runes := []rune(trigger)
	if len(runes) > REPLY_PREFIX_LEN {
		runes = runes[:REPLY_PREFIX_LEN]
	}
	return fmt.Sprintf("That's interesting! Tell me more about \"%s...\"", string(runes))
}
