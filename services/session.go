package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/argon2"

	"devforum/db"
	"devforum/models"
)

const (
	// LOGIN_DELAY - имитация сетевой задержки на вход
	LOGIN_DELAY = 800 * time.Millisecond
	// PROFILE_SAVE_DELAY - имитация задержки на сохранение профиля
	PROFILE_SAVE_DELAY = 500 * time.Millisecond
)

var (
	ErrEmptyUsername = errors.New("username is empty")
	ErrNoSession     = errors.New("no active session")
)

// SessionService держит активную учетную запись. Аутентификация мок-режимная:
// любой непустой username проходит, роль ADMIN выдается только за имя "admin"
// (без учета регистра). Интерфейс оставлен так, чтобы реальную проверку
// пароля можно было подключить, не трогая вызывающий код.
type SessionService struct {
	mu         sync.RWMutex
	current    *models.Identity
	token      string
	loginDelay time.Duration
	saveDelay  time.Duration
}

func NewSessionService() *SessionService {
	return &SessionService{
		loginDelay: LOGIN_DELAY,
		saveDelay:  PROFILE_SAVE_DELAY,
	}
}

// SetDelays переопределяет имитационные задержки (для тестов)
func (s *SessionService) SetDelays(login, save time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loginDelay = login
	s.saveDelay = save
}

// Login создает новую Identity и делает ее активной. Пароль не проверяется,
// но его argon2-дайджест сохраняется в слоте, чтобы настоящий бекенд
// аутентификации мог позже верифицировать без смены контракта.
func (s *SessionService) Login(ctx context.Context, username, password string) (*models.Identity, string, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, "", ErrEmptyUsername
	}

	s.mu.RLock()
	delay := s.loginDelay
	s.mu.RUnlock()
	if err := sleepCtx(ctx, delay); err != nil {
		return nil, "", err
	}

	identity := &models.Identity{
		Username:     username,
		Avatar:       avatarFor(username),
		Role:         models.ROLE_USER,
		PasswordHash: hashPassword(password),
	}
	if strings.EqualFold(username, "admin") {
		identity.ID = "admin"
		identity.Role = models.ROLE_ADMIN
	} else {
		identity.ID = "user-" + uuid.NewString()
	}

	token, err := newToken()
	if err != nil {
		return nil, "", err
	}

	s.mu.Lock()
	s.current = identity
	s.token = token
	s.mu.Unlock()

	s.persist(identity)
	return identity, token, nil
}

// Logout сбрасывает активную учетную запись и стирает слот
func (s *SessionService) Logout() {
	s.mu.Lock()
	s.current = nil
	s.token = ""
	s.mu.Unlock()

	if db.ORM == nil {
		return
	}
	if err := db.ORM.Delete(&models.SessionRecord{}, "key = ?", models.SessionSlotKey).Error; err != nil {
		log.Printf("Failed to erase session slot: %v", err)
	}
}

// UpdateProfile заменяет отображаемые поля активной Identity.
// Роль после создания неизменна.
func (s *SessionService) UpdateProfile(ctx context.Context, username, avatar string) (*models.Identity, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, ErrEmptyUsername
	}

	s.mu.RLock()
	delay := s.saveDelay
	s.mu.RUnlock()
	if err := sleepCtx(ctx, delay); err != nil {
		return nil, err
	}

	s.mu.Lock()
	if s.current == nil {
		s.mu.Unlock()
		return nil, ErrNoSession
	}
	// Собираем новый снапшот, старую Identity на месте не трогаем
	updated := *s.current
	updated.Username = username
	if avatar != "" {
		updated.Avatar = avatar
	}
	s.current = &updated
	s.mu.Unlock()

	s.persist(&updated)
	return &updated, nil
}

// Current возвращает активную Identity (nil, если не залогинен)
func (s *SessionService) Current() *models.Identity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Authenticate сверяет bearer-токен с активной сессией
func (s *SessionService) Authenticate(token string) (*models.Identity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil || token == "" || token != s.token {
		return nil, false
	}
	return s.current, true
}

// Restore пытается поднять сессию из слота при старте процесса.
// Токен при этом не восстанавливается: клиент API логинится заново.
func (s *SessionService) Restore() bool {
	if db.ORM == nil {
		return false
	}

	var record models.SessionRecord
	err := db.ORM.First(&record, "key = ?", models.SessionSlotKey).Error
	if err != nil {
		return false
	}

	var identity models.Identity
	if err := json.Unmarshal([]byte(record.Value), &identity); err != nil {
		log.Printf("Failed to decode session slot, ignoring it: %v", err)
		return false
	}

	s.mu.Lock()
	s.current = &identity
	s.mu.Unlock()
	log.Printf("Session restored for user %s (%s)", identity.Username, identity.Role)
	return true
}

// persist сериализует Identity в единственный слот. Отсутствие базы не
// считается ошибкой - процесс продолжает работать без восстановления сессии.
func (s *SessionService) persist(identity *models.Identity) {
	if db.ORM == nil {
		return
	}

	data, err := json.Marshal(identity)
	if err != nil {
		log.Printf("Failed to marshal identity: %v", err)
		return
	}

	record := models.SessionRecord{
		Key:       models.SessionSlotKey,
		Value:     string(data),
		UpdatedAt: time.Now(),
	}
	if err := db.ORM.Save(&record).Error; err != nil {
		log.Printf("Failed to write session slot: %v", err)
	}
}

// avatarFor детерминированно выводит аватар из имени пользователя
func avatarFor(username string) string {
	return fmt.Sprintf("https://picsum.photos/seed/%s/200/200", url.PathEscape(username))
}

// hashPassword считает argon2id-дайджест в формате salt$hash (hex).
// Сам мок-логин дайджест не проверяет.
func hashPassword(password string) string {
	salt := make([]byte, 16)
	if _, err := rand.Read(salt); err != nil {
		log.Printf("Failed to generate salt: %v", err)
		return ""
	}
	hash := argon2.IDKey([]byte(password), salt, 1, 64*1024, 4, 32)
	return hex.EncodeToString(salt) + "$" + hex.EncodeToString(hash)
}

func newToken() (string, error) {
	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(tokenBytes), nil
}

// sleepCtx - кооперативная задержка, прерываемая контекстом
func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
