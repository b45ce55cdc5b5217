package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"devforum/config"
	"devforum/db"
	"devforum/models"
)

func setupSlotDB(t *testing.T) {
	t.Helper()
	if db.ORM != nil {
		return
	}
	conf := &config.ConfigSchema{}
	conf.Database.Driver = "sqlite"
	conf.Database.DSN = "file::memory:?cache=shared"
	config.AppConfig = conf

	if err := db.ConnectDB(); err != nil {
		t.Fatalf("Failed to setup test database: %v", err)
	}
}

func TestSessionSlotRoundTrip(t *testing.T) {
	setupSlotDB(t)

	s := newTestSession()
	identity, _, err := s.Login(context.Background(), "john", "pass")
	assert.NoError(t, err)

	// Новый процесс поднимает сессию из слота
	restored := NewSessionService()
	assert.True(t, restored.Restore())
	assert.Equal(t, identity.Username, restored.Current().Username)
	assert.Equal(t, identity.ID, restored.Current().ID)

	// Токен не восстанавливается, клиент логинится заново
	_, ok := restored.Authenticate("anything")
	assert.False(t, ok)
}

func TestSessionSlotHoldsSingleRecord(t *testing.T) {
	setupSlotDB(t)

	s := newTestSession()
	_, _, _ = s.Login(context.Background(), "first", "x")
	_, _, _ = s.Login(context.Background(), "second", "x")

	var count int64
	db.ORM.Model(&models.SessionRecord{}).Count(&count)
	assert.Equal(t, int64(1), count)

	var record models.SessionRecord
	assert.NoError(t, db.ORM.First(&record, "key = ?", models.SessionSlotKey).Error)
	assert.Contains(t, record.Value, "second")
}

func TestLogoutErasesSlot(t *testing.T) {
	setupSlotDB(t)

	s := newTestSession()
	_, _, _ = s.Login(context.Background(), "john", "x")
	s.Logout()

	var count int64
	db.ORM.Model(&models.SessionRecord{}).Count(&count)
	assert.Equal(t, int64(0), count)

	restored := NewSessionService()
	assert.False(t, restored.Restore())
}
