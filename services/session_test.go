package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"devforum/models"
)

func newTestSession() *SessionService {
	s := NewSessionService()
	s.SetDelays(0, 0)
	return s
}

func TestLoginAssignsUserRole(t *testing.T) {
	s := newTestSession()
	identity, token, err := s.Login(context.Background(), "john", "secret")

	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "john", identity.Username)
	assert.Equal(t, models.ROLE_USER, identity.Role)
	assert.True(t, strings.HasPrefix(identity.ID, "user-"))
	assert.Equal(t, "https://picsum.photos/seed/john/200/200", identity.Avatar)
}

func TestLoginAdminCaseInsensitive(t *testing.T) {
	s := newTestSession()
	for _, name := range []string{"admin", "Admin", "ADMIN", "aDmIn"} {
		identity, _, err := s.Login(context.Background(), name, "x")
		assert.NoError(t, err)
		assert.Equal(t, models.ROLE_ADMIN, identity.Role)
		assert.Equal(t, "admin", identity.ID)
	}
}

func TestLoginAdminSubstringIsNotAdmin(t *testing.T) {
	s := newTestSession()
	identity, _, err := s.Login(context.Background(), "administrator", "x")
	assert.NoError(t, err)
	assert.Equal(t, models.ROLE_USER, identity.Role)
}

func TestLoginEmptyUsername(t *testing.T) {
	s := newTestSession()
	_, _, err := s.Login(context.Background(), "   ", "x")
	assert.ErrorIs(t, err, ErrEmptyUsername)
	assert.Nil(t, s.Current())
}

func TestLoginStoresPasswordDigest(t *testing.T) {
	s := newTestSession()
	identity, _, _ := s.Login(context.Background(), "john", "secret")

	// Формат salt$hash, сам пароль нигде не хранится
	parts := strings.Split(identity.PasswordHash, "$")
	assert.Len(t, parts, 2)
	assert.NotContains(t, identity.PasswordHash, "secret")
}

func TestLoginHonorsContextCancel(t *testing.T) {
	s := NewSessionService()
	s.SetDelays(time.Second, 0)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := s.Login(ctx, "john", "x")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAuthenticate(t *testing.T) {
	s := newTestSession()
	identity, token, _ := s.Login(context.Background(), "john", "x")

	got, ok := s.Authenticate(token)
	assert.True(t, ok)
	assert.Equal(t, identity.ID, got.ID)

	_, ok = s.Authenticate("wrong")
	assert.False(t, ok)
	_, ok = s.Authenticate("")
	assert.False(t, ok)
}

func TestLogoutClearsSession(t *testing.T) {
	s := newTestSession()
	_, token, _ := s.Login(context.Background(), "john", "x")

	s.Logout()
	assert.Nil(t, s.Current())
	_, ok := s.Authenticate(token)
	assert.False(t, ok)
}

func TestUpdateProfileKeepsRole(t *testing.T) {
	s := newTestSession()
	_, _, _ = s.Login(context.Background(), "admin", "x")

	updated, err := s.UpdateProfile(context.Background(), "renamed", "https://example.com/a.png")
	assert.NoError(t, err)
	assert.Equal(t, "renamed", updated.Username)
	assert.Equal(t, "https://example.com/a.png", updated.Avatar)
	assert.Equal(t, models.ROLE_ADMIN, updated.Role)
	assert.Equal(t, "admin", updated.ID)
}

func TestUpdateProfileWithoutSession(t *testing.T) {
	s := newTestSession()
	_, err := s.UpdateProfile(context.Background(), "ghost", "")
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestUpdateProfileSnapshot(t *testing.T) {
	s := newTestSession()
	before, _, _ := s.Login(context.Background(), "john", "x")

	_, err := s.UpdateProfile(context.Background(), "jane", "")
	assert.NoError(t, err)

	// Старая Identity не изменилась на месте
	assert.Equal(t, "john", before.Username)
	assert.Equal(t, "jane", s.Current().Username)
}
