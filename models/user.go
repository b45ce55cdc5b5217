package models

import (
	"time"
)

type Role string

const (
	ROLE_USER  Role = "USER"
	ROLE_ADMIN Role = "ADMIN"
)

// Identity - активная учетная запись пользователя. В процессе живет ровно
// одна; роль назначается при входе и дальше не меняется.
type Identity struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	Avatar       string `json:"avatar"`
	Role         Role   `json:"role"`
	PasswordHash string `json:"password_hash,omitempty"`
}

// IsAdmin проверяет права на модераторские операции
func (i *Identity) IsAdmin() bool {
	return i != nil && i.Role == ROLE_ADMIN
}

// SessionRecord - единственный долговременный слот с сериализованной Identity.
// Key всегда равен SessionSlotKey, отсутствие записи означает "не залогинен".
type SessionRecord struct {
	Key       string    `gorm:"primaryKey;size:60" json:"key"`
	Value     string    `gorm:"type:text" json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (SessionRecord) TableName() string {
	return "session_records"
}

// SessionSlotKey - фиксированный ключ слота сессии
const SessionSlotKey = "forum_user"
