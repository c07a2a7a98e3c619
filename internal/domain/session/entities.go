package session

import (
	"errors"
	"time"
)

var (
	ErrNotFound = errors.New("session not found")
	ErrExpired  = errors.New("session expired")
)

// Session is the single source of truth for authentication validity.
// A row that does not exist (or has passed ExpiresAt) means the bearer is
// logged out, regardless of what the client still holds.
type Session struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement"`
	Token     string    `gorm:"column:token;type:char(64);not null;uniqueIndex:ux_sessions_token"`
	UserID    uint64    `gorm:"column:user_id;not null;index"`
	ExpiresAt time.Time `gorm:"column:expires_at;not null;index"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Session) TableName() string { return "sessions" }

// Expired reports whether the session is past its expiry at the given instant.
func (s *Session) Expired(now time.Time) bool { return !now.Before(s.ExpiresAt) }
