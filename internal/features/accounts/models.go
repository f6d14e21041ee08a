// Package accounts реализует регистрацию, вход по паролю и сессии игроков.
// models.go описывает пользователей, сессии и попытки входа.
package accounts

import (
	"time"

	"github.com/google/uuid"
)

// User — зарегистрированный игрок.
type User struct {
	ID           uuid.UUID `db:"id"`
	Username     string    `db:"username"`
	PasswordHash string    `db:"password_hash"` // $argon2id$v=19$m=..,t=..,p=..$<salt>$<hash>
	CreatedAt    time.Time `db:"created_at"`
}

// Session — активная сессия игрока. Токен передаётся в заголовке Authorization: Bearer.
type Session struct {
	Token     string    `db:"token"`
	UserID    uuid.UUID `db:"user_id"`
	CreatedAt time.Time `db:"created_at"`
	ExpiresAt time.Time `db:"expires_at"`
}

// LoginAttempt — попытка входа (для защиты от brute-force).
type LoginAttempt struct {
	ID          int64     `db:"id"`
	Username    string    `db:"username"`
	AttemptTime time.Time `db:"attempt_time"`
	Success     bool      `db:"success"`
}

// Credentials — тело запросов регистрации и входа.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TokenResponse — ответ на успешный вход или регистрацию.
type TokenResponse struct {
	UserID    uuid.UUID `json:"user_id"`
	Username  string    `json:"username"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}
