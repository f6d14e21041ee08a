// Package accounts — repository.go работает с таблицами users, sessions и login_attempts.
package accounts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"serotonyl.ru/sudoku-scoreboard/internal/common"
	"serotonyl.ru/sudoku-scoreboard/internal/db/postgres"
)

// Repository работает с таблицами аккаунтов.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository создаёт репозиторий.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// CreateUser добавляет нового пользователя.
// Занятое имя даёт common.ErrUsernameTaken.
func (r *Repository) CreateUser(ctx context.Context, u *User) error {
	query := `
		INSERT INTO users (id, username, password_hash)
		VALUES ($1, $2, $3)
		RETURNING created_at
	`
	return postgres.WithConn(ctx, r.db, func(conn *pgxpool.Conn) error {
		err := conn.QueryRow(ctx, query, u.ID, u.Username, u.PasswordHash).Scan(&u.CreatedAt)
		if postgres.IsUniqueViolation(err) {
			return common.ErrUsernameTaken
		}
		if err != nil {
			return fmt.Errorf("ошибка создания пользователя: %w", err)
		}
		return nil
	})
}

// GetByUsername ищет пользователя без учёта регистра. Нет такого: common.ErrUserNotFound.
func (r *Repository) GetByUsername(ctx context.Context, username string) (*User, error) {
	query := `
		SELECT id, username, password_hash, created_at
		FROM users
		WHERE LOWER(username) = LOWER($1)
	`
	var u User
	err := postgres.WithConn(ctx, r.db, func(conn *pgxpool.Conn) error {
		return conn.QueryRow(ctx, query, username).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt)
	})
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, common.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения пользователя (username=%s): %w", username, err)
	}
	return &u, nil
}

// CreateSession создаёт новую сессию.
func (r *Repository) CreateSession(ctx context.Context, s *Session) error {
	query := `
		INSERT INTO sessions (token, user_id, expires_at)
		VALUES ($1, $2, $3)
		RETURNING created_at
	`
	return postgres.WithConn(ctx, r.db, func(conn *pgxpool.Conn) error {
		if err := conn.QueryRow(ctx, query, s.Token, s.UserID, s.ExpiresAt).Scan(&s.CreatedAt); err != nil {
			return fmt.Errorf("ошибка создания сессии: %w", err)
		}
		return nil
	})
}

// GetActiveSession возвращает неистёкшую сессию по токену.
// Если такой нет, common.ErrSessionExpired.
func (r *Repository) GetActiveSession(ctx context.Context, token string) (*Session, error) {
	query := `
		SELECT token, user_id, created_at, expires_at
		FROM sessions
		WHERE token = $1 AND expires_at > NOW()
	`
	var s Session
	err := postgres.WithConn(ctx, r.db, func(conn *pgxpool.Conn) error {
		return conn.QueryRow(ctx, query, token).Scan(&s.Token, &s.UserID, &s.CreatedAt, &s.ExpiresAt)
	})
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, common.ErrSessionExpired
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения сессии: %w", err)
	}
	return &s, nil
}

// DeleteSession удаляет сессию (выход).
func (r *Repository) DeleteSession(ctx context.Context, token string) error {
	return postgres.WithConn(ctx, r.db, func(conn *pgxpool.Conn) error {
		_, err := conn.Exec(ctx, `DELETE FROM sessions WHERE token = $1`, token)
		return err
	})
}

// PurgeExpiredSessions удаляет истёкшие сессии и возвращает их количество.
func (r *Repository) PurgeExpiredSessions(ctx context.Context) (int64, error) {
	var n int64
	err := postgres.WithConn(ctx, r.db, func(conn *pgxpool.Conn) error {
		tag, err := conn.Exec(ctx, `DELETE FROM sessions WHERE expires_at <= NOW()`)
		if err != nil {
			return fmt.Errorf("ошибка очистки сессий: %w", err)
		}
		n = tag.RowsAffected()
		return nil
	})
	return n, err
}

// LogAttempt записывает попытку входа.
func (r *Repository) LogAttempt(ctx context.Context, username string, success bool) error {
	return postgres.WithConn(ctx, r.db, func(conn *pgxpool.Conn) error {
		_, err := conn.Exec(ctx,
			`INSERT INTO login_attempts (username, success) VALUES (LOWER($1), $2)`,
			username, success,
		)
		return err
	})
}

// GetRecentFailedAttempts возвращает количество неудачных попыток за указанный период.
func (r *Repository) GetRecentFailedAttempts(ctx context.Context, username string, period time.Duration) (int, error) {
	since := time.Now().Add(-period)
	query := `
		SELECT COUNT(*) FROM login_attempts
		WHERE username = LOWER($1) AND success = FALSE AND attempt_time >= $2
	`
	var count int
	err := postgres.WithConn(ctx, r.db, func(conn *pgxpool.Conn) error {
		return conn.QueryRow(ctx, query, username, since).Scan(&count)
	})
	if err != nil {
		return 0, fmt.Errorf("ошибка подсчёта попыток: %w", err)
	}
	return count, nil
}

// compile-time проверка, что репозиторий подходит сервису
var _ Store = (*Repository)(nil)

