// Package accounts — service.go содержит логику регистрации, входа и сессий.
package accounts

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"serotonyl.ru/sudoku-scoreboard/internal/common"
	"serotonyl.ru/sudoku-scoreboard/internal/config"
	"serotonyl.ru/sudoku-scoreboard/internal/metrics"
)

const (
	minUsernameLen = 3
	maxUsernameLen = 64
	minPasswordLen = 8
)

// Store — хранилище пользователей, сессий и попыток входа.
type Store interface {
	CreateUser(ctx context.Context, u *User) error
	GetByUsername(ctx context.Context, username string) (*User, error)
	CreateSession(ctx context.Context, s *Session) error
	GetActiveSession(ctx context.Context, token string) (*Session, error)
	DeleteSession(ctx context.Context, token string) error
	PurgeExpiredSessions(ctx context.Context) (int64, error)
	LogAttempt(ctx context.Context, username string, success bool) error
	GetRecentFailedAttempts(ctx context.Context, username string, period time.Duration) (int, error)
}

// Service управляет аккаунтами игроков.
type Service struct {
	repo       Store
	params     Argon2Params
	sessionTTL time.Duration
	maxFailed  int           // Неудачных попыток до блокировки
	lockout    time.Duration // Окно подсчёта неудачных попыток
	now        func() time.Time
}

// NewService создаёт сервис аккаунтов.
func NewService(repo Store, cfg *config.Config) *Service {
	return &Service{
		repo:       repo,
		params:     DefaultArgon2Params,
		sessionTTL: cfg.SessionTTL,
		maxFailed:  cfg.AuthMaxFailedLogins,
		lockout:    cfg.AuthLockoutWindow,
		now:        time.Now,
	}
}

// Register создаёт пользователя и сразу открывает ему сессию.
func (s *Service) Register(ctx context.Context, creds Credentials) (*TokenResponse, error) {
	username := strings.TrimSpace(creds.Username)
	if n := utf8.RuneCountInString(username); n < minUsernameLen || n > maxUsernameLen {
		return nil, common.ErrInvalidUsername
	}
	if utf8.RuneCountInString(creds.Password) < minPasswordLen {
		return nil, common.ErrWeakPassword
	}

	hash, err := HashPassword(creds.Password, s.params)
	if err != nil {
		return nil, err
	}

	user := &User{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: hash,
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"user_id":  user.ID,
		"username": user.Username,
	}).Info("Зарегистрирован новый пользователь")

	return s.openSession(ctx, user)
}

// Login проверяет пароль и открывает сессию.
// Защита от brute-force: после maxFailed неудачных попыток за окно lockout вход блокируется.
func (s *Service) Login(ctx context.Context, creds Credentials) (*TokenResponse, error) {
	username := strings.TrimSpace(creds.Username)

	failed, err := s.repo.GetRecentFailedAttempts(ctx, username, s.lockout)
	if err != nil {
		return nil, err
	}
	if failed >= s.maxFailed {
		metrics.Login(metrics.LoginLocked)
		log.WithField("username", username).Warn("Вход заблокирован: слишком много попыток")
		return nil, common.ErrTooManyAttempts
	}

	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil && !errors.Is(err, common.ErrUserNotFound) {
		return nil, err
	}
	match := user != nil && verifyPassword(creds.Password, user.PasswordHash)

	// Ошибку записи попытки не показываем пользователю
	if err := s.repo.LogAttempt(ctx, username, match); err != nil {
		log.WithError(err).Warn("Не удалось записать попытку входа")
	}

	if !match {
		metrics.Login(metrics.LoginFailure)
		return nil, common.ErrWrongPassword
	}

	metrics.Login(metrics.LoginSuccess)
	return s.openSession(ctx, user)
}

func (s *Service) openSession(ctx context.Context, user *User) (*TokenResponse, error) {
	token, err := generateSecureToken()
	if err != nil {
		return nil, err
	}

	session := &Session{
		Token:     token,
		UserID:    user.ID,
		ExpiresAt: s.now().Add(s.sessionTTL),
	}
	if err := s.repo.CreateSession(ctx, session); err != nil {
		return nil, err
	}

	return &TokenResponse{
		UserID:    user.ID,
		Username:  user.Username,
		Token:     token,
		ExpiresAt: session.ExpiresAt,
	}, nil
}

// Logout закрывает сессию. Повторный выход не ошибка.
func (s *Service) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.repo.DeleteSession(ctx, token)
}

// Authenticate возвращает владельца активной сессии.
func (s *Service) Authenticate(ctx context.Context, token string) (uuid.UUID, error) {
	if token == "" {
		return uuid.Nil, common.ErrSessionExpired
	}
	session, err := s.repo.GetActiveSession(ctx, token)
	if err != nil {
		return uuid.Nil, err
	}
	// База уже отфильтровала по NOW(), но часы приложения могут отличаться
	if !s.now().Before(session.ExpiresAt) {
		return uuid.Nil, common.ErrSessionExpired
	}
	return session.UserID, nil
}

// PurgeExpiredSessions удаляет истёкшие сессии. Вызывается кроном.
func (s *Service) PurgeExpiredSessions(ctx context.Context) error {
	n, err := s.repo.PurgeExpiredSessions(ctx)
	if err != nil {
		return fmt.Errorf("очистка сессий: %w", err)
	}
	if n > 0 {
		log.WithField("count", n).Info("Удалены истёкшие сессии")
	}
	return nil
}
