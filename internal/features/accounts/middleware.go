// Package accounts — middleware.go достаёт пользователя из Bearer-токена.
package accounts

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"serotonyl.ru/sudoku-scoreboard/internal/common"
)

type ctxKey struct{}

// Authenticator проверяет токен сессии.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (uuid.UUID, error)
}

// WithUserID кладёт идентификатор пользователя в контекст.
func WithUserID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// UserIDFrom возвращает пользователя запроса, если он авторизован.
func UserIDFrom(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(ctxKey{}).(uuid.UUID)
	return id, ok && id != uuid.Nil
}

// BearerToken вынимает токен из заголовка Authorization.
func BearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(h) <= len(prefix) || !strings.EqualFold(h[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(h[len(prefix):])
}

// Optional авторизует запрос, если токен есть и валиден.
// Без токена или с протухшим токеном запрос идёт дальше анонимным.
func Optional(auth Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := BearerToken(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}
			id, err := auth.Authenticate(r.Context(), token)
			if err != nil {
				if !errors.Is(err, common.ErrSessionExpired) {
					log.WithError(err).Warn("Ошибка проверки сессии")
				}
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), id)))
		})
	}
}

// Required пропускает только авторизованные запросы.
func Required(auth Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, err := auth.Authenticate(r.Context(), BearerToken(r))
			switch {
			case errors.Is(err, common.ErrSessionExpired):
				common.WriteError(w, http.StatusUnauthorized, err.Error())
				return
			case err != nil:
				log.WithError(err).Error("Ошибка проверки сессии")
				common.WriteError(w, http.StatusServiceUnavailable, "авторизация временно недоступна")
				return
			}
			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), id)))
		})
	}
}
