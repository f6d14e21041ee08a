package server

import (
	"context"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"serotonyl.ru/sudoku-scoreboard/internal/common"
)

// Checker проверяет доступность зависимости.
type Checker interface {
	Check(ctx context.Context) error
}

// CheckerFunc позволяет использовать функцию как Checker.
type CheckerFunc func(ctx context.Context) error

func (f CheckerFunc) Check(ctx context.Context) error { return f(ctx) }

func handleHealth(checks map[string]Checker) http.HandlerFunc {
	type result struct {
		Status string `json:"status"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()

		out := make(map[string]result, len(checks))
		status := http.StatusOK

		for name, c := range checks {
			if err := c.Check(ctx); err != nil {
				log.WithError(err).WithField("name", name).Error("Проверка здоровья не прошла")
				out[name] = result{Status: "error"}
				status = http.StatusServiceUnavailable
				continue
			}
			out[name] = result{Status: "ok"}
		}

		common.WriteJSON(w, status, out)
	}
}
