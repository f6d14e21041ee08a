package puzzle

import (
	"context"
	"errors"
	"net/http"

	log "github.com/sirupsen/logrus"

	"serotonyl.ru/sudoku-scoreboard/internal/common"
)

// Generator — источник новых головоломок.
type Generator interface {
	Generate(ctx context.Context, difficulty Difficulty) (string, error)
}

// Handler отдаёт свежую головоломку для свободной игры.
type Handler struct {
	gen Generator
}

// NewHandler создаёт обработчик.
func NewHandler(gen Generator) *Handler {
	return &Handler{gen: gen}
}

// HandleGenerate — GET /api/puzzle?difficulty=...
func (h *Handler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	difficulty, err := ParseDifficulty(r.URL.Query().Get("difficulty"))
	if err != nil {
		common.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	p, err := h.gen.Generate(r.Context(), difficulty)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			log.WithError(err).WithField("difficulty", difficulty).Error("Ошибка генератора")
		}
		common.WriteError(w, http.StatusServiceUnavailable, "генератор недоступен")
		return
	}

	common.WriteJSON(w, http.StatusOK, map[string]string{
		"puzzle":     p,
		"difficulty": string(difficulty),
	})
}
