// Package scores — handlers.go обрабатывает отправку результатов и таблицу лидеров.
package scores

import (
	"errors"
	"net/http"
	"strconv"

	log "github.com/sirupsen/logrus"

	"serotonyl.ru/sudoku-scoreboard/internal/common"
	"serotonyl.ru/sudoku-scoreboard/internal/features/accounts"
)

// Handler обрабатывает HTTP-запросы результатов.
type Handler struct {
	service *Service
}

// NewHandler создаёт обработчик.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// HandleSubmit — POST /api/scores, только для авторизованных.
func (h *Handler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	userID, ok := accounts.UserIDFrom(r.Context())
	if !ok {
		common.WriteError(w, http.StatusUnauthorized, "нужна авторизация")
		return
	}

	var req SubmitRequest
	if err := common.ReadJSON(r, &req); err != nil {
		common.WriteError(w, http.StatusBadRequest, "некорректное тело запроса")
		return
	}

	score, err := h.service.Submit(r.Context(), userID, req)
	switch {
	case errors.Is(err, common.ErrInvalidScore):
		common.WriteError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, common.ErrDailyAlreadySubmitted):
		common.WriteError(w, http.StatusConflict, err.Error())
	case err != nil:
		log.WithError(err).WithField("user_id", userID).Error("Ошибка записи результата")
		common.WriteError(w, http.StatusServiceUnavailable, "результат временно не принимается")
	default:
		common.WriteJSON(w, http.StatusCreated, score)
	}
}

// HandleLeaderboard — GET /api/leaderboard?limit=N. Авторизация необязательна.
func (h *Handler) HandleLeaderboard(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			common.WriteError(w, http.StatusBadRequest, "limit должен быть неотрицательным числом")
			return
		}
		limit = n
	}

	caller, _ := accounts.UserIDFrom(r.Context())
	rows, err := h.service.Leaderboard(r.Context(), caller, limit)
	if err != nil {
		log.WithError(err).Error("Ошибка таблицы лидеров")
		common.WriteError(w, http.StatusServiceUnavailable, "таблица лидеров временно недоступна")
		return
	}
	common.WriteJSON(w, http.StatusOK, rows)
}
