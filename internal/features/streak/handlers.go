// Package streak — handlers.go отдаёт стрик по HTTP.
package streak

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"

	"serotonyl.ru/sudoku-scoreboard/internal/common"
	"serotonyl.ru/sudoku-scoreboard/internal/features/accounts"
)

// Handler обрабатывает запросы стрик-системы.
type Handler struct {
	service *Service
	enabled bool
}

// NewHandler создаёт новый обработчик стриков.
func NewHandler(service *Service, enabled bool) *Handler {
	return &Handler{service: service, enabled: enabled}
}

// HandleMyStreak — GET /api/streak, стрик авторизованного пользователя.
func (h *Handler) HandleMyStreak(w http.ResponseWriter, r *http.Request) {
	userID, ok := accounts.UserIDFrom(r.Context())
	if !ok {
		common.WriteError(w, http.StatusUnauthorized, "нужна авторизация")
		return
	}
	h.respond(w, r, userID.String())
}

// HandleUserStreak — GET /api/users/{userID}/streak.
// Неизвестный или битый идентификатор даёт нулевой стрик, а не 404.
func (h *Handler) HandleUserStreak(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, chi.URLParam(r, "userID"))
}

func (h *Handler) respond(w http.ResponseWriter, r *http.Request, userID string) {
	if !h.enabled {
		common.WriteError(w, http.StatusNotFound, "стрики отключены")
		return
	}

	res, err := h.service.ComputeStreak(r.Context(), userID)
	if err != nil {
		log.WithError(err).WithField("user_id", userID).Error("Ошибка расчёта стрика")
		common.WriteError(w, http.StatusServiceUnavailable, "стрик временно недоступен")
		return
	}
	common.WriteJSON(w, http.StatusOK, res)
}
