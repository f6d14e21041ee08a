// Package daily — handlers.go отдаёт задачу дня по HTTP.
package daily

import (
	"net/http"

	log "github.com/sirupsen/logrus"

	"serotonyl.ru/sudoku-scoreboard/internal/common"
	"serotonyl.ru/sudoku-scoreboard/internal/features/accounts"
)

// Handler обрабатывает запросы ежедневной задачи.
type Handler struct {
	service *Service
	enabled bool
}

// NewHandler создаёт обработчик.
func NewHandler(service *Service, enabled bool) *Handler {
	return &Handler{service: service, enabled: enabled}
}

// HandleDaily — GET /api/daily. Авторизация необязательна:
// анонимный клиент получает задачу с solved=null.
func (h *Handler) HandleDaily(w http.ResponseWriter, r *http.Request) {
	if !h.enabled {
		common.WriteError(w, http.StatusNotFound, "ежедневная задача отключена")
		return
	}

	var userID string
	if id, ok := accounts.UserIDFrom(r.Context()); ok {
		userID = id.String()
	}

	view, err := h.service.GetDaily(r.Context(), userID)
	if err != nil {
		log.WithError(err).Error("Ошибка выдачи ежедневной задачи")
		common.WriteError(w, http.StatusServiceUnavailable, "ежедневная задача временно недоступна")
		return
	}
	common.WriteJSON(w, http.StatusOK, view)
}
