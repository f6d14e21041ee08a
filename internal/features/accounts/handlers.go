// Package accounts — handlers.go обрабатывает регистрацию, вход и выход.
package accounts

import (
	"errors"
	"net/http"

	log "github.com/sirupsen/logrus"

	"serotonyl.ru/sudoku-scoreboard/internal/common"
)

// Handler обрабатывает HTTP-запросы аккаунтов.
type Handler struct {
	service *Service
}

// NewHandler создаёт обработчик аккаунтов.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// HandleRegister — POST /api/register.
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var creds Credentials
	if err := common.ReadJSON(r, &creds); err != nil {
		common.WriteError(w, http.StatusBadRequest, "некорректное тело запроса")
		return
	}

	resp, err := h.service.Register(r.Context(), creds)
	if err != nil {
		h.writeErr(w, err)
		return
	}
	common.WriteJSON(w, http.StatusCreated, resp)
}

// HandleLogin — POST /api/login.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var creds Credentials
	if err := common.ReadJSON(r, &creds); err != nil {
		common.WriteError(w, http.StatusBadRequest, "некорректное тело запроса")
		return
	}

	resp, err := h.service.Login(r.Context(), creds)
	if err != nil {
		h.writeErr(w, err)
		return
	}
	common.WriteJSON(w, http.StatusOK, resp)
}

// HandleLogout — POST /api/logout.
func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Logout(r.Context(), BearerToken(r)); err != nil {
		h.writeErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) writeErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, common.ErrInvalidUsername), errors.Is(err, common.ErrWeakPassword):
		common.WriteError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, common.ErrUsernameTaken):
		common.WriteError(w, http.StatusConflict, err.Error())
	case errors.Is(err, common.ErrWrongPassword):
		common.WriteError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, common.ErrTooManyAttempts):
		common.WriteError(w, http.StatusTooManyRequests, err.Error())
	default:
		log.WithError(err).Error("Ошибка аккаунтов")
		common.WriteError(w, http.StatusInternalServerError, "внутренняя ошибка")
	}
}
