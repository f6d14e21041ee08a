package common

import (
	"strings"

	"github.com/google/uuid"
)

// ParseUserID разбирает идентификатор пользователя.
// Пустая строка и мусор дают ok=false: вызывающий сам решает,
// считать это «нет данных» или «неизвестно».
func ParseUserID(s string) (uuid.UUID, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(s)
	if err != nil || id == uuid.Nil {
		return uuid.Nil, false
	}
	return id, true
}
