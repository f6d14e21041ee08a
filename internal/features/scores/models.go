// Package scores ведёт журнал результатов и таблицу лидеров.
// models.go описывает результат, запрос на отправку и строку таблицы.
package scores

import (
	"time"

	"github.com/google/uuid"
)

// Score — один отправленный результат. После записи не меняется.
type Score struct {
	ID          int64     `db:"id" json:"id"`
	UserID      uuid.UUID `db:"user_id" json:"user_id"`
	Value       int64     `db:"value" json:"value"`     // Очки как прислал клиент
	Awarded     int64     `db:"awarded" json:"awarded"` // Очки с учётом множителя стрика
	Multiplier  float64   `db:"-" json:"multiplier"`
	SubmittedAt time.Time `db:"submitted_at" json:"submitted_at"` // Ставит база, не клиент
	DailyDate   *string   `db:"daily_date" json:"daily_date,omitempty"`
}

// SubmitRequest — тело POST /api/scores.
type SubmitRequest struct {
	Value int64 `json:"value"`
	Daily bool  `json:"daily"` // Результат ежедневной задачи
}

// Total — сумма очков игрока для таблицы лидеров.
type Total struct {
	UserID   uuid.UUID `db:"user_id"`
	Username string    `db:"username"`
	Value    int64     `db:"total"`
}

// Row — строка таблицы лидеров. You всегда bool: анонимный клиент получает false.
type Row struct {
	Rank     int    `json:"rank"`
	Username string `json:"username"`
	Value    int64  `json:"value"`
	You      bool   `json:"you"`
}
