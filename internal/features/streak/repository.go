// Package streak — repository.go читает историю результатов из таблицы scores.
// Стрик ничего не пишет: таблица scores принадлежит модулю scores.
package streak

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"serotonyl.ru/sudoku-scoreboard/internal/db/postgres"
)

// Repository предоставляет чтение моментов отправки результатов.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository создаёт новый репозиторий стриков.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// ListSubmissionTimes возвращает все моменты отправки результатов пользователя,
// от новых к старым. Нет записей: пустой список без ошибки.
func (r *Repository) ListSubmissionTimes(ctx context.Context, userID uuid.UUID) ([]time.Time, error) {
	query := `
		SELECT submitted_at
		FROM scores
		WHERE user_id = $1
		ORDER BY submitted_at DESC
	`
	var out []time.Time
	err := postgres.WithConn(ctx, r.db, func(conn *pgxpool.Conn) error {
		rows, err := conn.Query(ctx, query, userID)
		if err != nil {
			return fmt.Errorf("ошибка запроса истории (user_id=%s): %w", userID, err)
		}
		defer rows.Close()

		for rows.Next() {
			var t time.Time
			if err := rows.Scan(&t); err != nil {
				return fmt.Errorf("ошибка сканирования: %w", err)
			}
			out = append(out, t)
		}
		if err := rows.Err(); err != nil {
			return fmt.Errorf("ошибка чтения строк: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
