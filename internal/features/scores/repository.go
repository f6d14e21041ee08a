// Package scores — repository.go работает с таблицей scores.
package scores

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"serotonyl.ru/sudoku-scoreboard/internal/common"
	"serotonyl.ru/sudoku-scoreboard/internal/db/postgres"
)

// Repository работает с журналом результатов.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository создаёт репозиторий.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Insert добавляет результат. Время отправки ставит база.
// Второй результат ежедневной задачи за ту же дату даёт common.ErrDailyAlreadySubmitted.
func (r *Repository) Insert(ctx context.Context, s *Score) error {
	query := `
		INSERT INTO scores (user_id, value, awarded, daily_date)
		VALUES ($1, $2, $3, $4::date)
		RETURNING id, submitted_at
	`
	// NULL для обычного результата
	var dailyDate any
	if s.DailyDate != nil {
		dailyDate = *s.DailyDate
	}
	return postgres.WithConn(ctx, r.db, func(conn *pgxpool.Conn) error {
		err := conn.QueryRow(ctx, query, s.UserID, s.Value, s.Awarded, dailyDate).Scan(&s.ID, &s.SubmittedAt)
		if postgres.IsUniqueViolation(err) {
			return common.ErrDailyAlreadySubmitted
		}
		if err != nil {
			return fmt.Errorf("ошибка записи результата: %w", err)
		}
		return nil
	})
}

// TopTotals возвращает игроков с наибольшей суммой очков.
// SUM по BIGINT даёт numeric, поэтому сумма зажимается в предел BIGINT.
func (r *Repository) TopTotals(ctx context.Context, limit int) ([]Total, error) {
	query := `
		SELECT u.id, u.username, LEAST(SUM(s.awarded), 9223372036854775807)::BIGINT AS total
		FROM scores s
		JOIN users u ON u.id = s.user_id
		GROUP BY u.id, u.username
		ORDER BY total DESC, u.username
		LIMIT $1
	`
	var totals []Total
	err := postgres.WithConn(ctx, r.db, func(conn *pgxpool.Conn) error {
		rows, err := conn.Query(ctx, query, limit)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var t Total
			if err := rows.Scan(&t.UserID, &t.Username, &t.Value); err != nil {
				return err
			}
			totals = append(totals, t)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("ошибка получения таблицы лидеров: %w", err)
	}
	return totals, nil
}

var _ Store = (*Repository)(nil)
