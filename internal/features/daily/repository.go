// Package daily — repository.go работает с таблицей daily_challenges и флагом daily_date у результатов.
package daily

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"serotonyl.ru/sudoku-scoreboard/internal/db/postgres"
)

// Repository работает с ежедневными задачами.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository создаёт репозиторий.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Get возвращает головоломку за дату. ok=false, если задачи ещё нет.
func (r *Repository) Get(ctx context.Context, date string) (string, bool, error) {
	var puzzle string
	err := postgres.WithConn(ctx, r.db, func(conn *pgxpool.Conn) error {
		return conn.QueryRow(ctx,
			`SELECT puzzle FROM daily_challenges WHERE challenge_date = $1::date`, date,
		).Scan(&puzzle)
	})
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("ошибка чтения ежедневной задачи (date=%s): %w", date, err)
	}
	return puzzle, true, nil
}

// CreateIfAbsent вставляет задачу, если за эту дату её ещё нет.
// Уникальность гарантирует первичный ключ по дате: проигравший гонку
// получает головоломку победителя и inserted=false.
// На настоящей базе проверяется в repository_test.go при SCOREBOARD_TEST_DATABASE_URL.
func (r *Repository) CreateIfAbsent(ctx context.Context, date, puzzle string) (string, bool, error) {
	var stored string
	inserted := true

	err := postgres.WithConn(ctx, r.db, func(conn *pgxpool.Conn) error {
		err := conn.QueryRow(ctx, `
			INSERT INTO daily_challenges (challenge_date, puzzle)
			VALUES ($1::date, $2)
			ON CONFLICT (challenge_date) DO NOTHING
			RETURNING puzzle
		`, date, puzzle).Scan(&stored)
		if !errors.Is(err, pgx.ErrNoRows) {
			return err
		}

		// Конфликт: строку уже вставил кто-то другой. Отдельный запрос видит
		// закоммиченную строку победителя, в отличие от снимка того же INSERT.
		inserted = false
		return conn.QueryRow(ctx,
			`SELECT puzzle FROM daily_challenges WHERE challenge_date = $1::date`, date,
		).Scan(&stored)
	})
	if err != nil {
		return "", false, fmt.Errorf("ошибка создания ежедневной задачи (date=%s): %w", date, err)
	}
	return stored, inserted, nil
}

// HasDailySubmission проверяет, отправлял ли пользователь результат ежедневной задачи за дату.
func (r *Repository) HasDailySubmission(ctx context.Context, userID uuid.UUID, date string) (bool, error) {
	var exists bool
	err := postgres.WithConn(ctx, r.db, func(conn *pgxpool.Conn) error {
		return conn.QueryRow(ctx,
			`SELECT EXISTS(SELECT 1 FROM scores WHERE user_id = $1 AND daily_date = $2::date)`,
			userID, date,
		).Scan(&exists)
	})
	if err != nil {
		return false, fmt.Errorf("ошибка проверки решения (user_id=%s): %w", userID, err)
	}
	return exists, nil
}

var (
	_ Store             = (*Repository)(nil)
	_ SubmissionChecker = (*Repository)(nil)
)
