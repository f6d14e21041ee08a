// Package scores — service.go принимает результаты и строит таблицу лидеров.
package scores

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"serotonyl.ru/sudoku-scoreboard/internal/common"
	"serotonyl.ru/sudoku-scoreboard/internal/features/streak"
	"serotonyl.ru/sudoku-scoreboard/internal/metrics"
)

const (
	// MaxScoreValue — наибольшее значение одного результата
	MaxScoreValue int64 = 1_000_000
	// maxAwarded ограничивает начисление при очень длинном стрике.
	// 2^53 точно представимо во float64.
	maxAwarded int64 = 1 << 53
)

// Store — журнал результатов.
type Store interface {
	Insert(ctx context.Context, s *Score) error
	TopTotals(ctx context.Context, limit int) ([]Total, error)
}

// StreakSource отдаёт текущий стрик игрока.
type StreakSource interface {
	ComputeStreak(ctx context.Context, userID string) (streak.Result, error)
}

// Service управляет результатами.
type Service struct {
	repo    Store
	streaks StreakSource // Если nil, множитель не применяется
	cal     common.Calendar
	now     func() time.Time

	defaultLimit int
	maxLimit     int
}

// NewService создаёт сервис результатов.
func NewService(repo Store, streaks StreakSource, cal common.Calendar, defaultLimit, maxLimit int) *Service {
	return &Service{
		repo:         repo,
		streaks:      streaks,
		cal:          cal,
		now:          time.Now,
		defaultLimit: defaultLimit,
		maxLimit:     maxLimit,
	}
}

// Submit записывает результат игрока.
// Начисленные очки равны value, умноженному на множитель стрика, с которым игрок пришёл.
func (s *Service) Submit(ctx context.Context, userID uuid.UUID, req SubmitRequest) (*Score, error) {
	if req.Value < 0 || req.Value > MaxScoreValue {
		return nil, common.ErrInvalidScore
	}

	multiplier := 1.0
	if s.streaks != nil {
		res, err := s.streaks.ComputeStreak(ctx, userID.String())
		if err != nil {
			return nil, err
		}
		multiplier = res.Multiplier
	}

	score := &Score{
		UserID:     userID,
		Value:      req.Value,
		Awarded:    awardedFor(req.Value, multiplier),
		Multiplier: multiplier,
	}
	if req.Daily {
		today := s.cal.DateString(s.now())
		score.DailyDate = &today
	}

	if err := s.repo.Insert(ctx, score); err != nil {
		return nil, err
	}
	metrics.ScoreSubmitted(req.Daily)

	log.WithFields(log.Fields{
		"user_id":    userID,
		"value":      score.Value,
		"awarded":    score.Awarded,
		"multiplier": multiplier,
		"daily":      req.Daily,
	}).Info("Результат принят")

	return score, nil
}

// awardedFor округляет value * multiplier и не выходит за maxAwarded.
func awardedFor(value int64, multiplier float64) int64 {
	a := math.Round(float64(value) * multiplier)
	if math.IsNaN(a) || a < 0 {
		return 0
	}
	if a >= float64(maxAwarded) {
		return maxAwarded
	}
	return int64(a)
}

// Leaderboard возвращает топ игроков по сумме очков.
// caller — текущий пользователь или uuid.Nil для анонимного запроса.
func (s *Service) Leaderboard(ctx context.Context, caller uuid.UUID, limit int) ([]Row, error) {
	limit = s.clampLimit(limit)

	totals, err := s.repo.TopTotals(ctx, limit)
	if err != nil {
		return nil, err
	}

	rows := make([]Row, 0, len(totals))
	for i, t := range totals {
		rows = append(rows, Row{
			Rank:     i + 1,
			Username: t.Username,
			Value:    t.Value,
			You:      caller != uuid.Nil && t.UserID == caller,
		})
	}
	return rows, nil
}

func (s *Service) clampLimit(limit int) int {
	if limit <= 0 {
		return s.defaultLimit
	}
	return min(limit, s.maxLimit)
}
