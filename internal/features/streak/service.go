// Package streak — service.go связывает чистый расчёт с хранилищем.
package streak

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"serotonyl.ru/sudoku-scoreboard/internal/common"
)

// SubmissionLister отдаёт моменты отправки результатов, от новых к старым.
type SubmissionLister interface {
	ListSubmissionTimes(ctx context.Context, userID uuid.UUID) ([]time.Time, error)
}

// Service считает стрики пользователей.
type Service struct {
	repo SubmissionLister // История результатов
	cal  common.Calendar  // Единый календарь сервиса
	now  func() time.Time
}

// NewService создаёт новый сервис стриков.
func NewService(repo SubmissionLister, cal common.Calendar) *Service {
	return &Service{
		repo: repo,
		cal:  cal,
		now:  time.Now,
	}
}

// ComputeStreak возвращает стрик пользователя на сегодня.
// Пустой или битый идентификатор не может иметь записей: сразу нулевой стрик.
// Ошибка хранилища возвращается как есть, без повторов.
func (s *Service) ComputeStreak(ctx context.Context, userID string) (Result, error) {
	id, ok := common.ParseUserID(userID)
	if !ok {
		return Empty(), nil
	}

	times, err := s.repo.ListSubmissionTimes(ctx, id)
	if err != nil {
		return Result{}, fmt.Errorf("ошибка получения истории: %w", err)
	}

	res := Compute(times, s.now(), s.cal)

	log.WithFields(log.Fields{
		"user_id": id,
		"streak":  res.Streak,
		"days":    res.ActiveDays,
	}).Debug("Стрик посчитан")

	return res, nil
}
