// Package jobs управляет фоновыми задачами (cron).
// scheduler.go настраивает расписание: выпуск ежедневной задачи в полночь
// и ежечасную очистку истёкших сессий.
package jobs

import (
	"context"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"

	"serotonyl.ru/sudoku-scoreboard/internal/common"
)

// DailyIssuer заранее создаёт задачу на сегодня.
type DailyIssuer interface {
	EnsureToday(ctx context.Context) error
}

// SessionPurger удаляет истёкшие сессии.
type SessionPurger interface {
	PurgeExpiredSessions(ctx context.Context) error
}

// Scheduler управляет фоновыми задачами.
type Scheduler struct {
	cron     *cron.Cron
	daily    DailyIssuer // Если nil, задача дня создаётся по первому запросу
	sessions SessionPurger
	cal      common.Calendar
}

// NewScheduler создаёт планировщик в часовом поясе сервиса,
// чтобы полночь крона совпадала с границей дня у стриков.
func NewScheduler(daily DailyIssuer, sessions SessionPurger, cal common.Calendar) *Scheduler {
	return &Scheduler{
		cron:     cron.New(cron.WithLocation(cal.Location())),
		daily:    daily,
		sessions: sessions,
		cal:      cal,
	}
}

// Start регистрирует и запускает все фоновые задачи.
func (s *Scheduler) Start(ctx context.Context) error {
	if s.daily != nil {
		// Ежедневная задача в 00:00
		if _, err := s.cron.AddFunc("0 0 * * *", func() { s.issueDaily(ctx) }); err != nil {
			return err
		}
	}

	// Очистка сессий каждый час
	if _, err := s.cron.AddFunc("0 * * * *", func() { s.purgeSessions(ctx) }); err != nil {
		return err
	}

	s.cron.Start()
	log.WithFields(log.Fields{
		"timezone": s.cal.Location().String(),
		"jobs":     len(s.cron.Entries()),
	}).Info("Планировщик задач запущен")
	return nil
}

func (s *Scheduler) issueDaily(ctx context.Context) {
	log.Info("[CRON] Выпуск ежедневной задачи")
	if err := s.daily.EnsureToday(ctx); err != nil {
		log.WithError(err).Error("[CRON] Ошибка выпуска ежедневной задачи")
	}
}

func (s *Scheduler) purgeSessions(ctx context.Context) {
	log.Debug("[CRON] Очистка сессий")
	if err := s.sessions.PurgeExpiredSessions(ctx); err != nil {
		log.WithError(err).Error("[CRON] Ошибка очистки сессий")
	}
}

// Stop останавливает планировщик и ждёт завершения запущенных задач.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Info("Планировщик задач остановлен")
}
