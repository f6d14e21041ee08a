// Package daily — service.go выдаёт ежедневную задачу и проверяет, решена ли она.
package daily

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"serotonyl.ru/sudoku-scoreboard/internal/common"
	"serotonyl.ru/sudoku-scoreboard/internal/metrics"
	"serotonyl.ru/sudoku-scoreboard/internal/puzzle"
)

// Store хранит по одной задаче на дату.
type Store interface {
	Get(ctx context.Context, date string) (puzzle string, ok bool, err error)
	// CreateIfAbsent должен быть безопасен при гонке: из двух вставок за одну дату
	// проходит одна, второй возвращается головоломка первой.
	CreateIfAbsent(ctx context.Context, date, puzzle string) (stored string, inserted bool, err error)
}

// SubmissionChecker отвечает, решал ли пользователь задачу дня.
type SubmissionChecker interface {
	HasDailySubmission(ctx context.Context, userID uuid.UUID, date string) (bool, error)
}

// Service выдаёт ежедневные задачи.
type Service struct {
	store  Store
	scores SubmissionChecker
	gen    puzzle.Generator
	cal    common.Calendar
	now    func() time.Time

	// Срок на весь выпуск: генерация и запись в базу
	issueTimeout time.Duration

	// Схлопывает одновременные генерации внутри процесса.
	// Между экземплярами сервиса гонку решает только уникальный ключ в базе.
	group singleflight.Group
}

const defaultIssueTimeout = time.Minute

// NewService создаёт сервис ежедневных задач.
// issueTimeout <= 0 заменяется на минуту.
func NewService(store Store, scores SubmissionChecker, gen puzzle.Generator, cal common.Calendar, issueTimeout time.Duration) *Service {
	if issueTimeout <= 0 {
		issueTimeout = defaultIssueTimeout
	}
	return &Service{
		store:        store,
		scores:       scores,
		gen:          gen,
		cal:          cal,
		now:          time.Now,
		issueTimeout: issueTimeout,
	}
}

type issued struct {
	puzzle  string
	created bool
}

// GetOrCreate возвращает задачу за день date, создавая её при первом обращении.
// created=true только у того вызова, чья вставка прошла.
func (s *Service) GetOrCreate(ctx context.Context, date time.Time) (string, bool, error) {
	key := s.cal.DateString(date)

	p, ok, err := s.store.Get(ctx, key)
	if err != nil {
		return "", false, err
	}
	if ok {
		return p, false, nil
	}

	ran := false
	v, err, _ := s.group.Do(key, func() (any, error) {
		ran = true
		// Отмена первого клиента выпуск не обрывает: его ждут остальные.
		// Но зависшая база или генератор держат всех ждущих не дольше issueTimeout.
		flightCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.issueTimeout)
		defer cancel()
		return s.create(flightCtx, key)
	})
	if err != nil {
		return "", false, err
	}
	res := v.(issued)
	return res.puzzle, res.created && ran, nil
}

func (s *Service) create(ctx context.Context, date string) (issued, error) {
	p, err := s.gen.Generate(ctx, puzzle.DifficultyDefault)
	if err != nil {
		log.WithError(err).WithField("date", date).Error("Не удалось сгенерировать ежедневную задачу")
		return issued{}, fmt.Errorf("генерация ежедневной задачи: %w", err)
	}
	if p == "" {
		return issued{}, common.ErrEmptyPuzzle
	}

	stored, inserted, err := s.store.CreateIfAbsent(ctx, date, p)
	if err != nil {
		return issued{}, err
	}

	if inserted {
		metrics.DailyCreated()
		log.WithField("date", date).Info("Создана ежедневная задача")
	} else {
		metrics.DailyRaceLost()
		log.WithField("date", date).Debug("Гонка за ежедневную задачу проиграна, берём чужую")
	}
	return issued{puzzle: stored, created: inserted}, nil
}

// HasSolved отвечает, решал ли пользователь задачу за день date.
// Для пустого или битого идентификатора возвращает nil: «неизвестно», а не «нет».
func (s *Service) HasSolved(ctx context.Context, userID string, date time.Time) (*bool, error) {
	id, ok := common.ParseUserID(userID)
	if !ok {
		return nil, nil
	}
	solved, err := s.scores.HasDailySubmission(ctx, id, s.cal.DateString(date))
	if err != nil {
		return nil, err
	}
	return &solved, nil
}

// GetDaily собирает ответ для клиента: задача на сегодня и отметка о решении.
func (s *Service) GetDaily(ctx context.Context, userID string) (View, error) {
	today := s.cal.Today(s.now())

	p, _, err := s.GetOrCreate(ctx, today)
	if err != nil {
		return View{}, err
	}
	solved, err := s.HasSolved(ctx, userID, today)
	if err != nil {
		return View{}, err
	}

	return View{
		Puzzle: p,
		Solved: solved,
		Date:   s.cal.DateString(today),
	}, nil
}

// EnsureToday заранее создаёт задачу на сегодня. Вызывается кроном в полночь.
func (s *Service) EnsureToday(ctx context.Context) error {
	today := s.cal.Today(s.now())
	_, created, err := s.GetOrCreate(ctx, today)
	if err != nil {
		return err
	}
	log.WithFields(log.Fields{
		"date":    s.cal.DateString(today),
		"created": created,
	}).Info("Ежедневная задача на месте")
	return nil
}
