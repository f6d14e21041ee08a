package scores

import (
	"cmp"
	"context"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	. "github.com/smartystreets/goconvey/convey"

	"serotonyl.ru/sudoku-scoreboard/internal/common"
	"serotonyl.ru/sudoku-scoreboard/internal/features/accounts"
	"serotonyl.ru/sudoku-scoreboard/internal/features/streak"
)

var now = time.Date(2026, 10, 18, 14, 0, 0, 0, time.UTC)

type memStore struct {
	scores []Score
	names  map[uuid.UUID]string
	err    error
}

func (m *memStore) Insert(_ context.Context, s *Score) error {
	if m.err != nil {
		return m.err
	}
	if s.DailyDate != nil {
		for _, prev := range m.scores {
			if prev.UserID == s.UserID && prev.DailyDate != nil && *prev.DailyDate == *s.DailyDate {
				return common.ErrDailyAlreadySubmitted
			}
		}
	}
	s.ID = int64(len(m.scores) + 1)
	s.SubmittedAt = now
	m.scores = append(m.scores, *s)
	return nil
}

func (m *memStore) TopTotals(_ context.Context, limit int) ([]Total, error) {
	if m.err != nil {
		return nil, m.err
	}
	sums := map[uuid.UUID]int64{}
	for _, s := range m.scores {
		sums[s.UserID] += s.Awarded
	}
	totals := make([]Total, 0, len(sums))
	for id, v := range sums {
		totals = append(totals, Total{UserID: id, Username: m.names[id], Value: v})
	}
	slices.SortFunc(totals, func(a, b Total) int {
		if c := cmp.Compare(b.Value, a.Value); c != 0 {
			return c
		}
		return strings.Compare(a.Username, b.Username)
	})
	if len(totals) > limit {
		totals = totals[:limit]
	}
	return totals, nil
}

type fixedStreak struct {
	res streak.Result
	err error
}

func (f fixedStreak) ComputeStreak(context.Context, string) (streak.Result, error) {
	return f.res, f.err
}

func newTestService(store Store, streaks StreakSource) *Service {
	svc := NewService(store, streaks, common.NewCalendar(nil), 10, 100)
	svc.now = func() time.Time { return now }
	return svc
}

func TestService_Submit(t *testing.T) {
	Convey("Отправка результата", t, func() {
		ctx := context.Background()
		store := &memStore{}
		user := uuid.New()
		svc := newTestService(store, fixedStreak{res: streak.Result{Streak: 2, Multiplier: streak.Multiplier(2)}})

		Convey("Очки умножаются на множитель стрика", func() {
			score, err := svc.Submit(ctx, user, SubmitRequest{Value: 100})
			So(err, ShouldBeNil)
			So(score.Value, ShouldEqual, int64(100))
			So(score.Awarded, ShouldEqual, int64(121))
			So(score.DailyDate, ShouldBeNil)
		})

		Convey("Без источника стриков множитель 1", func() {
			svc := newTestService(store, nil)
			score, err := svc.Submit(ctx, user, SubmitRequest{Value: 100})
			So(err, ShouldBeNil)
			So(score.Awarded, ShouldEqual, int64(100))
		})

		Convey("Отрицательные очки отклоняются", func() {
			_, err := svc.Submit(ctx, user, SubmitRequest{Value: -1})
			So(err, ShouldEqual, common.ErrInvalidScore)
			So(store.scores, ShouldBeEmpty)
		})

		Convey("Слишком большие очки отклоняются до записи", func() {
			for _, v := range []int64{MaxScoreValue + 1, math.MaxInt64} {
				_, err := svc.Submit(ctx, user, SubmitRequest{Value: v})
				So(err, ShouldEqual, common.ErrInvalidScore)
			}
			So(store.scores, ShouldBeEmpty)

			score, err := svc.Submit(ctx, user, SubmitRequest{Value: MaxScoreValue})
			So(err, ShouldBeNil)
			So(score.Awarded, ShouldEqual, int64(1_210_000))
		})

		Convey("Огромный стрик не переполняет начисление", func() {
			svc := newTestService(store, fixedStreak{res: streak.Result{Streak: 1000, Multiplier: streak.Multiplier(1000)}})
			score, err := svc.Submit(ctx, user, SubmitRequest{Value: MaxScoreValue})
			So(err, ShouldBeNil)
			So(score.Awarded, ShouldEqual, maxAwarded)
			So(score.Awarded, ShouldBeGreaterThan, 0)
		})

		Convey("Ежедневная задача помечается сегодняшней датой и принимается один раз", func() {
			score, err := svc.Submit(ctx, user, SubmitRequest{Value: 10, Daily: true})
			So(err, ShouldBeNil)
			So(*score.DailyDate, ShouldEqual, "2026-10-18")

			_, err = svc.Submit(ctx, user, SubmitRequest{Value: 10, Daily: true})
			So(err, ShouldEqual, common.ErrDailyAlreadySubmitted)

			_, err = svc.Submit(ctx, user, SubmitRequest{Value: 10})
			So(err, ShouldBeNil)
		})

		Convey("Ошибка стриков не даёт записать результат", func() {
			svc := newTestService(store, fixedStreak{err: errors.New("db down")})
			_, err := svc.Submit(ctx, user, SubmitRequest{Value: 10})
			So(err, ShouldNotBeNil)
			So(store.scores, ShouldBeEmpty)
		})
	})
}

func TestService_Leaderboard(t *testing.T) {
	Convey("Таблица лидеров", t, func() {
		ctx := context.Background()
		alice, bob, carol := uuid.New(), uuid.New(), uuid.New()
		store := &memStore{names: map[uuid.UUID]string{alice: "alice", bob: "bob", carol: "carol"}}
		svc := newTestService(store, nil)
		for _, s := range []struct {
			id uuid.UUID
			v  int64
		}{{alice, 50}, {bob, 70}, {alice, 40}, {carol, 10}} {
			_, err := svc.Submit(ctx, s.id, SubmitRequest{Value: s.v})
			So(err, ShouldBeNil)
		}

		Convey("Сортировка по сумме очков", func() {
			rows, err := svc.Leaderboard(ctx, uuid.Nil, 0)
			So(err, ShouldBeNil)
			So(rows, ShouldHaveLength, 3)
			So(rows[0].Username, ShouldEqual, "alice")
			So(rows[0].Value, ShouldEqual, int64(90))
			So(rows[0].Rank, ShouldEqual, 1)
			So(rows[1].Username, ShouldEqual, "bob")
		})

		Convey("Анонимный клиент: you везде false", func() {
			rows, _ := svc.Leaderboard(ctx, uuid.Nil, 10)
			for _, r := range rows {
				So(r.You, ShouldBeFalse)
			}
		})

		Convey("Авторизованный клиент видит себя", func() {
			rows, _ := svc.Leaderboard(ctx, bob, 10)
			So(rows[1].You, ShouldBeTrue)
			So(rows[0].You, ShouldBeFalse)
		})

		Convey("Лимит ограничивается сверху", func() {
			svc.maxLimit = 2
			rows, _ := svc.Leaderboard(ctx, uuid.Nil, 50)
			So(rows, ShouldHaveLength, 2)
		})
	})
}

func TestHandlers(t *testing.T) {
	Convey("HTTP результатов", t, func() {
		store := &memStore{names: map[uuid.UUID]string{}}
		user := uuid.New()
		store.names[user] = "dave"
		h := NewHandler(newTestService(store, nil))

		authed := func(req *http.Request) *http.Request {
			return req.WithContext(accounts.WithUserID(req.Context(), user))
		}

		Convey("POST /api/scores без авторизации: 401", func() {
			rec := httptest.NewRecorder()
			h.HandleSubmit(rec, httptest.NewRequest(http.MethodPost, "/api/scores", strings.NewReader(`{"value":5}`)))
			So(rec.Code, ShouldEqual, http.StatusUnauthorized)
		})

		Convey("POST /api/scores принимает результат", func() {
			rec := httptest.NewRecorder()
			h.HandleSubmit(rec, authed(httptest.NewRequest(http.MethodPost, "/api/scores", strings.NewReader(`{"value":5,"daily":true}`))))
			So(rec.Code, ShouldEqual, http.StatusCreated)
			So(rec.Body.String(), ShouldContainSubstring, `"daily_date":"2026-10-18"`)

			rec = httptest.NewRecorder()
			h.HandleSubmit(rec, authed(httptest.NewRequest(http.MethodPost, "/api/scores", strings.NewReader(`{"value":5,"daily":true}`))))
			So(rec.Code, ShouldEqual, http.StatusConflict)
		})

		Convey("Неизвестные поля и отрицательные очки: 400", func() {
			rec := httptest.NewRecorder()
			h.HandleSubmit(rec, authed(httptest.NewRequest(http.MethodPost, "/api/scores", strings.NewReader(`{"value":5,"cheat":1}`))))
			So(rec.Code, ShouldEqual, http.StatusBadRequest)

			rec = httptest.NewRecorder()
			h.HandleSubmit(rec, authed(httptest.NewRequest(http.MethodPost, "/api/scores", strings.NewReader(`{"value":-5}`))))
			So(rec.Code, ShouldEqual, http.StatusBadRequest)

			rec = httptest.NewRecorder()
			h.HandleSubmit(rec, authed(httptest.NewRequest(http.MethodPost, "/api/scores", strings.NewReader(`{"value":9223372036854775807}`))))
			So(rec.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("GET /api/leaderboard", func() {
			_, _ = h.service.Submit(context.Background(), user, SubmitRequest{Value: 3})

			rec := httptest.NewRecorder()
			h.HandleLeaderboard(rec, httptest.NewRequest(http.MethodGet, "/api/leaderboard?limit=5", nil))
			So(rec.Code, ShouldEqual, http.StatusOK)
			So(rec.Body.String(), ShouldContainSubstring, `"you":false`)

			rec = httptest.NewRecorder()
			h.HandleLeaderboard(rec, authed(httptest.NewRequest(http.MethodGet, "/api/leaderboard", nil)))
			So(rec.Body.String(), ShouldContainSubstring, `"you":true`)

			rec = httptest.NewRecorder()
			h.HandleLeaderboard(rec, httptest.NewRequest(http.MethodGet, "/api/leaderboard?limit=abc", nil))
			So(rec.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("Ошибка хранилища: 503", func() {
			store.err = errors.New("down")
			rec := httptest.NewRecorder()
			h.HandleLeaderboard(rec, httptest.NewRequest(http.MethodGet, "/api/leaderboard", nil))
			So(rec.Code, ShouldEqual, http.StatusServiceUnavailable)
		})
	})
}
