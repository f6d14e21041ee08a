package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"serotonyl.ru/sudoku-scoreboard/internal/common"
)

type countingJob struct {
	calls int
	err   error
}

func (c *countingJob) EnsureToday(context.Context) error {
	c.calls++
	return c.err
}

func (c *countingJob) PurgeExpiredSessions(context.Context) error {
	c.calls++
	return c.err
}

func TestScheduler(t *testing.T) {
	Convey("Планировщик", t, func() {
		ctx := context.Background()
		cal := common.NewCalendar(time.FixedZone("MSK", 3*60*60))

		Convey("С предвыпуском регистрирует обе задачи", func() {
			s := NewScheduler(&countingJob{}, &countingJob{}, cal)
			So(s.Start(ctx), ShouldBeNil)
			defer s.Stop()
			So(s.cron.Entries(), ShouldHaveLength, 2)
			So(s.cron.Location().String(), ShouldEqual, "MSK")
		})

		Convey("Без предвыпуска: только очистка сессий", func() {
			s := NewScheduler(nil, &countingJob{}, cal)
			So(s.Start(ctx), ShouldBeNil)
			defer s.Stop()
			So(s.cron.Entries(), ShouldHaveLength, 1)
		})

		Convey("Ошибка задачи не роняет планировщик", func() {
			daily := &countingJob{err: errors.New("solver down")}
			sessions := &countingJob{}
			s := NewScheduler(daily, sessions, cal)
			So(func() { s.issueDaily(ctx) }, ShouldNotPanic)
			s.purgeSessions(ctx)
			So(daily.calls, ShouldEqual, 1)
			So(sessions.calls, ShouldEqual, 1)
		})
	})
}
