package streak

import (
	"math"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"serotonyl.ru/sudoku-scoreboard/internal/common"
)

var utc = common.NewCalendar(nil)

// now — «сегодня» для всех тестов: 18 октября, середина дня.
var now = time.Date(2026, 10, 18, 14, 0, 0, 0, time.UTC)

// daysAgo возвращает момент n дней назад в заданный час.
func daysAgo(n, hour int) time.Time {
	d := now.AddDate(0, 0, -n)
	return time.Date(d.Year(), d.Month(), d.Day(), hour, 0, 0, 0, time.UTC)
}

func TestCompute(t *testing.T) {
	Convey("Расчёт стрика", t, func() {
		Convey("Без результатов стрик 0 и множитель 1", func() {
			res := Compute(nil, now, utc)
			So(res.Streak, ShouldEqual, 0)
			So(res.Multiplier, ShouldEqual, 1.0)
			So(res.ActiveDays, ShouldEqual, 0)
		})

		Convey("Сегодня, вчера и позавчера: стрик 3", func() {
			res := Compute([]time.Time{daysAgo(0, 9), daysAgo(1, 9), daysAgo(2, 9)}, now, utc)
			So(res.Streak, ShouldEqual, 3)
			So(res.Longest, ShouldEqual, 3)
		})

		Convey("Сегодня и три дня назад: разрыв, стрик 1", func() {
			res := Compute([]time.Time{daysAgo(0, 9), daysAgo(3, 9)}, now, utc)
			So(res.Streak, ShouldEqual, 1)
			So(res.ActiveDays, ShouldEqual, 2)
		})

		Convey("Только позавчера: серия сгорела", func() {
			res := Compute([]time.Time{daysAgo(2, 9)}, now, utc)
			So(res.Streak, ShouldEqual, 0)
			So(res.Multiplier, ShouldEqual, 1.0)
			So(res.Longest, ShouldEqual, 1)
		})

		Convey("Серия, закончившаяся вчера, ещё жива", func() {
			res := Compute([]time.Time{daysAgo(1, 23), daysAgo(2, 1)}, now, utc)
			So(res.Streak, ShouldEqual, 2)
		})

		Convey("Сегодня, вчера, затем разрыв в два дня: частичного зачёта нет", func() {
			res := Compute([]time.Time{daysAgo(0, 8), daysAgo(1, 8), daysAgo(4, 8), daysAgo(5, 8)}, now, utc)
			So(res.Streak, ShouldEqual, 2)
		})

		Convey("Несколько решений за день считаются одним днём", func() {
			once := Compute([]time.Time{daysAgo(0, 10), daysAgo(1, 10)}, now, utc)
			many := Compute([]time.Time{
				daysAgo(0, 23), daysAgo(0, 10), daysAgo(0, 0),
				daysAgo(1, 22), daysAgo(1, 10),
			}, now, utc)
			So(many, ShouldResemble, once)
			So(many.Streak, ShouldEqual, 2)
			So(many.ActiveDays, ShouldEqual, 2)
		})

		Convey("Неупорядоченный вход даёт тот же результат, что и упорядоченный", func() {
			ordered := []time.Time{daysAgo(0, 9), daysAgo(1, 9), daysAgo(2, 9), daysAgo(7, 9)}
			shuffled := []time.Time{daysAgo(2, 9), daysAgo(7, 9), daysAgo(0, 9), daysAgo(1, 9)}
			So(Compute(shuffled, now, utc), ShouldResemble, Compute(ordered, now, utc))
		})

		Convey("Лучшая серия ищется по всей истории", func() {
			history := []time.Time{daysAgo(0, 9)}
			for i := 10; i < 15; i++ {
				history = append(history, daysAgo(i, 9))
			}
			res := Compute(history, now, utc)
			So(res.Streak, ShouldEqual, 1)
			So(res.Longest, ShouldEqual, 5)
		})

		Convey("Результат из будущего не продлевает серию", func() {
			res := Compute([]time.Time{now.AddDate(0, 0, 2)}, now, utc)
			So(res.Streak, ShouldEqual, 0)
		})

		Convey("Расчёт детерминирован", func() {
			in := []time.Time{daysAgo(0, 9), daysAgo(1, 9)}
			So(Compute(in, now, utc), ShouldResemble, Compute(in, now, utc))
		})
	})

	Convey("Границы дня считаются в часовом поясе календаря", t, func() {
		msk := common.NewCalendar(time.FixedZone("MSK", 3*60*60))
		// 22:30 UTC 17-го по Москве уже 18-е
		late := time.Date(2026, 10, 17, 22, 30, 0, 0, time.UTC)
		early := time.Date(2026, 10, 17, 6, 0, 0, 0, time.UTC)

		Convey("По UTC оба решения в один день", func() {
			res := Compute([]time.Time{late, early}, now, utc)
			So(res.ActiveDays, ShouldEqual, 1)
		})

		Convey("По Москве это два дня подряд", func() {
			res := Compute([]time.Time{late, early}, now, msk)
			So(res.ActiveDays, ShouldEqual, 2)
			So(res.Streak, ShouldEqual, 2)
		})
	})
}

func TestFromDays(t *testing.T) {
	Convey("FromDays на готовых номерах дней", t, func() {
		So(FromDays([]int64{100, 99, 98}, 100).Streak, ShouldEqual, 3)
		So(FromDays([]int64{99, 98}, 100).Streak, ShouldEqual, 2)
		So(FromDays([]int64{98}, 100).Streak, ShouldEqual, 0)
		So(FromDays([]int64{100, 97}, 100).Streak, ShouldEqual, 1)
		So(FromDays(nil, 100), ShouldResemble, Empty())
	})
}

func TestMultiplier(t *testing.T) {
	Convey("Множитель равен 1.1 в степени стрика", t, func() {
		for _, n := range []int{0, 1, 2, 5, 10} {
			So(Multiplier(n), ShouldAlmostEqual, math.Pow(1.1, float64(n)), 1e-9)
		}
		So(Multiplier(1), ShouldAlmostEqual, 1.1, 1e-9)
		So(Multiplier(2), ShouldAlmostEqual, 1.21, 1e-9)
	})

	Convey("Множитель в результате соответствует стрику", t, func() {
		res := Compute([]time.Time{daysAgo(0, 9), daysAgo(1, 9), daysAgo(2, 9)}, now, utc)
		So(res.Multiplier, ShouldAlmostEqual, 1.331, 1e-9)
	})

	Convey("Отрицательный стрик не уменьшает награду", t, func() {
		So(Multiplier(-3), ShouldEqual, 1.0)
	})
}
