// Package streak — engine.go содержит чистый расчёт стрика.
// Никаких обращений к БД и записей: одинаковый вход и одинаковое «сегодня»
// всегда дают одинаковый результат.
package streak

import (
	"cmp"
	"slices"
	"time"

	"serotonyl.ru/sudoku-scoreboard/internal/common"
)

// Compute считает стрик по моментам отправки результатов.
//
// Алгоритм:
//  1. Каждый момент переводим в номер календарного дня (время суток отбрасывается)
//  2. Сортируем по убыванию и схлопываем повторы: два решения за день дают один активный день
//  3. Если последний активный день не сегодня и не вчера, серия прервана: стрик 0
//  4. Иначе считаем подряд идущие дни от последнего назад до первого разрыва
func Compute(submissions []time.Time, now time.Time, cal common.Calendar) Result {
	return FromDays(ActiveDays(submissions, cal), cal.DayIndex(now))
}

// ActiveDays переводит моменты в строго убывающий список номеров дней без повторов.
func ActiveDays(submissions []time.Time, cal common.Calendar) []int64 {
	days := make([]int64, 0, len(submissions))
	for _, t := range submissions {
		days = append(days, cal.DayIndex(t))
	}
	// Для уже упорядоченного входа сортировка ничего не меняет
	slices.SortFunc(days, func(a, b int64) int { return cmp.Compare(b, a) })
	return slices.Compact(days)
}

// FromDays считает стрик по строго убывающему списку активных дней.
func FromDays(days []int64, today int64) Result {
	if len(days) == 0 {
		return Empty()
	}

	current := currentRun(days, today)
	return Result{
		Streak:     current,
		Multiplier: Multiplier(current),
		Longest:    longestRun(days),
		ActiveDays: len(days),
	}
}

// currentRun — длина серии, которая заканчивается сегодня или вчера.
func currentRun(days []int64, today int64) int {
	if len(days) == 0 {
		return 0
	}
	// Последний раз решал позавчера или раньше: серия сгорела
	if days[0] != today && days[0] != today-1 {
		return 0
	}

	count := 1
	for i := 0; i+1 < len(days); i++ {
		if days[i] != days[i+1]+1 {
			break
		}
		count++
	}
	return count
}

// longestRun — самая длинная серия подряд идущих дней за всю историю.
func longestRun(days []int64) int {
	best, run := 0, 0
	for i := range days {
		if i > 0 && days[i-1] == days[i]+1 {
			run++
		} else {
			run = 1
		}
		best = max(best, run)
	}
	return best
}
