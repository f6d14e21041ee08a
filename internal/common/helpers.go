// Package common содержит общие утилиты, используемые во всём проекте.
// Сюда входят: календарь с единым часовым поясом и JSON-помощники для HTTP.
package common

import (
	"time"

	log "github.com/sirupsen/logrus"
)

// DateLayout — формат календарной даты в API и в SQL-параметрах.
const DateLayout = "2006-01-02"

// secondsPerDay — длина суток для перевода даты в номер дня.
const secondsPerDay = 24 * 60 * 60

// Calendar — единый календарь сервиса.
// Все «сегодня», все номера дней и все даты ежедневных задач
// считаются в одном часовом поясе, иначе границы стриков
// поедут на единицу около полуночи.
type Calendar struct {
	loc *time.Location
}

// NewCalendar создаёт календарь в заданном часовом поясе.
// nil означает UTC.
func NewCalendar(loc *time.Location) Calendar {
	if loc == nil {
		loc = time.UTC
	}
	return Calendar{loc: loc}
}

// LoadCalendar загружает часовой пояс по имени (например, "Europe/Moscow").
// Если tzdata недоступна, откатываемся на UTC с предупреждением.
func LoadCalendar(name string) Calendar {
	loc, err := time.LoadLocation(name)
	if err != nil {
		log.WithError(err).WithField("timezone", name).Warn("Не удалось загрузить часовой пояс, используем UTC")
		loc = time.UTC
	}
	return NewCalendar(loc)
}

// Location возвращает часовой пояс календаря.
func (c Calendar) Location() *time.Location {
	if c.loc == nil {
		return time.UTC
	}
	return c.loc
}

// Today возвращает полночь календарной даты момента now.
func (c Calendar) Today(now time.Time) time.Time {
	t := now.In(c.Location())
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, c.Location())
}

// DayIndex возвращает номер календарного дня с 1970-01-01.
// Время суток отбрасывается: две отметки одного дня дают один номер.
func (c Calendar) DayIndex(t time.Time) int64 {
	local := t.In(c.Location())
	midnightUTC := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
	return floorDiv(midnightUTC.Unix(), secondsPerDay)
}

// DateString форматирует календарную дату момента t: "2006-01-02".
func (c Calendar) DateString(t time.Time) string {
	return t.In(c.Location()).Format(DateLayout)
}

// floorDiv — деление с округлением вниз (для дат до 1970 года).
func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
