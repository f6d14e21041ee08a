// Package streak считает серию дней подряд, в которые пользователь решал головоломки.
// models.go описывает результат расчёта стрика.
package streak

// Result — стрик пользователя на текущий день.
// Не хранится в БД: каждый раз выводится из истории результатов.
type Result struct {
	Streak     int     `json:"streak"`      // Текущая серия (дней подряд, заканчивается сегодня или вчера)
	Multiplier float64 `json:"multiplier"`  // Множитель награды: 1.1^streak
	Longest    int     `json:"longest"`     // Лучшая серия за всю историю
	ActiveDays int     `json:"active_days"` // Сколько разных дней пользователь что-то решал
}

// Empty — стрик пользователя без единого результата.
func Empty() Result {
	return Result{Multiplier: 1.0}
}
