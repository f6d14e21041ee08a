// Package daily реализует выдачу ежедневной задачи: одна головоломка на календарный день для всех.
package daily

// View — ответ GET /api/daily.
// Solved равен nil, если пользователь неизвестен: это не то же самое, что false.
type View struct {
	Puzzle string `json:"puzzle"`
	Solved *bool  `json:"solved"`
	Date   string `json:"date"`
}
