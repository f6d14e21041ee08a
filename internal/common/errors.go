// Package common — errors.go определяет пользовательские ошибки,
// которые используются во всех модулях сервиса.
// Эти ошибки позволяют обработчикам различать типы проблем
// и отдавать клиенту правильный HTTP-статус.
package common

import "errors"

// Ошибки аккаунтов
var (
	// ErrUserNotFound — пользователь не найден в базе
	ErrUserNotFound = errors.New("пользователь не найден")
	// ErrUsernameTaken — имя пользователя уже занято
	ErrUsernameTaken = errors.New("имя пользователя уже занято")
	// ErrInvalidUsername — пустое или слишком длинное имя
	ErrInvalidUsername = errors.New("имя пользователя должно быть от 3 до 64 символов")
	// ErrWeakPassword — пароль короче минимальной длины
	ErrWeakPassword = errors.New("пароль слишком короткий (минимум 8 символов)")
	// ErrWrongPassword — неверная пара логин/пароль
	ErrWrongPassword = errors.New("неверное имя пользователя или пароль")
	// ErrTooManyAttempts — слишком много неудачных попыток входа
	ErrTooManyAttempts = errors.New("слишком много попыток, попробуйте позже")
	// ErrSessionExpired — сессия не найдена или истекла
	ErrSessionExpired = errors.New("сессия истекла, авторизуйтесь заново")
)

// Ошибки очков
var (
	// ErrInvalidScore — отрицательное или слишком большое значение очков
	ErrInvalidScore = errors.New("очки должны быть от 0 до 1000000")
	// ErrDailyAlreadySubmitted — ежедневная задача уже решена сегодня
	ErrDailyAlreadySubmitted = errors.New("ежедневная задача уже решена сегодня")
)

// Ошибки генератора головоломок
var (
	// ErrEmptyPuzzle — генератор вернул пустой вывод
	ErrEmptyPuzzle = errors.New("генератор вернул пустую головоломку")
	// ErrUnknownDifficulty — неизвестный уровень сложности
	ErrUnknownDifficulty = errors.New("неизвестный уровень сложности")
)
