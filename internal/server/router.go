package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"serotonyl.ru/sudoku-scoreboard/internal/features/accounts"
	"serotonyl.ru/sudoku-scoreboard/internal/features/daily"
	"serotonyl.ru/sudoku-scoreboard/internal/features/scores"
	"serotonyl.ru/sudoku-scoreboard/internal/features/streak"
	"serotonyl.ru/sudoku-scoreboard/internal/metrics"
	"serotonyl.ru/sudoku-scoreboard/internal/puzzle"
	"serotonyl.ru/sudoku-scoreboard/internal/server/middleware"
)

// Routes — всё, что нужно роутеру.
type Routes struct {
	Auth     accounts.Authenticator
	Accounts *accounts.Handler
	Streak   *streak.Handler
	Daily    *daily.Handler
	Scores   *scores.Handler
	Puzzle   *puzzle.Handler
	Limiter  *middleware.RateLimiter
	Health   map[string]Checker
	// TrustProxy включает RealIP. Без него лимит считается по RemoteAddr соединения.
	TrustProxy bool
}

// NewRouter собирает chi-роутер со всеми маршрутами.
func NewRouter(rt Routes) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	if rt.TrustProxy {
		r.Use(chimw.RealIP)
	}
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", handleHealth(rt.Health))
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		if rt.Limiter != nil {
			r.Use(rt.Limiter.Middleware)
		}

		r.Post("/register", rt.Accounts.HandleRegister)
		r.Post("/login", rt.Accounts.HandleLogin)
		r.Post("/logout", rt.Accounts.HandleLogout)

		r.Get("/puzzle", rt.Puzzle.HandleGenerate)
		r.Get("/users/{userID}/streak", rt.Streak.HandleUserStreak)

		// Анонимно можно, но с токеном ответ персональный
		r.Group(func(r chi.Router) {
			r.Use(accounts.Optional(rt.Auth))
			r.Get("/daily", rt.Daily.HandleDaily)
			r.Get("/leaderboard", rt.Scores.HandleLeaderboard)
		})

		r.Group(func(r chi.Router) {
			r.Use(accounts.Required(rt.Auth))
			r.Get("/streak", rt.Streak.HandleMyStreak)
			r.Post("/scores", rt.Scores.HandleSubmit)
		})
	})

	return r
}
