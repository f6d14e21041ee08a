// Package app инициализирует все компоненты приложения.
// app.go — точка сборки: создаёт БД-пул, репозитории, сервисы, обработчики
// и собирает всё в HTTP-сервер и планировщик.
package app

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"

	"serotonyl.ru/sudoku-scoreboard/internal/common"
	"serotonyl.ru/sudoku-scoreboard/internal/config"
	"serotonyl.ru/sudoku-scoreboard/internal/db/postgres"
	"serotonyl.ru/sudoku-scoreboard/internal/features/accounts"
	"serotonyl.ru/sudoku-scoreboard/internal/features/daily"
	"serotonyl.ru/sudoku-scoreboard/internal/features/scores"
	"serotonyl.ru/sudoku-scoreboard/internal/features/streak"
	"serotonyl.ru/sudoku-scoreboard/internal/jobs"
	"serotonyl.ru/sudoku-scoreboard/internal/puzzle"
	"serotonyl.ru/sudoku-scoreboard/internal/server"
	"serotonyl.ru/sudoku-scoreboard/internal/server/middleware"
)

// App содержит все компоненты приложения.
type App struct {
	Server    *server.Server
	Scheduler *jobs.Scheduler
	Limiter   *middleware.RateLimiter
	DB        *pgxpool.Pool
}

// New создаёт и инициализирует приложение.
// Порядок инициализации важен: компоненты зависят друг от друга.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	// === 1. База данных ===
	pool, err := postgres.NewPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("ошибка подключения к БД: %w", err)
	}

	if err := runMigrations(ctx, pool); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ошибка миграций: %w", err)
	}

	// === 2. Календарь и генератор ===
	cal := common.LoadCalendar(cfg.AppTimezone)
	gen := puzzle.NewCommandGenerator(cfg.GeneratorPath, cfg.GeneratorTimeout)

	// === 3. Репозитории ===
	accountRepo := accounts.NewRepository(pool)
	streakRepo := streak.NewRepository(pool)
	dailyRepo := daily.NewRepository(pool)
	scoreRepo := scores.NewRepository(pool)

	// === 4. Сервисы ===
	accountService := accounts.NewService(accountRepo, cfg)
	streakService := streak.NewService(streakRepo, cal)
	dailyService := daily.NewService(dailyRepo, dailyRepo, gen, cal, cfg.DailyIssueTimeout)

	var streaks scores.StreakSource
	if cfg.FeatureStreaksEnabled {
		streaks = streakService
	}
	scoreService := scores.NewService(scoreRepo, streaks, cal, cfg.LeaderboardDefaultLimit, cfg.LeaderboardMaxLimit)

	// === 5. HTTP ===
	limiter := middleware.NewRateLimiter(cfg.RateLimitRequests, cfg.RateLimitWindow)
	router := server.NewRouter(server.Routes{
		Auth:       accountService,
		Accounts:   accounts.NewHandler(accountService),
		Streak:     streak.NewHandler(streakService, cfg.FeatureStreaksEnabled),
		Daily:      daily.NewHandler(dailyService, cfg.FeatureDailyEnabled),
		Scores:     scores.NewHandler(scoreService),
		Puzzle:     puzzle.NewHandler(gen),
		Limiter:    limiter,
		TrustProxy: cfg.HTTPTrustProxy,
		Health: map[string]server.Checker{
			"postgres": server.CheckerFunc(pool.Ping),
		},
	})

	// === 6. Планировщик задач ===
	var issuer jobs.DailyIssuer
	if cfg.FeatureDailyEnabled && cfg.FeaturePreissueDaily {
		issuer = dailyService
	}
	scheduler := jobs.NewScheduler(issuer, accountService, cal)

	log.WithFields(log.Fields{
		"timezone":  cal.Location().String(),
		"generator": cfg.GeneratorPath,
		"daily":     cfg.FeatureDailyEnabled,
		"streaks":   cfg.FeatureStreaksEnabled,
	}).Info("Приложение собрано")

	return &App{
		Server:    server.New(cfg.HTTPAddr, router, cfg.HTTPReadTimeout, cfg.HTTPWriteTimeout),
		Scheduler: scheduler,
		Limiter:   limiter,
		DB:        pool,
	}, nil
}

// Close освобождает ресурсы приложения.
func (a *App) Close() {
	a.Limiter.Close()
	a.DB.Close()
}

// runMigrations выполняет все SQL-миграции.
func runMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	if err := postgres.RunMigrations(ctx, pool); err != nil {
		return err
	}

	for _, m := range migrations {
		applied, err := postgres.ExecMigrationSQL(ctx, pool, m.version, m.sql)
		if err != nil {
			return fmt.Errorf("миграция %d: %w", m.version, err)
		}
		if applied {
			log.Infof("Миграция %d применена", m.version)
		}
	}

	return nil
}
