// Package main — точка входа табло.
// Загружает конфигурацию, инициализирует приложение и запускает HTTP-сервер.
// Поддерживает graceful shutdown по SIGINT/SIGTERM.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"serotonyl.ru/sudoku-scoreboard/internal/app"
	"serotonyl.ru/sudoku-scoreboard/internal/config"
)

func main() {
	setupLogging()

	log.Info("=== Табло запускается ===")

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("Не удалось загрузить конфигурацию")
	}

	if level, err := log.ParseLevel(cfg.AppLogLevel); err == nil {
		log.SetLevel(level)
	} else {
		log.WithField("level", cfg.AppLogLevel).Warn("Неизвестный уровень логов, оставляем debug")
	}

	// Контекст отменяется по Ctrl+C или docker stop
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, cfg); err != nil {
		log.WithError(err).Fatal("Табло остановлено с ошибкой")
	}

	log.Info("=== Табло остановлено ===")
}

func run(ctx context.Context, cfg *config.Config) error {
	application, err := app.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer application.Close()

	if err := application.Scheduler.Start(ctx); err != nil {
		return err
	}
	defer application.Scheduler.Stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.WithField("addr", cfg.HTTPAddr).Info("=== Табло готово к работе ===")
		return application.Server.Run(gctx)
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("Останавливаем HTTP-сервер...")
		return application.Server.Shutdown(context.Background())
	})

	return g.Wait()
}

// setupLogging настраивает формат логов.
func setupLogging() {
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	log.SetOutput(os.Stdout)
	log.SetLevel(log.DebugLevel)
}
