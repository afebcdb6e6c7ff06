package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"homework_status_bot/internal/app"
	"homework_status_bot/internal/infra/config"
	"homework_status_bot/internal/infra/logger"
	"homework_status_bot/internal/infra/practicum"
	"homework_status_bot/internal/infra/scheduler"
	"homework_status_bot/internal/infra/telegram"

	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("FATAL: Could not load application configuration: %v", err)
	}

	appLogger, logFile, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("FATAL: Could not initialize logger: %v", err)
	}
	defer logFile.Close()

	appLogger.WithFields(logrus.Fields{
		"environment": cfg.Environment,
		"log_level":   cfg.LogLevel,
		"endpoint":    cfg.Endpoint,
	}).Info("Homework status bot starting...")

	pollScheduler, err := scheduler.NewPollScheduler(cfg.RetryPeriod, cfg.PollSchedule, appLogger.WithField("component", "scheduler"))
	if err != nil {
		appLogger.WithError(err).Fatal("Could not create poll scheduler")
	}
	appLogger.WithField("schedule", pollScheduler.Spec()).Info("Poll scheduler initialized")

	// The bot is created offline, so no request is made before the credentials are checked.
	bot, err := telegram.NewBot(cfg.TelegramToken, "")
	if err != nil {
		appLogger.WithError(err).Fatal("Could not create Telegram bot")
	}

	poller := app.NewPoller(
		cfg,
		practicum.NewClient(cfg.Endpoint, cfg.PracticumToken, nil),
		telegram.NewTelebotAdapter(bot),
		pollScheduler,
		appLogger,
	)

	// Graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := poller.RunForever(ctx); err != nil {
		appLogger.WithError(err).Error("Poller exited with error")
	}
	appLogger.Info("Application shut down gracefully.")
}
