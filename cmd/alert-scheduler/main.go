package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Franklp24/gestor-facturas/internal/config"
	"github.com/Franklp24/gestor-facturas/internal/lib/sl"
	"github.com/Franklp24/gestor-facturas/internal/rabbitmq"
	schedulerservice "github.com/Franklp24/gestor-facturas/internal/services/scheduler"
	"github.com/Franklp24/gestor-facturas/internal/storage/repository"
)

func main() {
	cfg := config.MustLoad()
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	logger.Info("starting alert-scheduler", slog.String("env", cfg.Env))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := repository.New(cfg.StoragePath)
	if err != nil {
		logger.Error("failed to open storage", sl.Err(err))
		os.Exit(1)
	}
	defer func() {
		_ = db.Close()
	}()

	conn, err := rabbitmq.Connect(cfg.RabbitMQURL, cfg.RabbitMQRetries, cfg.RabbitMQRetryDelay)
	if err != nil {
		logger.Error("failed to connect to RabbitMQ", sl.Err(err))
		os.Exit(1)
	}
	logger.Info("success to connect to RabbitMQ", slog.String("URL", cfg.RabbitMQURL))
	defer func() {
		_ = conn.Close()
	}()

	ch, err := rabbitmq.SetupChannel(conn)
	if err != nil {
		logger.Error("failed to setup RabbitMQ channel", sl.Err(err))
		os.Exit(1)
	}
	defer func() {
		_ = ch.Close()
	}()

	scheduler := schedulerservice.NewSchedulerService(db, rabbitmq.NewPublisher(ch), logger, cfg.AlertWindowDays)
	scheduler.Run(ctx, cfg.SchedulerInterval)

	logger.Info("alert-scheduler stopped gracefully")
}
