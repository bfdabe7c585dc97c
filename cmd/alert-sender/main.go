package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Franklp24/gestor-facturas/internal/config"
	"github.com/Franklp24/gestor-facturas/internal/lib/sl"
	"github.com/Franklp24/gestor-facturas/internal/lib/smtp"
	"github.com/Franklp24/gestor-facturas/internal/rabbitmq"
	senderservice "github.com/Franklp24/gestor-facturas/internal/services/sender"
)

func main() {
	cfg := config.MustLoad()
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	logger.Info("starting alert-sender", slog.String("env", cfg.Env))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

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

	transport := smtp.NewTransport(cfg.SMTPConnection, logger)
	sender := senderservice.NewSenderService(transport, logger)

	if err := rabbitmq.ConsumeMessages(ctx, ch, rabbitmq.ExpiringQueue, sender.SendExpiringInvoiceEmail); err != nil {
		logger.Error("failed to start consumer", sl.Err(err))
		os.Exit(1)
	}
	logger.Info("consuming expiring invoice notifications", slog.String("queue", rabbitmq.ExpiringQueue))

	<-ctx.Done()
	logger.Info("alert-sender stopped gracefully")
}
