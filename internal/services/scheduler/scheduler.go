// Package services содержит планировщик, который периодически находит
// фактуры, истекающие в пределах окна предупреждения, и публикует
// уведомления в очередь для отправителя писем.
package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Franklp24/gestor-facturas/internal/lib/duedate"
	"github.com/Franklp24/gestor-facturas/internal/lib/sl"
	"github.com/Franklp24/gestor-facturas/internal/models"
	"github.com/Franklp24/gestor-facturas/internal/rabbitmq"
)

// InvoiceRepository определяет выборку истекающих фактур из хранилища.
type InvoiceRepository interface {
	FindInvoicesExpiringSoon(ctx context.Context, today string, windowDays int) ([]*models.Invoice, error)
}

// Publisher публикует уведомления в брокер.
type Publisher interface {
	Publish(exchange, routingKey string, message any) error
}

// SchedulerService периодически сканирует хранилище и публикует
// уведомления об истекающих фактурах.
type SchedulerService struct {
	repo       InvoiceRepository
	pub        Publisher
	log        *slog.Logger
	windowDays int
	now        func() time.Time
}

// NewSchedulerService создает новый экземпляр SchedulerService.
func NewSchedulerService(repo InvoiceRepository, pub Publisher, log *slog.Logger, windowDays int) *SchedulerService {
	if windowDays <= 0 {
		windowDays = duedate.DefaultWindowDays
	}
	return &SchedulerService{
		repo:       repo,
		pub:        pub,
		log:        log,
		windowDays: windowDays,
		now:        time.Now,
	}
}

// WithNow подменяет источник текущего времени. Используется в тестах.
func (s *SchedulerService) WithNow(now func() time.Time) *SchedulerService {
	s.now = now
	return s
}

// Run запускает цикл сканирования с заданным интервалом до отмены
// контекста. Ошибки одного прохода логируются и не прерывают цикл.
func (s *SchedulerService) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.log.Info("starting scan for expiring invoices")
			published, err := s.ScanOnce(ctx)
			if err != nil {
				s.log.Error("scan failed", sl.Err(err))
				continue
			}
			s.log.Info("scan finished", slog.Int("published", published))
		case <-ctx.Done():
			return
		}
	}
}

// ScanOnce выполняет один проход: выбирает неоплаченные фактуры в окне
// предупреждения и публикует по одному уведомлению на фактуру.
// Возвращает количество опубликованных уведомлений.
func (s *SchedulerService) ScanOnce(ctx context.Context) (int, error) {
	today := s.now()
	invoices, err := s.repo.FindInvoicesExpiringSoon(ctx, today.Format(duedate.Layout), s.windowDays)
	if err != nil {
		return 0, err
	}

	published := 0
	for _, invoice := range invoices {
		alert := duedate.ComputeAlert(invoice.Status, invoice.DueDate, today, s.windowDays)
		if !alert.Active {
			continue
		}
		if invoice.Email == "" {
			s.log.Warn("invoice has no email, skipping notification", slog.Int("id", invoice.ID))
			continue
		}

		info := models.InvoiceInfo{
			NotificationID: uuid.NewString(),
			ClientName:     invoice.ClientName,
			Email:          invoice.Email,
			DueDate:        invoice.DueDate,
			Amount:         invoice.Amount,
			DaysLeft:       alert.DaysLeft,
		}
		if err := s.pub.Publish(rabbitmq.NotificationsExchange, rabbitmq.ExpiringRoutingKey, info); err != nil {
			s.log.Error("failed to publish notification", slog.Int("id", invoice.ID), sl.Err(err))
			continue
		}
		published++
	}
	return published, nil
}
