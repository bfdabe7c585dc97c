// Package services содержит бизнес-логику для управления фактурами
// и кеширования. Хранимые записи пропускаются через вычисление статуса
// и признака истечения и отдаются наверх уже аннотированными.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Franklp24/gestor-facturas/internal/cache"
	"github.com/Franklp24/gestor-facturas/internal/lib/duedate"
	"github.com/Franklp24/gestor-facturas/internal/lib/sl"
	"github.com/Franklp24/gestor-facturas/internal/models"
)

// displayLayout — формат даты для отображения (DD/MM/YYYY).
const displayLayout = "02/01/2006"

// InvoiceRepository определяет методы для работы с фактурами в хранилище.
type InvoiceRepository interface {
	// CreateInvoice добавляет новую фактуру и возвращает её ID.
	CreateInvoice(ctx context.Context, invoice models.Invoice) (int, error)
	// ListInvoices возвращает все фактуры, упорядоченные по тексту даты.
	ListInvoices(ctx context.Context, direction string) ([]*models.Invoice, error)
	// RemoveInvoice удаляет фактуру по ID и возвращает количество удалённых записей.
	RemoveInvoice(ctx context.Context, id int) (int, error)
	// MarkInvoicePaid переводит фактуру в статус paid.
	MarkInvoicePaid(ctx context.Context, id int) (int, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(key string, value any, expiration time.Duration) error
	// Invalidate удаляет значение из кеша по ключу.
	Invalidate(key string) error
}

// InvoiceService реализует бизнес-логику работы с фактурами, включая
// кеширование сырых записей. Опорная дата "сегодня" берётся из поля now,
// что позволяет подменять её в тестах.
type InvoiceService struct {
	repo       InvoiceRepository
	cache      Cache
	log        *slog.Logger
	windowDays int
	now        func() time.Time
}

// NewInvoiceService создает новый экземпляр InvoiceService.
func NewInvoiceService(repo InvoiceRepository, cache Cache, log *slog.Logger, windowDays int) *InvoiceService {
	if windowDays <= 0 {
		windowDays = duedate.DefaultWindowDays
	}
	return &InvoiceService{
		repo:       repo,
		cache:      cache,
		log:        log,
		windowDays: windowDays,
		now:        time.Now,
	}
}

// WithNow подменяет источник текущего времени. Используется в тестах.
func (s *InvoiceService) WithNow(now func() time.Time) *InvoiceService {
	s.now = now
	return s
}

// Create валидирует дату, создает новую фактуру со статусом pending
// и возвращает её ID.
func (s *InvoiceService) Create(ctx context.Context, req models.DummyInvoice) (int, error) {
	if _, ok := duedate.Parse(req.DueDate); !ok {
		return 0, fmt.Errorf("%w: %q", models.ErrInvalidDueDate, req.DueDate)
	}

	invoice := models.Invoice{
		ClientName:  req.ClientName,
		ProductCode: req.ProductCode,
		Amount:      *req.Amount,
		DueDate:     req.DueDate,
		Status:      string(duedate.StatusPending),
		Email:       req.Email,
	}

	id, err := s.repo.CreateInvoice(ctx, invoice)
	if err != nil {
		return 0, err
	}
	s.log.Info("created new invoice", slog.Int("id", id))

	s.invalidateLists()
	return id, nil
}

// List возвращает все фактуры, аннотированные статусом и признаком
// истечения, вместе с агрегированным признаком риска.
func (s *InvoiceService) List(ctx context.Context, direction string) (*models.ListResult, error) {
	invoices, err := s.loadInvoices(ctx, direction)
	if err != nil {
		return nil, err
	}

	today := s.now()
	views := make([]models.InvoiceView, 0, len(invoices))
	derived := make([]duedate.Derived, 0, len(invoices))
	for _, invoice := range invoices {
		view, d := s.annotate(invoice, today)
		views = append(views, view)
		derived = append(derived, d)
	}

	return &models.ListResult{
		Invoices:           views,
		HasOutstandingRisk: duedate.HasOutstandingRisk(derived),
	}, nil
}

// Alerts возвращает только фактуры с установленным флагом скорого
// истечения, по возрастанию даты.
func (s *InvoiceService) Alerts(ctx context.Context) ([]models.InvoiceView, error) {
	invoices, err := s.loadInvoices(ctx, "asc")
	if err != nil {
		return nil, err
	}

	today := s.now()
	var views []models.InvoiceView
	for _, invoice := range invoices {
		view, d := s.annotate(invoice, today)
		if d.Alert.Active {
			views = append(views, view)
		}
	}
	return views, nil
}

// Remove удаляет фактуру по ID и инвалидирует кеш.
// Отсутствующий ID — не ошибка: возвращается ноль удалённых записей.
func (s *InvoiceService) Remove(ctx context.Context, id int) (int, error) {
	s.invalidateLists()

	count, err := s.repo.RemoveInvoice(ctx, id)
	if err != nil {
		return 0, err
	}
	return count, nil
}

// MarkPaid переводит фактуру в терминальный статус paid и инвалидирует кеш.
// Отсутствующий ID — тихий no-op.
func (s *InvoiceService) MarkPaid(ctx context.Context, id int) (int, error) {
	s.invalidateLists()

	count, err := s.repo.MarkInvoicePaid(ctx, id)
	if err != nil {
		return 0, err
	}
	return count, nil
}

// loadInvoices возвращает сырые записи из кеша или из хранилища.
func (s *InvoiceService) loadInvoices(ctx context.Context, direction string) ([]*models.Invoice, error) {
	if direction != "asc" {
		direction = "desc"
	}
	cacheKey := cache.ListKey(direction)

	var cached []*models.Invoice
	found, err := s.cache.Get(cacheKey, &cached)
	if err != nil {
		s.log.Warn("failed to read invoices from cache", slog.String("key", cacheKey), sl.Err(err))
	}
	if found {
		return cached, nil
	}

	invoices, err := s.repo.ListInvoices(ctx, direction)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(cacheKey, invoices, cache.ListTTL); err != nil {
		s.log.Warn("failed to cache invoices", slog.String("key", cacheKey), sl.Err(err))
	}
	return invoices, nil
}

// annotate пропускает одну запись через вычисление статуса и признака
// истечения на опорную дату today.
func (s *InvoiceService) annotate(invoice *models.Invoice, today time.Time) (models.InvoiceView, duedate.Derived) {
	d := duedate.Derive(invoice.Status, invoice.DueDate, today, s.windowDays)

	view := models.InvoiceView{
		ID:             invoice.ID,
		ClientName:     invoice.ClientName,
		ProductCode:    invoice.ProductCode,
		Amount:         invoice.Amount,
		DueDate:        invoice.DueDate,
		DueDateDisplay: invoice.DueDate,
		Email:          invoice.Email,
		Status:         string(d.Status),
		Alert:          d.Alert.Active,
	}
	if due, ok := duedate.Parse(invoice.DueDate); ok {
		view.DueDateDisplay = due.Format(displayLayout)
	}
	if d.Alert.HasDaysLeft {
		days := d.Alert.DaysLeft
		view.DaysLeft = &days
	}
	return view, d
}

// invalidateLists сбрасывает оба закешированных направления списка.
func (s *InvoiceService) invalidateLists() {
	for _, direction := range []string{"asc", "desc"} {
		key := cache.ListKey(direction)
		if err := s.cache.Invalidate(key); err != nil {
			s.log.Warn("failed to invalidate cache", slog.String("key", key), sl.Err(err))
		}
	}
}
