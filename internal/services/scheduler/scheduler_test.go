package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Franklp24/gestor-facturas/internal/models"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) FindInvoicesExpiringSoon(ctx context.Context, today string, windowDays int) ([]*models.Invoice, error) {
	args := m.Called(ctx, today, windowDays)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Invoice), args.Error(1)
}

type PublisherMock struct{ mock.Mock }

func (m *PublisherMock) Publish(exchange, routingKey string, message any) error {
	return m.Called(exchange, routingKey, message).Error(0)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func fixedNow() time.Time {
	return time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
}

func TestScanOnce_PublishesActiveAlerts(t *testing.T) {
	repo := new(RepoMock)
	pub := new(PublisherMock)

	repo.On("FindInvoicesExpiringSoon", mock.Anything, "2024-06-01", 7).Return([]*models.Invoice{
		{ID: 1, ClientName: "ACME", Email: "acme@example.com", Amount: 100, DueDate: "2024-06-03", Status: "pending"},
		{ID: 2, ClientName: "No Email", Email: "", Amount: 50, DueDate: "2024-06-04", Status: "pending"},
	}, nil)

	pub.On("Publish", "notifications", "expiring", mock.MatchedBy(func(msg any) bool {
		info, ok := msg.(models.InvoiceInfo)
		return ok && info.Email == "acme@example.com" && info.DaysLeft == 2 && info.NotificationID != ""
	})).Return(nil)

	service := NewSchedulerService(repo, pub, newNoopLogger(), 7).WithNow(fixedNow)

	published, err := service.ScanOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, published)
	pub.AssertNumberOfCalls(t, "Publish", 1)
}

func TestScanOnce_RepoError(t *testing.T) {
	repo := new(RepoMock)
	pub := new(PublisherMock)

	repo.On("FindInvoicesExpiringSoon", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("db error"))

	service := NewSchedulerService(repo, pub, newNoopLogger(), 7).WithNow(fixedNow)

	_, err := service.ScanOnce(context.Background())
	assert.Error(t, err)
	pub.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
}

func TestScanOnce_PublishErrorContinues(t *testing.T) {
	repo := new(RepoMock)
	pub := new(PublisherMock)

	repo.On("FindInvoicesExpiringSoon", mock.Anything, "2024-06-01", 7).Return([]*models.Invoice{
		{ID: 1, ClientName: "First", Email: "first@example.com", Amount: 10, DueDate: "2024-06-02", Status: "pending"},
		{ID: 2, ClientName: "Second", Email: "second@example.com", Amount: 20, DueDate: "2024-06-05", Status: "pending"},
	}, nil)

	pub.On("Publish", "notifications", "expiring", mock.MatchedBy(func(msg any) bool {
		info, _ := msg.(models.InvoiceInfo)
		return info.ClientName == "First"
	})).Return(errors.New("broker down"))
	pub.On("Publish", "notifications", "expiring", mock.MatchedBy(func(msg any) bool {
		info, _ := msg.(models.InvoiceInfo)
		return info.ClientName == "Second"
	})).Return(nil)

	service := NewSchedulerService(repo, pub, newNoopLogger(), 7).WithNow(fixedNow)

	published, err := service.ScanOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, published)
}
