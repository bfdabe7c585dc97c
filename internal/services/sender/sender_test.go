package services

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	smtplib "github.com/Franklp24/gestor-facturas/internal/lib/smtp"
	"github.com/Franklp24/gestor-facturas/internal/models"
)

type writeCloser struct {
	bytes.Buffer
}

func (w *writeCloser) Close() error { return nil }

type ClientMock struct {
	mock.Mock
	data writeCloser
}

func (m *ClientMock) Mail(from string) error { return m.Called(from).Error(0) }
func (m *ClientMock) Rcpt(to string) error   { return m.Called(to).Error(0) }
func (m *ClientMock) Data() (io.WriteCloser, error) {
	args := m.Called()
	return &m.data, args.Error(0)
}
func (m *ClientMock) Quit() error  { return m.Called().Error(0) }
func (m *ClientMock) Close() error { return nil }

type TransportMock struct {
	mock.Mock
	client *ClientMock
}

func (m *TransportMock) Connect() (smtplib.Client, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return m.client, args.Error(1)
}
func (m *TransportMock) GetSMTPUser() string { return "billing@example.com" }

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func notificationBody(t *testing.T, info models.InvoiceInfo) []byte {
	body, err := json.Marshal(info)
	require.NoError(t, err)
	return body
}

func TestSendExpiringInvoiceEmail(t *testing.T) {
	client := new(ClientMock)
	client.On("Mail", "billing@example.com").Return(nil)
	client.On("Rcpt", "acme@example.com").Return(nil)
	client.On("Data").Return(nil)
	client.On("Quit").Return(nil)

	transport := &TransportMock{client: client}
	transport.On("Connect").Return(client, nil)

	service := NewSenderService(transport, newNoopLogger())

	body := notificationBody(t, models.InvoiceInfo{
		NotificationID: "n-1",
		ClientName:     "ACME",
		Email:          "acme@example.com",
		DueDate:        "2024-06-03",
		Amount:         150.5,
		DaysLeft:       2,
	})
	require.NoError(t, service.SendExpiringInvoiceEmail(body))

	sent := client.data.String()
	assert.Contains(t, sent, "To: acme@example.com")
	assert.Contains(t, sent, "Hola, ACME")
	assert.Contains(t, sent, "vence en 2 días (2024-06-03)")
	client.AssertExpectations(t)
}

func TestSendExpiringInvoiceEmail_BadPayload(t *testing.T) {
	transport := &TransportMock{}
	service := NewSenderService(transport, newNoopLogger())

	err := service.SendExpiringInvoiceEmail([]byte("{not json"))
	assert.Error(t, err)
	transport.AssertNotCalled(t, "Connect")
}

func TestSendExpiringInvoiceEmail_NoRecipient(t *testing.T) {
	transport := &TransportMock{}
	service := NewSenderService(transport, newNoopLogger())

	body := notificationBody(t, models.InvoiceInfo{NotificationID: "n-2"})
	err := service.SendExpiringInvoiceEmail(body)
	assert.Error(t, err)
	transport.AssertNotCalled(t, "Connect")
}

func TestSendExpiringInvoiceEmail_ConnectError(t *testing.T) {
	transport := &TransportMock{}
	transport.On("Connect").Return(nil, errors.New("dial error"))

	service := NewSenderService(transport, newNoopLogger())

	body := notificationBody(t, models.InvoiceInfo{Email: "acme@example.com"})
	assert.Error(t, service.SendExpiringInvoiceEmail(body))
}

func TestBuildMessage_DueToday(t *testing.T) {
	msg := buildMessage("billing@example.com", models.InvoiceInfo{
		ClientName: "ACME",
		Email:      "acme@example.com",
		Amount:     99.9,
		DaysLeft:   0,
	})
	assert.Contains(t, msg, "vence hoy")
	assert.Contains(t, msg, "From: billing@example.com")
}
