// Package services содержит отправителя писем: потребляет уведомления
// об истекающих фактурах из очереди и рассылает их клиентам по SMTP.
package services

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Franklp24/gestor-facturas/internal/lib/sl"
	"github.com/Franklp24/gestor-facturas/internal/lib/smtp"
	"github.com/Franklp24/gestor-facturas/internal/models"
)

// SenderService отправляет письма о скором истечении фактур.
type SenderService struct {
	transport smtp.TransportInterface
	log       *slog.Logger
}

// NewSenderService создает новый экземпляр SenderService.
func NewSenderService(transport smtp.TransportInterface, log *slog.Logger) *SenderService {
	return &SenderService{
		transport: transport,
		log:       log,
	}
}

// SendExpiringInvoiceEmail разбирает уведомление из очереди и отправляет
// письмо клиенту. Возвращённая ошибка приводит к nack и повторной доставке.
func (s *SenderService) SendExpiringInvoiceEmail(body []byte) error {
	var message models.InvoiceInfo
	if err := json.Unmarshal(body, &message); err != nil {
		return fmt.Errorf("error unmarshalling message: %w", err)
	}
	if message.Email == "" {
		return fmt.Errorf("notification %s has no recipient", message.NotificationID)
	}

	msg := buildMessage(s.transport.GetSMTPUser(), message)

	client, err := s.transport.Connect()
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := client.Close(); closeErr != nil {
			s.log.Debug("smtp client close", sl.Err(closeErr))
		}
	}()

	if err = client.Mail(s.transport.GetSMTPUser()); err != nil {
		s.log.Error("failed to set mail sender", sl.Err(err))
		return fmt.Errorf("failed to set mail sender: %w", err)
	}
	if err = client.Rcpt(message.Email); err != nil {
		s.log.Error("failed to set recipient", sl.Err(err))
		return fmt.Errorf("failed to set recipient %s: %w", message.Email, err)
	}

	wc, err := client.Data()
	if err != nil {
		s.log.Error("failed to get write closer", sl.Err(err))
		return fmt.Errorf("failed to get write closer: %w", err)
	}
	if _, err = wc.Write([]byte(msg)); err != nil {
		s.log.Error("failed to write message", sl.Err(err))
		return fmt.Errorf("failed to write message: %w", err)
	}
	if err = wc.Close(); err != nil {
		s.log.Error("failed to close write closer", sl.Err(err))
		return fmt.Errorf("failed to close write closer: %w", err)
	}

	if err = client.Quit(); err != nil {
		s.log.Error("failed to quit SMTP client", sl.Err(err))
		return fmt.Errorf("failed to quit SMTP client: %w", err)
	}

	s.log.Info("email sent successfully",
		slog.String("to", message.Email),
		slog.String("notification_id", message.NotificationID))
	return nil
}

// buildMessage собирает текст письма об истекающей фактуре.
func buildMessage(from string, info models.InvoiceInfo) string {
	subject := "Aviso: su factura vence pronto"
	var due string
	switch info.DaysLeft {
	case 0:
		due = "vence hoy"
	case 1:
		due = "vence mañana"
	default:
		due = fmt.Sprintf("vence en %d días (%s)", info.DaysLeft, info.DueDate)
	}
	bodyText := fmt.Sprintf("Hola, %s:\n\nSu factura por %.2f %s.\n\nPor favor, realice el pago antes de la fecha de vencimiento.",
		info.ClientName, info.Amount, due)

	return strings.Join([]string{
		fmt.Sprintf("From: %s", from),
		fmt.Sprintf("To: %s", info.Email),
		fmt.Sprintf("Subject: %s", subject),
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"",
		bodyText,
	}, "\r\n")
}
