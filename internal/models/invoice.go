// Package models содержит доменные структуры, описывающие фактуру (счёт),
// а также вспомогательные типы для приёма данных из JSON-запросов.
package models

import "errors"

// ErrInvalidDueDate возвращается сервисом, когда дата истечения
// в запросе на создание не соответствует формату YYYY-MM-DD.
var ErrInvalidDueDate = errors.New("invalid due date")

// Invoice представляет собой основную модель фактуры,
// используемую в бизнес-логике и хранилище.
// DueDate хранится как текст ровно в том виде, в каком лежит в базе:
// строки из старых вариантов схемы могут быть некорректными датами,
// и их разбор выполняется только на этапе вычисления статуса.
type Invoice struct {
	ID          int     // Идентификатор записи
	ClientName  string  // Имя клиента
	ProductCode string  // Код продукта (опционально)
	Amount      float64 // Сумма фактуры
	DueDate     string  // Дата истечения в формате YYYY-MM-DD (как хранится)
	Status      string  // Ручной статус: pending или paid
	Email       string  // Email клиента (опционально)
}

// DummyInvoice используется для приёма данных из JSON-запроса,
// прежде чем конвертировать их в Invoice.
// Дата приходит строкой, чтобы её можно было валидировать и парсить вручную.
type DummyInvoice struct {
	ClientName  string   `json:"client_name" validate:"required"`  // Имя клиента
	ProductCode string   `json:"product_code"`                     // Код продукта
	Amount      *float64 `json:"amount" validate:"required,min=0"` // Сумма (>=0)
	DueDate     string   `json:"due_date" validate:"required"`     // Дата в формате 2006-01-02
	Email       string   `json:"email"`                            // Email клиента
}

// InvoiceView — фактура, аннотированная вычисленным статусом и
// признаком скорого истечения, в том виде, в каком её отдаёт API.
type InvoiceView struct {
	ID             int     `json:"id"`
	ClientName     string  `json:"client_name"`
	ProductCode    string  `json:"product_code,omitempty"`
	Amount         float64 `json:"amount"`
	DueDate        string  `json:"due_date"`
	DueDateDisplay string  `json:"due_date_display"`
	Email          string  `json:"email,omitempty"`
	Status         string  `json:"status"`
	Alert          bool    `json:"alert"`
	DaysLeft       *int    `json:"days_left,omitempty"`
}

// ListResult — результат листинга фактур вместе с агрегированным
// признаком риска: есть хотя бы одна просроченная или скоро истекающая.
type ListResult struct {
	Invoices           []InvoiceView `json:"invoices"`
	HasOutstandingRisk bool          `json:"has_outstanding_risk"`
}

// InvoiceInfo — полезная нагрузка уведомления о скором истечении фактуры,
// передаваемая через очередь от планировщика к отправителю писем.
type InvoiceInfo struct {
	NotificationID string  `json:"notification_id"`
	ClientName     string  `json:"client_name"`
	Email          string  `json:"email"`
	DueDate        string  `json:"due_date"`
	Amount         float64 `json:"amount"`
	DaysLeft       int     `json:"days_left"`
}
