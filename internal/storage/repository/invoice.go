package repository

import (
	"context"
	"fmt"

	"github.com/Franklp24/gestor-facturas/internal/models"
)

// CreateInvoice вставляет новую запись фактуры и возвращает её ID.
// Идентификаторы назначаются автоинкрементом и не переиспользуются
// после удаления.
func (s *Storage) CreateInvoice(ctx context.Context, invoice models.Invoice) (int, error) {
	const op = "storage.CreateInvoice"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO invoices (client_name, product_code, amount, due_date, status, email)
			  VALUES (?, ?, ?, ?, ?, ?)`
	result, err := s.DB.ExecContext(ctx, query,
		invoice.ClientName, invoice.ProductCode, invoice.Amount,
		invoice.DueDate, invoice.Status, invoice.Email)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	newID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(newID), nil
}

// RemoveInvoice удаляет фактуру по ID и возвращает количество удалённых
// строк. Удаление отсутствующего ID — не ошибка: возвращается ноль.
func (s *Storage) RemoveInvoice(ctx context.Context, id int) (int, error) {
	const op = "storage.RemoveInvoice"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM invoices WHERE id = ?`
	result, err := s.DB.ExecContext(ctx, query, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// MarkInvoicePaid переводит фактуру в статус paid и возвращает количество
// изменённых строк. Отсутствующий ID — тихий no-op: возвращается ноль.
func (s *Storage) MarkInvoicePaid(ctx context.Context, id int) (int, error) {
	const op = "storage.MarkInvoicePaid"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE invoices SET status = 'paid' WHERE id = ?`
	result, err := s.DB.ExecContext(ctx, query, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// ListInvoices возвращает все фактуры, упорядоченные по тексту даты
// истечения. Сортировка выполняется по хранимой строке, не по календарю:
// для корректных ISO-8601 дат это одно и то же, некорректные строки
// сортируются детерминированно, но могут выпадать из хронологии.
func (s *Storage) ListInvoices(ctx context.Context, direction string) ([]*models.Invoice, error) {
	const op = "storage.ListInvoices"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	order := "DESC"
	if direction == "asc" {
		order = "ASC"
	}
	query := `SELECT id, client_name, product_code, amount, due_date, status, email
			  FROM invoices
			  ORDER BY due_date ` + order
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var result []*models.Invoice
	for rows.Next() {
		var item models.Invoice
		if err := rows.Scan(&item.ID, &item.ClientName, &item.ProductCode,
			&item.Amount, &item.DueDate, &item.Status, &item.Email); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	err = rows.Close()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// FindInvoicesExpiringSoon возвращает неоплаченные фактуры, истекающие
// в ближайшие windowDays дней начиная с today (формат YYYY-MM-DD).
// Строки с нечитаемой датой не попадают в выборку: date() в SQLite
// возвращает NULL, и BETWEEN их отбрасывает.
func (s *Storage) FindInvoicesExpiringSoon(ctx context.Context, today string, windowDays int) ([]*models.Invoice, error) {
	const op = "storage.FindInvoicesExpiringSoon"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := fmt.Sprintf(`SELECT id, client_name, product_code, amount, due_date, status, email
			  FROM invoices
			  WHERE status != 'paid'
			    AND date(due_date) BETWEEN date(?) AND date(?, '+%d day')
			  ORDER BY due_date ASC`, windowDays)
	rows, err := s.DB.QueryContext(ctx, query, today, today)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var result []*models.Invoice
	for rows.Next() {
		var item models.Invoice
		if err := rows.Scan(&item.ID, &item.ClientName, &item.ProductCode,
			&item.Amount, &item.DueDate, &item.Status, &item.Email); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	err = rows.Close()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
