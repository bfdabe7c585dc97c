// Package duedate вычисляет отображаемый статус фактуры и признак
// скорого истечения по сохранённой записи и опорной дате "сегодня".
// Пакет не имеет побочных эффектов и не зависит ни от хранилища,
// ни от слоя отображения: это чистое преобразование входных данных.
package duedate

import "time"

// Layout — формат хранения даты истечения (ISO-8601, только дата).
const Layout = "2006-01-02"

// DefaultWindowDays — стандартное окно предупреждения в днях.
const DefaultWindowDays = 7

// Status — вычисленный статус фактуры.
type Status string

const (
	// StatusPending — не оплачена, срок ещё не прошёл.
	StatusPending Status = "pending"
	// StatusPaid — оплачена вручную; дата истечения больше не учитывается.
	StatusPaid Status = "paid"
	// StatusOverdue — не оплачена, срок прошёл.
	StatusOverdue Status = "overdue"
	// StatusDateError — сохранённая дата не разбирается как YYYY-MM-DD.
	StatusDateError Status = "date_error"
)

// Alert — результат вычисления признака скорого истечения.
// DaysLeft имеет смысл только при HasDaysLeft = true: ноль означает
// "истекает сегодня", а значение больше окна отдаётся информационно,
// без установленного флага Active.
type Alert struct {
	Active      bool
	DaysLeft    int
	HasDaysLeft bool
}

// Derived объединяет статус и признак истечения одной записи.
type Derived struct {
	Status Status
	Alert  Alert
}

// Parse разбирает сохранённый текст даты истечения.
// Неудача разбора — штатная ветка, а не ошибка: записи из старых
// вариантов схемы могут содержать произвольный текст.
func Parse(raw string) (time.Time, bool) {
	t, err := time.Parse(Layout, raw)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Day усекает момент времени до календарного дня в UTC,
// чтобы разница дат считалась целыми днями независимо от времени суток.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DeriveStatus вычисляет статус фактуры на опорную дату today.
// Ручной статус paid терминален и побеждает безусловно. Дата, равная
// сегодняшней, ещё не считается просроченной.
func DeriveStatus(manualStatus, rawDueDate string, today time.Time) Status {
	if manualStatus == string(StatusPaid) {
		return StatusPaid
	}
	due, ok := Parse(rawDueDate)
	if !ok {
		return StatusDateError
	}
	if Day(due).Before(Day(today)) {
		return StatusOverdue
	}
	return StatusPending
}

// ComputeAlert вычисляет признак скорого истечения фактуры.
// Флаг ставится только для статуса pending и только если до даты
// истечения осталось от 0 до windowDays дней включительно. Для paid,
// overdue и date_error возвращается пустой Alert.
func ComputeAlert(manualStatus, rawDueDate string, today time.Time, windowDays int) Alert {
	if DeriveStatus(manualStatus, rawDueDate, today) != StatusPending {
		return Alert{}
	}
	due, _ := Parse(rawDueDate)
	days := int(Day(due).Sub(Day(today)).Hours() / 24)
	return Alert{
		Active:      days <= windowDays,
		DaysLeft:    days,
		HasDaysLeft: true,
	}
}

// Derive вычисляет статус и признак истечения за один вызов.
func Derive(manualStatus, rawDueDate string, today time.Time, windowDays int) Derived {
	return Derived{
		Status: DeriveStatus(manualStatus, rawDueDate, today),
		Alert:  ComputeAlert(manualStatus, rawDueDate, today, windowDays),
	}
}

// HasOutstandingRisk возвращает true, если среди записей есть хотя бы
// одна с установленным флагом истечения или со статусом overdue.
// Агрегат вычисляется, а не хранится.
func HasOutstandingRisk(items []Derived) bool {
	for _, it := range items {
		if it.Alert.Active || it.Status == StatusOverdue {
			return true
		}
	}
	return false
}
