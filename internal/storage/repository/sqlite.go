// Package repository реализует хранилище данных на основе встраиваемой
// базы SQLite для управления фактурами. Предоставляет методы создания,
// чтения, удаления и смены статуса записей.
package repository

import (
	"context"
	"database/sql"
	"fmt"

	// Регистрация драйвера sqlite3 для использования с database/sql.
	_ "github.com/mattn/go-sqlite3"
)

// Storage инкапсулирует соединение с базой данных SQLite
// и реализует методы работы с фактурами.
type Storage struct {
	DB *sql.DB
}

// New открывает базу SQLite по указанному пути и проверяет соединение.
// SQLite сериализует писателей сам, поэтому пул ограничен одним
// соединением.
func New(storagePath string) (*Storage, error) {
	const op = "storage.New"

	dsn := fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000", storagePath)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)

	if err = db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{
		DB: db,
	}, nil
}

// Close закрывает соединение с базой данных.
func (s *Storage) Close() error {
	return s.DB.Close()
}

// CheckDatabaseReady проверяет готовность базы данных: отсутствие таблицы
// фактур после миграций — фатальная ошибка старта, а не повод пересоздавать
// схему во время обработки запроса.
func CheckDatabaseReady(storage *Storage) error {
	var name string
	err := storage.DB.QueryRow(`SELECT name FROM sqlite_master
        WHERE type = 'table' AND name = 'invoices'`).Scan(&name)
	if err != nil {
		return fmt.Errorf("required table invoices missing or query error: %w", err)
	}
	return nil
}
