package migrations

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	db, err := sql.Open("sqlite3", filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestRun_AppliesMigrations(t *testing.T) {
	dir := t.TempDir()
	up := `CREATE TABLE invoices (id INTEGER PRIMARY KEY AUTOINCREMENT, client_name TEXT NOT NULL);`
	down := `DROP TABLE invoices;`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "000001_create_invoices.up.sql"), []byte(up), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "000001_create_invoices.down.sql"), []byte(down), 0o600))

	db := openTestDB(t)
	require.NoError(t, Run(db, dir))

	var name string
	err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = 'invoices'`).Scan(&name)
	require.NoError(t, err)
	assert.Equal(t, "invoices", name)

	// Повторный запуск — идемпотентный no-op.
	require.NoError(t, Run(db, dir))
}

func TestRun_MissingPath(t *testing.T) {
	db := openTestDB(t)
	assert.Error(t, Run(db, "/nonexistent/migrations"))
}
