package db

import (
	"database/sql"
	"fmt"
)

// Base schema - uses Snowflake IDs (no AUTOINCREMENT). url_key carries no
// uniqueness constraint: several records may share a key.
const baseSchema = `
CREATE TABLE IF NOT EXISTS records (
  id INTEGER PRIMARY KEY,
  url_key TEXT NOT NULL,
  url_value TEXT NOT NULL,
  created_at TEXT NOT NULL,
  updated_at TEXT NOT NULL
);
`

func Migrate(db *sql.DB) error {
	if _, err := db.Exec(baseSchema); err != nil {
		return fmt.Errorf("migrate base schema: %w", err)
	}

	if err := runMigrations(db); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	return nil
}

func runMigrations(db *sql.DB) error {
	// Migration 1: Create stores table for registered downstream endpoints
	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS stores (
			id INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			endpoint TEXT NOT NULL,
			enabled INTEGER NOT NULL DEFAULT 1,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)
	`); err != nil {
		return fmt.Errorf("create stores table: %w", err)
	}

	// Migration 2: Add secret column to stores for webhook signatures
	exists, err := hasColumn(db, "stores", "secret")
	if err != nil {
		return fmt.Errorf("check secret column: %w", err)
	}
	if !exists {
		if _, err := db.Exec(`ALTER TABLE stores ADD COLUMN secret TEXT NOT NULL DEFAULT ''`); err != nil {
			return fmt.Errorf("add secret column: %w", err)
		}
	}

	// Migration 3: Index enabled stores for notifier fan-out lookups
	if _, err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_stores_enabled ON stores(enabled)`); err != nil {
		return fmt.Errorf("create idx_stores_enabled: %w", err)
	}

	return nil
}

func hasColumn(db *sql.DB, table string, column string) (bool, error) {
	var count int
	if err := db.QueryRow(
		fmt.Sprintf(`SELECT COUNT(*) FROM pragma_table_info('%s') WHERE name = ?`, table),
		column,
	).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}
