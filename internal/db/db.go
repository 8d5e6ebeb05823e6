package db

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// BuildDSN builds the SQLite DSN with WAL journaling and foreign keys enabled.
func BuildDSN(path string) string {
	return fmt.Sprintf(
		"file:%s?_pragma=journal_mode(WAL)&_pragma=foreign_keys(ON)&_pragma=busy_timeout(5000)",
		path,
	)
}

// Open opens the database at path and runs all migrations.
func Open(path string) (*sql.DB, error) {
	database, err := sql.Open("sqlite", BuildDSN(path))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := database.Ping(); err != nil {
		database.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := Migrate(database); err != nil {
		database.Close()
		return nil, err
	}

	return database, nil
}
