package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"testing"
	"time"

	"urlboard/internal/db"
	"urlboard/internal/model"
	"urlboard/pkg/snowflake"

	_ "modernc.org/sqlite"
)

// snowflakeOnce ensures snowflake is initialized exactly once across parallel tests.
var snowflakeOnce sync.Once

// NewTestDB creates an in-memory SQLite database and runs all migrations.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()

	snowflakeOnce.Do(func() {
		if err := snowflake.Init(0); err != nil {
			// t.Fatalf is not usable inside sync.Once, panic instead
			panic("failed to initialize snowflake: " + err.Error())
		}
	})

	// Shared cache mode supports concurrent access to the in-memory database.
	// Each test gets a unique database name to avoid collisions.
	dbName := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared&_pragma=foreign_keys(1)", t.Name(), time.Now().UnixNano())
	database, err := sql.Open("sqlite", dbName)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.Migrate(database); err != nil {
		database.Close()
		t.Fatalf("failed to migrate test database: %v", err)
	}

	t.Cleanup(func() {
		database.Close()
	})

	return database
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// SeedRecord inserts a test record and returns its ID.
func SeedRecord(t *testing.T, db *sql.DB, urlKey, urlValue string) int64 {
	t.Helper()

	id := snowflake.NextID()
	now := time.Now().UTC().Format(time.RFC3339)

	_, err := db.ExecContext(
		context.Background(),
		`INSERT INTO records (id, url_key, url_value, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		id, urlKey, urlValue, now, now,
	)
	if err != nil {
		t.Fatalf("failed to seed record: %v", err)
	}

	return id
}

// SeedStore inserts a test store and returns its ID.
func SeedStore(t *testing.T, db *sql.DB, store model.Store) int64 {
	t.Helper()

	if store.ID == 0 {
		store.ID = snowflake.NextID()
	}

	now := time.Now().UTC().Format(time.RFC3339)

	_, err := db.ExecContext(
		context.Background(),
		`INSERT INTO stores (id, name, endpoint, secret, enabled, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		store.ID, store.Name, store.Endpoint, store.Secret, boolToInt(store.Enabled), now, now,
	)
	if err != nil {
		t.Fatalf("failed to seed store: %v", err)
	}

	return store.ID
}
