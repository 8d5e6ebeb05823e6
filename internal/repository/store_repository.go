//go:generate mockgen -source=$GOFILE -destination=mock/$GOFILE -package=mock
package repository

import (
	"context"
	"database/sql"
	"time"

	"urlboard/internal/model"
	"urlboard/pkg/snowflake"
)

// StoreRepository defines the interface for downstream store registry storage.
type StoreRepository interface {
	Create(ctx context.Context, store model.Store) (*model.Store, error)
	GetByID(ctx context.Context, id int64) (*model.Store, error)
	List(ctx context.Context) ([]model.Store, error)
	ListEnabled(ctx context.Context) ([]model.Store, error)
	Update(ctx context.Context, store model.Store) error
	Delete(ctx context.Context, id int64) error
}

type storeRepository struct {
	db *sql.DB
}

// NewStoreRepository creates a new store repository.
func NewStoreRepository(db *sql.DB) StoreRepository {
	return &storeRepository{db: db}
}

// Create inserts a new store with a fresh snowflake ID.
func (r *storeRepository) Create(ctx context.Context, store model.Store) (*model.Store, error) {
	id := snowflake.NextID()
	now := time.Now().UTC()
	nowStr := now.Format(time.RFC3339)

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO stores (id, name, endpoint, secret, enabled, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, id, store.Name, store.Endpoint, store.Secret, boolToInt(store.Enabled), nowStr, nowStr)
	if err != nil {
		return nil, err
	}

	store.ID = id
	store.CreatedAt = now
	store.UpdatedAt = now
	return &store, nil
}

// GetByID retrieves a store by ID, returning nil when it does not exist.
func (r *storeRepository) GetByID(ctx context.Context, id int64) (*model.Store, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, endpoint, secret, enabled, created_at, updated_at FROM stores WHERE id = ?
	`, id)

	store, err := scanStore(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return store, nil
}

// List retrieves all stores in insertion order.
func (r *storeRepository) List(ctx context.Context) ([]model.Store, error) {
	return r.list(ctx, `
		SELECT id, name, endpoint, secret, enabled, created_at, updated_at FROM stores ORDER BY id
	`)
}

// ListEnabled retrieves the stores the notifier fans out to.
func (r *storeRepository) ListEnabled(ctx context.Context) ([]model.Store, error) {
	return r.list(ctx, `
		SELECT id, name, endpoint, secret, enabled, created_at, updated_at FROM stores WHERE enabled = 1 ORDER BY id
	`)
}

func (r *storeRepository) list(ctx context.Context, query string) ([]model.Store, error) {
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stores []model.Store
	for rows.Next() {
		store, err := scanStore(rows.Scan)
		if err != nil {
			return nil, err
		}
		stores = append(stores, *store)
	}
	return stores, rows.Err()
}

// Update rewrites the mutable store fields. Returns sql.ErrNoRows when no
// store matched.
func (r *storeRepository) Update(ctx context.Context, store model.Store) error {
	now := time.Now().UTC().Format(time.RFC3339)
	result, err := r.db.ExecContext(ctx, `
		UPDATE stores SET name = ?, endpoint = ?, secret = ?, enabled = ?, updated_at = ? WHERE id = ?
	`, store.Name, store.Endpoint, store.Secret, boolToInt(store.Enabled), now, store.ID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes a store by ID. Returns sql.ErrNoRows when no store matched.
func (r *storeRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM stores WHERE id = ?`, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func scanStore(scan func(dest ...interface{}) error) (*model.Store, error) {
	var store model.Store
	var enabled int
	var createdAt, updatedAt string
	if err := scan(&store.ID, &store.Name, &store.Endpoint, &store.Secret, &enabled, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	store.Enabled = enabled != 0
	store.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	store.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return &store, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
