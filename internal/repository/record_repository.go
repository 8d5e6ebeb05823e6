//go:generate mockgen -source=$GOFILE -destination=mock/$GOFILE -package=mock
package repository

import (
	"context"
	"database/sql"
	"time"

	"urlboard/internal/model"
	"urlboard/pkg/snowflake"
)

// RecordRepository defines the interface for URL record storage.
type RecordRepository interface {
	Create(ctx context.Context, urlKey, urlValue string) (*model.Record, error)
	GetByID(ctx context.Context, id int64) (*model.Record, error)
	List(ctx context.Context) ([]model.Record, error)
	UpdateValue(ctx context.Context, id int64, urlValue string) error
	Delete(ctx context.Context, id int64) error
}

type recordRepository struct {
	db *sql.DB
}

// NewRecordRepository creates a new record repository.
func NewRecordRepository(db *sql.DB) RecordRepository {
	return &recordRepository{db: db}
}

// Create inserts a new record with a fresh snowflake ID.
func (r *recordRepository) Create(ctx context.Context, urlKey, urlValue string) (*model.Record, error) {
	id := snowflake.NextID()
	now := time.Now().UTC()
	nowStr := now.Format(time.RFC3339)

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO records (id, url_key, url_value, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`, id, urlKey, urlValue, nowStr, nowStr)
	if err != nil {
		return nil, err
	}

	return &model.Record{
		ID:        id,
		URLKey:    urlKey,
		URLValue:  urlValue,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// GetByID retrieves a record by ID, returning nil when it does not exist.
func (r *recordRepository) GetByID(ctx context.Context, id int64) (*model.Record, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, url_key, url_value, created_at, updated_at FROM records WHERE id = ?
	`, id)

	var rec model.Record
	var createdAt, updatedAt string
	if err := row.Scan(&rec.ID, &rec.URLKey, &rec.URLValue, &createdAt, &updatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	rec.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	rec.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return &rec, nil
}

// List retrieves all records in insertion order.
func (r *recordRepository) List(ctx context.Context) ([]model.Record, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, url_key, url_value, created_at, updated_at FROM records ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []model.Record
	for rows.Next() {
		var rec model.Record
		var createdAt, updatedAt string
		if err := rows.Scan(&rec.ID, &rec.URLKey, &rec.URLValue, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		rec.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		rec.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
		records = append(records, rec)
	}
	return records, rows.Err()
}

// UpdateValue sets url_value on the record with the given ID. The key is never
// touched. Returns sql.ErrNoRows when no record matched.
func (r *recordRepository) UpdateValue(ctx context.Context, id int64, urlValue string) error {
	now := time.Now().UTC().Format(time.RFC3339)
	result, err := r.db.ExecContext(ctx, `
		UPDATE records SET url_value = ?, updated_at = ? WHERE id = ?
	`, urlValue, now, id)
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

// Delete removes a record by ID. Returns sql.ErrNoRows when no record matched.
func (r *recordRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM records WHERE id = ?`, id)
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
