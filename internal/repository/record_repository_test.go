package repository_test

import (
	"context"
	"database/sql"
	"testing"

	"urlboard/internal/repository"
	"urlboard/internal/repository/testutil"

	"github.com/stretchr/testify/require"
)

func TestRecordRepository_Create(t *testing.T) {
	t.Parallel()
	db := testutil.NewTestDB(t)
	repo := repository.NewRecordRepository(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, "promo_url", "https://example.com/promo")
	require.NoError(t, err)
	require.NotNil(t, created)
	require.NotZero(t, created.ID)
	require.Equal(t, "promo_url", created.URLKey)
	require.Equal(t, "https://example.com/promo", created.URLValue)
	require.False(t, created.CreatedAt.IsZero())

	fetched, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, fetched)
	require.Equal(t, created.ID, fetched.ID)
	require.Equal(t, "promo_url", fetched.URLKey)
}

func TestRecordRepository_Create_DuplicateKeysAllowed(t *testing.T) {
	t.Parallel()
	db := testutil.NewTestDB(t)
	repo := repository.NewRecordRepository(db)
	ctx := context.Background()

	first, err := repo.Create(ctx, "promo_url", "https://a.example.com")
	require.NoError(t, err)
	second, err := repo.Create(ctx, "promo_url", "https://b.example.com")
	require.NoError(t, err)
	require.NotEqual(t, first.ID, second.ID)

	records, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)
}

func TestRecordRepository_GetByID_NotFound(t *testing.T) {
	t.Parallel()
	db := testutil.NewTestDB(t)
	repo := repository.NewRecordRepository(db)

	record, err := repo.GetByID(context.Background(), 12345)
	require.NoError(t, err)
	require.Nil(t, record)
}

func TestRecordRepository_List_InsertionOrder(t *testing.T) {
	t.Parallel()
	db := testutil.NewTestDB(t)
	repo := repository.NewRecordRepository(db)
	ctx := context.Background()

	firstID := testutil.SeedRecord(t, db, "promo_url", "https://a.example.com")
	secondID := testutil.SeedRecord(t, db, "support_url", "https://b.example.com")

	records, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)
	require.Equal(t, firstID, records[0].ID)
	require.Equal(t, secondID, records[1].ID)
}

func TestRecordRepository_List_Empty(t *testing.T) {
	t.Parallel()
	db := testutil.NewTestDB(t)
	repo := repository.NewRecordRepository(db)

	records, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Empty(t, records)
}

func TestRecordRepository_UpdateValue(t *testing.T) {
	t.Parallel()
	db := testutil.NewTestDB(t)
	repo := repository.NewRecordRepository(db)
	ctx := context.Background()

	id := testutil.SeedRecord(t, db, "promo_url", "https://old.example.com")

	err := repo.UpdateValue(ctx, id, "https://new.example.com")
	require.NoError(t, err)

	record, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "https://new.example.com", record.URLValue)
	// The key is never touched by a value update.
	require.Equal(t, "promo_url", record.URLKey)
}

func TestRecordRepository_UpdateValue_NotFound(t *testing.T) {
	t.Parallel()
	db := testutil.NewTestDB(t)
	repo := repository.NewRecordRepository(db)

	err := repo.UpdateValue(context.Background(), 99999, "https://example.com")
	require.ErrorIs(t, err, sql.ErrNoRows)
}

func TestRecordRepository_Delete(t *testing.T) {
	t.Parallel()
	db := testutil.NewTestDB(t)
	repo := repository.NewRecordRepository(db)
	ctx := context.Background()

	keepID := testutil.SeedRecord(t, db, "promo_url", "https://keep.example.com")
	dropID := testutil.SeedRecord(t, db, "support_url", "https://drop.example.com")

	err := repo.Delete(ctx, dropID)
	require.NoError(t, err)

	records, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, keepID, records[0].ID)

	err = repo.Delete(ctx, dropID)
	require.ErrorIs(t, err, sql.ErrNoRows)
}
