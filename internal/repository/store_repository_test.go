package repository_test

import (
	"context"
	"database/sql"
	"testing"

	"urlboard/internal/model"
	"urlboard/internal/repository"
	"urlboard/internal/repository/testutil"

	"github.com/stretchr/testify/require"
)

func TestStoreRepository_CreateAndGet(t *testing.T) {
	t.Parallel()
	db := testutil.NewTestDB(t)
	repo := repository.NewStoreRepository(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, model.Store{
		Name:     "eu-store",
		Endpoint: "https://eu.example.com/hook",
		Secret:   "s3cret",
		Enabled:  true,
	})
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	fetched, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, fetched)
	require.Equal(t, "eu-store", fetched.Name)
	require.Equal(t, "https://eu.example.com/hook", fetched.Endpoint)
	require.Equal(t, "s3cret", fetched.Secret)
	require.True(t, fetched.Enabled)
}

func TestStoreRepository_GetByID_NotFound(t *testing.T) {
	t.Parallel()
	db := testutil.NewTestDB(t)
	repo := repository.NewStoreRepository(db)

	store, err := repo.GetByID(context.Background(), 424242)
	require.NoError(t, err)
	require.Nil(t, store)
}

func TestStoreRepository_ListEnabled(t *testing.T) {
	t.Parallel()
	db := testutil.NewTestDB(t)
	repo := repository.NewStoreRepository(db)
	ctx := context.Background()

	enabledID := testutil.SeedStore(t, db, model.Store{Name: "on", Endpoint: "https://on.example.com", Enabled: true})
	testutil.SeedStore(t, db, model.Store{Name: "off", Endpoint: "https://off.example.com", Enabled: false})

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)

	enabled, err := repo.ListEnabled(ctx)
	require.NoError(t, err)
	require.Len(t, enabled, 1)
	require.Equal(t, enabledID, enabled[0].ID)
}

func TestStoreRepository_Update(t *testing.T) {
	t.Parallel()
	db := testutil.NewTestDB(t)
	repo := repository.NewStoreRepository(db)
	ctx := context.Background()

	id := testutil.SeedStore(t, db, model.Store{Name: "old", Endpoint: "https://old.example.com", Enabled: true})

	err := repo.Update(ctx, model.Store{
		ID:       id,
		Name:     "new",
		Endpoint: "https://new.example.com",
		Secret:   "rotated",
		Enabled:  false,
	})
	require.NoError(t, err)

	updated, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "new", updated.Name)
	require.Equal(t, "https://new.example.com", updated.Endpoint)
	require.Equal(t, "rotated", updated.Secret)
	require.False(t, updated.Enabled)
}

func TestStoreRepository_Update_NotFound(t *testing.T) {
	t.Parallel()
	db := testutil.NewTestDB(t)
	repo := repository.NewStoreRepository(db)

	err := repo.Update(context.Background(), model.Store{ID: 31337, Name: "x", Endpoint: "https://x.example.com"})
	require.ErrorIs(t, err, sql.ErrNoRows)
}

func TestStoreRepository_Delete(t *testing.T) {
	t.Parallel()
	db := testutil.NewTestDB(t)
	repo := repository.NewStoreRepository(db)
	ctx := context.Background()

	id := testutil.SeedStore(t, db, model.Store{Name: "gone", Endpoint: "https://gone.example.com", Enabled: true})

	require.NoError(t, repo.Delete(ctx, id))
	require.ErrorIs(t, repo.Delete(ctx, id), sql.ErrNoRows)
}
