package repo_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/ybfstudio/booking-api/internal/domain"
	"github.com/ybfstudio/booking-api/internal/repo"
	"github.com/ybfstudio/booking-api/testutil"
)

// newTestTx opens a single transaction that is rolled back automatically when
// the test finishes, giving free per-test isolation.
func newTestTx(t *testing.T) pgx.Tx {
	t.Helper()
	pool := testutil.NewPool(t)

	tx, err := pool.Begin(context.Background())
	require.NoError(t, err, "begin transaction")

	t.Cleanup(func() {
		_ = tx.Rollback(context.Background())
	})

	return tx
}

// mustInsertService inserts a catalog service row directly and returns its id.
// Catalog management is outside the pipeline, so tests seed rows by hand.
func mustInsertService(t *testing.T, tx pgx.Tx, name, status string, deleted bool) uuid.UUID {
	t.Helper()

	var deletedAt *time.Time
	if deleted {
		d := time.Now().UTC()
		deletedAt = &d
	}

	var id uuid.UUID
	err := tx.QueryRow(context.Background(),
		`INSERT INTO services (name, status, deleted_at) VALUES ($1, $2, $3) RETURNING id`,
		name, status, deletedAt,
	).Scan(&id)
	require.NoError(t, err, "insert service fixture")
	return id
}

func TestCatalogRepo_GetActiveByID(t *testing.T) {
	tx := newTestTx(t)
	catalog := repo.NewCatalogRepo(tx)

	id := mustInsertService(t, tx, "Stereo Mix", "active", false)

	got, err := catalog.GetActiveByID(context.Background(), id)

	require.NoError(t, err)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, "Stereo Mix", got.Name)
	assert.Equal(t, domain.StatusActive, got.Status)
	assert.Nil(t, got.DeletedAt)
}

func TestCatalogRepo_GetActiveByID_Unknown(t *testing.T) {
	tx := newTestTx(t)
	catalog := repo.NewCatalogRepo(tx)

	_, err := catalog.GetActiveByID(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCatalogRepo_GetActiveByID_InactiveFilteredOut(t *testing.T) {
	tx := newTestTx(t)
	catalog := repo.NewCatalogRepo(tx)

	id := mustInsertService(t, tx, "Retired Package", "inactive", false)

	_, err := catalog.GetActiveByID(context.Background(), id)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCatalogRepo_GetActiveByID_SoftDeletedFilteredOut(t *testing.T) {
	tx := newTestTx(t)
	catalog := repo.NewCatalogRepo(tx)

	id := mustInsertService(t, tx, "Deleted Package", "active", true)

	_, err := catalog.GetActiveByID(context.Background(), id)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
