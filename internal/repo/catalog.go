// Package repo contains all database access logic for the booking intake API.
// Each resource has its own file with an interface and a Postgres implementation.
// No business logic lives here — only SQL and type mapping.
package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/ybfstudio/booking-api/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test, giving free
// per-test isolation without any manual cleanup.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// CatalogRepo defines the catalog lookups the intake pipeline needs.
// The service layer depends on this interface, not the concrete Postgres
// implementation, which allows the pipeline to be unit-tested with a mock.
type CatalogRepo interface {
	// GetActiveByID retrieves the service with the given ID if it is active
	// and not soft-deleted. Returns domain.ErrNotFound when no such service
	// exists — including when the row exists but is inactive or deleted.
	GetActiveByID(ctx context.Context, id uuid.UUID) (domain.CatalogService, error)
}

// pgCatalogRepo is the Postgres implementation of CatalogRepo.
type pgCatalogRepo struct {
	db db
}

// NewCatalogRepo constructs a CatalogRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewCatalogRepo(db db) CatalogRepo {
	return &pgCatalogRepo{db: db}
}

// GetActiveByID performs the bookability point lookup. The status and
// soft-deletion filters live in the query so "exists but not bookable" and
// "does not exist" are indistinguishable to callers, which is what the
// booking endpoint wants.
func (r *pgCatalogRepo) GetActiveByID(ctx context.Context, id uuid.UUID) (domain.CatalogService, error) {
	const q = `
		SELECT id, name, status, deleted_at, created_at, updated_at
		FROM services
		WHERE id = @id AND status = 'active' AND deleted_at IS NULL`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanCatalogService(row)
	if err != nil {
		return domain.CatalogService{}, fmt.Errorf("repo.CatalogRepo.GetActiveByID: %w", err)
	}
	return result, nil
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing the scan
// helpers to be reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// scanCatalogService maps a single database row into a domain.CatalogService.
func scanCatalogService(s scanner) (domain.CatalogService, error) {
	var (
		svc       domain.CatalogService
		id        pgtype.UUID
		deletedAt pgtype.Timestamptz
	)

	err := s.Scan(&id, &svc.Name, &svc.Status, &deletedAt, &svc.CreatedAt, &svc.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.CatalogService{}, domain.ErrNotFound
		}
		return domain.CatalogService{}, err
	}

	svc.ID = uuid.UUID(id.Bytes)
	if deletedAt.Valid {
		d := deletedAt.Time
		svc.DeletedAt = &d
	}

	return svc, nil
}
