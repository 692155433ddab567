package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/ybfstudio/booking-api/internal/domain"
)

// BookingRepo defines the persistence operations for booking requests.
type BookingRepo interface {
	// Create inserts a new booking request and returns the persisted record
	// (with DB-generated id and created_at populated). userID is nil for
	// anonymous bookings. Every call creates a new row; there is no
	// deduplication of repeated submissions.
	Create(ctx context.Context, input domain.BookingInput, userID *string) (domain.BookingRequest, error)
}

// pgBookingRepo is the Postgres implementation of BookingRepo.
type pgBookingRepo struct {
	db db
}

// NewBookingRepo constructs a BookingRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewBookingRepo(db db) BookingRepo {
	return &pgBookingRepo{db: db}
}

// Create inserts a new booking row and returns the full persisted record.
func (r *pgBookingRepo) Create(ctx context.Context, input domain.BookingInput, userID *string) (domain.BookingRequest, error) {
	const q = `
		INSERT INTO service_requests
			(user_id, service_id, customer_name, customer_email,
			 project_name, project_description, special_instructions, price_paid)
		VALUES
			(@user_id, @service_id, @customer_name, @customer_email,
			 @project_name, @project_description, @special_instructions, @price_paid)
		RETURNING id, user_id, service_id, customer_name, customer_email,
		          project_name, project_description, special_instructions,
		          price_paid, created_at`

	args := pgx.NamedArgs{
		"user_id":              userID, // nil becomes NULL
		"service_id":           input.ServiceID,
		"customer_name":        input.CustomerName,
		"customer_email":       input.CustomerEmail,
		"project_name":         input.ProjectName,
		"project_description":  input.ProjectDescription,
		"special_instructions": input.SpecialInstructions,
		"price_paid":           input.PricePaid,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanBookingRequest(row)
	if err != nil {
		return domain.BookingRequest{}, fmt.Errorf("repo.BookingRepo.Create: %w", err)
	}
	return result, nil
}

// scanBookingRequest maps a single database row into a domain.BookingRequest.
func scanBookingRequest(s scanner) (domain.BookingRequest, error) {
	var (
		b         domain.BookingRequest
		id        pgtype.UUID
		serviceID pgtype.UUID
		userID    pgtype.Text
	)

	err := s.Scan(&id, &userID, &serviceID, &b.CustomerName, &b.CustomerEmail,
		&b.ProjectName, &b.ProjectDescription, &b.SpecialInstructions,
		&b.PricePaid, &b.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.BookingRequest{}, domain.ErrNotFound
		}
		return domain.BookingRequest{}, err
	}

	b.ID = uuid.UUID(id.Bytes)
	b.ServiceID = uuid.UUID(serviceID.Bytes)
	if userID.Valid {
		u := userID.String
		b.UserID = &u
	}

	return b, nil
}
