// Package domain contains the core data types for the booking intake API.
// This package has zero external dependencies beyond uuid and is imported by
// every other internal package (repo, service, handler).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Field length limits applied by the input normalizer.
// Free-text fields are silently truncated to these maximums, never rejected.
const (
	MaxCustomerNameLen        = 100
	MaxCustomerEmailLen       = 254
	MaxProjectNameLen         = 200
	MaxProjectDescriptionLen  = 5000
	MaxSpecialInstructionsLen = 2000
)

// BookingInput is the validated, normalized form of a booking submission.
// It is produced by service.NormalizeBookingInput and is the only shape the
// persistence layer accepts.
type BookingInput struct {
	ServiceID           uuid.UUID
	CustomerName        string
	CustomerEmail       string
	ProjectName         string
	ProjectDescription  string
	SpecialInstructions string
	PricePaid           float64
}

// BookingRequest represents a persisted booking submission.
// ID and CreatedAt are assigned by the database at insert time.
// UserID is nil for anonymous bookings.
type BookingRequest struct {
	ID                  uuid.UUID `json:"id"`
	UserID              *string   `json:"user_id"`
	ServiceID           uuid.UUID `json:"service_id"`
	CustomerName        string    `json:"customer_name"`
	CustomerEmail       string    `json:"customer_email"`
	ProjectName         string    `json:"project_name,omitempty"`
	ProjectDescription  string    `json:"project_description,omitempty"`
	SpecialInstructions string    `json:"special_instructions,omitempty"`
	PricePaid           float64   `json:"price_paid"`
	CreatedAt           time.Time `json:"created_at"`
}
