// Package handler implements the HTTP handlers for the booking intake API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (health.go, booking.go) but all share the same Server struct so they
// can access its dependencies.
package handler

import (
	"context"

	"github.com/ybfstudio/booking-api/internal/domain"
	"github.com/ybfstudio/booking-api/internal/session"
)

// BookingServicer defines the business operations the booking handler
// depends on. Defining the interface here (in the consumer package) follows
// the Go convention: "accept interfaces, return concrete types". It lets
// handler tests inject a mock without touching the database or service layer.
type BookingServicer interface {
	Create(ctx context.Context, raw map[string]any, userID *string) (domain.BookingRequest, error)
}

// Server holds the handler dependencies for all API endpoints.
type Server struct {
	bookings BookingServicer
	sessions session.Provider
}

// NewServer constructs the Server with all its dependencies.
// A nil sessions provider treats every caller as anonymous.
func NewServer(bookings BookingServicer, sessions session.Provider) *Server {
	return &Server{bookings: bookings, sessions: sessions}
}
