// Package service contains the business logic for the booking intake API.
// Services validate inputs, enforce business rules, and orchestrate repo calls.
// No SQL lives here — services depend on repo interfaces, not implementations.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/ybfstudio/booking-api/internal/domain"
	"github.com/ybfstudio/booking-api/internal/metrics"
	"github.com/ybfstudio/booking-api/internal/notify"
	"github.com/ybfstudio/booking-api/internal/repo"
)

// BookingService runs the intake pipeline for booking submissions:
// normalize and validate the payload, verify the referenced catalog service
// is bookable, persist the request, then hand the stored record to the
// notification dispatcher without waiting for it.
type BookingService struct {
	catalog    repo.CatalogRepo
	bookings   repo.BookingRepo
	dispatcher *notify.Dispatcher
}

// NewBookingService constructs a BookingService backed by the provided repos
// and dispatcher. A nil dispatcher disables notifications (used in tests).
func NewBookingService(catalog repo.CatalogRepo, bookings repo.BookingRepo, dispatcher *notify.Dispatcher) *BookingService {
	return &BookingService{catalog: catalog, bookings: bookings, dispatcher: dispatcher}
}

// Create accepts the decoded request body, runs the pipeline, and returns
// the persisted record. userID is nil for anonymous submissions.
//
// Error taxonomy:
//   - *domain.ValidationErrors (wraps domain.ErrValidation) for any field
//     violation and for an unknown/inactive service — map to 400.
//   - anything else is an infrastructure failure — map to 500.
//
// Notification dispatch is detached: by the time sends settle, the caller
// has already received the created record, and a send failure can never
// change the outcome of a persisted booking.
func (s *BookingService) Create(ctx context.Context, raw map[string]any, userID *string) (domain.BookingRequest, error) {
	input, err := NormalizeBookingInput(raw)
	if err != nil {
		metrics.BookingsRejected.WithLabelValues("validation").Inc()
		return domain.BookingRequest{}, err
	}

	svc, err := s.catalog.GetActiveByID(ctx, input.ServiceID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			metrics.BookingsRejected.WithLabelValues("invalid_service").Inc()
			return domain.BookingRequest{}, &domain.ValidationErrors{
				Violations: []string{"invalid service_id: no active service with this id"},
			}
		}
		metrics.BookingsRejected.WithLabelValues("internal").Inc()
		return domain.BookingRequest{}, fmt.Errorf("service.BookingService.Create: %w", err)
	}

	record, err := s.bookings.Create(ctx, input, userID)
	if err != nil {
		metrics.BookingsRejected.WithLabelValues("internal").Inc()
		return domain.BookingRequest{}, fmt.Errorf("service.BookingService.Create: %w", err)
	}
	metrics.BookingsCreated.Inc()

	if s.dispatcher != nil {
		// Fire and forget. The dispatcher joins both sends internally,
		// purely for logging and metrics; nothing here observes the result.
		go s.dispatcher.BookingCreated(record, svc.Name)
	}

	return record, nil
}
